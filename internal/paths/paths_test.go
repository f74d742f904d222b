package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-daichendt/comp3110/internal/paths"
	"github.com/stretchr/testify/assert"
)

func TestConfigDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	assert.True(t, strings.HasPrefix(paths.ConfigDir(), home))
	assert.True(t, strings.HasSuffix(paths.ConfigDir(), ".linemap"))
}

func TestConfigFile(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(paths.ConfigEnv, "")
		assert.Equal(t, filepath.Join(paths.ConfigDir(), "config.yaml"), paths.ConfigFile())
	})
	t.Run("env override", func(t *testing.T) {
		t.Setenv(paths.ConfigEnv, "/tmp/custom.yaml")
		assert.Equal(t, "/tmp/custom.yaml", paths.ConfigFile())
	})
}

func TestResultsFile(t *testing.T) {
	assert.Equal(t, "data/new_test_data_results.txt", paths.ResultsFile("data/new_test_data.json"))
	assert.Equal(t, "dataset_results.txt", paths.ResultsFile("dataset"))
}
