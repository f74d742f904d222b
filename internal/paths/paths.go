package paths

import (
	"os"
	"path/filepath"
)

// ConfigEnv overrides the config file location when set.
const ConfigEnv = "LINEMAP_CONFIG"

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns ~/.linemap.
func ConfigDir() string {
	return filepath.Join(home(), ".linemap")
}

// ConfigFile returns $LINEMAP_CONFIG, or ~/.linemap/config.yaml when unset.
func ConfigFile() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ResultsFile returns the report path written next to a dataset file,
// e.g. data/new_test_data.json -> data/new_test_data_results.txt.
func ResultsFile(dataset string) string {
	ext := filepath.Ext(dataset)
	return dataset[:len(dataset)-len(ext)] + "_results.txt"
}
