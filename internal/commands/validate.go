package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/m-daichendt/comp3110/internal/dataset"
	"github.com/m-daichendt/comp3110/internal/fixture"
	"github.com/m-daichendt/comp3110/internal/validate"
)

// ValidateResult holds the report of a dataset validation.
type ValidateResult struct {
	Report      *validate.Report
	ResultsFile string // where the report text was written, if anywhere
}

// ValidateDataset recomputes every record of the dataset at datasetPath.
// "path@commit" references are read from the repository at repoPath when it
// is set. The report text is written to resultsPath unless it is empty.
func ValidateDataset(ctx context.Context, datasetPath, repoPath, resultsPath string, opts validate.Options) (*ValidateResult, error) {
	records, err := dataset.Read(datasetPath)
	if err != nil {
		return nil, err
	}

	var reader validate.Reader = validate.FileReader{}
	if repoPath != "" {
		repo, err := openRepo(repoPath)
		if err != nil {
			return nil, err
		}
		reader = validate.RepoReader{Repo: repo}
	}

	rep, err := validate.Dataset(ctx, records, reader, opts)
	if err != nil {
		return nil, fmt.Errorf("validating dataset: %w", err)
	}

	result := &ValidateResult{Report: rep}
	if resultsPath != "" {
		if err := os.WriteFile(resultsPath, []byte(rep.Text()), 0644); err != nil {
			return nil, fmt.Errorf("writing results: %w", err)
		}
		result.ResultsFile = resultsPath
	}
	return result, nil
}

// ValidateFixture checks every case of the fixture at path.
func ValidateFixture(ctx context.Context, path string, opts validate.Options) (*validate.FixtureReport, error) {
	cases, err := fixture.Load(path)
	if err != nil {
		return nil, err
	}
	rep, err := validate.Fixture(ctx, cases, validate.FileReader{}, opts)
	if err != nil {
		return nil, fmt.Errorf("validating fixture: %w", err)
	}
	return rep, nil
}
