package commands

import (
	"github.com/m-daichendt/comp3110/internal/fixture"
)

// ConvertResult holds the result of converting XML descriptors.
type ConvertResult struct {
	Output string
	Cases  int
}

// Convert turns the XML descriptors in dataDir into a fixture file.
func Convert(dataDir, output string) (*ConvertResult, error) {
	cases, err := fixture.Convert(dataDir)
	if err != nil {
		return nil, err
	}
	if err := fixture.Write(output, cases); err != nil {
		return nil, err
	}
	return &ConvertResult{Output: output, Cases: len(cases)}, nil
}
