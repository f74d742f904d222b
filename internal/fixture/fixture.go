// Package fixture converts hand-checked XML location descriptors into the
// JSON fixture used to validate the mapper across numbered file versions.
package fixture

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TestCase is every checked version of one file.
type TestCase struct {
	File     string    `json:"file"`
	Versions []Version `json:"versions"`
}

// Version is one numbered revision with the expected location of each line
// of the previous version.
type Version struct {
	Number    int        `json:"number"`
	Checked   bool       `json:"checked"`
	Locations []Location `json:"locations"`
	JavaPath  *string    `json:"java_path"`
}

// Location maps a line of the previous version to this one. New is nil when
// the line was deleted.
type Location struct {
	Orig int  `json:"orig"`
	New  *int `json:"new"`
}

type xmlTest struct {
	File     string       `xml:"FILE,attr"`
	Versions []xmlVersion `xml:"VERSION"`
}

type xmlVersion struct {
	Number    int           `xml:"NUMBER,attr"`
	Checked   string        `xml:"CHECKED,attr"`
	Locations []xmlLocation `xml:"LOCATION"`
}

type xmlLocation struct {
	Orig int `xml:"ORIG,attr"`
	New  int `xml:"NEW,attr"`
}

// ParseXML converts one descriptor. Versions come out sorted by number;
// java_path is set when <dataDir>/<stem>_<number>.java exists.
func ParseXML(data []byte, dataDir string) (TestCase, error) {
	var doc xmlTest
	if err := xml.Unmarshal(data, &doc); err != nil {
		return TestCase{}, fmt.Errorf("parsing descriptor: %w", err)
	}
	if doc.File == "" {
		return TestCase{}, fmt.Errorf("parsing descriptor: missing FILE attribute")
	}
	stem := strings.TrimSuffix(filepath.Base(doc.File), filepath.Ext(doc.File))

	tc := TestCase{File: doc.File, Versions: make([]Version, 0, len(doc.Versions))}
	for _, xv := range doc.Versions {
		v := Version{
			Number:    xv.Number,
			Checked:   strings.EqualFold(xv.Checked, "TRUE"),
			Locations: make([]Location, 0, len(xv.Locations)),
		}
		for _, xl := range xv.Locations {
			loc := Location{Orig: xl.Orig}
			if xl.New != -1 {
				n := xl.New
				loc.New = &n
			}
			v.Locations = append(v.Locations, loc)
		}
		candidate := filepath.Join(dataDir, fmt.Sprintf("%s_%d.java", stem, xv.Number))
		if _, err := os.Stat(candidate); err == nil {
			v.JavaPath = &candidate
		}
		tc.Versions = append(tc.Versions, v)
	}
	sort.SliceStable(tc.Versions, func(i, j int) bool { return tc.Versions[i].Number < tc.Versions[j].Number })
	return tc, nil
}

// Convert parses every *.xml descriptor in dataDir, skipping backup files
// ending in "~", and returns the cases sorted by file.
func Convert(dataDir string) ([]TestCase, error) {
	matches, err := filepath.Glob(filepath.Join(dataDir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("listing descriptors: %w", err)
	}
	sort.Strings(matches)

	cases := []TestCase{}
	for _, m := range matches {
		if strings.HasSuffix(m, "~") {
			continue
		}
		data, err := os.ReadFile(m)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", m, err)
		}
		tc, err := ParseXML(data, dataDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m, err)
		}
		cases = append(cases, tc)
	}
	sort.SliceStable(cases, func(i, j int) bool { return cases[i].File < cases[j].File })
	return cases, nil
}

// Load reads a fixture JSON file.
func Load(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var cases []TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return cases, nil
}

// Write stores cases as indented JSON.
func Write(path string, cases []TestCase) error {
	if cases == nil {
		cases = []TestCase{}
	}
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	return nil
}
