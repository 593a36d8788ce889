package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is looked up next to the entry file.
const ProjectFileName = "fip.yaml"

// Project is the optional per-project configuration.
type Project struct {
	// Entry overrides the script passed on the command line when the
	// CLI is invoked without one.
	Entry string `yaml:"entry"`
	Lint  Lint   `yaml:"lint"`
}

// Lint configures the linter.
type Lint struct {
	// Exclude lists glob patterns (matched against the file base name)
	// skipped during directory linting.
	Exclude []string `yaml:"exclude"`
}

// LoadProject reads fip.yaml from dir. A missing file yields the zero
// Project and no error.
func LoadProject(dir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Project{}, nil
		}
		return nil, err
	}

	var project Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ProjectFileName, err)
	}
	return &project, nil
}

// Excluded reports whether the linter should skip the file.
func (l *Lint) Excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range l.Exclude {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
