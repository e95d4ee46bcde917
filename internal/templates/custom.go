package templates

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

type customFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadCustom reads extra templates from a YAML file. A missing file yields none.
func LoadCustom(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var f customFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i, t := range f.Templates {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("%s: template #%d has no name", path, i+1)
		}
		if len(t.Files) == 0 {
			return nil, fmt.Errorf("%s: template %q has no files", path, t.Name)
		}
	}
	return f.Templates, nil
}
