package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// defaultsFile is the on-disk shape of a default texts override:
//
//	generic_texts:
//	  - learn more
//	  - ver más
type defaultsFile struct {
	GenericTexts []string `yaml:"generic_texts"`
}

// LoadDefaultTexts reads a YAML defaults file. An empty path yields
// DefaultTexts.
func LoadDefaultTexts(path string) ([]string, error) {
	if path == "" {
		return Normalize(DefaultTexts), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read defaults file: %w", err)
	}

	var f defaultsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse defaults file %s: %w", path, err)
	}
	texts := Normalize(f.GenericTexts)
	if len(texts) == 0 {
		return nil, fmt.Errorf("defaults file %s: generic_texts is empty", path)
	}
	return texts, nil
}
