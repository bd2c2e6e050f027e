package importer

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Record is one character entry of an import file. Keys other than id, name
// and birthday are catalog fields:
//
//	characters:
//	  - id: ace
//	    name: Ace
//	    birthday: "07-04"
//	    species: cat
type Record struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Birthday string            `yaml:"birthday"`
	Facets   map[string]string `yaml:",inline"`
}

type file struct {
	Characters []Record `yaml:"characters"`
}

// Decode reads an import file.
func Decode(r io.Reader) ([]Record, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("decode import file: %w", err)
	}
	if f.Characters == nil {
		return []Record{}, nil
	}
	return f.Characters, nil
}
