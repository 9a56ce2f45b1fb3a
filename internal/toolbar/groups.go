package toolbar

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Group is a run of toolbar entries drawn together.
type Group struct {
	Type    string   `yaml:"type"`
	Include []string `yaml:"include"`
}

type layoutFile struct {
	Groups []Group `yaml:"groups"`
}

// DefaultGroups is the stock layout: history, rotation, flips, crop.
func DefaultGroups() []Group {
	return []Group{
		{Type: "bar", Include: []string{"undo", "redo"}},
		{Type: "bar", Include: []string{"rotateCounterClockwise", "rotateClockwise"}},
		{Type: "bar", Include: []string{"flipVertical", "flipHorizontal"}},
		{Type: "bar", Include: []string{"crop"}},
	}
}

// LoadGroups parses a YAML layout of the form
//
//	groups:
//	  - type: bar
//	    include: [undo, redo]
func LoadGroups(r io.Reader) ([]Group, error) {
	var lf layoutFile
	if err := yaml.NewDecoder(r).Decode(&lf); err != nil {
		return nil, fmt.Errorf("parse toolbar layout: %w", err)
	}
	for i, g := range lf.Groups {
		if g.Type == "" {
			lf.Groups[i].Type = "bar"
		}
	}
	return lf.Groups, nil
}

// LoadGroupsFile reads a layout from path.
func LoadGroupsFile(path string) ([]Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadGroups(f)
}
