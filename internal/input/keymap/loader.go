package keymap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// bindingsFile is the on-disk shape of a user keybinding override file.
type bindingsFile struct {
	Bindings []Binding `yaml:"bindings"`
}

// LoadFile parses a YAML binding override file. A missing file returns
// no bindings and no error, matching the config store's treatment of
// absent files.
func LoadFile(path string) ([]Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("keymap: reading %s: %w", path, err)
	}

	var f bindingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("keymap: parsing %s: %w", path, err)
	}
	return f.Bindings, nil
}

// ApplyFile loads a binding override file on top of m. Bindings with the
// same chord replace earlier ones; an empty command unbinds the chord.
func ApplyFile(m *Keymap, path string) error {
	bindings, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, b := range bindings {
		if b.Command == "" {
			m.Unbind(b.Chord)
			continue
		}
		if err := m.Bind(b); err != nil {
			return err
		}
	}
	return nil
}
