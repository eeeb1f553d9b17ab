package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseDoctrine decodes a YAML doctrine. If the document names a preset via
// `base`, its fields are layered over that preset.
func ParseDoctrine(data []byte) (Doctrine, error) {
	var head struct {
		Base string `yaml:"base"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Doctrine{}, fmt.Errorf("parse doctrine: %w", err)
	}

	var d Doctrine
	if head.Base != "" {
		preset, ok := Presets()[strings.ToLower(head.Base)]
		if !ok {
			return Doctrine{}, fmt.Errorf("parse doctrine: unknown base %q", head.Base)
		}
		d = preset
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Doctrine{}, fmt.Errorf("parse doctrine: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Doctrine{}, err
	}
	return d, nil
}

// LoadDoctrine reads a doctrine from a YAML file.
func LoadDoctrine(path string) (Doctrine, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Doctrine{}, fmt.Errorf("read doctrine: %w", err)
	}
	d, err := ParseDoctrine(b)
	if err != nil {
		return Doctrine{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ResolveDoctrine returns the preset called name, or loads name as a file.
func ResolveDoctrine(name string) (Doctrine, error) {
	if d, ok := Presets()[strings.ToLower(name)]; ok {
		return d, nil
	}
	return LoadDoctrine(name)
}
