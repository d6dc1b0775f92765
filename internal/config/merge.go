package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a config file's top level is not a YAML
// mapping of section names.
var ErrNotMapping = errors.New("config file must be a mapping of sections")

// sectionSetter decodes one top-level YAML section into a fresh value and
// stores it on the config, replacing what was there.
type sectionSetter func(node *yaml.Node) error

// replaceWith decodes into a zero S so fields the file omits do not survive
// from the previous value.
func replaceWith[S any](dst *S) sectionSetter {
	return func(node *yaml.Node) error {
		var v S
		if err := node.Decode(&v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// sections maps the file's top-level keys to the Config fields they replace.
func (c *Config) sections() map[string]sectionSetter {
	return map[string]sectionSetter{
		"endpoint": replaceWith(&c.Endpoint),
		"list":     replaceWith(&c.List),
		"logging":  replaceWith(&c.Logging),
	}
}

// ShallowMergeYAML applies the sections found in the file at path onto
// target. A section present in the file replaces the whole field; absent
// sections keep their current value and unknown keys are skipped.
func ShallowMergeYAML(target *Config, path string) error {
	if target == nil {
		return errors.New("config: nil target")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Tag == "!!null" {
		return nil
	}
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: %w", path, ErrNotMapping)
	}

	setters := target.sections()
	// Mapping content alternates key and value nodes.
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		set, ok := setters[key]
		if !ok {
			continue
		}
		if err = set(root.Content[i+1]); err != nil {
			return fmt.Errorf("config %s: section %q (line %d): %w", path, key, root.Content[i].Line, err)
		}
	}
	return nil
}
