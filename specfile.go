package tagify

import (
	"os"
	"regexp"

	"github.com/AlekSi/pointer"
	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SpecFile is a prefix, options, and tag specifications kept in a YAML
// (or JSON) file:
//
//	prefix: "--"
//	removeAllTags: true
//	tags:
//	  - bold
//	  - fontSize 12
//	  - tag: config
//	    kind: object
//	  - tag: color
//	    pattern: "#[0-9a-f]{6}"
//	    resolve: false
type SpecFile struct {
	Prefix           string    `yaml:"prefix"`
	RemoveAllTags    *bool     `yaml:"removeAllTags"`
	NumberDoubles    *bool     `yaml:"numberDoubles"`
	NegativeNumbers  *bool     `yaml:"negativeNumbers"`
	NumbersInStrings *bool     `yaml:"numbersInStrings"`
	LowercaseTags    *bool     `yaml:"lowercaseTags"`
	RepairValues     *bool     `yaml:"repairValues"`
	TagList          []SpecTag `yaml:"tags"`
}

// SpecTag is one entry in the tags list of a SpecFile. It can be
// written as a plain string ("bold", "fontSize 12") or as a mapping.
type SpecTag struct {
	Tag     string `yaml:"tag"`
	Kind    *Kind  `yaml:"kind"`
	Example string `yaml:"example"`
	Pattern string `yaml:"pattern"`
	Resolve *bool  `yaml:"resolve"`
}

func (s *SpecTag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var short string
		err := node.Decode(&short)
		if err != nil {
			return err
		}
		*s = SpecTag{Example: short}
		return nil
	}
	type plain SpecTag
	var p plain
	err := node.Decode(&p)
	if err != nil {
		return err
	}
	*s = SpecTag(p)
	return nil
}

// LoadSpecFile reads and parses a spec file.
func LoadSpecFile(path string) (*SpecFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, commonerrors.ConfigurationError(errors.Wrap(err, "read spec file"))
	}
	sf, err := ParseSpecFile(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return sf, nil
}

// ParseSpecFile parses YAML or JSON spec file content.
func ParseSpecFile(data []byte) (*SpecFile, error) {
	var sf SpecFile
	err := yaml.Unmarshal(data, &sf)
	if err != nil {
		return nil, commonerrors.ConfigurationError(errors.Wrap(err, "spec file"))
	}
	for i, t := range sf.TagList {
		if t.Tag == "" && t.Example == "" {
			return nil, commonerrors.ConfigurationError(errors.Errorf("spec file tag %d has no name", i))
		}
		if t.Kind != nil && *t.Kind == Pattern && t.Pattern == "" {
			return nil, commonerrors.ConfigurationError(errors.Errorf("spec file tag %s has kind pattern but no pattern", t.Tag))
		}
	}
	return &sf, nil
}

// Options returns Options with the settings from the file. String is
// left empty.
func (sf *SpecFile) Options() Options {
	return Options{
		Prefix:           sf.Prefix,
		RemoveAllTags:    pointer.GetBool(sf.RemoveAllTags),
		NumberDoubles:    pointer.GetBool(sf.NumberDoubles),
		NegativeNumbers:  sf.NegativeNumbers,
		NumbersInStrings: sf.NumbersInStrings,
		LowercaseTags:    pointer.GetBool(sf.LowercaseTags),
		RepairValues:     pointer.GetBool(sf.RepairValues),
	}
}

// Tags returns the tag specifications from the file.
func (sf *SpecFile) Tags() ([]interface{}, error) {
	specs := make([]interface{}, 0, len(sf.TagList))
	for _, t := range sf.TagList {
		if t.Tag == "" {
			specs = append(specs, t.Example)
			continue
		}
		tag := Tag{
			Tag:     t.Tag,
			Resolve: t.Resolve,
		}
		switch {
		case t.Pattern != "" && t.Resolve != nil && !*t.Resolve:
			tag.Value = t.Pattern
		case t.Pattern != "":
			re, err := regexp.Compile(t.Pattern)
			if err != nil {
				return nil, InvalidPatternError(errors.Wrapf(err, "tag %s", t.Tag))
			}
			tag.Value = re
		case t.Kind != nil:
			tag.Value = *t.Kind
		case t.Example != "":
			tag.Value = t.Example
		}
		specs = append(specs, tag)
	}
	return specs, nil
}
