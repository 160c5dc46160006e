package tagify

import (
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/muir/commonerrors"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Tag is the structured form of a tag specification.
//
// Value is an example of (or a marker for) the value that follows the
// tag. It can be a Kind, a bool, any number, a string, a
// *regexp.Regexp, or a map, struct, slice, or array. A nil or empty
// Value declares a bare tag.
//
// When Resolve is false, Value is not interpreted: it is the regular
// expression that the tag's value must match and no kind is recorded
// for the tag.
//
// A Tag without a name is a shortcut: each key of Extra becomes its own
// tag, with the key's value as Value and inheriting Resolve.
type Tag struct {
	Tag     string
	Value   interface{}
	Resolve *bool
	Extra   Tags
}

// Tags is the object shortcut: Tags{"fontSize": Numeric, "config": Object}
// declares one tag per key.
type Tags map[string]interface{}

type valueSettings struct {
	numbersInStrings bool
	negativeNumbers  bool
	numberDoubles    bool
}

const (
	booleanPattern = `(?:true|false|yes|no)`
	objectPattern  = `\{[\s\S]+\}`
	arrayPattern   = `\[[\s\S]+\]`
)

func (s valueSettings) patternFor(k Kind) string {
	switch k {
	case Boolean:
		return booleanPattern
	case Numeric:
		p := `\d+`
		if s.negativeNumbers {
			p = `-?` + p
		}
		if s.numberDoubles {
			p += `(?:\.\d+)?`
		}
		return p
	case Object:
		return objectPattern
	case Array:
		return arrayPattern
	default:
		if s.numbersInStrings {
			return `\w+`
		}
		return `[A-Za-z]+`
	}
}

// normalized is the outcome of normalizing tag specifications.
type normalized struct {
	fragments []string // "name" or "name valuePattern"
	names     []string // declared tag names, first declaration first
	types     TagTypes
}

// normalize turns tag specifications into pattern fragments, extending
// a copy of types.
func normalize(s valueSettings, types TagTypes, specs []interface{}) (*normalized, error) {
	n := &normalized{
		types: types.Copy(),
	}
	tags, err := expandSpecs(flattenSpecs(specs))
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, tag := range tags {
		if _, ok := seen[tag.Tag]; !ok {
			seen[tag.Tag] = struct{}{}
			n.names = append(n.names, tag.Tag)
		}
		fragment, err := n.resolve(s, tag)
		if err != nil {
			return nil, errors.Wrap(err, tag.Tag)
		}
		n.fragments = append(n.fragments, fragment)
	}
	debugf("tagify: normalized %d specs into %v", len(tags), n.fragments)
	return n, nil
}

// flattenSpecs flattens sequences one level.
func flattenSpecs(specs []interface{}) []interface{} {
	flat := make([]interface{}, 0, len(specs))
	for _, spec := range specs {
		switch s := spec.(type) {
		case []interface{}:
			flat = append(flat, s...)
		case []string:
			for _, e := range s {
				flat = append(flat, e)
			}
		case []Tag:
			for _, e := range s {
				flat = append(flat, e)
			}
		case []Tags:
			for _, e := range s {
				flat = append(flat, e)
			}
		default:
			flat = append(flat, spec)
		}
	}
	return flat
}

// expandSpecs builds a new list of named descriptors from shorthand
// strings, descriptors, and object shortcuts.
func expandSpecs(specs []interface{}) ([]Tag, error) {
	tags := make([]Tag, 0, len(specs))
	for _, spec := range specs {
		switch s := spec.(type) {
		case string:
			if name, value, ok := splitFirst(strings.TrimSpace(s)); ok {
				tags = append(tags, Tag{Tag: name, Value: value})
			} else if name != "" {
				tags = append(tags, Tag{Tag: name})
			}
		case Tag:
			expanded, err := expandTag(s)
			if err != nil {
				return nil, err
			}
			tags = append(tags, expanded...)
		case *Tag:
			if s == nil {
				return nil, commonerrors.ProgrammerError(errors.New("nil *Tag in tag specifications"))
			}
			expanded, err := expandTag(*s)
			if err != nil {
				return nil, err
			}
			tags = append(tags, expanded...)
		case Tags:
			tags = append(tags, expandShortcut(s, nil)...)
		case map[string]interface{}:
			tags = append(tags, expandShortcut(s, nil)...)
		default:
			return nil, commonerrors.ProgrammerError(errors.Errorf("unsupported tag specification type %T", spec))
		}
	}
	return tags, nil
}

func expandTag(t Tag) ([]Tag, error) {
	if t.Tag != "" {
		return []Tag{t}, nil
	}
	if len(t.Extra) == 0 {
		return nil, commonerrors.ProgrammerError(errors.New("tag descriptor has neither a name nor extra tags"))
	}
	return expandShortcut(t.Extra, t.Resolve), nil
}

func expandShortcut(m map[string]interface{}, resolve *bool) []Tag {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tags := make([]Tag, len(keys))
	for i, k := range keys {
		tags[i] = Tag{
			Tag:     k,
			Value:   m[k],
			Resolve: resolve,
		}
	}
	return tags
}

func isBare(value interface{}) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

func (n *normalized) resolve(s valueSettings, tag Tag) (string, error) {
	if isBare(tag.Value) {
		return tag.Tag, nil
	}
	if tag.Resolve != nil && !*tag.Resolve {
		var source string
		switch v := tag.Value.(type) {
		case string:
			source = v
		case *regexp.Regexp:
			source = v.String()
		default:
			return "", commonerrors.ProgrammerError(errors.Errorf("an unresolved tag value must be a string or a *regexp.Regexp, not %T", tag.Value))
		}
		return tag.Tag + " (?:" + source + ")", nil
	}
	kind, err := inferKind(tag.Value)
	if err != nil {
		return "", err
	}
	if _, _, ok := n.types.lookup(tag.Tag); !ok {
		n.types[tag.Tag] = kind
	}
	if kind == Pattern {
		return tag.Tag + " (?:" + tag.Value.(*regexp.Regexp).String() + ")", nil
	}
	return tag.Tag + " " + s.patternFor(kind), nil
}

// inferKind decides a value's kind from a marker or an example. The
// first rule that applies wins: boolean, numeric, pattern,
// object or array, and finally string.
func inferKind(value interface{}) (Kind, error) {
	switch v := value.(type) {
	case Kind:
		switch v {
		case Pattern:
			return Unresolved, commonerrors.ProgrammerError(errors.New("the Pattern kind needs a *regexp.Regexp value"))
		case Unresolved:
			return Unresolved, commonerrors.ProgrammerError(errors.New("the Unresolved kind cannot be declared"))
		}
		return v, nil
	case bool:
		return Boolean, nil
	case string:
		switch {
		case v == "true", v == "false":
			return Boolean, nil
		case isNumberText(v):
			return Numeric, nil
		}
		return String, nil
	case *regexp.Regexp:
		if v == nil {
			return Unresolved, commonerrors.ProgrammerError(errors.New("nil *regexp.Regexp"))
		}
		return Pattern, nil
	}
	t := reflectutils.NonPointer(reflect.TypeOf(value))
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Numeric, nil
	case reflect.Map, reflect.Struct:
		return Object, nil
	case reflect.Slice, reflect.Array:
		return Array, nil
	}
	return String, nil
}

var numberTextRE = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?$`)

func isNumberText(s string) bool {
	return numberTextRE.MatchString(strings.TrimSpace(s))
}
