package tagify

import (
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
)

// Kind is the resolved type of a tag's value. It doubles as a marker:
// Tag{Tag: "fontSize", Value: Numeric} declares a numeric tag.
type Kind int

const (
	Unresolved Kind = iota
	Boolean
	Numeric
	String
	Pattern // value matched by a caller supplied *regexp.Regexp
	Object
	Array
)

var kindNames = map[Kind]string{
	Unresolved: "unresolved",
	Boolean:    "boolean",
	Numeric:    "numeric",
	String:     "string",
	Pattern:    "pattern",
	Object:     "object",
	Array:      "array",
}

var kindAliases = map[string]Kind{
	"bool":    Boolean,
	"boolean": Boolean,
	"number":  Numeric,
	"numeric": Numeric,
	"int":     Numeric,
	"float":   Numeric,
	"string":  String,
	"text":    String,
	"pattern": Pattern,
	"regexp":  Pattern,
	"regex":   Pattern,
	"object":  Object,
	"json":    Object,
	"map":     Object,
	"array":   Array,
	"list":    Array,
	"slice":   Array,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsStructured is true for the kinds whose values are read with the
// lenient object/array reader.
func (k Kind) IsStructured() bool {
	return k == Object || k == Array
}

// ParseKind accepts the kind names used in spec files and struct tags.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return Unresolved, errors.Errorf("unknown value kind '%s'", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TagTypes maps tag names to their resolved kinds.
type TagTypes map[string]Kind

// Copy returns an independent copy. The copy of a nil TagTypes is
// empty rather than nil.
func (t TagTypes) Copy() TagTypes {
	if t == nil {
		return make(TagTypes)
	}
	return deepcopy.Copy(t).(TagTypes)
}

// lookup finds name exactly or, failing that, case-insensitively. It
// returns the key as it appears in the map.
func (t TagTypes) lookup(name string) (string, Kind, bool) {
	if k, ok := t[name]; ok {
		return name, k, true
	}
	for key, k := range t {
		if strings.EqualFold(key, name) {
			return key, k, true
		}
	}
	return "", Unresolved, false
}
