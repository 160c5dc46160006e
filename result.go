package tagify

import (
	"encoding/json"
	"strings"

	"github.com/muir/nflex"
	"github.com/pkg/errors"
)

// Result is what Parse found.
type Result struct {
	// String is the text as given
	String string `json:"string"`

	// NewString is String with the recognized tags removed and the
	// whitespace around them collapsed
	NewString string `json:"newString"`

	// Matches lists the tags found, in the order first found
	Matches []string `json:"matches"`

	// Data has the coerced values of the tags that had values:
	// float64, bool, string, map[string]interface{}, or []interface{}
	Data map[string]interface{} `json:"data"`

	// TagData is the kind of each typed tag, including those from
	// Options.TagData
	TagData TagTypes `json:"tagData"`
}

// Has reports if tag was found. The comparison ignores case.
func (r *Result) Has(tag string) bool {
	for _, m := range r.Matches {
		if strings.EqualFold(m, tag) {
			return true
		}
	}
	return false
}

// Value returns the value of tag, ignoring case.
func (r *Result) Value(tag string) (interface{}, bool) {
	if v, ok := r.Data[tag]; ok {
		return v, true
	}
	for k, v := range r.Data {
		if strings.EqualFold(k, tag) {
			return v, true
		}
	}
	return nil, false
}

// Source provides a tag's value as an nflex.Source which is convenient
// for digging into object and array values:
//
//	src, err := res.Source("config")
//	size, err := src.GetInt("size")
func (r *Result) Source(tag string) (nflex.Source, error) {
	v, ok := r.Value(tag)
	if !ok {
		return nil, errors.Wrapf(nflex.ErrDoesNotExist, "tag %s has no value", tag)
	}
	enc, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, tag)
	}
	return nflex.UnmarshalJSON(enc)
}
