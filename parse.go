package tagify

import (
	"regexp"
)

// Options control Parse. The zero value is usable: the prefix is "--"
// and the nil *bool fields take their defaults.
type Options struct {
	// String is the text to scan.
	String string

	// Prefix is regular expression text that introduces a tag.
	// Default "--". A leading ^ is ignored.
	Prefix string

	// PrefixPattern overrides Prefix.
	PrefixPattern *regexp.Regexp

	// NumbersInStrings lets string kind values contain digits and
	// underscores (\w+) rather than just letters. Default true.
	NumbersInStrings *bool

	// RemoveAllTags strips every prefixed word from the text, declared
	// or not. Declared tags whose values are malformed are removed
	// without capturing data.
	RemoveAllTags bool

	// NegativeNumbers lets numeric values start with "-". Default true.
	NegativeNumbers *bool

	// NumberDoubles lets numeric values have a fractional part.
	NumberDoubles bool

	// LowercaseTags reports tag names in Matches and the keys of Data
	// in lowercase instead of as declared.
	LowercaseTags bool

	// TagData seeds the tag types. It is not modified.
	TagData TagTypes

	// RepairValues retries object and array values that cannot be
	// read with a much more forgiving JSON repair.
	RepairValues bool
}

func (o Options) valueSettings() valueSettings {
	return valueSettings{
		numbersInStrings: boolDefault(o.NumbersInStrings, true),
		negativeNumbers:  boolDefault(o.NegativeNumbers, true),
		numberDoubles:    o.NumberDoubles,
	}
}

func (o Options) prefix() string {
	switch {
	case o.PrefixPattern != nil:
		return o.PrefixPattern.String()
	case o.Prefix != "":
		return o.Prefix
	default:
		return DefaultPrefix
	}
}

// Parse finds the tags described by tags in options.String. Each tag
// specification can be:
//
//	"bold"                   a bare tag
//	"fontSize 12"            a tag with an example value (numeric here)
//	Tag{Tag: "size", Value: Numeric}
//	Tags{"config": Object, "color": "red"}
//
// or a slice of those.
//
// Recognized tags are removed from the text (Result.NewString). Values
// are coerced: numbers to float64, booleans to bool, objects and
// arrays to map[string]interface{} and []interface{}.
//
// The only errors returned are for invalid prefixes or value patterns
// (see IsInvalidPatternError) and for tag specifications that are not
// one of the supported types.
func Parse(options Options, tags ...interface{}) (*Result, error) {
	return NewParser(WithOptions(options), WithTags(tags...)).Parse(options.String)
}

// ParseString is Parse with a default prefix of "-+" which matches one
// or more dashes.
func ParseString(text string, tags ...interface{}) (*Result, error) {
	return Parse(Options{
		String: text,
		Prefix: DefaultStringPrefix,
	}, tags...)
}
