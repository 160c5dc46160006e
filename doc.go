// Obligatory // comment

/*
Package tagify finds command tags in free text, removes them, and
reports what was found.

A command tag is a word introduced by a prefix, optionally followed by
a value:

	res, err := tagify.Parse(tagify.Options{
		String: "Write text --bold --fontSize 24",
	}, "bold", "italic", tagify.Tags{"fontSize": tagify.Numeric})

	res.NewString  // "Write text"
	res.Matches    // ["bold", "fontSize"]
	res.Data       // {"fontSize": 24.0}

The prefix is a regular expression. The default is "--". ParseString
uses "-+" so that any number of dashes work.

Tag specifications can be given in several ways:

	"bold"                                   bare tag
	"fontSize 12"                            typed by example: numeric
	"color red"                              typed by example: string
	Tag{Tag: "on", Value: true}              boolean
	Tag{Tag: "size", Value: tagify.Numeric}  kind marker
	Tags{"config": Object, "list": Array}    one tag per key
	Tag{Tag: "hex", Value: regexp.MustCompile(`#[0-9a-f]+`)}
	Tag{Tag: "id", Value: `[A-Z]{3}-\d+`, Resolve: pointer.ToBool(false)}

Value kinds and what they match:

	Boolean  true, false, yes, no (any case); coerced to bool
	Numeric  -?\d+, with an optional fraction if NumberDoubles; float64
	String   \w+ (or just letters if NumbersInStrings is false)
	Pattern  the caller's regular expression
	Object   {...}, read leniently: {size: 10, mode: fast}
	Array    [...], read leniently: [a, 'b c', 3]

Object and array values are read with package lenient which permits
unquoted keys and unquoted string values. If such a value cannot be
read, the tag is left in the text as if it had not been recognized
(unless RemoveAllTags is set).

A removed tag in the middle of the text leaves one space behind so that
words are not joined together and spaces are not doubled.

Tag names match without regard to case. Matches and the keys of Data
use the declared spelling unless LowercaseTags is set.

For repeated use, NewParser compiles the tags once. Results can be moved
into structs with a Decoder, and tag specifications can be kept in YAML
files (see SpecFile).

Debug logging is compiled in with the build tag "debugTagify".
*/
package tagify
