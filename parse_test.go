package tagify

import (
	"regexp"
	"testing"

	"github.com/AlekSi/pointer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cases = []struct {
	name      string
	options   Options
	tags      []interface{}
	newString string
	matches   []string
	data      map[string]interface{}
}{
	{
		name:      "formatting",
		options:   Options{String: "Write text --bold --italic --fontSize 24", Prefix: "--"},
		tags:      []interface{}{"bold", "italic", "strikethrough", "underline", Tags{"fontSize": Numeric}},
		newString: "Write text",
		matches:   []string{"bold", "italic", "fontSize"},
		data:      map[string]interface{}{"fontSize": float64(24)},
	},
	{
		name:      "no tags present",
		options:   Options{String: "no tags here"},
		tags:      []interface{}{"bold", "italic"},
		newString: "no tags here",
		matches:   []string{},
		data:      map[string]interface{}{},
	},
	{
		name:      "no specs leaves the text alone",
		options:   Options{String: "  keep --these  spaces "},
		newString: "  keep --these  spaces ",
		matches:   []string{},
		data:      map[string]interface{}{},
	},
	{
		name:      "structured",
		options:   Options{String: "--config {size: 10, mode: fast}"},
		tags:      []interface{}{Tags{"config": Object}},
		newString: "",
		matches:   []string{"config"},
		data: map[string]interface{}{
			"config": map[string]interface{}{"size": float64(10), "mode": "fast"},
		},
	},
	{
		name:      "repeated bare tag",
		options:   Options{String: "--bold a --bold b --bold"},
		tags:      []interface{}{"bold"},
		newString: "a b",
		matches:   []string{"bold"},
		data:      map[string]interface{}{},
	},
	{
		name:      "negative number",
		options:   Options{String: "move --by -12 please"},
		tags:      []interface{}{Tag{Tag: "by", Value: 5}},
		newString: "move please",
		matches:   []string{"by"},
		data:      map[string]interface{}{"by": float64(-12)},
	},
	{
		name:      "negative numbers disabled",
		options:   Options{String: "move --by -12", NegativeNumbers: pointer.ToBool(false)},
		tags:      []interface{}{Tag{Tag: "by", Value: 5}},
		newString: "move --by -12",
		matches:   []string{},
		data:      map[string]interface{}{},
	},
	{
		name:      "doubles",
		options:   Options{String: "zoom --scale 1.5 in", NumberDoubles: true},
		tags:      []interface{}{"scale 2"},
		newString: "zoom in",
		matches:   []string{"scale"},
		data:      map[string]interface{}{"scale": 1.5},
	},
	{
		name:      "booleans",
		options:   Options{String: "--on yes --off no --shout TRUE done"},
		tags:      []interface{}{Tag{Tag: "on", Value: true}, "off false", Tag{Tag: "shout", Value: Boolean}},
		newString: "done",
		matches:   []string{"on", "off", "shout"},
		data:      map[string]interface{}{"on": true, "off": false, "shout": "TRUE"},
	},
	{
		name:      "string example",
		options:   Options{String: "paint it --color red now"},
		tags:      []interface{}{"color blue"},
		newString: "paint it now",
		matches:   []string{"color"},
		data:      map[string]interface{}{"color": "red"},
	},
	{
		name:      "letters only strings",
		options:   Options{String: "--name 123", NumbersInStrings: pointer.ToBool(false)},
		tags:      []interface{}{"name fred"},
		newString: "--name 123",
		matches:   []string{},
		data:      map[string]interface{}{},
	},
	{
		name:      "array",
		options:   Options{String: "pick --sizes [1, 2, 3] of these"},
		tags:      []interface{}{Tag{Tag: "sizes", Value: []int{}}},
		newString: "pick of these",
		matches:   []string{"sizes"},
		data:      map[string]interface{}{"sizes": []interface{}{float64(1), float64(2), float64(3)}},
	},
	{
		name:      "object example value",
		options:   Options{String: "--style {font: 'Times New Roman', size: 12}"},
		tags:      []interface{}{Tag{Tag: "style", Value: map[string]int{}}},
		newString: "",
		matches:   []string{"style"},
		data: map[string]interface{}{
			"style": map[string]interface{}{"font": "Times New Roman", "size": float64(12)},
		},
	},
	{
		name:      "malformed value is reverted",
		options:   Options{String: "start --config {bad: [} end"},
		tags:      []interface{}{Tags{"config": Object}},
		newString: "start --config {bad: [} end",
		matches:   []string{},
		data:      map[string]interface{}{},
	},
	{
		name:      "malformed value is removed with remove all",
		options:   Options{String: "start --config {bad: [} end", RemoveAllTags: true},
		tags:      []interface{}{Tags{"config": Object}},
		newString: "start end",
		matches:   []string{},
		data:      map[string]interface{}{},
	},
	{
		name:      "remove all",
		options:   Options{String: "--x hello --bold --y world --z", RemoveAllTags: true},
		tags:      []interface{}{"bold"},
		newString: "hello world",
		matches:   []string{"bold"},
		data:      map[string]interface{}{},
	},
	{
		name:      "remove all without specs",
		options:   Options{String: "a --x --y b", RemoveAllTags: true},
		newString: "a b",
		matches:   []string{},
		data:      map[string]interface{}{},
	},
	{
		name:      "case insensitive",
		options:   Options{String: "--BOLD it --FontSize 3"},
		tags:      []interface{}{"bold", Tags{"fontSize": Numeric}},
		newString: "it",
		matches:   []string{"bold", "fontSize"},
		data:      map[string]interface{}{"fontSize": float64(3)},
	},
	{
		name:      "lowercase reporting",
		options:   Options{String: "--BOLD it --FontSize 3", LowercaseTags: true},
		tags:      []interface{}{"bold", Tags{"fontSize": Numeric}},
		newString: "it",
		matches:   []string{"bold", "fontsize"},
		data:      map[string]interface{}{"fontsize": float64(3)},
	},
	{
		name:      "unresolved pattern",
		options:   Options{String: "ticket --id ABC-123 open"},
		tags:      []interface{}{Tag{Tag: "id", Value: `[A-Z]{3}-\d+`, Resolve: pointer.ToBool(false)}},
		newString: "ticket open",
		matches:   []string{"id"},
		data:      map[string]interface{}{"id": "ABC-123"},
	},
	{
		name:      "regexp value",
		options:   Options{String: "color --hex #00ff00 please"},
		tags:      []interface{}{Tag{Tag: "hex", Value: regexp.MustCompile(`#[0-9a-f]{6}`)}},
		newString: "color please",
		matches:   []string{"hex"},
		data:      map[string]interface{}{"hex": "#00ff00"},
	},
	{
		name:      "prefix pattern",
		options:   Options{String: "go @fast or /slow", PrefixPattern: regexp.MustCompile(`[@/]`)},
		tags:      []interface{}{[]string{"fast", "slow"}},
		newString: "go or",
		matches:   []string{"fast", "slow"},
		data:      map[string]interface{}{},
	},
	{
		name:      "anchored prefix",
		options:   Options{String: "a ##b c", Prefix: "^##"},
		tags:      []interface{}{"b"},
		newString: "a c",
		matches:   []string{"b"},
		data:      map[string]interface{}{},
	},
	{
		name:      "extra with resolve",
		options:   Options{String: "--a x1 --b 7"},
		tags:      []interface{}{Tag{Extra: Tags{"a": "", "b": Numeric}}},
		newString: "x1",
		matches:   []string{"a", "b"},
		data:      map[string]interface{}{"b": float64(7)},
	},
	{
		name:      "escaped surrogate pair",
		options:   Options{String: "a --j {k: \"\\uD83D\\uDE00\"}"},
		tags:      []interface{}{Tag{Tag: "j", Value: Object}},
		newString: "a",
		matches:   []string{"j"},
		data:      map[string]interface{}{"j": map[string]interface{}{"k": "😀"}},
	},
	{
		name:      "infinite number is reverted",
		options:   Options{String: "--size inf", TagData: TagTypes{"size": Numeric}},
		tags:      []interface{}{"size word"},
		newString: "--size inf",
		matches:   []string{},
		data:      map[string]interface{}{},
	},
	{
		name:      "single quoted unresolved value keeps quotes",
		options:   Options{String: "--id 'abc' x"},
		tags:      []interface{}{Tag{Tag: "id", Value: `'\w+'`, Resolve: pointer.ToBool(false)}},
		newString: "x",
		matches:   []string{"id"},
		data:      map[string]interface{}{"id": "'abc'"},
	},
	{
		name:      "double quoted pattern value is json",
		options:   Options{String: `say --q "hi"`},
		tags:      []interface{}{Tag{Tag: "q", Value: regexp.MustCompile(`"\w+"`)}},
		newString: "say",
		matches:   []string{"q"},
		data:      map[string]interface{}{"q": "hi"},
	},
	{
		name:      "not a number pattern value",
		options:   Options{String: "--v nan --w 7"},
		tags:      []interface{}{Tag{Tag: "v", Value: regexp.MustCompile(`[a-z]+`)}, Tag{Tag: "w", Value: regexp.MustCompile(`\d+`)}},
		newString: "",
		matches:   []string{"v", "w"},
		data:      map[string]interface{}{"v": "nan", "w": float64(7)},
	},
}

func TestParse(t *testing.T) {
	for _, tc := range cases {
		t.Log(tc.name)
		res, err := Parse(tc.options, tc.tags...)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.options.String, res.String, tc.name+" string")
		assert.Equal(t, tc.newString, res.NewString, tc.name+" new string")
		assert.Equal(t, tc.matches, res.Matches, tc.name+" matches")
		assert.Equal(t, tc.data, res.Data, tc.name+" data")
		for k := range res.Data {
			assert.Contains(t, res.Matches, k, tc.name+" data key in matches")
		}
	}
}

func TestParseString(t *testing.T) {
	res, err := ParseString("hello -bold ---italic", "bold", "italic")
	require.NoError(t, err)
	assert.Equal(t, "hello", res.NewString)
	assert.Equal(t, []string{"bold", "italic"}, res.Matches)
}

func TestTagDataNotModified(t *testing.T) {
	seed := TagTypes{"level": String}
	res, err := Parse(Options{
		String:  "--level high --size 3",
		TagData: seed,
	}, "level low", Tags{"size": Numeric})
	require.NoError(t, err)
	assert.Equal(t, TagTypes{"level": String}, seed, "seed")
	assert.Equal(t, TagTypes{"level": String, "size": Numeric}, res.TagData, "result tag data")
	assert.Equal(t, map[string]interface{}{"level": "high", "size": float64(3)}, res.Data)
	assert.Equal(t, "", res.NewString)
	assert.Equal(t, []string{"level", "size"}, res.Matches)
}

func TestTagDataNotOverwritten(t *testing.T) {
	res, err := Parse(Options{
		String:  "--n abc",
		TagData: TagTypes{"n": String},
	}, Tag{Tag: "n", Value: Numeric})
	require.NoError(t, err)
	assert.Equal(t, String, res.TagData["n"])
}

func TestUnresolvedNotRecorded(t *testing.T) {
	res, err := Parse(Options{String: "--when 10:30"},
		Tag{Tag: "when", Value: `\d+:\d+`, Resolve: pointer.ToBool(false)})
	require.NoError(t, err)
	_, ok := res.TagData["when"]
	assert.False(t, ok)
	assert.Equal(t, "10:30", res.Data["when"])
}

func TestRepairValues(t *testing.T) {
	text := `set --config {"a": 1,}`
	res, err := Parse(Options{String: text}, Tags{"config": Object})
	require.NoError(t, err)
	assert.Equal(t, text, res.NewString, "not repaired")

	res, err = Parse(Options{String: text, RepairValues: true}, Tags{"config": Object})
	require.NoError(t, err)
	assert.Equal(t, "set", res.NewString, "repaired")
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, res.Data["config"])
}

func TestInvalidPattern(t *testing.T) {
	_, err := Parse(Options{String: "x", Prefix: "("}, "bold")
	require.Error(t, err)
	assert.True(t, IsInvalidPatternError(err), "prefix")

	_, err = Parse(Options{String: "x"},
		Tag{Tag: "bad", Value: "[", Resolve: pointer.ToBool(false)})
	require.Error(t, err)
	assert.True(t, IsInvalidPatternError(err), "value pattern")

	assert.True(t, IsInvalidPatternError(errors.Wrap(err, "building parser")), "wrapped")
	assert.False(t, IsInvalidPatternError(errors.New("plain")), "plain")
	assert.False(t, IsInvalidPatternError(nil))
	assert.Nil(t, InvalidPatternError(nil))
}

func TestBadSpecs(t *testing.T) {
	for _, spec := range []interface{}{
		42,
		Tag{},
		(*Tag)(nil),
		Tag{Tag: "p", Value: Pattern},
		Tag{Tag: "u", Value: Unresolved},
		Tag{Tag: "r", Value: 3, Resolve: pointer.ToBool(false)},
	} {
		_, err := Parse(Options{String: "x"}, spec)
		assert.Error(t, err, "%#v", spec)
		assert.False(t, IsInvalidPatternError(err), "%#v", spec)
	}
}

func TestResultAccess(t *testing.T) {
	res, err := Parse(Options{String: "--config {size: 10, mode: fast} --bold"},
		"bold", Tags{"config": Object})
	require.NoError(t, err)
	assert.True(t, res.Has("BOLD"))
	assert.False(t, res.Has("italic"))

	v, ok := res.Value("Config")
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"size": float64(10), "mode": "fast"}, v)

	src, err := res.Source("config")
	require.NoError(t, err)
	size, err := src.GetInt("size")
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
	mode, err := src.GetString("mode")
	require.NoError(t, err)
	assert.Equal(t, "fast", mode)

	_, err = res.Source("bold")
	assert.Error(t, err)
}
