package tagify

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/muir/tagify/lenient"
)

type scanner struct {
	p      *Parser
	input  string
	result *Result
	seen   map[string]struct{}
}

func (p *Parser) scan(text string) *Result {
	s := &scanner{
		p:     p,
		input: text,
		result: &Result{
			String:    text,
			NewString: text,
			Matches:   []string{},
			Data:      make(map[string]interface{}),
			TagData:   p.normalized.types.Copy(),
		},
		seen: make(map[string]struct{}),
	}
	if p.compiled.pattern != nil {
		s.result.NewString = strings.TrimSpace(p.compiled.pattern.ReplaceAllStringFunc(text, s.replace))
	}
	if p.options.RemoveAllTags {
		s.result.NewString = strings.TrimSpace(p.compiled.stray.ReplaceAllStringFunc(s.result.NewString, s.collapse))
	}
	return s.result
}

// collapse decides what a removed token leaves behind: a single space
// when it was surrounded by spaces in the middle of the text, and
// nothing otherwise.
func (s *scanner) collapse(raw string) string {
	if strings.HasPrefix(raw, " ") && strings.HasSuffix(raw, " ") &&
		!strings.HasPrefix(s.input, raw) && !strings.HasSuffix(s.input, raw) {
		return " "
	}
	return ""
}

func (s *scanner) replace(raw string) string {
	replacement := s.collapse(raw)
	token := s.p.compiled.stripPrefix(strings.TrimSpace(raw))

	name, value, split := s.split(token)
	if !split {
		s.match(s.p.canonical(name))
		return replacement
	}

	name = s.p.canonical(name)
	_, kind, _ := s.result.TagData.lookup(name)
	coerced, err := s.coerce(kind, value)
	if err != nil {
		debugf("tagify: %s value '%s' is malformed: %s", name, value, err)
		if s.p.options.RemoveAllTags {
			return replacement
		}
		return raw
	}
	s.result.Data[s.p.report(name)] = coerced
	s.match(name)
	return replacement
}

// split separates a token into tag name and value text. A token is
// split when its first word is a tag with a known kind or when it
// has whitespace and is not itself one of the declared fragments.
func (s *scanner) split(token string) (name string, value string, ok bool) {
	head, rest, hasSpace := splitFirst(token)
	if !hasSpace {
		return token, "", false
	}
	if _, _, known := s.result.TagData.lookup(head); known || !s.p.compiled.isFragment(token) {
		return head, rest, rest != ""
	}
	return token, "", false
}

func (s *scanner) match(name string) {
	name = s.p.report(name)
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.result.Matches = append(s.result.Matches, name)
}

func (s *scanner) coerce(kind Kind, text string) (interface{}, error) {
	switch kind {
	case Numeric:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errors.Wrap(err, "number")
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errors.Errorf("number '%s' is not finite", text)
		}
		return f, nil
	case Boolean:
		switch text {
		case "true", "yes":
			return true, nil
		case "false", "no":
			return false, nil
		}
		return text, nil
	case String:
		return text, nil
	}
	if kind.IsStructured() {
		return lenient.Parse(text, s.p.lenient...)
	}
	// Pattern and unresolved values only become structured when they
	// look structured. Anything else must be strict JSON to change
	// type, so 'quoted' text keeps its quotes.
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		if v, err := lenient.Parse(text, s.p.lenient...); err == nil {
			return v, nil
		}
		return text, nil
	}
	if v, err := lenient.Decode(text); err == nil {
		return v, nil
	}
	return text, nil
}
