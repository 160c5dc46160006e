package tagify

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultPrefix       = "--"
	DefaultStringPrefix = "-+" // used by ParseString
)

// compiled holds the regular expressions built from a prefix and a set
// of fragments. It is not modified after compile returns.
type compiled struct {
	prefix    string
	pattern   *regexp.Regexp // nil when there are no fragments
	stripper  *regexp.Regexp // the prefix, anchored at the start
	stray     *regexp.Regexp // any prefixed word
	fragments map[string]struct{}
}

func compile(prefix string, fragments []string) (*compiled, error) {
	prefix = strings.TrimPrefix(prefix, "^")
	c := &compiled{
		prefix:    prefix,
		fragments: make(map[string]struct{}, len(fragments)),
	}
	for _, f := range fragments {
		c.fragments[f] = struct{}{}
	}

	var err error
	c.stripper, err = compileOne("prefix", `(?i)^(?:`+prefix+`)`)
	if err != nil {
		return nil, err
	}
	c.stray, err = compileOne("prefix", `(?i) ?(?:`+prefix+`)\w+ ?`)
	if err != nil {
		return nil, err
	}
	if len(fragments) == 0 {
		return c, nil
	}

	// A prefix that can start with a space would have the trailing
	// space of one match stolen from the next.
	trailing := " ?"
	if c.stripper.MatchString(" ") {
		trailing = ""
	}
	c.pattern, err = compileOne("tag", `(?i) ?(?:`+prefix+`)(?:`+strings.Join(fragments, "|")+`)`+trailing)
	if err != nil {
		return nil, err
	}
	debugf("tagify: compiled %s", c.pattern)
	return c, nil
}

func compileOne(what string, source string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, InvalidPatternError(errors.Wrapf(err, "invalid %s pattern '%s'", what, source))
	}
	return re, nil
}

// stripPrefix removes the prefix from the start of token.
func (c *compiled) stripPrefix(token string) string {
	if loc := c.stripper.FindStringIndex(token); loc != nil {
		return token[loc[1]:]
	}
	return token
}

func (c *compiled) isFragment(token string) bool {
	_, ok := c.fragments[token]
	return ok
}
