package tagify

import (
	"strings"

	"github.com/muir/nject"
	"github.com/pkg/errors"

	"github.com/muir/tagify/lenient"
)

// Parser is a reusable, compiled set of tags. It is safe for
// concurrent use.
type Parser struct {
	options    Options
	specs      []interface{}
	normalized *normalized
	compiled   *compiled
	lenient    []lenient.Option
	onParsed   func(*Result) error
	delayedErr error
}

type ParserOptArg func(*Parser) error

// NewParser builds a Parser. Errors in the options, the tag
// specifications, or the patterns are returned by Parse.
//
//	p := tagify.NewParser(
//		tagify.WithPrefix("#"),
//		tagify.WithTags("urgent", tagify.Tags{"due": tagify.String}),
//	)
//	res, err := p.Parse("call the bank #urgent #due monday")
func NewParser(opts ...ParserOptArg) *Parser {
	p := &Parser{}
	p.delayedErr = p.opts(opts)
	if p.delayedErr == nil {
		p.delayedErr = p.build()
	}
	return p
}

func (p *Parser) opts(opts []ParserOptArg) error {
	for _, f := range opts {
		err := f(p)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) build() error {
	var err error
	p.normalized, err = normalize(p.options.valueSettings(), p.options.TagData, p.specs)
	if err != nil {
		return err
	}
	p.compiled, err = compile(p.options.prefix(), p.normalized.fragments)
	if err != nil {
		return err
	}
	if p.options.RepairValues {
		p.lenient = append(p.lenient, lenient.WithRepair())
	}
	return nil
}

// WithOptions replaces the options. Options.String is ignored: the
// text is passed to Parse.
func WithOptions(options Options) ParserOptArg {
	return func(p *Parser) error {
		p.options = options
		return nil
	}
}

// WithTags adds tag specifications. See Parse for what they can be.
func WithTags(specs ...interface{}) ParserOptArg {
	return func(p *Parser) error {
		p.specs = append(p.specs, specs...)
		return nil
	}
}

func WithPrefix(prefix string) ParserOptArg {
	return func(p *Parser) error {
		p.options.Prefix = prefix
		p.options.PrefixPattern = nil
		return nil
	}
}

// OnParsed is called after each successful Parse. The chain is bound
// with nject and is given the *Result. The chain can abort the Parse by
// returning a non-nil nject.TerminalError.
//
//	tagify.OnParsed(func(r *tagify.Result) nject.TerminalError {
//		if !r.Has("to") {
//			return errors.New("missing --to")
//		}
//		return nil
//	})
func OnParsed(chain ...interface{}) ParserOptArg {
	return func(p *Parser) error {
		return nject.Sequence("default-error-responder",
			nject.Provide("default-error", func() nject.TerminalError {
				return nil
			})).Append("on-parsed", chain...).Bind(&p.onParsed, nil)
	}
}

// Parse scans text. The returned Result belongs to the caller.
func (p *Parser) Parse(text string) (*Result, error) {
	if p.delayedErr != nil {
		return nil, p.delayedErr
	}
	res := p.scan(text)
	if p.onParsed != nil {
		err := p.onParsed(res)
		if err != nil {
			return nil, errors.Wrap(err, "on parsed")
		}
	}
	return res, nil
}

// canonical maps a matched tag name back to the declared spelling.
func (p *Parser) canonical(name string) string {
	for _, declared := range p.normalized.names {
		if declared == name {
			return name
		}
	}
	if key, _, ok := p.normalized.types.lookup(name); ok {
		return key
	}
	for _, declared := range p.normalized.names {
		if strings.EqualFold(declared, name) {
			return declared
		}
	}
	return name
}

func (p *Parser) report(name string) string {
	if p.options.LowercaseTags {
		return strings.ToLower(name)
	}
	return name
}
