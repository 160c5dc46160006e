package lenient

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var jsonNumberRE = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?$`)

// reader is a recursive descent parser that writes canonical JSON
// while it reads.
type reader struct {
	lex *lexer
	tok token
	out strings.Builder
}

// Canonicalize reads object or array shaped text that may use bare
// (unquoted) keys, bare string values, and single quoted strings and
// returns the equivalent strict JSON text.
//
//	{size: 10, mode: fast}  ->  {"size":10,"mode":"fast"}
//	[a, 'b c', 3]           ->  ["a","b c",3]
//
// Bare words true, false, and null keep their JSON meaning and bare
// words that are valid JSON numbers stay numbers. Anything quoted is
// taken literally, so colons and braces inside strings are safe.
func Canonicalize(text string) (string, error) {
	r := &reader{lex: newLexer(text)}
	if err := r.advance(); err != nil {
		return "", err
	}
	if r.tok.typ == tokenEOF {
		return "", syntaxErrorf(0, "empty input")
	}
	if err := r.value(); err != nil {
		return "", err
	}
	if r.tok.typ != tokenEOF {
		return "", syntaxErrorf(r.tok.offset, "unexpected %s after value", r.tok.typ)
	}
	return r.out.String(), nil
}

func (r *reader) advance() error {
	tok, err := r.lex.next()
	if err != nil {
		return err
	}
	r.tok = tok
	return nil
}

func (r *reader) expect(typ tokenType) error {
	if r.tok.typ != typ {
		return syntaxErrorf(r.tok.offset, "expected %s, found %s", typ, r.tok.typ)
	}
	return r.advance()
}

func (r *reader) value() error {
	switch r.tok.typ {
	case tokenLBrace:
		return r.object()
	case tokenLBracket:
		return r.array()
	case tokenString:
		writeString(&r.out, r.tok.value)
		return r.advance()
	case tokenBare:
		writeBare(&r.out, r.tok.value)
		return r.advance()
	default:
		return syntaxErrorf(r.tok.offset, "expected a value, found %s", r.tok.typ)
	}
}

// object: '{' [ key ':' value { ',' key ':' value } ] '}'
func (r *reader) object() error {
	if err := r.expect(tokenLBrace); err != nil {
		return err
	}
	r.out.WriteByte('{')
	if r.tok.typ == tokenRBrace {
		r.out.WriteByte('}')
		return r.advance()
	}
	for {
		switch r.tok.typ {
		case tokenString, tokenBare:
			writeString(&r.out, r.tok.value)
		default:
			return syntaxErrorf(r.tok.offset, "expected a key, found %s", r.tok.typ)
		}
		if err := r.advance(); err != nil {
			return err
		}
		if err := r.expect(tokenColon); err != nil {
			return err
		}
		r.out.WriteByte(':')
		if err := r.value(); err != nil {
			return err
		}
		switch r.tok.typ {
		case tokenComma:
			r.out.WriteByte(',')
			if err := r.advance(); err != nil {
				return err
			}
		case tokenRBrace:
			r.out.WriteByte('}')
			return r.advance()
		default:
			return syntaxErrorf(r.tok.offset, "expected ',' or '}', found %s", r.tok.typ)
		}
	}
}

// array: '[' [ value { ',' value } ] ']'
func (r *reader) array() error {
	if err := r.expect(tokenLBracket); err != nil {
		return err
	}
	r.out.WriteByte('[')
	if r.tok.typ == tokenRBracket {
		r.out.WriteByte(']')
		return r.advance()
	}
	for {
		if err := r.value(); err != nil {
			return err
		}
		switch r.tok.typ {
		case tokenComma:
			r.out.WriteByte(',')
			if err := r.advance(); err != nil {
				return err
			}
		case tokenRBracket:
			r.out.WriteByte(']')
			return r.advance()
		default:
			return syntaxErrorf(r.tok.offset, "expected ',' or ']', found %s", r.tok.typ)
		}
	}
}

func writeBare(sb *strings.Builder, word string) {
	switch {
	case word == "true", word == "false", word == "null":
		sb.WriteString(word)
	case jsonNumberRE.MatchString(word):
		sb.WriteString(word)
	default:
		writeString(sb, word)
	}
}

const hexDigits = "0123456789abcdef"

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20:
			sb.WriteString(`\u00`)
			sb.WriteByte(hexDigits[r>>4])
			sb.WriteByte(hexDigits[r&0xf])
		default:
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	sb.WriteByte('"')
}
