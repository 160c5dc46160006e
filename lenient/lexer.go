package lenient

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenLBrace
	tokenRBrace
	tokenLBracket
	tokenRBracket
	tokenColon
	tokenComma
	tokenString // "quoted" or 'quoted'
	tokenBare   // anything else up to a delimiter
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	case tokenString:
		return "string"
	case tokenBare:
		return "word"
	default:
		return "unknown"
	}
}

type token struct {
	typ    tokenType
	value  string // decoded for strings, raw for bare words
	offset int
}

type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// next returns the next token. Quoted strings may contain delimiters;
// bare words end at whitespace, a quote, or any structural character.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.input) {
		return token{typ: tokenEOF, offset: start}, nil
	}
	switch ch := l.input[l.pos]; ch {
	case '{':
		l.pos++
		return token{typ: tokenLBrace, value: "{", offset: start}, nil
	case '}':
		l.pos++
		return token{typ: tokenRBrace, value: "}", offset: start}, nil
	case '[':
		l.pos++
		return token{typ: tokenLBracket, value: "[", offset: start}, nil
	case ']':
		l.pos++
		return token{typ: tokenRBracket, value: "]", offset: start}, nil
	case ':':
		l.pos++
		return token{typ: tokenColon, value: ":", offset: start}, nil
	case ',':
		l.pos++
		return token{typ: tokenComma, value: ",", offset: start}, nil
	case '"', '\'':
		return l.scanString(ch)
	}
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if unicode.IsSpace(r) || isDelimiter(r) {
			break
		}
		l.pos += size
	}
	return token{typ: tokenBare, value: l.input[start:l.pos], offset: start}, nil
}

func isDelimiter(r rune) bool {
	switch r {
	case '{', '}', '[', ']', ':', ',', '"', '\'':
		return true
	}
	return false
}

func (l *lexer) scanString(quote byte) (token, error) {
	start := l.pos
	l.pos++ // opening quote

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return token{}, syntaxErrorf(start, "unterminated string")
		}
		ch := l.input[l.pos]
		if ch == quote {
			l.pos++
			break
		}
		if ch != '\\' {
			sb.WriteByte(ch)
			l.pos++
			continue
		}
		l.pos++
		if l.pos >= len(l.input) {
			return token{}, syntaxErrorf(l.pos, "unterminated escape")
		}
		escaped := l.input[l.pos]
		l.pos++
		switch escaped {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'u':
			r, err := l.hex4(l.pos)
			if err != nil {
				return token{}, err
			}
			l.pos += 4
			if utf16.IsSurrogate(r) && r < 0xDC00 && strings.HasPrefix(l.input[l.pos:], `\u`) {
				if low, err := l.hex4(l.pos + 2); err == nil && low >= 0xDC00 && low <= 0xDFFF {
					r = utf16.DecodeRune(r, low)
					l.pos += 6
				}
			}
			sb.WriteRune(r)
		default:
			// \" \' \\ \/ and anything else stand for themselves
			sb.WriteByte(escaped)
		}
	}
	return token{typ: tokenString, value: sb.String(), offset: start}, nil
}

// hex4 reads the four hex digits of a \u escape starting at pos.
func (l *lexer) hex4(pos int) (rune, error) {
	if pos+4 > len(l.input) {
		return 0, syntaxErrorf(pos, "short unicode escape")
	}
	code, err := strconv.ParseUint(l.input[pos:pos+4], 16, 32)
	if err != nil {
		return 0, syntaxErrorf(pos, "invalid unicode escape %q", l.input[pos:pos+4])
	}
	return rune(code), nil
}
