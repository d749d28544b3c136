package dub

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/peterzimon/ZFM/synth"
)

type tokenType int

const (
	typeWord    tokenType = iota // command and preset names, on/off
	typeKey                      // dotted panel key: carrier.freq
	typeWave                     // waveform name: sine, saw
	typeInt                      // 60
	typeFloat                    // 92.5
	typeString                   // "tables/organ.wav"
	typePattern                  // '1,3/2
)

var tokenNames = [...]string{
	typeWord:    "word",
	typeKey:     "knob",
	typeWave:    "waveform",
	typeInt:     "integer",
	typeFloat:   "number",
	typeString:  "string",
	typePattern: "pattern",
}

func (t tokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return fmt.Sprintf("tokenType(%d)", int(t))
	}
	return tokenNames[t]
}

type token struct {
	typ  tokenType
	pos  int
	text string
}

// lex splits a command line into whitespace separated fields and classifies
// each one. Only double quoted strings may contain spaces.
func lex(input string) ([]token, error) {
	var tokens []token
	pos := 0
	for pos < len(input) {
		r, w := utf8.DecodeRuneInString(input[pos:])
		if unicode.IsSpace(r) {
			pos += w
			continue
		}
		var end int
		if r == '"' {
			n := strings.IndexByte(input[pos+1:], '"')
			if n < 0 {
				return nil, fmt.Errorf("unterminated string at position %d", pos)
			}
			end = pos + n + 2
			if end < len(input) && !isSpace(input[end:]) {
				return nil, fmt.Errorf("missing space after string at position %d", end)
			}
			tokens = append(tokens, token{typ: typeString, pos: pos, text: input[pos+1 : end-1]})
			pos = end
			continue
		}
		end = strings.IndexFunc(input[pos:], unicode.IsSpace)
		if end < 0 {
			end = len(input)
		} else {
			end += pos
		}
		t, err := classify(input[pos:end], pos)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
		pos = end
	}
	return tokens, nil
}

func isSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

func classify(field string, pos int) (token, error) {
	t := token{pos: pos, text: field}
	first, _ := utf8.DecodeRuneInString(field)
	switch {
	case first == '\'':
		t.typ = typePattern
		t.text = field[1:]
		if t.text == "" {
			return t, fmt.Errorf("empty pattern at position %d", pos)
		}
		if i := strings.IndexFunc(t.text, notPatternRune); i >= 0 {
			return t, unexpectedRune(t.text[i:], pos+1+i)
		}
	case first == '-' || first == '+' || first == '.' || isDigit(first):
		if _, err := strconv.Atoi(field); err == nil {
			t.typ = typeInt
			return t, nil
		}
		if _, err := strconv.ParseFloat(field, 64); err == nil {
			t.typ = typeFloat
			return t, nil
		}
		return t, fmt.Errorf("malformed number %q at position %d", field, pos)
	case unicode.IsLetter(first):
		if i := strings.IndexFunc(field, notWordRune); i >= 0 {
			return t, unexpectedRune(field[i:], pos+i)
		}
		switch {
		case strings.Contains(field, "."):
			t.typ = typeKey
		case isWave(field):
			t.typ = typeWave
		default:
			t.typ = typeWord
		}
	default:
		return t, unexpectedRune(field, pos)
	}
	return t, nil
}

func isWave(s string) bool {
	_, ok := synth.ParseWaveform(s)
	return ok
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func notWordRune(r rune) bool {
	return !(unicode.IsLetter(r) || isDigit(r) || r == '.' || r == '-' || r == '_')
}

func notPatternRune(r rune) bool {
	return !(isDigit(r) || strings.ContainsRune(",:/*", r))
}

func unexpectedRune(s string, pos int) error {
	r, _ := utf8.DecodeRuneInString(s)
	return fmt.Errorf("unexpected character %#U at position %d", r, pos)
}
