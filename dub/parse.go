// Package dub parses the one-line commands typed into the instrument's
// prompt. A command is a name followed by arguments whose shapes are fixed
// per command by a Grammar: panel keys such as carrier.freq, waveform names,
// MIDI note numbers, plain numbers, names and rhythm patterns such as '1,3/2.
package dub

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterzimon/ZFM/synth"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgument       = errors.New("argument error")
)

// Node is a command argument.
type Node interface {
	isNode()
}

func (Identifier) isNode() {}
func (Key) isNode()        {}
func (Wave) isNode()       {}
func (Int) isNode()        {}
func (Float) isNode()      {}
func (String) isNode()     {}
func (MatchExpr) isNode()  {}

type Identifier string

// Key names a knob or button of the panel.
type Key string

type Wave synth.Waveform

func (w Wave) String() string { return synth.Waveform(w).String() }

type Int int
type Float float64
type String string

// MatchExpr selects steps of a rhythm; see Steps.
type MatchExpr struct {
	matchers []matchItem
}

// Command is a parsed line. Its arguments have the node types that the
// command's Signature promises.
type Command struct {
	Name string
	Args []Node
}

// Kind is the shape of one argument.
type Kind int

const (
	// Note is a MIDI value in 0-127, parsed to Int.
	Note Kind = iota
	// Number is an integer or decimal, parsed to Float.
	Number
	// Knob is a panel key, parsed to Key.
	Knob
	// Value is anything a knob accepts: Int, Float, Wave, Identifier or
	// String.
	Value
	// Name is a bare word or quoted string, parsed to String.
	Name
	// Pattern is a rhythm match expression, parsed to MatchExpr.
	Pattern
)

var kindNames = [...]string{
	Note:    "note",
	Number:  "number",
	Knob:    "knob",
	Value:   "value",
	Name:    "name",
	Pattern: "pattern",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Signature declares the arguments of a command. The last Optional
// arguments may be left out; a Variadic command repeats its last argument
// kind one or more times and needs at least one kind in Args.
type Signature struct {
	Name     string
	Args     []Kind
	Optional int
	Variadic bool
}

// String formats the signature as a usage line, e.g.
// "play <number> <note>...".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for i, k := range s.Args {
		b.WriteString(" ")
		optional := i >= len(s.Args)-s.Optional
		if optional {
			b.WriteString("[")
		}
		fmt.Fprintf(&b, "<%s>", k)
		if optional {
			b.WriteString("]")
		}
	}
	if s.Variadic {
		b.WriteString("...")
	}
	return b.String()
}

func (s Signature) checkCount(n int) error {
	min := len(s.Args) - s.Optional
	variadic := s.Variadic && len(s.Args) > 0
	switch {
	case variadic && n < min:
		return fmt.Errorf("%w: %s: need at least %d arguments, got %d", ErrArgument, s.Name, min, n)
	case variadic:
		return nil
	case n < min || n > len(s.Args):
		want := strconv.Itoa(min)
		if s.Optional > 0 {
			want = fmt.Sprintf("%d to %d", min, len(s.Args))
		}
		return fmt.Errorf("%w: %s: want %s arguments, got %d", ErrArgument, s.Name, want, n)
	}
	return nil
}

func (s Signature) kindAt(i int) Kind {
	if i >= len(s.Args) {
		return s.Args[len(s.Args)-1]
	}
	return s.Args[i]
}

// Grammar maps command names to their signatures.
type Grammar map[string]Signature

func NewGrammar(sigs ...Signature) Grammar {
	g := make(Grammar, len(sigs))
	for _, s := range sigs {
		g[s.Name] = s
	}
	return g
}

// Parse reads one command line and checks it against the command's
// signature.
func (g Grammar) Parse(input string) (Command, error) {
	tokens, err := lex(input)
	if err != nil {
		return Command{}, err
	}
	if len(tokens) == 0 {
		return Command{}, errors.New("empty command")
	}
	head := tokens[0]
	if head.typ != typeWord {
		return Command{}, fmt.Errorf("expected a command name at position %d, got %s %q", head.pos, head.typ, head.text)
	}
	sig, ok := g[head.text]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, head.text)
	}
	args := tokens[1:]
	if err := sig.checkCount(len(args)); err != nil {
		return Command{}, err
	}
	cmd := Command{Name: sig.Name}
	for i, t := range args {
		kind := sig.kindAt(i)
		node, err := argument(kind, t)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %s: argument %d: %v", ErrArgument, sig.Name, i+1, err)
		}
		cmd.Args = append(cmd.Args, node)
	}
	return cmd, nil
}

func argument(kind Kind, t token) (Node, error) {
	switch kind {
	case Note:
		if t.typ == typeInt {
			n, err := strconv.Atoi(t.text)
			if err != nil {
				return nil, err
			}
			if n < 0 || n > 127 {
				return nil, fmt.Errorf("%d out of range 0-127", n)
			}
			return Int(n), nil
		}
	case Number:
		if t.typ == typeInt || t.typ == typeFloat {
			f, err := strconv.ParseFloat(t.text, 64)
			return Float(f), err
		}
	case Knob:
		if t.typ == typeKey || t.typ == typeWord {
			return Key(t.text), nil
		}
	case Value:
		switch t.typ {
		case typeInt:
			n, err := strconv.Atoi(t.text)
			return Int(n), err
		case typeFloat:
			f, err := strconv.ParseFloat(t.text, 64)
			return Float(f), err
		case typeWave:
			w, _ := synth.ParseWaveform(t.text)
			return Wave(w), nil
		case typeWord:
			return Identifier(t.text), nil
		case typeString:
			return String(t.text), nil
		}
	case Name:
		switch t.typ {
		case typeWord, typeWave, typeString:
			return String(t.text), nil
		}
	case Pattern:
		if t.typ == typePattern {
			return parseMatch(t.text, t.pos+1)
		}
	}
	return nil, fmt.Errorf("want %s, got %s %q at position %d", kind, t.typ, t.text, t.pos)
}
