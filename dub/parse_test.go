package dub

import (
	"errors"
	"reflect"
	"testing"

	"github.com/peterzimon/ZFM/synth"
)

var testGrammar = NewGrammar(
	Signature{Name: "set", Args: []Kind{Knob, Value}},
	Signature{Name: "press"},
	Signature{Name: "note", Args: []Kind{Note, Note}, Optional: 1},
	Signature{Name: "play", Args: []Kind{Number, Note}, Variadic: true},
	Signature{Name: "beat", Args: []Kind{Note, Pattern}},
	Signature{Name: "preset", Args: []Kind{Name}},
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{
			input: "set carrier.freq 512",
			want:  Command{Name: "set", Args: []Node{Key("carrier.freq"), Int(512)}},
		},
		{
			input: "set mod.wave square",
			want:  Command{Name: "set", Args: []Node{Key("mod.wave"), Wave(synth.Square)}},
		},
		{
			input: `set mod.wave "saw"`,
			want:  Command{Name: "set", Args: []Node{Key("mod.wave"), String("saw")}},
		},
		{
			input: "set coarse on",
			want:  Command{Name: "set", Args: []Node{Key("coarse"), Identifier("on")}},
		},
		{
			input: "set mod.speed 250.5",
			want:  Command{Name: "set", Args: []Node{Key("mod.speed"), Float(250.5)}},
		},
		{
			input: "press",
			want:  Command{Name: "press"},
		},
		{
			input: "note 60",
			want:  Command{Name: "note", Args: []Node{Int(60)}},
		},
		{
			input: "note 60 0",
			want:  Command{Name: "note", Args: []Node{Int(60), Int(0)}},
		},
		{
			input: "play 92.5 60 64 67",
			want:  Command{Name: "play", Args: []Node{Float(92.5), Int(60), Int(64), Int(67)}},
		},
		{
			input: "play 120 60",
			want:  Command{Name: "play", Args: []Node{Float(120), Int(60)}},
		},
		{
			input: "beat 60 '1",
			want: Command{Name: "beat", Args: []Node{
				Int(60),
				MatchExpr{matchers: []matchItem{{level: 0, matcher: listMatch{1}}}},
			}},
		},
		{
			input: "beat 36 '*/*",
			want: Command{Name: "beat", Args: []Node{
				Int(36),
				MatchExpr{matchers: []matchItem{
					{level: 0, matcher: matchAll},
					{level: 1, matcher: matchAll},
				}},
			}},
		},
		{
			input: "beat 60 '1,2//3:4",
			want: Command{Name: "beat", Args: []Node{
				Int(60),
				MatchExpr{matchers: []matchItem{
					{level: 0, matcher: listMatch{1, 2}},
					{level: 2, matcher: rangeMatch{start: 3, end: 4}},
				}},
			}},
		},
		{
			input: "preset growl",
			want:  Command{Name: "preset", Args: []Node{String("growl")}},
		},
		{
			input: `preset "lo fi"`,
			want:  Command{Name: "preset", Args: []Node{String("lo fi")}},
		},
	}
	for _, test := range tests {
		got, err := testGrammar.Parse(test.input)
		if err != nil {
			t.Errorf("%q: %v", test.input, err)
			continue
		}
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("%q:\nwant: %+v\ngot:  %+v", test.input, test.want, got)
		}
	}
}

func TestParseChecksArguments(t *testing.T) {
	for _, input := range []string{
		"set carrier.freq",
		"set 12 40",
		`set "carrier.freq" 40`,
		"set carrier.freq '1",
		"press now",
		"note",
		"note 60 100 1",
		"note 128",
		"note -1",
		"note 60.5",
		"note sixty",
		"play 120",
		"play fast 60",
		"play 120 60 200",
		"beat 60 1",
		"beat 60 '1:",
		"beat 60 '/2",
		"beat 60 '1/",
		"beat '1 60",
		"preset 12",
	} {
		_, err := testGrammar.Parse(input)
		if !errors.Is(err, ErrArgument) {
			t.Errorf("%q: want an argument error, got %v", input, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := testGrammar.Parse("bogus 1"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("want an unknown command error, got %v", err)
	}
	for _, input := range []string{
		"",
		"   ",
		"12 set",
		`"set" 1`,
		"carrier.freq 1",
		"saw",
		`preset "unterminated`,
	} {
		if _, err := testGrammar.Parse(input); err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}

func TestSignatureString(t *testing.T) {
	for _, test := range []struct {
		sig  Signature
		want string
	}{
		{Signature{Name: "press"}, "press"},
		{Signature{Name: "set", Args: []Kind{Knob, Value}}, "set <knob> <value>"},
		{Signature{Name: "note", Args: []Kind{Note, Note}, Optional: 1}, "note <note> [<note>]"},
		{Signature{Name: "play", Args: []Kind{Number, Note}, Variadic: true}, "play <number> <note>..."},
		{Signature{Name: "beat", Args: []Kind{Note, Pattern}}, "beat <note> <pattern>"},
	} {
		if got := test.sig.String(); got != test.want {
			t.Errorf("want %q, got %q", test.want, got)
		}
	}
}
