package dub

import (
	"reflect"
	"testing"
)

func TestMatchExprSteps(t *testing.T) {
	type test struct {
		input        string
		beats        int
		stepsPerBeat int
		expect       []int
	}
	tests := []test{
		{
			input:        "2,4/*",
			beats:        4,
			stepsPerBeat: 4,
			expect:       []int{0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 0, 1, 0},
		},
		{
			input:        "1:4",
			beats:        4,
			stepsPerBeat: 4,
			expect:       []int{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
		},
		{
			input:        "1:2//1:4",
			beats:        4,
			stepsPerBeat: 4,
			expect:       []int{1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			input:        "*//3,4",
			beats:        4,
			stepsPerBeat: 4,
			expect:       []int{0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1},
		},
		{
			input:        "*/2",
			beats:        4,
			stepsPerBeat: 4,
			expect:       []int{0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0},
		},
		{
			input:        "5",
			beats:        5,
			stepsPerBeat: 4,
			expect:       []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0},
		},
		{
			input:        "*",
			beats:        3,
			stepsPerBeat: 2,
			expect:       []int{1, 0, 1, 0, 1, 0},
		},
		{
			input:        "*",
			beats:        4,
			stepsPerBeat: 8,
			expect: []int{
				1, 0, 0, 0, 0, 0, 0, 0,
				1, 0, 0, 0, 0, 0, 0, 0,
				1, 0, 0, 0, 0, 0, 0, 0,
				1, 0, 0, 0, 0, 0, 0, 0,
			},
		},
		{
			input:        "*///2",
			beats:        1,
			stepsPerBeat: 8,
			expect:       []int{0, 1, 0, 0, 0, 0, 0, 0},
		},
	}
	for _, test := range tests {
		expr, err := parseMatch(test.input, 0)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		steps, err := expr.Steps(test.beats, test.stepsPerBeat)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		got := make([]int, len(steps))
		for i, hit := range steps {
			if hit {
				got[i] = 1
			}
		}
		if !reflect.DeepEqual(test.expect, got) {
			t.Errorf("%s: seq mismatch:\nwant %v\ngot: %v", test.input, test.expect, got)
		}
	}
}

func TestMatchExprTooFine(t *testing.T) {
	expr, err := parseMatch("*///1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := expr.Steps(4, 4); err == nil {
		t.Error("expected an error for 32nd notes with 4 steps per beat")
	}
}

func TestMatchExprPositions(t *testing.T) {
	expr, err := parseMatch("1,3/*/2,4", 0)
	if err != nil {
		t.Fatal(err)
	}
	got, err := expr.Positions(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{0.25, 0.75, 2.25, 2.75}; !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestParseMatchLevels(t *testing.T) {
	tests := []struct {
		input string
		want  []matchItem
	}{
		{"*", []matchItem{{level: 0, matcher: matchAll}}},
		{"2:4", []matchItem{{level: 0, matcher: rangeMatch{start: 2, end: 4}}}},
		{"*//3,4", []matchItem{
			{level: 0, matcher: matchAll},
			{level: 2, matcher: listMatch{3, 4}},
		}},
		{"1,3/*/2", []matchItem{
			{level: 0, matcher: listMatch{1, 3}},
			{level: 1, matcher: matchAll},
			{level: 2, matcher: listMatch{2}},
		}},
	}
	for _, test := range tests {
		got, err := parseMatch(test.input, 0)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		if !reflect.DeepEqual(test.want, got.matchers) {
			t.Errorf("%s:\nwant: %+v\ngot:  %+v", test.input, test.want, got.matchers)
		}
	}

	for _, input := range []string{"", "/1", "1/", "1,", ",1", "1:", ":2", "a", "1:2:3"} {
		if _, err := parseMatch(input, 0); err == nil {
			t.Errorf("expected error for pattern %q", input)
		}
	}
}
