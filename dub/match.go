package dub

import (
	"fmt"
	"strconv"
	"strings"
)

type matchItem struct {
	level   int
	matcher matcher
}

type matcher interface {
	match(i int) bool
}

type rangeMatch struct {
	start, end int
}

func (r rangeMatch) match(i int) bool {
	return (i >= r.start || r.start == -1) && (i <= r.end || r.end == -1)
}

var matchAll = rangeMatch{-1, -1}

type listMatch []int

func (l listMatch) match(i int) bool {
	for _, k := range l {
		if k == i {
			return true
		}
	}
	return false
}

// parseMatch reads the text of a pattern after its leading quote. Levels are
// separated by '/'; an empty level between two slashes is skipped, so
// '*//3,4 matches on the 16ths of every beat. Each level is '*', a range
// such as 2:4 or a list such as 1,3. pos is used for error messages.
func parseMatch(text string, pos int) (MatchExpr, error) {
	var m MatchExpr
	levels := strings.Split(text, "/")
	for level, part := range levels {
		switch {
		case part != "":
		case level == 0:
			return m, fmt.Errorf("pattern at position %d must start with a beat", pos)
		case level == len(levels)-1:
			return m, fmt.Errorf("pattern at position %d ends with '/'", pos)
		default:
			continue
		}
		mt, err := parseMatcher(part)
		if err != nil {
			return m, fmt.Errorf("pattern at position %d: %v", pos, err)
		}
		m.matchers = append(m.matchers, matchItem{level: level, matcher: mt})
	}
	return m, nil
}

func parseMatcher(s string) (matcher, error) {
	if s == "*" {
		return matchAll, nil
	}
	if from, to, ok := strings.Cut(s, ":"); ok {
		start, err := strconv.Atoi(from)
		if err != nil {
			return nil, fmt.Errorf("bad range start %q", from)
		}
		end, err := strconv.Atoi(to)
		if err != nil {
			return nil, fmt.Errorf("bad range end %q", to)
		}
		return rangeMatch{start: start, end: end}, nil
	}
	var list listMatch
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad step %q", f)
		}
		list = append(list, n)
	}
	return list, nil
}

// Steps evaluates the expression over a loop of beats, each divided into
// stepsPerBeat steps, and reports which steps are hit.
//
// Every '/' in the expression descends one level. Level 0 numbers the beats
// of the loop from 1; level n splits each beat into 2^n parts numbered from 1
// within the beat. '1,3/2' hits the second eighth of beats one and three.
func (m MatchExpr) Steps(beats, stepsPerBeat int) ([]bool, error) {
	steps := make([]bool, beats*stepsPerBeat)
	if len(m.matchers) == 0 {
		return steps, nil
	}
	// The deepest level marks hits, the levels above it only clear the
	// spans they don't match.
	for i := len(m.matchers) - 1; i >= 0; i-- {
		item := m.matchers[i]
		parts := 1 << item.level
		if parts > stepsPerBeat {
			return nil, fmt.Errorf("can't match on %d parts of a beat with %d steps per beat", parts, stepsPerBeat)
		}
		span := stepsPerBeat / parts
		deepest := i == len(m.matchers)-1

		for n, pos := 0, 0; pos < len(steps); n, pos = n+1, pos+span {
			num := n + 1 // beats are numbered across the loop
			if item.level > 0 {
				num = n%parts + 1
			}
			switch {
			case !item.matcher.match(num):
				for j := pos; j < pos+span; j++ {
					steps[j] = false
				}
			case deepest:
				steps[pos] = true
			}
		}
	}
	return steps, nil
}

// Positions returns the start of every hit step, in beats.
func (m MatchExpr) Positions(beats, stepsPerBeat int) ([]float64, error) {
	steps, err := m.Steps(beats, stepsPerBeat)
	if err != nil {
		return nil, err
	}
	var pos []float64
	for i, hit := range steps {
		if hit {
			pos = append(pos, float64(i)/float64(stepsPerBeat))
		}
	}
	return pos, nil
}
