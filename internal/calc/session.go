package calc

import (
	"math"

	"github.com/jask/jaskcalc/internal/arith"
)

const initialEntry = "0"

// Pending is the left-hand side of an operation waiting for its right operand.
// Operand and operator only ever exist together.
type Pending struct {
	Operand  float64
	Operator arith.Operator
}

// Session is the whole calculator state. There is no separate mode enum: the
// entry, the pending pair and the two flags are the state.
type Session struct {
	Entry       string
	Pending     *Pending
	FreshEntry  bool
	ResultShown bool
}

// String renders the pair the way the display shows it, e.g. "9 *".
func (p Pending) String() string {
	return numberString(p.Operand) + " " + p.Operator.String()
}

func initialSession() Session {
	return Session{Entry: initialEntry, FreshEntry: true}
}

// Display is the text shown for s: the full expression while the right
// operand is being typed, otherwise just the entry.
func (s Session) Display() string {
	if s.Pending != nil && !s.FreshEntry {
		return s.Pending.String() + " " + s.Entry
	}
	return s.Entry
}

func (s Session) clone() Session {
	if s.Pending != nil {
		p := *s.Pending
		s.Pending = &p
	}
	return s
}

func (s Session) equal(o Session) bool {
	if s.Entry != o.Entry || s.FreshEntry != o.FreshEntry || s.ResultShown != o.ResultShown {
		return false
	}
	if (s.Pending == nil) != (o.Pending == nil) {
		return false
	}
	if s.Pending == nil {
		return true
	}
	return s.Pending.Operator == o.Pending.Operator &&
		math.Float64bits(s.Pending.Operand) == math.Float64bits(o.Pending.Operand)
}
