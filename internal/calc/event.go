package calc

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jask/jaskcalc/internal/arith"
)

// ErrInvalidInput is returned for events that no key could have produced.
var ErrInvalidInput = errors.New("invalid input event")

type EventKind int

const (
	EventDigit EventKind = iota + 1
	EventOperator
	EventEquals
	EventClear
)

// Event is one abstract key press.
type Event struct {
	Kind EventKind
	Key  rune
}

func Digit(d rune) Event { return Event{Kind: EventDigit, Key: d} }
func Operator(op arith.Operator) Event { return Event{Kind: EventOperator, Key: rune(op)} }
func Equals() Event { return Event{Kind: EventEquals} }
func Clear() Event { return Event{Kind: EventClear} }

func (e Event) String() string {
	switch e.Kind {
	case EventDigit:
		return fmt.Sprintf("digit(%c)", e.Key)
	case EventOperator:
		return fmt.Sprintf("operator(%c)", e.Key)
	case EventEquals:
		return "equals"
	case EventClear:
		return "clear"
	default:
		return fmt.Sprintf("event(%d)", int(e.Kind))
	}
}

// Validate checks the key carried by digit and operator events.
func (e Event) Validate() error {
	switch e.Kind {
	case EventDigit:
		if !isDigitKey(e.Key) {
			return fmt.Errorf("%w: digit %q", ErrInvalidInput, e.Key)
		}
	case EventOperator:
		if !arith.Operator(e.Key).Valid() {
			return fmt.Errorf("%w: operator %q", ErrInvalidInput, e.Key)
		}
	case EventEquals, EventClear:
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidInput, int(e.Kind))
	}
	return nil
}

func isDigitKey(r rune) bool {
	return r == '.' || (r >= '0' && r <= '9')
}

// ParseKeys turns a key script such as "7+2*3=" into events. 'c' clears,
// '=' evaluates, whitespace is skipped, and the '×' and '÷' labels map to
// multiply and divide.
func ParseKeys(script string) ([]Event, error) {
	events := make([]Event, 0, len(script))
	for i, r := range script {
		switch {
		case unicode.IsSpace(r):
			continue
		case isDigitKey(r):
			events = append(events, Digit(r))
		case r == '×' || r == 'x':
			events = append(events, Operator(arith.OpMultiply))
		case r == '÷':
			events = append(events, Operator(arith.OpDivide))
		case arith.Operator(r).Valid():
			events = append(events, Operator(arith.Operator(r)))
		case r == '=':
			events = append(events, Equals())
		case strings.ContainsRune("cC", r):
			events = append(events, Clear())
		default:
			return nil, fmt.Errorf("%w: key %q at offset %d", ErrInvalidInput, r, i)
		}
	}
	return events, nil
}
