// Package arith implements the binary operations behind the calculator keys.
package arith

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidOperand  = errors.New("operand is not a finite number")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrUnknownOperator = errors.New("unknown operator")
)

// Operator is one of the four keys that combine two operands.
type Operator rune

const (
	OpAdd      Operator = '+'
	OpSubtract Operator = '-'
	OpMultiply Operator = '*'
	OpDivide   Operator = '/'
)

func (o Operator) String() string { return string(rune(o)) }

// Valid reports whether o is one of + - * /.
func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

func checkOperands(a, b float64) error {
	if !finite(a) || !finite(b) {
		return ErrInvalidOperand
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func Add(a, b float64) (float64, error) {
	if err := checkOperands(a, b); err != nil {
		return 0, err
	}
	return a + b, nil
}

func Subtract(a, b float64) (float64, error) {
	if err := checkOperands(a, b); err != nil {
		return 0, err
	}
	return a - b, nil
}

func Multiply(a, b float64) (float64, error) {
	if err := checkOperands(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// Divide returns ErrDivisionByZero for b == 0, including negative zero.
func Divide(a, b float64) (float64, error) {
	if err := checkOperands(a, b); err != nil {
		return 0, err
	}
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// Dispatch applies op to a and b.
func Dispatch(op Operator, a, b float64) (float64, error) {
	if err := checkOperands(a, b); err != nil {
		return 0, err
	}
	switch op {
	case OpAdd:
		return Add(a, b)
	case OpSubtract:
		return Subtract(a, b)
	case OpMultiply:
		return Multiply(a, b)
	case OpDivide:
		return Divide(a, b)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, rune(op))
	}
}
