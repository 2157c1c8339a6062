// Package sequence implements elementary integer sequences with
// unbounded-precision results.
package sequence

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidArgument reports an argument outside a function's domain.
var ErrInvalidArgument = errors.New("invalid argument")

// Factorial computes n! by iterative accumulation, with 0! = 1. The result
// is exact for any n; 21! already exceeds the int64 range.
func Factorial(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: factorial is not defined for negative numbers", ErrInvalidArgument)
	}
	result := big.NewInt(1)
	for i := 2; i <= n; i++ {
		result.Mul(result, big.NewInt(int64(i)))
	}
	return result, nil
}

// Fibonacci returns the first n terms of the Fibonacci sequence, starting
// 0, 1, 1, 2, 3. The slice is empty (not nil) for n = 0. Negative counts are
// rejected rather than silently producing an empty sequence.
func Fibonacci(n int) ([]*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: fibonacci term count must be non-negative", ErrInvalidArgument)
	}
	terms := make([]*big.Int, 0, n)
	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < n; i++ {
		terms = append(terms, new(big.Int).Set(a))
		a, b = b, new(big.Int).Add(a, b)
	}
	return terms, nil
}
