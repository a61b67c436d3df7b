package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloat(t *testing.T) {
	assert.Equal(t, Amount(1999), FromFloat(19.99))
	assert.Equal(t, Amount(100), FromFloat(1.0))
	assert.Equal(t, Amount(0), FromFloat(0))
	// 0.1 + 0.2 style inputs must not lose a cent
	assert.Equal(t, Amount(30), FromFloat(0.1+0.2))
	assert.Equal(t, Amount(-1999), FromFloat(-19.99))
}

func TestMultiply(t *testing.T) {
	assert.Equal(t, Amount(5000), Multiply(1000, 5))
	assert.Equal(t, Amount(0), Multiply(1000, 0))
	assert.Equal(t, Amount(3*1999), Multiply(FromFloat(19.99), 3))
}

func TestSum(t *testing.T) {
	assert.Equal(t, Amount(0), Sum())
	assert.Equal(t, Amount(600), Sum(100, 200, 300))
}

func TestApplyRate(t *testing.T) {
	assert.Equal(t, Amount(100), ApplyRate(1000, 10))
	// 10% of $0.05 is half a cent, rounds up
	assert.Equal(t, Amount(1), ApplyRate(5, 10))
	// 10% of $0.04 rounds down
	assert.Equal(t, Amount(0), ApplyRate(4, 10))
	assert.Equal(t, Amount(0), ApplyRate(1000, 0))
}

// Recomputing a total from its lines many times must always give the same
// result; cent drift here would corrupt transaction totals.
func TestRecomputeStability(t *testing.T) {
	lines := []Amount{
		Multiply(FromFloat(12.37), 3),
		Multiply(FromFloat(0.99), 7),
		Multiply(FromFloat(150.01), 2),
	}

	first := Sum(lines...)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, first, Sum(lines...))
	}
	assert.Equal(t, Amount(3711+693+30002), first)
}
