package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastRandZeroSeed(t *testing.T) {
	r := NewFastRand(0)
	assert.NotZero(t, r.Next(), "zero seed must not lock the generator")
}

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestFastRandIntRangeInclusive(t *testing.T) {
	r := NewFastRand(7)
	seenLo, seenHi := false, false
	for i := 0; i < 10000; i++ {
		v := r.IntRange(15, 40)
		assert.GreaterOrEqual(t, v, 15)
		assert.LessOrEqual(t, v, 40)
		seenLo = seenLo || v == 15
		seenHi = seenHi || v == 40
	}
	assert.True(t, seenLo, "lower bound never produced")
	assert.True(t, seenHi, "upper bound never produced")
}

func TestFastRandDegenerate(t *testing.T) {
	r := NewFastRand(3)
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-5))
	assert.Equal(t, 9, r.IntRange(9, 9))
	assert.Equal(t, 9, r.IntRange(9, 2))
}

func TestFastRandFloat64Range(t *testing.T) {
	r := NewFastRand(99)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}
