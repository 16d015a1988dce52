package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstant(t *testing.T) {
	s := Constant(2 * time.Second)
	for i := uint(1); i < 10; i++ {
		assert.Equal(t, 2*time.Second, s(i))
	}
}

func TestLinear(t *testing.T) {
	s := Linear(2 * time.Second)
	for i := uint(1); i < 10; i++ {
		assert.Equal(t, time.Duration(i)*2*time.Second, s(i))
	}
}

func TestExponential(t *testing.T) {
	s := Exponential(2*time.Second, 3)

	expected := 2 * time.Second
	for i := uint(1); i < 10; i++ {
		assert.Equal(t, expected, s(i))
		expected *= 3
	}
}

func TestBinaryExponential(t *testing.T) {
	s := BinaryExponential(time.Second)

	expected := time.Second
	for i := uint(1); i < 10; i++ {
		assert.Equal(t, expected, s(i))
		expected *= 2
	}
}
