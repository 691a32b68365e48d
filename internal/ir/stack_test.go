package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackPushPop(t *testing.T) {
	st := NewSymbolicStack()
	assert.Equal(t, 0, st.Depth())

	st.Push(7)
	st.Push(8)
	assert.Equal(t, 2, st.Depth())

	r, ok := st.Pop()
	assert.True(t, ok)
	assert.Equal(t, Register(8), r)

	r, ok = st.Pop()
	assert.True(t, ok)
	assert.Equal(t, Register(7), r)

	_, ok = st.Pop()
	assert.False(t, ok, "pop on an empty stack reports underflow")
}

func TestStackCloneIsIndependent(t *testing.T) {
	st := NewSymbolicStack(1, 2, 3)
	clone := st.Clone()

	clone.Pop()
	clone.Push(9)
	clone.Set(0, 5)

	assert.Equal(t, Register(1), st.At(0))
	assert.Equal(t, Register(3), st.At(2))
	assert.Equal(t, 3, st.Depth())
}

func TestStackReplace(t *testing.T) {
	st := NewSymbolicStack(4, 5, 4)
	st.Replace(4, 6)

	assert.Equal(t, Register(6), st.At(0))
	assert.Equal(t, Register(5), st.At(1))
	assert.Equal(t, Register(6), st.At(2))
}
