package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Lifecycle(t *testing.T) {
	var l Load[[]string]
	assert.Equal(t, Idle, l.Phase())
	assert.False(t, l.HasData())

	l.Begin()
	assert.True(t, l.IsLoading())

	l.Succeed([]string{"a", "b"})
	assert.Equal(t, Loaded, l.Phase())
	assert.Equal(t, []string{"a", "b"}, l.Data())
	assert.True(t, l.HasData())
}

func TestLoad_FailureKeepsPreviousData(t *testing.T) {
	var l Load[int]
	l.Begin()
	l.Succeed(42)

	l.Begin()
	assert.Equal(t, 42, l.Data(), "data survives a new request")

	err := errors.New("boom")
	l.Fail(err, "Failed to load")
	assert.Equal(t, Failed, l.Phase())
	assert.False(t, l.IsLoading())
	assert.Equal(t, 42, l.Data())
	assert.Same(t, err, l.Err())
	assert.Equal(t, "Failed to load", l.Message())

	l.Begin()
	assert.Nil(t, l.Err())
	assert.Empty(t, l.Message())
}

func TestLoad_AbortFallsBack(t *testing.T) {
	var l Load[int]
	l.Begin()
	l.Abort()
	assert.Equal(t, Idle, l.Phase())

	l.Succeed(3)
	l.Begin()
	l.Abort()
	assert.Equal(t, Loaded, l.Phase())
	assert.Equal(t, 3, l.Data())

	l.Fail(nil, "x")
	l.Abort()
	assert.Equal(t, Failed, l.Phase(), "Abort only affects Loading")
}

func TestLoad_Reset(t *testing.T) {
	var l Load[int]
	l.Succeed(7)
	l.Reset()
	assert.Equal(t, Idle, l.Phase())
	assert.Zero(t, l.Data())
	assert.False(t, l.HasData())
}

func TestPhaseStrings(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
