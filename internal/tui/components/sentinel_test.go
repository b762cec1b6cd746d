package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelEmitsOncePerEntry(t *testing.T) {
	s := NewSentinel(DefaultSentinelOptions())
	s.SetPosition(20, 1)

	assert.Nil(t, s.Observe(Viewport{Top: 0, Height: 10}))
	assert.False(t, s.IsIntersecting())

	cmd := s.Observe(Viewport{Top: 11, Height: 10})
	require.NotNil(t, cmd)
	msg, ok := cmd().(SentinelMsg)
	require.True(t, ok)
	assert.Equal(t, 1.0, msg.Ratio)
	assert.True(t, s.IsIntersecting())

	// still visible: no further signal
	assert.Nil(t, s.Observe(Viewport{Top: 12, Height: 10}))

	// leave silently, then re-enter
	assert.Nil(t, s.Observe(Viewport{Top: 0, Height: 10}))
	assert.False(t, s.IsIntersecting())
	assert.NotNil(t, s.Observe(Viewport{Top: 15, Height: 10}))
}

func TestSentinelThreshold(t *testing.T) {
	full := NewSentinel(SentinelOptions{Threshold: 1.0})
	full.SetPosition(9, 2) // rows 9 and 10, only row 9 visible

	assert.Nil(t, full.Observe(Viewport{Top: 0, Height: 10}))
	assert.Equal(t, 0.5, full.Ratio())
	assert.False(t, full.IsIntersecting())

	half := NewSentinel(SentinelOptions{Threshold: 0.5})
	half.SetPosition(9, 2)
	assert.NotNil(t, half.Observe(Viewport{Top: 0, Height: 10}))

	anyOverlap := NewSentinel(SentinelOptions{Threshold: 0})
	anyOverlap.SetPosition(10, 1)
	assert.Nil(t, anyOverlap.Observe(Viewport{Top: 0, Height: 10}), "touching is not overlapping")
}

func TestSentinelRootMargin(t *testing.T) {
	s := NewSentinel(SentinelOptions{Threshold: 1.0, RootMargin: 3})
	s.SetPosition(12, 1)

	assert.NotNil(t, s.Observe(Viewport{Top: 0, Height: 10}))

	shrunk := NewSentinel(SentinelOptions{Threshold: 1.0, RootMargin: -1})
	shrunk.SetPosition(9, 1)
	assert.Nil(t, shrunk.Observe(Viewport{Top: 0, Height: 10}))
}

func TestSentinelDisconnect(t *testing.T) {
	s := NewSentinel(DefaultSentinelOptions())
	s.SetPosition(0, 1)
	require.NotNil(t, s.Observe(Viewport{Top: 0, Height: 5}))

	s.Disconnect()
	assert.False(t, s.IsIntersecting())

	s.Observe(Viewport{Top: 10, Height: 5})
	assert.Nil(t, s.Observe(Viewport{Top: 0, Height: 5}))
	assert.False(t, s.IsIntersecting())
}

func TestSentinelThresholdClamped(t *testing.T) {
	s := NewSentinel(SentinelOptions{Threshold: 4})
	s.SetPosition(0, 1)
	assert.NotNil(t, s.Observe(Viewport{Top: 0, Height: 1}))
}
