package viewer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	on       bool
	deny     error
	requests int
	exits    int
}

func (d *fakeDisplay) RequestFullscreen(context.Context) error {
	d.requests++
	if d.deny != nil {
		return d.deny
	}
	d.on = true
	return nil
}

func (d *fakeDisplay) ExitFullscreen(context.Context) error {
	d.exits++
	d.on = false
	return nil
}

func (d *fakeDisplay) Fullscreen() bool {
	return d.on
}

func TestToggle_EnterAndExit(t *testing.T) {
	d := &fakeDisplay{}
	s := loaded(1)
	b := NewBridge(d, s)

	require.NoError(t, b.Toggle(t.Context()))
	assert.True(t, s.Snapshot().Fullscreen)
	assert.Equal(t, 1, d.requests)

	require.NoError(t, b.Toggle(t.Context()))
	assert.False(t, s.Snapshot().Fullscreen)
	assert.Equal(t, 1, d.exits)
}

func TestToggle_DenialIsSwallowed(t *testing.T) {
	denial := errors.New("not a terminal")
	d := &fakeDisplay{deny: denial}
	s := loaded(1)

	var seen error
	b := NewBridge(d, s, WithOnDenied(func(err error) { seen = err }))

	assert.NoError(t, b.Toggle(t.Context()))
	assert.False(t, s.Snapshot().Fullscreen)
	assert.ErrorIs(t, seen, denial)

	// without a hook nothing breaks either
	assert.NoError(t, NewBridge(d, s).Toggle(t.Context()))
}

func TestSync_FollowsPlatformExit(t *testing.T) {
	d := &fakeDisplay{}
	s := loaded(1)
	b := NewBridge(d, s)

	require.NoError(t, b.Toggle(t.Context()))
	require.True(t, s.Snapshot().Fullscreen)

	// escape pressed: the platform leaves fullscreen on its own
	d.on = false
	b.Sync()
	assert.False(t, s.Snapshot().Fullscreen)

	// the next toggle consults the display, so it enters again
	require.NoError(t, b.Toggle(t.Context()))
	assert.True(t, s.Snapshot().Fullscreen)
	assert.Equal(t, 2, d.requests)
}
