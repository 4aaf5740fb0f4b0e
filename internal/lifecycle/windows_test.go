package lifecycle

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowSplashReplacesPrevious(t *testing.T) {
	f := &fakeFactory{}
	w := NewWindows(f, zerolog.Nop())

	w.ShowSplash()
	w.ShowSplash()

	splashes := f.byRole(RoleSplash)
	require.Len(t, splashes, 2)
	assert.Equal(t, 1, splashes[0].closes)
	assert.True(t, splashes[1].open())
	assert.Equal(t, 1, w.Count())
}

func TestShowSplashClosesMain(t *testing.T) {
	f := &fakeFactory{}
	w := NewWindows(f, zerolog.Nop())
	w.ShowMain(f.NewMain(nil))

	w.ShowSplash()

	assert.Nil(t, w.Main())
	assert.Equal(t, 1, f.byRole(RoleMain)[0].closes)
	assert.Equal(t, 1, f.openCount())
}

func TestShowMainClosesSplashAndBusy(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *Windows)
	}{
		{"never opened", func(*Windows) {}},
		{"open", func(w *Windows) { w.ShowSplash(); w.ShowBusy() }},
		{"already closed", func(w *Windows) { w.ShowBusy(); w.CloseBusy(); w.CloseBusy() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFactory{}
			w := NewWindows(f, zerolog.Nop())
			tt.setup(w)

			w.ShowMain(f.NewMain(nil))
			w.ShowMain(f.NewMain(nil))

			assert.Nil(t, w.Tracked(RoleSplash))
			assert.Nil(t, w.Tracked(RoleBusy))
			assert.Equal(t, 1, w.Count())
			assert.Equal(t, 1, f.openCount())
			for _, win := range f.created {
				assert.LessOrEqual(t, win.closes, 1, "window %d closed twice", win.id)
			}
		})
	}
}

func TestShowMainShowsBeforeClosingPrevious(t *testing.T) {
	f := &fakeFactory{}
	w := NewWindows(f, zerolog.Nop())
	first := f.NewMain(nil).(*fakeWindow)
	w.ShowMain(first)
	second := f.NewMain(nil).(*fakeWindow)

	w.ShowMain(second)

	assert.Equal(t, 1, second.shows)
	assert.Equal(t, 1, first.closes)
	assert.Same(t, second, w.Main())
}

func TestShowMainSameWindowIsNotClosed(t *testing.T) {
	f := &fakeFactory{}
	w := NewWindows(f, zerolog.Nop())
	main := f.NewMain(nil).(*fakeWindow)

	w.ShowMain(main)
	w.ShowMain(main)

	assert.Zero(t, main.closes)
}

func TestCloseAll(t *testing.T) {
	f := &fakeFactory{}
	w := NewWindows(f, zerolog.Nop())
	w.ShowSplash()
	w.ShowBusy()

	w.CloseAll()
	w.CloseAll()

	assert.Zero(t, w.Count())
	assert.Zero(t, f.openCount())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "busy", RoleBusy.String())
	assert.Equal(t, "unknown", Role(9).String())
}
