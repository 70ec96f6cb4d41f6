package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_HelpText(t *testing.T) {
	km := DefaultKeyMap()
	for _, b := range append(km.ShortHelp(), km.FullHelp()[0]...) {
		require.NotEmpty(t, b.Help().Key)
		require.NotEmpty(t, b.Help().Desc)
	}
}

func TestDefaultKeyMap_NoCollisionsWithTyping(t *testing.T) {
	// Text inputs receive every printable key except space on the algorithm
	// step, so step navigation must not use letters.
	km := DefaultKeyMap()
	for _, b := range []key.Binding{km.Next, km.Previous, km.Submit, km.Restart, km.Help, km.Quit, km.NextField, km.PrevField} {
		for _, k := range b.Keys() {
			require.Greater(t, len(k), 1, "binding %q would swallow a typed character", k)
		}
	}
}

func TestFullHelp_CoversEveryBinding(t *testing.T) {
	km := DefaultKeyMap()
	var n int
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	require.Equal(t, 11, n)
}
