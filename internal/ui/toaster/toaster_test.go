package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestNew(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Catalog reloaded", StyleInfo, time.Millisecond)
	require.NotNil(t, cmd)
	require.True(t, m.Visible())
	require.Equal(t, "Catalog reloaded", m.Message())
	require.Contains(t, ansi.Strip(m.View()), "i Catalog reloaded")
}

func TestView_Styles(t *testing.T) {
	tests := []struct {
		style Style
		icon  string
	}{
		{StyleSuccess, "✓"},
		{StyleError, "✗"},
		{StyleInfo, "i"},
		{StyleWarn, "!"},
	}
	for _, tt := range tests {
		m, _ := New().Show("msg", tt.style, time.Second)
		require.Contains(t, ansi.Strip(m.View()), tt.icon+" msg")
	}
}

func TestDismiss(t *testing.T) {
	m, cmd := New().Show("hello", StyleSuccess, time.Millisecond)
	m = m.Update(cmd())
	require.False(t, m.Visible())
}

func TestStaleDismissKeepsNewerToast(t *testing.T) {
	m, first := New().Show("first", StyleSuccess, time.Millisecond)
	m, _ = m.Show("second", StyleWarn, time.Hour)

	m = m.Update(first())
	require.True(t, m.Visible())
	require.Equal(t, "second", m.Message())
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	bg := "line1\nline2"
	require.Equal(t, bg, New().Overlay(bg, 20, 2))
}

func TestOverlay_PlacesNearBottom(t *testing.T) {
	m, _ := New().Show("hi", StyleInfo, time.Second)
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 20)+"\n", 8), "\n")

	out := strings.Split(ansi.Strip(m.Overlay(bg, 20, 8)), "\n")
	require.Len(t, out, 8)
	require.Equal(t, strings.Repeat(".", 20), out[0])
	require.Contains(t, out[5], "i hi")
	require.Equal(t, strings.Repeat(".", 20), out[7])
	for _, line := range out {
		require.Equal(t, 20, ansi.StringWidth(line))
	}
}
