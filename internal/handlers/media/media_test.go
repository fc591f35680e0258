package media

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtAllowlists(t *testing.T) {
	require.True(t, videoExts[".mp4"])
	require.True(t, imageExts[".png"])
	require.False(t, videoExts[".png"])
	require.False(t, imageExts[".exe"])
}

func TestEscapeDrawtext(t *testing.T) {
	require.Equal(t, `a\:b`, escapeDrawtext("a:b"))
	require.Equal(t, `100\%`, escapeDrawtext("100%"))
	require.Equal(t, `it\'s`, escapeDrawtext("it's"))
}
