package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTranslation(t *testing.T) {
	raw := `[[["Hallo ","Hello ",null,null,10],["Welt","world",null,null,10]],null,"en"]`
	var payload []any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	translated, detected := parseTranslation(payload)
	require.Equal(t, "Hallo Welt", translated)
	require.Equal(t, "en", detected)
}

func TestParseTranslationMalformed(t *testing.T) {
	translated, detected := parseTranslation(nil)
	require.Empty(t, translated)
	require.Empty(t, detected)

	translated, _ = parseTranslation([]any{"not-a-list"})
	require.Empty(t, translated)
}
