package handlers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"aurora/internal/blacklist"
	"aurora/internal/command"
	"aurora/internal/config"
	"aurora/pkg/fetch"
)

func testDeps(t *testing.T) *command.Deps {
	t.Helper()
	dir := t.TempDir()
	return &command.Deps{
		Config:    &config.Config{OwnerID: "owner"},
		Blacklist: blacklist.New(filepath.Join(dir, "gulag.txt")),
		Fetch:     fetch.New(),
		TempDir:   dir,
	}
}

func TestManifestLoadsCompletely(t *testing.T) {
	manifest := Manifest()
	registry := command.Load(manifest, testDeps(t), config.Definitions{})
	require.Len(t, registry.All(), len(manifest), "every constructor must load and names must be unique")
}

func TestManifestCoversDefinitions(t *testing.T) {
	registry := command.Load(Manifest(), testDeps(t), config.Definitions{})

	// Every chat command pushed to Discord needs a handler behind it, or
	// users get the not-implemented fallback.
	for _, def := range config.LoadDefinitions("").Global {
		_, ok := registry.Get(def.Name)
		require.True(t, ok, "definition %q has no handler", def.Name)
	}
}
