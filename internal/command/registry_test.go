package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"aurora/internal/config"
)

type stubCommand struct {
	Base
}

func (s *stubCommand) Execute(ic Interaction) error {
	Send(ic, &Response{Content: "ok"}, false)
	return nil
}

func stubEntry(name string) Entry {
	return Entry{
		Category: "test",
		New: func(*Deps) (Command, error) {
			return &stubCommand{Base: Base{CommandName: name, Desc: name}}, nil
		},
	}
}

func TestLoadSkipsFailingConstructor(t *testing.T) {
	manifest := []Entry{
		stubEntry("alpha"),
		{
			Category: "test",
			New: func(*Deps) (Command, error) {
				return nil, errors.New("constructor blew up")
			},
		},
		stubEntry("gamma"),
	}

	r := Load(manifest, &Deps{}, config.Definitions{})

	_, ok := r.Get("alpha")
	require.True(t, ok)
	_, ok = r.Get("gamma")
	require.True(t, ok)
	require.Len(t, r.All(), 2)
}

func TestLoadKeepsFirstOnDuplicateName(t *testing.T) {
	first := &stubCommand{Base: Base{CommandName: "dup", Desc: "first"}}
	second := &stubCommand{Base: Base{CommandName: "dup", Desc: "second"}}

	r := Load([]Entry{
		{Category: "test", New: func(*Deps) (Command, error) { return first, nil }},
		{Category: "test", New: func(*Deps) (Command, error) { return second, nil }},
	}, &Deps{}, config.Definitions{})

	cmd, ok := r.Get("dup")
	require.True(t, ok)
	require.Equal(t, "first", cmd.Description())
}

func TestAllSortedByName(t *testing.T) {
	r := Load([]Entry{stubEntry("zeta"), stubEntry("alpha"), stubEntry("mid")}, &Deps{}, config.Definitions{})

	var names []string
	for _, cmd := range r.All() {
		names = append(names, cmd.Name())
	}
	require.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}
