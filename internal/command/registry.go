package command

import (
	"sort"

	"github.com/rs/zerolog/log"

	"aurora/internal/blacklist"
	"aurora/internal/config"
	"aurora/pkg/fetch"
)

// Deps is what handler constructors may draw on.
type Deps struct {
	Config    *config.Config
	Blacklist *blacklist.Service
	Fetch     *fetch.Client
	TempDir   string
}

// Entry is one line of the build-time handler manifest.
type Entry struct {
	Category string
	New      func(deps *Deps) (Command, error)
}

// Registry owns the name-keyed handler map, built once at startup and
// read-only afterwards, plus the static definitions pushed to Discord.
type Registry struct {
	commands map[string]Command
	defs     config.Definitions
}

// Load instantiates every manifest entry. A constructor that fails (or a
// duplicate name) is logged and skipped; one bad handler never aborts the
// rest.
func Load(manifest []Entry, deps *Deps, defs config.Definitions) *Registry {
	r := &Registry{
		commands: make(map[string]Command, len(manifest)),
		defs:     defs,
	}

	for _, entry := range manifest {
		cmd, err := entry.New(deps)
		if err != nil {
			log.Error().Err(err).Str("category", entry.Category).Msg("failed to load command")
			continue
		}
		if _, exists := r.commands[cmd.Name()]; exists {
			log.Warn().Str("command", cmd.Name()).Msg("duplicate command name, keeping first")
			continue
		}
		r.commands[cmd.Name()] = cmd
		log.Debug().Str("command", cmd.Name()).Str("category", entry.Category).Msg("loaded command")
	}

	log.Info().Int("count", len(r.commands)).Msg("commands loaded")
	return r
}

// Get returns the handler for name.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// All returns every handler sorted by name.
func (r *Registry) All() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Definitions returns the static command definition lists.
func (r *Registry) Definitions() config.Definitions {
	return r.defs
}
