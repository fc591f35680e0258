// Package handlers wires every command constructor into one build-time
// manifest the registry loads from.
package handlers

import (
	"aurora/internal/command"
	"aurora/internal/handlers/api"
	"aurora/internal/handlers/entertainment"
	"aurora/internal/handlers/general"
	"aurora/internal/handlers/media"
	"aurora/internal/handlers/network"
	"aurora/internal/handlers/tools"
)

// Manifest returns every known handler constructor. Order only matters for
// duplicate names, where the first wins.
func Manifest() []command.Entry {
	return []command.Entry{
		{Category: "api", New: api.NewWeather},
		{Category: "api", New: api.NewMCStatus},
		{Category: "api", New: api.NewAnimal},
		{Category: "api", New: api.NewAnime},
		{Category: "api", New: api.NewUrban},
		{Category: "api", New: api.NewWikipedia},

		{Category: "network", New: network.NewPing},
		{Category: "network", New: network.NewCheckDNS},
		{Category: "network", New: network.NewCheckPort},
		{Category: "network", New: network.NewTraceroute},
		{Category: "network", New: network.NewWhois},

		{Category: "tools", New: tools.NewBinary},
		{Category: "tools", New: tools.NewCurrency},
		{Category: "tools", New: tools.NewHash},
		{Category: "tools", New: tools.NewUUID},
		{Category: "tools", New: tools.NewGitHub},
		{Category: "tools", New: tools.NewTranslate},
		{Category: "tools", New: tools.NewRename},

		{Category: "media", New: media.NewGif},
		{Category: "media", New: media.NewWorseThanEpstein},

		{Category: "general", New: general.NewCody},
		{Category: "general", New: general.NewInfo},
		{Category: "general", New: general.NewStats},
		{Category: "general", New: general.NewServerStatus},
		{Category: "general", New: general.NewFetchData},

		{Category: "entertainment", New: entertainment.NewBlacklist},
		{Category: "entertainment", New: entertainment.NewGulag},
	}
}
