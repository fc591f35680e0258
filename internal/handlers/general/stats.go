package general

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
	"aurora/internal/version"
)

var processStart = time.Now()

// Stats reports process-level runtime statistics.
type Stats struct {
	command.Base
}

func NewStats(_ *command.Deps) (command.Command, error) {
	return &Stats{
		Base: command.Base{
			CommandName: "stats",
			Desc:        "Display bot runtime statistics",
			Cat:         "general",
		},
	}, nil
}

func (c *Stats) Execute(ic command.Interaction) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	uptime := time.Since(processStart).Round(time.Second)

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title: version.AppName + " stats",
			Color: 0x7289da,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Uptime", Value: uptime.String(), Inline: true},
				{Name: "Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
				{Name: "Heap", Value: fmt.Sprintf("%.1f MB", float64(mem.HeapAlloc)/(1<<20)), Inline: true},
				{Name: "Sys", Value: fmt.Sprintf("%.1f MB", float64(mem.Sys)/(1<<20)), Inline: true},
				{Name: "GC Cycles", Value: fmt.Sprintf("%d", mem.NumGC), Inline: true},
			},
		}},
	}, false)
	return nil
}
