package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

const defaultCaption = "worse than epstein"

// WorseThanEpstein stamps a caption onto an image with ffmpeg's drawtext.
type WorseThanEpstein struct {
	command.Base
	client  *fetch.Client
	tempDir string
}

func NewWorseThanEpstein(deps *command.Deps) (command.Command, error) {
	c := &WorseThanEpstein{
		Base: command.Base{
			CommandName: "worsethanepstein",
			Desc:        "Stamp a caption onto an image",
			Cat:         "media",
		},
		client:  deps.Fetch,
		tempDir: deps.TempDir,
	}
	c.WithCooldown(10 * time.Second)
	return c, nil
}

func (c *WorseThanEpstein) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	file := ic.Options().Attachment("file")
	source := ic.Options().String("url")
	if file == nil && source == "" {
		command.SendError(ic, "Please provide an image or a URL.")
		return nil
	}

	srcURL, name := source, ""
	if file != nil {
		srcURL, name = file.URL, file.Filename
	} else {
		name = path.Base(strings.SplitN(source, "?", 2)[0])
	}

	ext := strings.ToLower(path.Ext(name))
	if !imageExts[ext] {
		command.SendError(ic, fmt.Sprintf("Unsupported file type **%s**.", ext))
		return nil
	}

	caption := strings.TrimSpace(ic.Options().String("caption"))
	if caption == "" {
		caption = defaultCaption
	}

	dir, err := os.MkdirTemp(c.tempDir, "caption-"+uuid.NewString()[:8]+"-")
	if err != nil {
		command.SendError(ic, "Could not create a working directory.")
		return nil
	}
	defer os.RemoveAll(dir)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	input := filepath.Join(dir, "input"+ext)
	if err := c.client.Download(ctx, srcURL, input); err != nil {
		command.SendError(ic, "Could not download the image.")
		return nil
	}

	output := filepath.Join(dir, "output.png")
	filter := fmt.Sprintf(
		"drawtext=text='%s':fontcolor=white:borderw=3:bordercolor=black:fontsize=h/12:x=(w-text_w)/2:y=h-text_h-h/20",
		escapeDrawtext(caption))
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", input,
		"-vf", filter,
		"-y", output)
	if out, err := cmd.CombinedOutput(); err != nil {
		command.SendError(ic, fmt.Sprintf("Captioning failed: %s", strings.TrimSpace(string(out))))
		return nil
	}

	f, err := os.Open(output)
	if err != nil {
		command.SendError(ic, "Captioning failed.")
		return nil
	}

	command.Send(ic, &command.Response{
		Files: []*discordgo.File{{Name: "captioned.png", Reader: f}},
	}, false)
	f.Close()
	return nil
}

// escapeDrawtext quotes the characters drawtext treats specially.
func escapeDrawtext(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`, `%`, `\%`)
	return r.Replace(s)
}
