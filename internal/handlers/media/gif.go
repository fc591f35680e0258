// Package media holds handlers that shell out to ffmpeg.
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

const (
	// maxInputSize caps what we are willing to download for conversion.
	maxInputSize = 500 << 20
	// maxOutputSize is Discord's upload ceiling for bot attachments.
	maxOutputSize = 25 << 20

	convertTimeout = 5 * time.Minute
)

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true, ".avi": true, ".mkv": true, ".m4v": true,
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".bmp": true, ".gif": true,
}

// Gif converts images and videos to GIF with ffmpeg.
type Gif struct {
	command.Base
	client  *fetch.Client
	tempDir string
}

func NewGif(deps *command.Deps) (command.Command, error) {
	c := &Gif{
		Base: command.Base{
			CommandName: "gif",
			Desc:        "Convert images or videos to GIF format",
			Cat:         "media",
		},
		client:  deps.Fetch,
		tempDir: deps.TempDir,
	}
	c.WithCooldown(10 * time.Second)
	return c, nil
}

func (c *Gif) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	file := ic.Options().Attachment("file")
	source := ic.Options().String("url")
	if file == nil && source == "" {
		command.SendError(ic, "Please provide a file or a URL.")
		return nil
	}

	srcURL, name, size := source, "", int64(-1)
	if file != nil {
		srcURL, name, size = file.URL, file.Filename, int64(file.Size)
	} else {
		name = path.Base(strings.SplitN(source, "?", 2)[0])
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		_, headSize, err := c.client.Head(ctx, source)
		cancel()
		if err != nil {
			command.SendError(ic, "Could not reach that URL.")
			return nil
		}
		size = headSize
	}

	ext := strings.ToLower(path.Ext(name))
	isVideo := videoExts[ext]
	if !isVideo && !imageExts[ext] {
		command.SendError(ic, fmt.Sprintf("Unsupported file type **%s**.", ext))
		return nil
	}
	if size > maxInputSize {
		command.SendError(ic, "File is too large to convert (500 MB limit).")
		return nil
	}

	dir, err := os.MkdirTemp(c.tempDir, "gif-"+uuid.NewString()[:8]+"-")
	if err != nil {
		command.SendError(ic, "Could not create a working directory.")
		return nil
	}
	// Batch runs park the dir with their own context so readers handed to
	// the aggregated edit stay valid; the batch owner removes it after
	// sending. Live runs clean up on return, after Send's upload.
	if ic.Batch() {
		ic.DeferCleanup(dir)
	} else {
		defer os.RemoveAll(dir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), convertTimeout)
	defer cancel()

	input := filepath.Join(dir, "input"+ext)
	if err := c.client.Download(ctx, srcURL, input); err != nil {
		command.SendError(ic, "Could not download the file.")
		return nil
	}

	base := strings.TrimSuffix(name, ext)
	output := filepath.Join(dir, base+".gif")

	start := time.Now()
	if ic.Options().Bool("rename-only") {
		if isVideo {
			command.SendError(ic, "Rename-only works for images, not videos.")
			return nil
		}
		if err := os.Rename(input, output); err != nil {
			command.SendError(ic, "Could not rename the file.")
			return nil
		}
	} else {
		if err := convert(ctx, input, output, isVideo, ic.Options().Bool("hq")); err != nil {
			command.SendError(ic, fmt.Sprintf("Conversion of **%s** failed.", name))
			return nil
		}
	}
	elapsed := time.Since(start)

	info, err := os.Stat(output)
	if err != nil {
		command.SendError(ic, fmt.Sprintf("Conversion of **%s** failed.", name))
		return nil
	}
	if info.Size() > maxOutputSize {
		command.SendError(ic, fmt.Sprintf("The resulting GIF is too large to upload (%.1f MB).",
			float64(info.Size())/(1<<20)))
		return nil
	}

	f, err := os.Open(output)
	if err != nil {
		command.SendError(ic, fmt.Sprintf("Conversion of **%s** failed.", name))
		return nil
	}

	command.Send(ic, &command.Response{
		Content: fmt.Sprintf("Converted **%s** in %.1fs", name, elapsed.Seconds()),
		Files:   []*discordgo.File{{Name: base + ".gif", Reader: f}},
	}, false)
	// A live Send uploads synchronously, so the descriptor can go now. In a
	// batch the reader is consumed by the final aggregated edit; the batch
	// owner closes it.
	if !ic.Batch() {
		f.Close()
	}
	return nil
}

// convert runs ffmpeg with a palettegen/paletteuse chain. The HQ preset
// trades size for frame rate and resolution.
func convert(ctx context.Context, input, output string, isVideo, hq bool) error {
	fps, width := 15, 480
	if hq {
		fps, width = 24, 720
	}

	var filter string
	if isVideo {
		filter = fmt.Sprintf(
			"[0:v] fps=%d,scale=%d:-1:flags=lanczos,split [a][b];[a] palettegen [p];[b][p] paletteuse",
			fps, width)
	} else {
		filter = fmt.Sprintf(
			"[0:v] scale=%d:-1:flags=lanczos,split [a][b];[a] palettegen [p];[b][p] paletteuse",
			width)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", input,
		"-filter_complex", filter,
		"-y", output)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
