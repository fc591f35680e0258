package tools

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

// RenameModalID is the custom id prefix the dispatcher matches modal
// submissions against.
const RenameModalID = "rename_modal"

// RenameInputID is the text input's custom id inside the modal.
const RenameInputID = "rename_newname"

// renameSessions parks pending renames by user id while their modal is open.
var renameSessions = struct {
	mu sync.Mutex
	m  map[string]*command.PendingRename
}{m: make(map[string]*command.PendingRename)}

func parkRename(userID string, session *command.PendingRename) {
	renameSessions.mu.Lock()
	defer renameSessions.mu.Unlock()
	renameSessions.m[userID] = session
}

// takeRename removes and returns the user's pending rename, nil if absent
// or expired.
func takeRename(userID string) *command.PendingRename {
	renameSessions.mu.Lock()
	defer renameSessions.mu.Unlock()
	session, ok := renameSessions.m[userID]
	if !ok {
		return nil
	}
	delete(renameSessions.m, userID)
	if session.Expired(time.Now()) {
		return nil
	}
	return session
}

// Rename re-uploads an attachment or URL under a new file name. Without the
// newname option it opens a modal and parks the request until submission.
type Rename struct {
	command.Base
	client *fetch.Client
}

func NewRename(deps *command.Deps) (command.Command, error) {
	return &Rename{
		Base: command.Base{
			CommandName: "rename",
			Desc:        "Rename a file by uploading or providing a link",
			Cat:         "tools",
		},
		client: deps.Fetch,
	}, nil
}

func (c *Rename) Execute(ic command.Interaction) error {
	file := ic.Options().Attachment("file")
	source := ic.Options().String("url")
	if file == nil && source == "" {
		command.SendError(ic, "Please provide a file or a URL.")
		return nil
	}

	newName := strings.TrimSpace(ic.Options().String("newname"))
	if newName == "" {
		parkRename(ic.UserID(), &command.PendingRename{
			Attachment: file,
			URL:        source,
			Created:    time.Now(),
		})
		return ic.ShowModal(RenameModalID, "Rename file", []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    RenameInputID,
						Label:       "New file name (without extension)",
						Style:       discordgo.TextInputShort,
						Required:    true,
						MaxLength:   100,
						Placeholder: "my-file",
					},
				},
			},
		})
	}

	command.Defer(ic, false)
	return doRename(ic, c.client, file, source, newName)
}

// CompleteRename finishes a rename after its modal was submitted. The
// dispatcher calls it with the live modal interaction.
func CompleteRename(ic command.Interaction, client *fetch.Client, newName string) error {
	session := takeRename(ic.UserID())
	if session == nil {
		command.SendError(ic, "This rename request expired, please run the command again.")
		return nil
	}

	command.Defer(ic, false)
	return doRename(ic, client, session.Attachment, session.URL, strings.TrimSpace(newName))
}

func doRename(ic command.Interaction, client *fetch.Client, file *discordgo.MessageAttachment, source, newName string) error {
	if newName == "" {
		command.SendError(ic, "Please provide a new file name.")
		return nil
	}

	srcURL := source
	original := path.Base(strings.SplitN(source, "?", 2)[0])
	if file != nil {
		srcURL = file.URL
		original = file.Filename
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	raw, err := client.Get(ctx, srcURL)
	if err != nil {
		command.SendError(ic, "Could not download the file.")
		return nil
	}

	ext := path.Ext(original)
	command.Send(ic, &command.Response{
		Content: fmt.Sprintf("Renamed **%s** to **%s%s**", original, newName, ext),
		Files: []*discordgo.File{{
			Name:   newName + ext,
			Reader: bytes.NewReader(raw),
		}},
	}, false)
	return nil
}
