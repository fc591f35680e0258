package tools

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/crypto/sha3"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

// maxHashFileSize caps attachment downloads for hashing; it matches the
// fetch layer's body cap.
const maxHashFileSize = 8 << 20

// Hash digests text or an uploaded file with a chosen algorithm.
type Hash struct {
	command.Base
	client *fetch.Client
}

func NewHash(deps *command.Deps) (command.Command, error) {
	return &Hash{
		Base: command.Base{
			CommandName: "hash",
			Desc:        "Hash text or a file",
			Cat:         "tools",
		},
		client: deps.Fetch,
	}, nil
}

func newDigest(algorithm string) hash.Hash {
	switch algorithm {
	case "md5":
		return md5.New()
	case "sha1":
		return sha1.New()
	case "sha256":
		return sha256.New()
	case "sha512":
		return sha512.New()
	case "sha3-256":
		return sha3.New256()
	case "sha3-512":
		return sha3.New512()
	}
	return nil
}

func (c *Hash) Execute(ic command.Interaction) error {
	algorithm := ic.Options().String("algorithm")
	digest := newDigest(algorithm)
	if digest == nil {
		command.SendError(ic, "Unknown hash algorithm.")
		return nil
	}

	text := ic.Options().String("text")
	file := ic.Options().Attachment("file")
	if text == "" && file == nil {
		command.SendError(ic, "Please provide text or a file to hash.")
		return nil
	}

	subject := "text"
	if file != nil {
		command.Defer(ic, false)
		if file.Size > maxHashFileSize {
			command.SendError(ic, "File is too large to hash (8 MB limit).")
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		raw, err := c.client.Get(ctx, file.URL)
		if err != nil {
			command.SendError(ic, "Could not download the attachment.")
			return nil
		}
		digest.Write(raw)
		subject = file.Filename
	} else {
		digest.Write([]byte(text))
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       fmt.Sprintf("%s of %s", algorithm, subject),
			Description: "```\n" + hex.EncodeToString(digest.Sum(nil)) + "\n```",
			Color:       0x9b59b6,
		}},
	}, false)
	return nil
}
