package tools

import (
	"github.com/google/uuid"

	"aurora/internal/command"
)

// UUID generates a random version 4 UUID.
type UUID struct {
	command.Base
}

func NewUUID(_ *command.Deps) (command.Command, error) {
	return &UUID{
		Base: command.Base{
			CommandName: "uuid",
			Desc:        "Generate a random UUID",
			Cat:         "tools",
		},
	}, nil
}

func (c *UUID) Execute(ic command.Interaction) error {
	id, err := uuid.NewRandom()
	if err != nil {
		command.SendError(ic, "Could not generate a UUID.")
		return nil
	}
	command.Send(ic, &command.Response{Content: "`" + id.String() + "`"}, false)
	return nil
}
