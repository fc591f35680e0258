package config

import (
	"encoding/json"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Definitions holds the static command metadata pushed to Discord, split the
// way Discord scopes them. Message-context entries are dispatched as built-in
// behaviors, not loaded handlers.
type Definitions struct {
	Global  []*discordgo.ApplicationCommand `json:"global"`
	Guild   []*discordgo.ApplicationCommand `json:"guild"`
	User    []*discordgo.ApplicationCommand `json:"user"`
	Message []*discordgo.ApplicationCommand `json:"message"`
}

// LoadDefinitions returns the command definitions. With an empty path the
// compiled-in set is used. A path that cannot be read or parsed degrades to
// empty lists rather than aborting startup.
func LoadDefinitions(path string) Definitions {
	if path == "" {
		return builtinDefinitions()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to read command definitions, proceeding with none")
		return Definitions{}
	}

	var defs Definitions
	if err := json.Unmarshal(raw, &defs); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to parse command definitions, proceeding with none")
		return Definitions{}
	}
	return defs
}

// allContexts marks a command usable in guilds, bot DMs and private channels.
func allContexts() *[]discordgo.InteractionContextType {
	return &[]discordgo.InteractionContextType{
		discordgo.InteractionContextGuild,
		discordgo.InteractionContextBotDM,
		discordgo.InteractionContextPrivateChannel,
	}
}

// userInstall marks a command installable on a user account; the same marker
// identifies entry-point commands that must survive bulk updates.
func userInstall() *[]discordgo.ApplicationIntegrationType {
	return &[]discordgo.ApplicationIntegrationType{discordgo.ApplicationIntegrationUserInstall}
}

func dmAllowed() *bool {
	v := true
	return &v
}

func chatCommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:             name,
		Description:      description,
		Type:             discordgo.ChatApplicationCommand,
		DMPermission:     dmAllowed(),
		Contexts:         allContexts(),
		IntegrationTypes: userInstall(),
		Options:          options,
	}
}

func strOption(name, description string, required bool, choices ...*discordgo.ApplicationCommandOptionChoice) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
		Choices:     choices,
	}
}

func boolOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        name,
		Description: description,
	}
}

func choice(name string, value any) *discordgo.ApplicationCommandOptionChoice {
	return &discordgo.ApplicationCommandOptionChoice{Name: name, Value: value}
}

func builtinDefinitions() Definitions {
	return Definitions{
		Global: []*discordgo.ApplicationCommand{
			chatCommand("fetch_data", "Fetches data from an API",
				strOption("url", "The URL to fetch data from", true)),
			chatCommand("ping", "Pings a remote server.",
				strOption("ip", "The IP address to ping.", true)),
			chatCommand("server_status", "Shows the status of the host server",
				boolOption("raw", "Display raw JSON data")),
			chatCommand("weather", "Get current weather for a location",
				strOption("location", "City name or postal code", true)),
			chatCommand("mcstatus", "Check the status of a Minecraft server",
				strOption("server", "Server address (e.g., mc.hypixel.net)", true),
				boolOption("bedrock", "Is this a Bedrock server? (Default: false)")),
			chatCommand("animal", "Get a random animal image",
				strOption("type", "Type of animal", true,
					choice("Dog", "dog"), choice("Cat", "cat"), choice("Panda", "panda"),
					choice("Fox", "fox"), choice("Bird", "bird"), choice("Koala", "koala"),
					choice("Red Panda", "red_panda"), choice("Raccoon", "raccoon"),
					choice("Kangaroo", "kangaroo"))),
			chatCommand("anime", "Get anime-related content",
				strOption("type", "Type of anime content", true,
					choice("Wink", "wink"), choice("Pat", "pat"), choice("Hug", "hug"),
					choice("Face Palm", "face-palm"), choice("Quote", "quote"))),
			chatCommand("checkdns", "Check if a domain resolves through a DNS provider",
				strOption("domain", "Domain name to check (e.g. example.com)", true),
				strOption("provider", "DNS provider to use", false,
					choice("Cloudflare (1.1.1.1)", "1.1.1.1"), choice("Google (8.8.8.8)", "8.8.8.8"),
					choice("OpenDNS", "208.67.222.222"), choice("Quad9", "9.9.9.9"),
					choice("AdGuard", "94.140.14.14"))),
			chatCommand("traceroute", "Show network path to a destination",
				strOption("target", "IP address or domain to trace (may take a while)", true),
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "hops",
					Description: "Maximum number of hops (default 16)",
				}),
			chatCommand("checkport", "Check whether TCP ports are open on a host",
				strOption("target", "Host or IP address", true),
				strOption("ports", "Comma-separated port list (default: 80,443)", false)),
			chatCommand("whois", "Look up WHOIS information for a domain",
				strOption("domain", "Domain name to look up", true)),
			chatCommand("wikipedia", "Look up a topic on Wikipedia",
				strOption("query", "Topic to search for", true),
				strOption("language", "Wikipedia language", false,
					choice("English", "en"), choice("Spanish", "es"), choice("French", "fr"),
					choice("German", "de"), choice("Russian", "ru"), choice("Japanese", "ja"),
					choice("Chinese", "zh"), choice("Turkish", "tr"))),
			chatCommand("urban", "Look up a term on Urban Dictionary",
				strOption("term", "Term to define", false),
				boolOption("random", "Get a random definition instead")),
			chatCommand("currency", "Convert between currencies",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "amount",
					Description: "Amount to convert",
					Required:    true,
				},
				strOption("from", "Source currency code (e.g. USD)", true),
				strOption("to", "Target currency code (e.g. EUR)", true)),
			chatCommand("hash", "Hash text or a file",
				strOption("algorithm", "Hash algorithm", true,
					choice("MD5", "md5"), choice("SHA-1", "sha1"), choice("SHA-256", "sha256"),
					choice("SHA-512", "sha512"), choice("SHA3-256", "sha3-256"),
					choice("SHA3-512", "sha3-512")),
				strOption("text", "Text to hash", false),
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "File to hash",
				}),
			chatCommand("uuid", "Generate a random UUID"),
			chatCommand("github", "Show a GitHub repository summary",
				strOption("repository", "Repository as owner/name", true)),
			chatCommand("translate", "Translate text to another language",
				strOption("text", "Text to translate", true),
				strOption("to", "Target language code (e.g. en, de, tr)", true)),
			chatCommand("rename", "Rename a file by uploading or providing a link",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "File to rename",
				},
				strOption("url", "URL of the file to rename", false),
				strOption("newname", "New file name (without extension)", false)),
			chatCommand("gif", "Convert images or videos to GIF format",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "Image or video to convert",
				},
				strOption("url", "URL of the media to convert", false),
				boolOption("rename-only", "Just rename an image to .gif without re-encoding")),
			chatCommand("worsethanepstein", "Stamp a caption onto an image",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "Image to caption",
				},
				strOption("url", "URL of the image to caption", false),
				strOption("caption", "Caption text", false)),
			chatCommand("binary", "Translate between text and binary",
				strOption("text", "Text to convert to/from binary", true),
				strOption("mode", "Conversion mode", false,
					choice("Text to Binary", "encode"), choice("Binary to Text", "decode"))),
			chatCommand("cody", "Ask Cody (Sourcegraph AI) a programming question",
				strOption("question", "Your programming question", true)),
			chatCommand("info", "Display information about the bot"),
			chatCommand("stats", "Display bot runtime statistics"),
			chatCommand("blacklist", "Lists all blacklisted users"),
			chatCommand("gulag", "Manage the gulag (blacklist)",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Send a user to the gulag",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to blacklist",
							Required:    true,
						},
					},
				},
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Release a user from the gulag",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to release",
							Required:    true,
						},
					},
				}),
		},
		Guild: nil,
		User: []*discordgo.ApplicationCommand{
			{
				Name:             "User Info",
				Type:             discordgo.UserApplicationCommand,
				Contexts:         allContexts(),
				IntegrationTypes: userInstall(),
			},
		},
		Message: []*discordgo.ApplicationCommand{
			{
				Name:             "Convert to GIF",
				Type:             discordgo.MessageApplicationCommand,
				Contexts:         allContexts(),
				IntegrationTypes: userInstall(),
			},
			{
				Name:             "Convert to GIF (HQ)",
				Type:             discordgo.MessageApplicationCommand,
				Contexts:         allContexts(),
				IntegrationTypes: userInstall(),
			},
			{
				Name:             "Convert to GIF (rename only)",
				Type:             discordgo.MessageApplicationCommand,
				Contexts:         allContexts(),
				IntegrationTypes: userInstall(),
			},
		},
	}
}
