package models

// -----------------------------------------------------------------------------
// Slash commands
// -----------------------------------------------------------------------------

type MCommand string

const (
	CommandDaily  MCommand = "daily"
	CommandWeekly MCommand = "weekly"
	CommandSeason MCommand = "season"
)

// SubjectOption is the slash-command option carrying the subject ID.
const SubjectOption = "id"

// SupportedCommands lists the commands registered with the platform, in order.
var SupportedCommands = []MCommand{CommandDaily, CommandWeekly, CommandSeason}

// ParseCommand reports whether name is one of the supported commands.
func ParseCommand(name string) (MCommand, bool) {
	for _, c := range SupportedCommands {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// -----------------------------------------------------------------------------

// MCommandRequest is a validated command invocation, consumed once.
type MCommandRequest struct {
	Command   MCommand
	SubjectID string
	ChannelID string
}

// MStatsQuery is the query sent to the stats API.
type MStatsQuery struct {
	Type string
	ID   string
}
