package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/raidledger/raidledger/tracker"
	"github.com/raidledger/raidledger/tracker/handlers"
)

var Commands = []discord.ApplicationCommandCreate{
	Version,
	Quests,
	Needs,
}

// Register adds every command handler to the router.
func Register(r handler.Router, b *tracker.Bot) {
	r.Command("/version", VersionHandler(b))
	r.Command("/quests", handlers.WrapWithLogging("quests", QuestsHandler(b)))
	r.Command("/needs", handlers.WrapWithLogging("needs", NeedsHandler(b)))
}
