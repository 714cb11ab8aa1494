package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/raidledger/raidledger/internal/domain/requirements"
	"github.com/raidledger/raidledger/internal/gateways/tarkovdev"
	"github.com/raidledger/raidledger/tracker"
	"github.com/raidledger/raidledger/tracker/services"
	"github.com/raidledger/raidledger/tracker/utils"
)

var Needs = discord.SlashCommandCreate{
	Name:        "needs",
	Description: "Show the items a team still needs",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "team-code",
			Description: "Team invite code",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "query",
			Description: "Filter items by name",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "source",
			Description: "Quest items, hideout items or both",
			Required:    false,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "All", Value: string(services.NeedsAll)},
				{Name: "Quests", Value: string(services.NeedsQuests)},
				{Name: "Hideout", Value: string(services.NeedsHideout)},
			},
		},
		discord.ApplicationCommandOptionBool{
			Name:        "fir",
			Description: "Only found-in-raid items",
			Required:    false,
		},
	},
}

func NeedsHandler(b *tracker.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()

		data := e.SlashCommandInteractionData()
		code := data.String("team-code")
		source := services.NeedsAll
		if s, ok := data.OptString("source"); ok {
			source = services.NeedsSource(s)
		}

		t, view, err := b.Teams.NeedsByInviteCode(ctx, code, services.NeedsQuery{
			Source: source,
			Scope:  requirements.Scope{Mode: requirements.ScopeOutstanding},
			Filter: requirements.Filter{Tab: requirements.TabNeeded, FIROnly: data.Bool("fir")},
		})
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.EH.CreateErrorEmbed(e, "No team uses that invite code")
		case errors.Is(err, tarkovdev.ErrDataUnavailable):
			return utils.EH.CreateErrorEmbed(e, "Quest data is unavailable right now, try again later")
		case err != nil:
			return err
		}

		items := view.Items
		query := strings.TrimSpace(data.String("query"))
		if query != "" {
			items = services.SearchTeamItems(items, query)
		}
		if len(items) == 0 {
			if query != "" {
				return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("**%s** needs nothing matching `%s`", t.Name, query))
			}
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("**%s** has everything it needs", t.Name))
		}

		totalPages := utils.PageCount(len(items), utils.ItemsPerPage)
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start, end := utils.PageBounds(page, utils.ItemsPerPage, len(items))

				var description strings.Builder
				if query != "" {
					fmt.Fprintf(&description, "Filtering by: `%s`\n\n", query)
				}
				for _, it := range items[start:end] {
					description.WriteString(utils.FormatTeamItem(it))
					description.WriteString("\n")
				}

				embed.
					SetTitle(fmt.Sprintf("%s needs", t.Name)).
					SetDescription(description.String()).
					SetColor(utils.EmbedColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d items • %d members", page+1, totalPages, len(items), len(view.Members)), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
