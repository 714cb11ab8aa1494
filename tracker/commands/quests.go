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

	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/gateways/tarkovdev"
	"github.com/raidledger/raidledger/tracker"
	"github.com/raidledger/raidledger/tracker/services"
	"github.com/raidledger/raidledger/tracker/utils"
)

var Quests = discord.SlashCommandCreate{
	Name:        "quests",
	Description: "Show the quests a tracker user can work on",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "username",
			Description: "Tracker username",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "status",
			Description: "Which quests to list",
			Required:    false,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Available", Value: string(eligibility.StatusAvailable)},
				{Name: "Locked", Value: string(eligibility.StatusLocked)},
				{Name: "Completed", Value: string(eligibility.StatusCompleted)},
			},
		},
		discord.ApplicationCommandOptionBool{
			Name:        "kappa",
			Description: "Only quests required for Kappa",
			Required:    false,
		},
	},
}

func QuestsHandler(b *tracker.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()

		data := e.SlashCommandInteractionData()
		username := strings.TrimSpace(data.String("username"))
		status := eligibility.StatusAvailable
		if s, ok := data.OptString("status"); ok {
			status = eligibility.Status(s)
		}

		user, err := b.Tracker.UserByName(ctx, username)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No tracker user named **%s**", username))
			}
			return err
		}

		view, err := b.Tracker.Quests(ctx, user.ID, services.QuestQuery{
			KappaOnly: data.Bool("kappa"),
			Status:    status,
		})
		if err != nil {
			if errors.Is(err, tarkovdev.ErrDataUnavailable) {
				return utils.EH.CreateErrorEmbed(e, "Quest data is unavailable right now, try again later")
			}
			return err
		}

		summary := utils.FormatSummary(view.Summary)
		if len(view.Quests) == 0 {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("%s\n\nNo %s quests.", summary, status))
		}

		totalPages := utils.PageCount(len(view.Quests), utils.QuestsPerPage)
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start, end := utils.PageBounds(page, utils.QuestsPerPage, len(view.Quests))

				var description strings.Builder
				description.WriteString(summary)
				description.WriteString("\n\n")
				for _, q := range view.Quests[start:end] {
					description.WriteString(formatQuestLine(q))
					description.WriteString("\n")
				}

				footer := fmt.Sprintf("Page %d/%d • %d %s quests", page+1, totalPages, len(view.Quests), status)
				if view.Stale {
					footer += " • cached data"
				}
				embed.
					SetTitle(fmt.Sprintf("%s's quests", user.Username)).
					SetDescription(description.String()).
					SetColor(utils.EmbedColor).
					SetFooter(footer, "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func formatQuestLine(q services.QuestEntry) string {
	line := fmt.Sprintf("**%s** · %s", q.Title, q.Trader)
	if q.Label == "in_progress" {
		line += " · in progress"
	}
	if q.KappaRequired {
		line += " `K`"
	}
	if len(q.LockReasons) > 0 {
		line += "\n└ " + strings.Join(q.LockReasons, "; ")
	}
	return line
}
