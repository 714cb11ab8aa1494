package services

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/progress"
	"github.com/raidledger/raidledger/internal/domain/requirements"
	"github.com/raidledger/raidledger/internal/gateways/tarkovdev"
	"github.com/raidledger/raidledger/tracker/database/models"
	"github.com/raidledger/raidledger/tracker/database/repositories"
)

// CatalogSource is satisfied by *tarkovdev.Provider.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
	HideoutWiki(ctx context.Context) (*tarkovdev.HideoutWiki, error)
}

type TrackerService struct {
	catalog  CatalogSource
	progress repositories.ProgressRepository
	users    repositories.UserRepository
}

func NewTrackerService(source CatalogSource, progressRepo repositories.ProgressRepository, userRepo repositories.UserRepository) *TrackerService {
	return &TrackerService{
		catalog:  source,
		progress: progressRepo,
		users:    userRepo,
	}
}

// snapshotFor loads the catalog and the user's progress together.
func (s *TrackerService) snapshotFor(ctx context.Context, userID string) (*catalog.Snapshot, progress.Actor, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, progress.Actor{}, err
	}
	actor, err := s.LoadActor(ctx, userID)
	if err != nil {
		return nil, progress.Actor{}, err
	}
	return snap, actor, nil
}

// Catalog returns the current parsed catalog snapshot.
func (s *TrackerService) Catalog(ctx context.Context) (*catalog.Snapshot, error) {
	return s.catalog.Snapshot(ctx)
}

func (s *TrackerService) LoadActor(ctx context.Context, userID string) (progress.Actor, error) {
	p, err := s.progress.Load(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return progress.Actor{}, ErrNotFound
		}
		return progress.Actor{}, fmt.Errorf("failed to load progress: %w", err)
	}
	return actorFromProgress(p), nil
}

func (s *TrackerService) Progress(ctx context.Context, userID string) (*models.Progress, error) {
	p, err := s.progress.Load(ctx, userID)
	if repositories.IsNotFound(err) {
		return nil, ErrNotFound
	}
	return p, err
}

// UserByName resolves a tracker username, as typed in bot commands.
func (s *TrackerService) UserByName(ctx context.Context, username string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if repositories.IsNotFound(err) {
		return nil, ErrNotFound
	}
	return u, err
}

type QuestEntry struct {
	catalog.Quest
	Status eligibility.Status `json:"status"`

	// Label is the status shown to the user: in_progress when an available
	// quest is marked started or has objective progress.
	Label                string   `json:"label"`
	LockReasons          []string `json:"lockReasons,omitempty"`
	MissingPrerequisites []string `json:"missingPrerequisites,omitempty"`
}

type QuestView struct {
	Quests    []QuestEntry        `json:"quests"`
	Summary   eligibility.Summary `json:"summary"`
	FetchedAt time.Time           `json:"fetchedAt"`
	Stale     bool                `json:"stale"`
}

type QuestQuery struct {
	KappaOnly       bool
	LightkeeperOnly bool
	Status          eligibility.Status
	Trader          string
}

func (s *TrackerService) Quests(ctx context.Context, userID string, query QuestQuery) (*QuestView, error) {
	snap, actor, err := s.snapshotFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	states := eligibility.ResolveActor(snap.Quests, actor)

	view := &QuestView{
		Summary:   eligibility.Summarize(snap.Quests, states),
		FetchedAt: snap.FetchedAt,
		Stale:     snap.Stale,
	}
	for _, q := range snap.Quests {
		if query.KappaOnly && !q.KappaRequired {
			continue
		}
		if query.LightkeeperOnly && !q.LightkeeperRequired {
			continue
		}
		if query.Trader != "" && !strings.EqualFold(query.Trader, q.Trader) {
			continue
		}
		st := states[q.ID]
		if query.Status != "" && st.Status != query.Status {
			continue
		}
		view.Quests = append(view.Quests, QuestEntry{
			Quest:                q,
			Status:               st.Status,
			Label:                questLabel(q.ID, st.Status, actor),
			LockReasons:          st.Details(),
			MissingPrerequisites: st.MissingPrerequisites,
		})
	}
	return view, nil
}

func questLabel(questID string, status eligibility.Status, actor progress.Actor) string {
	if status == eligibility.StatusAvailable &&
		(actor.QuestStatus[questID] == progress.StatusInProgress || actor.HasObjectiveProgress(questID)) {
		return string(progress.StatusInProgress)
	}
	return string(status)
}

type ItemQuery struct {
	Scope  requirements.Scope
	Filter requirements.Filter

	// Fuzzy ranks Filter.Query matches by fuzzy score instead of substring
	// matching in catalog order.
	Fuzzy bool
}

type ItemView struct {
	Items []requirements.Item `json:"items"`

	// Totals cover every item before tab and query filtering.
	Totals    requirements.Totals `json:"totals"`
	FetchedAt time.Time           `json:"fetchedAt"`
	Stale     bool                `json:"stale"`
}

func (s *TrackerService) QuestItems(ctx context.Context, userID string, query ItemQuery) (*ItemView, error) {
	snap, actor, err := s.snapshotFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := questItems(snap, actor, query.Scope)
	return buildItemView(items, query, snap), nil
}

func questItems(snap *catalog.Snapshot, actor progress.Actor, scope requirements.Scope) []requirements.Item {
	states := eligibility.ResolveActor(snap.Quests, actor)
	return requirements.AggregateQuests(snap.Quests, states, actor.ObjectiveProgress, scope)
}

func buildItemView(items []requirements.Item, query ItemQuery, snap *catalog.Snapshot) *ItemView {
	view := &ItemView{Totals: requirements.Sum(items), FetchedAt: snap.FetchedAt, Stale: snap.Stale}
	if query.Fuzzy && strings.TrimSpace(query.Filter.Query) != "" {
		f := query.Filter
		f.Query = ""
		view.Items = SearchItems(f.Apply(items), query.Filter.Query)
	} else {
		view.Items = query.Filter.Apply(items)
	}
	return view
}

// AdjustQuestItem moves an item's collected count across its quest objective
// rows and persists the rows that changed. Taking units back from a
// completed quest is refused.
func (s *TrackerService) AdjustQuestItem(ctx context.Context, userID, itemID string, delta int, scope requirements.Scope) (requirements.Item, error) {
	return s.changeQuestItem(ctx, userID, itemID, scope, func(it requirements.Item) (requirements.Item, []requirements.Row) {
		return requirements.Adjust(it, delta)
	})
}

// MarkQuestItem sets an item to fully collected or to zero.
func (s *TrackerService) MarkQuestItem(ctx context.Context, userID, itemID string, found bool, scope requirements.Scope) (requirements.Item, error) {
	return s.changeQuestItem(ctx, userID, itemID, scope, func(it requirements.Item) (requirements.Item, []requirements.Row) {
		return requirements.MarkAll(it, found)
	})
}

func (s *TrackerService) changeQuestItem(ctx context.Context, userID, itemID string, scope requirements.Scope, change func(requirements.Item) (requirements.Item, []requirements.Row)) (requirements.Item, error) {
	snap, actor, err := s.snapshotFor(ctx, userID)
	if err != nil {
		return requirements.Item{}, err
	}
	item, ok := requirements.Find(questItems(snap, actor, scope), itemID)
	if !ok {
		return requirements.Item{}, ErrNotFound
	}

	updated, rows := change(item)
	if len(rows) == 0 {
		return updated, nil
	}

	writes := make([]models.ObjectiveProgress, 0, len(rows))
	for _, r := range rows {
		if r.SourceCompleted {
			return requirements.Item{}, fmt.Errorf("%w: %s", ErrQuestCompleted, r.SourceName)
		}
		writes = append(writes, models.ObjectiveProgress{
			UserID:      userID,
			QuestID:     r.SourceID,
			ObjectiveID: r.RefID,
			Collected:   r.StoredCollected(),
		})
	}
	if err := s.progress.UpsertObjectives(ctx, writes); err != nil {
		return requirements.Item{}, fmt.Errorf("failed to save objective progress: %w", err)
	}
	return updated, nil
}

type HideoutQuery struct {
	ActiveOnly bool
	Filter     requirements.Filter
	Fuzzy      bool
}

func (s *TrackerService) HideoutItems(ctx context.Context, userID string, query HideoutQuery) (*ItemView, error) {
	snap, actor, err := s.snapshotFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	all := s.hideoutItems(ctx, snap, actor, false)
	if err := s.cacheHideoutItems(ctx, userID, all); err != nil {
		slog.Warn("Failed to refresh hideout item cache",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err))
	}

	items := all
	if query.ActiveOnly {
		items = s.hideoutItems(ctx, snap, actor, true)
	}
	return buildItemView(items, ItemQuery{Filter: query.Filter, Fuzzy: query.Fuzzy}, snap), nil
}

// hideoutItems aggregates station demand. The wiki only adds FIR names and
// edition defaults, so a wiki failure degrades to attribute-based FIR.
func (s *TrackerService) hideoutItems(ctx context.Context, snap *catalog.Snapshot, actor progress.Actor, activeOnly bool) []requirements.Item {
	wiki, err := s.catalog.HideoutWiki(ctx)
	if err != nil {
		slog.Warn("Hideout wiki unavailable",
			slog.String("type", "cat"),
			slog.Any("error", err))
	}
	levels := maps.Clone(actor.StationLevels)
	if levels == nil {
		levels = make(map[string]int)
	}
	actor.StationLevels = levels
	if wiki != nil {
		seedEditionStations(&actor, snap.Stations, wiki.StashEditionLevels, wiki.CultistCircleEditions)
	}

	opts := requirements.HideoutOptions{
		FIRKeys:     wiki.FIRKeys(),
		BuiltLevels: actor.StationLevels,
		ActiveOnly:  activeOnly,
	}
	if activeOnly {
		opts.LevelStates = eligibility.ResolveStations(snap.Stations, actor.StationLevels, actor.TraderLevels)
	}
	return requirements.AggregateHideout(snap.Stations, actor.StationItemProgress, opts)
}

func (s *TrackerService) cacheHideoutItems(ctx context.Context, userID string, items []requirements.Item) error {
	rows := make([]models.HideoutItemProgress, 0, len(items))
	for _, it := range items {
		rows = append(rows, models.HideoutItemProgress{
			ItemID:         it.ItemID,
			Name:           it.Name,
			ShortName:      it.ShortName,
			IconLink:       it.IconLink,
			RequiresFIR:    it.RequiresFIR,
			TotalRequired:  it.TotalRequired,
			TotalCollected: it.TotalCollected,
		})
	}
	return s.progress.ReplaceHideoutItems(ctx, userID, rows)
}

// AdjustHideoutItem moves an item's collected count across station level
// rows. Levels that are already built cannot give units back.
func (s *TrackerService) AdjustHideoutItem(ctx context.Context, userID, itemID string, delta int) (requirements.Item, error) {
	snap, actor, err := s.snapshotFor(ctx, userID)
	if err != nil {
		return requirements.Item{}, err
	}
	all := s.hideoutItems(ctx, snap, actor, false)
	item, ok := requirements.Find(all, itemID)
	if !ok {
		return requirements.Item{}, ErrNotFound
	}

	updated, rows := requirements.Adjust(item, delta)
	if len(rows) == 0 {
		return updated, nil
	}

	writes := make([]models.StationItemProgress, 0, len(rows))
	for _, r := range rows {
		if r.SourceCompleted {
			return requirements.Item{}, fmt.Errorf("%w: %s level %d", ErrStationBuilt, r.SourceName, r.StationLevel)
		}
		writes = append(writes, models.StationItemProgress{
			UserID:    userID,
			StationID: r.SourceID,
			LevelID:   r.RefID,
			ItemID:    r.ItemID,
			Collected: r.StoredCollected(),
		})
	}
	if err := s.progress.UpsertStationItems(ctx, writes); err != nil {
		return requirements.Item{}, fmt.Errorf("failed to save station item progress: %w", err)
	}

	for i := range all {
		if all[i].ItemID == itemID {
			all[i] = updated
		}
	}
	if err := s.cacheHideoutItems(ctx, userID, all); err != nil {
		slog.Warn("Failed to refresh hideout item cache",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err))
	}
	return updated, nil
}

// SetStationLevel records the built level of a station, 0 meaning not built.
func (s *TrackerService) SetStationLevel(ctx context.Context, userID, stationID string, level int) error {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return err
	}
	st, ok := snap.StationByID(stationID)
	if !ok {
		return ErrNotFound
	}
	if level < 0 || level > st.MaxLevel() {
		return fmt.Errorf("%w: %s has levels 0-%d", ErrInvalidInput, st.Name, st.MaxLevel())
	}
	if err := s.progress.UpsertStationLevel(ctx, models.StationLevel{UserID: userID, StationID: stationID, Level: level}); err != nil {
		return fmt.Errorf("failed to save station level: %w", err)
	}

	actor, err := s.LoadActor(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.cacheHideoutItems(ctx, userID, s.hideoutItems(ctx, snap, actor, false)); err != nil {
		slog.Warn("Failed to refresh hideout item cache",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err))
	}
	return nil
}

type ObjectiveUpdate struct {
	QuestID     string `json:"questId"`
	ObjectiveID string `json:"objectiveId"`
	Collected   int    `json:"collected"`
}

// ProgressUpdate is a partial update. Absent fields are left unchanged.
type ProgressUpdate struct {
	Quests     map[string]progress.QuestStatus `json:"quests"`
	Objectives []ObjectiveUpdate               `json:"objectives"`

	// Traders maps trader id to loyalty level.
	Traders    map[string]int `json:"traders"`
	Level      *int           `json:"level"`
	Reputation *float64       `json:"reputation"`
	Edition    *string        `json:"edition"`
	Faction    *string        `json:"faction"`
}

func (s *TrackerService) UpdateProgress(ctx context.Context, userID string, u ProgressUpdate) error {
	now := time.Now()

	quests := make([]models.QuestProgress, 0, len(u.Quests))
	for id, status := range u.Quests {
		switch status {
		case progress.StatusNotStarted, progress.StatusInProgress, progress.StatusCompleted:
		default:
			return fmt.Errorf("%w: quest status %q", ErrInvalidInput, status)
		}
		row := models.QuestProgress{UserID: userID, QuestID: id, Status: string(status)}
		if status == progress.StatusCompleted {
			row.CompletedAt = &now
		}
		quests = append(quests, row)
	}

	objectives := make([]models.ObjectiveProgress, 0, len(u.Objectives))
	for _, o := range u.Objectives {
		if o.QuestID == "" || o.ObjectiveID == "" {
			return fmt.Errorf("%w: objective needs questId and objectiveId", ErrInvalidInput)
		}
		objectives = append(objectives, models.ObjectiveProgress{
			UserID:      userID,
			QuestID:     o.QuestID,
			ObjectiveID: o.ObjectiveID,
			Collected:   max(o.Collected, 0),
		})
	}

	traders := make([]models.TraderStanding, 0, len(u.Traders))
	for id, level := range u.Traders {
		t, ok := catalog.TraderByID(id)
		if !ok {
			return fmt.Errorf("%w: unknown trader %q", ErrInvalidInput, id)
		}
		traders = append(traders, models.TraderStanding{UserID: userID, TraderID: id, Level: min(max(level, 1), t.MaxLevel)})
	}

	profile := models.UserProfile{Level: u.Level, Reputation: u.Reputation, Faction: u.Faction}
	if u.Edition != nil {
		edition := ""
		if strings.TrimSpace(*u.Edition) != "" {
			e, ok := catalog.ParseEdition(*u.Edition)
			if !ok {
				return fmt.Errorf("%w: unknown edition %q", ErrInvalidInput, *u.Edition)
			}
			edition = string(e)
		}
		profile.Edition = &edition
	}
	if u.Level != nil && *u.Level <= 0 {
		profile.Level, profile.ClearLevel = nil, true
	}

	if profile.Level != nil || profile.ClearLevel || profile.Reputation != nil || profile.Edition != nil || profile.Faction != nil {
		if err := s.users.UpdateProfile(ctx, userID, profile); err != nil {
			if repositories.IsNotFound(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to update profile: %w", err)
		}
	}
	if len(quests) > 0 {
		if err := s.progress.UpsertQuests(ctx, quests); err != nil {
			return fmt.Errorf("failed to save quest progress: %w", err)
		}
	}
	if len(objectives) > 0 {
		if err := s.progress.UpsertObjectives(ctx, objectives); err != nil {
			return fmt.Errorf("failed to save objective progress: %w", err)
		}
	}
	if len(traders) > 0 {
		if err := s.progress.UpsertTraders(ctx, traders); err != nil {
			return fmt.Errorf("failed to save trader standings: %w", err)
		}
	}
	return nil
}
