package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/progress"
	"github.com/raidledger/raidledger/internal/domain/requirements"
	"github.com/raidledger/raidledger/internal/gateways/tarkovdev"
	"github.com/raidledger/raidledger/tracker/database/models"
	"github.com/raidledger/raidledger/tracker/database/repositories"
	"github.com/raidledger/raidledger/tracker/database/repositories/mock"
)

type fakeCatalog struct {
	snap    *catalog.Snapshot
	wiki    *tarkovdev.HideoutWiki
	err     error
	wikiErr error
}

func (f fakeCatalog) Snapshot(context.Context) (*catalog.Snapshot, error) {
	return f.snap, f.err
}

func (f fakeCatalog) HideoutWiki(context.Context) (*tarkovdev.HideoutWiki, error) {
	return f.wiki, f.wikiErr
}

var (
	gun    = catalog.ItemRef{ID: "gun", Name: "MP-133 shotgun", ShortName: "MP-133"}
	salewa = catalog.ItemRef{ID: "salewa", Name: "Salewa first aid kit", ShortName: "Salewa"}
	bolts  = catalog.ItemRef{ID: "bolts", Name: "Bolts", ShortName: "Bolts"}
)

func objective(id string, item catalog.ItemRef, count int, fir bool) catalog.Objective {
	return catalog.Objective{ID: id, Type: "giveItem", Items: []catalog.ItemRef{item}, Count: count, FoundInRaid: fir}
}

func testSnapshot() *catalog.Snapshot {
	quests := []catalog.Quest{
		{ID: "q1", Title: "Debut", Trader: "Prapor", Objectives: []catalog.Objective{objective("o1", gun, 2, false)}},
		{ID: "q2", Title: "Shortage", Trader: "Therapist", PreviousQuestIDs: []string{"q1"}, KappaRequired: true,
			Objectives: []catalog.Objective{objective("o2", salewa, 3, true)}},
		{ID: "q3", Title: "Sanitary Standards", Trader: "Therapist",
			Objectives: []catalog.Objective{objective("o3", salewa, 2, false)}},
	}
	stations := []catalog.Station{
		{ID: "wb", Name: "Workbench", NormalizedName: "workbench", Levels: []catalog.StationLevel{
			{ID: "wb1", Level: 1, ItemRequirements: []catalog.StationItemRequirement{{Item: bolts, Count: 5}}},
			{ID: "wb2", Level: 2, ItemRequirements: []catalog.StationItemRequirement{{Item: bolts, Count: 3}}},
		}},
		{ID: "stash", Name: "Stash", NormalizedName: "stash", Levels: []catalog.StationLevel{
			{ID: "st1", Level: 1}, {ID: "st2", Level: 2}, {ID: "st3", Level: 3}, {ID: "st4", Level: 4},
		}},
	}
	return catalog.NewSnapshot(quests, stations, time.Time{})
}

func testProgress() *models.Progress {
	return &models.Progress{
		User:       &models.User{ID: "u1", Username: "alice"},
		Quests:     []models.QuestProgress{{UserID: "u1", QuestID: "q1", Status: "completed"}},
		Objectives: []models.ObjectiveProgress{{UserID: "u1", QuestID: "q3", ObjectiveID: "o3", Collected: 1}},
	}
}

func newTrackerService(t *testing.T) (*TrackerService, *mock.MockProgressRepository, *mock.MockUserRepository) {
	ctrl := gomock.NewController(t)
	progressRepo := mock.NewMockProgressRepository(ctrl)
	userRepo := mock.NewMockUserRepository(ctrl)
	s := NewTrackerService(fakeCatalog{snap: testSnapshot()}, progressRepo, userRepo)
	return s, progressRepo, userRepo
}

func Test_TrackerService_Quests(t *testing.T) {
	s, progressRepo, _ := newTrackerService(t)
	progressRepo.EXPECT().Load(gomock.Any(), "u1").Return(testProgress(), nil)

	view, err := s.Quests(context.Background(), "u1", QuestQuery{})
	if err != nil {
		t.Fatalf("Quests() error = %v", err)
	}

	got := make(map[string]string)
	for _, q := range view.Quests {
		got[q.ID] = q.Label
	}
	want := map[string]string{
		"q1": "completed",
		"q2": "available",
		"q3": "in_progress",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Quests() labels = %v, want %v", got, want)
	}
	if view.Summary.Completed != 1 || view.Summary.Available != 2 {
		t.Errorf("Quests() summary = %+v", view.Summary)
	}
}

func Test_TrackerService_QuestsFilters(t *testing.T) {
	s, progressRepo, _ := newTrackerService(t)
	progressRepo.EXPECT().Load(gomock.Any(), "u1").Return(testProgress(), nil).AnyTimes()

	tests := []struct {
		name  string
		query QuestQuery
		want  []string
	}{
		{"kappa only", QuestQuery{KappaOnly: true}, []string{"q2"}},
		{"trader", QuestQuery{Trader: "therapist"}, []string{"q2", "q3"}},
		{"status", QuestQuery{Status: eligibility.StatusCompleted}, []string{"q1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := s.Quests(context.Background(), "u1", tt.query)
			if err != nil {
				t.Fatalf("Quests() error = %v", err)
			}
			var got []string
			for _, q := range view.Quests {
				got = append(got, q.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Quests() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_TrackerService_AdjustQuestItem(t *testing.T) {
	tests := []struct {
		name    string
		itemID  string
		delta   int
		writes  []models.ObjectiveProgress
		want    int
		wantErr error
	}{
		{
			name:   "fills rows in order",
			itemID: "salewa",
			delta:  3,
			writes: []models.ObjectiveProgress{
				{UserID: "u1", QuestID: "q2", ObjectiveID: "o2", Collected: 3},
			},
			want: 4,
		},
		{
			name:   "drains the last row first",
			itemID: "salewa",
			delta:  -1,
			writes: []models.ObjectiveProgress{
				{UserID: "u1", QuestID: "q3", ObjectiveID: "o3", Collected: 0},
			},
			want: 0,
		},
		{
			name:    "completed quest refuses decrement",
			itemID:  "gun",
			delta:   -1,
			wantErr: ErrQuestCompleted,
		},
		{
			name:   "no-op writes nothing",
			itemID: "gun",
			delta:  1,
			want:   2,
		},
		{
			name:    "unknown item",
			itemID:  "nope",
			delta:   1,
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, progressRepo, _ := newTrackerService(t)
			progressRepo.EXPECT().Load(gomock.Any(), "u1").Return(testProgress(), nil)
			if tt.writes != nil {
				progressRepo.EXPECT().UpsertObjectives(gomock.Any(), tt.writes).Return(nil)
			}

			got, err := s.AdjustQuestItem(context.Background(), "u1", tt.itemID, tt.delta, requirements.Scope{Mode: requirements.ScopeAll})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AdjustQuestItem() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got.TotalCollected != tt.want {
				t.Errorf("AdjustQuestItem() collected = %d, want %d", got.TotalCollected, tt.want)
			}
		})
	}
}

func Test_TrackerService_MarkQuestItem(t *testing.T) {
	s, progressRepo, _ := newTrackerService(t)
	progressRepo.EXPECT().Load(gomock.Any(), "u1").Return(testProgress(), nil)
	progressRepo.EXPECT().UpsertObjectives(gomock.Any(), []models.ObjectiveProgress{
		{UserID: "u1", QuestID: "q2", ObjectiveID: "o2", Collected: 3},
		{UserID: "u1", QuestID: "q3", ObjectiveID: "o3", Collected: 2},
	}).Return(nil)

	got, err := s.MarkQuestItem(context.Background(), "u1", "salewa", true, requirements.Scope{})
	if err != nil {
		t.Fatalf("MarkQuestItem() error = %v", err)
	}
	if !got.Found() {
		t.Errorf("MarkQuestItem() item not found: %+v", got)
	}
}

func Test_TrackerService_HideoutItems(t *testing.T) {
	s, progressRepo, _ := newTrackerService(t)
	p := testProgress()
	p.Stations = []models.StationLevel{{UserID: "u1", StationID: "wb", Level: 1}}
	progressRepo.EXPECT().Load(gomock.Any(), "u1").Return(p, nil)
	progressRepo.EXPECT().ReplaceHideoutItems(gomock.Any(), "u1", []models.HideoutItemProgress{
		{ItemID: "bolts", Name: "Bolts", ShortName: "Bolts", TotalRequired: 8, TotalCollected: 5},
	}).Return(nil)

	view, err := s.HideoutItems(context.Background(), "u1", HideoutQuery{})
	if err != nil {
		t.Fatalf("HideoutItems() error = %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Remaining() != 3 {
		t.Errorf("HideoutItems() = %+v", view.Items)
	}
}

func Test_TrackerService_AdjustHideoutItemBuilt(t *testing.T) {
	s, progressRepo, _ := newTrackerService(t)
	p := testProgress()
	p.Stations = []models.StationLevel{{UserID: "u1", StationID: "wb", Level: 1}}
	progressRepo.EXPECT().Load(gomock.Any(), "u1").Return(p, nil)

	_, err := s.AdjustHideoutItem(context.Background(), "u1", "bolts", -1)
	if !errors.Is(err, ErrStationBuilt) {
		t.Errorf("AdjustHideoutItem() error = %v, want %v", err, ErrStationBuilt)
	}
}

func Test_TrackerService_SetStationLevel(t *testing.T) {
	tests := []struct {
		name      string
		stationID string
		level     int
		wantErr   error
	}{
		{"unknown station", "nope", 1, ErrNotFound},
		{"above max", "wb", 3, ErrInvalidInput},
		{"negative", "wb", -1, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTrackerService(t)
			err := s.SetStationLevel(context.Background(), "u1", tt.stationID, tt.level)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SetStationLevel() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func Test_TrackerService_UpdateProgress(t *testing.T) {
	s, progressRepo, userRepo := newTrackerService(t)
	edition := "edge of darkness"
	canonical := "Edge of Darkness"

	userRepo.EXPECT().UpdateProfile(gomock.Any(), "u1", models.UserProfile{Edition: &canonical}).Return(nil)
	progressRepo.EXPECT().UpsertTraders(gomock.Any(), []models.TraderStanding{{UserID: "u1", TraderID: "prapor", Level: 4}}).Return(nil)

	err := s.UpdateProgress(context.Background(), "u1", ProgressUpdate{
		Traders: map[string]int{"prapor": 9},
		Edition: &edition,
	})
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
}

func Test_TrackerService_UpdateProgressInvalid(t *testing.T) {
	bad := "Collector's"
	tests := []struct {
		name   string
		update ProgressUpdate
	}{
		{"quest status", ProgressUpdate{Quests: map[string]progress.QuestStatus{"q1": "done"}}},
		{"trader", ProgressUpdate{Traders: map[string]int{"btr": 2}}},
		{"edition", ProgressUpdate{Edition: &bad}},
		{"objective key", ProgressUpdate{Objectives: []ObjectiveUpdate{{QuestID: "q1"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTrackerService(t)
			if err := s.UpdateProgress(context.Background(), "u1", tt.update); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("UpdateProgress() error = %v, want %v", err, ErrInvalidInput)
			}
		})
	}
}

func Test_TrackerService_LoadActorNotFound(t *testing.T) {
	s, progressRepo, _ := newTrackerService(t)
	progressRepo.EXPECT().Load(gomock.Any(), "ghost").Return(nil, &repositories.NotFoundError{Entity: "user", ID: "ghost"})

	if _, err := s.LoadActor(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadActor() error = %v, want %v", err, ErrNotFound)
	}
}

func Test_actorFromProgress(t *testing.T) {
	p := testProgress()
	p.Traders = []models.TraderStanding{{TraderID: "prapor", Level: 2}, {TraderID: "unknown", Level: 3}}
	a := actorFromProgress(p)

	if !reflect.DeepEqual(a.TraderLevels, map[string]int{"Prapor": 2}) {
		t.Errorf("TraderLevels = %v", a.TraderLevels)
	}
	if !a.Completed()["q1"] {
		t.Errorf("q1 not completed")
	}
	if got := a.ObjectiveProgress[progress.ObjectiveKey{QuestID: "q3", ObjectiveID: "o3"}]; got != 1 {
		t.Errorf("objective progress = %d, want 1", got)
	}
}

func Test_seedEditionStations(t *testing.T) {
	stations := testSnapshot().Stations
	stations = append(stations, catalog.Station{ID: "cc", NormalizedName: "cultist-circle", Levels: []catalog.StationLevel{{ID: "cc1", Level: 1}}})

	tests := []struct {
		name     string
		edition  string
		recorded map[string]int
		want     map[string]int
	}{
		{"standard", "Standard", map[string]int{}, map[string]int{"stash": 1}},
		{"unheard", "Unheard", map[string]int{}, map[string]int{"stash": 4, "cc": 1}},
		{"recorded wins", "Unheard", map[string]int{"stash": 2}, map[string]int{"stash": 2, "cc": 1}},
		{"no edition", "", map[string]int{}, map[string]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := progress.Actor{Edition: tt.edition, StationLevels: tt.recorded}
			seedEditionStations(&a, stations, map[string]int{"Standard": 1, "Edge of Darkness": 4, "Unheard": 4}, []string{"Unheard"})
			if !reflect.DeepEqual(a.StationLevels, tt.want) {
				t.Errorf("StationLevels = %v, want %v", a.StationLevels, tt.want)
			}
		})
	}
}
