package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/raidledger/raidledger/backend/config"
	"github.com/raidledger/raidledger/backend/handlers"
	webservices "github.com/raidledger/raidledger/backend/services"
	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/gateways/tarkovdev"
	"github.com/raidledger/raidledger/tracker"
	"github.com/raidledger/raidledger/tracker/database/models"
	"github.com/raidledger/raidledger/tracker/database/repositories"
	"github.com/raidledger/raidledger/tracker/database/repositories/mock"
	"github.com/raidledger/raidledger/tracker/services"
)

type fakeCatalog struct {
	snap *catalog.Snapshot
	err  error
}

func (f fakeCatalog) Snapshot(context.Context) (*catalog.Snapshot, error) {
	return f.snap, f.err
}

func (f fakeCatalog) HideoutWiki(context.Context) (*tarkovdev.HideoutWiki, error) {
	return nil, tarkovdev.ErrDataUnavailable
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var (
	gun    = catalog.ItemRef{ID: "gun", Name: "MP-133 shotgun", ShortName: "MP-133"}
	salewa = catalog.ItemRef{ID: "salewa", Name: "Salewa first aid kit", ShortName: "Salewa"}
)

func testSnapshot() *catalog.Snapshot {
	quests := []catalog.Quest{
		{ID: "q1", Title: "Debut", Trader: "Prapor", Objectives: []catalog.Objective{
			{ID: "o1", Type: "giveItem", Items: []catalog.ItemRef{gun}, Count: 2},
		}},
		{ID: "q2", Title: "Shortage", Trader: "Therapist", PreviousQuestIDs: []string{"q1"}, KappaRequired: true, Objectives: []catalog.Objective{
			{ID: "o2", Type: "giveItem", Items: []catalog.ItemRef{salewa}, Count: 3, FoundInRaid: true},
		}},
	}
	stations := []catalog.Station{
		{ID: "wb", Name: "Workbench", NormalizedName: "workbench", Levels: []catalog.StationLevel{{ID: "wb1", Level: 1}}},
	}
	return catalog.NewSnapshot(quests, stations, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
}

type testMocks struct {
	users    *mock.MockUserRepository
	progress *mock.MockProgressRepository
	teams    *mock.MockTeamRepository
}

func newTestApp(t *testing.T, source services.CatalogSource) (*fiber.App, testMocks) {
	ctrl := gomock.NewController(t)
	m := testMocks{
		users:    mock.NewMockUserRepository(ctrl),
		progress: mock.NewMockProgressRepository(ctrl),
		teams:    mock.NewMockTeamRepository(ctrl),
	}

	cfg := tracker.DefaultConfig()
	cfg.Web.SessionSecret = "test-secret"
	cfg.Web.RateLimit = 0
	webConfig := config.NewWebAppConfig(&cfg, true)

	trackerService := services.NewTrackerService(source, m.progress, m.users)
	webApp := &handlers.WebApp{
		Config:         webConfig,
		DB:             fakePinger{},
		Tracker:        trackerService,
		Teams:          services.NewTeamService(m.teams, m.progress, trackerService),
		Auth:           services.NewAuthService(m.users),
		SessionService: webservices.NewSessionService(webConfig),
		Version:        "test",
	}
	return New(webApp), m
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func do(t *testing.T, app *fiber.App, method, target, body string, cookies ...*http.Cookie) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test(%s %s) error = %v", method, target, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("%s %s: decode body %q: %v", method, target, raw, err)
		}
	}
	return resp, env
}

// login signs in as alice and returns the session cookie.
func login(t *testing.T, app *fiber.App, m testMocks) *http.Cookie {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	m.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&models.User{ID: "u1", Username: "alice", PasswordHash: string(hash)}, nil)

	resp, _ := do(t, app, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"hunter2hunter2"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "raidledger_session" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func testProgress() *models.Progress {
	return &models.Progress{
		User:   &models.User{ID: "u1", Username: "alice"},
		Quests: []models.QuestProgress{{UserID: "u1", QuestID: "q1", Status: "completed"}},
	}
}

func Test_Router_Health(t *testing.T) {
	app, _ := newTestApp(t, fakeCatalog{snap: testSnapshot()})

	resp, env := do(t, app, http.MethodGet, "/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var health struct {
		Status        string `json:"status"`
		CatalogQuests int    `json:"catalogQuests"`
	}
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" || health.CatalogQuests != 2 {
		t.Errorf("health = %+v", health)
	}
}

func Test_Router_RequiresSession(t *testing.T) {
	app, _ := newTestApp(t, fakeCatalog{snap: testSnapshot()})

	tests := []struct {
		name   string
		method string
		target string
		cookie *http.Cookie
	}{
		{name: "me", method: http.MethodGet, target: "/api/me"},
		{name: "quests", method: http.MethodGet, target: "/api/quests"},
		{name: "hideout level", method: http.MethodPut, target: "/api/hideout/stations/wb/level"},
		{name: "teams", method: http.MethodGet, target: "/api/teams"},
		{name: "tampered cookie", method: http.MethodGet, target: "/api/me", cookie: &http.Cookie{Name: "raidledger_session", Value: "bm90LXNpZ25lZA=="}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tt.cookie != nil {
				cookies = append(cookies, tt.cookie)
			}
			resp, env := do(t, app, tt.method, tt.target, "", cookies...)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
			}
			if env.Error == nil || env.Error.Code != "UNAUTHORIZED" {
				t.Errorf("error = %+v, want UNAUTHORIZED", env.Error)
			}
		})
	}
}

func Test_Router_Login(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(m testMocks)
		wantCode int
	}{
		{
			name:     "missing password",
			body:     `{"username":"alice"}`,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown user",
			body: `{"username":"bob","password":"whatever1"}`,
			setup: func(m testMocks) {
				m.users.EXPECT().GetByUsername(gomock.Any(), "bob").Return(nil, &repositories.NotFoundError{Entity: "user", ID: "bob"})
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed body",
			body:     `{"username":`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m := newTestApp(t, fakeCatalog{snap: testSnapshot()})
			if tt.setup != nil {
				tt.setup(m)
			}
			resp, _ := do(t, app, http.MethodPost, "/api/auth/login", tt.body)
			if resp.StatusCode != tt.wantCode {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
		})
	}
}

func Test_Router_MeWithSession(t *testing.T) {
	app, m := newTestApp(t, fakeCatalog{snap: testSnapshot()})
	cookie := login(t, app, m)
	m.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", Username: "alice"}, nil)

	resp, env := do(t, app, http.MethodGet, "/api/me", "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatal(err)
	}
	if user.ID != "u1" || user.Username != "alice" {
		t.Errorf("me = %+v", user)
	}
}

func Test_Router_QuestItems(t *testing.T) {
	app, m := newTestApp(t, fakeCatalog{snap: testSnapshot()})
	cookie := login(t, app, m)
	m.progress.EXPECT().Load(gomock.Any(), "u1").Return(testProgress(), nil)

	resp, env := do(t, app, http.MethodGet, "/api/quests/items?tab=needed", "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var view struct {
		Items []struct {
			ItemID      string `json:"itemId"`
			RequiresFIR bool   `json:"requiresFir"`
		} `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 1 || view.Items[0].ItemID != "salewa" {
		t.Errorf("items = %+v, want only salewa", view.Items)
	}
}

func Test_Router_QuestItemsBadQuery(t *testing.T) {
	app, m := newTestApp(t, fakeCatalog{snap: testSnapshot()})
	cookie := login(t, app, m)

	for _, target := range []string{"/api/quests/items?tab=lost", "/api/quests/items?scope=everything"} {
		resp, env := do(t, app, http.MethodGet, target, "", cookie)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("%s status = %d, want %d", target, resp.StatusCode, http.StatusUnprocessableEntity)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("%s error = %+v", target, env.Error)
		}
	}
}

func Test_Router_AdjustQuestItem(t *testing.T) {
	tests := []struct {
		name     string
		itemID   string
		body     string
		load     bool
		writes   bool
		wantCode int
		wantErr  string
	}{
		{name: "empty body", itemID: "salewa", body: `{}`, wantCode: http.StatusUnprocessableEntity, wantErr: "VALIDATION_ERROR"},
		{name: "zero delta", itemID: "salewa", body: `{"delta":0}`, wantCode: http.StatusUnprocessableEntity, wantErr: "VALIDATION_ERROR"},
		{name: "both delta and markAll", itemID: "salewa", body: `{"delta":1,"markAll":"found"}`, wantCode: http.StatusUnprocessableEntity, wantErr: "VALIDATION_ERROR"},
		{name: "completed quest", itemID: "gun", body: `{"delta":-1}`, load: true, wantCode: http.StatusConflict, wantErr: "QUEST_COMPLETED"},
		{name: "unknown item", itemID: "nope", body: `{"delta":1}`, load: true, wantCode: http.StatusNotFound, wantErr: "NOT_FOUND"},
		{name: "mark found", itemID: "salewa", body: `{"markAll":"found"}`, load: true, writes: true, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m := newTestApp(t, fakeCatalog{snap: testSnapshot()})
			cookie := login(t, app, m)
			if tt.load {
				m.progress.EXPECT().Load(gomock.Any(), "u1").Return(testProgress(), nil)
			}
			if tt.writes {
				m.progress.EXPECT().UpsertObjectives(gomock.Any(), []models.ObjectiveProgress{
					{UserID: "u1", QuestID: "q2", ObjectiveID: "o2", Collected: 3},
				}).Return(nil)
			}

			resp, env := do(t, app, http.MethodPost, "/api/quests/items/"+tt.itemID+"/adjust", tt.body, cookie)
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
			if tt.wantErr != "" && (env.Error == nil || env.Error.Code != tt.wantErr) {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantErr)
			}
		})
	}
}

func Test_Router_DataUnavailable(t *testing.T) {
	app, m := newTestApp(t, fakeCatalog{err: tarkovdev.ErrDataUnavailable})
	cookie := login(t, app, m)

	resp, env := do(t, app, http.MethodGet, "/api/quests", "", cookie)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadGateway)
	}
	if env.Error == nil || env.Error.Code != "DATA_UNAVAILABLE" {
		t.Errorf("error = %+v, want DATA_UNAVAILABLE", env.Error)
	}
}

func Test_Router_TeamForbidden(t *testing.T) {
	app, m := newTestApp(t, fakeCatalog{snap: testSnapshot()})
	cookie := login(t, app, m)
	m.teams.EXPECT().GetByID(gomock.Any(), "t1").Return(&models.Team{ID: "t1", OwnerID: "u2"}, nil)
	m.teams.EXPECT().Members(gomock.Any(), "t1").Return([]models.TeamMember{{TeamID: "t1", UserID: "u2", Role: models.RoleOwner}}, nil)

	resp, env := do(t, app, http.MethodGet, "/api/teams/t1/needs", "", cookie)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
	if env.Error == nil || env.Error.Code != "FORBIDDEN" {
		t.Errorf("error = %+v, want FORBIDDEN", env.Error)
	}
}

func Test_Router_NotFoundRoute(t *testing.T) {
	app, _ := newTestApp(t, fakeCatalog{snap: testSnapshot()})

	resp, _ := do(t, app, http.MethodGet, "/api/unknown", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
