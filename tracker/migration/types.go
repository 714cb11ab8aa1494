package migration

import (
	"database/sql"
	"time"
)

// LegacyUser is one row of the legacy users table. Progress lives in JSON
// text columns and is decoded during conversion.
type LegacyUser struct {
	ID                string
	Username          string
	PasswordHash      string
	Faction           sql.NullString
	GameEdition       sql.NullString
	Level             sql.NullInt64
	FenceRep          sql.NullFloat64
	Quests            sql.NullString
	ObjectiveProgress sql.NullString
	HideoutItems      sql.NullString
	TraderStandings   sql.NullString
}

type LegacyTeam struct {
	ID          string
	Name        string
	OwnerUserID string
	InviteCode  string
	CreatedAt   sql.NullString
}

type LegacyMember struct {
	ID       string
	TeamID   string
	UserID   string
	Role     sql.NullString
	JoinedAt sql.NullString
}

// LegacyData is everything read from a legacy database file.
type LegacyData struct {
	Users   []LegacyUser
	Teams   []LegacyTeam
	Members []LegacyMember
}

type legacyQuest struct {
	QuestID     string `json:"questId"`
	Status      string `json:"status"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type legacyObjective struct {
	QuestID     string `json:"questId"`
	ObjectiveID string `json:"objectiveId"`
	Collected   int    `json:"collected"`
}

type legacyHideoutItem struct {
	ItemID         string `json:"itemId"`
	Name           string `json:"name"`
	ShortName      string `json:"shortName,omitempty"`
	IconLink       string `json:"iconLink,omitempty"`
	RequiresFIR    bool   `json:"requiresFir,omitempty"`
	TotalRequired  int    `json:"totalRequired"`
	TotalCollected int    `json:"totalCollected"`
}

type legacyTrader struct {
	TraderID string `json:"traderId"`
	Level    int    `json:"level"`
}

// Stats tracks per-table outcomes of a migration run.
type Stats struct {
	Tables         map[string]*TableStats `json:"tables"`
	StartTime      time.Time              `json:"start_time"`
	EndTime        time.Time              `json:"end_time"`
	TotalErrors    int                    `json:"total_errors"`
	TotalSkipped   int                    `json:"total_skipped"`
	TotalProcessed int                    `json:"total_processed"`
}

type TableStats struct {
	TableName      string          `json:"table_name"`
	Processed      int             `json:"processed"`
	Successful     int             `json:"successful"`
	Skipped        int             `json:"skipped"`
	Errors         int             `json:"errors"`
	SkippedRecords []SkippedRecord `json:"skipped_records,omitempty"`
	ErrorRecords   []ErrorRecord   `json:"error_records,omitempty"`
}

type SkippedRecord struct {
	Reason string `json:"reason"`
	Data   string `json:"data"`
}

type ErrorRecord struct {
	Error string `json:"error"`
	Data  string `json:"data"`
}

func newStats() *Stats {
	return &Stats{Tables: make(map[string]*TableStats), StartTime: time.Now()}
}

func (s *Stats) table(name string) *TableStats {
	t, ok := s.Tables[name]
	if !ok {
		t = &TableStats{TableName: name}
		s.Tables[name] = t
	}
	return t
}

func (s *Stats) processed(table string) { s.table(table).Processed++ }

func (s *Stats) successful(table string, n int) { s.table(table).Successful += n }

func (s *Stats) skipped(table, reason, data string) {
	t := s.table(table)
	t.Skipped++
	t.SkippedRecords = append(t.SkippedRecords, SkippedRecord{Reason: reason, Data: data})
}

func (s *Stats) failed(table, msg, data string) {
	t := s.table(table)
	t.Errors++
	t.ErrorRecords = append(t.ErrorRecords, ErrorRecord{Error: msg, Data: data})
}

// finish stamps the end time and recomputes the totals.
func (s *Stats) finish() {
	s.EndTime = time.Now()
	s.TotalProcessed, s.TotalSkipped, s.TotalErrors = 0, 0, 0
	for _, t := range s.Tables {
		s.TotalProcessed += t.Processed
		s.TotalSkipped += t.Skipped
		s.TotalErrors += t.Errors
	}
}
