package services

import (
	"reflect"
	"testing"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/requirements"
	"github.com/raidledger/raidledger/internal/domain/team"
)

func TestSearchItems(t *testing.T) {
	items := []requirements.Item{
		{ItemID: "bolts", Name: "Bolts", ShortName: "Bolts"},
		{ItemID: "salewa", Name: "Salewa first aid kit", ShortName: "Salewa"},
		{ItemID: "gun", Name: "MP-133 shotgun", ShortName: "MP-133"},
	}
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps order", "  ", []string{"bolts", "salewa", "gun"}},
		{"subsequence", "slwa", []string{"salewa"}},
		{"case and spacing", "  FIRST   aid ", []string{"salewa"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, it := range SearchItems(items, tt.query) {
				got = append(got, it.ItemID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchItems() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchQuestsLimit(t *testing.T) {
	quests := []catalog.Quest{
		{ID: "a", Title: "Shortage"},
		{ID: "b", Title: "Shooter Born in Heaven"},
		{ID: "c", Title: "Debut"},
	}
	if got := SearchQuests(quests, "", 2); len(got) != 2 {
		t.Errorf("SearchQuests() empty query len = %d, want 2", len(got))
	}
	got := SearchQuests(quests, "sho", 1)
	if len(got) != 1 || (got[0].ID != "a" && got[0].ID != "b") {
		t.Errorf("SearchQuests() = %+v", got)
	}
}

func TestSearchTeamItems(t *testing.T) {
	items := []team.Item{
		{ItemID: "bolts", Name: "Bolts", ShortName: "Bolts"},
		{ItemID: "salewa", Name: "Salewa first aid kit", ShortName: "Salewa"},
	}
	got := SearchTeamItems(items, "aid")
	if len(got) != 1 || got[0].ItemID != "salewa" {
		t.Errorf("SearchTeamItems() = %+v", got)
	}
	if got := SearchTeamItems(items, ""); len(got) != 2 {
		t.Errorf("SearchTeamItems() empty query len = %d, want 2", len(got))
	}
}
