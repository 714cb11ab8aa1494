package eligibility

import "github.com/raidledger/raidledger/internal/domain/catalog"

type Summary struct {
	Total                int `json:"total"`
	Completed            int `json:"completed"`
	Available            int `json:"available"`
	Locked               int `json:"locked"`
	KappaTotal           int `json:"kappaTotal"`
	KappaCompleted       int `json:"kappaCompleted"`
	LightkeeperTotal     int `json:"lightkeeperTotal"`
	LightkeeperCompleted int `json:"lightkeeperCompleted"`
}

// Summarize counts quests by resolved status. Quests without a state are
// counted as locked.
func Summarize(quests []catalog.Quest, states map[string]State) Summary {
	var s Summary
	for _, q := range quests {
		s.Total++
		status := states[q.ID].Status
		switch status {
		case StatusCompleted:
			s.Completed++
		case StatusAvailable:
			s.Available++
		default:
			s.Locked++
		}
		if q.KappaRequired {
			s.KappaTotal++
			if status == StatusCompleted {
				s.KappaCompleted++
			}
		}
		if q.LightkeeperRequired {
			s.LightkeeperTotal++
			if status == StatusCompleted {
				s.LightkeeperCompleted++
			}
		}
	}
	return s
}
