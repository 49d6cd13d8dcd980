package domain

import (
	"sort"
)

// PlayerStatistics is a value type: Apply returns an updated copy and never
// touches the receiver, so snapshots stored in rounds stay stable.
type PlayerStatistics struct {
	Name          string  `json:"name"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Rating        float64 `json:"rating"`
}

func NewPlayerStatistics(name string) PlayerStatistics {
	return PlayerStatistics{Name: name}
}

func (s PlayerStatistics) Games() int {
	return s.Wins + s.Losses + s.Ties
}

// Apply folds one game, seen from player p, into a copy of s.
func (s PlayerStatistics) Apply(result GameResult, p Player) PlayerStatistics {
	s.PointsFor += result.Points(p)
	s.PointsAgainst += result.Points(p.Opponent())
	switch result.Winner {
	case p:
		s.Wins++
	case NoPlayer:
		s.Ties++
	default:
		s.Losses++
	}
	s.Rating = (float64(s.Wins) + float64(s.Ties)/2) / float64(s.Games())
	return s
}

// Less orders by rating descending, then name descending.
func (s PlayerStatistics) Less(o PlayerStatistics) bool {
	if s.Rating != o.Rating {
		return s.Rating > o.Rating
	}
	return s.Name > o.Name
}

type RoundResults struct {
	Index   int                `json:"round"`
	Players []PlayerStatistics `json:"players"`
}

// NewRoundResults copies the entries and sorts them by standing.
func NewRoundResults(index int, entries map[string]PlayerStatistics) RoundResults {
	players := make([]PlayerStatistics, 0, len(entries))
	for _, s := range entries {
		players = append(players, s)
	}
	SortStandings(players)
	return RoundResults{Index: index, Players: players}
}

func SortStandings(players []PlayerStatistics) {
	sort.Slice(players, func(i, j int) bool {
		return players[i].Less(players[j])
	})
}

type Reporter interface {
	Report(rounds []RoundResults) error
	Summary(standings []PlayerStatistics) error
}
