package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

const FeaturedCount = 6

type TeamSort string

const (
	SortByName     TeamSort = "name"
	SortByFounded  TeamSort = "founded"
	SortByTrophies TeamSort = "trophies"
)

func ParseTeamSort(s string) (TeamSort, error) {
	switch ts := TeamSort(strings.ToLower(strings.TrimSpace(s))); ts {
	case "":
		return SortByName, nil
	case SortByName, SortByFounded, SortByTrophies:
		return ts, nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

type TeamQuery struct {
	// League is matched as a case-insensitive substring; "" and "all" match every team.
	League string
	Sort   TeamSort
}

func FilterTeams(teams []model.Team, q TeamQuery) []model.Team {
	league := strings.ToLower(strings.TrimSpace(q.League))

	out := lo.Filter(teams, func(t model.Team, _ int) bool {
		if league == "" || league == "all" {
			return true
		}
		return strings.Contains(strings.ToLower(t.League), league)
	})

	var less func(a, b model.Team) bool
	switch q.Sort {
	case SortByFounded:
		less = func(a, b model.Team) bool { return a.Founded < b.Founded }
	case SortByTrophies:
		less = func(a, b model.Team) bool { return intOr(a.Trophies, 0) > intOr(b.Trophies, 0) }
	default:
		less = func(a, b model.Team) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	return out
}

// Featured returns the first six teams in gateway order.
func Featured(teams []model.Team) []model.Team {
	n := lo.Min([]int{len(teams), FeaturedCount})
	out := make([]model.Team, n)
	copy(out, teams[:n])
	return out
}

func TeamByID(teams []model.Team, id model.ID) (model.Team, bool) {
	return lo.Find(teams, func(t model.Team) bool {
		return t.ID == id
	})
}

// TeamProfile is a team with every optional field filled in for display.
type TeamProfile struct {
	ID           model.ID       `json:"id"`
	Name         string         `json:"name"`
	Badge        string         `json:"badge,omitempty"`
	League       string         `json:"league"`
	Founded      string         `json:"founded"`
	Stadium      string         `json:"stadium"`
	Location     string         `json:"location"`
	Trophies     int            `json:"trophies"`
	Players      int            `json:"players"`
	Matches      int            `json:"matches"`
	Goals        int            `json:"goals"`
	Description  string         `json:"description"`
	Achievements []string       `json:"achievements"`
	Squad        []model.Player `json:"squad"`
}

const defaultSquadSize = 25

var defaultAchievements = []string{
	"2023 League Runner-up",
	"2022 Cup Finalist",
	"2021 League Champion",
}

var defaultSquad = []model.Player{
	{Name: "Player 1", Position: "Forward"},
	{Name: "Player 2", Position: "Midfielder"},
	{Name: "Player 3", Position: "Defender"},
	{Name: "Player 4", Position: "Goalkeeper"},
	{Name: "Player 5", Position: "Forward"},
	{Name: "Player 6", Position: "Midfielder"},
}

// Profile applies the display defaults to the team's optional fields.
func Profile(t model.Team) TeamProfile {
	founded := "Unknown"
	if t.Founded > 0 {
		founded = strconv.Itoa(int(t.Founded))
	}

	description := t.History
	if description == "" {
		since := "the early years"
		if t.Founded > 0 {
			since = founded
		}
		description = fmt.Sprintf("%s is one of Uganda's premier football clubs. Founded in %s, "+
			"the club has been a cornerstone of Ugandan football, competing in the top leagues and "+
			"producing talented players who have represented both club and country with distinction.",
			t.Name, since)
	}

	return TeamProfile{
		ID:           t.ID,
		Name:         t.Name,
		Badge:        t.Badge,
		League:       t.League,
		Founded:      founded,
		Stadium:      lo.Ternary(t.Stadium != "", t.Stadium, "Stadium TBA"),
		Location:     "Kampala, Uganda",
		Trophies:     intOr(t.Trophies, 0),
		Players:      intOr(t.Players, defaultSquadSize),
		Matches:      intOr(t.Matches, 0),
		Goals:        intOr(t.Goals, 0),
		Description:  description,
		Achievements: lo.Ternary(len(t.Achievements) > 0, t.Achievements, defaultAchievements),
		Squad:        lo.Ternary(len(t.Squad) > 0, t.Squad, defaultSquad),
	}
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
