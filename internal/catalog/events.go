// Package catalog holds the browsing rules shared by the API and the bot:
// timeline filters, team sorting and profiles, news categories and pages.
//
// Slices handed out by the gateway are shared with its cache, so every
// function here works on a copy and never reorders its input.
package catalog

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/tomakado/containers/set"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

// EventFilter narrows the timeline. Empty fields do not filter.
type EventFilter struct {
	Decades []int
	Types   []string
	Team    string
}

// FilterEvents returns matching events, newest first.
func FilterEvents(events []model.Event, f EventFilter) []model.Event {
	decades := set.New(f.Decades...)
	types := set.New(f.Types...)

	out := lo.Filter(events, func(e model.Event, _ int) bool {
		if len(f.Decades) > 0 && !decades.Contains(e.Decade()) {
			return false
		}
		if len(f.Types) > 0 && !types.Contains(e.Type) {
			return false
		}
		if f.Team != "" && e.Team != f.Team {
			return false
		}
		return true
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Year > out[j].Year
	})

	return out
}

func EventByID(events []model.Event, id model.ID) (model.Event, bool) {
	return lo.Find(events, func(e model.Event) bool {
		return e.ID == id
	})
}

// Decades lists the distinct decades present, newest first.
func Decades(events []model.Event) []int {
	out := lo.Uniq(lo.Map(events, func(e model.Event, _ int) int {
		return e.Decade()
	}))
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// EventTeams lists the distinct team names mentioned by the timeline, sorted.
func EventTeams(events []model.Event) []string {
	out := lo.Uniq(lo.FilterMap(events, func(e model.Event, _ int) (string, bool) {
		return e.Team, strings.TrimSpace(e.Team) != ""
	}))
	sort.Strings(out)
	return out
}
