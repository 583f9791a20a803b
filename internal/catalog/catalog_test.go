package catalog

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/model"
	"github.com/footyhub/uganda-footy-hub/internal/sample"
)

func TestFilterEvents(t *testing.T) {
	events := sample.Events()

	tests := []struct {
		name   string
		filter EventFilter
		want   []model.ID
	}{
		{name: "no filter sorts newest first", want: []model.ID{"1", "2", "3", "4", "5", "6"}},
		{name: "decade", filter: EventFilter{Decades: []int{2010}}, want: []model.ID{"3", "4", "5"}},
		{name: "decade and type", filter: EventFilter{Decades: []int{2010, 2000}, Types: []string{"league"}}, want: []model.ID{"6"}},
		{name: "team", filter: EventFilter{Team: "KCCA FC"}, want: []model.ID{"1", "4"}},
		{name: "nothing matches", filter: EventFilter{Types: []string{"friendly"}}, want: []model.ID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lo.Map(FilterEvents(events, tt.filter), func(e model.Event, _ int) model.ID { return e.ID })
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterEvents() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterEvents_DoesNotReorderInput(t *testing.T) {
	events := []model.Event{{ID: "a", Year: 1990}, {ID: "b", Year: 2020}}
	FilterEvents(events, EventFilter{})

	if events[0].ID != "a" {
		t.Error("input slice was reordered")
	}
}

func TestDecadesAndTeams(t *testing.T) {
	events := sample.Events()

	if got := Decades(events); !reflect.DeepEqual(got, []int{2020, 2010, 2000}) {
		t.Errorf("Decades() = %v", got)
	}
	want := []string{"Express FC", "KCCA FC", "SC Villa", "Uganda Cranes", "Vipers SC"}
	if got := EventTeams(events); !reflect.DeepEqual(got, want) {
		t.Errorf("EventTeams() = %v", got)
	}
}

func ptr(n int) *int { return &n }

func TestFilterTeams(t *testing.T) {
	teams := []model.Team{
		{ID: "1", Name: "vipers SC", Founded: 1969, League: "Uganda Premier League", Trophies: ptr(6)},
		{ID: "2", Name: "KCCA FC", Founded: 1963, League: "Uganda Premier League", Trophies: ptr(13)},
		{ID: "3", Name: "Uganda Cranes", League: "International"},
		{ID: "4", Name: "BUL FC", Founded: 2008, League: "FUFA Big League"},
	}

	ids := func(ts []model.Team) []model.ID {
		return lo.Map(ts, func(t model.Team, _ int) model.ID { return t.ID })
	}

	tests := []struct {
		name  string
		query TeamQuery
		want  []model.ID
	}{
		{name: "name", query: TeamQuery{Sort: SortByName}, want: []model.ID{"4", "2", "3", "1"}},
		{name: "founded, unknown first", query: TeamQuery{Sort: SortByFounded}, want: []model.ID{"3", "2", "1", "4"}},
		{name: "trophies", query: TeamQuery{Sort: SortByTrophies}, want: []model.ID{"2", "1", "3", "4"}},
		{name: "league substring", query: TeamQuery{League: "premier", Sort: SortByName}, want: []model.ID{"2", "1"}},
		{name: "all", query: TeamQuery{League: "All", Sort: SortByName}, want: []model.ID{"4", "2", "3", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(FilterTeams(teams, tt.query)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterTeams() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTeamSort(t *testing.T) {
	if s, err := ParseTeamSort(""); err != nil || s != SortByName {
		t.Errorf("ParseTeamSort(\"\") = %v, %v", s, err)
	}
	if s, err := ParseTeamSort("Trophies"); err != nil || s != SortByTrophies {
		t.Errorf("ParseTeamSort(Trophies) = %v, %v", s, err)
	}
	if _, err := ParseTeamSort("goals"); err == nil {
		t.Error("expected error")
	}
}

func TestFeatured(t *testing.T) {
	teams := make([]model.Team, 9)
	for i := range teams {
		teams[i] = model.Team{ID: model.ID(fmt.Sprint(i)), Name: fmt.Sprint("Team ", i)}
	}

	got := Featured(teams)
	if len(got) != FeaturedCount || got[0].ID != "0" || got[5].ID != "5" {
		t.Errorf("Featured() = %v", got)
	}
	if len(Featured(teams[:2])) != 2 {
		t.Error("Featured() of a short list should return all of it")
	}
}

func TestProfile_Defaults(t *testing.T) {
	p := Profile(model.Team{ID: "9", Name: "Mbarara City"})

	if p.Founded != "Unknown" || p.Stadium != "Stadium TBA" || p.Location != "Kampala, Uganda" {
		t.Errorf("profile = %+v", p)
	}
	if p.Trophies != 0 || p.Players != 25 || p.Matches != 0 || p.Goals != 0 {
		t.Errorf("stats = %d/%d/%d/%d", p.Trophies, p.Players, p.Matches, p.Goals)
	}
	if len(p.Achievements) != 3 || len(p.Squad) != 6 {
		t.Errorf("achievements=%d squad=%d", len(p.Achievements), len(p.Squad))
	}
	if p.Description == "" {
		t.Error("empty description")
	}
}

func TestProfile_KeepsKnownFields(t *testing.T) {
	p := Profile(model.Team{
		Name: "KCCA FC", Founded: 1963, Stadium: "Phillip Omondi Stadium",
		Trophies: ptr(13), Players: ptr(30), History: "Kasasiro Boys.",
	})

	if p.Founded != "1963" || p.Trophies != 13 || p.Players != 30 || p.Description != "Kasasiro Boys." {
		t.Errorf("profile = %+v", p)
	}
}

func article(title, desc string) model.NewsArticle {
	return model.NewsArticle{Title: title, Description: desc}
}

func TestFilterNews(t *testing.T) {
	articles := []model.NewsArticle{
		article("KCCA FC unveil new kit", ""),
		article("Cranes prepare for World Cup qualifier", "International window"),
		article("Striker joined Vipers", "Transfer news"),
		article("Weather delays training", ""),
	}

	titles := func(as []model.NewsArticle) []string {
		return lo.Map(as, func(a model.NewsArticle, _ int) string { return a.Title })
	}

	if got := FilterNews(articles, CategoryAll); len(got) != 4 {
		t.Errorf("all = %v", titles(got))
	}
	if got := titles(FilterNews(articles, CategoryTeams)); !reflect.DeepEqual(got, []string{"KCCA FC unveil new kit"}) {
		t.Errorf("teams = %v", got)
	}
	if got := titles(FilterNews(articles, CategoryTransfers)); !reflect.DeepEqual(got, []string{"Striker joined Vipers"}) {
		t.Errorf("transfers = %v", got)
	}
	if got := titles(FilterNews(articles, CategoryInternational)); !reflect.DeepEqual(got, []string{"Cranes prepare for World Cup qualifier"}) {
		t.Errorf("international = %v", got)
	}
}

func TestParseNewsCategory(t *testing.T) {
	if c, err := ParseNewsCategory(""); err != nil || c != CategoryAll {
		t.Errorf("ParseNewsCategory(\"\") = %v, %v", c, err)
	}
	if c, err := ParseNewsCategory("Matches"); err != nil || c != CategoryMatches {
		t.Errorf("ParseNewsCategory(Matches) = %v, %v", c, err)
	}
	if _, err := ParseNewsCategory("gossip"); err == nil {
		t.Error("expected error")
	}
}

func TestPaginateNews(t *testing.T) {
	articles := make([]model.NewsArticle, 20)
	for i := range articles {
		articles[i] = article(fmt.Sprint(i), "")
	}

	first := PaginateNews(articles, 1, 9)
	if first.Featured == nil || first.Featured.Title != "0" {
		t.Fatalf("featured = %+v", first.Featured)
	}
	if len(first.Articles) != 9 || first.Articles[0].Title != "1" || first.Articles[8].Title != "9" || !first.HasMore {
		t.Errorf("page 1 = %d items from %s, hasMore=%v", len(first.Articles), first.Articles[0].Title, first.HasMore)
	}

	second := PaginateNews(articles, 2, 9)
	if len(second.Articles) != 9 || second.Articles[0].Title != "10" || !second.HasMore {
		t.Errorf("page 2 = %d items, hasMore=%v", len(second.Articles), second.HasMore)
	}

	third := PaginateNews(articles, 3, 9)
	if len(third.Articles) != 1 || third.Articles[0].Title != "19" || third.HasMore {
		t.Errorf("page 3 = %+v", third.Articles)
	}

	beyond := PaginateNews(articles, 9, 9)
	if beyond.Articles == nil || len(beyond.Articles) != 0 || beyond.HasMore {
		t.Errorf("page 9 = %+v", beyond)
	}

	capped := PaginateNews(articles, 1, 1000)
	if capped.PerPage != MaxNewsPerPage || len(capped.Articles) != 19 || capped.HasMore {
		t.Errorf("perPage 1000 = %d items, perPage %d", len(capped.Articles), capped.PerPage)
	}

	huge := PaginateNews(articles[:5], 2, math.MaxInt)
	if len(huge.Articles) != 0 || huge.HasMore || huge.Featured == nil {
		t.Errorf("page 2 of MaxInt = %+v", huge)
	}

	farPage := PaginateNews(articles, math.MaxInt, 9)
	if len(farPage.Articles) != 0 || farPage.HasMore {
		t.Errorf("page MaxInt = %+v", farPage)
	}

	empty := PaginateNews(nil, 1, 0)
	if empty.Featured != nil || empty.PerPage != DefaultNewsPerPage {
		t.Errorf("empty = %+v", empty)
	}
}

func TestLabelAndTimeAgo(t *testing.T) {
	if l := Label(article("Match report: Villa 2-1 Express", "")); l != "Match" {
		t.Errorf("Label() = %s", l)
	}
	if l := Label(article("Cranes squad named", "")); l != "News" {
		t.Errorf("Label() = %s", l)
	}

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := map[time.Duration]string{
		10 * time.Minute:    "Just now",
		5 * time.Hour:       "5 hours ago",
		50 * time.Hour:      "2 days ago",
		30 * 24 * time.Hour: "9 Feb 2024",
	}
	for ago, want := range tests {
		if got := TimeAgo(now.Add(-ago), now); got != want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", ago, got, want)
		}
	}
}
