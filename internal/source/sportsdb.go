package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/fetch"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

// ErrMissingField means the upstream answered 200 but without the field that
// carries the data. TheSportsDB reports "no results" that way.
var ErrMissingField = errors.New("response is missing a required field")

// SportsDB fetches every team of one country from TheSportsDB.
type SportsDB struct {
	client  *fetch.Client
	baseURL string
	key     string
	country string
}

func NewSportsDB(client *fetch.Client, baseURL, key, country string) *SportsDB {
	return &SportsDB{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		country: country,
	}
}

func (s *SportsDB) Name() string {
	return "sportsdb"
}

type sportsDBTeam struct {
	ID            model.ID   `json:"idTeam"`
	Name          string     `json:"strTeam"`
	Stadium       string     `json:"strStadium"`
	FormedYear    model.Year `json:"intFormedYear"`
	Badge         string     `json:"strBadge"`
	TeamBadge     string     `json:"strTeamBadge"`
	League        string     `json:"strLeague"`
	DescriptionEN string     `json:"strDescriptionEN"`
}

// maskKey hides the key, which TheSportsDB takes as a path segment.
func (s *SportsDB) maskKey(err error) error {
	if s.key == "" {
		return err
	}
	return fetch.Mask(err, "/"+url.PathEscape(s.key)+"/", "/"+fetch.Redacted+"/")
}

func (s *SportsDB) Fetch(ctx context.Context, _ string) ([]model.Team, error) {
	u := fmt.Sprintf("%s/%s/search_all_teams.php?c=%s", s.baseURL, url.PathEscape(s.key), url.QueryEscape(s.country))

	var payload struct {
		Teams *[]sportsDBTeam `json:"teams"`
	}
	if err := s.client.GetJSON(ctx, u, &payload); err != nil {
		return nil, s.maskKey(err)
	}

	if payload.Teams == nil {
		return nil, fmt.Errorf("teams: %w", ErrMissingField)
	}

	teams := lo.Map(*payload.Teams, func(t sportsDBTeam, _ int) model.Team {
		return model.Team{
			ID:      t.ID,
			Name:    t.Name,
			Stadium: t.Stadium,
			Founded: t.FormedYear,
			Badge:   lo.Ternary(t.Badge != "", t.Badge, t.TeamBadge),
			League:  t.League,
			History: t.DescriptionEN,
		}
	})

	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}

	return teams, nil
}
