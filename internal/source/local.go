package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

// LocalEvents reads the timeline bundled with the binary's data directory.
type LocalEvents struct {
	Path string
}

func NewLocalEvents(dataDir string) LocalEvents {
	return LocalEvents{Path: filepath.Join(dataDir, "events.json")}
}

func (s LocalEvents) Name() string {
	return "local-json"
}

func (s LocalEvents) Fetch(ctx context.Context, _ string) ([]model.Event, error) {
	var payload struct {
		Events []model.Event `json:"events"`
	}
	if err := readJSONFile(ctx, s.Path, &payload); err != nil {
		return nil, err
	}

	// a file without the list is an empty timeline, not a broken one
	if payload.Events == nil {
		return []model.Event{}, nil
	}

	for _, e := range payload.Events {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Path, err)
		}
	}

	return payload.Events, nil
}

// LocalTeams reads teams.json from the data directory.
type LocalTeams struct {
	Path string
}

func NewLocalTeams(dataDir string) LocalTeams {
	return LocalTeams{Path: filepath.Join(dataDir, "teams.json")}
}

func (s LocalTeams) Name() string {
	return "local-json"
}

func (s LocalTeams) Fetch(ctx context.Context, _ string) ([]model.Team, error) {
	var payload struct {
		Teams []model.Team `json:"teams"`
	}
	if err := readJSONFile(ctx, s.Path, &payload); err != nil {
		return nil, err
	}

	if payload.Teams == nil {
		return []model.Team{}, nil
	}

	for _, t := range payload.Teams {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Path, err)
		}
	}

	return payload.Teams, nil
}

func readJSONFile(ctx context.Context, path string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	return nil
}
