package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocalEvents_Fetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "events.json", `{"events": [
		{"id": 7, "year": 1978, "title": "Cranes reach AFCON final", "type": "international", "tags": ["afcon"]}
	]}`)

	events, err := NewLocalEvents(dir).Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(events) != 1 || events[0].ID != "7" || events[0].Year != 1978 {
		t.Errorf("Fetch() = %+v", events)
	}
}

func TestLocalEvents_MissingListIsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "events.json", `{}`)

	events, err := NewLocalEvents(dir).Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("Fetch() = %v, want empty list", events)
	}
}

func TestLocalEvents_Failures(t *testing.T) {
	tests := map[string]string{
		"malformed":     `{"events": [`,
		"missing title": `{"events": [{"id": 1, "year": 2000}]}`,
		"zero year":     `{"events": [{"id": 1, "title": "x"}]}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "events.json", body)

			if _, err := NewLocalEvents(dir).Fetch(context.Background(), ""); err == nil {
				t.Error("expected error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLocalEvents(t.TempDir()).Fetch(context.Background(), "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want ErrNotExist", err)
		}
	})
}

func TestLocalTeams_Fetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "teams.json", `{"teams": [
		{"id": 1, "name": "KCCA FC", "stadium": "Phillip Omondi Stadium", "founded": "1963", "league": "Uganda Premier League", "trophies": 13}
	]}`)

	teams, err := NewLocalTeams(dir).Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("got %d teams", len(teams))
	}
	if teams[0].Founded != 1963 || teams[0].Trophies == nil || *teams[0].Trophies != 13 {
		t.Errorf("team = %+v", teams[0])
	}

	writeFile(t, dir, "teams.json", `{"teams": [{"id": 2, "name": ""}]}`)
	if _, err := NewLocalTeams(dir).Fetch(context.Background(), ""); !errors.Is(err, model.ErrMissingName) {
		t.Errorf("err = %v, want ErrMissingName", err)
	}
}

func TestBundledDataIsValid(t *testing.T) {
	dir := filepath.Join("..", "..", "data")

	events, err := NewLocalEvents(dir).Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("bundled events: %v", err)
	}
	if len(events) == 0 {
		t.Error("bundled events are empty")
	}

	teams, err := NewLocalTeams(dir).Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("bundled teams: %v", err)
	}
	if len(teams) == 0 {
		t.Error("bundled teams are empty")
	}
}
