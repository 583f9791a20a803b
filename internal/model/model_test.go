package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{in: `1`, want: "1"},
		{in: `"133604"`, want: "133604"},
		{in: `null`, want: ""},
	}

	for _, tt := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.in, err)
			continue
		}
		if id != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, id, tt.want)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`{}`), &id); err == nil {
		t.Error("expected error for object id")
	}
}

func TestYear_UnmarshalJSON(t *testing.T) {
	var team struct {
		Founded Year `json:"founded"`
	}
	for in, want := range map[string]Year{
		`{"founded": 1963}`:   1963,
		`{"founded": "1927"}`: 1927,
		`{"founded": ""}`:     0,
		`{"founded": null}`:   0,
	} {
		team.Founded = -1
		if err := json.Unmarshal([]byte(in), &team); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", in, err)
			continue
		}
		if team.Founded != want {
			t.Errorf("Unmarshal(%s) = %d, want %d", in, team.Founded, want)
		}
	}

	if err := json.Unmarshal([]byte(`{"founded": "long ago"}`), &team); err == nil {
		t.Error("expected error for non numeric year")
	}
}

func TestEvent_Validate(t *testing.T) {
	ok := Event{ID: "1", Year: 1978, Title: "AFCON final"}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	if err := (Event{ID: "2", Year: 1978}).Validate(); !errors.Is(err, ErrMissingTitle) {
		t.Errorf("Validate() = %v, want ErrMissingTitle", err)
	}
	if err := (Event{ID: "3", Title: "x"}).Validate(); !errors.Is(err, ErrInvalidYear) {
		t.Errorf("Validate() = %v, want ErrInvalidYear", err)
	}
}

func TestEvent_Decade(t *testing.T) {
	if d := (Event{Year: 2018}).Decade(); d != 2010 {
		t.Errorf("Decade() = %d", d)
	}
	if d := (Event{Year: 1960}).Decade(); d != 1960 {
		t.Errorf("Decade() = %d", d)
	}
}

func TestTeam_Validate(t *testing.T) {
	if err := (Team{Name: "   "}).Validate(); !errors.Is(err, ErrMissingName) {
		t.Errorf("Validate() = %v, want ErrMissingName", err)
	}
}

func TestFavoriteKind_Valid(t *testing.T) {
	for _, k := range []FavoriteKind{FavoriteTeams, FavoritePlayers, FavoriteEvents} {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if FavoriteKind("stadiums").Valid() {
		t.Error("stadiums should not be valid")
	}
}
