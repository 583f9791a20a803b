package botkit

import (
	"reflect"
	"testing"
)

func TestParseJSON(t *testing.T) {
	type args struct {
		Kind string `json:"kind"`
		ID   string `json:"id"`
	}

	got, err := ParseJSON[args](`{"kind": "teams", "id": "1"}`)
	if err != nil {
		t.Fatal(err)
	}
	if got != (args{Kind: "teams", ID: "1"}) {
		t.Errorf("ParseJSON() = %+v", got)
	}

	if _, err := ParseJSON[args](`teams 1`); err == nil {
		t.Error("expected error")
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want []string
	}{
		{in: "", n: 2, want: nil},
		{in: "teams 1", n: 2, want: []string{"teams", "1"}},
		{in: "event-3   What a   night in Accra!", n: 2, want: []string{"event-3", "What a   night in Accra!"}},
		{in: "team-1 Okello Great derby today", n: 3, want: []string{"team-1", "Okello", "Great derby today"}},
		{in: "single", n: 3, want: []string{"single"}},
	}

	for _, tt := range tests {
		if got := SplitArgs(tt.in, tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitArgs(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
