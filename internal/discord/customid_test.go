package discord

import (
	"strings"
	"testing"
)

func TestParseCustomID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    CustomID
		wantErr bool
	}{
		{
			name: "approve with slip",
			raw:  "ps:approve:PS-ABC123",
			want: CustomID{Scope: scopeRegistration, Action: actionApprove, Arg: "PS-ABC123"},
		},
		{
			name: "no arg",
			raw:  "ps:open",
			want: CustomID{Scope: scopeRegistration, Action: actionOpenForm},
		},
		{
			name: "arg keeps colons",
			raw:  "rc:pick:a:b",
			want: CustomID{Scope: scopeRace, Action: actionPick, Arg: "a:b"},
		},
		{name: "empty", raw: "", wantErr: true},
		{name: "scope only", raw: "ps", wantErr: true},
		{name: "empty action", raw: "ps::x", wantErr: true},
		{name: "unknown scope", raw: "zz:approve:1", wantErr: true},
		{name: "too long", raw: "ps:approve:" + strings.Repeat("x", 100), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCustomID(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %+v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestCustomIDRoundTrip(t *testing.T) {
	ids := []CustomID{
		newCustomID(scopeRace, actionConfirm, "4f7d2c1e-8a3b-4c55-9d0e-1f2a3b4c5d6e"),
		newCustomID(scopeTwitch, actionTwitchConfirm, "some_streamer"),
		newCustomID(scopeRegistration, actionForm, ""),
	}
	for _, id := range ids {
		got, err := ParseCustomID(id.String())
		if err != nil {
			t.Fatalf("ParseCustomID(%q) failed: %v", id.String(), err)
		}
		if got != id {
			t.Errorf("Round trip of %q gave %+v", id.String(), got)
		}
	}

	if r := newCustomID(scopeRace, actionWin, "x").Route(); r != "rc:win" {
		t.Errorf("Expected route rc:win, got %s", r)
	}
}
