package textutil

import "testing"

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"MY_GAME_DISC", "My Game Disc"},
		{"quake.ii", "Quake Ii"},
		{"Already Nice", "Already Nice"},
		{"multi--dash__mix", "Multi Dash Mix"},
		{"", "Unknown Disc"},
		{"___", "Unknown Disc"},
		{"CDROM", "Cdrom"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := DisplayTitle(tt.label); got != tt.want {
				t.Errorf("DisplayTitle(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}
