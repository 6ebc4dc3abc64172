package replay

import (
	"testing"

	"github.com/google/uuid"
)

func TestSlimTotalHits(t *testing.T) {
	s := Slim{Count300: 100, Count100: 20, Count50: 3, CountMiss: 2, CountGeki: 50, CountKatsu: 10}
	if got := s.TotalHits(); got != 125 {
		t.Errorf("TotalHits = %d, want 125", got)
	}
}

func TestSlimAccuracy(t *testing.T) {
	tests := []struct {
		name string
		slim Slim
		want float64
	}{
		{
			name: "perfect",
			slim: Slim{Count300: 50},
			want: 100.0,
		},
		{
			name: "mixed",
			slim: Slim{Count300: 90, Count100: 8, Count50: 1, CountMiss: 1},
			want: 92.83,
		},
		{
			name: "all misses",
			slim: Slim{CountMiss: 10},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.slim.Accuracy(); got != tt.want {
				t.Errorf("Accuracy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJobName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/replays/player_-_song_Osu_2023.osr", want: "player - song"},
		{path: "cookiezi_freedom_dive.osr", want: "cookiezi freedom dive"},
		{path: "plain", want: "plain"},
	}

	for _, tt := range tests {
		job := &Job{Path: tt.path}
		if got := job.Name(); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	var s Status
	if got := s.String(); got != "Waiting" {
		t.Errorf("zero status = %q, want Waiting", got)
	}

	s.Set(StatusDownloading, 0)
	if got := s.String(); got != "Downloading" {
		t.Errorf("status = %q, want Downloading", got)
	}

	s.Set(StatusRendering, 42)
	if got := s.String(); got != "Rendering (42%)" {
		t.Errorf("status = %q, want Rendering (42%%)", got)
	}

	s.Set(StatusEncoding, 250)
	if got := s.String(); got != "Encoding (100%)" {
		t.Errorf("status = %q, want clamped Encoding (100%%)", got)
	}

	s.Set(StatusUploading, 0)
	if got := s.String(); got != "Uploading" {
		t.Errorf("status = %q, want Uploading", got)
	}
}

func TestJobNameUsesLastMarkers(t *testing.T) {
	job := &Job{ID: uuid.New(), Path: "a_b_Osu_x_Osu_final.osr"}
	if got := job.Name(); got != "a b Osu x" {
		t.Errorf("Name = %q, want %q", got, "a b Osu x")
	}
}
