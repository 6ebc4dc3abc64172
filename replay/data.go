// Package replay holds the render job queue and the worker that turns
// uploaded replay files into videos.
package replay

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Slim carries the replay metadata the pipeline needs. Callers fill it
// from whatever parsed the replay file.
type Slim struct {
	BeatmapHash string
	Count300    uint16
	Count100    uint16
	Count50     uint16
	CountGeki   uint16
	CountKatsu  uint16
	CountMiss   uint16
	MaxCombo    uint16
	Mods        uint32
	PlayerName  string
}

// TotalHits is the number of judged objects.
func (s Slim) TotalHits() uint16 {
	return s.Count300 + s.Count100 + s.Count50 + s.CountMiss
}

// Accuracy returns the score accuracy in percent, rounded to two decimals.
func (s Slim) Accuracy() float64 {
	numerator := float64(uint32(s.Count50)*50 + uint32(s.Count100)*100 + uint32(s.Count300)*300)
	denominator := float64(s.TotalHits()) * 300.0

	return math.Round(10_000.0*numerator/denominator) / 100.0
}

// TimePoints optionally trims the rendered video, in seconds.
type TimePoints struct {
	Start *uint16
	End   *uint16
}

// Job is a queued render request.
type Job struct {
	ID            uuid.UUID
	InputChannel  string
	OutputChannel string
	Path          string
	MapID         uint32
	Replay        Slim
	TimePoints    TimePoints
	User          string
	// Settings names the danser settings file to render with; empty
	// means the default settings.
	Settings string
	Status   Status
}

// Name derives a display name from the replay file name: the extension
// and the trailing play description are cut, underscores become spaces.
func (j *Job) Name() string {
	name := filepath.Base(j.Path)

	end := strings.LastIndex(name, ".osr")
	if end < 0 {
		end = len(name)
	}
	if cut := strings.LastIndex(name[:end], "_Osu"); cut >= 0 {
		end = cut
	}

	return strings.ReplaceAll(name[:end], "_", " ")
}

// StatusKind is the pipeline stage a job is in.
type StatusKind uint8

const (
	StatusWaiting StatusKind = iota
	StatusDownloading
	StatusRendering
	StatusEncoding
	StatusUploading
)

// Status is the job stage shared between the worker and status readers.
type Status struct {
	mu       sync.Mutex
	kind     StatusKind
	progress uint8
}

// Set moves the job to a stage. Progress only applies to rendering and
// encoding and is clamped to 100.
func (s *Status) Set(kind StatusKind, progress uint8) {
	if progress > 100 {
		progress = 100
	}

	s.mu.Lock()
	s.kind = kind
	s.progress = progress
	s.mu.Unlock()
}

func (s *Status) String() string {
	s.mu.Lock()
	kind, progress := s.kind, s.progress
	s.mu.Unlock()

	switch kind {
	case StatusDownloading:
		return "Downloading"
	case StatusRendering:
		return fmt.Sprintf("Rendering (%d%%)", progress)
	case StatusEncoding:
		return fmt.Sprintf("Encoding (%d%%)", progress)
	case StatusUploading:
		return "Uploading"
	default:
		return "Waiting"
	}
}
