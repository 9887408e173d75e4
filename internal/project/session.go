package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Activity is one logged event within a session.
type Activity struct {
	Time    time.Time      `json:"time"`
	Kind    string         `json:"kind"`
	Details map[string]any `json:"details,omitempty"`
}

// SessionStats aggregates per-session counters.
type SessionStats struct {
	ImagesLoaded int `json:"images_loaded"`
	CropsCreated int `json:"crops_created"`
}

type sessionData struct {
	SessionID  string       `json:"session_id"`
	StartTime  time.Time    `json:"start_time"`
	EndTime    *time.Time   `json:"end_time,omitempty"`
	Activities []Activity   `json:"activities"`
	Stats      SessionStats `json:"statistics"`
}

// SessionLogger writes a per-session JSON activity log into a project's
// logs/ directory. It is not safe for concurrent use; the server is
// single-threaded, which is all the original workflow needs.
type SessionLogger struct {
	path string
	data sessionData
}

// NewSession starts a session log inside projectDir.
func NewSession(projectDir string) (*SessionLogger, error) {
	logsDir := filepath.Join(projectDir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	now := time.Now()
	id := now.Format("20060102_150405")
	s := &SessionLogger{
		path: filepath.Join(logsDir, "session_"+id+".json"),
		data: sessionData{
			SessionID: id,
			StartTime: now.UTC(),
		},
	}
	return s, s.flush()
}

// Log appends an activity and persists the log. Counter-bearing kinds
// ("image_loaded", "crop_created") also bump the session statistics.
func (s *SessionLogger) Log(kind string, details map[string]any) error {
	s.data.Activities = append(s.data.Activities, Activity{
		Time:    time.Now().UTC(),
		Kind:    kind,
		Details: details,
	})
	switch kind {
	case "image_loaded":
		s.data.Stats.ImagesLoaded++
	case "crop_created":
		s.data.Stats.CropsCreated++
	}
	return s.flush()
}

// Stats returns the current session counters.
func (s *SessionLogger) Stats() SessionStats { return s.data.Stats }

// Path returns the location of the session log file.
func (s *SessionLogger) Path() string { return s.path }

// Close stamps the end time and persists the log one final time.
func (s *SessionLogger) Close() error {
	now := time.Now().UTC()
	s.data.EndTime = &now
	return s.flush()
}

func (s *SessionLogger) flush() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session log: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session log: %w", err)
	}
	return nil
}
