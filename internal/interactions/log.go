// Package interactions persists user and group activity as one JSON
// file per event, with a rolling aggregate stats file.
package interactions

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type categorizes one logged event. Each type gets its own
// subdirectory under the user or group directory.
type Type string

const (
	TypeCommand Type = "command"
	TypeSearch  Type = "search"
	TypeResult  Type = "result"
	TypeImage   Type = "image"
	TypeError   Type = "error"
)

const (
	usersDirName  = "users"
	groupsDirName = "groups"
	statsFileName = "stats.json"

	fileTimeLayout = "2006-01-02_15-04-05"
)

// UserInfo identifies the acting user inside a record.
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// Record is one logged event. Fields are populated per type; unused
// ones are omitted from the stored JSON.
type Record struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	User UserInfo `json:"user,omitempty"`

	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`

	Query      string `json:"query,omitempty"`
	SearchType string `json:"search_type,omitempty"`

	ResultsCount  int    `json:"results_count,omitempty"`
	SelectedIndex *int   `json:"selected_index,omitempty"`
	SelectedTitle string `json:"selected_title,omitempty"`

	ImageURL     string `json:"image_url,omitempty"`
	ImageWidth   int    `json:"image_width,omitempty"`
	ImageHeight  int    `json:"image_height,omitempty"`
	ImageQuality string `json:"image_quality,omitempty"`

	ErrorMessage string `json:"error_message,omitempty"`
	ErrorType    string `json:"error_type,omitempty"`
}

// EntityStats aggregates activity for one user or group.
type EntityStats struct {
	Interactions     int       `json:"interactions"`
	FirstInteraction time.Time `json:"first_interaction"`
	LastInteraction  time.Time `json:"last_interaction"`
}

// Stats is the rolling aggregate persisted alongside the per-event
// files.
type Stats struct {
	TotalInteractions int                     `json:"total_interactions"`
	Users             map[string]*EntityStats `json:"users"`
	Groups            map[string]*EntityStats `json:"groups"`
	Commands          map[string]int          `json:"commands"`
	Searches          map[string]int          `json:"searches"`
	LastUpdated       time.Time               `json:"last_updated"`
}

func newStats() *Stats {
	return &Stats{
		Users:    make(map[string]*EntityStats),
		Groups:   make(map[string]*EntityStats),
		Commands: make(map[string]int),
		Searches: make(map[string]int),
	}
}

// Log is the interaction store rooted at a base directory.
type Log struct {
	baseDir string

	mu    sync.Mutex
	stats *Stats

	log *slog.Logger

	// now is swapped in tests to control the clock.
	now func() time.Time
}

// Open prepares the directory layout under baseDir and loads the
// aggregate stats file if one exists.
func Open(baseDir string, log *slog.Logger) (*Log, error) {
	if log == nil {
		log = slog.Default()
	}

	for _, dir := range []string{
		filepath.Join(baseDir, usersDirName),
		filepath.Join(baseDir, groupsDirName),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create interactions dir: %w", err)
		}
	}

	l := &Log{
		baseDir: baseDir,
		stats:   newStats(),
		log:     log,
		now:     time.Now,
	}

	if err := l.loadStats(); err != nil {
		// A corrupt stats file is not fatal; aggregates restart from
		// zero while per-event files remain intact.
		log.Warn("interaction stats unreadable, starting fresh", "error", err)
		l.stats = newStats()
	}

	return l, nil
}

func (l *Log) statsPath() string {
	return filepath.Join(l.baseDir, statsFileName)
}

func (l *Log) loadStats() error {
	data, err := os.ReadFile(l.statsPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	s := newStats()
	if err := json.Unmarshal(data, s); err != nil {
		return err
	}
	l.stats = s
	return nil
}

func (l *Log) saveStatsLocked() error {
	data, err := json.MarshalIndent(l.stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.statsPath(), data, 0o644)
}

// Append stores a record under the user and/or group directory and
// updates the aggregates. A zero userID or groupID skips that side.
func (l *Log) Append(rec Record, userID, groupID int64) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = l.now()
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.json",
		rec.Timestamp.Format(fileTimeLayout), uuid.NewString()[:8])

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stats.TotalInteractions++
	l.stats.LastUpdated = rec.Timestamp

	switch rec.Type {
	case TypeCommand:
		l.stats.Commands[orUnknown(rec.Command)]++
	case TypeSearch:
		l.stats.Searches[orUnknown(rec.SearchType)+":"+orUnknown(rec.Query)]++
	}

	if userID != 0 {
		touchEntity(l.stats.Users, fmt.Sprint(userID), rec.Timestamp)
		if err := l.writeRecord(usersDirName, userID, rec.Type, filename, data); err != nil {
			return err
		}
	}
	if groupID != 0 {
		touchEntity(l.stats.Groups, fmt.Sprint(groupID), rec.Timestamp)
		if err := l.writeRecord(groupsDirName, groupID, rec.Type, filename, data); err != nil {
			return err
		}
	}

	if err := l.saveStatsLocked(); err != nil {
		l.log.Warn("save interaction stats", "error", err)
	}
	return nil
}

func (l *Log) writeRecord(scope string, id int64, typ Type, filename string, data []byte) error {
	dir := filepath.Join(l.baseDir, scope, fmt.Sprint(id), string(typ))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create interaction dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write interaction: %w", err)
	}
	return nil
}

func touchEntity(m map[string]*EntityStats, key string, ts time.Time) {
	e, ok := m[key]
	if !ok {
		e = &EntityStats{FirstInteraction: ts}
		m[key] = e
	}
	e.Interactions++
	e.LastInteraction = ts
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// Command logs a command invocation.
func (l *Log) Command(command string, args []string, user UserInfo, groupID int64) error {
	return l.Append(Record{Type: TypeCommand, Command: command, Args: args, User: user},
		user.ID, groupID)
}

// Search logs a search request.
func (l *Log) Search(query, searchType string, user UserInfo, groupID int64) error {
	return l.Append(Record{Type: TypeSearch, Query: query, SearchType: searchType, User: user},
		user.ID, groupID)
}

// Result logs a result selection.
func (l *Log) Result(query, searchType string, resultsCount int, selected *int, selectedTitle string, user UserInfo, groupID int64) error {
	return l.Append(Record{
		Type: TypeResult, Query: query, SearchType: searchType,
		ResultsCount: resultsCount, SelectedIndex: selected,
		SelectedTitle: selectedTitle, User: user,
	}, user.ID, groupID)
}

// Image logs a delivered cover image with its assessment summary.
func (l *Log) Image(imageURL string, width, height int, quality string, user UserInfo, groupID int64) error {
	return l.Append(Record{
		Type: TypeImage, ImageURL: imageURL,
		ImageWidth: width, ImageHeight: height, ImageQuality: quality,
		User: user,
	}, user.ID, groupID)
}

// Error logs a user-visible failure.
func (l *Log) Error(message, errorType string, user UserInfo, groupID int64) error {
	return l.Append(Record{Type: TypeError, ErrorMessage: message, ErrorType: errorType, User: user},
		user.ID, groupID)
}
