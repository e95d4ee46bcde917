package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName is the history file inside the data directory.
const FileName = "history.json"

type Entry struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Template  string    `json:"template"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Log is the list of generated projects, newest first.
type Log struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func New(dataDir string) *Log {
	return &Log{path: filepath.Join(dataDir, FileName), now: time.Now}
}

func (l *Log) Path() string { return l.path }

// Load returns all entries. A missing or unreadable file is an empty history.
func (l *Log) Load() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *Log) load() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []Entry{}, nil
	}
	return entries, nil
}

func (l *Log) save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0644)
}

// Add prepends an entry stamped with the current time.
func (l *Log) Add(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = l.now()
	}
	entries = append([]Entry{e}, entries...)
	return l.save(entries)
}

// ForUser returns the entries generated by userID.
func (l *Log) ForUser(userID string) ([]Entry, error) {
	entries, err := l.Load()
	if err != nil {
		return nil, err
	}
	var mine []Entry
	for _, e := range entries {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

// DeleteOld drops entries older than days and reports how many went.
func (l *Log) DeleteOld(days int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return 0, err
	}
	cutoff := l.now().AddDate(0, 0, -days)
	kept := []Entry{}
	for _, e := range entries {
		if !e.CreatedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return 0, nil
	}
	return len(entries) - len(kept), l.save(kept)
}
