// Package feedback persists feedback messages as one append-only JSON
// array file per calendar day. The store is the only writer; a mutex
// serializes the read-modify-write cycle so concurrent submissions
// cannot drop each other's entries.
package feedback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/model"
)

const (
	filePrefix      = "feedback_"
	fileSuffix      = ".json"
	timestampLayout = "2006-01-02 15:04:05"
)

// Store reads and writes the per-day feedback files under dir.
type Store struct {
	dir string
	log zerolog.Logger

	mu sync.Mutex

	// now is swapped out in tests to steer entries into specific day
	// buckets.
	now func() time.Time
}

// NewStore creates the feedback directory if needed and returns a Store.
func NewStore(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create feedback dir: %v", domain.ErrStorage, err)
	}
	return &Store{dir: dir, log: log, now: time.Now}, nil
}

// Append records one feedback entry in the current day's bucket,
// preserving insertion order within the bucket. The entry's timestamp
// is assigned here.
func (s *Store) Append(entry model.FeedbackEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry.Timestamp = now.Format(timestampLayout)
	path := filepath.Join(s.dir, filePrefix+now.Format("2006-01-02")+fileSuffix)

	entries := s.readFile(path)
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal feedback: %v", domain.ErrStorage, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, path, err)
	}
	s.log.Info().Str("subject", entry.Subject).Str("email", entry.Email).Msg("feedback saved")
	return nil
}

// ListAll merges every daily bucket and orders entries newest first.
// The timestamp format sorts correctly as a plain string; entries with
// a missing or odd timestamp keep their relative order instead of
// breaking the merge.
func (s *Store) ListAll() ([]model.FeedbackEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, fmt.Errorf("%w: list feedback dir: %v", domain.ErrStorage, err)
	}

	all := make([]model.FeedbackEntry, 0)
	for _, path := range paths {
		all = append(all, s.readFile(path)...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].Timestamp, all[j].Timestamp
		if a == "" || b == "" {
			return false // equal rank
		}
		return a > b // newest first
	})
	return all, nil
}

// readFile loads one bucket. A missing or corrupted file yields an
// empty list: a fresh bucket replaces a damaged one on the next append,
// and a damaged bucket never fails a listing.
func (s *Store) readFile(path string) []model.FeedbackEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("file", path).Msg("could not read feedback file")
		}
		return nil
	}
	var entries []model.FeedbackEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn().Err(err).Str("file", path).Msg("corrupted feedback file, treating as empty")
		return nil
	}
	return entries
}
