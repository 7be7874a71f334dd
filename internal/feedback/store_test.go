package feedback

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yerassyl/event-reservation/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestAppend_BucketsByDay(t *testing.T) {
	s := newTestStore(t)

	day1 := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return day1 }
	require.NoError(t, s.Append(model.FeedbackEntry{Name: "A", Email: "a@example.com", Subject: "first", Message: "hi"}))
	s.now = func() time.Time { return day1.Add(2 * time.Hour) }
	require.NoError(t, s.Append(model.FeedbackEntry{Name: "B", Email: "b@example.com", Subject: "second", Message: "hi"}))
	s.now = func() time.Time { return day2 }
	require.NoError(t, s.Append(model.FeedbackEntry{Name: "C", Email: "c@example.com", Subject: "third", Message: "hi"}))

	paths, err := filepath.Glob(filepath.Join(s.dir, "feedback_*.json"))
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	day1Entries := s.readFile(filepath.Join(s.dir, "feedback_2024-03-10.json"))
	require.Len(t, day1Entries, 2)
	assert.Equal(t, "first", day1Entries[0].Subject)
	assert.Equal(t, "2024-03-10 09:00:00", day1Entries[0].Timestamp)
	assert.Equal(t, "second", day1Entries[1].Subject)
}

func TestListAll_NewestFirstAcrossDays(t *testing.T) {
	s := newTestStore(t)

	stamps := []time.Time{
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 17, 30, 0, 0, time.UTC),
	}
	for i, ts := range stamps {
		s.now = func() time.Time { return ts }
		require.NoError(t, s.Append(model.FeedbackEntry{Subject: []string{"a", "b", "c"}[i], Message: "m"}))
	}

	all, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].Subject) // 2024-03-11 08:00
	assert.Equal(t, "c", all[1].Subject) // 2024-03-10 17:30
	assert.Equal(t, "a", all[2].Subject) // 2024-03-10 09:00
}

func TestListAll_ToleratesCorruptedBucket(t *testing.T) {
	s := newTestStore(t)

	s.now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, s.Append(model.FeedbackEntry{Subject: "keep", Message: "m"}))

	bad := filepath.Join(s.dir, "feedback_2024-03-09.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))

	all, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].Subject)
}

func TestAppend_ReplacesCorruptedBucket(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }

	path := filepath.Join(s.dir, "feedback_2024-03-10.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	require.NoError(t, s.Append(model.FeedbackEntry{Subject: "fresh", Message: "m"}))

	entries := s.readFile(path)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].Subject)
}

func TestListAll_EmptyDir(t *testing.T) {
	s := newTestStore(t)
	all, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}
