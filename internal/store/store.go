// Package store persists the habit snapshot and the monthly archive buckets as
// JSON files on disk.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"github.com/ramanasai/tally/internal/archive"
	"github.com/ramanasai/tally/internal/habit"
)

// SnapshotFile is the name of the live collection file inside the data dir.
const SnapshotFile = "habit_record.json"

// ErrCorruptSnapshot is returned when the snapshot exists but cannot be decoded.
var ErrCorruptSnapshot = errors.New("store: corrupt snapshot")

// Store reads and writes whole files: every save replaces the previous
// contents through a temp file and rename.
type Store struct {
	data       *diskv.Diskv
	archive    *diskv.Diskv
	dataDir    string
	archiveDir string
}

// Open prepares both directories. Nothing is read until Load.
func Open(dataDir, archiveDir string) (*Store, error) {
	for _, dir := range []string{dataDir, archiveDir} {
		if dir == "" {
			return nil, errors.New("store: directory required")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure %s: %w", dir, err)
		}
	}
	return &Store{
		data:       newDiskv(dataDir),
		archive:    newDiskv(archiveDir),
		dataDir:    dataDir,
		archiveDir: archiveDir,
	}, nil
}

func newDiskv(dir string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    flatTransform,
		TempDir:      filepath.Join(dir, ".tmp"),
		CacheSizeMax: 0, // files may be edited by hand between runs
		PathPerm:     0o755,
		FilePerm:     0o644,
	})
}

// flatTransform keeps every key directly under the base path, so a key is
// exactly a file name.
func flatTransform(string) []string { return []string{} }

func (s *Store) SnapshotPath() string { return filepath.Join(s.dataDir, SnapshotFile) }
func (s *Store) ArchiveDir() string   { return s.archiveDir }

// Load reads the snapshot. A missing file is an empty collection.
func (s *Store) Load() ([]habit.Habit, error) {
	data, err := s.data.Read(SnapshotFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", s.SnapshotPath(), err)
	}
	hs, err := habit.DecodeList(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptSnapshot, s.SnapshotPath(), err)
	}
	return hs, nil
}

// Save replaces the snapshot with hs.
func (s *Store) Save(hs []habit.Habit) error {
	data, err := habit.EncodeList(hs)
	if err != nil {
		return fmt.Errorf("store: encode snapshot: %w", err)
	}
	if err := s.data.Write(SnapshotFile, data); err != nil {
		return fmt.Errorf("store: write %s: %w", s.SnapshotPath(), err)
	}
	return nil
}

// WriteBucket replaces the archive file of b with data.
func (s *Store) WriteBucket(b archive.Bucket, data []byte) error {
	return s.archive.Write(b.FileName(), data)
}

// Buckets lists the archived months, oldest first. Files that are not bucket
// files are ignored.
func (s *Store) Buckets() []archive.Bucket {
	var out []archive.Bucket
	for key := range s.archive.Keys(nil) {
		b, err := archive.ParseBucket(key)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// ReadBucket loads the habits archived for b.
func (s *Store) ReadBucket(b archive.Bucket) ([]habit.Habit, error) {
	data, err := s.archive.Read(b.FileName())
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", b.FileName(), err)
	}
	hs, err := habit.DecodeList(data)
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", b.FileName(), err)
	}
	return hs, nil
}
