package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/lowaak/wod-timer/internal/workout"
)

const (
	workoutsDir     = "workouts"
	historyFileName = "history.yaml"
	lockFileName    = ".lock"
	lockRetryDelay  = 50 * time.Millisecond
)

var (
	// ErrNotFound is returned when no workout has the requested ID
	ErrNotFound = errors.New("workout not found")
	// ErrLocked is returned when another process holds the store lock
	ErrLocked = errors.New("storage is locked by another process")
	// ErrInvalidID is returned for IDs that cannot name a file
	ErrInvalidID = errors.New("invalid workout id")
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{0,63}$`)

// NewID returns a random workout or session identifier
func NewID() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("storage: read random bytes: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// ValidateID reports whether id can be used as a storage key
func ValidateID(id string) error {
	if !validID.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Store keeps workouts as one YAML file each and appends finished sessions to a
// YAML history stream. Writes from several processes are serialized by a file lock.
type Store struct {
	dir    string
	logger *log.Logger
}

// New opens the store rooted at dir, creating it when needed
func New(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		panic("Store: logger cannot be nil")
	}
	if err := os.MkdirAll(filepath.Join(dir, workoutsDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the root directory of the store
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) workoutPath(id string) string {
	return filepath.Join(s.dir, workoutsDir, id+".yaml")
}

// withLock runs fn while holding the store's file lock
func (s *Store) withLock(ctx context.Context, fn func() error) error {
	fileLock := flock.New(filepath.Join(s.dir, lockFileName))
	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrLocked, err)
		}
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() {
		if err := fileLock.Unlock(); err != nil {
			s.logger.Printf("Store: failed to release lock: %v", err)
		}
	}()
	return fn()
}

// Save validates w and writes it. A workout without an ID gets a new one.
func (s *Store) Save(ctx context.Context, w *workout.Workout) error {
	if w.ID == "" {
		w.ID = NewID()
	}
	if err := ValidateID(w.ID); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal workout: %w", err)
	}

	err = s.withLock(ctx, func() error {
		return atomicWrite(s.workoutPath(w.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save workout %s: %w", w.ID, err)
	}
	s.logger.Printf("Store: saved workout %s (%s)", w.ID, w.Name)
	return nil
}

// Get loads the workout with the given ID
func (s *Store) Get(id string) (*workout.Workout, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.workoutPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read workout: %w", err)
	}

	var w workout.Workout
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse workout %s: %w", id, err)
	}
	w.ID = id
	return &w, nil
}

// List returns every stored workout sorted by name. Unreadable files are skipped and logged.
func (s *Store) List() ([]workout.Workout, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, workoutsDir))
	if err != nil {
		return nil, fmt.Errorf("failed to read workouts directory: %w", err)
	}

	var workouts []workout.Workout
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		w, err := s.Get(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			s.logger.Printf("Store: skipping %s: %v", name, err)
			continue
		}
		workouts = append(workouts, *w)
	}

	sort.SliceStable(workouts, func(i, j int) bool {
		if workouts[i].Name != workouts[j].Name {
			return workouts[i].Name < workouts[j].Name
		}
		return workouts[i].ID < workouts[j].ID
	})
	return workouts, nil
}

// Delete removes the workout with the given ID
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	err := s.withLock(ctx, func() error {
		if err := os.Remove(s.workoutPath(id)); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Printf("Store: deleted workout %s", id)
	return nil
}

// SaveSession appends rec to the history. A record without an ID gets a new one.
func (s *Store) SaveSession(ctx context.Context, rec workout.SessionRecord) error {
	if rec.ID == "" {
		rec.ID = NewID()
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err := s.withLock(ctx, func() error {
		f, err := os.OpenFile(filepath.Join(s.dir, historyFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		if _, err := f.Write(buf.Bytes()); err != nil {
			f.Close()
			return fmt.Errorf("failed to append history: %w", err)
		}
		return f.Close()
	})
	if err != nil {
		return err
	}
	s.logger.Printf("Store: recorded session %s of %q (%d blocks)", rec.ID, rec.WorkoutName, len(rec.Blocks))
	return nil
}

// History returns every recorded session, oldest first
func (s *Store) History() ([]workout.SessionRecord, error) {
	f, err := os.Open(filepath.Join(s.dir, historyFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var records []workout.SessionRecord
	dec := yaml.NewDecoder(f)
	for {
		var rec workout.SessionRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, fmt.Errorf("failed to parse history entry %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// atomicWrite writes data to a file atomically using a temp file and rename
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	tmpFile.Close()

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
