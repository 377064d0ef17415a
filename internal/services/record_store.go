package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kv.dev/portfolio/internal/logging"
	"kv.dev/portfolio/internal/metrics"
	"kv.dev/portfolio/internal/models"
	"kv.dev/portfolio/internal/storage"
)

// ErrUnreadableRecords is returned by writes when the stored list holds
// records that could not be decoded, so saving would lose them
var ErrUnreadableRecords = errors.New("stored project list has unreadable records")

// RecordStore reads and writes the project list slot
type RecordStore struct {
	kv     storage.KV
	key    string
	logger *zap.Logger

	// mu serializes read-modify-write cycles
	mu sync.Mutex
}

// NewRecordStore creates a RecordStore over the projects slot
func NewRecordStore(kv storage.KV, logger *zap.Logger) *RecordStore {
	return &RecordStore{
		kv:     kv,
		key:    storage.ProjectsKey,
		logger: logging.OrNop(logger),
	}
}

// Load returns the stored list. A missing slot, a read failure or content
// that is not a JSON array all produce an empty list. Array elements that
// cannot be decoded are skipped.
func (s *RecordStore) Load(ctx context.Context) []models.Project {
	projects, _ := s.load(ctx)
	return projects
}

// load is Load plus an error when the result does not hold everything the
// slot holds: a failed read or skipped elements. Writers must not save such
// a list back.
func (s *RecordStore) load(ctx context.Context) ([]models.Project, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("failed to read projects slot", zap.String("key", s.key), zap.Error(err))
		return []models.Project{}, fmt.Errorf("failed to read projects slot: %w", err)
	}
	if !ok || raw == "" {
		return []models.Project{}, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		s.logger.Warn("discarding unparseable projects slot", zap.String("key", s.key), zap.Error(err))
		return []models.Project{}, nil
	}

	projects := make([]models.Project, 0, len(elements))
	skipped := 0
	for i, element := range elements {
		var p models.Project
		if err := json.Unmarshal(element, &p); err != nil {
			s.logger.Warn("skipping unparseable project", zap.Int("index", i), zap.Error(err))
			skipped++
			continue
		}
		projects = append(projects, p)
	}

	metrics.StoredProjects.Set(float64(len(projects)))
	if skipped > 0 {
		return projects, fmt.Errorf("%w: %d of %d", ErrUnreadableRecords, skipped, len(elements))
	}
	return projects, nil
}

// Save replaces the stored list
func (s *RecordStore) Save(ctx context.Context, projects []models.Project) error {
	if projects == nil {
		projects = []models.Project{}
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to save projects: %w", err)
	}

	metrics.StoredProjects.Set(float64(len(projects)))
	return nil
}

// Update loads the list, applies fn and saves the result, holding the store
// lock throughout. Nothing is saved when fn returns an error.
func (s *RecordStore) Update(ctx context.Context, fn func([]models.Project) ([]models.Project, error)) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	projects, err = fn(projects)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Seed writes defaults when the slot has never been written. It reports
// whether the defaults were stored.
func (s *RecordStore) Seed(ctx context.Context, defaults []models.Project) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return false, fmt.Errorf("failed to read projects slot: %w", err)
	}
	if ok {
		return false, nil
	}

	seeded := make([]models.Project, len(defaults))
	copy(seeded, defaults)
	assignIDs(seeded)
	if err := s.Save(ctx, seeded); err != nil {
		return false, err
	}
	return true, nil
}

// Reset removes the stored list, so the next Seed writes its defaults again
func (s *RecordStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear projects slot: %w", err)
	}
	metrics.StoredProjects.Set(0)
	return nil
}

// AssignIDs gives every record without an ID a new one, saving only when
// something changed, and returns the current list.
func (s *RecordStore) AssignIDs(ctx context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, loadErr := s.load(ctx)
	if loadErr != nil && !errors.Is(loadErr, ErrUnreadableRecords) {
		return nil, loadErr
	}
	if !assignIDs(projects) {
		return projects, nil
	}
	if loadErr != nil {
		return nil, loadErr
	}
	if err := s.Save(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// assignIDs fills missing IDs in place and reports whether any were added
func assignIDs(projects []models.Project) bool {
	changed := false
	for i := range projects {
		if projects[i].ID == "" {
			projects[i].ID = newID()
			changed = true
		}
	}
	return changed
}

func newID() string {
	return uuid.NewString()
}
