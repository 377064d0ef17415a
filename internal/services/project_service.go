package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"kv.dev/portfolio/internal/forms"
	"kv.dev/portfolio/internal/logging"
	"kv.dev/portfolio/internal/metrics"
	"kv.dev/portfolio/internal/models"
)

var (
	// ErrNotFound is returned when a selection or ID matches no record
	ErrNotFound = errors.New("project not found")
	// ErrNothingSelected is returned when deleting while creating a new record
	ErrNothingSelected = errors.New("no project selected")
	// ErrStale is returned when the edited record no longer exists
	ErrStale = errors.New("selected project no longer exists")
	// ErrCancelled is returned when a delete was not confirmed
	ErrCancelled = errors.New("delete not confirmed")
)

// Status messages shown under the edit form
const (
	StatusIntro        = "Select a project to edit or start a new one."
	StatusNew          = "Creating a new project entry..."
	StatusNotFound     = "Selected project not found!"
	StatusNoSelection  = "No existing project selected to delete!"
	StatusOutOfRange   = "Selected project index is out of range."
	StatusCancelled    = "Delete cancelled."
	StatusDeleted      = "Project deleted."
	StatusSaveFailed   = "Could not save the project list."
	StatusNeedsPicture = "Choose a library image or enter image paths for a new project."
)

// NewOptionLabel is the selector entry for creating a record
const NewOptionLabel = "+ New Project"

// ValidationError reports a missing required field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EditSession tracks which record a visitor is editing. An empty CurrentID
// means a new record is pending creation.
type EditSession struct {
	CurrentID string `json:"cur,omitempty"`
}

// IsNew reports whether no stored record is loaded
func (s *EditSession) IsNew() bool {
	return s.CurrentID == ""
}

// SelectOption is one entry of the record selector
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// Result is the outcome of an edit operation, ready to render
type Result struct {
	Form     forms.Values
	Options  []SelectOption
	Selected int // position of the edited record, -1 for new
	Focus    string
	Err      error
}

// ProjectService handles project-related operations
type ProjectService struct {
	store  *RecordStore
	logger *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(store *RecordStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{store: store, logger: logging.OrNop(logger)}
}

// GetAll returns all projects
func (s *ProjectService) GetAll(ctx context.Context) []models.Project {
	return s.store.Load(ctx)
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	projects := s.store.Load(ctx)
	if i := models.IndexOf(projects, id); i >= 0 {
		return &projects[i], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// View renders the form for the session's current state without changing it
func (s *ProjectService) View(ctx context.Context, sess *EditSession) Result {
	projects := s.store.Load(ctx)
	i := models.IndexOf(projects, sess.CurrentID)
	if i < 0 {
		form := forms.Reset()
		form.Status = StatusIntro
		return s.result(projects, -1, form, nil)
	}

	form := forms.Write(projects[i])
	form.Status = fmt.Sprintf("Editing project #%d.", i+1)
	return s.result(projects, i, form, nil)
}

// Select handles a selector change. An empty value starts a new record; a
// position loads that record for editing.
func (s *ProjectService) Select(ctx context.Context, sess *EditSession, value string) Result {
	if value == "" {
		sess.CurrentID = ""
		form := forms.Reset()
		form.Status = StatusNew
		s.count("select", nil)
		return s.result(s.store.Load(ctx), -1, form, nil)
	}

	projects, err := s.store.AssignIDs(ctx)
	if err != nil {
		s.logger.Error("failed to assign project ids", zap.Error(err))
		return s.failure(ctx, "select", sess, StatusSaveFailed, err)
	}

	idx, err := strconv.Atoi(value)
	if err != nil || idx < 0 || idx >= len(projects) {
		return s.failure(ctx, "select", sess, StatusNotFound, fmt.Errorf("%w: position %q", ErrNotFound, value))
	}

	sess.CurrentID = projects[idx].ID
	form := forms.Write(projects[idx])
	form.Status = fmt.Sprintf("Loaded project #%d for editing.", idx+1)
	s.count("select", nil)
	return s.result(projects, idx, form, nil)
}

// Submit creates a record when the session is new or stale, and replaces the
// edited record otherwise.
func (s *ProjectService) Submit(ctx context.Context, sess *EditSession, values url.Values) Result {
	var (
		idx     int
		created bool
		saved   models.Project
	)
	op := "update"

	projects, err := s.store.Update(ctx, func(projects []models.Project) ([]models.Project, error) {
		i := models.IndexOf(projects, sess.CurrentID)
		if i < 0 {
			op = "create"
			p := forms.Read(values, nil)
			if p.Thumbnail.IsZero() {
				return nil, &ValidationError{Field: forms.FieldImageID, Message: StatusNeedsPicture}
			}
			p.ID = newID()
			projects = append(projects, p)
			idx, created, saved = len(projects)-1, true, p
			return projects, nil
		}

		existing := projects[i]
		p := forms.Read(values, &existing)
		p.ID = existing.ID
		projects[i] = p
		idx, saved = i, p
		return projects, nil
	})

	var verr *ValidationError
	if errors.As(err, &verr) {
		s.count(op, err)
		form := forms.Echo(values)
		form.Status = verr.Message
		res := s.result(s.store.Load(ctx), s.position(ctx, sess), form, err)
		res.Focus = verr.Field
		return res
	}
	if err != nil {
		s.logger.Error("failed to save project", zap.String("op", op), zap.Error(err))
		s.count(op, err)
		form := forms.Echo(values)
		form.Status = StatusSaveFailed
		return s.result(s.store.Load(ctx), s.position(ctx, sess), form, err)
	}

	if created && !sess.IsNew() {
		s.logger.Info("edited project vanished, created a new one", zap.String("stale_id", sess.CurrentID))
	}
	sess.CurrentID = saved.ID
	s.count(op, nil)

	form := forms.Write(saved)
	if created {
		form.Status = fmt.Sprintf("New project created (index %d).", idx+1)
		s.logger.Info("project created", zap.String("id", saved.ID), zap.Int("index", idx))
	} else {
		form.Status = fmt.Sprintf("Project #%d updated.", idx+1)
		s.logger.Info("project updated", zap.String("id", saved.ID), zap.Int("index", idx))
	}
	return s.result(projects, idx, form, nil)
}

// Delete removes the edited record once confirmed
func (s *ProjectService) Delete(ctx context.Context, sess *EditSession, confirmed bool) Result {
	if sess.IsNew() {
		return s.failure(ctx, "delete", sess, StatusNoSelection, ErrNothingSelected)
	}

	var removed int
	projects, err := s.store.Update(ctx, func(projects []models.Project) ([]models.Project, error) {
		i := models.IndexOf(projects, sess.CurrentID)
		if i < 0 {
			return nil, ErrStale
		}
		if !confirmed {
			return nil, ErrCancelled
		}
		removed = i
		return append(projects[:i], projects[i+1:]...), nil
	})

	switch {
	case errors.Is(err, ErrStale):
		return s.failure(ctx, "delete", sess, StatusOutOfRange, err)
	case errors.Is(err, ErrCancelled):
		return s.failure(ctx, "delete", sess, StatusCancelled, err)
	case err != nil:
		s.logger.Error("failed to delete project", zap.Error(err))
		return s.failure(ctx, "delete", sess, StatusSaveFailed, err)
	}

	s.logger.Info("project deleted", zap.String("id", sess.CurrentID), zap.Int("index", removed))
	sess.CurrentID = ""
	s.count("delete", nil)

	form := forms.Reset()
	form.Status = StatusDeleted
	return s.result(projects, -1, form, nil)
}

// Clear resets the form and starts a new record
func (s *ProjectService) Clear(ctx context.Context, sess *EditSession) Result {
	sess.CurrentID = ""
	s.count("clear", nil)
	return s.result(s.store.Load(ctx), -1, forms.Reset(), nil)
}

// failure reports err with a status message, leaving the session and the
// form's loaded record as they were.
func (s *ProjectService) failure(ctx context.Context, op string, sess *EditSession, status string, err error) Result {
	s.count(op, err)
	projects := s.store.Load(ctx)
	i := models.IndexOf(projects, sess.CurrentID)

	form := forms.Reset()
	if i >= 0 {
		form = forms.Write(projects[i])
	}
	form.Status = status
	return s.result(projects, i, form, err)
}

// position returns where the session's record currently sits, or -1
func (s *ProjectService) position(ctx context.Context, sess *EditSession) int {
	return models.IndexOf(s.store.Load(ctx), sess.CurrentID)
}

// result rebuilds the selector from the list
func (s *ProjectService) result(projects []models.Project, selected int, form forms.Values, err error) Result {
	return Result{
		Form:     form,
		Options:  BuildOptions(projects, selected),
		Selected: selected,
		Err:      err,
	}
}

func (s *ProjectService) count(op string, err error) {
	metrics.ProjectOperations.WithLabelValues(op, metrics.Result(err)).Inc()
}

// BuildOptions lists the "new" entry followed by one entry per record
func BuildOptions(projects []models.Project, selected int) []SelectOption {
	opts := make([]SelectOption, 0, len(projects)+1)
	opts = append(opts, SelectOption{Value: "", Label: NewOptionLabel, Selected: selected < 0})
	for i, p := range projects {
		title := p.Title
		if title == "" {
			title = "(Untitled Project)"
		}
		opts = append(opts, SelectOption{
			Value:    strconv.Itoa(i),
			Label:    fmt.Sprintf("%d: %s", i+1, title),
			Selected: i == selected,
		})
	}
	return opts
}
