package services

import (
	"context"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kv.dev/portfolio/internal/forms"
	"kv.dev/portfolio/internal/models"
	"kv.dev/portfolio/internal/storage"
)

func newTestProjectService(t *testing.T, seed ...models.Project) (*ProjectService, *RecordStore) {
	t.Helper()
	store, _, _ := newTestStore(t)
	if len(seed) > 0 {
		require.NoError(t, store.Save(context.Background(), seed))
	}
	return NewProjectService(store, nil), store
}

func titled(titles ...string) []models.Project {
	out := make([]models.Project, len(titles))
	for i, title := range titles {
		out[i] = models.Project{
			ID:        "id-" + title,
			Title:     title,
			Link:      "#",
			Tags:      []string{},
			Thumbnail: models.Thumbnail{LibraryKey: "chart"},
		}
	}
	return out
}

func titles(projects []models.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Title
	}
	return out
}

func TestSubmit_CreateFromEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestProjectService(t)
	sess := &EditSession{}

	res := svc.Submit(ctx, sess, url.Values{
		forms.FieldTitle:   {"A"},
		forms.FieldImageID: {"chart"},
	})
	require.NoError(t, res.Err)

	stored := store.Load(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, "A", stored[0].Title)
	assert.Equal(t, "chart", stored[0].Thumbnail.LibraryKey)
	assert.Equal(t, stored[0].ID, sess.CurrentID, "session moves to Editing(0)")
	assert.Equal(t, 0, res.Selected)
	assert.Equal(t, "New project created (index 1).", res.Form.Status)
}

func TestSubmit_CreateKeepsUnreadableRecords(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestProjectService(t)
	require.NoError(t, store.kv.Set(ctx, storage.ProjectsKey, mixedList))
	sess := &EditSession{}

	res := svc.Submit(ctx, sess, url.Values{
		forms.FieldTitle:   {"C"},
		forms.FieldImageID: {"chart"},
	})
	assert.ErrorIs(t, res.Err, ErrUnreadableRecords)
	assert.Equal(t, StatusSaveFailed, res.Form.Status)
	assert.True(t, sess.IsNew())

	raw, _, err := store.kv.Get(ctx, storage.ProjectsKey)
	require.NoError(t, err)
	assert.Equal(t, mixedList, raw)
}

func TestSubmit_CreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestProjectService(t, titled("A", "B")...)
	sess := &EditSession{}

	form := url.Values{
		forms.FieldTitle:         {"C"},
		forms.FieldDescription:   {"third"},
		forms.FieldLink:          {"https://example.com/c"},
		forms.FieldTags:          {"go, , web "},
		forms.FieldImageWebp:     {"c.webp"},
		forms.FieldImageFallback: {"c.png"},
	}
	res := svc.Submit(ctx, sess, form)
	require.NoError(t, res.Err)

	stored := store.Load(ctx)
	require.Len(t, stored, 3)
	want := forms.Read(form, nil)
	want.ID = sess.CurrentID
	assert.Equal(t, want, stored[2])
	assert.Equal(t, []string{"go", "web"}, stored[2].Tags)
}

func TestSubmit_CreateRequiresThumbnail(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestProjectService(t, titled("A")...)
	sess := &EditSession{}

	res := svc.Submit(ctx, sess, url.Values{forms.FieldTitle: {"No picture"}})

	var verr *ValidationError
	require.ErrorAs(t, res.Err, &verr)
	assert.Equal(t, forms.FieldImageID, res.Focus)
	assert.Equal(t, StatusNeedsPicture, res.Form.Status)
	assert.Equal(t, "No picture", res.Form.Title, "submitted values are shown again")
	assert.Equal(t, []string{"A"}, titles(store.Load(ctx)), "store unchanged")
	assert.True(t, sess.IsNew())
}

func TestSubmit_UpdateOnlyTouchesEditedIndex(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestProjectService(t, titled("A", "B", "C")...)
	before := store.Load(ctx)
	sess := &EditSession{CurrentID: before[1].ID}

	res := svc.Submit(ctx, sess, url.Values{forms.FieldTitle: {"B2"}, forms.FieldTags: {"new"}})
	require.NoError(t, res.Err)
	assert.Equal(t, "Project #2 updated.", res.Form.Status)

	after := store.Load(ctx)
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, "B2", after[1].Title)
	assert.Equal(t, before[1].ID, after[1].ID, "id survives updates")
	assert.Equal(t, "chart", after[1].Thumbnail.LibraryKey, "thumbnail kept when none submitted")
	assert.Equal(t, before[1].ID, sess.CurrentID)
}

func TestSubmit_StaleSessionCreates(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestProjectService(t, titled("A")...)
	sess := &EditSession{CurrentID: "deleted-elsewhere"}

	res := svc.Submit(ctx, sess, url.Values{forms.FieldTitle: {"B"}, forms.FieldImageID: {"seo"}})
	require.NoError(t, res.Err)

	stored := store.Load(ctx)
	assert.Equal(t, []string{"A", "B"}, titles(stored))
	assert.Equal(t, stored[1].ID, sess.CurrentID)
	assert.Equal(t, 1, res.Selected)
}

func TestDelete_ConfirmedShiftsIndices(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestProjectService(t, titled("A", "B", "C", "D")...)
	before := store.Load(ctx)
	sess := &EditSession{CurrentID: before[1].ID}

	res := svc.Delete(ctx, sess, true)
	require.NoError(t, res.Err)

	after := store.Load(ctx)
	assert.Len(t, after, len(before)-1)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2:], after[1:])
	assert.True(t, sess.IsNew())
	assert.Equal(t, -1, res.Selected)
	assert.Equal(t, StatusDeleted, res.Form.Status)
}

func TestDelete_LastOfTwo(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestProjectService(t, titled("A", "B")...)
	sess := &EditSession{CurrentID: "id-B"}

	res := svc.Delete(ctx, sess, true)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"A"}, titles(store.Load(ctx)))
	assert.True(t, sess.IsNew())
}

func TestDelete_Failures(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		confirmed bool
		wantErr   error
		status    string
		wantNew   bool
	}{
		{"nothing selected", "", true, ErrNothingSelected, StatusNoSelection, true},
		{"stale record", "gone", true, ErrStale, StatusOutOfRange, false},
		{"not confirmed", "id-A", false, ErrCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, store := newTestProjectService(t, titled("A", "B")...)
			sess := &EditSession{CurrentID: tt.current}

			res := svc.Delete(ctx, sess, tt.confirmed)
			assert.ErrorIs(t, res.Err, tt.wantErr)
			assert.Equal(t, tt.status, res.Form.Status)
			assert.Equal(t, tt.current, sess.CurrentID, "session unchanged")
			assert.Equal(t, tt.wantNew, sess.IsNew())
			assert.Equal(t, []string{"A", "B"}, titles(store.Load(ctx)))
		})
	}
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestProjectService(t, titled("A", "B")...)
	sess := &EditSession{}

	res := svc.Select(ctx, sess, "1")
	require.NoError(t, res.Err)
	assert.Equal(t, "id-B", sess.CurrentID)
	assert.Equal(t, "B", res.Form.Title)
	assert.Equal(t, "Loaded project #2 for editing.", res.Form.Status)
	assert.True(t, res.Options[2].Selected)

	res = svc.Select(ctx, sess, "")
	require.NoError(t, res.Err)
	assert.True(t, sess.IsNew())
	assert.Empty(t, res.Form.Title)
	assert.Equal(t, StatusNew, res.Form.Status)
	assert.True(t, res.Options[0].Selected)
}

func TestSelect_OutOfRangeKeepsLoadedRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestProjectService(t, titled("A", "B")...)
	sess := &EditSession{CurrentID: "id-A"}

	for _, value := range []string{"2", "99", "-1", "abc"} {
		res := svc.Select(ctx, sess, value)
		assert.ErrorIs(t, res.Err, ErrNotFound, value)
		assert.Equal(t, StatusNotFound, res.Form.Status)
		assert.Equal(t, "id-A", sess.CurrentID)
		assert.Equal(t, "A", res.Form.Title, "form keeps the loaded record")
	}
}

func TestSelect_AssignsMissingIDs(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestProjectService(t, models.Project{Title: "legacy", Thumbnail: models.Thumbnail{LibraryKey: "seo"}})
	sess := &EditSession{}

	res := svc.Select(ctx, sess, "0")
	require.NoError(t, res.Err)
	assert.NotEmpty(t, sess.CurrentID)
	assert.Equal(t, sess.CurrentID, store.Load(ctx)[0].ID)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestProjectService(t, titled("A")...)
	sess := &EditSession{CurrentID: "id-A"}

	res := svc.Clear(ctx, sess)
	assert.True(t, sess.IsNew())
	assert.Empty(t, res.Form.Title)
	assert.Empty(t, res.Form.Status)
}

func TestView(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestProjectService(t, titled("A", "B")...)

	res := svc.View(ctx, &EditSession{CurrentID: "id-B"})
	assert.Equal(t, "B", res.Form.Title)
	assert.Equal(t, 1, res.Selected)

	res = svc.View(ctx, &EditSession{})
	assert.Equal(t, StatusIntro, res.Form.Status)
	assert.Equal(t, -1, res.Selected)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestProjectService(t, titled("A")...)

	p, err := svc.GetByID(ctx, "id-A")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Title)

	_, err = svc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildOptions(t *testing.T) {
	projects := titled("A", "")
	opts := BuildOptions(projects, 1)

	require.Len(t, opts, 3)
	assert.Equal(t, SelectOption{Value: "", Label: NewOptionLabel}, opts[0])
	assert.Equal(t, "1: A", opts[1].Label)
	assert.Equal(t, "2: (Untitled Project)", opts[2].Label)
	assert.Equal(t, strconv.Itoa(1), opts[2].Value)
	assert.True(t, opts[2].Selected)
}
