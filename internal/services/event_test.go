package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"clubcms/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFileStore implements domain.FileStore for tests and records removals.
type fakeFileStore struct {
	removed   []string
	removeErr error
}

func (f *fakeFileStore) Save(src io.Reader, originalName string) (string, error) {
	return "/uploads/" + originalName, nil
}

func (f *fakeFileStore) Remove(publicPath string) error {
	f.removed = append(f.removed, publicPath)
	return f.removeErr
}

// fakeEventRepo implements domain.EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	createErr error
	updateErr error
	listErr   error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "event-1"
	f.byID[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *domain.Event) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[event.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validEventInput() domain.EventInput {
	return domain.EventInput{
		Name:         "Intro to Robotics",
		Date:         time.Date(2024, 10, 5, 18, 0, 0, 0, time.UTC),
		Description:  "Kickoff session",
		Speakers:     []domain.Speaker{{Name: "Alice", ID: 1}},
		AcademicYear: "2024-2025",
	}
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		mutate     func(*domain.EventInput)
		wantPoster domain.ImageField
		wantErr    error
	}{
		{
			name:       "placeholder poster without any input",
			mutate:     func(in *domain.EventInput) {},
			wantPoster: domain.PlaceholderImage(),
		},
		{
			name: "uploaded poster wins",
			mutate: func(in *domain.EventInput) {
				in.NewUploadPath = "/uploads/poster.png"
				in.PosterType = domain.ImageKindURL
				in.PosterURL = "https://cdn.example/p.png"
			},
			wantPoster: domain.ImageField{Kind: domain.ImageKindUpload, Value: "/uploads/poster.png"},
		},
		{
			name: "url poster",
			mutate: func(in *domain.EventInput) {
				in.PosterType = domain.ImageKindURL
				in.PosterURL = "https://cdn.example/p.png"
			},
			wantPoster: domain.ImageField{Kind: domain.ImageKindURL, Value: "https://cdn.example/p.png"},
		},
		{
			name:    "missing name",
			mutate:  func(in *domain.EventInput) { in.Name = "" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing speakers",
			mutate:  func(in *domain.EventInput) { in.Speakers = nil },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "speaker without positive id",
			mutate: func(in *domain.EventInput) {
				in.Speakers = []domain.Speaker{{Name: "Alice", ID: 0}}
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown academic year",
			mutate:  func(in *domain.EventInput) { in.AcademicYear = "1999-2000" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "bad poster url",
			mutate: func(in *domain.EventInput) {
				in.PosterType = domain.ImageKindURL
				in.PosterURL = "not-a-url"
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "bad report link",
			mutate:  func(in *domain.EventInput) { in.ReportLink = "not-a-url" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "import kind rejected for posters",
			mutate:  func(in *domain.EventInput) { in.PosterType = domain.ImageKindImport },
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			svc := NewEventService(repo, &fakeFileStore{}, testLogger())
			in := validEventInput()
			tt.mutate(&in)

			event, err := svc.Create(ctx, in)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, event)
				assert.Empty(t, repo.byID)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, event)
			assert.Equal(t, "event-1", event.ID)
			assert.Equal(t, tt.wantPoster, event.Poster)
			assert.False(t, event.CreatedAt.IsZero())
		})
	}
}

func TestEventService_Create_RollsBackUploadOnInvalidInput(t *testing.T) {
	ctx := context.Background()
	files := &fakeFileStore{}
	svc := NewEventService(newFakeEventRepo(), files, testLogger())

	in := validEventInput()
	in.Name = ""
	in.NewUploadPath = "/uploads/orphan.png"

	_, err := svc.Create(ctx, in)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{"/uploads/orphan.png"}, files.removed)
}

func TestEventService_Create_RollsBackUploadOnRepoError(t *testing.T) {
	ctx := context.Background()
	files := &fakeFileStore{}
	repo := newFakeEventRepo()
	repo.createErr = errors.New("write failed")
	svc := NewEventService(repo, files, testLogger())

	in := validEventInput()
	in.NewUploadPath = "/uploads/orphan.png"

	_, err := svc.Create(ctx, in)

	require.Error(t, err)
	assert.Equal(t, []string{"/uploads/orphan.png"}, files.removed)
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()

	uploadedPoster := domain.ImageField{Kind: domain.ImageKindUpload, Value: "/uploads/old.png"}

	tests := []struct {
		name        string
		prevPoster  domain.ImageField
		mutate      func(*domain.EventInput)
		wantPoster  domain.ImageField
		wantRemoved []string
	}{
		{
			name:        "new upload supersedes old upload",
			prevPoster:  uploadedPoster,
			mutate:      func(in *domain.EventInput) { in.NewUploadPath = "/uploads/new.png" },
			wantPoster:  domain.ImageField{Kind: domain.ImageKindUpload, Value: "/uploads/new.png"},
			wantRemoved: []string{"/uploads/old.png"},
		},
		{
			name:       "declared url replaces old upload",
			prevPoster: uploadedPoster,
			mutate: func(in *domain.EventInput) {
				in.PosterType = domain.ImageKindURL
				in.PosterURL = "https://cdn.example/p.png"
			},
			wantPoster:  domain.ImageField{Kind: domain.ImageKindURL, Value: "https://cdn.example/p.png"},
			wantRemoved: []string{"/uploads/old.png"},
		},
		{
			name:       "no poster input keeps previous",
			prevPoster: uploadedPoster,
			mutate:     func(in *domain.EventInput) {},
			wantPoster: uploadedPoster,
		},
		{
			name:       "url previous is never deleted from disk",
			prevPoster: domain.ImageField{Kind: domain.ImageKindURL, Value: "https://cdn.example/old.png"},
			mutate:     func(in *domain.EventInput) { in.NewUploadPath = "/uploads/new.png" },
			wantPoster: domain.ImageField{Kind: domain.ImageKindUpload, Value: "/uploads/new.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			repo.byID["event-1"] = &domain.Event{
				ID:           "event-1",
				Name:         "Old",
				Date:         time.Now(),
				Description:  "old",
				Speakers:     []domain.Speaker{{Name: "Alice", ID: 1}},
				Poster:       tt.prevPoster,
				AcademicYear: "2024-2025",
				CreatedAt:    time.Now().Add(-time.Hour),
			}
			files := &fakeFileStore{}
			svc := NewEventService(repo, files, testLogger())
			in := validEventInput()
			tt.mutate(&in)

			event, err := svc.Update(ctx, "event-1", in)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPoster, event.Poster)
			assert.Equal(t, tt.wantRemoved, files.removed)
		})
	}
}

func TestEventService_Update_NotFoundRollsBackUpload(t *testing.T) {
	ctx := context.Background()
	files := &fakeFileStore{}
	svc := NewEventService(newFakeEventRepo(), files, testLogger())

	in := validEventInput()
	in.NewUploadPath = "/uploads/orphan.png"

	_, err := svc.Update(ctx, "missing", in)

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"/uploads/orphan.png"}, files.removed)
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		poster      domain.ImageField
		wantRemoved []string
	}{
		{
			name:        "uploaded poster file is removed",
			poster:      domain.ImageField{Kind: domain.ImageKindUpload, Value: "/uploads/p.png"},
			wantRemoved: []string{"/uploads/p.png"},
		},
		{
			name:   "url poster leaves disk untouched",
			poster: domain.ImageField{Kind: domain.ImageKindURL, Value: "https://cdn.example/p.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			repo.byID["event-1"] = &domain.Event{ID: "event-1", Poster: tt.poster}
			files := &fakeFileStore{}
			svc := NewEventService(repo, files, testLogger())

			err := svc.Delete(ctx, "event-1")

			require.NoError(t, err)
			assert.Empty(t, repo.byID)
			assert.Equal(t, tt.wantRemoved, files.removed)
		})
	}
}

func TestEventService_Delete_NotFound(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), &fakeFileStore{}, testLogger())
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_Delete_RemoveFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	repo.byID["event-1"] = &domain.Event{
		ID:     "event-1",
		Poster: domain.ImageField{Kind: domain.ImageKindUpload, Value: "/uploads/p.png"},
	}
	files := &fakeFileStore{removeErr: errors.New("unlink failed")}
	svc := NewEventService(repo, files, testLogger())

	err := svc.Delete(ctx, "event-1")

	require.NoError(t, err)
	assert.Empty(t, repo.byID)
}
