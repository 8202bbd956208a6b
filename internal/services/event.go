package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubcms/internal/domain"
)

type eventService struct {
	repo   domain.EventRepository
	images *imageReconciler
}

// NewEventService creates the event CRUD service. files backs poster uploads.
func NewEventService(repo domain.EventRepository, files domain.FileStore, logger *slog.Logger) domain.EventService {
	return &eventService{
		repo:   repo,
		images: newImageReconciler(files, logger),
	}
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *eventService) Create(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	if errs := validateEventInput(in); len(errs) > 0 {
		s.images.rollback(in.NewUploadPath)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}
	now := time.Now()
	event := &domain.Event{
		Name:         strings.TrimSpace(in.Name),
		Date:         in.Date,
		Description:  strings.TrimSpace(in.Description),
		Speakers:     in.Speakers,
		Poster:       s.images.resolve(in.NewUploadPath, in.PosterType, in.PosterURL, false),
		ReportLink:   strings.TrimSpace(in.ReportLink),
		AcademicYear: in.AcademicYear,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		s.images.rollback(in.NewUploadPath)
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, in domain.EventInput) (*domain.Event, error) {
	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.images.rollback(in.NewUploadPath)
		return nil, err
	}
	if errs := validateEventInput(in); len(errs) > 0 {
		s.images.rollback(in.NewUploadPath)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}
	event := &domain.Event{
		ID:           prev.ID,
		Name:         strings.TrimSpace(in.Name),
		Date:         in.Date,
		Description:  strings.TrimSpace(in.Description),
		Speakers:     in.Speakers,
		Poster:       s.images.apply(prev.Poster, in.NewUploadPath, in.PosterType, in.PosterURL, false),
		ReportLink:   strings.TrimSpace(in.ReportLink),
		AcademicYear: in.AcademicYear,
		CreatedAt:    prev.CreatedAt,
		UpdatedAt:    time.Now(),
	}
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// Delete removes the event and, when its poster is an uploaded file, the
// backing file on disk.
func (s *eventService) Delete(ctx context.Context, id string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.images.removeUploaded(event.Poster)
	return nil
}

func validateEventInput(in domain.EventInput) []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	if in.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, "description is required")
	}
	if len(in.Speakers) == 0 {
		errs = append(errs, "at least one speaker is required")
	}
	for i, sp := range in.Speakers {
		if strings.TrimSpace(sp.Name) == "" {
			errs = append(errs, fmt.Sprintf("speaker %d: name is required", i+1))
		}
		if sp.ID <= 0 {
			errs = append(errs, fmt.Sprintf("speaker %d: id must be positive", i+1))
		}
	}
	if !domain.ValidAcademicYear(in.AcademicYear) {
		errs = append(errs, "academicYear must be one of "+strings.Join(domain.AcademicYears, ", "))
	}
	switch in.PosterType {
	case "", domain.ImageKindUpload, domain.ImageKindURL:
	default:
		errs = append(errs, "posterType must be upload or url")
	}
	if in.PosterType == domain.ImageKindURL && strings.TrimSpace(in.PosterURL) != "" && !domain.ValidImageURL(in.PosterURL) {
		errs = append(errs, "posterURL must be a valid http(s) URL")
	}
	if link := strings.TrimSpace(in.ReportLink); link != "" && !domain.ValidImageURL(link) {
		errs = append(errs, "reportLink must be a valid http(s) URL")
	}
	return errs
}
