package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubcms/internal/domain"
)

type teamMemberService struct {
	repo   domain.TeamMemberRepository
	images *imageReconciler
}

// NewTeamMemberService creates the team member CRUD service. files backs
// photo uploads.
func NewTeamMemberService(repo domain.TeamMemberRepository, files domain.FileStore, logger *slog.Logger) domain.TeamMemberService {
	return &teamMemberService{
		repo:   repo,
		images: newImageReconciler(files, logger),
	}
}

func (s *teamMemberService) List(ctx context.Context) ([]*domain.TeamMember, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

func (s *teamMemberService) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *teamMemberService) Create(ctx context.Context, in domain.TeamMemberInput) (*domain.TeamMember, error) {
	if errs := validateTeamMemberInput(in); len(errs) > 0 {
		s.images.rollback(in.NewUploadPath)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}
	displayOrder := domain.DefaultDisplayOrder
	if in.DisplayOrder != nil {
		displayOrder = *in.DisplayOrder
	}
	now := time.Now()
	member := &domain.TeamMember{
		Name:         strings.TrimSpace(in.Name),
		IDNumber:     strings.TrimSpace(in.IDNumber),
		Photo:        s.images.resolve(in.NewUploadPath, in.PhotoType, in.PhotoValue, true),
		Position:     strings.TrimSpace(in.Position),
		AcademicYear: in.AcademicYear,
		DisplayOrder: displayOrder,
		LinkedinID:   strings.TrimSpace(in.LinkedinID),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		ShowPhone:    in.ShowPhone,
		ShowTelegram: in.ShowTelegram,
		TelegramLink: strings.TrimSpace(in.TelegramLink),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		s.images.rollback(in.NewUploadPath)
		if errors.Is(err, domain.ErrDuplicateIDNumber) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	return member, nil
}

func (s *teamMemberService) Update(ctx context.Context, id string, in domain.TeamMemberInput) (*domain.TeamMember, error) {
	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.images.rollback(in.NewUploadPath)
		return nil, err
	}
	if errs := validateTeamMemberInput(in); len(errs) > 0 {
		s.images.rollback(in.NewUploadPath)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}
	displayOrder := prev.DisplayOrder
	if in.DisplayOrder != nil {
		displayOrder = *in.DisplayOrder
	}
	member := &domain.TeamMember{
		ID:           prev.ID,
		Name:         strings.TrimSpace(in.Name),
		IDNumber:     strings.TrimSpace(in.IDNumber),
		Photo:        s.images.apply(prev.Photo, in.NewUploadPath, in.PhotoType, in.PhotoValue, true),
		Position:     strings.TrimSpace(in.Position),
		AcademicYear: in.AcademicYear,
		DisplayOrder: displayOrder,
		LinkedinID:   strings.TrimSpace(in.LinkedinID),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		ShowPhone:    in.ShowPhone,
		ShowTelegram: in.ShowTelegram,
		TelegramLink: strings.TrimSpace(in.TelegramLink),
		CreatedAt:    prev.CreatedAt,
		UpdatedAt:    time.Now(),
	}
	if err := s.repo.Update(ctx, member); err != nil {
		if errors.Is(err, domain.ErrDuplicateIDNumber) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}
	return member, nil
}

// Delete removes the member and, when the photo is an uploaded file, the
// backing file on disk.
func (s *teamMemberService) Delete(ctx context.Context, id string) error {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	s.images.removeUploaded(member.Photo)
	return nil
}

func validateTeamMemberInput(in domain.TeamMemberInput) []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(in.Position) == "" {
		errs = append(errs, "position is required")
	}
	if !domain.ValidAcademicYear(in.AcademicYear) {
		errs = append(errs, "academicYear must be one of "+strings.Join(domain.AcademicYears, ", "))
	}
	switch in.PhotoType {
	case "", domain.ImageKindUpload, domain.ImageKindURL, domain.ImageKindImport:
	default:
		errs = append(errs, "photoType must be upload, url, or import")
	}
	if in.PhotoType == domain.ImageKindURL && strings.TrimSpace(in.PhotoValue) != "" && !domain.ValidImageURL(in.PhotoValue) {
		errs = append(errs, "photoURL must be a valid http(s) URL")
	}
	return errs
}
