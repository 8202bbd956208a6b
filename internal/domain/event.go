package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by resource operations.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidInput = errors.New("invalid input")
)

// AcademicYears is the fixed set of years a resource may belong to.
var AcademicYears = []string{
	"2020-2021",
	"2021-2022",
	"2022-2023",
	"2023-2024",
	"2024-2025",
	"2025-2026",
}

// ValidAcademicYear reports whether year is one of AcademicYears.
func ValidAcademicYear(year string) bool {
	for _, y := range AcademicYears {
		if y == year {
			return true
		}
	}
	return false
}

// Speaker is one entry of an event's speaker list.
// swagger:model Speaker
type Speaker struct {
	Name string `json:"name" bson:"name"`
	ID   int    `json:"id" bson:"id"`
}

// Event is a club event with a poster image.
// swagger:model Event
type Event struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Name         string     `json:"name" bson:"name"`
	Date         time.Time  `json:"date" bson:"date"`
	Description  string     `json:"description" bson:"description"`
	Speakers     []Speaker  `json:"speakers" bson:"speakers"`
	Poster       ImageField `json:"poster" bson:"poster"`
	ReportLink   string     `json:"report_link,omitempty" bson:"report_link,omitempty"`
	AcademicYear string     `json:"academic_year" bson:"academic_year"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// EventInput carries the create/update payload for an event as decoded from
// the multipart form. NewUploadPath is the public path of a file stored for
// this request, or empty. PosterType/PosterURL are the caller-declared image
// kind and value.
type EventInput struct {
	Name          string
	Date          time.Time
	Description   string
	Speakers      []Speaker
	ReportLink    string
	AcademicYear  string
	PosterType    string
	PosterURL     string
	NewUploadPath string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for events.
type EventService interface {
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, in EventInput) (*Event, error)
	Update(ctx context.Context, id string, in EventInput) (*Event, error)
	Delete(ctx context.Context, id string) error
}
