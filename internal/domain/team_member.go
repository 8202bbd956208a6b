package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateIDNumber is returned when a team member's id number is already
// taken by another member.
var ErrDuplicateIDNumber = errors.New("id number already in use")

// DefaultDisplayOrder sorts members without an explicit order last.
const DefaultDisplayOrder = 999

// TeamMember is a club team member with a photo.
// swagger:model TeamMember
type TeamMember struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Name         string     `json:"name" bson:"name"`
	IDNumber     string     `json:"id_number,omitempty" bson:"id_number,omitempty"`
	Photo        ImageField `json:"photo" bson:"photo"`
	Position     string     `json:"position" bson:"position"`
	AcademicYear string     `json:"academic_year" bson:"academic_year"`
	DisplayOrder int        `json:"display_order" bson:"display_order"`
	LinkedinID   string     `json:"linkedin_id,omitempty" bson:"linkedin_id,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	ShowPhone    bool       `json:"show_phone" bson:"show_phone"`
	ShowTelegram bool       `json:"show_telegram" bson:"show_telegram"`
	TelegramLink string     `json:"telegram_link,omitempty" bson:"telegram_link,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// TeamMemberInput carries the create/update payload for a team member as
// decoded from the multipart form. DisplayOrder nil means "not supplied".
type TeamMemberInput struct {
	Name          string
	IDNumber      string
	Position      string
	AcademicYear  string
	DisplayOrder  *int
	LinkedinID    string
	PhoneNumber   string
	ShowPhone     bool
	ShowTelegram  bool
	TelegramLink  string
	PhotoType     string
	PhotoValue    string
	NewUploadPath string
}

// TeamMemberRepository defines the interface for team member storage.
type TeamMemberRepository interface {
	List(ctx context.Context) ([]*TeamMember, error)
	GetByID(ctx context.Context, id string) (*TeamMember, error)
	Create(ctx context.Context, member *TeamMember) error
	Update(ctx context.Context, member *TeamMember) error
	Delete(ctx context.Context, id string) error
}

// TeamMemberService defines the business logic for team members.
type TeamMemberService interface {
	List(ctx context.Context) ([]*TeamMember, error)
	GetByID(ctx context.Context, id string) (*TeamMember, error)
	Create(ctx context.Context, in TeamMemberInput) (*TeamMember, error)
	Update(ctx context.Context, id string, in TeamMemberInput) (*TeamMember, error)
	Delete(ctx context.Context, id string) error
}
