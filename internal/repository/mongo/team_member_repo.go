package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clubcms/internal/domain"
)

// teamMemberDoc is the stored shape of a domain.TeamMember.
type teamMemberDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	IDNumber     string             `bson:"id_number,omitempty"`
	Photo        domain.ImageField  `bson:"photo"`
	Position     string             `bson:"position"`
	AcademicYear string             `bson:"academic_year"`
	DisplayOrder int                `bson:"display_order"`
	LinkedinID   string             `bson:"linkedin_id,omitempty"`
	PhoneNumber  string             `bson:"phone_number,omitempty"`
	ShowPhone    bool               `bson:"show_phone"`
	ShowTelegram bool               `bson:"show_telegram"`
	TelegramLink string             `bson:"telegram_link,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *teamMemberDoc) toDomain() *domain.TeamMember {
	return &domain.TeamMember{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		IDNumber:     d.IDNumber,
		Photo:        d.Photo,
		Position:     d.Position,
		AcademicYear: d.AcademicYear,
		DisplayOrder: d.DisplayOrder,
		LinkedinID:   d.LinkedinID,
		PhoneNumber:  d.PhoneNumber,
		ShowPhone:    d.ShowPhone,
		ShowTelegram: d.ShowTelegram,
		TelegramLink: d.TelegramLink,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func teamMemberToDoc(m *domain.TeamMember) (*teamMemberDoc, error) {
	doc := &teamMemberDoc{
		Name:         m.Name,
		IDNumber:     m.IDNumber,
		Photo:        m.Photo,
		Position:     m.Position,
		AcademicYear: m.AcademicYear,
		DisplayOrder: m.DisplayOrder,
		LinkedinID:   m.LinkedinID,
		PhoneNumber:  m.PhoneNumber,
		ShowPhone:    m.ShowPhone,
		ShowTelegram: m.ShowTelegram,
		TelegramLink: m.TelegramLink,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.ID != "" {
		oid, err := primitive.ObjectIDFromHex(m.ID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		doc.ID = oid
	}
	return doc, nil
}

type teamMemberRepository struct {
	coll *mongo.Collection
}

// NewTeamMemberRepository returns a domain.TeamMemberRepository backed by the
// team_members collection.
func NewTeamMemberRepository(db *mongo.Database) domain.TeamMemberRepository {
	return &teamMemberRepository{coll: db.Collection(teamMemberCollection)}
}

func (r *teamMemberRepository) List(ctx context.Context) ([]*domain.TeamMember, error) {
	sort := bson.D{{Key: "display_order", Value: 1}, {Key: "name", Value: 1}}
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer cursor.Close(ctx)
	var members []*domain.TeamMember
	for cursor.Next(ctx) {
		var doc teamMemberDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode team member: %w", err)
		}
		members = append(members, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}
	return members, nil
}

func (r *teamMemberRepository) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	var doc teamMemberDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *teamMemberRepository) Create(ctx context.Context, member *domain.TeamMember) error {
	doc, err := teamMemberToDoc(member)
	if err != nil {
		return err
	}
	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateIDNumber
		}
		return fmt.Errorf("failed to insert team member: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		member.ID = oid.Hex()
	}
	return nil
}

func (r *teamMemberRepository) Update(ctx context.Context, member *domain.TeamMember) error {
	doc, err := teamMemberToDoc(member)
	if err != nil {
		return err
	}
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateIDNumber
		}
		return fmt.Errorf("failed to update team member: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *teamMemberRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
