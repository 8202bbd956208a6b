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

// eventDoc is the stored shape of a domain.Event.
type eventDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Date         time.Time          `bson:"date"`
	Description  string             `bson:"description"`
	Speakers     []domain.Speaker   `bson:"speakers"`
	Poster       domain.ImageField  `bson:"poster"`
	ReportLink   string             `bson:"report_link,omitempty"`
	AcademicYear string             `bson:"academic_year"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Date:         d.Date,
		Description:  d.Description,
		Speakers:     d.Speakers,
		Poster:       d.Poster,
		ReportLink:   d.ReportLink,
		AcademicYear: d.AcademicYear,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func eventToDoc(e *domain.Event) (*eventDoc, error) {
	doc := &eventDoc{
		Name:         e.Name,
		Date:         e.Date,
		Description:  e.Description,
		Speakers:     e.Speakers,
		Poster:       e.Poster,
		ReportLink:   e.ReportLink,
		AcademicYear: e.AcademicYear,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.ID != "" {
		oid, err := primitive.ObjectIDFromHex(e.ID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		doc.ID = oid
	}
	return doc, nil
}

type eventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository returns a domain.EventRepository backed by the events
// collection.
func NewEventRepository(db *mongo.Database) domain.EventRepository {
	return &eventRepository{coll: db.Collection(eventCollection)}
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)
	var events []*domain.Event
	for cursor.Next(ctx) {
		var doc eventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		events = append(events, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	var doc eventDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	doc, err := eventToDoc(event)
	if err != nil {
		return err
	}
	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid.Hex()
	}
	return nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	doc, err := eventToDoc(event)
	if err != nil {
		return err
	}
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
