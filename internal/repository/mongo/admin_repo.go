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

type adminDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	SecretHash string             `bson:"secret_hash"`
	SecretSalt string             `bson:"secret_salt"`
	Role       string             `bson:"role"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d *adminDoc) toDomain() *domain.AdminAccount {
	return &domain.AdminAccount{
		ID:         d.ID.Hex(),
		Email:      d.Email,
		SecretHash: d.SecretHash,
		SecretSalt: d.SecretSalt,
		Role:       d.Role,
		CreatedAt:  d.CreatedAt,
	}
}

type adminRepository struct {
	coll *mongo.Collection
}

// NewAdminRepository returns a domain.AdminRepository backed by the
// admin_accounts collection.
func NewAdminRepository(db *mongo.Database) domain.AdminRepository {
	return &adminRepository{coll: db.Collection(adminCollection)}
}

// EnsureAdmin upserts the admin account for email with the given secret hash
// and salt, and returns the stored account. Called once at startup.
func (r *adminRepository) EnsureAdmin(ctx context.Context, email, secretHash, secretSalt string) (*domain.AdminAccount, error) {
	update := bson.M{
		"$set": bson.M{
			"secret_hash": secretHash,
			"secret_salt": secretSalt,
			"role":        "admin",
		},
		"$setOnInsert": bson.M{
			"email":      email,
			"created_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc adminDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to ensure admin account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminAccount, error) {
	var doc adminDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin account: %w", err)
	}
	return doc.toDomain(), nil
}
