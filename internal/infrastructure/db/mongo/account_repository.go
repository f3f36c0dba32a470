package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportsfed/federation-api/internal/core/domain"
)

const accountCollection = "accounts"

// AccountRepository persists administrator and club-manager accounts in
// MongoDB. The email field carries a unique index.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

type accountDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Email             string             `bson:"email"`
	Name              string             `bson:"name"`
	Role              string             `bson:"role"`
	ClubID            string             `bson:"club_id,omitempty"`
	PasswordHash      string             `bson:"password_hash,omitempty"`
	TemporaryPassword string             `bson:"temporary_password,omitempty"`
	IsActive          bool               `bson:"is_active"`
	LastLoginAt       int64              `bson:"last_login_at,omitempty"`
	CreatedAt         int64              `bson:"created_at"`
	UpdatedAt         int64              `bson:"updated_at"`
}

func toDoc(a *domain.Account) accountDoc {
	return accountDoc{
		Email:             a.Email,
		Name:              a.Name,
		Role:              string(a.Role),
		ClubID:            a.ClubID,
		PasswordHash:      a.PasswordHash,
		TemporaryPassword: a.TemporaryPassword,
		IsActive:          a.IsActive,
		LastLoginAt:       timeToUnix(a.LastLoginAt),
		CreatedAt:         a.CreatedAt.Unix(),
		UpdatedAt:         a.UpdatedAt.Unix(),
	}
}

func (d accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:                d.ID.Hex(),
		Email:             d.Email,
		Name:              d.Name,
		Role:              domain.Role(d.Role),
		ClubID:            d.ClubID,
		PasswordHash:      d.PasswordHash,
		TemporaryPassword: d.TemporaryPassword,
		IsActive:          d.IsActive,
		LastLoginAt:       unixToTime(d.LastLoginAt),
		CreatedAt:         unixToTime(d.CreatedAt),
		UpdatedAt:         unixToTime(d.UpdatedAt),
	}
}

func accountIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// One manager per club, enforced at the storage layer so the
			// find-then-create sequence in provisioning cannot race.
			Keys: bson.D{{Key: "club_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"role": string(domain.RoleClubManager)}),
		},
	}
}

// EnsureIndexes creates the indexes the uniqueness guarantees rely on: a
// unique index on email, and a partial unique index on club_id restricted to
// club managers. Called once at startup.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, accountIndexModels())
	return err
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	res, err := r.coll.InsertOne(ctx, toDoc(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) FindByClubID(ctx context.Context, clubID string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"club_id": clubID, "role": string(domain.RoleClubManager)})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	doc := toDoc(account)
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":               doc.Name,
		"password_hash":      doc.PasswordHash,
		"temporary_password": doc.TemporaryPassword,
		"is_active":          doc.IsActive,
		"last_login_at":      doc.LastLoginAt,
		"updated_at":         doc.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func timeToUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
