package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportsfed/federation-api/internal/core/domain"
)

const clubCollection = "clubs"

// ClubRepository reads club records owned by the wider platform. The auth
// core only looks clubs up by id during manager provisioning.
type ClubRepository struct {
	coll *mongo.Collection
}

func NewClubRepository(db *mongo.Database) *ClubRepository {
	return &ClubRepository{coll: db.Collection(clubCollection)}
}

type clubDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	City      string             `bson:"city,omitempty"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *ClubRepository) FindByID(ctx context.Context, id string) (*domain.Club, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClubNotFound
	}

	var doc clubDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClubNotFound
		}
		return nil, fmt.Errorf("find club: %w", err)
	}

	return &domain.Club{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		City:      doc.City,
		CreatedAt: unixToTime(doc.CreatedAt),
	}, nil
}
