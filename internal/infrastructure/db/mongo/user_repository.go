package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

const DefaultUsersCollection = "users"

// UserRepository reads the registered users. It is consulted once at
// startup; the result feeds the in-memory credential store.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	if collection == "" {
		collection = DefaultUsersCollection
	}
	return &UserRepository{coll: db.Collection(collection)}
}

type mongoUser struct {
	Username     string `bson:"username"`
	DisplayName  string `bson:"display_name"`
	PasswordHash string `bson:"password_hash"`
	Salt         string `bson:"salt"`
}

// LoadAll returns every user document ordered by username.
func (r *UserRepository) LoadAll(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, domain.User{
			Username:     d.Username,
			DisplayName:  d.DisplayName,
			PasswordHash: d.PasswordHash,
			Salt:         d.Salt,
		})
	}
	return users, nil
}
