package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/apperr"
	"storefront/models"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type MongoUsers struct {
	col *mongo.Collection
}

func NewMongoUsers(col *mongo.Collection) *MongoUsers {
	return &MongoUsers{col: col}
}

func (s *MongoUsers) Create(ctx context.Context, u *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()

	if _, err := s.col.InsertOne(ctx, u); err != nil {
		return apperr.Internal("failed to register user")
	}
	return nil
}

func (s *MongoUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch user")
	}
	return &user, nil
}

func (s *MongoUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid("invalid user id")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err = s.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch user")
	}
	return &user, nil
}
