// Package store provides the persistence interfaces consumed by the
// controllers and their MongoDB implementations. Handlers only see the
// interfaces, so tests swap in in-memory stubs.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/apperr"
	"storefront/models"
	"storefront/query"
)

type ProductStore interface {
	List(ctx context.Context, q query.Query) ([]models.Product, int64, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id string, u models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type MongoProducts struct {
	col *mongo.Collection
}

func NewMongoProducts(col *mongo.Collection) *MongoProducts {
	return &MongoProducts{col: col}
}

func (s *MongoProducts) List(ctx context.Context, q query.Query) ([]models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := q.FilterDoc()

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count products")
	}

	w := query.Paginate(q.Page, q.Limit, total)
	opts := options.Find().
		SetSort(q.SortDoc()).
		SetSkip(w.Skip).
		SetLimit(w.Take)
	if proj := q.Projection(); proj != nil {
		opts.SetProjection(proj)
	}

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Internal("failed to fetch products")
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, apperr.Internal("failed to decode products")
	}
	return products, total, nil
}

func (s *MongoProducts) Get(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid("invalid product id")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var product models.Product
	err = s.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch product")
	}
	return &product, nil
}

func (s *MongoProducts) Create(ctx context.Context, p *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if p.Tags == nil {
		p.Tags = []string{}
	}

	if _, err := s.col.InsertOne(ctx, p); err != nil {
		return apperr.Internal("failed to create product")
	}
	return nil
}

func (s *MongoProducts) Update(ctx context.Context, id string, u models.ProductUpdate) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid("invalid product id")
	}

	set := bson.M{"updatedAt": time.Now()}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Images != nil {
		set["images"] = *u.Images
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Tags != nil {
		set["tags"] = *u.Tags
	}
	if u.Rating != nil {
		set["rating"] = *u.Rating
	}
	if u.Reviews != nil {
		set["reviews"] = *u.Reviews
	}
	if u.Stock != nil {
		set["stock"] = *u.Stock
	}
	if u.Featured != nil {
		set["featured"] = *u.Featured
	}
	if u.DiscountPercentage != nil {
		set["discountPercentage"] = *u.DiscountPercentage
	}
	if u.IsNew != nil {
		set["new"] = *u.IsNew
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to update product")
	}
	return &updated, nil
}

func (s *MongoProducts) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Invalid("invalid product id")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return apperr.Internal("failed to delete product")
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}
