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
)

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	MarkPaid(ctx context.Context, id string, result models.PaymentResult) (*models.Order, error)
	MarkDelivered(ctx context.Context, id string) (*models.Order, error)
}

type MongoOrders struct {
	col *mongo.Collection
}

func NewMongoOrders(col *mongo.Collection) *MongoOrders {
	return &MongoOrders{col: col}
}

func (s *MongoOrders) Create(ctx context.Context, o *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now()

	if _, err := s.col.InsertOne(ctx, o); err != nil {
		return apperr.Internal("failed to create order")
	}
	return nil
}

func (s *MongoOrders) Get(ctx context.Context, id string) (*models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid("invalid order id")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order models.Order
	err = s.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Order not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch order")
	}
	return &order, nil
}

func (s *MongoOrders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.list(ctx, bson.M{"userId": userID})
}

func (s *MongoOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *MongoOrders) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, apperr.Internal("failed to fetch orders")
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, apperr.Internal("failed to decode orders")
	}
	return orders, nil
}

// MarkPaid stamps the paid flag and stores the gateway result. Re-invoking
// on a paid order re-stamps the timestamp; two racing calls are
// last-write-wins, which the order design accepts.
func (s *MongoOrders) MarkPaid(ctx context.Context, id string, result models.PaymentResult) (*models.Order, error) {
	return s.stamp(ctx, id, bson.M{
		"isPaid":        true,
		"paidAt":        time.Now(),
		"paymentResult": result,
	})
}

func (s *MongoOrders) MarkDelivered(ctx context.Context, id string) (*models.Order, error) {
	return s.stamp(ctx, id, bson.M{
		"isDelivered": true,
		"deliveredAt": time.Now(),
	})
}

func (s *MongoOrders) stamp(ctx context.Context, id string, set bson.M) (*models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid("invalid order id")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Order
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Order not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to update order")
	}
	return &updated, nil
}
