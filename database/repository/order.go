package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"labbook/database"
	"labbook/models"
)

// ErrDuplicateOrderNumber is returned when an order number collides with an
// existing order. The unique index is the last line of defence behind the
// generator.
var ErrDuplicateOrderNumber = errors.New("order number already exists")

// OrderRepository defines data access for confirmed orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.Order, error)
}

// MongoOrderRepo implements OrderRepository backed by MongoDB.
type MongoOrderRepo struct{}

func NewMongoOrderRepo() *MongoOrderRepo {
	return &MongoOrderRepo{}
}

// EnsureIndexes creates the unique index guaranteeing order-number uniqueness
// under concurrent confirmations from different sessions.
func (r *MongoOrderRepo) EnsureIndexes(ctx context.Context) error {
	_, err := database.Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoOrderRepo) Create(ctx context.Context, order *models.Order) error {
	_, err := database.Collection("orders").InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateOrderNumber
	}
	if err != nil {
		return fmt.Errorf("failed to persist order: %w", err)
	}
	return nil
}

func (r *MongoOrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := database.Collection("orders").FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", orderNumber, err)
	}
	return &order, nil
}

func (r *MongoOrderRepo) ListByAccount(ctx context.Context, accountID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := database.Collection("orders").Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}
