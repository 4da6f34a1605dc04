package repository

import (
	"context"
	"errors"
	"time"

	"storefront-service/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, storeID, productID string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": productID, "storeId": storeID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindByStore(ctx context.Context, storeID string, inStockOnly bool) ([]models.Product, error) {
	filter := bson.M{"storeId": storeID}
	if inStockOnly {
		filter["stock"] = bson.M{"$gt": 0}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, storeID, productID string, updates map[string]interface{}) error {
	fields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range updates {
		fields[k] = v
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": productID, "storeId": storeID},
		bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, storeID, productID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": productID, "storeId": storeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
