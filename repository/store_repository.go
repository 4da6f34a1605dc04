package repository

import (
	"context"
	"errors"
	"time"

	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type StoreRepository struct {
	collection *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{
		collection: db.Collection("stores"),
	}
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepository) FindByCustomPath(ctx context.Context, path string) (*models.Store, error) {
	var store models.Store
	err := r.collection.FindOne(ctx, bson.M{"customPath": path}).Decode(&store)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	store.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, store)
	return err
}

// UpdateSettings applies merchant-editable branding and bank fields. When
// the update claims a custom path it first checks the path is not owned by
// another store; the unique sparse index is the backstop for races.
func (r *StoreRepository) UpdateSettings(ctx context.Context, id string, updates map[string]interface{}) error {
	if path, ok := updates["customPath"].(string); ok && path != "" {
		owner, err := r.FindByCustomPath(ctx, path)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if owner != nil && owner.ID != id {
			return ErrDuplicatePath
		}
	}

	fields := bson.M{}
	for k, v := range updates {
		fields[k] = v
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicatePath
	}
	return err
}

func (r *StoreRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StoreRepository) FindAll(ctx context.Context) ([]models.Store, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stores []models.Store
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}
