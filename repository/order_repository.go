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

type OrderRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		db:         db,
		collection: db.Collection("orders"),
	}
}

// Create inserts the order and conditionally decrements each item's stock
// inside one transaction. The filter on the decrement requires live stock
// to still cover the requested quantity, so two buyers racing for the last
// unit cannot both get an order recorded.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.CreatedAt = time.Now().UTC()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	products := r.db.Collection("products")
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, item := range order.Items {
			res, err := products.UpdateOne(sc,
				bson.M{
					"_id":     item.ProductID,
					"storeId": order.StoreID,
					"stock":   bson.M{"$gte": item.Quantity},
				},
				bson.M{
					"$inc": bson.M{"stock": -item.Quantity},
					"$set": bson.M{"updatedAt": time.Now().UTC()},
				})
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, ErrInsufficientStock
			}
		}
		if _, err := r.collection.InsertOne(sc, order); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, storeID, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": orderID, "storeId": storeID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"storeId": storeID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, storeID, orderID string, status models.OrderStatus) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": orderID, "storeId": storeID},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// WatchByStore opens a change stream filtered to the store's orders and
// feeds full documents to the returned channel. The channel closes when
// ctx is canceled or the stream breaks.
func (r *OrderRepository) WatchByStore(ctx context.Context, storeID string) (<-chan models.Order, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.M{"$in": []string{"insert", "update", "replace"}}},
			{Key: "fullDocument.storeId", Value: storeID},
		}}},
	}

	stream, err := r.collection.Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, err
	}

	out := make(chan models.Order)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			var event struct {
				FullDocument models.Order `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				continue
			}
			select {
			case out <- event.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
