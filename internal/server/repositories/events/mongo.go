package events

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "events"

type geoJSON struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

// eventDocument keeps the field names of the existing collection.
type eventDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Community string             `bson:"topluluk"`
	Name      string             `bson:"etkinlik_name"`
	ImageURL  string             `bson:"image_url,omitempty"`
	Location  geoJSON            `bson:"location"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
}

func (d *eventDocument) toModel() *models.Event {
	e := &models.Event{
		ID:        d.ID.Hex(),
		Community: d.Community,
		Name:      d.Name,
		ImageURL:  d.ImageURL,
		Location:  models.GeoPoint{Type: "Point"},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if len(d.Location.Coordinates) == 2 {
		e.Location.Coordinates = [2]float64{d.Location.Coordinates[0], d.Location.Coordinates[1]}
	}
	return e
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "topluluk", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, community, nameQuery string, limit int) ([]*models.Event, error) {
	filter := bson.M{"topluluk": community}
	if nameQuery != "" {
		filter["etkinlik_name"] = bson.M{"$regex": regexp.QuoteMeta(nameQuery), "$options": "i"}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(clampLimit(limit)))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]*models.Event, 0)
	for cur.Next(ctx) {
		var doc eventDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *MongoRepository) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	doc := eventDocument{
		Community: e.Community,
		Name:      e.Name,
		ImageURL:  e.ImageURL,
		Location:  geoJSON{Type: "Point", Coordinates: []float64{e.Location.Lng(), e.Location.Lat()}},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid.Hex()
	}
	return e, nil
}

func (r *MongoRepository) UpdateName(ctx context.Context, id, name string, updatedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"etkinlik_name": name, "updated_at": updatedAt}},
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
