package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "users"

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	UserName     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsActive     bool               `bson:"is_active"`
	OtpCode      *string            `bson:"otp_code,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		UserName:     d.UserName,
		PasswordHash: d.PasswordHash,
		Role:         models.Role(d.Role),
		IsActive:     d.IsActive,
		OtpCode:      d.OtpCode,
		CreatedAt:    d.CreatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureIndexes creates the unique email index that closes the signup race.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	doc := userDocument{
		Email:        u.Email,
		UserName:     u.UserName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		OtpCode:      u.OtpCode,
		CreatedAt:    u.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return u, nil
}

func (r *MongoRepository) ActivateIfOtpMatches(ctx context.Context, email, code string) (*models.User, error) {
	filter := bson.M{"email": email, "otp_code": code}
	update := bson.M{
		"$set":   bson.M{"is_active": true},
		"$unset": bson.M{"otp_code": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}
