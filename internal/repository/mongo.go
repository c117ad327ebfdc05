package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/taskmate/taskmate/internal/model"
)

const usersCollection = "users"

// withoutPassword is the default projection for user reads.
var withoutPassword = bson.D{{Key: "password", Value: 0}}

// MongoRepository stores each user as one document in the users collection,
// with tasks embedded as an array.
type MongoRepository struct {
	client *mongo.Client
	users  *mongo.Collection
}

// NewMongo connects to MongoDB, verifies the connection and ensures the
// unique email index.
func NewMongo(ctx context.Context, uri, databaseName string) (*MongoRepository, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMinPoolSize(2).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	repo := &MongoRepository{
		client: client,
		users:  client.Database(databaseName).Collection(usersCollection),
	}

	if err := repo.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return repo, nil
}

func (r *MongoRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// CreateUser inserts a new user document.
func (r *MongoRepository) CreateUser(ctx context.Context, user *model.User) error {
	normalize(user)
	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *MongoRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}}, false)
}

// GetUserByEmail retrieves a user by their email address.
func (r *MongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}}, false)
}

// GetUserByEmailWithPassword retrieves a user by email including the password hash.
func (r *MongoRepository) GetUserByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}}, true)
}

// SaveUser sets the mutable fields of the stored document.
func (r *MongoRepository) SaveUser(ctx context.Context, user *model.User) error {
	normalize(user)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: user.Name},
		{Key: "avatar", Value: user.Avatar},
		{Key: "verified", Value: user.Verified},
		{Key: "otp", Value: user.OTP},
		{Key: "otp_expiry", Value: user.OTPExpiry},
		{Key: "tasks", Value: user.Tasks},
	}}}

	res, err := r.users.UpdateOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, update)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Ping checks database connectivity.
func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.D, withPassword bool) (*model.User, error) {
	opts := options.FindOne()
	if !withPassword {
		opts.SetProjection(withoutPassword)
	}

	var user model.User
	if err := r.users.FindOne(ctx, filter, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return normalize(&user), nil
}
