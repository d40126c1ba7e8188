// Package mongostore implements the user.Store contract on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillsenselab/userauth/internal/logger"
	"github.com/skillsenselab/userauth/internal/user"
)

const collectionName = "users"

// Store is the MongoDB-backed user store.
type Store struct {
	col *mongo.Collection
	log *logger.Logger
}

// New creates a Store over the given database.
func New(db *mongo.Database, log *logger.Logger) *Store {
	return &Store{
		col: db.Collection(collectionName),
		log: log.WithComponent("mongostore"),
	}
}

// EnsureIndexes creates the unique email index. Called once at startup;
// email uniqueness is enforced here, at creation time.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongostore: create email index: %w", err)
	}
	return nil
}

// FindByEmail returns the user with the given email, including the
// password hash for credential verification.
func (s *Store) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNoUser
		}
		return nil, fmt.Errorf("mongostore: find by email: %w", err)
	}
	return &u, nil
}

// FindByID returns the user with the given id. The password hash is
// projected out at the query level and never leaves the store.
func (s *Store) FindByID(ctx context.Context, id string) (*user.User, error) {
	opts := options.FindOne().SetProjection(bson.M{"password": 0})

	var u user.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNoUser
		}
		return nil, fmt.Errorf("mongostore: find by id: %w", err)
	}
	return &u, nil
}

// Create persists a new user record. Ids are ObjectID hex strings so they
// survive the round trip through token claims unchanged.
func (s *Store) Create(ctx context.Context, u *user.User) error {
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	if _, err := s.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("mongostore: insert: %w", err)
	}
	s.log.Debug("user document created", logger.Fields(logger.FieldUserID, u.ID))
	return nil
}

// UpdateLastLogin sets the user's last-login timestamp.
func (s *Store) UpdateLastLogin(ctx context.Context, id string, when time.Time) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"lastLogin": when}})
	if err != nil {
		return fmt.Errorf("mongostore: update last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return user.ErrNoUser
	}
	return nil
}

// Ping verifies the store is reachable. Used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.col.Database().Client().Ping(ctx, nil)
}

// Connect opens a client for the given URI and verifies connectivity.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}
	return client, nil
}
