// Package mongo implements the record store contract on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/signalworks/leadscope/internal/domain"
	"github.com/signalworks/leadscope/internal/store"
)

// Config holds Mongo connection settings.
type Config struct {
	URI      string
	Database string
}

// Store wraps a single shared mongo client. The connection is established
// lazily on first use and torn down only at process exit.
type Store struct {
	cfg Config

	connectOnce sync.Once
	connectErr  error
	client      *mongo.Client
	db          *mongo.Database
}

var _ store.Store = (*Store)(nil)

// NewStore creates a Store. No connection is opened yet.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("%w: mongo uri is required", domain.ErrConfig)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("%w: mongo database is required", domain.ErrConfig)
	}
	return &Store{cfg: cfg}, nil
}

// Connect establishes the shared connection. It is idempotent: concurrent
// first callers all await the same in-flight attempt, and the outcome
// (including failure) is sticky for the life of the process.
func (s *Store) Connect(ctx context.Context) error {
	s.connectOnce.Do(func() {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.cfg.URI))
		if err != nil {
			s.connectErr = fmt.Errorf("%w: %v", domain.ErrConnection, err)
			return
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			s.connectErr = fmt.Errorf("%w: %v", domain.ErrConnection, err)
			return
		}
		s.client = client
		s.db = client.Database(s.cfg.Database)
	})
	return s.connectErr
}

// Ping checks connectivity, connecting first if needed.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.Connect(ctx); err != nil {
		return err
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	return nil
}

// Collection returns a read handle scoped to the named collection.
func (s *Store) Collection(name string) store.Collection {
	return &collection{store: s, name: name}
}

// Close tears down the shared connection.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) FindMany(ctx context.Context, filter, sort any, limit int64, out any) error {
	if err := c.store.Connect(ctx); err != nil {
		return err
	}
	if filter == nil {
		filter = bson.D{}
	}
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := c.store.db.Collection(c.name).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", c.name, err)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", c.name, err)
	}
	return nil
}

func (c *collection) FindOne(ctx context.Context, filter, out any) error {
	if err := c.store.Connect(ctx); err != nil {
		return err
	}
	if filter == nil {
		filter = bson.D{}
	}
	err := c.store.db.Collection(c.name).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find one %s: %w", c.name, err)
	}
	return nil
}
