// Package redisstore persists component registrations in a redis hash.
//
// Every registering process checks its schemas against the hash, so
// modules started independently against the same redis agree on field
// names and tags:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	reg := registry.NewLocal(registry.WithStorage(redisstore.New(client)))
package redisstore

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wippyai/ecs-layout/registry"
)

// DefaultKey is the hash holding one field per component name.
const DefaultKey = "ecs:component:schemas"

// Storage implements registry.SchemaStorage over a redis hash.
type Storage struct {
	client  redis.UniversalClient
	key     string
	timeout time.Duration
}

// Option configures a Storage.
type Option func(*Storage)

// WithKey stores schemas under a different hash key.
func WithKey(key string) Option {
	return func(s *Storage) { s.key = key }
}

// WithTimeout bounds each redis round trip.
func WithTimeout(d time.Duration) Option {
	return func(s *Storage) { s.timeout = d }
}

func New(client redis.UniversalClient, opts ...Option) *Storage {
	s := &Storage{
		client:  client,
		key:     DefaultKey,
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) GetSchema(name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.client.HGet(ctx, s.key, name).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, registry.ErrNoSchemaFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Storage) AddSchema(name string, data []byte) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	return s.client.HSetNX(ctx, s.key, name, data).Result()
}

// Names lists every component name stored in the hash.
func (s *Storage) Names(ctx context.Context) ([]string, error) {
	return s.client.HKeys(ctx, s.key).Result()
}

var _ registry.SchemaStorage = (*Storage)(nil)
