// Package store defines the record store contract. The backing database is
// an external document store accessed strictly read-only: the contract
// exposes find operations and nothing else.
package store

import "context"

// Store is a handle to the record store shared by all requests. Connect is
// lazy and idempotent; implementations synchronize it so concurrent first
// callers await a single in-flight connect.
type Store interface {
	Connect(ctx context.Context) error
	Ping(ctx context.Context) error
	Collection(name string) Collection
	Close(ctx context.Context) error
}

// Collection is a collection-scoped read handle. Results decode into out
// (a *[]T for FindMany, a *T for FindOne).
type Collection interface {
	FindMany(ctx context.Context, filter, sort any, limit int64, out any) error
	FindOne(ctx context.Context, filter, out any) error
}
