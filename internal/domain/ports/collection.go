// Package ports defines the interfaces the domain uses to reach storage and remote sources.
package ports

import "context"

// CollectionManager handles the lifecycle of the vector collection backing PersonIndex.
type CollectionManager interface {
	// EnsureCollection creates the collection if it doesn't exist.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// DeleteCollection drops the collection and every indexed person.
	DeleteCollection(ctx context.Context) error
}
