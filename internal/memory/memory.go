// Package memory defines the fact model and the durable fact store
// interface. The store is the source of truth: the vector index is a
// derived projection that can be destroyed and rebuilt from it at any
// time without data loss.
package memory

import (
	"context"
	"time"
)

// Fact is one normalized, classified unit of extracted personal
// information derived from a single message.
type Fact struct {
	// ID is assigned by the store on insert, monotonically increasing.
	ID int64

	// Type is the classification category (business, investment, ...).
	Type string

	// Content is the trimmed message text.
	Content string

	// SourceRef identifies the originating message ("msg_<id>").
	// Used for traceability, not uniqueness.
	SourceRef string

	// Timestamp is the original message time, stored as provided.
	// It is an opaque string and not guaranteed to be a parseable
	// datetime; consumers must tolerate missing or free-form values.
	Timestamp string

	// RawText is the unmodified original message text, kept for audit.
	RawText string

	// CreatedAt is the store-assigned ingestion time.
	CreatedAt time.Time
}

// TypeCount is one entry of a per-category fact count.
type TypeCount struct {
	Type  string
	Count int
}

// Stats summarizes the store contents. ByType is ordered by count
// descending.
type Stats struct {
	Total  int
	ByType []TypeCount
}

// Store is the durable, append-mostly fact store.
type Store interface {
	// InsertMany bulk-inserts facts in one transaction and returns the
	// number inserted. It never overwrites and performs no duplicate
	// detection: re-ingesting the same input grows the store.
	InsertMany(ctx context.Context, facts []Fact) (int, error)

	// LoadAll returns every fact ordered by id ascending.
	LoadAll(ctx context.Context) ([]Fact, error)

	// Stats returns the total count and the per-type breakdown.
	Stats(ctx context.Context) (Stats, error)

	// Close releases the underlying database handle.
	Close() error
}
