// Package storage defines the persistence contracts for roll history.
package storage

import (
	"context"
	"time"
)

// KeptRoll records one roll-and-keep evaluation.
type KeptRoll struct {
	ID        string
	Policy    string
	Sides     int
	Count     int
	Keep      int
	Seed      int64
	Rolled    []int
	Kept      []int
	CreatedAt time.Time
}

// Store persists kept rolls.
type Store interface {
	// SaveKeptRoll persists a kept roll record.
	SaveKeptRoll(ctx context.Context, roll KeptRoll) error
	// GetKeptRoll loads a kept roll by id. Missing records return a
	// NOT_FOUND domain error.
	GetKeptRoll(ctx context.Context, rollID string) (KeptRoll, error)
	// ListKeptRolls returns the most recent kept rolls, newest first,
	// bounded by limit.
	ListKeptRolls(ctx context.Context, limit int) ([]KeptRoll, error)
}
