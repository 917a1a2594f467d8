// Package service orchestrates roll-and-keep evaluations: rolling the pool,
// applying the keep policy, and recording the outcome.
package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/Kartagia/diceodel/internal/platform/errors"
	"github.com/Kartagia/diceodel/internal/platform/id"
	"github.com/Kartagia/diceodel/internal/services/roller/domain"
	"github.com/Kartagia/diceodel/internal/services/roller/storage"
)

// tracerName identifies roller spans in trace exports.
const tracerName = "github.com/Kartagia/diceodel/internal/services/roller"

// Service evaluates roll-and-keep requests. A nil history store disables
// persistence; evaluations still succeed.
type Service struct {
	store  storage.Store
	tracer trace.Tracer
	now    func() time.Time
	newID  func() (string, error)
}

// New builds a roller service. store may be nil.
func New(store storage.Store) *Service {
	return &Service{
		store:  store,
		tracer: otel.Tracer(tracerName),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  id.NewID,
	}
}

// RollAndKeep rolls the requested pool, applies the keep policy, and, when a
// history store is configured, persists the outcome. The returned record
// always carries the rolled and kept values; its ID is empty when history is
// disabled.
func (s *Service) RollAndKeep(ctx context.Context, request domain.KeepRequest) (storage.KeptRoll, error) {
	ctx, span := s.tracer.Start(ctx, "roller.RollAndKeep",
		trace.WithAttributes(
			attribute.String("roller.policy", string(request.Policy)),
			attribute.Int("roller.sides", request.Sides),
			attribute.Int("roller.count", request.Count),
			attribute.Int("roller.keep", request.Keep),
		),
	)
	defer span.End()

	result, err := domain.Apply(request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return storage.KeptRoll{}, err
	}

	record := storage.KeptRoll{
		Policy:    string(request.Policy),
		Sides:     request.Sides,
		Count:     request.Count,
		Keep:      request.Keep,
		Seed:      request.Seed,
		Rolled:    result.Rolled,
		Kept:      result.Kept,
		CreatedAt: s.now(),
	}

	if s.store == nil {
		return record, nil
	}

	rollID, err := s.newID()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return storage.KeptRoll{}, fmt.Errorf("generate roll id: %w", err)
	}
	record.ID = rollID

	if err := s.store.SaveKeptRoll(ctx, record); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return storage.KeptRoll{}, err
	}
	return record, nil
}

// History returns the most recent kept rolls, newest first. It fails when no
// history store is configured.
func (s *Service) History(ctx context.Context, limit int) ([]storage.KeptRoll, error) {
	ctx, span := s.tracer.Start(ctx, "roller.History",
		trace.WithAttributes(attribute.Int("roller.limit", limit)),
	)
	defer span.End()

	if s.store == nil {
		err := apperrors.New(apperrors.CodeHistoryDisabled, "roll history is not configured")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rolls, err := s.store.ListKeptRolls(ctx, limit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rolls, nil
}
