// Package domain validates roll-and-keep requests and applies keep policies
// to rolled pools.
package domain

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Kartagia/diceodel/internal/core/compare"
	"github.com/Kartagia/diceodel/internal/core/keep"
	"github.com/Kartagia/diceodel/internal/dice"
	apperrors "github.com/Kartagia/diceodel/internal/platform/errors"
)

// KeepPolicy selects which kept subsequence a roll reduces to.
type KeepPolicy string

const (
	// KeepPolicyBest keeps the highest rolled values, best first.
	KeepPolicyBest KeepPolicy = "best"
	// KeepPolicyWorst keeps the lowest rolled values, worst first.
	KeepPolicyWorst KeepPolicy = "worst"
	// KeepPolicyLast keeps the most recently rolled values in roll order.
	KeepPolicyLast KeepPolicy = "last"
)

// ParseKeepPolicy validates a policy name.
func ParseKeepPolicy(value string) (KeepPolicy, error) {
	switch policy := KeepPolicy(strings.ToLower(strings.TrimSpace(value))); policy {
	case KeepPolicyBest, KeepPolicyWorst, KeepPolicyLast:
		return policy, nil
	default:
		return "", apperrors.WithMetadata(
			apperrors.CodeKeepPolicyInvalid,
			"keep policy must be best, worst, or last",
			map[string]string{"policy": value},
		)
	}
}

// KeepRequest describes one roll-and-keep evaluation.
type KeepRequest struct {
	Sides  int
	Count  int
	Policy KeepPolicy
	Keep   int
	Seed   int64
}

// KeepResult captures the rolled pool and the kept subsequence.
type KeepResult struct {
	Rolled []int
	Kept   []int
}

// Apply rolls the requested pool and reduces it under the requested policy.
// All failures are structured domain errors; there are no partial results.
func Apply(request KeepRequest) (KeepResult, error) {
	combiner, err := newCombiner(request)
	if err != nil {
		return KeepResult{}, err
	}

	result, err := dice.RollDice(dice.Request{
		Dice: []dice.Spec{{Sides: request.Sides, Count: request.Count}},
		Seed: request.Seed,
	})
	if err != nil {
		return KeepResult{}, mapDiceError(err, request)
	}

	rolled := result.Values()
	kept, err := combiner.Combine(rolled)
	if err != nil {
		return KeepResult{}, mapKeepError(err, request)
	}

	return KeepResult{Rolled: rolled, Kept: kept}, nil
}

// newCombiner builds the combiner for the request's policy.
func newCombiner(request KeepRequest) (keep.Combiner[int], error) {
	var (
		combiner keep.Combiner[int]
		err      error
	)
	switch request.Policy {
	case KeepPolicyBest:
		combiner, err = keep.NewBest(request.Keep, compare.Natural[int]())
	case KeepPolicyWorst:
		combiner, err = keep.NewWorst(request.Keep, compare.Natural[int]())
	case KeepPolicyLast:
		combiner, err = keep.NewLast[int](request.Keep)
	default:
		return nil, apperrors.WithMetadata(
			apperrors.CodeKeepPolicyInvalid,
			"keep policy must be best, worst, or last",
			map[string]string{"policy": string(request.Policy)},
		)
	}
	if err != nil {
		return nil, mapKeepError(err, request)
	}
	return combiner, nil
}

// mapDiceError converts dice sentinels into structured domain errors.
func mapDiceError(err error, request KeepRequest) error {
	switch {
	case errors.Is(err, dice.ErrMissingDice):
		return apperrors.Wrap(apperrors.CodeDiceMissing, "roll request has no dice", err)
	case errors.Is(err, dice.ErrInvalidDiceSpec):
		return apperrors.WrapWithMetadata(apperrors.CodeDiceInvalidSpec, "dice must have positive sides and count", requestMetadata(request), err)
	default:
		return apperrors.Wrap(apperrors.CodeUnknown, "roll dice", err)
	}
}

// mapKeepError converts keep-engine sentinels into structured domain errors.
func mapKeepError(err error, request KeepRequest) error {
	switch {
	case errors.Is(err, keep.ErrNegativeCount):
		return apperrors.WrapWithMetadata(apperrors.CodeKeepNegativeCount, "keep count must be non-negative", requestMetadata(request), err)
	case errors.Is(err, keep.ErrEmptyRoll):
		return apperrors.Wrap(apperrors.CodeRollEmpty, "roll must contain at least one value", err)
	case errors.Is(err, keep.ErrIncomparable):
		return apperrors.Wrap(apperrors.CodeRollNotComparable, "roll contains non-comparable values", err)
	default:
		return apperrors.Wrap(apperrors.CodeUnknown, "apply keep policy", err)
	}
}

// requestMetadata renders the numeric request fields for error metadata.
func requestMetadata(request KeepRequest) map[string]string {
	return map[string]string{
		"sides":  strconv.Itoa(request.Sides),
		"count":  strconv.Itoa(request.Count),
		"keep":   strconv.Itoa(request.Keep),
		"policy": string(request.Policy),
	}
}
