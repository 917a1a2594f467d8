// Package roll implements the one-shot dice roll CLI.
package roll

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Kartagia/diceodel/internal/core/keep"
	"github.com/Kartagia/diceodel/internal/dice"
	"github.com/Kartagia/diceodel/internal/random"
	"github.com/Kartagia/diceodel/internal/services/roller/domain"
)

// Config holds configuration for a one-shot roll.
type Config struct {
	Sides  int
	Count  int
	Policy string
	Keep   int
	Seed   int64
	Hex    bool
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Sides: 6, Count: 1, Policy: "best", Keep: 1}
	fs.IntVar(&cfg.Sides, "sides", cfg.Sides, "number of sides per die")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "number of dice to roll")
	fs.StringVar(&cfg.Policy, "policy", cfg.Policy, "keep policy: best, worst, or last")
	fs.IntVar(&cfg.Keep, "keep", cfg.Keep, "number of values to keep")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed to replay a roll, 0 draws a random seed")
	fs.BoolVar(&cfg.Hex, "hex", cfg.Hex, "roll hexadecimal digits instead of numeric dice")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run rolls the configured pool, applies the keep policy, and writes the
// seed, the rolled pool, and the kept values to out. A zero seed is
// resolved to a fresh random one so repeated runs vary; the printed seed
// replays the run.
func Run(cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}

	policy, err := domain.ParseKeepPolicy(cfg.Policy)
	if err != nil {
		return err
	}

	cfg.Seed, err = random.Resolve(cfg.Seed)
	if err != nil {
		return err
	}

	if cfg.Hex {
		return runHex(cfg, policy, out)
	}

	result, err := domain.Apply(domain.KeepRequest{
		Sides:  cfg.Sides,
		Count:  cfg.Count,
		Policy: policy,
		Keep:   cfg.Keep,
		Seed:   cfg.Seed,
	})
	if err != nil {
		return err
	}
	return writeOutcome(out, cfg.Seed, joinInts(result.Rolled), joinInts(result.Kept))
}

// runHex rolls hex digits and applies the keep policy with the digit order
// that ranks letters above numerals.
func runHex(cfg Config, policy domain.KeepPolicy, out io.Writer) error {
	combiner, err := newHexCombiner(policy, cfg.Keep)
	if err != nil {
		return err
	}

	rolled, err := dice.RollHexDice(cfg.Count, cfg.Seed)
	if err != nil {
		return err
	}
	kept, err := combiner.Combine(rolled)
	if err != nil {
		return err
	}
	return writeOutcome(out, cfg.Seed, joinHexDigits(rolled), joinHexDigits(kept))
}

// newHexCombiner builds the keep combiner for hex digit pools.
func newHexCombiner(policy domain.KeepPolicy, count int) (keep.Combiner[dice.HexDigit], error) {
	var (
		combiner keep.Combiner[dice.HexDigit]
		err      error
	)
	switch policy {
	case domain.KeepPolicyBest:
		combiner, err = keep.NewBest(count, dice.CompareHexDigits)
	case domain.KeepPolicyWorst:
		combiner, err = keep.NewWorst(count, dice.CompareHexDigits)
	case domain.KeepPolicyLast:
		combiner, err = keep.NewLast[dice.HexDigit](count)
	default:
		return nil, fmt.Errorf("policy %q is not supported", policy)
	}
	if err != nil {
		return nil, err
	}
	return combiner, nil
}

// writeOutcome prints the resolved seed, the rolled pool, and the kept
// values.
func writeOutcome(out io.Writer, seed int64, rolled, kept string) error {
	if _, err := fmt.Fprintf(out, "seed: %d\n", seed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "rolled: %s\n", rolled); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "kept: %s\n", kept)
	return err
}

// joinInts formats numeric die values separated by spaces.
func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, fmt.Sprintf("%d", value))
	}
	return strings.Join(parts, " ")
}

// joinHexDigits formats hex digit values separated by spaces.
func joinHexDigits(values []dice.HexDigit) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, value.String())
	}
	return strings.Join(parts, " ")
}
