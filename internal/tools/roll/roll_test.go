package roll

import (
	"bytes"
	"flag"
	"strconv"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	want := Config{Sides: 6, Count: 1, Policy: "best", Keep: 1}
	if cfg != want {
		t.Fatalf("expected defaults %+v, got %+v", want, cfg)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	args := []string{"-sides", "20", "-count", "4", "-policy", "worst", "-keep", "2", "-seed", "9", "-hex"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	want := Config{Sides: 20, Count: 4, Policy: "worst", Keep: 2, Seed: 9, Hex: true}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestParseConfigBadArgs(t *testing.T) {
	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	if _, err := ParseConfig(fs, []string{"-invalid"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestRunNilOutput(t *testing.T) {
	if err := Run(Config{Sides: 6, Count: 1, Policy: "best", Keep: 1}, nil); err == nil {
		t.Fatal("expected error for nil output")
	}
}

func TestRunRejectsUnknownPolicy(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Run(Config{Sides: 6, Count: 1, Policy: "middle", Keep: 1}, buf); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

// TestRunWritesRolledAndKept ensures the output lists the seed, the pool,
// and the kept values, and is deterministic for a fixed seed.
func TestRunWritesRolledAndKept(t *testing.T) {
	cfg := Config{Sides: 6, Count: 5, Policy: "best", Keep: 2, Seed: 11}

	first := &bytes.Buffer{}
	if err := Run(cfg, first); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(first.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 output lines, got %d: %q", len(lines), first.String())
	}
	if lines[0] != "seed: 11" {
		t.Fatalf("expected seed line, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "rolled: ") {
		t.Fatalf("expected rolled line, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "kept: ") {
		t.Fatalf("expected kept line, got %q", lines[2])
	}
	if got := len(strings.Fields(strings.TrimPrefix(lines[1], "rolled:"))); got != 5 {
		t.Fatalf("expected 5 rolled values, got %d", got)
	}
	if got := len(strings.Fields(strings.TrimPrefix(lines[2], "kept:"))); got != 2 {
		t.Fatalf("expected 2 kept values, got %d", got)
	}

	second := &bytes.Buffer{}
	if err := Run(cfg, second); err != nil {
		t.Fatalf("run repeat: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("expected identical output for same seed, got %q and %q", first.String(), second.String())
	}
}

// TestRunResolvesAbsentSeed ensures a zero seed draws a random one, prints
// it, and that re-running with the printed seed replays the outcome.
func TestRunResolvesAbsentSeed(t *testing.T) {
	cfg := Config{Sides: 6, Count: 5, Policy: "best", Keep: 2}

	first := &bytes.Buffer{}
	if err := Run(cfg, first); err != nil {
		t.Fatalf("run: %v", err)
	}
	firstSeed := parseSeedLine(t, first.String())
	if firstSeed == 0 {
		t.Fatalf("expected a resolved seed, got output %q", first.String())
	}

	second := &bytes.Buffer{}
	if err := Run(cfg, second); err != nil {
		t.Fatalf("run repeat: %v", err)
	}
	if parseSeedLine(t, second.String()) == firstSeed {
		t.Fatalf("expected distinct seeds for unseeded runs, got %d twice", firstSeed)
	}

	replay := &bytes.Buffer{}
	cfg.Seed = firstSeed
	if err := Run(cfg, replay); err != nil {
		t.Fatalf("run replay: %v", err)
	}
	if replay.String() != first.String() {
		t.Fatalf("expected replay %q with seed %d, got %q", first.String(), firstSeed, replay.String())
	}
}

// parseSeedLine extracts the seed from the first output line.
func parseSeedLine(t *testing.T, output string) int64 {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "seed: ") {
		t.Fatalf("expected seed line, got %q", output)
	}
	seed, err := strconv.ParseInt(strings.TrimPrefix(lines[0], "seed: "), 10, 64)
	if err != nil {
		t.Fatalf("parse seed from %q: %v", lines[0], err)
	}
	return seed
}

// TestRunHexKeepsLetterOverNumerals ensures letter digits outrank numerals
// under the best policy.
func TestRunHexKeepsLetterOverNumerals(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := Config{Count: 6, Policy: "best", Keep: 1, Seed: 3, Hex: true}
	if err := Run(cfg, buf); err != nil {
		t.Fatalf("run hex: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 output lines, got %q", buf.String())
	}
	rolled := strings.Fields(strings.TrimPrefix(lines[1], "rolled:"))
	kept := strings.Fields(strings.TrimPrefix(lines[2], "kept:"))
	if len(rolled) != 6 || len(kept) != 1 {
		t.Fatalf("expected 6 rolled and 1 kept, got %d and %d", len(rolled), len(kept))
	}

	hasLetter := false
	for _, digit := range rolled {
		if digit >= "A" && digit <= "F" {
			hasLetter = true
			break
		}
	}
	if hasLetter && !(kept[0] >= "A" && kept[0] <= "F") {
		t.Fatalf("expected a letter digit to win, rolled %v kept %v", rolled, kept)
	}
}

func TestRunRejectsNegativeKeep(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Run(Config{Sides: 6, Count: 3, Policy: "best", Keep: -1}, buf); err == nil {
		t.Fatal("expected error for negative keep")
	}
}
