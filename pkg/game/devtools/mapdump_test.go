package devtools

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roguekernel/pkg/engine/rng"
	"roguekernel/pkg/game/actors"
	"roguekernel/pkg/game/config"
	"roguekernel/pkg/game/generator"
)

func newTestWorld(t *testing.T) *actors.World {
	t.Helper()
	cfg := config.Default()
	cfg.Width, cfg.Height = 30, 16
	cfg.Monsters = 0
	r := rng.New(21)
	return actors.NewWorld(generator.BSP.Generate(cfg, r), cfg, r)
}

// section returns the lines between a header and the next blank line.
func section(out, header string) []string {
	_, rest, ok := strings.Cut(out, header+"\n")
	if !ok {
		return nil
	}
	body, _, _ := strings.Cut(rest, "\n\n")
	return strings.Split(body, "\n")
}

func TestDumpWorld(t *testing.T) {
	w := newTestWorld(t)
	var buf bytes.Buffer
	if err := DumpWorld(&buf, w); err != nil {
		t.Fatalf("DumpWorld: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "level_seed: 21\n") {
		t.Error("metadata missing the seed")
	}
	if !strings.HasSuffix(out, "=== END MAP DUMP ===\n") {
		t.Error("dump not terminated")
	}

	full := section(out, "--- Map (fully revealed; full layout) ---")
	if len(full) != 16 {
		t.Fatalf("full map has %d rows, want 16", len(full))
	}
	for i, row := range full {
		if len(row) != 30 {
			t.Errorf("row %d has %d columns, want 30", i, len(row))
		}
	}
	joined := strings.Join(full, "\n")
	if strings.Count(joined, "@") != 1 || strings.Count(joined, "E") != 1 {
		t.Errorf("want one player and one exit in:\n%s", joined)
	}

	revealed := section(out, "--- Map (explored cells only; unexplored = #) ---")
	if len(revealed) != 16 {
		t.Fatalf("revealed map has %d rows, want 16", len(revealed))
	}
	if !strings.Contains(strings.Join(revealed, ""), "*") {
		t.Error("revealed map shows nothing in view")
	}

	leaves := 0
	for _, l := range section(out, "--- BSP nodes (level order) ---") {
		if strings.HasSuffix(l, " leaf") {
			leaves++
		}
	}
	if leaves != len(w.Level.Rooms) {
		t.Errorf("%d leaves listed, want one per room (%d)", leaves, len(w.Level.Rooms))
	}
}

func TestDumpWorld_NoLevel(t *testing.T) {
	if err := DumpWorld(&bytes.Buffer{}, nil); !errors.Is(err, ErrNoLevel) {
		t.Errorf("DumpWorld(nil) = %v, want ErrNoLevel", err)
	}
	if err := DumpWorld(&bytes.Buffer{}, &actors.World{}); !errors.Is(err, ErrNoLevel) {
		t.Errorf("DumpWorld(empty world) = %v, want ErrNoLevel", err)
	}
}

func TestDumpWorldToFile(t *testing.T) {
	w := newTestWorld(t)
	path := filepath.Join(t.TempDir(), "dump.txt")

	got, err := DumpWorldToFile(w, path)
	if err != nil {
		t.Fatalf("DumpWorldToFile: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "=== MAP DUMP DEBUG") {
		t.Error("file does not start with the dump header")
	}
}
