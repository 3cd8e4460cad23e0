package bot

import (
	"strings"
	"testing"

	"fleetfuel/internal/service"
)

func TestSplitMessage(t *testing.T) {
	t.Run("short text stays whole", func(t *testing.T) {
		parts := splitMessage("one\ntwo\nthree", maxMessageLen)
		if len(parts) != 1 || parts[0] != "one\ntwo\nthree" {
			t.Fatalf("got %q", parts)
		}
	})

	t.Run("splits only at line boundaries", func(t *testing.T) {
		text := strings.Repeat("0123456789\n", 10)
		parts := splitMessage(strings.TrimSuffix(text, "\n"), 34)
		if len(parts) < 2 {
			t.Fatalf("expected a split, got %d part(s)", len(parts))
		}
		var rejoined []string
		for _, p := range parts {
			if len(p) > 34 {
				t.Fatalf("chunk over limit: %d chars", len(p))
			}
			for _, line := range strings.Split(p, "\n") {
				if line != "0123456789" {
					t.Fatalf("line cut mid-way: %q", line)
				}
			}
			rejoined = append(rejoined, p)
		}
		if strings.Join(rejoined, "\n") != strings.TrimSuffix(text, "\n") {
			t.Fatalf("content lost across chunks")
		}
	})

	t.Run("oversized line becomes its own chunk", func(t *testing.T) {
		long := strings.Repeat("x", 50)
		parts := splitMessage("a\n"+long+"\nb", 10)
		if len(parts) != 3 || parts[1] != long {
			t.Fatalf("got %q", parts)
		}
	})
}

func TestRenderObjectLines(t *testing.T) {
	got := renderObjectLines(service.ObjectReport{
		ObjectID:     "US0001",
		EngineHours:  700.5,
		FuelCapacity: 300,
		CurrentFuel:  50,
		AmountToFull: 250,
		UsagePerHour: 5,
	})
	for _, want := range []string{"US0001", "700.5", "50.0 / 300.0", "250.0", "5.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderShortage_Empty(t *testing.T) {
	got := renderShortage(service.ShortageReport{})
	if !strings.Contains(got, "full") {
		t.Fatalf("expected all-full message, got %q", got)
	}
}

func TestRenderSaved(t *testing.T) {
	got := renderSaved(service.ReadingResult{
		ObjectID: "US0001", NewHours: 710, FuelAdded: 20, FullTank: true, CurrentFuel: 300,
	})
	for _, want := range []string{"US0001", "710", "20", "Full tank: yes"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}
