package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"liquidityRange/internal/model"
)

func TestJsonlStoragePutAndLastPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "plans.jsonl")
	store := NewJsonlStorage(path)

	if _, found, err := store.LastPlan(""); err != nil || found {
		t.Fatalf("expected no plan in missing file, found=%v err=%v", found, err)
	}

	first := model.PositionPlan{Pool: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", TickLower: -60, TickUpper: 60, Amount0: "1.0"}
	second := model.PositionPlan{Pool: "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", TickLower: 100, TickUpper: 200, Amount0: "2.0"}
	third := model.PositionPlan{Pool: "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", TickLower: -120, TickUpper: 120, Amount0: "3.0"}

	if err := store.PutPlans([]model.PositionPlan{first, second}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.PutPlans([]model.PositionPlan{third}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.PutPlans(nil); err != nil {
		t.Fatalf("put empty: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 3 {
		t.Fatalf("expected 3 lines, got %d", lines)
	}

	last, found, err := store.LastPlan("")
	if err != nil || !found {
		t.Fatalf("last plan: found=%v err=%v", found, err)
	}
	if last.Amount0 != "3.0" {
		t.Fatalf("unexpected last plan: %+v", last)
	}

	last, found, err = store.LastPlan(second.Pool)
	if err != nil || !found {
		t.Fatalf("last plan for pool: found=%v err=%v", found, err)
	}
	if last.TickLower != 100 || last.TickUpper != 200 {
		t.Fatalf("unexpected plan for pool: %+v", last)
	}

	last, found, err = store.LastPlan(first.Pool)
	if err != nil || !found {
		t.Fatalf("last plan for mixed case pool: found=%v err=%v", found, err)
	}
	if last.Amount0 != "3.0" {
		t.Fatalf("expected case-insensitive pool match, got %+v", last)
	}

	if _, found, _ := store.LastPlan("0xcccccccccccccccccccccccccccccccccccccccc"); found {
		t.Fatalf("expected no plan for unknown pool")
	}
}

func TestJsonlStorageLastPlanBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.jsonl")
	if err := os.WriteFile(path, []byte("{\"pool\":\"0x1\"}\nnot json\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := NewJsonlStorage(path).LastPlan(""); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}
}
