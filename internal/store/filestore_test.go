package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chris-regnier/namecheck/internal/sarif"
)

func sampleLog() *sarif.Log {
	log := sarif.NewLog(sarif.ToolName, "0.1.0")
	log.Runs[0].Results = append(log.Runs[0].Results,
		sarif.Result{RuleID: "WPS111", Level: "warning", Message: sarif.Message{Text: "Found too short name: 'x'"}},
		sarif.Result{RuleID: "WPS111", Level: "warning", Message: sarif.Message{Text: "Found too short name: 'y'"}},
		sarif.Result{RuleID: "WPS114", Level: "warning", Message: sarif.Message{Text: "Found underscored number name pattern: 'a_1'"}},
	)
	return log
}

func TestFileStore_WriteAndReadSARIF(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	ctx := context.Background()

	id, err := fs.WriteSARIF(ctx, sampleLog())
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("expected non-empty ID")
	}

	loaded, err := fs.ReadSARIF(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Runs[0].Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(loaded.Runs[0].Results))
	}
	if loaded.Runs[0].Results[0].RuleID != "WPS111" {
		t.Errorf("expected ruleId 'WPS111', got %q", loaded.Runs[0].Results[0].RuleID)
	}
}

func TestFileStore_WriteAndReadSummary(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	ctx := context.Background()

	log := sampleLog()
	id, err := fs.WriteSARIF(ctx, log)
	if err != nil {
		t.Fatal(err)
	}

	if err := fs.WriteSummary(ctx, id, NewSummary(log, 4, 2)); err != nil {
		t.Fatal(err)
	}

	loaded, err := fs.ReadSummary(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Files != 4 || loaded.Findings != 3 || loaded.MinNameLength != 2 {
		t.Errorf("unexpected summary: %+v", loaded)
	}
	if loaded.ByRule["WPS111"] != 2 || loaded.ByRule["WPS114"] != 1 {
		t.Errorf("unexpected per-rule counts: %v", loaded.ByRule)
	}
}

func TestFileStore_ReadMissing(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	if _, err := fs.ReadSARIF(context.Background(), "nope"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestFileStore_List(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	ctx := context.Background()

	fs.WriteSARIF(ctx, sampleLog())
	fs.WriteSARIF(ctx, sampleLog())

	ids, err := fs.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 results, got %d", len(ids))
	}
	if ids[0] < ids[1] {
		t.Errorf("expected newest first, got %v", ids)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	fs := NewFileStore(t.TempDir() + "/missing")
	ids, err := fs.List(context.Background())
	if err != nil || ids != nil {
		t.Errorf("expected no runs and no error, got %v, %v", ids, err)
	}
}

func TestFileStore_ReviewPath(t *testing.T) {
	fs := NewFileStore("/tmp/results")
	if got := fs.ReviewPath("run-1"); got != filepath.Join("/tmp/results", "run-1", "review.json") {
		t.Errorf("unexpected review path %q", got)
	}
}
