package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/chris-regnier/namecheck/internal/sarif"
)

var storeTracer = otel.Tracer("github.com/chris-regnier/namecheck/internal/store")

var _ Store = (*FileStore)(nil)

// FileStore keeps one directory per run, named so that lexical order is
// chronological order.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) generateID() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	ts := time.Now().UTC().Format("2006-01-02T15-04-05.000000000Z")
	return fmt.Sprintf("%s-%s", ts, hex.EncodeToString(b))
}

func (s *FileStore) resultDir(id string) string {
	return filepath.Join(s.dir, id)
}

// ReviewPath is where the interactive review of a run keeps its decisions.
func (s *FileStore) ReviewPath(id string) string {
	return filepath.Join(s.resultDir(id), "review.json")
}

func (s *FileStore) WriteSARIF(ctx context.Context, doc *sarif.Log) (string, error) {
	ctx, span := storeTracer.Start(ctx, "write sarif")
	defer span.End()

	id := s.generateID()
	dir := s.resultDir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "sarif.json"), data, 0644); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	resultCount := 0
	if len(doc.Runs) > 0 {
		resultCount = len(doc.Runs[0].Results)
	}
	span.SetAttributes(
		attribute.String("namecheck.store.id", id),
		attribute.Int("namecheck.store.result_count", resultCount),
	)
	return id, nil
}

func (s *FileStore) WriteSummary(ctx context.Context, sarifID string, summary *Summary) error {
	_, span := storeTracer.Start(ctx, "write summary")
	defer span.End()

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := os.WriteFile(filepath.Join(s.resultDir(sarifID), "summary.json"), data, 0644); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(
		attribute.String("namecheck.store.id", sarifID),
		attribute.Int("namecheck.store.findings", summary.Findings),
	)
	return nil
}

func (s *FileStore) ReadSARIF(ctx context.Context, id string) (*sarif.Log, error) {
	data, err := os.ReadFile(filepath.Join(s.resultDir(id), "sarif.json"))
	if err != nil {
		return nil, err
	}
	var log sarif.Log
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *FileStore) ReadSummary(ctx context.Context, sarifID string) (*Summary, error) {
	data, err := os.ReadFile(filepath.Join(s.resultDir(sarifID), "summary.json"))
	if err != nil {
		return nil, err
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// List returns run IDs, newest first.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}
