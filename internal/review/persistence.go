package review

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ReviewState represents persisted review state
type ReviewState struct {
	RunID      string                   `json:"run_id"`
	ReviewedAt string                   `json:"reviewed_at"`
	Reviewer   string                   `json:"reviewer"`
	Findings   map[string]FindingReview `json:"findings"`
}

// FindingReview represents review status for a single finding
type FindingReview struct {
	Status string `json:"status"` // "accepted" or "rejected"
}

// SaveReviewState saves the review model state to a JSON file
func SaveReviewState(model *ReviewModel, runID string, filePath string) error {
	state := ReviewState{
		RunID:      runID,
		ReviewedAt: time.Now().UTC().Format(time.RFC3339),
		Reviewer:   reviewer(),
		Findings:   make(map[string]FindingReview),
	}

	for id := range model.accepted {
		state.Findings[id] = FindingReview{Status: StatusAccepted}
	}
	for id := range model.rejected {
		state.Findings[id] = FindingReview{Status: StatusRejected}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

// LoadReviewState loads review state from a JSON file
func LoadReviewState(filePath string) (*ReviewState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var state ReviewState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

func (m *ReviewModel) applyState(state *ReviewState) {
	for id, review := range state.Findings {
		switch review.Status {
		case StatusAccepted:
			m.accepted[id] = true
		case StatusRejected:
			m.rejected[id] = true
		}
	}
}

func reviewer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}
