// Package evaluator decides whether a run passes by evaluating its SARIF log
// against a Rego gate policy.
package evaluator

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/chris-regnier/namecheck/internal/sarif"
)

//go:embed default.rego
var defaultPolicy string

const query = "data.namecheck.gate.decision"

// Decisions a gate policy may return.
const (
	Pass = "pass"
	Fail = "fail"
)

// Verdict is the outcome of evaluating a run.
type Verdict struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
	// Results counts the SARIF results per level.
	Results map[string]int `json:"results,omitempty"`
}

// Passed reports whether the gate let the run through.
func (v *Verdict) Passed() bool {
	return v.Decision != Fail
}

type Evaluator struct {
	query rego.PreparedEvalQuery
}

// NewEvaluator creates an evaluator. If policyDir is empty, uses the default
// policy, which fails any run with results. Otherwise every .rego file in
// policyDir is loaded in place of the default.
func NewEvaluator(ctx context.Context, policyDir string) (*Evaluator, error) {
	opts := []func(*rego.Rego){rego.Query(query)}

	var custom []string
	if policyDir != "" {
		entries, err := os.ReadDir(policyDir)
		if err != nil {
			return nil, fmt.Errorf("reading policy dir: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".rego") {
				custom = append(custom, e.Name())
			}
		}
		sort.Strings(custom)
		for _, name := range custom {
			data, err := os.ReadFile(filepath.Join(policyDir, name))
			if err != nil {
				return nil, err
			}
			opts = append(opts, rego.Module(name, string(data)))
		}
	}
	if len(custom) == 0 {
		opts = append(opts, rego.Module("default.rego", defaultPolicy))
	}

	prepared, err := rego.New(opts...).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("preparing rego query: %w", err)
	}
	return &Evaluator{query: prepared}, nil
}

func (e *Evaluator) Evaluate(ctx context.Context, log *sarif.Log) (*Verdict, error) {
	data, err := json.Marshal(log)
	if err != nil {
		return nil, err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, err
	}

	rs, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("evaluating rego: %w", err)
	}

	decision := Pass
	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		d, ok := rs[0].Expressions[0].Value.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string, got %T", query, rs[0].Expressions[0].Value)
		}
		decision = d
	}
	if decision != Pass && decision != Fail {
		return nil, fmt.Errorf("%s must be %q or %q, got %q", query, Pass, Fail, decision)
	}

	counts := make(map[string]int)
	total := 0
	for _, run := range log.Runs {
		for _, r := range run.Results {
			counts[r.Level]++
			total++
		}
	}

	return &Verdict{
		Decision: decision,
		Reason:   fmt.Sprintf("%s with %d findings", decision, total),
		Results:  counts,
	}, nil
}
