package sarif

// Assemble creates a SARIF log from check results, dropping exact duplicates.
func Assemble(results []Result, rules []ReportingDescriptor, toolVersion string) *Log {
	return NewAssembler().
		WithToolVersion(toolVersion).
		AddRules(rules).
		AddResults(results).
		Build()
}

// dedup removes results that repeat an earlier result's rule, file and
// region. Distinct findings on the same line are kept. Order is preserved.
func dedup(results []Result) []Result {
	type key struct {
		ruleID string
		uri    string
		region Region
	}

	seen := make(map[key]bool, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		k := key{ruleID: r.RuleID, uri: r.URI(), region: r.Region()}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}
