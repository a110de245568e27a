package analyzer

import (
	"github.com/chris-regnier/namecheck/internal/astcheck"
	"github.com/chris-regnier/namecheck/internal/sarif"
)

// ToSARIF converts findings into SARIF results, preserving their order.
func ToSARIF(findings []Finding) []sarif.Result {
	results := make([]sarif.Result, 0, len(findings))
	for _, f := range findings {
		results = append(results, sarif.Result{
			RuleID:  f.Code,
			Level:   f.Level,
			Message: sarif.Message{Text: f.Message},
			Locations: []sarif.Location{{
				PhysicalLocation: sarif.PhysicalLocation{
					ArtifactLocation: sarif.ArtifactLocation{URI: f.Path},
					Region: sarif.Region{
						StartLine:   f.StartLine,
						StartColumn: f.StartColumn,
						EndLine:     f.EndLine,
						EndColumn:   f.EndColumn,
						ByteOffset:  int(f.Range.Start),
						ByteLength:  int(f.Range.End - f.Range.Start),
					},
				},
			}},
			Properties: map[string]any{
				"namecheck/check":   f.Check,
				"namecheck/name":    f.Name,
				"namecheck/binding": f.Binding,
			},
		})
	}
	return results
}

// Rules describes checks as SARIF reporting descriptors, with their
// markdown documentation as help text.
func Rules(checks []astcheck.Check, levels map[string]string) []sarif.ReportingDescriptor {
	rules := make([]sarif.ReportingDescriptor, 0, len(checks))
	for _, c := range checks {
		level := levels[c.Name()]
		if level == "" {
			level = DefaultLevel
		}
		rd := sarif.ReportingDescriptor{
			ID:               c.Code(),
			Name:             c.Name(),
			ShortDescription: sarif.Message{Text: c.Description()},
			DefaultConfig:    &sarif.ReportingConfiguration{Level: level},
		}
		if doc, err := astcheck.Documentation(c); err == nil {
			rd.Help = &sarif.Message{Text: c.Description(), Markdown: doc}
		}
		rules = append(rules, rd)
	}
	return rules
}
