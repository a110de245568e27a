package sarif

// Assembler provides a builder pattern for constructing SARIF logs
type Assembler struct {
	results     []Result
	rules       []ReportingDescriptor
	toolVersion string
	invocation  *Invocation
	properties  map[string]any
}

// NewAssembler creates a new Assembler with default values
func NewAssembler() *Assembler {
	return &Assembler{
		results:     []Result{},
		rules:       []ReportingDescriptor{},
		toolVersion: "dev",
	}
}

// AddResults adds SARIF results to the assembler
func (a *Assembler) AddResults(results []Result) *Assembler {
	a.results = append(a.results, results...)
	return a
}

// AddRules adds reporting descriptors (rules) to the assembler
func (a *Assembler) AddRules(rules []ReportingDescriptor) *Assembler {
	a.rules = append(a.rules, rules...)
	return a
}

// WithToolVersion sets the driver version
func (a *Assembler) WithToolVersion(version string) *Assembler {
	if version != "" {
		a.toolVersion = version
	}
	return a
}

// WithInvocation records how the run was started
func (a *Assembler) WithInvocation(inv Invocation) *Assembler {
	a.invocation = &inv
	return a
}

// WithProperty sets a run-level property
func (a *Assembler) WithProperty(name string, value any) *Assembler {
	if a.properties == nil {
		a.properties = make(map[string]any)
	}
	a.properties[name] = value
	return a
}

// Build constructs the final SARIF log
func (a *Assembler) Build() *Log {
	log := NewLog(ToolName, a.toolVersion)
	run := &log.Runs[0]
	run.Tool.Driver.Rules = a.rules
	run.Results = dedup(a.results)
	if a.invocation != nil {
		run.Invocations = []Invocation{*a.invocation}
	}
	if len(a.properties) > 0 {
		run.Properties = a.properties
	}
	return log
}
