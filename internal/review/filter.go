package review

import (
	"sort"

	"github.com/chris-regnier/namecheck/internal/sarif"
)

// getFilteredFindings returns findings filtered by current filter setting
func (m *ReviewModel) getFilteredFindings() []sarif.Result {
	if m.filter == FilterAll {
		return m.findings
	}
	var filtered []sarif.Result
	for _, finding := range m.findings {
		if m.matchesFilter(finding) {
			filtered = append(filtered, finding)
		}
	}
	return filtered
}

func (m *ReviewModel) matchesFilter(finding sarif.Result) bool {
	switch m.filter {
	case FilterErrors:
		return finding.Level == "error"
	case FilterWarnings:
		return finding.Level == "error" || finding.Level == "warning"
	case FilterOpen:
		id := findingID(finding)
		return !m.accepted[id] && !m.rejected[id]
	default:
		return true
	}
}

// getFilteredFiles returns files grouped by findings, filtered by current filter
func (m *ReviewModel) getFilteredFiles() map[string][]sarif.Result {
	filtered := make(map[string][]sarif.Result)
	for filePath, findings := range m.files {
		for _, finding := range findings {
			if m.matchesFilter(finding) {
				filtered[filePath] = append(filtered[filePath], finding)
			}
		}
	}
	return filtered
}

// getFileList returns the sorted paths of files with visible findings
func (m *ReviewModel) getFileList() []string {
	files := m.getFilteredFiles()
	list := make([]string, 0, len(files))
	for file := range files {
		list = append(list, file)
	}
	sort.Strings(list)
	return list
}

// current returns the selected finding
func (m *ReviewModel) current() (sarif.Result, bool) {
	filtered := m.getFilteredFindings()
	if m.currentFinding < 0 || m.currentFinding >= len(filtered) {
		return sarif.Result{}, false
	}
	return filtered[m.currentFinding], true
}

// currentFile returns the path of the selected finding
func (m *ReviewModel) currentFile() string {
	finding, ok := m.current()
	if !ok {
		return ""
	}
	return finding.URI()
}

// jumpFile selects the first finding of the file delta places away from the
// current one.
func (m *ReviewModel) jumpFile(delta int) {
	files := m.getFileList()
	if len(files) == 0 {
		return
	}
	idx := sort.SearchStrings(files, m.currentFile())
	idx = (idx + delta + len(files)) % len(files)
	target := files[idx]

	for i, finding := range m.getFilteredFindings() {
		if finding.URI() == target {
			m.currentFinding = i
			return
		}
	}
}
