package pyast

import (
	"sort"
	"unicode/utf8"
)

// LineIndex maps byte offsets to 1-based line and column numbers.
// Columns count runes, not bytes.
type LineIndex struct {
	source     []byte
	lineStarts []int
}

// NewLineIndex indexes the line starts of source.
func NewLineIndex(source []byte) *LineIndex {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{source: source, lineStarts: starts}
}

// Locate returns the line and column of offset. Offsets past the end of the
// source are clamped to it.
func (li *LineIndex) Locate(offset uint32) (line, column int) {
	off := int(offset)
	if off > len(li.source) {
		off = len(li.source)
	}
	idx := sort.Search(len(li.lineStarts), func(i int) bool { return li.lineStarts[i] > off }) - 1
	start := li.lineStarts[idx]
	return idx + 1, utf8.RuneCount(li.source[start:off]) + 1
}

// Line returns the text of the 1-based line without its trailing newline.
func (li *LineIndex) Line(line int) string {
	if line < 1 || line > len(li.lineStarts) {
		return ""
	}
	start := li.lineStarts[line-1]
	end := len(li.source)
	if line < len(li.lineStarts) {
		end = li.lineStarts[line] - 1
	}
	if end > start && li.source[end-1] == '\r' {
		end--
	}
	return string(li.source[start:end])
}

// LineCount returns the number of lines in the source.
func (li *LineIndex) LineCount() int {
	return len(li.lineStarts)
}
