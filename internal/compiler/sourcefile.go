package compiler

import "sort"

// SourceFile is a parsed source unit. FileName always uses forward
// slashes: the module resolver compares file names textually, so the
// separator convention must not vary with the host OS.
type SourceFile struct {
	FileName        string
	Text            string
	LanguageVersion ScriptTarget

	lineStarts []int
}

// NewSourceFile builds a SourceFile from raw text, indexing line
// starts for position lookup.
func NewSourceFile(fileName, text string, languageVersion ScriptTarget) *SourceFile {
	return &SourceFile{
		FileName:        fileName,
		Text:            text,
		LanguageVersion: languageVersion,
		lineStarts:      computeLineStarts(text),
	}
}

// LineCount returns the number of lines in the file.
func (s *SourceFile) LineCount() int {
	return len(s.lineStarts)
}

// PositionFor converts a byte offset into a zero-based line and column
// pair. Offsets past the end of the text map to the last line.
func (s *SourceFile) PositionFor(offset int) (line, column int) {
	if offset < 0 {
		return 0, 0
	}
	line = sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return line, offset - s.lineStarts[line]
}

func computeLineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}
