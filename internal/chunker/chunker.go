// Package chunker splits rendered entity text into overlapping windows
// sized for embedding. It is format-agnostic: it operates on the
// markdown rendering of a record (metadata header plus fenced content),
// so a query matching the header can retrieve a chunk whose literal
// content sits far from the match.
package chunker

// Split cuts text into consecutive rune windows of length size advancing
// by size-overlap. Text no longer than size is returned unchanged as a
// single segment; the final window may be shorter than size.
//
// Callers must ensure 0 <= overlap < size (config.Validate does); an
// overlap >= size would never advance the window.
func Split(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	chunks := make([]string, 0, (len(runes)+step-1)/step)
	for i := 0; i < len(runes); i += step {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
