// Package chunker splits long document content into bounded fragments so the
// relevance engine can score and return them independently.
package chunker

import "strings"

const (
	// Threshold is the content length above which a document is chunked
	Threshold = 2000

	// targetSize is the soft upper bound for one chunk
	targetSize = 500

	// overlap is roughly how many trailing characters of a chunk are
	// repeated at the start of the next one, aligned to sentences
	overlap = 50
)

// Split breaks content into chunks of about targetSize characters with a
// sentence-aligned overlap between consecutive chunks. Sentences are never
// split unless a single sentence exceeds the target size on its own.
func Split(content string) []string {
	sentences := sentences(content)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(current, " "))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, sent := range sentences {
		if currentLen > 0 && currentLen+len(sent) > targetSize {
			flush()
			current, currentLen = carryOverlap(current)
		}
		current = append(current, sent)
		currentLen += len(sent)
	}
	flush()

	return chunks
}

// carryOverlap keeps the trailing sentences of a finished chunk, up to the
// overlap budget, as the start of the next chunk.
func carryOverlap(current []string) ([]string, int) {
	var carry []string
	carryLen := 0
	for i := len(current) - 1; i >= 0 && carryLen < overlap; i-- {
		carry = append([]string{current[i]}, carry...)
		carryLen += len(current[i])
	}
	// Carrying everything would make no forward progress.
	if len(carry) == len(current) {
		return nil, 0
	}
	return carry, carryLen
}

// sentences splits content after sentence-ending punctuation. A run of
// whitespace-only text is dropped; everything else is preserved verbatim.
func sentences(content string) []string {
	var out []string
	start := 0
	for i, r := range content {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(content[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(content[start:]); s != "" {
		out = append(out, s)
	}
	return out
}
