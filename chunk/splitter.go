package chunk

import "strings"

const (
	// DefaultChunkSize is the default maximum passage length in bytes.
	DefaultChunkSize = 5000

	fence          = "```"
	paragraphBreak = "\n\n"
)

// Split divides text into an ordered sequence of passages of at most
// chunkSize bytes, except that a fenced code block is never cut mid-block:
// when a fence opens inside the window the boundary extends past chunkSize
// to the closing fence. Otherwise the cut falls on the last blank-line
// paragraph break inside the window, or exactly at chunkSize when the window
// contains no break at all.
//
// Every emitted passage is trimmed of surrounding whitespace and is never
// empty. Empty input yields an empty sequence. The split is deterministic:
// identical input always produces identical passages, which keeps re-runs
// idempotent at the storage layer.
func Split(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var chunks []string
	start := 0

	for start < len(text) {
		// Remainder fits: emit it and stop.
		if len(text)-start <= chunkSize {
			chunks = appendTrimmed(chunks, text[start:])
			break
		}

		// Prefer the last paragraph break in the window; fall back to a
		// hard cut at chunkSize, possibly mid-word.
		end := start + chunkSize
		if brk := strings.LastIndex(text[start:end], paragraphBreak); brk > 0 {
			end = start + brk
		}

		// An odd fence count means the cut landed inside a fenced code
		// block. Extend the boundary to the closing fence, even when that
		// overflows chunkSize. An unclosed fence reverts to the hard cut.
		if strings.Count(text[start:end], fence)%2 == 1 {
			if rel := strings.Index(text[end:], fence); rel >= 0 {
				end += rel + len(fence)
			} else {
				end = start + chunkSize
			}
		}

		chunks = appendTrimmed(chunks, text[start:end])
		start = end
	}

	return chunks
}

// appendTrimmed appends the trimmed chunk, dropping chunks that are empty
// after trimming (whitespace-only slices between boundaries).
func appendTrimmed(chunks []string, s string) []string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return append(chunks, trimmed)
	}
	return chunks
}
