// Package chunker splits extracted text into overlapping word windows for embedding.
package chunker

import (
	"errors"
	"strings"
)

// ErrInvalidConfig is returned when overlap >= size, which would make the
// window cursor stall and loop forever.
var ErrInvalidConfig = errors.New("chunker: overlap must be smaller than size")

// Chunker produces deterministic overlapping windows over whitespace-delimited
// word tokens. The word-window policy is the canonical chunking policy for the
// whole deployment; size and overlap come from configuration and are counted in
// words, not characters.
type Chunker struct {
	Size    int
	Overlap int
}

func New(size, overlap int) (*Chunker, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, ErrInvalidConfig
	}
	return &Chunker{Size: size, Overlap: overlap}, nil
}

// Chunk splits text into windows of Size words, each window starting
// Size-Overlap words after the previous one. A trailing partial window is kept
// when non-empty; blank windows are dropped. Identical input always yields an
// identical sequence.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.Size - c.Overlap
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + c.Size
		if end > len(words) {
			end = len(words)
		}

		window := strings.Join(words[start:end], " ")
		if strings.TrimSpace(window) != "" {
			chunks = append(chunks, window)
		}

		if end == len(words) {
			break
		}
	}
	return chunks
}
