package ingest

import (
	"strings"

	"github.com/adiwiguna/chatpdf/internal/domain"
)

// Splitter cuts page text into overlapping chunks. Overlap keeps context
// that straddles a chunk boundary retrievable from both sides.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewSplitter creates a splitter, falling back to the standard 1000/200
// window when given non-positive values.
func NewSplitter(size, overlap int) *Splitter {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = 200
	}
	return &Splitter{ChunkSize: size, ChunkOverlap: overlap}
}

// Split chunks every page, tagging each chunk with its file and page so the
// chat service can cite sources.
func (s *Splitter) Split(pages []Page) []domain.Chunk {
	var chunks []domain.Chunk
	for _, page := range pages {
		for _, text := range s.splitText(page.Content) {
			chunks = append(chunks, domain.Chunk{
				File:    page.File,
				Page:    page.Number,
				Content: text,
			})
		}
	}
	return chunks
}

func (s *Splitter) splitText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.ChunkSize {
		return []string{text}
	}

	step := s.ChunkSize - s.ChunkOverlap
	var parts []string
	for start := 0; start < len(runes); start += step {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		part := strings.TrimSpace(string(runes[start:end]))
		if part != "" {
			parts = append(parts, part)
		}
		if end == len(runes) {
			break
		}
	}
	return parts
}
