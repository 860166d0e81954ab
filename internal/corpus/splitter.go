package corpus

import "fmt"

// Splitter splits documents into overlapping chunks of bounded size.
// Sizes are measured in characters (runes), matching how the corpus texts
// are authored. Splitting is deterministic: the same documents and
// parameters always produce the same chunk sequence.
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter creates a splitter. overlap must be smaller than chunkSize.
func NewSplitter(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, chunk size), got %d", overlap)
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

// Split splits every document into chunks. Consecutive chunks from the same
// document share overlap characters so that context survives the boundary.
// Chunk indices run over the whole corpus, in document order.
func (s *Splitter) Split(docs []Document) []Chunk {
	var chunks []Chunk
	for _, doc := range docs {
		for _, text := range s.splitText(doc.Text) {
			chunks = append(chunks, Chunk{
				SourceID: doc.ID,
				Index:    len(chunks),
				Text:     text,
			})
		}
	}
	return chunks
}

func (s *Splitter) splitText(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= s.chunkSize {
		return []string{text}
	}

	step := s.chunkSize - s.overlap
	var parts []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return parts
}
