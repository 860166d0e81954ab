package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitterValidation(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		wantErr   bool
	}{
		{"valid", 100, 20, false},
		{"zero overlap", 100, 0, false},
		{"zero chunk size", 0, 0, true},
		{"negative overlap", 100, -1, true},
		{"overlap equals chunk size", 100, 100, true},
		{"overlap exceeds chunk size", 100, 150, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSplitter(tt.chunkSize, tt.overlap)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitDeterministic(t *testing.T) {
	splitter, err := NewSplitter(50, 10)
	require.NoError(t, err)

	docs := []Document{
		{ID: "a", Text: strings.Repeat("la declaración jurada se presenta en enero. ", 8)},
		{ID: "b", Text: "texto corto"},
	}

	first := splitter.Split(docs)
	second := splitter.Split(docs)
	assert.Equal(t, first, second)
}

func TestSplitBoundsAndOrder(t *testing.T) {
	splitter, err := NewSplitter(40, 8)
	require.NoError(t, err)

	docs := []Document{
		{ID: "doc-1", Text: strings.Repeat("impuestos y contribuciones de la ONAT. ", 5)},
		{ID: "doc-2", Text: "vector fiscal"},
	}

	chunks := splitter.Split(docs)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk.Text)), 40, "chunk %d exceeds the size bound", i)
		assert.Equal(t, i, chunk.Index)
	}

	// Document order is preserved: every doc-1 chunk precedes doc-2's.
	lastA, firstB := -1, len(chunks)
	for i, chunk := range chunks {
		if chunk.SourceID == "doc-1" {
			lastA = i
		}
		if chunk.SourceID == "doc-2" && i < firstB {
			firstB = i
		}
	}
	assert.Less(t, lastA, firstB)
}

func TestSplitOverlapCarriesContext(t *testing.T) {
	splitter, err := NewSplitter(10, 4)
	require.NoError(t, err)

	text := "abcdefghijklmnopqrstuvwxyz"
	chunks := splitter.Split([]Document{{ID: "alpha", Text: text}})
	require.Greater(t, len(chunks), 1)

	for i := 0; i < len(chunks)-1; i++ {
		cur := []rune(chunks[i].Text)
		next := []rune(chunks[i+1].Text)
		require.GreaterOrEqual(t, len(cur), 4)
		tail := string(cur[len(cur)-4:])
		head := string(next[:minInt(4, len(next))])
		assert.Equal(t, tail, head[:len(tail)])
	}
}

func TestSplitSmallDocumentIsSingleChunk(t *testing.T) {
	splitter, err := NewSplitter(1000, 200)
	require.NoError(t, err)

	chunks := splitter.Split([]Document{{ID: "x", Text: "corto"}})
	require.Len(t, chunks, 1)
	assert.Equal(t, "corto", chunks[0].Text)
}

func TestSplitEmptyDocumentYieldsNothing(t *testing.T) {
	splitter, err := NewSplitter(100, 10)
	require.NoError(t, err)
	assert.Empty(t, splitter.Split([]Document{{ID: "vacío", Text: ""}}))
}

func TestSeedContainsKeyDocuments(t *testing.T) {
	docs := Seed()
	require.NotEmpty(t, docs)

	var foundBonificaciones, foundVectorFiscal bool
	for _, doc := range docs {
		if strings.Contains(doc.Text, "La ONAT ofrece bonificaciones") {
			foundBonificaciones = true
		}
		if strings.Contains(doc.Text, "El Vector Fiscal es un documento emitido por la ONAT") {
			foundVectorFiscal = true
		}
	}
	assert.True(t, foundBonificaciones)
	assert.True(t, foundVectorFiscal)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
