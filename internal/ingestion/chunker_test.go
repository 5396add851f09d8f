package ingestion

import (
	"fmt"
	"strings"
	"testing"
)

// sentence builds an n-word sentence ending with a period.
func sentence(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("từ%d", i)
	}
	return strings.Join(words, " ") + "."
}

func TestChunkText_Empty(t *testing.T) {
	c := NewChunker(10, 200)

	if chunks := c.ChunkText(""); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty text, got %d", len(chunks))
	}
	if chunks := c.ChunkText("   \n\n  "); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for whitespace text, got %d", len(chunks))
	}
}

func TestChunkText_TinyDocumentSingleChunk(t *testing.T) {
	c := NewChunker(10, 200)

	chunks := c.ChunkText("Xin chào Việt Nam")

	if len(chunks) != 1 {
		t.Fatalf("expected exactly 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "Xin chào Việt Nam" {
		t.Errorf("expected whole document in the chunk, got %q", chunks[0].Content)
	}
	if chunks[0].WordCount != 4 {
		t.Errorf("expected word count 4, got %d", chunks[0].WordCount)
	}
}

func TestChunkText_BoundsHold(t *testing.T) {
	c := NewChunker(10, 200)

	// Three paragraphs: one huge, one normal, one tiny trailing fragment.
	text := strings.Join([]string{
		sentence(150) + " " + sentence(120) + " " + sentence(90),
		sentence(40),
		sentence(3),
	}, "\n\n")

	chunks := c.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for _, chunk := range chunks {
		if chunk.WordCount < 10 || chunk.WordCount > 200 {
			t.Errorf("chunk %d word count %d outside [10,200]", chunk.Index, chunk.WordCount)
		}
	}
}

func TestChunkText_OrdinalsStrictlyIncreasing(t *testing.T) {
	c := NewChunker(10, 200)

	text := sentence(180) + " " + sentence(180) + " " + sentence(180)
	chunks := c.ChunkText(text)

	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("expected ordinal %d at position %d, got %d", i, i, chunk.Index)
		}
	}
}

func TestChunkText_OverlongSentenceHardSplit(t *testing.T) {
	c := NewChunker(10, 200)

	chunks := c.ChunkText(sentence(450))

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for a 451-word sentence, got %d", len(chunks))
	}
	for _, chunk := range chunks {
		if chunk.WordCount > 200 {
			t.Errorf("chunk %d exceeds max: %d words", chunk.Index, chunk.WordCount)
		}
	}
}

func TestChunkText_TrailingFragmentMerged(t *testing.T) {
	c := NewChunker(10, 200)

	// Near-max sentence followed by a tiny fragment: a plain merge would
	// exceed the max, so words must shift instead.
	text := sentence(199) + " " + sentence(3)
	chunks := c.ChunkText(text)

	for _, chunk := range chunks {
		if chunk.WordCount < 10 || chunk.WordCount > 200 {
			t.Errorf("chunk %d word count %d outside [10,200]", chunk.Index, chunk.WordCount)
		}
	}
}

func TestChunkText_Deterministic(t *testing.T) {
	c := NewChunker(10, 200)
	text := strings.Join([]string{sentence(250), sentence(30), sentence(5)}, "\n\n")

	first := c.ChunkText(text)
	second := c.ChunkText(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunkText_NoWordLost(t *testing.T) {
	c := NewChunker(10, 200)
	text := strings.Join([]string{sentence(250), sentence(30), sentence(5)}, "\n\n")

	total := 0
	for _, chunk := range c.ChunkText(text) {
		total += chunk.WordCount
	}

	want := len(strings.Fields(text))
	if total != want {
		t.Errorf("expected %d words across chunks, got %d", want, total)
	}
}
