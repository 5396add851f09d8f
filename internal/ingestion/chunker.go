package ingestion

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chunker splits document text into passages bounded by word count.
// Vietnamese writes one syllable per whitespace-separated token, so the
// bounds are counted in tokens.
type Chunker struct {
	MinWords int
	MaxWords int
}

type Chunk struct {
	Index     int
	Content   string
	WordCount int
	CharCount int
}

func NewChunker(minWords, maxWords int) *Chunker {
	return &Chunker{
		MinWords: minWords,
		MaxWords: maxWords,
	}
}

// candidate is a chunk before ordinals are assigned.
type candidate struct {
	words []string
}

// ChunkText converts cleaned document text into an ordered chunk sequence.
// Splitting goes paragraph by paragraph; an over-long paragraph splits at
// sentence boundaries, and a sentence longer than the maximum hard-splits at
// the word limit. A trailing fragment below the minimum merges with its
// neighbour, rebalancing words when a plain merge would blow the maximum.
// Empty text yields no chunks; text shorter than the minimum yields exactly
// one chunk with the whole document.
func (c *Chunker) ChunkText(text string) []Chunk {
	if c.MinWords <= 0 || c.MaxWords <= c.MinWords {
		return []Chunk{}
	}

	if strings.TrimSpace(text) == "" {
		return []Chunk{}
	}

	var candidates []candidate
	for _, paragraph := range splitParagraphs(text) {
		words := strings.Fields(paragraph)
		if len(words) <= c.MaxWords {
			candidates = append(candidates, candidate{words: words})
			continue
		}

		for _, sentenceGroup := range c.packSentences(splitSentences(paragraph)) {
			candidates = append(candidates, candidate{words: sentenceGroup})
		}
	}

	candidates = c.mergeShort(candidates)

	chunks := make([]Chunk, 0, len(candidates))
	for i, cand := range candidates {
		content := strings.Join(cand.words, " ")
		chunks = append(chunks, Chunk{
			Index:     i,
			Content:   content,
			WordCount: len(cand.words),
			CharCount: utf8.RuneCountInString(content),
		})
	}

	return chunks
}

// packSentences groups sentences greedily so each group stays at or under
// the word maximum. A single over-long sentence is hard-split at the limit.
func (c *Chunker) packSentences(sentences []string) [][]string {
	var groups [][]string
	var buffer []string

	flush := func() {
		if len(buffer) > 0 {
			groups = append(groups, buffer)
			buffer = nil
		}
	}

	for _, sentence := range sentences {
		words := strings.Fields(sentence)

		if len(words) > c.MaxWords {
			flush()
			for start := 0; start < len(words); start += c.MaxWords {
				end := min(start+c.MaxWords, len(words))
				groups = append(groups, words[start:end])
			}
			continue
		}

		if len(buffer)+len(words) > c.MaxWords {
			flush()
		}
		buffer = append(buffer, words...)
	}
	flush()

	return groups
}

// mergeShort folds candidates below the word minimum into a neighbour.
// When the combined size would exceed the maximum, words shift from the
// larger neighbour instead so both sides land inside the bounds.
func (c *Chunker) mergeShort(candidates []candidate) []candidate {
	for i := 0; i < len(candidates); i++ {
		if len(candidates) <= 1 {
			break
		}
		if len(candidates[i].words) >= c.MinWords {
			continue
		}

		if i > 0 {
			prev := &candidates[i-1]
			cur := candidates[i]
			if len(prev.words)+len(cur.words) <= c.MaxWords {
				prev.words = append(prev.words, cur.words...)
				candidates = append(candidates[:i], candidates[i+1:]...)
				i -= 2 // re-check the merged candidate
				continue
			}
			need := c.MinWords - len(cur.words)
			if spare := len(prev.words) - c.MinWords; need > spare {
				need = spare
			}
			if need > 0 {
				moved := prev.words[len(prev.words)-need:]
				prev.words = prev.words[:len(prev.words)-need]
				candidates[i].words = append(append([]string{}, moved...), cur.words...)
			}
			continue
		}

		// No previous chunk; fold forward into the next one.
		next := candidates[i+1]
		if len(candidates[i].words)+len(next.words) <= c.MaxWords {
			candidates[i].words = append(candidates[i].words, next.words...)
			candidates = append(candidates[:i+1], candidates[i+2:]...)
			i--
			continue
		}
		need := c.MinWords - len(candidates[i].words)
		if spare := len(next.words) - c.MinWords; need > spare {
			need = spare
		}
		if need > 0 {
			candidates[i].words = append(candidates[i].words, next.words[:need]...)
			candidates[i+1].words = next.words[need:]
		}
	}

	return candidates
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range paragraphBreak.Split(strings.ReplaceAll(text, "\r\n", "\n"), -1) {
		if strings.TrimSpace(block) != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

// splitSentences cuts at terminal punctuation followed by whitespace.
// Good enough for cleaned prose; abbreviation handling is out of scope.
func splitSentences(paragraph string) []string {
	var sentences []string
	runes := []rune(paragraph)
	start := 0

	for i, r := range runes {
		if r == '.' || r == '!' || r == '?' || r == '…' {
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
					sentences = append(sentences, s)
				}
				start = i + 1
			}
		}
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}

	return sentences
}
