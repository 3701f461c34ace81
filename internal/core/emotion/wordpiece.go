package emotion

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// wordPiece is a minimal uncased WordPiece tokenizer driven by a plain
// vocab.txt, enough to feed BERT-family classifiers.
type wordPiece struct {
	vocab map[string]int
	unkID int
	clsID int
	sepID int
}

func loadWordPiece(path string) (*wordPiece, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(raw), "\n")
	vocab := make(map[string]int, len(lines))
	for i, line := range lines {
		tok := strings.TrimSpace(line)
		if tok == "" {
			continue
		}
		if _, ok := vocab[tok]; !ok {
			vocab[tok] = i
		}
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("empty vocabulary")
	}
	lookup := func(tok string, def int) int {
		if id, ok := vocab[tok]; ok {
			return id
		}
		return def
	}
	return &wordPiece{
		vocab: vocab,
		unkID: lookup("[UNK]", 100),
		clsID: lookup("[CLS]", 101),
		sepID: lookup("[SEP]", 102),
	}, nil
}

// encode tokenizes text into a fixed-length id sequence plus its attention
// mask, padded with zeros.
func (w *wordPiece) encode(text string, maxLen int) ([]int64, []int64) {
	var pieces []int
	for _, word := range splitWords(text) {
		pieces = append(pieces, w.tokenizeWord(word)...)
	}

	seq := make([]int, 0, len(pieces)+2)
	seq = append(seq, w.clsID)
	seq = append(seq, pieces...)
	seq = append(seq, w.sepID)
	if len(seq) > maxLen {
		seq = seq[:maxLen]
	}

	ids := make([]int64, maxLen)
	mask := make([]int64, maxLen)
	for i, v := range seq {
		ids[i] = int64(v)
		mask[i] = 1
	}
	return ids, mask
}

// tokenizeWord applies greedy longest-match-first subword splitting.
func (w *wordPiece) tokenizeWord(word string) []int {
	if word == "" {
		return nil
	}
	var out []int
	for len(word) > 0 {
		end := len(word)
		matched := ""
		id := 0
		for end > 0 {
			candidate := word[:end]
			if len(out) > 0 {
				candidate = "##" + candidate
			}
			if vid, ok := w.vocab[candidate]; ok {
				matched = candidate
				id = vid
				break
			}
			end--
		}
		if matched == "" {
			return append(out, w.unkID)
		}
		out = append(out, id)
		word = word[len(strings.TrimPrefix(matched, "##")):]
	}
	return out
}

func splitWords(s string) []string {
	s = strings.ToLower(s)
	var out []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return out
}
