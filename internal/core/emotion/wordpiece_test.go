package emotion

import (
	"os"
	"path/filepath"
	"testing"
)

func writeVocab(t *testing.T, tokens ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.txt")
	data := ""
	for _, tok := range tokens {
		data += tok + "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write vocab: %v", err)
	}
	return path
}

func TestWordPieceEncode(t *testing.T) {
	path := writeVocab(t, "[PAD]", "[UNK]", "[CLS]", "[SEP]", "hello", "world", "##ly")
	wp, err := loadWordPiece(path)
	if err != nil {
		t.Fatalf("loadWordPiece: %v", err)
	}

	ids, mask := wp.encode("Hello world", 8)
	if len(ids) != 8 || len(mask) != 8 {
		t.Fatalf("expected length 8, got %d/%d", len(ids), len(mask))
	}
	// [CLS] hello world [SEP] then padding.
	want := []int64{2, 4, 5, 3, 0, 0, 0, 0}
	for i, v := range want {
		if ids[i] != v {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], v)
		}
	}
	for i := 0; i < 4; i++ {
		if mask[i] != 1 {
			t.Errorf("mask[%d] = %d, want 1", i, mask[i])
		}
	}
	for i := 4; i < 8; i++ {
		if mask[i] != 0 {
			t.Errorf("mask[%d] = %d, want 0", i, mask[i])
		}
	}
}

func TestWordPieceSubwords(t *testing.T) {
	path := writeVocab(t, "[PAD]", "[UNK]", "[CLS]", "[SEP]", "quick", "##ly")
	wp, err := loadWordPiece(path)
	if err != nil {
		t.Fatalf("loadWordPiece: %v", err)
	}

	pieces := wp.tokenizeWord("quickly")
	if len(pieces) != 2 || pieces[0] != 4 || pieces[1] != 5 {
		t.Errorf("expected [4 5], got %v", pieces)
	}
}

func TestWordPieceUnknown(t *testing.T) {
	path := writeVocab(t, "[PAD]", "[UNK]", "[CLS]", "[SEP]", "hello")
	wp, err := loadWordPiece(path)
	if err != nil {
		t.Fatalf("loadWordPiece: %v", err)
	}

	pieces := wp.tokenizeWord("zzz")
	if len(pieces) != 1 || pieces[0] != wp.unkID {
		t.Errorf("expected single unk id %d, got %v", wp.unkID, pieces)
	}
}

func TestWordPieceTruncates(t *testing.T) {
	path := writeVocab(t, "[PAD]", "[UNK]", "[CLS]", "[SEP]", "a")
	wp, err := loadWordPiece(path)
	if err != nil {
		t.Fatalf("loadWordPiece: %v", err)
	}

	ids, mask := wp.encode("a a a a a a a a a a", 4)
	if len(ids) != 4 {
		t.Fatalf("expected length 4, got %d", len(ids))
	}
	for i := range mask {
		if mask[i] != 1 {
			t.Errorf("mask[%d] = %d, want 1 after truncation", i, mask[i])
		}
	}
}
