package textnorm

import "testing"

func TestFold_StripsDiacritics(t *testing.T) {
	got := Fold("Tiếng Việt")
	if got != "tieng viet" {
		t.Errorf("expected 'tieng viet', got %q", got)
	}
}

func TestFold_MapsDToPlain(t *testing.T) {
	got := Fold("Đà Nẵng đẹp")
	if got != "da nang dep" {
		t.Errorf("expected 'da nang dep', got %q", got)
	}
}

func TestFold_CaseFolds(t *testing.T) {
	got := Fold("HÀ NỘI")
	if got != "ha noi" {
		t.Errorf("expected 'ha noi', got %q", got)
	}
}

func TestFold_Idempotent(t *testing.T) {
	once := Fold("Thành phố Hồ Chí Minh")
	twice := Fold(once)
	if once != twice {
		t.Errorf("folding is not idempotent: %q vs %q", once, twice)
	}
}

func TestFold_PlainASCIIUnchanged(t *testing.T) {
	got := Fold("hello world")
	if got != "hello world" {
		t.Errorf("expected 'hello world', got %q", got)
	}
}

func TestWordCount(t *testing.T) {
	if n := WordCount("một hai  ba\nbốn"); n != 4 {
		t.Errorf("expected 4 words, got %d", n)
	}
	if n := WordCount("   "); n != 0 {
		t.Errorf("expected 0 words for whitespace, got %d", n)
	}
}
