package textproc

import "testing"

func TestVariantKanjiToOriginalConvertsItaiji(t *testing.T) {
	got := VariantKanjiToOriginal.Apply("大日本帝國", true)
	if want := "大日本帝国"; got != want {
		t.Fatalf("VariantKanjiToOriginal.Apply = %q, want %q", got, want)
	}
}

func TestVariantKanjiToOriginalOffLeavesTextUntouched(t *testing.T) {
	got := VariantKanjiToOriginal.Apply("大日本帝國", false)
	if want := "大日本帝國"; got != want {
		t.Fatalf("VariantKanjiToOriginal.Apply(off) = %q, want %q", got, want)
	}
}

func TestVariantKanjiToOriginalIsIdempotentOnOyajiText(t *testing.T) {
	got := VariantKanjiToOriginal.Apply("大日本帝国", true)
	if want := "大日本帝国"; got != want {
		t.Fatalf("normalizing already-oyaji text changed it: %q", got)
	}
}

func TestJapanesePreProcessorsIncludesVariantKanji(t *testing.T) {
	for _, p := range JapanesePreProcessors() {
		if p.ID == VariantKanjiToOriginal.ID {
			return
		}
	}
	t.Fatal("JapanesePreProcessors does not include VariantKanjiToOriginal")
}

// TestCacheMemoizesApply exercises Cache's (text, id, setting) memoization,
// spec.md §4.1/§5: a fresh Cache built per lookup must still return the
// same transform output on repeat calls.
func TestCacheMemoizesApply(t *testing.T) {
	cache := NewCache()
	first := cache.Apply(VariantKanjiToOriginal, "大日本帝國", true)
	second := cache.Apply(VariantKanjiToOriginal, "大日本帝國", true)
	if first != second {
		t.Fatalf("cache returned inconsistent results: %q vs %q", first, second)
	}
	if first != "大日本帝国" {
		t.Fatalf("cache.Apply = %q, want 大日本帝国", first)
	}
}

func TestHiraganaKatakanaRoundTripIsIdempotentPerDirection(t *testing.T) {
	hiragana := "たべる"
	toKatakana := HiraganaKatakana.Apply(hiragana, Direct)
	again := HiraganaKatakana.Apply(toKatakana, Direct)
	if toKatakana != again {
		t.Fatalf("HiraganaKatakana(Direct) not idempotent: %q vs %q", toKatakana, again)
	}
	if HiraganaKatakana.Apply(hiragana, Off) != hiragana {
		t.Fatal("HiraganaKatakana(Off) must leave text untouched")
	}
}

func TestAlphanumericWidthRoundTrip(t *testing.T) {
	ascii := "Go123"
	wide := AlphanumericWidth.Apply(ascii, Inverse)
	if wide == ascii {
		t.Fatal("expected AlphanumericWidth(Inverse) to widen ASCII input")
	}
	back := AlphanumericWidth.Apply(wide, Direct)
	if back != ascii {
		t.Fatalf("AlphanumericWidth round trip = %q, want %q", back, ascii)
	}
}
