package yomidict

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"yomidict/internal/dictimport"
	"yomidict/internal/options"
)

// zipTestdataDictionary packages testdata/dictionaries/<name> (loose
// Yomichan-schema bank files checked into the repo) into a temp .zip
// archive, the on-disk shape dictimport.Import expects.
func zipTestdataDictionary(t *testing.T, name string) string {
	t.Helper()
	srcDir := filepath.Join("testdata", "dictionaries", name)
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		t.Fatalf("read testdata dir %s: %v", srcDir, err)
	}

	archivePath := filepath.Join(t.TempDir(), name+".zip")
	out, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(srcDir, e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		w, err := zw.Create(e.Name())
		if err != nil {
			t.Fatalf("create zip entry %s: %v", e.Name(), err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write zip entry %s: %v", e.Name(), err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
	return archivePath
}

func openTestHandle(t *testing.T) *Handle {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "yomidict-test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

// TestImportAndFindTermsEndToEnd exercises the full pipeline against the
// checked-in minijmdict testdata: import, then an exact-match lookup
// plus the spec's variant-kanji normalization scenario (大日本帝國 ->
// the 大日本帝国 headword) and a deinflected verb lookup.
func TestImportAndFindTermsEndToEnd(t *testing.T) {
	h := openTestHandle(t)
	ctx := context.Background()

	archivePath := zipTestdataDictionary(t, "minijmdict")
	summaries, err := h.ImportDictionaries(ctx, []string{archivePath}, dictimport.Options{})
	if err != nil {
		t.Fatalf("ImportDictionaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Title != "Mini JMdict" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
	if summaries[0].TermCount != 3 {
		t.Fatalf("expected 3 terms imported, got %d", summaries[0].TermCount)
	}

	opts := options.Default()
	opts.EnabledDictionaryMap["Mini JMdict"] = options.DictionaryEntry{Index: 0, UseDeinflections: true}

	t.Run("exact match", func(t *testing.T) {
		result, err := h.FindTerms(ctx, "猫", opts)
		if err != nil {
			t.Fatalf("FindTerms: %v", err)
		}
		if len(result.Entries) != 1 || result.Entries[0].Headwords[0].Term != "猫" {
			t.Fatalf("unexpected entries: %+v", result.Entries)
		}
	})

	t.Run("variant kanji normalization", func(t *testing.T) {
		result, err := h.FindTerms(ctx, "大日本帝國", opts)
		if err != nil {
			t.Fatalf("FindTerms: %v", err)
		}
		if len(result.Entries) != 1 {
			t.Fatalf("expected the variant-kanji input to resolve to 1 entry, got %d", len(result.Entries))
		}
		if got := result.Entries[0].Headwords[0].Term; got != "大日本帝国" {
			t.Fatalf("expected headword 大日本帝国, got %q", got)
		}
	})

	t.Run("deinflected verb", func(t *testing.T) {
		result, err := h.FindTerms(ctx, "食べた", opts)
		if err != nil {
			t.Fatalf("FindTerms: %v", err)
		}
		if len(result.Entries) != 1 || result.Entries[0].Headwords[0].Term != "食べる" {
			t.Fatalf("expected deinflected headword 食べる, got %+v", result.Entries)
		}
	})

	t.Run("scanner search", func(t *testing.T) {
		scanOpts := opts
		scanOpts.ScanLength = 10
		scanOpts.SentenceScanExtent = 20
		result, err := h.Scanner().Search(ctx, "私は猫が好きです。", 2, scanOpts)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if result == nil || len(result.Entries) != 1 || result.Entries[0].Headwords[0].Term != "猫" {
			t.Fatalf("unexpected scan result: %+v", result)
		}
	})

	t.Run("delete dictionary", func(t *testing.T) {
		if err := h.DeleteDictionary(ctx, "Mini JMdict"); err != nil {
			t.Fatalf("DeleteDictionary: %v", err)
		}
		remaining, err := h.ListDictionaries(ctx)
		if err != nil {
			t.Fatalf("ListDictionaries: %v", err)
		}
		if len(remaining) != 0 {
			t.Fatalf("expected no dictionaries after delete, got %+v", remaining)
		}
	})
}
