package dictimport

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"yomidict/internal/dictentry"
	"yomidict/internal/dictstore"
)

type fakeStore struct {
	records dictstore.ArchiveRecords
}

func (f *fakeStore) ImportDictionary(ctx context.Context, records dictstore.ArchiveRecords) error {
	f.records = records
	return nil
}
func (f *fakeStore) DeleteDictionary(ctx context.Context, dictionary string) error { return nil }
func (f *fakeStore) ListDictionaries(ctx context.Context) ([]dictentry.DictionarySummary, error) {
	return nil, nil
}
func (f *fakeStore) FindTermsBulk(ctx context.Context, queries []dictstore.TermQuery, matchType dictentry.MatchType, enabled map[string]bool) ([]dictstore.TermResult, error) {
	return nil, nil
}
func (f *fakeStore) FindTermMetasBulk(ctx context.Context, expressions []string, enabled map[string]bool) ([]dictstore.MetaResult, error) {
	return nil, nil
}
func (f *fakeStore) FindKanjiBulk(ctx context.Context, characters []string, enabled map[string]bool) ([]dictstore.KanjiResult, error) {
	return nil, nil
}
func (f *fakeStore) FindKanjiMetasBulk(ctx context.Context, characters []string, enabled map[string]bool) ([]dictstore.KanjiMetaResult, error) {
	return nil, nil
}
func (f *fakeStore) FindTagMeta(ctx context.Context, name, dictionary string) (*dictentry.Tag, error) {
	return nil, nil
}
func (f *fakeStore) Close() error { return nil }

func buildTestArchive(t *testing.T) *zip.Reader {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	write("index.json", `{
		"title": "Test Dictionary",
		"revision": "test.1",
		"format": 3,
		"sequenced": true,
		"author": "tester"
	}`)
	write("term_bank_1.json", `[
		["食べる", "たべる", "", "v1", 0, ["to eat"], 1001, ""],
		["食べた", "たべた", "", "v1", 0, [{"type": "text", "text": "ate (past)"}], 1001, ""]
	]`)
	write("term_meta_bank_1.json", `[
		["食べる", "freq", 1234],
		["食べる", "pitch", {"reading": "たべる", "pitches": [{"position": 2, "tags": []}]}]
	]`)
	write("kanji_bank_1.json", `[
		["食", "ショク", "た.べる", "jouyou", ["eat", "food"], {"grade": "2"}]
	]`)
	write("tag_bank_1.json", `[
		["v1", "verb", 0, "ichidan verb", 0]
	]`)

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open zip reader: %v", err)
	}
	return zr
}

func TestImportOpenNonExistentArchive(t *testing.T) {
	store := &fakeStore{}
	if _, err := Import(context.Background(), store, "/nonexistent/path.zip", Options{}); err == nil {
		t.Fatalf("expected Import to fail opening a non-existent path")
	}
}

func TestImportFSWritesAllRecordKinds(t *testing.T) {
	zr := buildTestArchive(t)
	store := &fakeStore{}

	summary, err := importFS(context.Background(), store, zr, Options{})
	if err != nil {
		t.Fatalf("importFS: %v", err)
	}
	if summary.Title != "Test Dictionary" {
		t.Fatalf("unexpected returned summary title: %q", summary.Title)
	}

	if len(store.records.Terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(store.records.Terms))
	}
	if store.records.Terms[0].Expression != "食べる" {
		t.Fatalf("unexpected first term expression: %q", store.records.Terms[0].Expression)
	}
	if store.records.Terms[0].ExpressionReverse != "るべ食" {
		t.Fatalf("unexpected expression_reverse: %q", store.records.Terms[0].ExpressionReverse)
	}
	if store.records.Terms[0].Sequence == nil || *store.records.Terms[0].Sequence != 1001 {
		t.Fatalf("expected sequence 1001, got %v", store.records.Terms[0].Sequence)
	}
	if store.records.Terms[0].PlainDefinition != "to eat" {
		t.Fatalf("expected plain definition %q, got %q", "to eat", store.records.Terms[0].PlainDefinition)
	}

	if len(store.records.TermMeta) != 2 {
		t.Fatalf("expected 2 term meta rows, got %d", len(store.records.TermMeta))
	}
	if len(store.records.Kanji) != 1 {
		t.Fatalf("expected 1 kanji row, got %d", len(store.records.Kanji))
	}
	if len(store.records.Tags) != 1 {
		t.Fatalf("expected 1 tag row, got %d", len(store.records.Tags))
	}

	if store.records.Summary.Title != "Test Dictionary" {
		t.Fatalf("unexpected summary title: %q", store.records.Summary.Title)
	}
	if store.records.Summary.TermCount != 2 {
		t.Fatalf("unexpected term count: %d", store.records.Summary.TermCount)
	}
}
