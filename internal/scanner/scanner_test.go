package scanner

import (
	"context"
	"testing"

	"yomidict/internal/dictentry"
	"yomidict/internal/dictstore"
	"yomidict/internal/langtransform"
	"yomidict/internal/options"
	"yomidict/internal/structcontent"
	"yomidict/internal/translator"
)

// stubStore is a minimal dictstore.Store fixture for scanner tests:
// only FindTermsBulk resolves real data, everything else is a no-op.
type stubStore struct {
	termsByText map[string][]dictentry.TermEntry
}

func (s *stubStore) ImportDictionary(ctx context.Context, records dictstore.ArchiveRecords) error {
	return nil
}
func (s *stubStore) DeleteDictionary(ctx context.Context, dictionary string) error { return nil }
func (s *stubStore) ListDictionaries(ctx context.Context) ([]dictentry.DictionarySummary, error) {
	return nil, nil
}

func (s *stubStore) FindTermsBulk(ctx context.Context, queries []dictstore.TermQuery, matchType dictentry.MatchType, enabled map[string]bool) ([]dictstore.TermResult, error) {
	var out []dictstore.TermResult
	for _, q := range queries {
		for _, entry := range s.termsByText[q.Text] {
			if !enabled[entry.Dictionary] {
				continue
			}
			out = append(out, dictstore.TermResult{
				QueryIndex:  q.Index,
				Entry:       entry,
				MatchType:   dictentry.MatchExact,
				MatchSource: dictentry.MatchSourceTerm,
			})
		}
	}
	return out, nil
}

func (s *stubStore) FindTermMetasBulk(ctx context.Context, expressions []string, enabled map[string]bool) ([]dictstore.MetaResult, error) {
	return nil, nil
}
func (s *stubStore) FindKanjiBulk(ctx context.Context, characters []string, enabled map[string]bool) ([]dictstore.KanjiResult, error) {
	return nil, nil
}
func (s *stubStore) FindKanjiMetasBulk(ctx context.Context, characters []string, enabled map[string]bool) ([]dictstore.KanjiMetaResult, error) {
	return nil, nil
}
func (s *stubStore) FindTagMeta(ctx context.Context, name, dictionary string) (*dictentry.Tag, error) {
	return nil, nil
}
func (s *stubStore) Close() error { return nil }

func testOptions() options.ProfileOptions {
	opts := options.Default()
	opts.EnabledDictionaryMap["jmdict"] = options.DictionaryEntry{Index: 0}
	opts.ScanLength = 16
	opts.SentenceScanExtent = 50
	return opts
}

func TestSearchFindsTermAndSentence(t *testing.T) {
	store := &stubStore{termsByText: map[string][]dictentry.TermEntry{
		"猫": {{
			ID: 1, Expression: "猫", Reading: "ねこ", Dictionary: "jmdict",
			Glossary: []dictentry.TermGlossary{{
				Kind:    dictentry.GlossaryKindContent,
				Content: structcontent.Glossary{Kind: structcontent.KindText, Text: "cat"},
			}},
		}},
	}}
	tr := translator.New(store, langtransform.NewMultiLanguageTransformer())
	sc := New(tr)

	result, err := sc.Search(context.Background(), "私は猫です。本当に。", 2, testOptions())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result == nil {
		t.Fatal("expected a match at the cursor")
	}
	if len(result.Entries) != 1 || result.Entries[0].Headwords[0].Term != "猫" {
		t.Fatalf("unexpected entries: %+v", result.Entries)
	}
	if result.Sentence.Text != "私は猫です。" {
		t.Fatalf("unexpected sentence: %q", result.Sentence.Text)
	}
}

func TestSearchReturnsNilOnNoMatch(t *testing.T) {
	store := &stubStore{termsByText: map[string][]dictentry.TermEntry{}}
	tr := translator.New(store, langtransform.NewMultiLanguageTransformer())
	sc := New(tr)

	result, err := sc.Search(context.Background(), "存在しない言葉です。", 0, testOptions())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result on no match, got %+v", result)
	}
}

func TestSearchReturnsNilForOutOfRangeCursor(t *testing.T) {
	store := &stubStore{termsByText: map[string][]dictentry.TermEntry{}}
	tr := translator.New(store, langtransform.NewMultiLanguageTransformer())
	sc := New(tr)

	result, err := sc.Search(context.Background(), "猫", 5, testOptions())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result for an out-of-range cursor, got %+v", result)
	}
}
