package translator

import (
	"context"
	"testing"

	"yomidict/internal/dictentry"
	"yomidict/internal/dictstore"
	"yomidict/internal/langtransform"
	"yomidict/internal/options"
	"yomidict/internal/structcontent"
)

// mockStore is a minimal in-memory dictstore.Store for translator tests.
type mockStore struct {
	termsByText map[string][]dictentry.TermEntry
	tags        map[string]dictentry.Tag
}

func newMockStore() *mockStore {
	return &mockStore{termsByText: make(map[string][]dictentry.TermEntry), tags: make(map[string]dictentry.Tag)}
}

func (m *mockStore) addTerm(text string, entry dictentry.TermEntry) {
	m.termsByText[text] = append(m.termsByText[text], entry)
}

func (m *mockStore) ImportDictionary(ctx context.Context, records dictstore.ArchiveRecords) error { return nil }
func (m *mockStore) DeleteDictionary(ctx context.Context, dictionary string) error                { return nil }
func (m *mockStore) ListDictionaries(ctx context.Context) ([]dictentry.DictionarySummary, error) {
	return nil, nil
}

func (m *mockStore) FindTermsBulk(ctx context.Context, queries []dictstore.TermQuery, matchType dictentry.MatchType, enabled map[string]bool) ([]dictstore.TermResult, error) {
	var out []dictstore.TermResult
	for _, q := range queries {
		for _, entry := range m.termsByText[q.Text] {
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

func (m *mockStore) FindTermMetasBulk(ctx context.Context, expressions []string, enabled map[string]bool) ([]dictstore.MetaResult, error) {
	return nil, nil
}
func (m *mockStore) FindKanjiBulk(ctx context.Context, characters []string, enabled map[string]bool) ([]dictstore.KanjiResult, error) {
	return nil, nil
}
func (m *mockStore) FindKanjiMetasBulk(ctx context.Context, characters []string, enabled map[string]bool) ([]dictstore.KanjiMetaResult, error) {
	return nil, nil
}
func (m *mockStore) FindTagMeta(ctx context.Context, name, dictionary string) (*dictentry.Tag, error) {
	if tag, ok := m.tags[dictionary+"\x00"+name]; ok {
		return &tag, nil
	}
	return nil, nil
}
func (m *mockStore) Close() error { return nil }

func textGlossary(text string) dictentry.TermGlossary {
	return dictentry.TermGlossary{
		Kind:    dictentry.GlossaryKindContent,
		Content: structcontent.Glossary{Kind: structcontent.KindText, Text: text},
	}
}

func testOptions(dictionary string) options.ProfileOptions {
	opts := options.Default()
	opts.EnabledDictionaryMap[dictionary] = options.DictionaryEntry{Index: 0}
	opts.Mode = options.ModeGroup
	return opts
}

func TestFindTermsExactMatchNoDeinflection(t *testing.T) {
	store := newMockStore()
	store.addTerm("食べる", dictentry.TermEntry{
		ID: 1, Expression: "食べる", Reading: "たべる", Dictionary: "jmdict",
		Glossary: []dictentry.TermGlossary{textGlossary("to eat")},
	})

	tr := New(store, langtransform.NewMultiLanguageTransformer())
	result, err := tr.FindTerms(context.Background(), "食べる", testOptions("jmdict"))
	if err != nil {
		t.Fatalf("FindTerms: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	e := result.Entries[0]
	if e.Headwords[0].Term != "食べる" || e.Headwords[0].Reading != "たべる" {
		t.Fatalf("unexpected headword: %+v", e.Headwords[0])
	}
	if e.SourceTermExactMatchCount < 1 {
		t.Fatalf("expected at least one exact match, got %d", e.SourceTermExactMatchCount)
	}
}

func TestFindTermsDeinflectsPastTense(t *testing.T) {
	store := newMockStore()
	store.addTerm("食べる", dictentry.TermEntry{
		ID: 1, Expression: "食べる", Reading: "たべる", Dictionary: "jmdict", Rules: []string{"v1"},
		Glossary: []dictentry.TermGlossary{textGlossary("to eat")},
	})

	transformers := langtransform.NewMultiLanguageTransformer()
	jaTransformer := buildMinimalIchidanTransformer(t)
	transformers.Register("ja", jaTransformer)

	tr := New(store, transformers)
	result, err := tr.FindTerms(context.Background(), "食べた", testOptions("jmdict"))
	if err != nil {
		t.Fatalf("FindTerms: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry from deinflected lookup, got %d", len(result.Entries))
	}
	if result.Entries[0].Headwords[0].Term != "食べる" {
		t.Fatalf("expected deinflected headword 食べる, got %q", result.Entries[0].Headwords[0].Term)
	}
}

func TestFindTermsEmptyOnNoMatch(t *testing.T) {
	store := newMockStore()
	tr := New(store, langtransform.NewMultiLanguageTransformer())
	result, err := tr.FindTerms(context.Background(), "存在しない", testOptions("jmdict"))
	if err != nil {
		t.Fatalf("FindTerms: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(result.Entries))
	}
}

func TestFindTermsRemovesNonJapaneseTail(t *testing.T) {
	store := newMockStore()
	store.addTerm("猫", dictentry.TermEntry{
		ID: 1, Expression: "猫", Reading: "ねこ", Dictionary: "jmdict",
		Glossary: []dictentry.TermGlossary{textGlossary("cat")},
	})

	opts := testOptions("jmdict")
	opts.RemoveNonJapaneseCharacters = true
	tr := New(store, langtransform.NewMultiLanguageTransformer())
	result, err := tr.FindTerms(context.Background(), "猫cat", opts)
	if err != nil {
		t.Fatalf("FindTerms: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected the latin suffix to be dropped before lookup, got %d entries", len(result.Entries))
	}
}

func TestFindTermsNormalizesVariantKanji(t *testing.T) {
	store := newMockStore()
	store.addTerm("大日本帝国", dictentry.TermEntry{
		ID: 1, Expression: "大日本帝国", Reading: "だいにっぽんていこく", Dictionary: "jmdict",
		Glossary: []dictentry.TermGlossary{textGlossary("Greater Japanese Empire")},
	})

	tr := New(store, langtransform.NewMultiLanguageTransformer())
	result, err := tr.FindTerms(context.Background(), "大日本帝國", testOptions("jmdict"))
	if err != nil {
		t.Fatalf("FindTerms: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected variant-kanji lookup to resolve to 1 entry, got %d", len(result.Entries))
	}
	if got := result.Entries[0].Headwords[0].Term; got != "大日本帝国" {
		t.Fatalf("expected headword 大日本帝国, got %q", got)
	}
}

// buildMinimalIchidanTransformer registers one ichidan past-tense rule
// (食べた -> 食べる) so the deinflection test exercises the real
// langtransform engine rather than a hand-rolled stub.
func buildMinimalIchidanTransformer(t *testing.T) *langtransform.Transformer {
	t.Helper()
	tr := langtransform.NewTransformer()
	err := tr.AddDescriptor(langtransform.LanguageTransformDescriptor{
		Language: "ja",
		Conditions: map[string]langtransform.Condition{
			"v1": {Name: "Ichidan verb", IsDictionaryForm: true, SubConditions: []string{}},
		},
		Transforms: []langtransform.TransformDescriptor{
			{
				ID:   "-ta",
				Name: "past",
				Rules: []langtransform.RuleDescriptor{
					langtransform.SuffixInflection("た", "る", []string{}, []string{"v1"}),
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("AddDescriptor: %v", err)
	}
	return tr
}
