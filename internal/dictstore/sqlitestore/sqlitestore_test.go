package sqlitestore

import (
	"context"
	"testing"

	"yomidict/internal/dictentry"
	"yomidict/internal/dictstore"
	"yomidict/internal/structcontent"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func glossary(text string) dictentry.TermGlossary {
	return dictentry.TermGlossary{
		Kind:    dictentry.GlossaryKindContent,
		Content: structcontent.Glossary{Kind: structcontent.KindText, Text: text},
	}
}

func TestImportAndFindTermsBulkRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seq := int64(100)
	records := dictstore.ArchiveRecords{
		Summary: dictentry.DictionarySummary{Title: "jmdict", Revision: "1", TermCount: 1},
		Terms: []dictentry.TermEntry{
			{
				UUID: "11111111-1111-1111-1111-111111111111", Expression: "猫", Reading: "ねこ",
				ExpressionReverse: dictentry.ReverseString("猫"), ReadingReverse: dictentry.ReverseString("ねこ"),
				Glossary: []dictentry.TermGlossary{glossary("cat")}, Dictionary: "jmdict", Sequence: &seq,
			},
		},
		Tags: []dictentry.Tag{{Name: "n", Category: "pos", Order: 0, Score: 0, Notes: "noun"}},
	}
	if err := s.ImportDictionary(ctx, records); err != nil {
		t.Fatalf("ImportDictionary: %v", err)
	}

	summaries, err := s.ListDictionaries(ctx)
	if err != nil {
		t.Fatalf("ListDictionaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Title != "jmdict" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	results, err := s.FindTermsBulk(ctx, []dictstore.TermQuery{{Index: 0, Text: "猫"}}, dictentry.MatchExact, map[string]bool{"jmdict": true})
	if err != nil {
		t.Fatalf("FindTermsBulk: %v", err)
	}
	if len(results) != 1 || results[0].Entry.Reading != "ねこ" {
		t.Fatalf("unexpected results: %+v", results)
	}

	tag, err := s.FindTagMeta(ctx, "n", "jmdict")
	if err != nil {
		t.Fatalf("FindTagMeta: %v", err)
	}
	if tag == nil || tag.Notes != "noun" {
		t.Fatalf("unexpected tag: %+v", tag)
	}

	if gen := s.Generation(); gen != 1 {
		t.Fatalf("Generation() = %d, want 1", gen)
	}
}

func TestFindTagMetaMissReturnsNilNotError(t *testing.T) {
	s := openTestStore(t)
	tag, err := s.FindTagMeta(context.Background(), "missing", "jmdict")
	if err != nil {
		t.Fatalf("expected no error for a tag miss, got %v", err)
	}
	if tag != nil {
		t.Fatalf("expected nil tag, got %+v", tag)
	}
}

func TestDeleteDictionaryRemovesAllRecords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.ImportDictionary(ctx, dictstore.ArchiveRecords{
		Summary: dictentry.DictionarySummary{Title: "jmdict"},
		Terms: []dictentry.TermEntry{{
			UUID: "22222222-2222-2222-2222-222222222222", Expression: "犬", Reading: "いぬ",
			Glossary: []dictentry.TermGlossary{glossary("dog")}, Dictionary: "jmdict",
		}},
	}); err != nil {
		t.Fatalf("ImportDictionary: %v", err)
	}

	if err := s.DeleteDictionary(ctx, "jmdict"); err != nil {
		t.Fatalf("DeleteDictionary: %v", err)
	}

	summaries, err := s.ListDictionaries(ctx)
	if err != nil {
		t.Fatalf("ListDictionaries: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected dictionary to be fully removed, got %+v", summaries)
	}

	results, err := s.FindTermsBulk(ctx, []dictstore.TermQuery{{Index: 0, Text: "犬"}}, dictentry.MatchExact, map[string]bool{"jmdict": true})
	if err != nil {
		t.Fatalf("FindTermsBulk: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results after delete, got %+v", results)
	}
}

func TestFindTermsBulkPrefersReadingIndexForKanaOnlyQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.ImportDictionary(ctx, dictstore.ArchiveRecords{
		Summary: dictentry.DictionarySummary{Title: "jmdict"},
		Terms: []dictentry.TermEntry{{
			UUID: "33333333-3333-3333-3333-333333333333", Expression: "食べる", Reading: "たべる",
			Glossary: []dictentry.TermGlossary{glossary("to eat")}, Dictionary: "jmdict",
		}},
	}); err != nil {
		t.Fatalf("ImportDictionary: %v", err)
	}

	results, err := s.FindTermsBulk(ctx, []dictstore.TermQuery{{Index: 0, Text: "たべる"}}, dictentry.MatchExact, map[string]bool{"jmdict": true})
	if err != nil {
		t.Fatalf("FindTermsBulk: %v", err)
	}
	if len(results) != 1 || results[0].MatchSource != dictentry.MatchSourceReading {
		t.Fatalf("expected a reading-index match, got %+v", results)
	}
}
