// Package translator implements the lookup orchestrator: pre-filter,
// deinflection candidate enumeration, bulk store lookups, entry
// construction/merging, tag/frequency/pronunciation enrichment,
// ranking, and the Simple/Group/Merge/Split lookup modes.
package translator

import (
	"context"
	"fmt"
	"unicode"

	"yomidict/internal/dictentry"
	"yomidict/internal/dictstore"
	"yomidict/internal/langtransform"
	"yomidict/internal/options"
	"yomidict/internal/tagaggregator"
	"yomidict/internal/textproc"
)

// FindTermsResult is FindTerms's return shape.
type FindTermsResult struct {
	Entries            []*dictentry.TermDictionaryEntry
	OriginalTextLength int

	// CycleCount is the delta in the language transformer's cycle
	// counter observed during this call, surfaced as a diagnostic
	// rather than logged.
	CycleCount int
}

// Translator is the stateless orchestrator; build once and share across
// concurrent lookups. Per-call caches are always constructed fresh
// inside FindTerms, never stored here.
type Translator struct {
	Store        dictstore.Store
	Transformers *langtransform.MultiLanguageTransformer

	preProcessors  map[string][]textproc.TextProcessor
	postProcessors map[string][]textproc.TextProcessor
}

// New builds a Translator with the Japanese processor pipeline
// pre-registered.
func New(store dictstore.Store, transformers *langtransform.MultiLanguageTransformer) *Translator {
	t := &Translator{
		Store:          store,
		Transformers:   transformers,
		preProcessors:  make(map[string][]textproc.TextProcessor),
		postProcessors: make(map[string][]textproc.TextProcessor),
	}
	t.RegisterProcessors("ja", textproc.JapanesePreProcessors(), textproc.JapanesePostProcessors())
	return t
}

// RegisterProcessors installs the pre/post-processor pipeline for a
// language code, letting callers add languages beyond Japanese.
func (t *Translator) RegisterProcessors(language string, pre, post []textproc.TextProcessor) {
	t.preProcessors[language] = pre
	t.postProcessors[language] = post
}

// FindTerms runs the full lookup pipeline for text under opts.
func (t *Translator) FindTerms(ctx context.Context, text string, opts options.ProfileOptions) (*FindTermsResult, error) {
	originalLength := len([]rune(text))

	// Step 1: language-specific pre-filter.
	if opts.RemoveNonJapaneseCharacters && isCJKLanguage(opts.Language) {
		text = truncateAtFirstNonCJK(text)
	}
	if text == "" {
		return &FindTermsResult{}, nil
	}

	transformer := t.Transformers.Transformer(opts.Language)
	var cycleBefore int
	if transformer != nil {
		cycleBefore = transformer.CycleCount()
	}

	// Step 2: candidate enumeration.
	deinflections := t.getDeinflections(text, opts)
	if len(deinflections) == 0 {
		return &FindTermsResult{OriginalTextLength: originalLength}, nil
	}

	enabledDictionaries := buildEnabledDictionaryMap(opts)

	// Merge mode transparently enables main_dictionary up front so the
	// first bulk lookup also matches its entries. The same-sequence rows
	// the store adds (QueryIndex -1) are discarded by bulkLookup, so a
	// related headword that no query text matched is not pulled in.
	if opts.Mode == options.ModeMerge {
		opts = enableMainDictionary(opts, enabledDictionaries)
	}

	// Step 3: bulk DB lookup, first round.
	candidates, err := t.bulkLookup(ctx, deinflections, opts, enabledDictionaries)
	if err != nil {
		return nil, fmt.Errorf("translator: bulk lookup: %w", err)
	}

	// Step 4: dictionary-provided deinflections, second round.
	candidates, err = t.resolveDictionaryDeinflections(ctx, candidates, opts, enabledDictionaries)
	if err != nil {
		return nil, fmt.Errorf("translator: dictionary deinflection lookup: %w", err)
	}

	// Step 5: entry construction and merging.
	aggregator := tagaggregator.New()
	entries := buildEntries(candidates, opts, aggregator)

	resolvedTags, err := aggregator.ResolveAll(tagResolverFunc(func(name, dictionary string) (*dictentry.Tag, error) {
		return t.Store.FindTagMeta(ctx, name, dictionary)
	}))
	if err != nil {
		return nil, fmt.Errorf("translator: resolve tags: %w", err)
	}
	finalizeTags(entries, resolvedTags)

	// Step 6: enrichment, skipped entirely in Simple mode.
	if opts.Mode != options.ModeSimple {
		if err := t.enrich(ctx, entries, opts, enabledDictionaries); err != nil {
			return nil, fmt.Errorf("translator: enrich: %w", err)
		}
	}

	entries = applyMode(entries, opts)

	// Step 7: ranking.
	rankEntries(entries, opts)
	if opts.MaxResults > 0 && len(entries) > opts.MaxResults {
		entries = entries[:opts.MaxResults]
	}

	result := &FindTermsResult{Entries: entries, OriginalTextLength: originalLength}
	if transformer != nil {
		result.CycleCount = transformer.CycleCount() - cycleBefore
	}
	return result, nil
}

type tagResolverFunc func(name, dictionary string) (*dictentry.Tag, error)

func (f tagResolverFunc) FindTagMeta(name, dictionary string) (*dictentry.Tag, error) { return f(name, dictionary) }

func isCJKLanguage(lang string) bool {
	switch lang {
	case "ja", "zh", "yue":
		return true
	default:
		return false
	}
}

// truncateAtFirstNonCJK cuts text at the first rune outside the union
// of the Japanese and Han script ranges.
func truncateAtFirstNonCJK(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if !isJapaneseOrHan(r) {
			return string(runes[:i])
		}
	}
	return text
}

func isJapaneseOrHan(r rune) bool {
	return unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) || r == 'ー' || r == '々'
}

func buildEnabledDictionaryMap(opts options.ProfileOptions) map[string]bool {
	enabled := make(map[string]bool, len(opts.EnabledDictionaryMap))
	for name := range opts.EnabledDictionaryMap {
		enabled[name] = true
	}
	return enabled
}

// enableMainDictionary implements Merge mode's auto-injection: if
// main_dictionary is not already enabled, enable it transparently and
// exclude its own definitions from display. opts is caller-owned, so
// this clones EnabledDictionaryMap/ExcludeDictionaryDefinitions before
// writing through rather than mutating the caller's maps in place; the
// returned ProfileOptions is a local copy safe to mutate further.
func enableMainDictionary(opts options.ProfileOptions, enabledDictionaries map[string]bool) options.ProfileOptions {
	if opts.MainDictionary == "" || enabledDictionaries[opts.MainDictionary] {
		return opts
	}
	enabledDictionaries[opts.MainDictionary] = true

	clonedMap := make(map[string]options.DictionaryEntry, len(opts.EnabledDictionaryMap)+1)
	for name, entry := range opts.EnabledDictionaryMap {
		clonedMap[name] = entry
	}
	if _, ok := clonedMap[opts.MainDictionary]; !ok {
		clonedMap[opts.MainDictionary] = options.DictionaryEntry{Index: len(clonedMap)}
	}
	opts.EnabledDictionaryMap = clonedMap

	clonedExclusions := make(map[string]bool, len(opts.ExcludeDictionaryDefinitions)+1)
	for name := range opts.ExcludeDictionaryDefinitions {
		clonedExclusions[name] = true
	}
	clonedExclusions[opts.MainDictionary] = true
	opts.ExcludeDictionaryDefinitions = clonedExclusions

	return opts
}
