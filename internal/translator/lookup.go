package translator

import (
	"context"

	"yomidict/internal/dictentry"
	"yomidict/internal/dictstore"
	"yomidict/internal/langtransform"
	"yomidict/internal/options"
)

// candidate pairs one deinflection class with one matched term entry.
type candidate struct {
	Deinflection deinflection
	Entry        dictentry.TermEntry
	MatchType    dictentry.MatchType
	MatchSource  dictentry.MatchSource
}

// bulkLookup runs one Store.FindTermsBulk call across every
// deinflection's DeinflectedText and applies the parts-of-speech
// condition filter.
func (t *Translator) bulkLookup(ctx context.Context, deinflections []deinflection, opts options.ProfileOptions, enabledDictionaries map[string]bool) ([]candidate, error) {
	if len(deinflections) == 0 {
		return nil, nil
	}
	queries := make([]dictstore.TermQuery, len(deinflections))
	for i, d := range deinflections {
		queries[i] = dictstore.TermQuery{Index: i, Text: d.DeinflectedText}
	}

	results, err := t.Store.FindTermsBulk(ctx, queries, opts.MatchType, enabledDictionaries)
	if err != nil {
		return nil, err
	}

	transformer := t.Transformers.Transformer(opts.Language)

	out := make([]candidate, 0, len(results))
	for _, r := range results {
		if r.QueryIndex < 0 || r.QueryIndex >= len(deinflections) {
			continue
		}
		d := deinflections[r.QueryIndex]
		dictEntry := opts.EnabledDictionaryMap[r.Entry.Dictionary]
		if !keepByConditions(dictEntry, d, r.Entry, transformer) {
			continue
		}
		out = append(out, candidate{Deinflection: d, Entry: r.Entry, MatchType: r.MatchType, MatchSource: r.MatchSource})
	}
	return out, nil
}

// keepByConditions filters a matched entry: it survives if the
// dictionary doesn't request parts-of-speech filtering, the
// deinflection carries no condition requirement (plain, unbent text),
// or the entry's rules intersect the deinflection's bitmask.
func keepByConditions(dictEntry options.DictionaryEntry, d deinflection, entry dictentry.TermEntry, transformer *langtransform.Transformer) bool {
	if !dictEntry.PartsOfSpeechFilter || d.Conditions == 0 {
		return true
	}
	if transformer == nil {
		return true
	}
	entryFlags := transformer.FlagsFromConditionTypesLenient(entry.Rules)
	return langtransform.ConditionsMatch(d.Conditions, entryFlags)
}

// resolveDictionaryDeinflections handles dictionary-provided
// deinflections: any matched entry whose glossary carries a
// GlossaryKindDeinflection item points lookup at a second,
// dictionary-asserted headword (FormOf); run a second bulk-lookup
// round for those, then strip the deinflection-glossary items from
// every candidate and drop entries that existed only to redirect.
func (t *Translator) resolveDictionaryDeinflections(ctx context.Context, candidates []candidate, opts options.ProfileOptions, enabledDictionaries map[string]bool) ([]candidate, error) {
	var extra []deinflection
	var extraSource []int // index into candidates, the redirecting entry

	for i, c := range candidates {
		for _, g := range c.Entry.Glossary {
			if g.Kind != dictentry.GlossaryKindDeinflection {
				continue
			}
			algRules := c.Deinflection.Candidates[0].InflectionRules
			source := dictentry.ChainSourceDictionary
			if len(algRules) > 0 {
				source = dictentry.ChainSourceBoth
			}
			extra = append(extra, deinflection{
				OriginalText:    c.Deinflection.OriginalText,
				TransformedText: c.Deinflection.TransformedText,
				DeinflectedText: g.FormOf,
				Conditions:      0,
				Candidates: []dictentry.InflectionRuleChainCandidate{{
					Source:          source,
					InflectionRules: append(append([]string{}, algRules...), g.InflectionRuleChain...),
				}},
			})
			extraSource = append(extraSource, i)
		}
	}

	candidates = stripDeinflectionGlossary(candidates)

	if len(extra) == 0 {
		return candidates, nil
	}

	second, err := t.bulkLookup(ctx, extra, opts, enabledDictionaries)
	if err != nil {
		return nil, err
	}
	for i := range second {
		second[i].MatchSource = dictentry.MatchSourceSequence
	}
	return append(candidates, second...), nil
}

// stripDeinflectionGlossary removes GlossaryKindDeinflection items from
// every candidate's entry and drops candidates left with no content.
func stripDeinflectionGlossary(candidates []candidate) []candidate {
	out := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		kept := make([]dictentry.TermGlossary, 0, len(c.Entry.Glossary))
		for _, g := range c.Entry.Glossary {
			if g.Kind != dictentry.GlossaryKindDeinflection {
				kept = append(kept, g)
			}
		}
		if len(kept) == 0 {
			continue
		}
		c.Entry.Glossary = kept
		out = append(out, c)
	}
	return out
}
