package translator

import (
	"yomidict/internal/dictentry"
	"yomidict/internal/options"
	"yomidict/internal/tagaggregator"
)

// groupKey identifies one matched database row: deinflections that
// land on the same (dictionary, entry) pair merge into a single
// TermDictionaryEntry.
type groupKey struct {
	dictionary string
	id         int64
}

// buildEntries constructs one TermDictionaryEntry per distinct matched
// entry, keeping only the source(s) derived from the longest original
// text (shorter transformed text dropped, equal merged, longer
// replaces), and records every tag name reference into aggregator for
// later batched resolution.
func buildEntries(candidates []candidate, opts options.ProfileOptions, aggregator *tagaggregator.Aggregator) []*dictentry.TermDictionaryEntry {
	groups := make(map[groupKey]*dictentry.TermDictionaryEntry)
	bestLen := make(map[groupKey]int)
	order := make([]groupKey, 0, len(candidates))

	for _, c := range candidates {
		key := groupKey{dictionary: c.Entry.Dictionary, id: c.Entry.ID}
		originalLen := len([]rune(c.Deinflection.OriginalText))
		source := dictentry.Source{
			OriginalText:    c.Deinflection.OriginalText,
			TransformedText: c.Deinflection.TransformedText,
			DeinflectedText: c.Deinflection.DeinflectedText,
			MatchType:       c.MatchType,
			MatchSource:     c.MatchSource,
			IsPrimary:       true,
		}

		entry, exists := groups[key]
		if !exists {
			entry = newTermDictionaryEntry(c, opts)
			entry.Headwords[0].Sources = []dictentry.Source{source}
			entry.InflectionRuleChainCandidates = append(entry.InflectionRuleChainCandidates, c.Deinflection.Candidates...)
			entry.MaxOriginalTextLength = originalLen
			groups[key] = entry
			bestLen[key] = originalLen
			order = append(order, key)
			aggregateTagNames(c.Entry, aggregator)
			continue
		}

		if originalLen > entry.MaxOriginalTextLength {
			entry.MaxOriginalTextLength = originalLen
		}

		switch {
		case originalLen > bestLen[key]:
			entry.Headwords[0].Sources = []dictentry.Source{source}
			entry.InflectionRuleChainCandidates = append([]dictentry.InflectionRuleChainCandidate{}, c.Deinflection.Candidates...)
			bestLen[key] = originalLen
		case originalLen == bestLen[key]:
			entry.Headwords[0].Sources = append(entry.Headwords[0].Sources, source)
			entry.InflectionRuleChainCandidates = append(entry.InflectionRuleChainCandidates, c.Deinflection.Candidates...)
		default:
			// A shorter original-text match on an already-seen entry is
			// strictly worse information and is dropped.
		}
	}

	out := make([]*dictentry.TermDictionaryEntry, 0, len(order))
	for _, key := range order {
		entry := groups[key]
		entry.SourceTermExactMatchCount = countExactMatches(entry.Headwords[0].Sources)
		out = append(out, entry)
	}
	return out
}

func countExactMatches(sources []dictentry.Source) int {
	count := 0
	for _, s := range sources {
		if s.IsPrimary && s.OriginalText == s.DeinflectedText {
			count++
		}
	}
	return count
}

// newTermDictionaryEntry seeds a TermDictionaryEntry from one matched
// database row, with tag lists holding name-only placeholders to be
// filled in by finalizeTags once the aggregator has resolved them.
func newTermDictionaryEntry(c candidate, opts options.ProfileOptions) *dictentry.TermDictionaryEntry {
	entry := c.Entry

	headword := dictentry.Headword{Term: entry.Expression, Reading: entry.Reading}
	headword.Tags = namePlaceholders(entry.TermTags)

	defTags := namePlaceholders(entry.DefinitionTags)
	defTags = append(defTags, namePlaceholders(entry.LegacyTags)...)

	var sequence int64
	if entry.Sequence != nil {
		sequence = *entry.Sequence
	}

	return &dictentry.TermDictionaryEntry{
		Headwords: []dictentry.Headword{headword},
		Definitions: []dictentry.Definition{{
			HeadwordIndices: []int{0},
			Dictionary:      entry.Dictionary,
			Tags:            defTags,
			Glossary:        entry.Glossary,
			Sequence:        sequence,
		}},
		Score:               int(entry.Score),
		DictionaryIndex:     opts.EnabledDictionaryMap[entry.Dictionary].Index,
		MatchPrimaryReading: opts.PrimaryReading != "" && entry.Reading == opts.PrimaryReading,
	}
}

func namePlaceholders(names []string) []dictentry.Tag {
	if len(names) == 0 {
		return nil
	}
	out := make([]dictentry.Tag, len(names))
	for i, name := range names {
		out[i] = dictentry.Tag{Name: name}
	}
	return out
}

func aggregateTagNames(entry dictentry.TermEntry, aggregator *tagaggregator.Aggregator) {
	aggregator.AddTags(entry.Dictionary, entry.TermTags)
	aggregator.AddTags(entry.Dictionary, entry.DefinitionTags)
	aggregator.AddTags(entry.Dictionary, entry.LegacyTags)
}

// finalizeTags replaces every name-only placeholder Tag with its
// resolved record from a single batched resolution pass. Headword-level
// tags are resolved against the entry's first definition's dictionary;
// a headword merged across dictionaries (Group and Merge modes) keeps
// whichever dictionary contributed it first.
func finalizeTags(entries []*dictentry.TermDictionaryEntry, resolved map[string]map[string]dictentry.Tag) {
	for _, e := range entries {
		if len(e.Definitions) > 0 {
			dictionary := e.Definitions[0].Dictionary
			for hi := range e.Headwords {
				e.Headwords[hi].Tags = resolveTagList(resolved, dictionary, e.Headwords[hi].Tags)
			}
		}
		for di := range e.Definitions {
			e.Definitions[di].Tags = resolveTagList(resolved, e.Definitions[di].Dictionary, e.Definitions[di].Tags)
		}
	}
}

func resolveTagList(resolved map[string]map[string]dictentry.Tag, dictionary string, placeholders []dictentry.Tag) []dictentry.Tag {
	if len(placeholders) == 0 {
		return placeholders
	}
	out := make([]dictentry.Tag, len(placeholders))
	for i, p := range placeholders {
		if tag, ok := tagaggregator.Resolve(resolved, dictionary, p.Name); ok {
			out[i] = tag
			continue
		}
		out[i] = p
	}
	return out
}
