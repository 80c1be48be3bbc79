package translator

import (
	"yomidict/internal/dictentry"
	"yomidict/internal/options"
)

// applyMode performs mode-specific merging of the matched entries.
// Simple leaves one entry per matched database row untouched; Group
// and Split merge same (term, reading) rows across dictionaries into
// one entry; Merge additionally unifies same-sequence headword
// clusters, the way dictionary-bundled sequence numbers tie inflected
// and citation forms together.
func applyMode(entries []*dictentry.TermDictionaryEntry, opts options.ProfileOptions) []*dictentry.TermDictionaryEntry {
	switch opts.Mode {
	case options.ModeSimple:
		return entries
	case options.ModeGroup, options.ModeSplit:
		return groupByHeadword(entries)
	case options.ModeMerge:
		return groupBySequence(groupByHeadword(entries), opts)
	default:
		return entries
	}
}

type headwordKey struct {
	term    string
	reading string
}

// groupByHeadword merges entries that share a (term, reading) pair,
// combining their definitions/frequencies/pronunciations and widening
// the aggregate ranking fields to the best value seen in either.
func groupByHeadword(entries []*dictentry.TermDictionaryEntry) []*dictentry.TermDictionaryEntry {
	groups := make(map[headwordKey]*dictentry.TermDictionaryEntry, len(entries))
	order := make([]headwordKey, 0, len(entries))

	for _, e := range entries {
		hw := e.Headwords[0]
		key := headwordKey{term: hw.Term, reading: hw.Reading}

		g, ok := groups[key]
		if !ok {
			clone := *e
			clone.Headwords = append([]dictentry.Headword{}, e.Headwords...)
			clone.Definitions = append([]dictentry.Definition{}, e.Definitions...)
			clone.Frequencies = append([]dictentry.TermFrequency{}, e.Frequencies...)
			clone.Pronunciations = append([]dictentry.Pronunciation{}, e.Pronunciations...)
			clone.InflectionRuleChainCandidates = append([]dictentry.InflectionRuleChainCandidate{}, e.InflectionRuleChainCandidates...)
			groups[key] = &clone
			order = append(order, key)
			continue
		}

		g.Definitions = append(g.Definitions, e.Definitions...)
		g.Frequencies = append(g.Frequencies, e.Frequencies...)
		g.Pronunciations = append(g.Pronunciations, e.Pronunciations...)
		g.InflectionRuleChainCandidates = append(g.InflectionRuleChainCandidates, e.InflectionRuleChainCandidates...)
		g.Headwords[0].Sources = append(g.Headwords[0].Sources, e.Headwords[0].Sources...)
		widenAggregate(g, e)
	}

	out := make([]*dictentry.TermDictionaryEntry, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	return out
}

// groupBySequence further merges groupByHeadword's output across
// headwords sharing a non-zero dictionary sequence number, and clears
// glossary content for any dictionary opts asked excluded from display.
func groupBySequence(entries []*dictentry.TermDictionaryEntry, opts options.ProfileOptions) []*dictentry.TermDictionaryEntry {
	groups := make(map[int64]*dictentry.TermDictionaryEntry)
	order := make([]int64, 0, len(entries))
	var standalone []*dictentry.TermDictionaryEntry

	for _, e := range entries {
		seq := entrySequence(e)
		if seq == 0 {
			standalone = append(standalone, e)
			continue
		}
		g, ok := groups[seq]
		if !ok {
			groups[seq] = e
			order = append(order, seq)
			continue
		}
		mergeEntryInto(g, e)
	}

	out := make([]*dictentry.TermDictionaryEntry, 0, len(order)+len(standalone))
	for _, seq := range order {
		out = append(out, applyExclusions(groups[seq], opts))
	}
	for _, e := range standalone {
		out = append(out, applyExclusions(e, opts))
	}
	return out
}

func entrySequence(e *dictentry.TermDictionaryEntry) int64 {
	for _, d := range e.Definitions {
		if d.Sequence != 0 {
			return d.Sequence
		}
	}
	return 0
}

// mergeEntryInto appends e's headwords/definitions onto g, remapping
// every HeadwordIndex reference by g's prior headword count.
func mergeEntryInto(g, e *dictentry.TermDictionaryEntry) {
	offset := len(g.Headwords)

	for _, d := range e.Definitions {
		shifted := d
		shifted.HeadwordIndices = make([]int, len(d.HeadwordIndices))
		for i, hi := range d.HeadwordIndices {
			shifted.HeadwordIndices[i] = hi + offset
		}
		g.Definitions = append(g.Definitions, shifted)
	}
	g.Headwords = append(g.Headwords, e.Headwords...)

	for _, f := range e.Frequencies {
		f.HeadwordIndex += offset
		g.Frequencies = append(g.Frequencies, f)
	}
	for _, p := range e.Pronunciations {
		p.HeadwordIndex += offset
		g.Pronunciations = append(g.Pronunciations, p)
	}
	g.InflectionRuleChainCandidates = append(g.InflectionRuleChainCandidates, e.InflectionRuleChainCandidates...)
	widenAggregate(g, e)
}

func widenAggregate(g, e *dictentry.TermDictionaryEntry) {
	if e.Score > g.Score {
		g.Score = e.Score
	}
	if e.MaxOriginalTextLength > g.MaxOriginalTextLength {
		g.MaxOriginalTextLength = e.MaxOriginalTextLength
	}
	if e.SourceTermExactMatchCount > g.SourceTermExactMatchCount {
		g.SourceTermExactMatchCount = e.SourceTermExactMatchCount
	}
	if e.MatchPrimaryReading {
		g.MatchPrimaryReading = true
	}
	if e.DictionaryIndex < g.DictionaryIndex {
		g.DictionaryIndex = e.DictionaryIndex
	}
}

func applyExclusions(e *dictentry.TermDictionaryEntry, opts options.ProfileOptions) *dictentry.TermDictionaryEntry {
	if len(opts.ExcludeDictionaryDefinitions) == 0 {
		return e
	}
	for i := range e.Definitions {
		if opts.ExcludeDictionaryDefinitions[e.Definitions[i].Dictionary] {
			e.Definitions[i].Glossary = nil
		}
	}
	return e
}
