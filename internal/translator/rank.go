package translator

import (
	"sort"

	"yomidict/internal/dictentry"
	"yomidict/internal/options"
)

// rankEntries orders entries by a seven-key tuple: exact-match count,
// primary-reading match, longest original text, configured dictionary
// priority, score, frequency rank, then dictionary priority again as
// the final tie-break.
func rankEntries(entries []*dictentry.TermDictionaryEntry, opts options.ProfileOptions) {
	for _, e := range entries {
		e.FrequencyOrder = computeFrequencyOrder(e, opts)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.SourceTermExactMatchCount != b.SourceTermExactMatchCount {
			return a.SourceTermExactMatchCount > b.SourceTermExactMatchCount
		}
		if a.MatchPrimaryReading != b.MatchPrimaryReading {
			return a.MatchPrimaryReading
		}
		if a.MaxOriginalTextLength != b.MaxOriginalTextLength {
			return a.MaxOriginalTextLength > b.MaxOriginalTextLength
		}
		if a.DictionaryIndex != b.DictionaryIndex {
			return a.DictionaryIndex < b.DictionaryIndex
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		aHas, bHas := a.FrequencyOrder != nil, b.FrequencyOrder != nil
		if aHas != bHas {
			// Entries with no frequency rank last regardless of sort direction.
			return aHas
		}
		if aHas && bHas && *a.FrequencyOrder != *b.FrequencyOrder {
			if opts.SortFrequencyDictionaryOrder == options.FrequencyDescending {
				return *a.FrequencyOrder > *b.FrequencyOrder
			}
			return *a.FrequencyOrder < *b.FrequencyOrder
		}
		return a.DictionaryIndex < b.DictionaryIndex
	})
}

func computeFrequencyOrder(e *dictentry.TermDictionaryEntry, opts options.ProfileOptions) *int {
	if opts.SortFrequencyDictionary == "" {
		return nil
	}
	for _, f := range e.Frequencies {
		if f.Dictionary == opts.SortFrequencyDictionary {
			v := int(f.Value)
			return &v
		}
	}
	return nil
}
