package translator

import (
	"context"

	"yomidict/internal/dictentry"
	"yomidict/internal/options"
)

// enrich collects every distinct headword expression across entries,
// bulk-fetches frequency/pitch/phonetic meta rows, and distributes them
// back onto the headwords sharing the expression. Pitch and phonetic
// rows that carry a reading go only to headwords with that reading;
// frequency rows go to every such headword, whatever their reading.
func (t *Translator) enrich(ctx context.Context, entries []*dictentry.TermDictionaryEntry, opts options.ProfileOptions, enabledDictionaries map[string]bool) error {
	expressions := distinctExpressions(entries)
	if len(expressions) == 0 {
		return nil
	}

	results, err := t.Store.FindTermMetasBulk(ctx, expressions, enabledDictionaries)
	if err != nil {
		return err
	}

	byExpression := make(map[string][]dictentry.MetaEntry, len(expressions))
	for _, r := range results {
		if r.QueryIndex < 0 || r.QueryIndex >= len(expressions) {
			continue
		}
		expr := expressions[r.QueryIndex]
		byExpression[expr] = append(byExpression[expr], r.Entry)
	}

	for _, e := range entries {
		for hi, hw := range e.Headwords {
			for _, meta := range byExpression[hw.Term] {
				if meta.Mode != dictentry.MetaModeFreq && meta.Reading != "" && meta.Reading != hw.Reading {
					continue
				}
				applyMeta(e, hi, meta)
			}
		}
	}
	return nil
}

func applyMeta(e *dictentry.TermDictionaryEntry, headwordIndex int, meta dictentry.MetaEntry) {
	switch meta.Mode {
	case dictentry.MetaModeFreq:
		if meta.Frequency == nil {
			return
		}
		e.Frequencies = append(e.Frequencies, dictentry.TermFrequency{
			HeadwordIndex:      headwordIndex,
			Dictionary:         meta.Dictionary,
			Value:              meta.Frequency.Value,
			DisplayValue:       meta.Frequency.DisplayValue,
			DisplayValueParsed: meta.Frequency.HasDisplayValue,
			HasReading:         meta.Frequency.HasReading,
		})
	case dictentry.MetaModePitch, dictentry.MetaModeIPA:
		p := findOrCreatePronunciation(e, headwordIndex, meta.Dictionary)
		p.Pitches = append(p.Pitches, meta.Pitch...)
		p.Phonetics = append(p.Phonetics, meta.Phonetic...)
	}
}

func findOrCreatePronunciation(e *dictentry.TermDictionaryEntry, headwordIndex int, dictionary string) *dictentry.Pronunciation {
	for i := range e.Pronunciations {
		if e.Pronunciations[i].HeadwordIndex == headwordIndex && e.Pronunciations[i].Dictionary == dictionary {
			return &e.Pronunciations[i]
		}
	}
	e.Pronunciations = append(e.Pronunciations, dictentry.Pronunciation{HeadwordIndex: headwordIndex, Dictionary: dictionary})
	return &e.Pronunciations[len(e.Pronunciations)-1]
}

func distinctExpressions(entries []*dictentry.TermDictionaryEntry) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		for _, hw := range e.Headwords {
			if !seen[hw.Term] {
				seen[hw.Term] = true
				out = append(out, hw.Term)
			}
		}
	}
	return out
}
