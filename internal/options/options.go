// Package options defines ProfileOptions: the immutable-per-call
// snapshot of profile configuration consumed by the translator and the
// scanner.
package options

import "yomidict/internal/dictentry"

// Mode selects the Translator.FindTerms merge/group strategy.
type Mode int

const (
	ModeSimple Mode = iota
	ModeGroup
	ModeMerge
	ModeSplit
)

// SearchResolution controls the candidate-shrink granularity used when
// enumerating deinflection candidates.
type SearchResolution int

const (
	ResolutionLetter SearchResolution = iota
	ResolutionWord
)

// FrequencyOrder controls the direction of the frequency-rank tie-break
// applied during ranking.
type FrequencyOrder int

const (
	FrequencyAscending FrequencyOrder = iota
	FrequencyDescending
)

// DictionaryEntry is one value of opts.EnabledDictionaryMap, describing
// how a single enabled dictionary participates in lookup.
type DictionaryEntry struct {
	Index                  int
	Alias                  string
	AllowSecondarySearches bool
	PartsOfSpeechFilter    bool
	UseDeinflections       bool
}

// TextReplacement is one regex rewrite rule applied before language
// pre-processors.
type TextReplacement struct {
	Pattern     string
	Replacement string
	Global      bool
	IgnoreCase  bool
}

// TextReplacementGroup is one ordered attempt at opts.TextReplacements.
// IncludeRaw means "also try the raw, unreplaced text" alongside this
// group's rewrites.
type TextReplacementGroup struct {
	IncludeRaw   bool
	Replacements []TextReplacement
}

// ProfileOptions is the read-only configuration snapshot for one
// lookup or scan. The core never mutates a value of this type;
// Translator.FindTerms and Scanner.Search take it by value.
type ProfileOptions struct {
	Language    string
	Mode        Mode
	MatchType   dictentry.MatchType
	Deinflect   bool
	PrimaryReading string

	MainDictionary             string
	EnabledDictionaryMap       map[string]DictionaryEntry
	ExcludeDictionaryDefinitions map[string]bool

	MaxResults int // 0 means unbounded

	SortFrequencyDictionary      string
	SortFrequencyDictionaryOrder FrequencyOrder

	RemoveNonJapaneseCharacters bool
	SearchResolution            SearchResolution
	TextReplacements             []TextReplacementGroup

	ScanLength          int
	SentenceScanExtent  int
	SentenceTerminators []rune

	// CurrentProfileAnkiOptions is carried opaquely; the core never
	// interprets it.
	CurrentProfileAnkiOptions any
}

// DefaultSentenceTerminators returns the punctuation and newline runes
// treated as sentence boundaries by default.
func DefaultSentenceTerminators() []rune {
	return []rune{'.', '!', '?', '。', '？', '！', '\n'}
}

// Default returns a ProfileOptions with the Japanese-friendly defaults
// used when no profile snapshot is otherwise specified (exercised by the
// CLI and by tests).
func Default() ProfileOptions {
	return ProfileOptions{
		Language:                     "ja",
		Mode:                         ModeGroup,
		MatchType:                    dictentry.MatchExact,
		Deinflect:                    true,
		EnabledDictionaryMap:         make(map[string]DictionaryEntry),
		ExcludeDictionaryDefinitions: make(map[string]bool),
		RemoveNonJapaneseCharacters:  true,
		SearchResolution:             ResolutionLetter,
		ScanLength:                   20,
		SentenceScanExtent:           0,
		SentenceTerminators:          DefaultSentenceTerminators(),
	}
}

// EnabledDictionaryNames returns the dictionary names in opts in their
// configured priority order (lower Index first). Ranking and
// Store.FindTermsBulk's dictionary filter do not call it; they read
// EnabledDictionaryMap directly.
func (o ProfileOptions) EnabledDictionaryNames() []string {
	names := make([]string, 0, len(o.EnabledDictionaryMap))
	for name := range o.EnabledDictionaryMap {
		names = append(names, name)
	}
	// Stable insertion order isn't guaranteed by map iteration; sort by
	// configured Index, the dimension ranking step 7d actually cares
	// about.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && o.EnabledDictionaryMap[names[j-1]].Index > o.EnabledDictionaryMap[names[j]].Index; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}
