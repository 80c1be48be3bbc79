// Package dictentry holds the record shapes shared by the importer, the
// store, and the translator: persisted term/kanji/meta records and the
// lookup-time TermDictionaryEntry.
package dictentry

import "yomidict/internal/structcontent"

// MetaMode discriminates the three DatabaseMeta variants.
type MetaMode string

const (
	MetaModeFreq MetaMode = "freq"
	MetaModePitch MetaMode = "pitch"
	MetaModeIPA  MetaMode = "ipa"
)

// TermGlossaryKind discriminates a TermGlossary's content.
type TermGlossaryKind int

const (
	GlossaryKindContent TermGlossaryKind = iota
	GlossaryKindDeinflection
)

// TermGlossary is a discriminated union: either a content payload
// (text/image/structured-content) or a cross-reference to another
// headword with a pre-baked inflection trace.
type TermGlossary struct {
	Kind    TermGlossaryKind
	Content structcontent.Glossary

	// Deinflection fields, valid when Kind == GlossaryKindDeinflection.
	FormOf              string
	InflectionRuleChain []string
}

// TermEntry is the DatabaseTermEntry persisted record.
type TermEntry struct {
	ID                int64
	UUID              string
	Expression        string
	Reading           string
	ExpressionReverse string
	ReadingReverse    string
	DefinitionTags    []string
	LegacyTags        []string
	Rules             []string
	Score             int8
	Sequence          *int64
	TermTags          []string
	Glossary          []TermGlossary
	Dictionary        string

	// PlainDefinition is the concatenated structcontent.CollectText
	// output, synthesized at import time so downstream search/display
	// code never needs to walk the tree just to get plain text.
	PlainDefinition string
}

// FrequencyData is the union {integer | string | {value, displayValue?}}
// normalized into one struct.
type FrequencyData struct {
	Value            int64
	DisplayValue     string
	HasDisplayValue  bool
	Reading          string
	HasReading       bool
}

// PitchAccent is one downstep/nasal/devoicing annotated pitch pattern.
type PitchAccent struct {
	Position int
	Tags     []string
	Nasal    []int
	Devoice  []int
}

// PhoneticTranscription carries an IPA string with optional tags.
type PhoneticTranscription struct {
	IPA  string
	Tags []string
}

// MetaEntry is the DatabaseMeta persisted record (three variants).
type MetaEntry struct {
	ID         int64
	Expression string
	Mode       MetaMode
	Dictionary string

	Frequency *FrequencyData
	Pitch     []PitchAccent
	Reading   string // pitch/phonetic reading, when present
	Phonetic  []PhoneticTranscription
}

// KanjiStats is a small set of named numeric/string stats (stroke count,
// grade, frequency, JLPT level, ...), stored opaquely since the set is
// dictionary-defined.
type KanjiStats map[string]string

// KanjiEntry is the DatabaseKanjiEntry persisted record.
type KanjiEntry struct {
	ID          int64
	Character   string
	Onyomi      []string
	Kunyomi     []string
	Tags        []string
	Definitions []string
	Stats       KanjiStats
	Dictionary  string
}

// Tag is a resolved dictionary tag record.
type Tag struct {
	Name        string
	Category    string
	Order       int
	Score       int
	Notes       string
	Dictionaries []string
}

// PlaceholderTag builds the placeholder Tag for an unresolved tag name:
// "{name, category: 'default', order: 0, score: 0,
// dictionaries: [source_dict]}".
func PlaceholderTag(name, sourceDictionary string) Tag {
	return Tag{
		Name:         name,
		Category:     "default",
		Order:        0,
		Score:        0,
		Dictionaries: []string{sourceDictionary},
	}
}

// MetaCounts is the per-kind import count breakdown in DictionarySummary.
type MetaCounts struct {
	Freq  int
	Pitch int
	IPA   int
}

// DictionarySummary is import-time metadata recorded for one imported
// dictionary archive.
type DictionarySummary struct {
	Title                     string
	Revision                  string
	Version                   int
	Sequenced                 bool
	ImportDate                string // RFC3339 date-only
	PrefixWildcardsSupported  bool
	TermCount                 int
	TermMetaCounts            MetaCounts
	KanjiCount                int
	KanjiMetaCounts           MetaCounts
	TagMetaCount              int
	MediaCount                int
	Author                    string
	URL                       string
	Description               string
	Attribution               string
	SourceLanguage            string
	TargetLanguage            string
	FrequencyMode             string
}

// ReverseString returns the character-wise (rune-wise) reversal of s,
// used for the expression_reverse/reading_reverse fields and for turning
// a suffix query into a prefix scan on the reversed index.
func ReverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// MatchType is the DB scan variant requested by a query.
type MatchType int

const (
	MatchExact MatchType = iota
	MatchPrefix
	MatchSuffix
)

// MatchSource identifies which index a result was found through.
type MatchSource int

const (
	MatchSourceTerm MatchSource = iota
	MatchSourceReading
	MatchSourceSequence
)

// Headword is a (term, reading) lexical key plus the sources that
// produced it.
type Headword struct {
	Term    string
	Reading string
	Sources []Source
	Tags    []Tag
}

// Source records how one lookup path produced a headword.
type Source struct {
	OriginalText    string
	TransformedText string
	DeinflectedText string
	MatchType       MatchType
	MatchSource     MatchSource
	IsPrimary       bool
}

// InflectionRuleChainSource distinguishes algorithm-derived chains from
// dictionary-provided ones.
type InflectionRuleChainSource int

const (
	ChainSourceAlgorithm InflectionRuleChainSource = iota
	ChainSourceDictionary
	ChainSourceBoth
)

// InflectionRuleChainCandidate is one candidate derivation path.
type InflectionRuleChainCandidate struct {
	Source          InflectionRuleChainSource
	InflectionRules []string
}

// Definition is one glossary contribution to an entry.
type Definition struct {
	HeadwordIndices []int
	Dictionary      string
	Tags            []Tag
	Glossary        []TermGlossary
	Sequence        int64
}

// TermFrequency associates a frequency value with a specific headword.
type TermFrequency struct {
	HeadwordIndex       int
	Dictionary          string
	Value               int64
	DisplayValue        string
	DisplayValueParsed  bool
	HasReading          bool
}

// Pronunciation groups pitch/phonetic data under a headword.
type Pronunciation struct {
	HeadwordIndex int
	Dictionary    string
	Pitches       []PitchAccent
	Phonetics     []PhoneticTranscription
}

// TermDictionaryEntry is the lookup result shape returned to callers.
type TermDictionaryEntry struct {
	Headwords                    []Headword
	Definitions                  []Definition
	Pronunciations               []Pronunciation
	Frequencies                  []TermFrequency
	InflectionRuleChainCandidates []InflectionRuleChainCandidate

	Score                     int
	DictionaryIndex           int
	SourceTermExactMatchCount int
	MaxOriginalTextLength     int
	MatchPrimaryReading       bool
	FrequencyOrder            *int
}
