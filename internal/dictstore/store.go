// Package dictstore defines the persistent dictionary store: a
// multi-table key/value Store interface with secondary indices over
// headwords, readings, and sequences, and bulk exact/prefix/suffix
// scans, plus the concrete sqlitestore implementation in the
// sqlitestore subpackage.
package dictstore

import (
	"context"

	"yomidict/internal/dictentry"
)

// TermQuery is one element of a FindTermsBulk call; Index correlates
// the returned rows back to the query that produced them.
type TermQuery struct {
	Index int
	Text  string
}

// TermResult is one row returned by FindTermsBulk, tagged with the
// index of the query that produced it.
type TermResult struct {
	QueryIndex int
	Entry      dictentry.TermEntry
	MatchType  dictentry.MatchType
	MatchSource dictentry.MatchSource
}

// MetaResult is one row returned by FindTermMetasBulk.
type MetaResult struct {
	QueryIndex int
	Entry      dictentry.MetaEntry
}

// KanjiResult is one row returned by FindKanjiBulk.
type KanjiResult struct {
	QueryIndex int
	Entry      dictentry.KanjiEntry
}

// KanjiMetaResult is one row returned by FindKanjiMetasBulk.
type KanjiMetaResult struct {
	QueryIndex int
	Entry      dictentry.MetaEntry
}

// ArchiveRecords is the full set of rows one archive import writes, in
// a single write transaction: either all records are committed or none.
type ArchiveRecords struct {
	Summary    dictentry.DictionarySummary
	Terms      []dictentry.TermEntry
	TermMeta   []dictentry.MetaEntry
	Kanji      []dictentry.KanjiEntry
	KanjiMeta  []dictentry.MetaEntry
	Tags       []dictentry.Tag
}

// Store is the persistent dictionary store's public surface.
type Store interface {
	// ImportDictionary writes one archive's records in a single write
	// transaction; a writer excludes all readers and other writers for
	// its duration.
	ImportDictionary(ctx context.Context, records ArchiveRecords) error

	// DeleteDictionary removes every record tagged with dictionary,
	// including its summary row.
	DeleteDictionary(ctx context.Context, dictionary string) error

	// ListDictionaries returns every imported DictionarySummary.
	ListDictionaries(ctx context.Context) ([]dictentry.DictionarySummary, error)

	// FindTermsBulk runs one scan per query against the term index
	// implied by matchType (kana-only queries scan the reading index,
	// everything else scans the expression index), filtered to
	// dictionaries present in enabledDictionaries. Results additionally
	// include, with QueryIndex -1 and MatchSourceSequence, every entry of
	// an enabled dictionary that shares a sequence number with a returned
	// entry and was not itself returned; no per-dictionary opt-in is
	// consulted.
	FindTermsBulk(ctx context.Context, queries []TermQuery, matchType dictentry.MatchType, enabledDictionaries map[string]bool) ([]TermResult, error)

	// FindTermMetasBulk looks up frequency/pitch/phonetic meta rows by
	// expression across all three meta tables.
	FindTermMetasBulk(ctx context.Context, expressions []string, enabledDictionaries map[string]bool) ([]MetaResult, error)

	// FindKanjiBulk looks up kanji entries by character.
	FindKanjiBulk(ctx context.Context, characters []string, enabledDictionaries map[string]bool) ([]KanjiResult, error)

	// FindKanjiMetasBulk looks up kanji frequency meta rows by character.
	FindKanjiMetasBulk(ctx context.Context, characters []string, enabledDictionaries map[string]bool) ([]KanjiMetaResult, error)

	// FindTagMeta resolves one (name, dictionary) tag reference; returns
	// (nil, nil) on a miss, never an error.
	FindTagMeta(ctx context.Context, name, dictionary string) (*dictentry.Tag, error)

	// Close releases the underlying database handle.
	Close() error
}
