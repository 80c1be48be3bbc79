// Package sqlitestore is the concrete dictstore.Store implementation:
// database/sql over github.com/mattn/go-sqlite3.
//
// Concurrency model: a sync.RWMutex serializes the single write
// transaction an import takes against any number of concurrent read
// transactions a lookup takes. Because the mutex itself excludes
// readers for the whole import, a reader can never observe a torn
// dictionary summary; the monotonic generation counter this package
// still maintains exists for observability and for callers who want to
// detect "a refresh happened since I last read" without reopening a
// transaction.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	_ "github.com/mattn/go-sqlite3"

	"yomidict/internal/dictentry"
	"yomidict/internal/dictstore"
)

// Store is the sqlite-backed dictstore.Store.
type Store struct {
	db *sql.DB

	mu         sync.RWMutex
	generation atomic.Int64
}

var _ dictstore.Store = (*Store)(nil)

// Open opens (creating if necessary) the sqlite file at path and runs
// the schema DDL.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // go-sqlite3 serializes writers anyway; one conn keeps the RWMutex meaningful

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestore: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Generation returns the current write generation, bumped once per
// completed ImportDictionary/DeleteDictionary call.
func (s *Store) Generation() int64 { return s.generation.Load() }

// ImportDictionary writes one archive's records in a single write
// transaction, excluding all readers for its duration.
func (s *Store) ImportDictionary(ctx context.Context, records dictstore.ArchiveRecords) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitestore: begin import tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertSummary(tx, records.Summary); err != nil {
		return err
	}
	if err := insertTerms(tx, records.Terms); err != nil {
		return err
	}
	if err := insertTermMeta(tx, records.TermMeta); err != nil {
		return err
	}
	if err := insertKanji(tx, records.Kanji); err != nil {
		return err
	}
	if err := insertKanjiMeta(tx, records.KanjiMeta); err != nil {
		return err
	}
	if err := insertTags(tx, records.Summary.Title, records.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlitestore: commit import tx: %w", err)
	}
	s.generation.Add(1)
	return nil
}

func insertSummary(tx *sql.Tx, summary dictentry.DictionarySummary) error {
	_, err := tx.Exec(`
		INSERT INTO dictionaries (
			title, revision, version, sequenced, import_date, prefix_wildcards_supported,
			term_count, term_meta_freq_count, term_meta_pitch_count, term_meta_ipa_count,
			kanji_count, kanji_meta_freq_count, kanji_meta_pitch_count, kanji_meta_ipa_count,
			tag_meta_count, media_count, author, url, description, attribution,
			source_language, target_language, frequency_mode
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(title) DO UPDATE SET
			revision=excluded.revision, version=excluded.version, sequenced=excluded.sequenced,
			import_date=excluded.import_date, prefix_wildcards_supported=excluded.prefix_wildcards_supported,
			term_count=excluded.term_count, term_meta_freq_count=excluded.term_meta_freq_count,
			term_meta_pitch_count=excluded.term_meta_pitch_count, term_meta_ipa_count=excluded.term_meta_ipa_count,
			kanji_count=excluded.kanji_count, kanji_meta_freq_count=excluded.kanji_meta_freq_count,
			kanji_meta_pitch_count=excluded.kanji_meta_pitch_count, kanji_meta_ipa_count=excluded.kanji_meta_ipa_count,
			tag_meta_count=excluded.tag_meta_count, media_count=excluded.media_count,
			author=excluded.author, url=excluded.url, description=excluded.description,
			attribution=excluded.attribution, source_language=excluded.source_language,
			target_language=excluded.target_language, frequency_mode=excluded.frequency_mode
	`,
		summary.Title, summary.Revision, summary.Version, boolToInt(summary.Sequenced), summary.ImportDate, boolToInt(summary.PrefixWildcardsSupported),
		summary.TermCount, summary.TermMetaCounts.Freq, summary.TermMetaCounts.Pitch, summary.TermMetaCounts.IPA,
		summary.KanjiCount, summary.KanjiMetaCounts.Freq, summary.KanjiMetaCounts.Pitch, summary.KanjiMetaCounts.IPA,
		summary.TagMetaCount, summary.MediaCount, summary.Author, summary.URL, summary.Description, summary.Attribution,
		summary.SourceLanguage, summary.TargetLanguage, summary.FrequencyMode,
	)
	if err != nil {
		return fmt.Errorf("sqlitestore: insert dictionary summary: %w", err)
	}
	return nil
}

func insertTerms(tx *sql.Tx, terms []dictentry.TermEntry) error {
	if len(terms) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`
		INSERT INTO terms (
			uuid, expression, reading, expression_reverse, reading_reverse,
			definition_tags, legacy_tags, rules, score, sequence, term_tags,
			glossary, plain_definition, dictionary
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`)
	if err != nil {
		return fmt.Errorf("sqlitestore: prepare term insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range terms {
		glossary, err := encodeGlossaries(t.Glossary)
		if err != nil {
			return fmt.Errorf("sqlitestore: encode glossary for %q: %w", t.Expression, err)
		}
		var sequence any
		if t.Sequence != nil {
			sequence = *t.Sequence
		}
		if _, err := stmt.Exec(
			t.UUID, t.Expression, t.Reading, t.ExpressionReverse, t.ReadingReverse,
			joinStrings(t.DefinitionTags), joinStrings(t.LegacyTags), joinStrings(t.Rules),
			t.Score, sequence, joinStrings(t.TermTags), glossary, t.PlainDefinition, t.Dictionary,
		); err != nil {
			return fmt.Errorf("sqlitestore: insert term %q: %w", t.Expression, err)
		}
	}
	return nil
}

func insertTermMeta(tx *sql.Tx, entries []dictentry.MetaEntry) error {
	freqStmt, err := tx.Prepare(`INSERT INTO term_meta_freq (expression, dictionary, payload) VALUES (?,?,?)`)
	if err != nil {
		return fmt.Errorf("sqlitestore: prepare term_meta_freq insert: %w", err)
	}
	defer freqStmt.Close()
	pitchStmt, err := tx.Prepare(`INSERT INTO term_meta_pitch (expression, dictionary, payload) VALUES (?,?,?)`)
	if err != nil {
		return fmt.Errorf("sqlitestore: prepare term_meta_pitch insert: %w", err)
	}
	defer pitchStmt.Close()
	phoneticStmt, err := tx.Prepare(`INSERT INTO term_meta_phonetic (expression, dictionary, payload) VALUES (?,?,?)`)
	if err != nil {
		return fmt.Errorf("sqlitestore: prepare term_meta_phonetic insert: %w", err)
	}
	defer phoneticStmt.Close()

	for _, m := range entries {
		switch m.Mode {
		case dictentry.MetaModeFreq:
			payload, err := marshalFrequency(m.Frequency)
			if err != nil {
				return fmt.Errorf("sqlitestore: encode freq meta for %q: %w", m.Expression, err)
			}
			if _, err := freqStmt.Exec(m.Expression, m.Dictionary, payload); err != nil {
				return fmt.Errorf("sqlitestore: insert freq meta %q: %w", m.Expression, err)
			}
		case dictentry.MetaModePitch:
			payload, err := marshalPitch(m.Reading, m.Pitch)
			if err != nil {
				return fmt.Errorf("sqlitestore: encode pitch meta for %q: %w", m.Expression, err)
			}
			if _, err := pitchStmt.Exec(m.Expression, m.Dictionary, payload); err != nil {
				return fmt.Errorf("sqlitestore: insert pitch meta %q: %w", m.Expression, err)
			}
		case dictentry.MetaModeIPA:
			payload, err := marshalPhonetic(m.Reading, m.Phonetic)
			if err != nil {
				return fmt.Errorf("sqlitestore: encode phonetic meta for %q: %w", m.Expression, err)
			}
			if _, err := phoneticStmt.Exec(m.Expression, m.Dictionary, payload); err != nil {
				return fmt.Errorf("sqlitestore: insert phonetic meta %q: %w", m.Expression, err)
			}
		}
	}
	return nil
}

func insertKanji(tx *sql.Tx, entries []dictentry.KanjiEntry) error {
	if len(entries) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`
		INSERT INTO kanji (character, onyomi, kunyomi, tags, definitions, stats, dictionary)
		VALUES (?,?,?,?,?,?,?)
	`)
	if err != nil {
		return fmt.Errorf("sqlitestore: prepare kanji insert: %w", err)
	}
	defer stmt.Close()

	for _, k := range entries {
		stats, err := marshalStats(k.Stats)
		if err != nil {
			return fmt.Errorf("sqlitestore: encode kanji stats for %q: %w", k.Character, err)
		}
		if _, err := stmt.Exec(k.Character, joinStrings(k.Onyomi), joinStrings(k.Kunyomi), joinStrings(k.Tags), joinStrings(k.Definitions), stats, k.Dictionary); err != nil {
			return fmt.Errorf("sqlitestore: insert kanji %q: %w", k.Character, err)
		}
	}
	return nil
}

func insertKanjiMeta(tx *sql.Tx, entries []dictentry.MetaEntry) error {
	if len(entries) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`INSERT INTO kanji_meta (character, mode, dictionary, payload) VALUES (?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("sqlitestore: prepare kanji_meta insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range entries {
		payload, err := marshalFrequency(m.Frequency)
		if err != nil {
			return fmt.Errorf("sqlitestore: encode kanji meta for %q: %w", m.Expression, err)
		}
		if _, err := stmt.Exec(m.Expression, string(m.Mode), m.Dictionary, payload); err != nil {
			return fmt.Errorf("sqlitestore: insert kanji meta %q: %w", m.Expression, err)
		}
	}
	return nil
}

func insertTags(tx *sql.Tx, dictionary string, tags []dictentry.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`INSERT INTO tags (name, category, order_num, score, notes, dictionary) VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("sqlitestore: prepare tags insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tags {
		if _, err := stmt.Exec(t.Name, t.Category, t.Order, t.Score, t.Notes, dictionary); err != nil {
			return fmt.Errorf("sqlitestore: insert tag %q: %w", t.Name, err)
		}
	}
	return nil
}

// DeleteDictionary removes every record tagged with dictionary.
func (s *Store) DeleteDictionary(ctx context.Context, dictionary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitestore: begin delete tx: %w", err)
	}
	defer tx.Rollback()

	tables := []string{"terms", "term_meta_freq", "term_meta_pitch", "term_meta_phonetic", "kanji", "kanji_meta", "tags", "media"}
	for _, table := range tables {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE dictionary = ?", table), dictionary); err != nil {
			return fmt.Errorf("sqlitestore: delete from %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`DELETE FROM dictionaries WHERE title = ?`, dictionary); err != nil {
		return fmt.Errorf("sqlitestore: delete dictionary summary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlitestore: commit delete tx: %w", err)
	}
	s.generation.Add(1)
	return nil
}

// ListDictionaries returns every imported DictionarySummary.
func (s *Store) ListDictionaries(ctx context.Context) ([]dictentry.DictionarySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, revision, version, sequenced, import_date, prefix_wildcards_supported,
			term_count, term_meta_freq_count, term_meta_pitch_count, term_meta_ipa_count,
			kanji_count, kanji_meta_freq_count, kanji_meta_pitch_count, kanji_meta_ipa_count,
			tag_meta_count, media_count, author, url, description, attribution,
			source_language, target_language, frequency_mode
		FROM dictionaries ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list dictionaries: %w", err)
	}
	defer rows.Close()

	var out []dictentry.DictionarySummary
	for rows.Next() {
		var d dictentry.DictionarySummary
		var sequenced, prefixWildcards int
		if err := rows.Scan(
			&d.Title, &d.Revision, &d.Version, &sequenced, &d.ImportDate, &prefixWildcards,
			&d.TermCount, &d.TermMetaCounts.Freq, &d.TermMetaCounts.Pitch, &d.TermMetaCounts.IPA,
			&d.KanjiCount, &d.KanjiMetaCounts.Freq, &d.KanjiMetaCounts.Pitch, &d.KanjiMetaCounts.IPA,
			&d.TagMetaCount, &d.MediaCount, &d.Author, &d.URL, &d.Description, &d.Attribution,
			&d.SourceLanguage, &d.TargetLanguage, &d.FrequencyMode,
		); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan dictionary summary: %w", err)
		}
		d.Sequenced = sequenced != 0
		d.PrefixWildcardsSupported = prefixWildcards != 0
		out = append(out, d)
	}
	return out, rows.Err()
}

// FindTermsBulk runs one scan per query (kana-only -> reading index,
// otherwise -> expression index), honoring matchType, filtered to
// enabledDictionaries, followed by a same-sequence expansion pass that
// adds only rows the per-query scans did not already return.
func (s *Store) FindTermsBulk(ctx context.Context, queries []dictstore.TermQuery, matchType dictentry.MatchType, enabledDictionaries map[string]bool) ([]dictstore.TermResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: begin read tx: %w", err)
	}
	defer tx.Rollback()

	var results []dictstore.TermResult
	seenSequences := make(map[int64]bool)
	returned := make(map[int64]bool)

	for _, q := range queries {
		column := "expression"
		matchSource := dictentry.MatchSourceTerm
		if isKanaOnly(q.Text) {
			column = "reading"
			matchSource = dictentry.MatchSourceReading
		}

		rows, err := scanTermColumn(tx, column, q.Text, matchType)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if !enabledDictionaries[row.Dictionary] {
				continue
			}
			results = append(results, dictstore.TermResult{QueryIndex: q.Index, Entry: row, MatchType: matchType, MatchSource: matchSource})
			returned[row.ID] = true
			if row.Sequence != nil && *row.Sequence >= 0 {
				seenSequences[*row.Sequence] = true
			}
		}
	}

	for seq := range seenSequences {
		rows, err := scanTermsBySequence(tx, seq)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if !enabledDictionaries[row.Dictionary] || returned[row.ID] {
				continue
			}
			returned[row.ID] = true
			results = append(results, dictstore.TermResult{QueryIndex: -1, Entry: row, MatchType: dictentry.MatchExact, MatchSource: dictentry.MatchSourceSequence})
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlitestore: commit read tx: %w", err)
	}
	return results, nil
}

func scanTermColumn(tx *sql.Tx, column, text string, matchType dictentry.MatchType) ([]dictentry.TermEntry, error) {
	var where string
	var arg string
	switch matchType {
	case dictentry.MatchExact:
		where = column + " = ?"
		arg = text
	case dictentry.MatchPrefix:
		where = column + " LIKE ? ESCAPE '\\'"
		arg = likeEscape(text) + "%"
	case dictentry.MatchSuffix:
		reverseColumn := column + "_reverse"
		where = reverseColumn + " LIKE ? ESCAPE '\\'"
		arg = likeEscape(dictentry.ReverseString(text)) + "%"
	}

	rows, err := tx.Query(`
		SELECT id, uuid, expression, reading, expression_reverse, reading_reverse,
			definition_tags, legacy_tags, rules, score, sequence, term_tags,
			glossary, plain_definition, dictionary
		FROM terms WHERE `+where+` ORDER BY id`, arg)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: scan terms by %s: %w", column, err)
	}
	defer rows.Close()
	return scanTermRows(rows)
}

func scanTermsBySequence(tx *sql.Tx, sequence int64) ([]dictentry.TermEntry, error) {
	rows, err := tx.Query(`
		SELECT id, uuid, expression, reading, expression_reverse, reading_reverse,
			definition_tags, legacy_tags, rules, score, sequence, term_tags,
			glossary, plain_definition, dictionary
		FROM terms WHERE sequence = ? ORDER BY id`, sequence)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: scan terms by sequence: %w", err)
	}
	defer rows.Close()
	return scanTermRows(rows)
}

func scanTermRows(rows *sql.Rows) ([]dictentry.TermEntry, error) {
	var out []dictentry.TermEntry
	for rows.Next() {
		var t dictentry.TermEntry
		var definitionTags, legacyTags, rules, termTags string
		var glossary []byte
		var sequence sql.NullInt64
		if err := rows.Scan(
			&t.ID, &t.UUID, &t.Expression, &t.Reading, &t.ExpressionReverse, &t.ReadingReverse,
			&definitionTags, &legacyTags, &rules, &t.Score, &sequence, &termTags,
			&glossary, &t.PlainDefinition, &t.Dictionary,
		); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan term row: %w", err)
		}
		t.DefinitionTags = splitStrings(definitionTags)
		t.LegacyTags = splitStrings(legacyTags)
		t.Rules = splitStrings(rules)
		t.TermTags = splitStrings(termTags)
		if sequence.Valid {
			v := sequence.Int64
			t.Sequence = &v
		}
		g, err := decodeGlossaries(glossary)
		if err != nil {
			return nil, fmt.Errorf("sqlitestore: decode glossary for %q: %w", t.Expression, err)
		}
		t.Glossary = g
		out = append(out, t)
	}
	return out, rows.Err()
}

// FindTermMetasBulk looks up frequency/pitch/phonetic rows across all
// three term_meta tables for the given expressions.
func (s *Store) FindTermMetasBulk(ctx context.Context, expressions []string, enabledDictionaries map[string]bool) ([]dictstore.MetaResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: begin read tx: %w", err)
	}
	defer tx.Rollback()

	var out []dictstore.MetaResult
	for i, expr := range expressions {
		freq, err := queryTermMetaFreq(tx, expr)
		if err != nil {
			return nil, err
		}
		pitch, err := queryTermMetaPitch(tx, expr)
		if err != nil {
			return nil, err
		}
		phonetic, err := queryTermMetaPhonetic(tx, expr)
		if err != nil {
			return nil, err
		}
		for _, m := range append(append(freq, pitch...), phonetic...) {
			if !enabledDictionaries[m.Dictionary] {
				continue
			}
			out = append(out, dictstore.MetaResult{QueryIndex: i, Entry: m})
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlitestore: commit read tx: %w", err)
	}
	return out, nil
}

func queryTermMetaFreq(tx *sql.Tx, expression string) ([]dictentry.MetaEntry, error) {
	rows, err := tx.Query(`SELECT id, expression, dictionary, payload FROM term_meta_freq WHERE expression = ? ORDER BY id`, expression)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: query term_meta_freq: %w", err)
	}
	defer rows.Close()

	var out []dictentry.MetaEntry
	for rows.Next() {
		var m dictentry.MetaEntry
		var payload []byte
		if err := rows.Scan(&m.ID, &m.Expression, &m.Dictionary, &payload); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan term_meta_freq row: %w", err)
		}
		m.Mode = dictentry.MetaModeFreq
		freq, err := unmarshalFrequency(payload)
		if err != nil {
			return nil, fmt.Errorf("sqlitestore: decode freq payload for %q: %w", expression, err)
		}
		m.Frequency = freq
		out = append(out, m)
	}
	return out, rows.Err()
}

func queryTermMetaPitch(tx *sql.Tx, expression string) ([]dictentry.MetaEntry, error) {
	rows, err := tx.Query(`SELECT id, expression, dictionary, payload FROM term_meta_pitch WHERE expression = ? ORDER BY id`, expression)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: query term_meta_pitch: %w", err)
	}
	defer rows.Close()

	var out []dictentry.MetaEntry
	for rows.Next() {
		var m dictentry.MetaEntry
		var payload []byte
		if err := rows.Scan(&m.ID, &m.Expression, &m.Dictionary, &payload); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan term_meta_pitch row: %w", err)
		}
		m.Mode = dictentry.MetaModePitch
		reading, pitch, err := unmarshalPitch(payload)
		if err != nil {
			return nil, fmt.Errorf("sqlitestore: decode pitch payload for %q: %w", expression, err)
		}
		m.Reading = reading
		m.Pitch = pitch
		out = append(out, m)
	}
	return out, rows.Err()
}

func queryTermMetaPhonetic(tx *sql.Tx, expression string) ([]dictentry.MetaEntry, error) {
	rows, err := tx.Query(`SELECT id, expression, dictionary, payload FROM term_meta_phonetic WHERE expression = ? ORDER BY id`, expression)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: query term_meta_phonetic: %w", err)
	}
	defer rows.Close()

	var out []dictentry.MetaEntry
	for rows.Next() {
		var m dictentry.MetaEntry
		var payload []byte
		if err := rows.Scan(&m.ID, &m.Expression, &m.Dictionary, &payload); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan term_meta_phonetic row: %w", err)
		}
		m.Mode = dictentry.MetaModeIPA
		reading, phonetic, err := unmarshalPhonetic(payload)
		if err != nil {
			return nil, fmt.Errorf("sqlitestore: decode phonetic payload for %q: %w", expression, err)
		}
		m.Reading = reading
		m.Phonetic = phonetic
		out = append(out, m)
	}
	return out, rows.Err()
}

// FindKanjiBulk looks up kanji entries by character.
func (s *Store) FindKanjiBulk(ctx context.Context, characters []string, enabledDictionaries map[string]bool) ([]dictstore.KanjiResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: begin read tx: %w", err)
	}
	defer tx.Rollback()

	var out []dictstore.KanjiResult
	for i, ch := range characters {
		rows, err := tx.Query(`SELECT id, character, onyomi, kunyomi, tags, definitions, stats, dictionary FROM kanji WHERE character = ? ORDER BY id`, ch)
		if err != nil {
			return nil, fmt.Errorf("sqlitestore: query kanji: %w", err)
		}
		for rows.Next() {
			var k dictentry.KanjiEntry
			var onyomi, kunyomi, tags, definitions, stats string
			if err := rows.Scan(&k.ID, &k.Character, &onyomi, &kunyomi, &tags, &definitions, &stats, &k.Dictionary); err != nil {
				rows.Close()
				return nil, fmt.Errorf("sqlitestore: scan kanji row: %w", err)
			}
			if !enabledDictionaries[k.Dictionary] {
				continue
			}
			k.Onyomi = splitStrings(onyomi)
			k.Kunyomi = splitStrings(kunyomi)
			k.Tags = splitStrings(tags)
			k.Definitions = splitStrings(definitions)
			parsedStats, err := unmarshalStats(stats)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("sqlitestore: decode kanji stats for %q: %w", ch, err)
			}
			k.Stats = parsedStats
			out = append(out, dictstore.KanjiResult{QueryIndex: i, Entry: k})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlitestore: commit read tx: %w", err)
	}
	return out, nil
}

// FindKanjiMetasBulk looks up kanji frequency meta rows by character.
func (s *Store) FindKanjiMetasBulk(ctx context.Context, characters []string, enabledDictionaries map[string]bool) ([]dictstore.KanjiMetaResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: begin read tx: %w", err)
	}
	defer tx.Rollback()

	var out []dictstore.KanjiMetaResult
	for i, ch := range characters {
		rows, err := tx.Query(`SELECT id, character, mode, dictionary, payload FROM kanji_meta WHERE character = ? ORDER BY id`, ch)
		if err != nil {
			return nil, fmt.Errorf("sqlitestore: query kanji_meta: %w", err)
		}
		for rows.Next() {
			var m dictentry.MetaEntry
			var mode string
			var payload []byte
			if err := rows.Scan(&m.ID, &m.Expression, &mode, &m.Dictionary, &payload); err != nil {
				rows.Close()
				return nil, fmt.Errorf("sqlitestore: scan kanji_meta row: %w", err)
			}
			if !enabledDictionaries[m.Dictionary] {
				continue
			}
			m.Mode = dictentry.MetaMode(mode)
			freq, err := unmarshalFrequency(payload)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("sqlitestore: decode kanji meta payload for %q: %w", ch, err)
			}
			m.Frequency = freq
			out = append(out, dictstore.KanjiMetaResult{QueryIndex: i, Entry: m})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlitestore: commit read tx: %w", err)
	}
	return out, nil
}

// FindTagMeta resolves one (name, dictionary) tag reference; a miss
// returns (nil, nil), never an error.
func (s *Store) FindTagMeta(ctx context.Context, name, dictionary string) (*dictentry.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT name, category, order_num, score, notes FROM tags WHERE name = ? AND dictionary = ?`, name, dictionary)
	var t dictentry.Tag
	if err := row.Scan(&t.Name, &t.Category, &t.Order, &t.Score, &t.Notes); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlitestore: find tag meta %q/%q: %w", dictionary, name, err)
	}
	t.Dictionaries = []string{dictionary}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func likeEscape(s string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "%", "\\%", "_", "\\_")
	return replacer.Replace(s)
}

// isKanaOnly reports whether text consists entirely of hiragana,
// katakana, and the prolonged sound mark; such queries scan the
// reading index instead of the expression index.
func isKanaOnly(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r == 'ー' {
			continue
		}
		if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			continue
		}
		return false
	}
	return true
}
