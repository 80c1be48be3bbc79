// Package dictimport is the streaming archive reader: it discovers
// index.json, tag_bank_N.json, term_bank_N.json, term_meta_bank_N.json,
// kanji_bank_N.json, and kanji_meta_bank_N.json inside a dictionary
// zip archive, streams each bank file's JSON array token-by-token rather
// than unmarshaling the whole file, and hands the assembled
// dictstore.ArchiveRecords to a single dictstore.Store.ImportDictionary
// call.
package dictimport

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"yomidict/internal/dictentry"
	"yomidict/internal/dictstore"
	"yomidict/internal/structcontent"
)

// DefaultBatchSize is the default Progress callback interval.
const DefaultBatchSize = 1000

var bankFilePattern = regexp.MustCompile(`^(tag|term|term_meta|kanji|kanji_meta)_bank_(\d+)\.json$`)

// Progress is reported at most once per bank file, after it is fully
// streamed, letting callers log import progress without the importer
// depending on a logger directly for anything but its own diagnostics.
// RecordsSoFar is the running record count for that bank kind.
type Progress struct {
	File          string
	RecordsSoFar  int
}

// Options configures one Import call.
type Options struct {
	// BatchSize gates Progress callbacks: after a bank file, the
	// callback fires only when the running record count is a multiple
	// of BatchSize, so a file whose count is not reports nothing. No
	// callback fires in the middle of a file. It does not change
	// transactional semantics, since the whole archive is still written
	// in one dictstore.Store.ImportDictionary transaction.
	BatchSize int
	OnProgress func(Progress)
	Logger     *logrus.Logger

	// PrefixWildcardsSupported is recorded in the resulting
	// DictionarySummary (and is filterable by `dictionaries --filter`);
	// the translator does not read it.
	PrefixWildcardsSupported bool
}

// Import reads the zip archive at archivePath and writes its contents
// to store in a single write transaction. Cancellation is checked
// between bank files only.
func Import(ctx context.Context, store dictstore.Store, archivePath string, opts Options) (dictentry.DictionarySummary, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return dictentry.DictionarySummary{}, fmt.Errorf("dictimport: open archive %s: %w", archivePath, err)
	}
	defer zr.Close()

	return importFS(ctx, store, &zr.Reader, opts)
}

// importFS does the actual work over a *zip.Reader so tests can supply
// an in-memory zip without touching disk.
func importFS(ctx context.Context, store dictstore.Store, zr *zip.Reader, opts Options) (dictentry.DictionarySummary, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	idx, err := readIndex(zr)
	if err != nil {
		return dictentry.DictionarySummary{}, err
	}

	bankFiles := groupBankFiles(zr)

	records := dictstore.ArchiveRecords{}

	for _, name := range bankFiles["tag"] {
		if err := ctx.Err(); err != nil {
			return dictentry.DictionarySummary{}, err
		}
		tags, err := streamTagBank(zr, name)
		if err != nil {
			return dictentry.DictionarySummary{}, err
		}
		records.Tags = append(records.Tags, tags...)
		reportProgress(opts, name, len(records.Tags))
	}

	for _, name := range bankFiles["term"] {
		if err := ctx.Err(); err != nil {
			return dictentry.DictionarySummary{}, err
		}
		terms, err := streamTermBank(zr, name, idx.Title)
		if err != nil {
			return dictentry.DictionarySummary{}, err
		}
		records.Terms = append(records.Terms, terms...)
		reportProgress(opts, name, len(records.Terms))
	}

	for _, name := range bankFiles["term_meta"] {
		if err := ctx.Err(); err != nil {
			return dictentry.DictionarySummary{}, err
		}
		metas, err := streamTermMetaBank(zr, name, idx.Title)
		if err != nil {
			return dictentry.DictionarySummary{}, err
		}
		records.TermMeta = append(records.TermMeta, metas...)
		reportProgress(opts, name, len(records.TermMeta))
	}

	for _, name := range bankFiles["kanji"] {
		if err := ctx.Err(); err != nil {
			return dictentry.DictionarySummary{}, err
		}
		kanji, err := streamKanjiBank(zr, name, idx.Title)
		if err != nil {
			return dictentry.DictionarySummary{}, err
		}
		records.Kanji = append(records.Kanji, kanji...)
		reportProgress(opts, name, len(records.Kanji))
	}

	for _, name := range bankFiles["kanji_meta"] {
		if err := ctx.Err(); err != nil {
			return dictentry.DictionarySummary{}, err
		}
		metas, err := streamKanjiMetaBank(zr, name, idx.Title)
		if err != nil {
			return dictentry.DictionarySummary{}, err
		}
		records.KanjiMeta = append(records.KanjiMeta, metas...)
		reportProgress(opts, name, len(records.KanjiMeta))
	}

	summary := buildSummary(idx, records, opts.PrefixWildcardsSupported)
	records.Summary = summary

	logger.WithFields(logrus.Fields{
		"dictionary": summary.Title,
		"terms":      summary.TermCount,
		"kanji":      summary.KanjiCount,
	}).Info("dictimport: writing archive records")

	if err := store.ImportDictionary(ctx, records); err != nil {
		return dictentry.DictionarySummary{}, fmt.Errorf("dictimport: import %s: %w", summary.Title, err)
	}
	return summary, nil
}

func reportProgress(opts Options, file string, n int) {
	if opts.OnProgress != nil && n%opts.BatchSize == 0 {
		opts.OnProgress(Progress{File: file, RecordsSoFar: n})
	}
}

func readIndex(zr *zip.Reader) (indexJSON, error) {
	f, err := zr.Open("index.json")
	if err != nil {
		return indexJSON{}, fmt.Errorf("dictimport: missing index.json: %w", err)
	}
	defer f.Close()

	var idx indexJSON
	if err := json.NewDecoder(f).Decode(&idx); err != nil {
		return indexJSON{}, fmt.Errorf("dictimport: parse index.json: %w", err)
	}
	if idx.Title == "" {
		return indexJSON{}, fmt.Errorf("dictimport: index.json missing title")
	}
	return idx, nil
}

// groupBankFiles globs the archive for tag/term/term_meta/kanji/kanji_meta
// bank files, discovering them by name rather than assuming a fixed
// count, and sorts each group by its numeric suffix.
func groupBankFiles(zr *zip.Reader) map[string][]string {
	groups := map[string][]string{}
	for _, f := range zr.File {
		name := path.Base(f.Name)
		m := bankFilePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		groups[m[1]] = append(groups[m[1]], f.Name)
	}
	for kind, names := range groups {
		sort.Slice(names, func(i, j int) bool {
			return bankOrdinal(names[i]) < bankOrdinal(names[j])
		})
		groups[kind] = names
	}
	return groups
}

func bankOrdinal(name string) int {
	m := bankFilePattern.FindStringSubmatch(path.Base(name))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[2])
	return n
}

// decodeArray streams a top-level JSON array, invoking decodeOne once
// per element without ever holding the whole file in memory as a
// single decoded value.
func decodeArray(r io.Reader, decodeOne func(dec *json.Decoder) error) error {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read array start: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("expected JSON array, got %v", tok)
	}
	for dec.More() {
		if err := decodeOne(dec); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read array end: %w", err)
	}
	return nil
}

func streamTagBank(zr *zip.Reader, name string) ([]dictentry.Tag, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("dictimport: open %s: %w", name, err)
	}
	defer f.Close()

	var out []dictentry.Tag
	err = decodeArray(f, func(dec *json.Decoder) error {
		var row tagRow
		if err := dec.Decode(&row); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, dictentry.Tag{
			Name:     row.Name,
			Category: row.Category,
			Order:    row.Order,
			Score:    row.Score,
			Notes:    row.Notes,
		})
		return nil
	})
	return out, err
}

func streamTermBank(zr *zip.Reader, name, dictionary string) ([]dictentry.TermEntry, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("dictimport: open %s: %w", name, err)
	}
	defer f.Close()

	var out []dictentry.TermEntry
	err = decodeArray(f, func(dec *json.Decoder) error {
		var row termEntryRow
		if err := dec.Decode(&row); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		entry, err := buildTermEntry(row, dictionary)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, entry)
		return nil
	})
	return out, err
}

func buildTermEntry(row termEntryRow, dictionary string) (dictentry.TermEntry, error) {
	glossary := make([]dictentry.TermGlossary, 0, len(row.Glossary))
	var plainText []string
	for _, raw := range row.Glossary {
		g, err := parseGlossaryEntry(raw)
		if err != nil {
			return dictentry.TermEntry{}, err
		}
		glossary = append(glossary, g)
		if g.Kind == dictentry.GlossaryKindContent {
			plainText = append(plainText, glossaryPlainText(g.Content)...)
		}
	}

	var sequence *int64
	if row.Sequence != 0 {
		seq := row.Sequence
		sequence = &seq
	}

	return dictentry.TermEntry{
		UUID:              uuid.NewString(),
		Expression:        row.Expression,
		Reading:           row.Reading,
		ExpressionReverse: dictentry.ReverseString(row.Expression),
		ReadingReverse:    dictentry.ReverseString(row.Reading),
		DefinitionTags:    splitWhitespace(row.DefinitionTags),
		LegacyTags:        nil,
		Rules:             splitWhitespace(row.Rules),
		Score:             clampScore(row.Score),
		Sequence:          sequence,
		TermTags:          splitWhitespace(row.TermTags),
		Glossary:          glossary,
		Dictionary:        dictionary,
		PlainDefinition:   strings.Join(plainText, "\n"),
	}, nil
}

func glossaryPlainText(g structcontent.Glossary) []string {
	switch g.Kind {
	case structcontent.KindText:
		if g.Text == "" {
			return nil
		}
		return []string{g.Text}
	case structcontent.KindStructuredContent:
		return structcontent.CollectText(g.Content)
	default:
		return nil
	}
}

func clampScore(v int64) int8 {
	if v > 127 {
		return 127
	}
	if v < -128 {
		return -128
	}
	return int8(v)
}

func splitWhitespace(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func streamTermMetaBank(zr *zip.Reader, name, dictionary string) ([]dictentry.MetaEntry, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("dictimport: open %s: %w", name, err)
	}
	defer f.Close()

	var out []dictentry.MetaEntry
	err = decodeArray(f, func(dec *json.Decoder) error {
		var row termMetaRow
		if err := dec.Decode(&row); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		m, err := buildTermMeta(row, dictionary)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, m)
		return nil
	})
	return out, err
}

func buildTermMeta(row termMetaRow, dictionary string) (dictentry.MetaEntry, error) {
	m := dictentry.MetaEntry{Expression: row.Expression, Dictionary: dictionary}
	switch row.Mode {
	case "freq":
		m.Mode = dictentry.MetaModeFreq
		freq, err := parseFrequencyData(row.Data)
		if err != nil {
			return dictentry.MetaEntry{}, err
		}
		m.Frequency = freq
	case "pitch":
		m.Mode = dictentry.MetaModePitch
		reading, pitch, err := parsePitchData(row.Data)
		if err != nil {
			return dictentry.MetaEntry{}, err
		}
		m.Reading = reading
		m.Pitch = pitch
	case "ipa":
		m.Mode = dictentry.MetaModeIPA
		reading, phonetic, err := parsePhoneticData(row.Data)
		if err != nil {
			return dictentry.MetaEntry{}, err
		}
		m.Reading = reading
		m.Phonetic = phonetic
	default:
		return dictentry.MetaEntry{}, fmt.Errorf("unknown term meta mode %q", row.Mode)
	}
	return m, nil
}

func streamKanjiBank(zr *zip.Reader, name, dictionary string) ([]dictentry.KanjiEntry, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("dictimport: open %s: %w", name, err)
	}
	defer f.Close()

	var out []dictentry.KanjiEntry
	err = decodeArray(f, func(dec *json.Decoder) error {
		var row kanjiEntryRow
		if err := dec.Decode(&row); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		stats := make(dictentry.KanjiStats, len(row.Stats))
		for k, v := range row.Stats {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				stats[k] = string(v)
				continue
			}
			stats[k] = s
		}
		out = append(out, dictentry.KanjiEntry{
			Character:   row.Character,
			Onyomi:      splitWhitespace(row.Onyomi),
			Kunyomi:     splitWhitespace(row.Kunyomi),
			Tags:        splitWhitespace(row.Tags),
			Definitions: row.Meanings,
			Stats:       stats,
			Dictionary:  dictionary,
		})
		return nil
	})
	return out, err
}

func streamKanjiMetaBank(zr *zip.Reader, name, dictionary string) ([]dictentry.MetaEntry, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("dictimport: open %s: %w", name, err)
	}
	defer f.Close()

	var out []dictentry.MetaEntry
	err = decodeArray(f, func(dec *json.Decoder) error {
		var row kanjiMetaRow
		if err := dec.Decode(&row); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		freq, err := parseFrequencyData(row.Data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, dictentry.MetaEntry{
			Expression: row.Character,
			Mode:       dictentry.MetaModeFreq,
			Dictionary: dictionary,
			Frequency:  freq,
		})
		return nil
	})
	return out, err
}

func buildSummary(idx indexJSON, records dictstore.ArchiveRecords, prefixWildcardsSupported bool) dictentry.DictionarySummary {
	var freqTerm, pitchTerm, ipaTerm, freqKanji int
	for _, m := range records.TermMeta {
		switch m.Mode {
		case dictentry.MetaModeFreq:
			freqTerm++
		case dictentry.MetaModePitch:
			pitchTerm++
		case dictentry.MetaModeIPA:
			ipaTerm++
		}
	}
	freqKanji = len(records.KanjiMeta)

	return dictentry.DictionarySummary{
		Title:                    idx.Title,
		Revision:                 idx.Revision,
		Version:                  idx.effectiveVersion(),
		Sequenced:                idx.Sequenced,
		ImportDate:               time.Now().UTC().Format("2006-01-02"),
		PrefixWildcardsSupported: prefixWildcardsSupported,
		TermCount:                len(records.Terms),
		TermMetaCounts:           dictentry.MetaCounts{Freq: freqTerm, Pitch: pitchTerm, IPA: ipaTerm},
		KanjiCount:               len(records.Kanji),
		KanjiMetaCounts:          dictentry.MetaCounts{Freq: freqKanji},
		TagMetaCount:             len(records.Tags),
		MediaCount:               0,
		Author:                   idx.Author,
		URL:                      idx.URL,
		Description:              idx.Description,
		Attribution:              idx.Attribution,
		SourceLanguage:           idx.SourceLanguage,
		TargetLanguage:           idx.TargetLanguage,
		FrequencyMode:            idx.FrequencyMode,
	}
}
