// Package yomidict is the embeddable dictionary lookup and
// morphological analysis engine's public entry point: it wires the
// persistent store (internal/dictstore), the importer
// (internal/dictimport), the language transformer registry
// (internal/langtransform), the translator (internal/translator), and
// the scanner (internal/scanner) behind a single Handle.
package yomidict

import (
	"context"
	"fmt"

	"yomidict/internal/config"
	"yomidict/internal/dictentry"
	"yomidict/internal/dictimport"
	"yomidict/internal/dictstore"
	"yomidict/internal/dictstore/sqlitestore"
	"yomidict/internal/kanjivariants"
	"yomidict/internal/langtransform"
	"yomidict/internal/langtransform/ja"
	"yomidict/internal/options"
	"yomidict/internal/scanner"
	"yomidict/internal/textproc"
	"yomidict/internal/translator"
)

// Handle is the engine's public surface: one opened store, its
// translator, and its scanner. Safe for concurrent use by multiple
// lookups; ImportDictionaries/DeleteDictionary serialize against
// readers inside the underlying Store.
type Handle struct {
	store        dictstore.Store
	transformers *langtransform.MultiLanguageTransformer
	translator   *translator.Translator
	scanner      *scanner.Scanner
}

// Open opens (creating if necessary) the sqlite-backed store at
// dbPath, registers the built-in Japanese language transformer and
// text-processor pipeline, and returns a ready-to-use Handle.
func Open(dbPath string) (*Handle, error) {
	store, err := sqlitestore.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("yomidict: open store: %w", err)
	}

	transformers := langtransform.NewMultiLanguageTransformer()
	jaTransformer := langtransform.NewTransformer()
	if err := jaTransformer.AddDescriptor(ja.Descriptor()); err != nil {
		store.Close()
		return nil, fmt.Errorf("yomidict: register ja transformer: %w", err)
	}
	transformers.Register("ja", jaTransformer)

	t := translator.New(store, transformers)
	return &Handle{
		store:        store,
		transformers: transformers,
		translator:   t,
		scanner:      scanner.New(t),
	}, nil
}

// OpenWithConfig opens a Handle using a loaded Config's StoreConfig.Path,
// the path viper/config.Load resolves via its env-var/.env precedence
// (internal/config).
func OpenWithConfig(cfg *config.Config) (*Handle, error) {
	return Open(cfg.Store.Path)
}

// Close releases the underlying store's database handle.
func (h *Handle) Close() error { return h.store.Close() }

// ImportDictionaries imports each archive path in order, returning the
// DictionarySummary for every archive imported. The first failure
// aborts the remaining imports; each archive is its own write
// transaction, never partially committed.
func (h *Handle) ImportDictionaries(ctx context.Context, paths []string, opts dictimport.Options) ([]dictentry.DictionarySummary, error) {
	summaries := make([]dictentry.DictionarySummary, 0, len(paths))
	for _, p := range paths {
		summary, err := dictimport.Import(ctx, h.store, p, opts)
		if err != nil {
			return summaries, fmt.Errorf("yomidict: import %s: %w", p, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// DeleteDictionary removes every record tagged with name, including its
// summary row.
func (h *Handle) DeleteDictionary(ctx context.Context, name string) error {
	return h.store.DeleteDictionary(ctx, name)
}

// ListDictionaries returns every imported DictionarySummary.
func (h *Handle) ListDictionaries(ctx context.Context) ([]dictentry.DictionarySummary, error) {
	return h.store.ListDictionaries(ctx)
}

// FindTerms runs the full translator pipeline for text under opts.
func (h *Handle) FindTerms(ctx context.Context, text string, opts options.ProfileOptions) (*translator.FindTermsResult, error) {
	return h.translator.FindTerms(ctx, text, opts)
}

// ParseText locates terms at every rune position of text, each lookup
// windowed to scanLength and matched with Exact/Prefix per opts.
// Positions already covered by a prior match's original text are
// skipped, so the result set is non-overlapping and in cursor order.
func (h *Handle) ParseText(ctx context.Context, text string, scanLength int, opts options.ProfileOptions) ([]*dictentry.TermDictionaryEntry, error) {
	runes := []rune(text)
	var entries []*dictentry.TermDictionaryEntry

	for cursor := 0; cursor < len(runes); {
		end := cursor + scanLength
		if end > len(runes) || scanLength <= 0 {
			end = len(runes)
		}
		window := string(runes[cursor:end])
		if window == "" {
			break
		}

		result, err := h.translator.FindTerms(ctx, window, opts)
		if err != nil {
			return nil, fmt.Errorf("yomidict: parse text at %d: %w", cursor, err)
		}
		if len(result.Entries) == 0 || result.Entries[0].MaxOriginalTextLength == 0 {
			cursor++
			continue
		}

		entries = append(entries, result.Entries...)
		cursor += result.Entries[0].MaxOriginalTextLength
	}

	return entries, nil
}

// Scanner returns the Handle's Scanner, wired over the same Translator
// FindTerms uses.
func (h *Handle) Scanner() *scanner.Scanner { return h.scanner }

// Transformers exposes the language transformer registry so callers
// (notably the CLI and tests) can register additional languages beyond
// the built-in Japanese descriptor.
func (h *Handle) Transformers() *langtransform.MultiLanguageTransformer { return h.transformers }

// Translator exposes the underlying Translator for advanced callers
// that need RegisterProcessors for a non-Japanese language.
func (h *Handle) Translator() *translator.Translator { return h.translator }

// KanjiVariantNormalizer returns the default oyaji/itaiji Normalizer
// (internal/kanjivariants), useful to callers composing their own
// text-processor pipelines for languages beyond Japanese.
func KanjiVariantNormalizer() *kanjivariants.Normalizer { return kanjivariants.Default() }

// JapaneseTextProcessors exposes the built-in Japanese pre/post
// processor pipeline (internal/textproc), for callers that want to run
// C1 processors outside of a full FindTerms call.
func JapaneseTextProcessors() (pre, post []textproc.TextProcessor) {
	return textproc.JapanesePreProcessors(), textproc.JapanesePostProcessors()
}
