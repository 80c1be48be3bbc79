// Package scanner implements the text scanner: given a document and a
// cursor character index, extracts a lookup window, delegates to the
// translator, and locates the surrounding sentence.
package scanner

import (
	"context"
	"unicode"

	"yomidict/internal/dictentry"
	"yomidict/internal/options"
	"yomidict/internal/translator"
)

// Sentence is the context span a Search call locates around the
// cursor.
type Sentence struct {
	Text   string
	Offset int
}

// TermSearchResults is Scanner.Search's return shape.
type TermSearchResults struct {
	Entries  []*dictentry.TermDictionaryEntry
	Sentence Sentence
}

// Scanner wraps a Translator with scan-window and sentence-extraction
// behavior.
type Scanner struct {
	Translator *translator.Translator
}

// New builds a Scanner over an already-constructed Translator.
func New(t *translator.Translator) *Scanner {
	return &Scanner{Translator: t}
}

// Search locates the best lookup result at cursor plus its surrounding
// sentence. It returns (nil, nil) when the scan window is empty or the
// translator finds nothing, and only returns a non-nil error for a
// genuine lookup failure.
func (s *Scanner) Search(ctx context.Context, fullText string, cursor int, opts options.ProfileOptions) (*TermSearchResults, error) {
	runes := []rune(fullText)
	if cursor < 0 || cursor >= len(runes) {
		return nil, nil
	}

	windowEnd := len(runes)
	if opts.ScanLength > 0 && cursor+opts.ScanLength < windowEnd {
		windowEnd = cursor + opts.ScanLength
	}
	window := string(runes[cursor:windowEnd])
	if window == "" {
		return nil, nil
	}

	groupOpts := opts
	groupOpts.Mode = options.ModeGroup
	result, err := s.Translator.FindTerms(ctx, window, groupOpts)
	if err != nil {
		return nil, err
	}
	if len(result.Entries) == 0 {
		return nil, nil
	}

	parsedLength := result.Entries[0].MaxOriginalTextLength
	if parsedLength == 0 {
		parsedLength = len([]rune(window))
	}

	return &TermSearchResults{
		Entries:  result.Entries,
		Sentence: extractSentence(runes, cursor, parsedLength, opts),
	}, nil
}

// extractSentence clamps a context window around the cursor, scans
// backward/forward for the nearest sentence terminator (or the context
// window's edge), then trims surrounding whitespace.
func extractSentence(runes []rune, cursor, parsedLength int, opts options.ProfileOptions) Sentence {
	windowStart := cursor - opts.SentenceScanExtent
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := cursor + parsedLength + opts.SentenceScanExtent
	if windowEnd > len(runes) {
		windowEnd = len(runes)
	}

	isTerminator := func(r rune) bool {
		for _, t := range opts.SentenceTerminators {
			if t == r {
				return true
			}
		}
		return false
	}

	start := windowStart
	for i := cursor - 1; i >= windowStart; i-- {
		if isTerminator(runes[i]) {
			start = i + 1
			break
		}
	}

	end := windowEnd
	for i := cursor + parsedLength; i < windowEnd; i++ {
		if isTerminator(runes[i]) {
			end = i + 1
			break
		}
	}
	if end < start {
		end = start
	}

	span := runes[start:end]
	trimLeft := 0
	for trimLeft < len(span) && unicode.IsSpace(span[trimLeft]) {
		trimLeft++
	}
	trimRight := len(span)
	for trimRight > trimLeft && unicode.IsSpace(span[trimRight-1]) {
		trimRight--
	}

	return Sentence{
		Text:   string(span[trimLeft:trimRight]),
		Offset: cursor - start - trimLeft,
	}
}
