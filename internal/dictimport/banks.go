package dictimport

import (
	"encoding/json"
	"fmt"

	"yomidict/internal/dictentry"
	"yomidict/internal/structcontent"
)

// indexJSON is the on-disk shape of a dictionary archive's index.json.
type indexJSON struct {
	Format                   int    `json:"format"`
	Version                  int    `json:"version"`
	Title                    string `json:"title"`
	Revision                 string `json:"revision"`
	Sequenced                bool   `json:"sequenced"`
	Author                   string `json:"author"`
	URL                      string `json:"url"`
	Description              string `json:"description"`
	Attribution              string `json:"attribution"`
	SourceLanguage           string `json:"sourceLanguage"`
	TargetLanguage           string `json:"targetLanguage"`
	FrequencyMode            string `json:"frequencyMode"`
}

func (i indexJSON) effectiveVersion() int {
	if i.Format != 0 {
		return i.Format
	}
	return i.Version
}

// termEntryRow is one term_bank_N.json tuple:
// [expression, reading, definitionTags, rules, score, glossary[], sequence, termTags]
type termEntryRow struct {
	Expression     string
	Reading        string
	DefinitionTags string
	Rules          string
	Score          int64
	Glossary       []json.RawMessage
	Sequence       int64
	TermTags       string
}

func (r *termEntryRow) UnmarshalJSON(data []byte) error {
	var raw [8]json.RawMessage
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("term bank row: %w", err)
	}
	if len(tuple) < 7 {
		return fmt.Errorf("term bank row: expected at least 7 fields, got %d", len(tuple))
	}
	copy(raw[:], tuple)

	if err := json.Unmarshal(raw[0], &r.Expression); err != nil {
		return fmt.Errorf("term bank row expression: %w", err)
	}
	if err := json.Unmarshal(raw[1], &r.Reading); err != nil {
		return fmt.Errorf("term bank row reading: %w", err)
	}
	if err := json.Unmarshal(raw[2], &r.DefinitionTags); err != nil {
		r.DefinitionTags = ""
	}
	if err := json.Unmarshal(raw[3], &r.Rules); err != nil {
		return fmt.Errorf("term bank row rules: %w", err)
	}
	if err := json.Unmarshal(raw[4], &r.Score); err != nil {
		return fmt.Errorf("term bank row score: %w", err)
	}
	if err := json.Unmarshal(raw[5], &r.Glossary); err != nil {
		return fmt.Errorf("term bank row glossary: %w", err)
	}
	if err := json.Unmarshal(raw[6], &r.Sequence); err != nil {
		return fmt.Errorf("term bank row sequence: %w", err)
	}
	if len(tuple) > 7 {
		if err := json.Unmarshal(raw[7], &r.TermTags); err != nil {
			r.TermTags = ""
		}
	}
	return nil
}

// parseGlossaryEntry delegates to structcontent.Glossary's own
// UnmarshalJSON, which already accepts both the bare-string and the
// {type: ...} tagged shapes; the importer only ever produces
// GlossaryKindContent entries, since GlossaryKindDeinflection is
// synthesized later by the translator, never read from an archive.
func parseGlossaryEntry(raw json.RawMessage) (dictentry.TermGlossary, error) {
	var g structcontent.Glossary
	if err := json.Unmarshal(raw, &g); err != nil {
		return dictentry.TermGlossary{}, fmt.Errorf("parse glossary entry: %w", err)
	}
	return dictentry.TermGlossary{Kind: dictentry.GlossaryKindContent, Content: g}, nil
}

// termMetaRow is one term_meta_bank_N.json tuple: [expression, mode, data].
type termMetaRow struct {
	Expression string
	Mode       string
	Data       json.RawMessage
}

func (r *termMetaRow) UnmarshalJSON(data []byte) error {
	var tuple [3]json.RawMessage
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("term meta row: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("term meta row: expected 3 fields, got %d", len(raw))
	}
	copy(tuple[:], raw)
	if err := json.Unmarshal(tuple[0], &r.Expression); err != nil {
		return fmt.Errorf("term meta row expression: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &r.Mode); err != nil {
		return fmt.Errorf("term meta row mode: %w", err)
	}
	r.Data = tuple[2]
	return nil
}

// parseFrequencyData decodes the frequency union shape: a bare
// integer, a bare string, or an object with value/displayValue/reading.
func parseFrequencyData(raw json.RawMessage) (*dictentry.FrequencyData, error) {
	var asInt int64
	if err := json.Unmarshal(raw, &asInt); err == nil {
		return &dictentry.FrequencyData{Value: asInt}, nil
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return &dictentry.FrequencyData{DisplayValue: asString, HasDisplayValue: true}, nil
	}
	var obj struct {
		Value        json.Number `json:"value"`
		DisplayValue string      `json:"displayValue"`
		Reading      string      `json:"reading"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("parse frequency data: %w", err)
	}
	v, _ := obj.Value.Int64()
	fd := &dictentry.FrequencyData{Value: v}
	if obj.DisplayValue != "" {
		fd.DisplayValue = obj.DisplayValue
		fd.HasDisplayValue = true
	}
	if obj.Reading != "" {
		fd.Reading = obj.Reading
		fd.HasReading = true
	}
	return fd, nil
}

type pitchDataJSON struct {
	Reading string `json:"reading"`
	Pitches []struct {
		Position int      `json:"position"`
		Tags     []string `json:"tags"`
		Nasal    []int    `json:"nasal"`
		Devoice  []int    `json:"devoice"`
	} `json:"pitches"`
}

func parsePitchData(raw json.RawMessage) (string, []dictentry.PitchAccent, error) {
	var data pitchDataJSON
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", nil, fmt.Errorf("parse pitch data: %w", err)
	}
	out := make([]dictentry.PitchAccent, 0, len(data.Pitches))
	for _, p := range data.Pitches {
		out = append(out, dictentry.PitchAccent{Position: p.Position, Tags: p.Tags, Nasal: p.Nasal, Devoice: p.Devoice})
	}
	return data.Reading, out, nil
}

type phoneticDataJSON struct {
	Reading     string `json:"reading"`
	Transcriptions []struct {
		IPA  string   `json:"ipa"`
		Tags []string `json:"tags"`
	} `json:"transcriptions"`
}

func parsePhoneticData(raw json.RawMessage) (string, []dictentry.PhoneticTranscription, error) {
	var data phoneticDataJSON
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", nil, fmt.Errorf("parse phonetic data: %w", err)
	}
	out := make([]dictentry.PhoneticTranscription, 0, len(data.Transcriptions))
	for _, t := range data.Transcriptions {
		out = append(out, dictentry.PhoneticTranscription{IPA: t.IPA, Tags: t.Tags})
	}
	return data.Reading, out, nil
}

// kanjiEntryRow is one kanji_bank_N.json tuple:
// [character, onyomi, kunyomi, tags, meanings[], stats{}]
type kanjiEntryRow struct {
	Character string
	Onyomi    string
	Kunyomi   string
	Tags      string
	Meanings  []string
	Stats     map[string]json.RawMessage
}

func (r *kanjiEntryRow) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("kanji bank row: %w", err)
	}
	if len(raw) < 5 {
		return fmt.Errorf("kanji bank row: expected at least 5 fields, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.Character); err != nil {
		return fmt.Errorf("kanji bank row character: %w", err)
	}
	if err := json.Unmarshal(raw[1], &r.Onyomi); err != nil {
		return fmt.Errorf("kanji bank row onyomi: %w", err)
	}
	if err := json.Unmarshal(raw[2], &r.Kunyomi); err != nil {
		return fmt.Errorf("kanji bank row kunyomi: %w", err)
	}
	if err := json.Unmarshal(raw[3], &r.Tags); err != nil {
		return fmt.Errorf("kanji bank row tags: %w", err)
	}
	if err := json.Unmarshal(raw[4], &r.Meanings); err != nil {
		return fmt.Errorf("kanji bank row meanings: %w", err)
	}
	if len(raw) > 5 {
		if err := json.Unmarshal(raw[5], &r.Stats); err != nil {
			return fmt.Errorf("kanji bank row stats: %w", err)
		}
	}
	return nil
}

// kanjiMetaRow is one kanji_meta_bank_N.json tuple: [character, mode, data].
type kanjiMetaRow struct {
	Character string
	Mode      string
	Data      json.RawMessage
}

func (r *kanjiMetaRow) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("kanji meta row: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("kanji meta row: expected 3 fields, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.Character); err != nil {
		return fmt.Errorf("kanji meta row character: %w", err)
	}
	if err := json.Unmarshal(raw[1], &r.Mode); err != nil {
		return fmt.Errorf("kanji meta row mode: %w", err)
	}
	r.Data = raw[2]
	return nil
}

// tagRow is one tag_bank_N.json tuple: [name, category, order, notes, score].
type tagRow struct {
	Name     string
	Category string
	Order    int
	Notes    string
	Score    int
}

func (r *tagRow) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("tag bank row: %w", err)
	}
	if len(raw) != 5 {
		return fmt.Errorf("tag bank row: expected 5 fields, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.Name); err != nil {
		return fmt.Errorf("tag bank row name: %w", err)
	}
	if err := json.Unmarshal(raw[1], &r.Category); err != nil {
		return fmt.Errorf("tag bank row category: %w", err)
	}
	if err := json.Unmarshal(raw[2], &r.Order); err != nil {
		return fmt.Errorf("tag bank row order: %w", err)
	}
	if err := json.Unmarshal(raw[3], &r.Notes); err != nil {
		return fmt.Errorf("tag bank row notes: %w", err)
	}
	if err := json.Unmarshal(raw[4], &r.Score); err != nil {
		return fmt.Errorf("tag bank row score: %w", err)
	}
	return nil
}
