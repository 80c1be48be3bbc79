package sqlitestore

import (
	"encoding/json"
	"strings"

	"yomidict/internal/dictentry"
	"yomidict/internal/structcontent"
)

// storedGlossary is the on-disk JSON shape for one dictentry.TermGlossary
// entry. This is an internal serialization format for round-tripping
// through the store, distinct from the Yomichan wire format
// structcontent.Glossary.UnmarshalJSON parses at import time.
type storedGlossary struct {
	Kind                dictentry.TermGlossaryKind `json:"kind"`
	ContentKind         structcontent.Kind         `json:"content_kind,omitempty"`
	Text                string                     `json:"text,omitempty"`
	Image               *structcontent.ImageElement `json:"image,omitempty"`
	Node                *structcontent.Node        `json:"node,omitempty"`
	FormOf              string                     `json:"form_of,omitempty"`
	InflectionRuleChain []string                   `json:"inflection_rule_chain,omitempty"`
}

func encodeGlossaries(glossaries []dictentry.TermGlossary) ([]byte, error) {
	stored := make([]storedGlossary, 0, len(glossaries))
	for _, g := range glossaries {
		sg := storedGlossary{Kind: g.Kind, FormOf: g.FormOf, InflectionRuleChain: g.InflectionRuleChain}
		if g.Kind == dictentry.GlossaryKindContent {
			sg.ContentKind = g.Content.Kind
			sg.Text = g.Content.Text
			sg.Image = g.Content.Image
			if g.Content.Kind == structcontent.KindStructuredContent {
				node := g.Content.Content
				sg.Node = &node
			}
		}
		stored = append(stored, sg)
	}
	return json.Marshal(stored)
}

func decodeGlossaries(data []byte) ([]dictentry.TermGlossary, error) {
	var stored []storedGlossary
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	out := make([]dictentry.TermGlossary, 0, len(stored))
	for _, sg := range stored {
		g := dictentry.TermGlossary{Kind: sg.Kind, FormOf: sg.FormOf, InflectionRuleChain: sg.InflectionRuleChain}
		if sg.Kind == dictentry.GlossaryKindContent {
			g.Content = structcontent.Glossary{Kind: sg.ContentKind, Text: sg.Text, Image: sg.Image}
			if sg.Node != nil {
				g.Content.Content = *sg.Node
			}
		}
		out = append(out, g)
	}
	return out, nil
}

func joinStrings(items []string) string {
	return strings.Join(items, "\x1f")
}

func splitStrings(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\x1f")
}

func marshalStats(stats dictentry.KanjiStats) (string, error) {
	if len(stats) == 0 {
		return "", nil
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalStats(s string) (dictentry.KanjiStats, error) {
	if s == "" {
		return nil, nil
	}
	var stats dictentry.KanjiStats
	if err := json.Unmarshal([]byte(s), &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func marshalFrequency(f *dictentry.FrequencyData) ([]byte, error) {
	return json.Marshal(f)
}

func unmarshalFrequency(data []byte) (*dictentry.FrequencyData, error) {
	var f dictentry.FrequencyData
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func marshalPitch(reading string, pitch []dictentry.PitchAccent) ([]byte, error) {
	payload := struct {
		Reading string                  `json:"reading"`
		Pitch   []dictentry.PitchAccent `json:"pitch"`
	}{Reading: reading, Pitch: pitch}
	return json.Marshal(payload)
}

func unmarshalPitch(data []byte) (string, []dictentry.PitchAccent, error) {
	var payload struct {
		Reading string                  `json:"reading"`
		Pitch   []dictentry.PitchAccent `json:"pitch"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", nil, err
	}
	return payload.Reading, payload.Pitch, nil
}

func marshalPhonetic(reading string, phonetic []dictentry.PhoneticTranscription) ([]byte, error) {
	payload := struct {
		Reading  string                               `json:"reading"`
		Phonetic []dictentry.PhoneticTranscription `json:"phonetic"`
	}{Reading: reading, Phonetic: phonetic}
	return json.Marshal(payload)
}

func unmarshalPhonetic(data []byte) (string, []dictentry.PhoneticTranscription, error) {
	var payload struct {
		Reading  string                               `json:"reading"`
		Phonetic []dictentry.PhoneticTranscription `json:"phonetic"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", nil, err
	}
	return payload.Reading, payload.Phonetic, nil
}
