// Package kanjivariants implements an embedded fixed-data normalizer:
// two small JSON lists (oyaji parent -> itaiji variant character
// mappings) loaded once at startup into a conversion map and a
// compiled character-class regex, exposed as a pure string transform.
// The embedded lists are a curated subset covering common variant
// pairs (萬->万, 國->国, 舊->旧, 龍->竜, 靜->静, ...).
package kanjivariants

import (
	_ "embed"
	"encoding/json"
	"regexp"
	"strings"
)

//go:embed data/kanji_variants.json
var fullListJSON []byte

//go:embed data/itaiji_list.json
var itaijiListJSON []byte

type mapping struct {
	Oyaji  string   `json:"oyaji"`
	Itaiji []string `json:"itaiji"`
}

// Normalizer holds the compiled conversion_map and class regex. Built
// once at package init via Default(); safe to share by reference.
type Normalizer struct {
	conversionMap map[rune]rune
	pattern       *regexp.Regexp
}

var defaultNormalizer = mustBuild()

func mustBuild() *Normalizer {
	n, err := build(fullListJSON, itaijiListJSON)
	if err != nil {
		panic("kanjivariants: failed to load embedded variant lists: " + err.Error())
	}
	return n
}

func build(fullList, itaijiList []byte) (*Normalizer, error) {
	var mappings []mapping
	if err := json.Unmarshal(fullList, &mappings); err != nil {
		return nil, err
	}
	var itaiji []string
	if err := json.Unmarshal(itaijiList, &itaiji); err != nil {
		return nil, err
	}

	conversionMap := make(map[rune]rune, len(itaiji))
	for _, m := range mappings {
		oyajiRunes := []rune(m.Oyaji)
		if len(oyajiRunes) == 0 {
			continue
		}
		oyaji := oyajiRunes[0]
		for _, variant := range m.Itaiji {
			variantRunes := []rune(variant)
			if len(variantRunes) == 0 {
				continue
			}
			conversionMap[variantRunes[0]] = oyaji
		}
	}

	var class strings.Builder
	for _, s := range itaiji {
		class.WriteString(regexp.QuoteMeta(s))
	}
	pattern, err := regexp.Compile("[" + class.String() + "]")
	if err != nil {
		return nil, err
	}

	return &Normalizer{conversionMap: conversionMap, pattern: pattern}, nil
}

// Default returns the package-level Normalizer built from the embedded
// lists at init time.
func Default() *Normalizer { return defaultNormalizer }

// Normalize converts every itaiji (variant kanji) character in text to
// its oyaji (parent) form, leaving everything else untouched. Pure and
// referentially transparent.
func (n *Normalizer) Normalize(text string) string {
	if !n.pattern.MatchString(text) {
		return text
	}
	return n.pattern.ReplaceAllStringFunc(text, func(match string) string {
		r := []rune(match)[0]
		if parent, ok := n.conversionMap[r]; ok {
			return string(parent)
		}
		return match
	})
}
