// Package textproc implements the reversible Japanese text processors:
// pure, referentially-transparent string transforms crossed with the
// per-lookup text-replacement and language pre/post-processor pipeline
// used by the translator.
package textproc

import (
	"strings"

	"yomidict/internal/kanjivariants"
)

// TriState selects one of two opposite conversions for a bidirectional
// processor: Off leaves text untouched, Direct and Inverse each pick a
// direction.
type TriState int

const (
	Off TriState = iota
	Direct
	Inverse
)

// Setting is the value passed to a TextProcessor's Apply function: a
// plain bool, a TriState, or a [2]bool pair (emphatic collapse).
type Setting any

// TextProcessor is a named, pure string transform with a fixed set of
// settings it accepts.
type TextProcessor struct {
	ID          string
	Name        string
	Description string
	Options     []Setting
	Apply       func(text string, setting Setting) string
}

// TextProcessorWithID lets generated rule chains reference a processor
// by its stable id string.
type TextProcessorWithID = TextProcessor

// cacheKey is the memoization key for the per-lookup processor cache.
type cacheKey struct {
	text    string
	id      string
	setting string
}

// Cache memoizes (text, id, setting) -> text for the duration of one
// lookup. Build a fresh Cache per Translator.FindTerms call; never
// share across concurrent lookups.
type Cache struct {
	m map[cacheKey]string
}

// NewCache builds an empty per-lookup cache.
func NewCache() *Cache { return &Cache{m: make(map[cacheKey]string)} }

// Apply runs proc.Apply(text, setting), memoizing the result.
func (c *Cache) Apply(proc TextProcessor, text string, setting Setting) string {
	key := cacheKey{text: text, id: proc.ID, setting: settingKey(setting)}
	if v, ok := c.m[key]; ok {
		return v
	}
	out := proc.Apply(text, setting)
	c.m[key] = out
	return out
}

func settingKey(s Setting) string {
	switch v := s.(type) {
	case bool:
		if v {
			return "1"
		}
		return "0"
	case TriState:
		switch v {
		case Direct:
			return "direct"
		case Inverse:
			return "inverse"
		default:
			return "off"
		}
	case [2]bool:
		key := "0"
		if v[0] {
			key = "1"
		}
		if v[1] {
			key += "1"
		} else {
			key += "0"
		}
		return key
	default:
		return ""
	}
}

// halfWidthKatakana maps half-width katakana code points (U+FF61-U+FF9F)
// to their full-width equivalents; dakuten/handakuten-composable bases
// are listed separately below.
var halfWidthKatakanaBase = map[rune]rune{
	'ｱ': 'ア', 'ｲ': 'イ', 'ｳ': 'ウ', 'ｴ': 'エ', 'ｵ': 'オ',
	'ｶ': 'カ', 'ｷ': 'キ', 'ｸ': 'ク', 'ｹ': 'ケ', 'ｺ': 'コ',
	'ｻ': 'サ', 'ｼ': 'シ', 'ｽ': 'ス', 'ｾ': 'セ', 'ｿ': 'ソ',
	'ﾀ': 'タ', 'ﾁ': 'チ', 'ﾂ': 'ツ', 'ﾃ': 'テ', 'ﾄ': 'ト',
	'ﾅ': 'ナ', 'ﾆ': 'ニ', 'ﾇ': 'ヌ', 'ﾈ': 'ネ', 'ﾉ': 'ノ',
	'ﾊ': 'ハ', 'ﾋ': 'ヒ', 'ﾌ': 'フ', 'ﾍ': 'ヘ', 'ﾎ': 'ホ',
	'ﾏ': 'マ', 'ﾐ': 'ミ', 'ﾑ': 'ム', 'ﾒ': 'メ', 'ﾓ': 'モ',
	'ﾔ': 'ヤ', 'ﾕ': 'ユ', 'ﾖ': 'ヨ',
	'ﾗ': 'ラ', 'ﾘ': 'リ', 'ﾙ': 'ル', 'ﾚ': 'レ', 'ﾛ': 'ロ',
	'ﾜ': 'ワ', 'ｦ': 'ヲ', 'ﾝ': 'ン',
	'ｧ': 'ァ', 'ｨ': 'ィ', 'ｩ': 'ゥ', 'ｪ': 'ェ', 'ｫ': 'ォ',
	'ｬ': 'ャ', 'ｭ': 'ュ', 'ｮ': 'ョ', 'ｯ': 'ッ',
	'ｰ': 'ー', '､': '、', '｡': '。', '｢': '「', '｣': '」', '･': '・',
}

// dakutenCapable lists the full-width katakana that combine with U+FF9E
// (half-width dakuten) to produce a voiced kana.
var dakutenCapable = map[rune]rune{
	'カ': 'ガ', 'キ': 'ギ', 'ク': 'グ', 'ケ': 'ゲ', 'コ': 'ゴ',
	'サ': 'ザ', 'シ': 'ジ', 'ス': 'ズ', 'セ': 'ゼ', 'ソ': 'ゾ',
	'タ': 'ダ', 'チ': 'ヂ', 'ツ': 'ヅ', 'テ': 'デ', 'ト': 'ド',
	'ハ': 'バ', 'ヒ': 'ビ', 'フ': 'ブ', 'ヘ': 'ベ', 'ホ': 'ボ',
	'ウ': 'ヴ',
}

// handakutenCapable combines with U+FF9F (half-width handakuten).
var handakutenCapable = map[rune]rune{
	'ハ': 'パ', 'ヒ': 'ピ', 'フ': 'プ', 'ヘ': 'ペ', 'ホ': 'ポ',
}

const (
	halfWidthDakuten     = 'ﾞ'
	halfWidthHandakuten  = 'ﾟ'
)

// convertHalfWidthKanaToFullWidth implements convert_halfwidth_kana_to_fullwidth:
// table-driven, with the next code point optionally consumed as a
// dakuten/handakuten modifier to produce a single composed kana.
func convertHalfWidthKanaToFullWidth(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); i++ {
		base, ok := halfWidthKatakanaBase[runes[i]]
		if !ok {
			b.WriteRune(runes[i])
			continue
		}
		if i+1 < len(runes) {
			switch runes[i+1] {
			case halfWidthDakuten:
				if voiced, ok := dakutenCapable[base]; ok {
					b.WriteRune(voiced)
					i++
					continue
				}
			case halfWidthHandakuten:
				if semiVoiced, ok := handakutenCapable[base]; ok {
					b.WriteRune(semiVoiced)
					i++
					continue
				}
			}
		}
		b.WriteRune(base)
	}
	return b.String()
}

// HalfWidthKatakanaToFullWidth is CONVERT_HALF_WIDTH_CHARACTERS.
var HalfWidthKatakanaToFullWidth = TextProcessor{
	ID:          "half-width-to-full-width",
	Name:        "Convert Half Width Characters to Full Width",
	Description: "ﾖﾐﾁｬﾝ → ヨミチャン",
	Options:     []Setting{false, true},
	Apply: func(text string, setting Setting) string {
		if b, _ := setting.(bool); b {
			return convertHalfWidthKanaToFullWidth(text)
		}
		return text
	},
}

const (
	hiraganaStart = 0x3041
	hiraganaEnd   = 0x3096
	katakanaStart = 0x30A1
	katakanaEnd   = 0x30F6
	kanaShift     = 0x60

	prolongedSoundMark = 'ー' // ー
)

// convertKatakanaToHiragana shifts katakana down by 0x60; keepProlongedSoundMark
// controls whether ー is left as-is (true) or replaced by the vowel
// hiragana implied by the preceding kana (false), per the original's
// convert_katakana_to_hiragana(str, keep_prolonged_sound_marks).
func convertKatakanaToHiragana(text string, keepProlongedSoundMark bool) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	var prevHiragana rune
	for _, r := range runes {
		switch {
		case r == prolongedSoundMark && !keepProlongedSoundMark && prevHiragana != 0:
			b.WriteRune(vowelFor(prevHiragana))
			continue
		case r >= katakanaStart && r <= katakanaEnd:
			h := r - kanaShift
			b.WriteRune(h)
			prevHiragana = h
			continue
		default:
			b.WriteRune(r)
			prevHiragana = 0
		}
	}
	return b.String()
}

func convertHiraganaToKatakana(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range runes {
		if r >= hiraganaStart && r <= hiraganaEnd {
			b.WriteRune(r + kanaShift)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// vowelFor maps a hiragana mora to the hiragana vowel that would follow
// it in a prolonged-sound reading (a crude but standard approximation:
// あ/か/さ/た/な/は/ま/ら/わ row -> あ, い row -> い, う row -> う,
// え row -> え, お row -> う, matching common romanization tables).
func vowelFor(mora rune) rune {
	switch {
	case isInVowelRow(mora, "あかさたなはまやらわがざだばぱゃ"):
		return 'あ'
	case isInVowelRow(mora, "いきしちにひみりぎじぢびぴ"):
		return 'い'
	case isInVowelRow(mora, "うくすつぬふむゆるぐずづぶぷゅ"):
		return 'う'
	case isInVowelRow(mora, "えけせてねへめれげぜでべぺ"):
		return 'え'
	case isInVowelRow(mora, "おこそとのほもよろごぞどぼぽょ"):
		return 'う'
	default:
		return mora
	}
}

func isInVowelRow(r rune, row string) bool {
	for _, c := range row {
		if c == r {
			return true
		}
	}
	return false
}

// HiraganaKatakana converts between kana scripts: Direct maps
// hiragana->katakana, Inverse maps katakana->hiragana, keeping the
// prolonged sound mark as-is.
var HiraganaKatakana = TextProcessor{
	ID:          "alphabetic-to-hiragana-katakana",
	Name:        "Convert Hiragana to Katakana",
	Description: "よみちゃん → ヨミチャン and vice versa",
	Options:     []Setting{Off, Direct, Inverse},
	Apply: func(text string, setting Setting) string {
		switch setting.(TriState) {
		case Direct:
			return convertHiraganaToKatakana(text)
		case Inverse:
			return convertKatakanaToHiragana(text, true)
		default:
			return text
		}
	},
}

// convertFullWidthAlphanumericToNormal / convertAlphanumericToFullWidth
// shift ASCII <-> full-width alphanumeric (U+FF01-U+FF5E is the ASCII
// block shifted by 0xFEE0).
const fullWidthShift = 0xFEE0

func convertFullWidthAlphanumericToNormal(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range runes {
		if r >= 0xFF01 && r <= 0xFF5E {
			b.WriteRune(r - fullWidthShift)
			continue
		}
		if r == '　' {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func convertAlphanumericToFullWidth(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range runes {
		if r >= '!' && r <= '~' {
			b.WriteRune(r + fullWidthShift)
			continue
		}
		if r == ' ' {
			b.WriteRune('　')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AlphanumericWidth converts between alphanumeric width variants:
// Direct folds full-width to normal, Inverse expands normal to
// full-width.
var AlphanumericWidth = TextProcessor{
	ID:          "alphanumeric-width-variants",
	Name:        "Convert Between Alphabetic Width Variants",
	Description: "ｈｅｌｌｏ → hello and vice versa",
	Options:     []Setting{Off, Direct, Inverse},
	Apply: func(text string, setting Setting) string {
		switch setting.(TriState) {
		case Direct:
			return convertFullWidthAlphanumericToNormal(text)
		case Inverse:
			return convertAlphanumericToFullWidth(text)
		default:
			return text
		}
	},
}

// AlphabeticToHiragana is ALPHABETIC_TO_HIRAGANA (romaji->kana), ported
// from the WanaKana-equivalent algorithm in wanakana.go: out-of-range
// characters partition the input, so runs of non-alphabetic text pass
// through untouched between converted romaji runs.
var AlphabeticToHiragana = TextProcessor{
	ID:          "alphabetic-to-hiragana",
	Name:        "Convert Alphabetic Characters to Hiragana",
	Description: "yomichan → よみちゃん",
	Options:     []Setting{false, true},
	Apply: func(text string, setting Setting) string {
		if b, _ := setting.(bool); b {
			return ConvertAlphabeticToKana(text)
		}
		return text
	},
}

// collapseEmphaticSequences implements the "すっっごーーい → すっごーい /
// すごい" transform: runs of {ッ,っ,ー} reduce either to one
// occurrence (partial) or to zero (full).
func collapseEmphaticSequences(text string, full bool) string {
	isEmphatic := func(r rune) bool {
		return r == 'ッ' || r == 'っ' || r == prolongedSoundMark
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for i < len(runes) {
		r := runes[i]
		if !isEmphatic(r) {
			b.WriteRune(r)
			i++
			continue
		}
		j := i
		for j < len(runes) && runes[j] == r {
			j++
		}
		if !full {
			b.WriteRune(r)
		}
		i = j
	}
	return b.String()
}

// CollapseEmphaticSequences reduces runs of emphatic characters
// (ッ/っ/ー); setting is [collapse_emphatic, collapse_emphatic_full].
var CollapseEmphaticSequences = TextProcessor{
	ID:          "collapse-emphatic-sequences",
	Name:        "Collapse Emphatic Character Sequences",
	Description: "すっっごーーい → すっごーい / すごい",
	Options:     []Setting{[2]bool{false, false}, [2]bool{true, false}, [2]bool{true, true}},
	Apply: func(text string, setting Setting) string {
		pair, _ := setting.([2]bool)
		if !pair[0] {
			return text
		}
		return collapseEmphaticSequences(text, pair[1])
	},
}

const (
	combiningDakuten    = '゙'
	combiningHandakuten = '゚'
)

// normalizeCombiningCharacters folds base+U+3099 to the dakuten kana and
// base+U+309A to the handakuten kana, e.g. ド (ト U+30C8 + U+3099) → ド (U+30C9).
func normalizeCombiningCharacters(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i+1 < len(runes) {
			switch runes[i+1] {
			case combiningDakuten:
				if voiced, ok := dakutenCapable[hiraganaToKatakanaRune(r)]; ok {
					b.WriteRune(katakanaToOriginalCase(r, voiced))
					i++
					continue
				}
			case combiningHandakuten:
				if semiVoiced, ok := handakutenCapable[hiraganaToKatakanaRune(r)]; ok {
					b.WriteRune(katakanaToOriginalCase(r, semiVoiced))
					i++
					continue
				}
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func hiraganaToKatakanaRune(r rune) rune {
	if r >= hiraganaStart && r <= hiraganaEnd {
		return r + kanaShift
	}
	return r
}

func katakanaToOriginalCase(base, katakanaResult rune) rune {
	if base >= hiraganaStart && base <= hiraganaEnd {
		return katakanaResult - kanaShift
	}
	return katakanaResult
}

// NormalizeCombiningCharacters is NORMALIZE_COMBINING_CHARACTERS.
var NormalizeCombiningCharacters = TextProcessor{
	ID:          "normalize-combining-characters",
	Name:        "Normalize Combining Characters",
	Description: "ド → ド (U+30C8 U+3099 → U+30C9)",
	Options:     []Setting{false, true},
	Apply: func(text string, setting Setting) string {
		if b, _ := setting.(bool); b {
			return normalizeCombiningCharacters(text)
		}
		return text
	},
}

// VariantKanjiToOriginal folds itaiji (variant) kanji to their oyaji
// (parent) form via the embedded kanjivariants.Default() normalizer.
var VariantKanjiToOriginal = TextProcessor{
	ID:          "variant-kanji-to-original",
	Name:        "Convert Variant Kanji to Original",
	Description: "舊 → 旧, 國 → 国, ...",
	Options:     []Setting{false, true},
	Apply: func(text string, setting Setting) string {
		if b, _ := setting.(bool); b {
			return kanjivariants.Default().Normalize(text)
		}
		return text
	},
}

// JapanesePreProcessors is the ordered pre-processor list the
// translator crosses with opts.TextReplacements before deinflection.
func JapanesePreProcessors() []TextProcessor {
	return []TextProcessor{
		VariantKanjiToOriginal,
		HalfWidthKatakanaToFullWidth,
		AlphabeticToHiragana,
		AlphanumericWidth,
		NormalizeCombiningCharacters,
	}
}

// JapanesePostProcessors runs on each deinflection chain's tail text.
func JapanesePostProcessors() []TextProcessor {
	return []TextProcessor{
		CollapseEmphaticSequences,
		HiraganaKatakana,
	}
}
