package translator

import (
	"regexp"
	"unicode"

	"yomidict/internal/dictentry"
	"yomidict/internal/options"
	"yomidict/internal/textproc"
)

// deinflection is one (original substring, preprocessed variant, final
// query text) triple plus the derivation(s) that produced it.
type deinflection struct {
	OriginalText    string
	TransformedText string
	DeinflectedText string
	Conditions      uint32
	Candidates      []dictentry.InflectionRuleChainCandidate
}

// getDeinflections enumerates every candidate query text for text:
// shrink from the end at the configured resolution, cross each shrunk
// substring with opts.TextReplacements and the language's
// pre-processors, run the deinflection transformer over each variant,
// then cross the tail of every derivation chain with the language's
// post-processors.
func (t *Translator) getDeinflections(text string, opts options.ProfileOptions) []deinflection {
	cache := textproc.NewCache()
	pre := t.preProcessors[opts.Language]
	post := t.postProcessors[opts.Language]

	out := make([]deinflection, 0, 16)
	seen := make(map[string]int) // dedup key -> index into out, merging candidates

	for _, rawSource := range shrinkCandidates(text, opts.SearchResolution) {
		replaced := applyTextReplacements(opts.TextReplacements, rawSource)
		variants := expandVariants(cache, pre, replaced)

		for _, variant := range variants {
			var chains []chainResult
			if opts.Deinflect {
				chains = t.transformChains(opts.Language, variant)
			} else {
				chains = []chainResult{{text: variant}}
			}

			for _, chain := range chains {
				tails := expandVariants(cache, post, []string{chain.text})
				for _, tail := range tails {
					key := rawSource + "\x00" + tail + "\x00" + ruleKey(chain.rules)
					candidate := dictentry.InflectionRuleChainCandidate{
						Source:          dictentry.ChainSourceAlgorithm,
						InflectionRules: chain.rules,
					}
					if idx, ok := seen[key]; ok {
						out[idx].Candidates = append(out[idx].Candidates, candidate)
						continue
					}
					seen[key] = len(out)
					out = append(out, deinflection{
						OriginalText:    rawSource,
						TransformedText: variant,
						DeinflectedText: tail,
						Conditions:      chain.conditions,
						Candidates:      []dictentry.InflectionRuleChainCandidate{candidate},
					})
				}
			}
		}
	}
	return out
}

type chainResult struct {
	text       string
	conditions uint32
	rules      []string
}

func (t *Translator) transformChains(language, text string) []chainResult {
	transformed := t.Transformers.Transform(language, text)
	out := make([]chainResult, 0, len(transformed))
	for _, tt := range transformed {
		rules := make([]string, len(tt.Trace))
		for i, step := range tt.Trace {
			rules[i] = step.TransformID
		}
		out = append(out, chainResult{text: tt.Text, conditions: tt.Conditions, rules: rules})
	}
	return out
}

func ruleKey(rules []string) string {
	key := ""
	for _, r := range rules {
		key += r + "\x1f"
	}
	return key
}

// shrinkCandidates returns text's trailing-truncated substrings from
// longest to shortest, at letter or word granularity per
// opts.SearchResolution.
func shrinkCandidates(text string, resolution options.SearchResolution) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if resolution == options.ResolutionWord {
		return shrinkByWord(runes)
	}
	out := make([]string, 0, len(runes))
	for n := len(runes); n > 0; n-- {
		out = append(out, string(runes[:n]))
	}
	return out
}

// shrinkByWord repeatedly drops one trailing "word" (a run of
// letters/digits, or a run of other runes) from the end.
func shrinkByWord(runes []rune) []string {
	out := make([]string, 0, len(runes))
	n := len(runes)
	for n > 0 {
		out = append(out, string(runes[:n]))
		end := n
		n--
		for n > 0 && isWordRune(runes[n-1]) == isWordRune(runes[end-1]) {
			n--
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// applyTextReplacements runs opts.TextReplacements's ordered groups
// against rawSource; a group with IncludeRaw also yields the untouched
// text alongside its replaced form.
func applyTextReplacements(groups []options.TextReplacementGroup, rawSource string) []string {
	if len(groups) == 0 {
		return []string{rawSource}
	}
	seen := make(map[string]bool)
	out := make([]string, 0, len(groups)+1)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, group := range groups {
		if group.IncludeRaw {
			add(rawSource)
		}
		replaced := rawSource
		for _, rep := range group.Replacements {
			replaced = applyOneReplacement(replaced, rep)
		}
		add(replaced)
	}
	if len(out) == 0 {
		add(rawSource)
	}
	return out
}

func applyOneReplacement(text string, rep options.TextReplacement) string {
	pattern := rep.Pattern
	if rep.IgnoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return text
	}
	if rep.Global {
		return re.ReplaceAllString(text, rep.Replacement)
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + re.ReplaceAllString(text[loc[0]:loc[1]], rep.Replacement) + text[loc[1]:]
}

// expandVariants crosses texts with every Options setting of every
// processor in order, deduplicating the final generation.
func expandVariants(cache *textproc.Cache, processors []textproc.TextProcessor, texts []string) []string {
	current := texts
	for _, proc := range processors {
		next := make([]string, 0, len(current)*len(proc.Options))
		for _, text := range current {
			for _, setting := range proc.Options {
				next = append(next, cache.Apply(proc, text, setting))
			}
		}
		current = next
	}
	seen := make(map[string]bool, len(current))
	out := make([]string, 0, len(current))
	for _, text := range current {
		if !seen[text] {
			seen[text] = true
			out = append(out, text)
		}
	}
	return out
}
