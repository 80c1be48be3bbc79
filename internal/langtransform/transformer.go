// Package langtransform implements a declarative deinflection rule
// engine and its multi-language registry: condition DAGs resolved to
// bitmasks, transforms compiled to regex rule sets, and a
// breadth-first walk that enumerates every derivation chain from a
// surface form to plausible dictionary forms.
package langtransform

import (
	"regexp"
	"sync/atomic"
)

// TraceStep is one applied rule in a TransformedText's derivation.
type TraceStep struct {
	TransformID string
	RuleIndex   int
	TextBefore  string
}

// TransformedText is one candidate produced by Transform.
type TransformedText struct {
	Text       string
	Conditions uint32
	Trace      []TraceStep
}

// LanguageTransformDescriptor is the input to AddDescriptor: conditions
// plus an ordered list of transforms. Ordering is preserved and
// observable, since it becomes the BFS iteration order.
type LanguageTransformDescriptor struct {
	Language   string
	Conditions map[string]Condition
	Transforms []TransformDescriptor
}

// Transformer holds one language's compiled condition/transform tables.
// Immutable after AddDescriptor returns, and safe to share by reference
// across concurrent lookups.
type Transformer struct {
	transforms                []transform
	conditionTypeToFlags      map[string]uint32
	partOfSpeechToFlags       map[string]uint32

	// cycleCount is incremented whenever Transform rejects a revisited
	// (transform_id, rule_index, text) state. It is never reset; callers
	// read it via CycleCount to distinguish a cycle-aborted branch from
	// a genuine "no match".
	cycleCount atomic.Int64
}

// NewTransformer builds an empty Transformer. Use AddDescriptor to
// populate it.
func NewTransformer() *Transformer {
	return &Transformer{
		conditionTypeToFlags: make(map[string]uint32),
		partOfSpeechToFlags:  make(map[string]uint32),
	}
}

// AddDescriptor validates and registers a LanguageTransformDescriptor.
func (t *Transformer) AddDescriptor(desc LanguageTransformDescriptor) error {
	flags, err := conditionFlags(desc.Conditions)
	if err != nil {
		return &TransformerConfigError{Cause: err}
	}

	compiled := make([]transform, 0, len(desc.Transforms))
	for _, td := range desc.Transforms {
		if len(td.Rules) == 0 {
			return &TransformerConfigError{TransformID: td.ID, Cause: errEmptyTransform}
		}
		rules := make([]rule, 0, len(td.Rules))
		patterns := make([]string, 0, len(td.Rules))
		for i, rd := range td.Rules {
			r, err := compileRule(rd, flags)
			if err != nil {
				return &TransformerConfigError{TransformID: td.ID, RuleIndex: i, Cause: err}
			}
			rules = append(rules, r)
			patterns = append(patterns, r.pattern.String())
		}
		heuristic, err := regexp.Compile(joinAlternatives(patterns))
		if err != nil {
			return &TransformerConfigError{TransformID: td.ID, Cause: err}
		}
		compiled = append(compiled, transform{
			id:          td.ID,
			name:        td.Name,
			description: td.Description,
			rules:       rules,
			heuristic:   heuristic,
		})
	}

	t.transforms = append(t.transforms, compiled...)

	for name := range desc.Conditions {
		t.conditionTypeToFlags[name] = flags[name]
	}
	for name, cond := range desc.Conditions {
		if cond.IsDictionaryForm {
			t.partOfSpeechToFlags[name] = flags[name]
		}
	}

	return nil
}

func joinAlternatives(patterns []string) string {
	if len(patterns) == 1 {
		return patterns[0]
	}
	out := "(?:" + patterns[0] + ")"
	for _, p := range patterns[1:] {
		out += "|(?:" + p + ")"
	}
	return out
}

// Transform runs the breadth-first derivation walk: starting from the
// identity TransformedText, repeatedly apply every rule of every
// transform whose heuristic and conditions match, rejecting any
// (transform_id, rule_index, text) state already present in that
// branch's trace.
func (t *Transformer) Transform(text string) []TransformedText {
	results := []TransformedText{{Text: text}}

	for i := 0; i < len(results); i++ {
		current := results[i]
		for _, tr := range t.transforms {
			if !tr.heuristic.MatchString(current.Text) {
				continue
			}
			for j, r := range tr.rules {
				if !ConditionsMatch(current.Conditions, r.conditionsIn) {
					continue
				}
				if !r.pattern.MatchString(current.Text) {
					continue
				}
				if traceContains(current.Trace, tr.id, j, current.Text) {
					t.cycleCount.Add(1)
					continue
				}

				newText := r.deinflect(current.Text)
				// Prepend: the trace is kept in dictionary-form-to-surface
				// display order (newest application first).
				newTrace := make([]TraceStep, len(current.Trace)+1)
				newTrace[0] = TraceStep{
					TransformID: tr.id,
					RuleIndex:   j,
					TextBefore:  current.Text,
				}
				copy(newTrace[1:], current.Trace)
				results = append(results, TransformedText{
					Text:       newText,
					Conditions: r.conditionsOut,
					Trace:      newTrace,
				})
			}
		}
	}

	return results
}

// CycleCount reports how many cycle-rejected branches this Transformer
// has encountered across all calls to Transform.
func (t *Transformer) CycleCount() int { return int(t.cycleCount.Load()) }

func traceContains(trace []TraceStep, transformID string, ruleIndex int, text string) bool {
	for _, step := range trace {
		if step.TransformID == transformID && step.RuleIndex == ruleIndex && step.TextBefore == text {
			return true
		}
	}
	return false
}

// FlagsFromPartsOfSpeech ORs together the flags for each named part of
// speech; unknown names contribute zero.
func (t *Transformer) FlagsFromPartsOfSpeech(pos []string) uint32 {
	var flags uint32
	for _, name := range pos {
		flags |= t.partOfSpeechToFlags[name]
	}
	return flags
}

// FlagsFromConditionTypesStrict returns false if any name is unknown.
func (t *Transformer) FlagsFromConditionTypesStrict(names []string) (uint32, bool) {
	return flagsFromConditionNames(t.conditionTypeToFlags, names)
}

// FlagsFromConditionTypesLenient ignores unknown names.
func (t *Transformer) FlagsFromConditionTypesLenient(names []string) uint32 {
	var flags uint32
	for _, name := range names {
		flags |= t.conditionTypeToFlags[name]
	}
	return flags
}

func flagsFromConditionNames(table map[string]uint32, names []string) (uint32, bool) {
	var flags uint32
	for _, name := range names {
		f, ok := table[name]
		if !ok {
			return 0, false
		}
		flags |= f
	}
	return flags, true
}

// UserFacingInflectionRule is the {name, description} pair returned by
// UserFacingInflectionRules.
type UserFacingInflectionRule struct {
	Name        string
	Description string
}

// UserFacingInflectionRules maps each transform id back to a
// human-readable name/description; unknown ids map to {name: id}.
func (t *Transformer) UserFacingInflectionRules(ruleIDs []string) []UserFacingInflectionRule {
	byID := make(map[string]transform, len(t.transforms))
	for _, tr := range t.transforms {
		byID[tr.id] = tr
	}

	out := make([]UserFacingInflectionRule, 0, len(ruleIDs))
	for _, id := range ruleIDs {
		if tr, ok := byID[id]; ok {
			out = append(out, UserFacingInflectionRule{Name: tr.name, Description: tr.description})
			continue
		}
		out = append(out, UserFacingInflectionRule{Name: id})
	}
	return out
}
