package langtransform

import "regexp"

// RuleKind is the anchor style of a SuffixRule's pattern.
type RuleKind int

const (
	RuleSuffix RuleKind = iota
	RulePrefix
	RuleWholeWord
	RuleOther
)

// RuleDescriptor is the input shape accepted by AddDescriptor, before the
// condition names are resolved to bitmasks. Inflected carries the
// inflected literal for Suffix/Prefix/WholeWord kinds; Deinflect computes
// the deinflected text for RuleOther where the replacement is not a
// simple literal splice.
type RuleDescriptor struct {
	Kind               RuleKind
	Inflected          string
	DeinflectedLiteral string
	ConditionsIn       []string
	ConditionsOut      []string
	Deinflect          func(text string) string
}

// rule is a RuleDescriptor with condition names resolved to bitmasks and
// its pattern compiled.
type rule struct {
	kind               RuleKind
	pattern            *regexp.Regexp
	deinflectedLiteral string
	deinflect          func(text string) string
	conditionsIn       uint32
	conditionsOut      uint32
}

func compileRule(desc RuleDescriptor, flags map[string]uint32) (rule, error) {
	var pattern *regexp.Regexp
	var err error
	switch desc.Kind {
	case RuleSuffix:
		pattern, err = regexp.Compile(regexp.QuoteMeta(desc.Inflected) + "$")
	case RulePrefix:
		pattern, err = regexp.Compile("^" + regexp.QuoteMeta(desc.Inflected))
	case RuleWholeWord:
		pattern, err = regexp.Compile("^" + regexp.QuoteMeta(desc.Inflected) + "$")
	default:
		pattern, err = regexp.Compile(desc.Inflected)
	}
	if err != nil {
		return rule{}, err
	}

	conditionsIn, err := flagsFromConditionNamesStrict(flags, desc.ConditionsIn)
	if err != nil {
		return rule{}, err
	}
	conditionsOut, err := flagsFromConditionNamesStrict(flags, desc.ConditionsOut)
	if err != nil {
		return rule{}, err
	}

	deinflect := desc.Deinflect
	if deinflect == nil {
		inflected := desc.Inflected
		deinflectedLiteral := desc.DeinflectedLiteral
		switch desc.Kind {
		case RuleSuffix:
			deinflect = func(text string) string {
				base := text[:len(text)-len(inflected)]
				return base + deinflectedLiteral
			}
		case RulePrefix:
			deinflect = func(text string) string {
				return deinflectedLiteral + text[len(inflected):]
			}
		default:
			deinflect = func(string) string { return deinflectedLiteral }
		}
	}

	return rule{
		kind:               desc.Kind,
		pattern:            pattern,
		deinflectedLiteral: desc.DeinflectedLiteral,
		deinflect:          deinflect,
		conditionsIn:       conditionsIn,
		conditionsOut:      conditionsOut,
	}, nil
}

func flagsFromConditionNamesStrict(flags map[string]uint32, names []string) (uint32, error) {
	f, ok := flagsFromConditionNames(flags, names)
	if !ok {
		return 0, errUnknownCondition
	}
	return f, nil
}

// SuffixInflection is the most common rule constructor: a plain
// inflected-suffix -> deinflected-suffix splice.
func SuffixInflection(inflectedSuffix, deinflectedSuffix string, conditionsIn, conditionsOut []string) RuleDescriptor {
	return RuleDescriptor{
		Kind:               RuleSuffix,
		Inflected:          inflectedSuffix,
		DeinflectedLiteral: deinflectedSuffix,
		ConditionsIn:       conditionsIn,
		ConditionsOut:      conditionsOut,
	}
}

// PrefixInflection mirrors prefix_inflection.
func PrefixInflection(inflectedPrefix, deinflectedPrefix string, conditionsIn, conditionsOut []string) RuleDescriptor {
	return RuleDescriptor{
		Kind:               RulePrefix,
		Inflected:          inflectedPrefix,
		DeinflectedLiteral: deinflectedPrefix,
		ConditionsIn:       conditionsIn,
		ConditionsOut:      conditionsOut,
	}
}

// WholeWordInflection mirrors whole_word_inflection.
func WholeWordInflection(inflectedWord, deinflectedWord string, conditionsIn, conditionsOut []string) RuleDescriptor {
	return RuleDescriptor{
		Kind:               RuleWholeWord,
		Inflected:          inflectedWord,
		DeinflectedLiteral: deinflectedWord,
		ConditionsIn:       conditionsIn,
		ConditionsOut:      conditionsOut,
	}
}

// TransformDescriptor is the input shape for one named transform.
type TransformDescriptor struct {
	ID          string
	Name        string
	Description string
	Rules       []RuleDescriptor
}

// transform is a TransformDescriptor with rules compiled and a combined
// heuristic regex for O(1) early-exit.
type transform struct {
	id          string
	name        string
	description string
	rules       []rule
	heuristic   *regexp.Regexp
}
