package langtransform

import "fmt"

// maxConditionFlags is the bitmask width: at most 32 distinct leaf
// conditions per language.
const maxConditionFlags = 32

// Condition is a named grammatical category. Conditions form a DAG;
// composite conditions resolve to the bitwise OR of their sub-conditions.
type Condition struct {
	Name             string
	IsDictionaryForm bool
	SubConditions    []string
}

// conditionFlags resolves every Condition in desc.Conditions to a
// bitmask, by repeated fixed-point expansion: a condition with no
// sub-conditions still unresolved is a leaf and gets a fresh bit; a
// composite condition resolves once all its sub-conditions are resolved.
func conditionFlags(conditions map[string]Condition) (map[string]uint32, error) {
	flags := make(map[string]uint32, len(conditions))
	nextFlagIndex := 0

	targets := make([]string, 0, len(conditions))
	for name := range conditions {
		targets = append(targets, name)
	}

	for len(targets) > 0 {
		nextTargets := targets[:0:0]

		for _, name := range targets {
			cond := conditions[name]
			if len(cond.SubConditions) == 0 {
				if nextFlagIndex >= maxConditionFlags {
					return nil, fmt.Errorf("langtransform: condition %q exceeds the %d leaf-bit limit", name, maxConditionFlags)
				}
				flags[name] = 1 << nextFlagIndex
				nextFlagIndex++
				continue
			}

			var combined uint32
			resolved := true
			for _, sub := range cond.SubConditions {
				f, ok := flags[sub]
				if !ok {
					resolved = false
					break
				}
				combined |= f
			}
			if !resolved {
				nextTargets = append(nextTargets, name)
				continue
			}
			flags[name] = combined
		}

		if len(nextTargets) == len(targets) {
			return nil, fmt.Errorf("langtransform: sub-condition cycle detected among %v", nextTargets)
		}
		targets = nextTargets
	}

	return flags, nil
}

// ConditionsMatch reports whether next satisfies current; an empty
// current means "no constraint yet".
func ConditionsMatch(current, next uint32) bool {
	return current == 0 || (current&next) != 0
}
