// Package ja is the Japanese LanguageTransformDescriptor: the condition
// DAG and verb/adjective transform rules.
//
// This is a curated, representative subset of the full Japanese
// conjugation rule table. It does not cover every euphonic verb
// variant: the te-form and past rules map って/った only to う and
// んで/んだ only to む (not つ, る, ぬ or ぶ), and 行く's irregular
// 行って is not handled.
package ja

import "yomidict/internal/langtransform"

// Condition names, matching the leaf/composite split in the condition
// table below.
const (
	CondV     = "v"     // verb (composite)
	CondV1    = "v1"    // ichidan verb, dictionary form
	CondV5    = "v5"    // godan verb, dictionary form
	CondVK    = "vk"    // kuru (irregular), dictionary form
	CondVS    = "vs"    // suru (irregular), dictionary form
	CondVZ    = "vz"    // zuru (irregular), dictionary form
	CondAdjI  = "adj-i" // i-adjective, dictionary form
	CondAdjNa = "adj-na" // na-adjective, dictionary form
)

// Conditions is the Japanese condition DAG.
func Conditions() map[string]langtransform.Condition {
	return map[string]langtransform.Condition{
		CondV:     {Name: CondV, SubConditions: []string{CondV1, CondV5, CondVK, CondVS, CondVZ}},
		CondV1:    {Name: CondV1, IsDictionaryForm: true},
		CondV5:    {Name: CondV5, IsDictionaryForm: true},
		CondVK:    {Name: CondVK, IsDictionaryForm: true},
		CondVS:    {Name: CondVS, IsDictionaryForm: true},
		CondVZ:    {Name: CondVZ, IsDictionaryForm: true},
		CondAdjI:  {Name: CondAdjI, IsDictionaryForm: true},
		CondAdjNa: {Name: CondAdjNa, IsDictionaryForm: true},
	}
}
