package langtransform

import "testing"

func sampleDescriptor() LanguageTransformDescriptor {
	return LanguageTransformDescriptor{
		Language: "test",
		Conditions: map[string]Condition{
			"v":  {Name: "v", SubConditions: []string{"v1", "v5"}},
			"v1": {Name: "v1", IsDictionaryForm: true},
			"v5": {Name: "v5", IsDictionaryForm: true},
		},
		Transforms: []TransformDescriptor{
			{
				ID:   "-ta",
				Name: "-ta",
				Rules: []RuleDescriptor{
					SuffixInflection("た", "る", []string{"v1"}, []string{"v1"}),
					SuffixInflection("った", "る", []string{"v5"}, []string{"v5"}),
				},
			},
		},
	}
}

func TestAddDescriptorResolvesCompositeFlags(t *testing.T) {
	tr := NewTransformer()
	if err := tr.AddDescriptor(sampleDescriptor()); err != nil {
		t.Fatalf("AddDescriptor: %v", err)
	}

	v1 := tr.conditionTypeToFlags["v1"]
	v5 := tr.conditionTypeToFlags["v5"]
	v := tr.conditionTypeToFlags["v"]

	if v1 == 0 || v5 == 0 {
		t.Fatalf("expected leaf conditions to receive non-zero bits, got v1=%d v5=%d", v1, v5)
	}
	if v1 == v5 {
		t.Fatalf("expected distinct bits for v1 and v5")
	}
	if v != v1|v5 {
		t.Fatalf("composite condition flags(v) = %d, want %d", v, v1|v5)
	}
}

func TestAddDescriptorDetectsSubConditionCycle(t *testing.T) {
	tr := NewTransformer()
	desc := LanguageTransformDescriptor{
		Language: "cyclic",
		Conditions: map[string]Condition{
			"a": {Name: "a", SubConditions: []string{"b"}},
			"b": {Name: "b", SubConditions: []string{"a"}},
		},
		Transforms: []TransformDescriptor{
			{ID: "x", Rules: []RuleDescriptor{SuffixInflection("x", "y", nil, nil)}},
		},
	}
	if err := tr.AddDescriptor(desc); err == nil {
		t.Fatalf("expected sub-condition cycle to be rejected")
	}
}

func TestAddDescriptorRejectsTooManyLeafConditions(t *testing.T) {
	tr := NewTransformer()
	conditions := make(map[string]Condition, maxConditionFlags+1)
	for i := 0; i < maxConditionFlags+1; i++ {
		name := string(rune('a' + i))
		conditions[name] = Condition{Name: name}
	}
	desc := LanguageTransformDescriptor{
		Language:   "overflow",
		Conditions: conditions,
		Transforms: []TransformDescriptor{
			{ID: "x", Rules: []RuleDescriptor{SuffixInflection("x", "y", nil, nil)}},
		},
	}
	if err := tr.AddDescriptor(desc); err == nil {
		t.Fatalf("expected leaf-bit overflow to be rejected")
	}
}

func TestTransformReachesDictionaryForm(t *testing.T) {
	tr := NewTransformer()
	if err := tr.AddDescriptor(sampleDescriptor()); err != nil {
		t.Fatalf("AddDescriptor: %v", err)
	}

	results := tr.Transform("食べた")
	found := false
	for _, r := range results {
		if r.Text == "食べる" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 食べた to deinflect to 食べる, got %+v", results)
	}
}

func TestTransformTerminatesAndIsFinite(t *testing.T) {
	tr := NewTransformer()
	if err := tr.AddDescriptor(sampleDescriptor()); err != nil {
		t.Fatalf("AddDescriptor: %v", err)
	}
	results := tr.Transform("ったったった")
	if len(results) == 0 {
		t.Fatalf("expected at least the identity result")
	}
}

func TestConditionsMatch(t *testing.T) {
	cases := []struct {
		current, next uint32
		want          bool
	}{
		{0, 0, true},
		{0, 7, true},
		{1, 1, true},
		{1, 2, false},
		{3, 2, true},
	}
	for _, c := range cases {
		if got := ConditionsMatch(c.current, c.next); got != c.want {
			t.Errorf("ConditionsMatch(%d, %d) = %v, want %v", c.current, c.next, got, c.want)
		}
	}
}

func TestUserFacingInflectionRulesUnknownID(t *testing.T) {
	tr := NewTransformer()
	if err := tr.AddDescriptor(sampleDescriptor()); err != nil {
		t.Fatalf("AddDescriptor: %v", err)
	}
	rules := tr.UserFacingInflectionRules([]string{"-ta", "nonexistent"})
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Name != "-ta" {
		t.Errorf("rules[0].Name = %q, want -ta", rules[0].Name)
	}
	if rules[1].Name != "nonexistent" || rules[1].Description != "" {
		t.Errorf("unknown id should map to {name: id}, got %+v", rules[1])
	}
}

func TestMultiLanguageTransformerUnknownLanguageIsIdentity(t *testing.T) {
	m := NewMultiLanguageTransformer()
	results := m.Transform("xx", "hello")
	if len(results) != 1 || results[0].Text != "hello" {
		t.Fatalf("expected identity chain for unknown language, got %+v", results)
	}
	if flags := m.FlagsFromPartsOfSpeech("xx", []string{"n"}); flags != 0 {
		t.Errorf("expected zero flags for unknown language, got %d", flags)
	}
}
