package ja

import lt "yomidict/internal/langtransform"

func si(inflected, deinflected string, in, out []string) lt.RuleDescriptor {
	return lt.SuffixInflection(inflected, deinflected, in, out)
}

var (
	v1  = []string{CondV1}
	v5  = []string{CondV5}
	vs  = []string{CondVS}
	vk  = []string{CondVK}
	adjI = []string{CondAdjI}
	none []string
)

// Descriptor builds the Japanese LanguageTransformDescriptor: a
// curated set of verb/adjective conjugation rules covering a sample of
// the euphonic and irregular forms (see the package comment for what
// is left out), enough to exercise every mechanism the
// engine defines (condition bitmasks, cycle-safe BFS chaining,
// heuristic early-exit).
func Descriptor() lt.LanguageTransformDescriptor {
	return lt.LanguageTransformDescriptor{
		Language:   "ja",
		Conditions: Conditions(),
		Transforms: []lt.TransformDescriptor{
			teForm(),
			pastTense(),
			politeForm(),
			politeNegative(),
			negative(),
			causative(),
			potentialOrPassive(),
			passive(),
			causativePassive(),
			volitional(),
			conditionalBa(),
		},
	}
}

// teForm ports the "-te" transform (suffix_inflection calls for て/で
// per verb class), transforms.rs ~line 700s.
func teForm() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:   "-te",
		Name: "-te",
		Description: "te-form",
		Rules: []lt.RuleDescriptor{
			si("て", "る", v1, v1),
			si("いて", "く", v5, v5),
			si("いで", "ぐ", v5, v5),
			si("して", "す", v5, v5),
			si("って", "う", v5, v5),
			si("んで", "む", v5, v5),
			si("して", "する", vs, vs),
			si("きて", "くる", vk, vk),
		},
	}
}

// pastTense ports "-ta", including the direct なかった->ない contraction
// that lets negative-past chain straight into the negative transform
// without a separate generic adjective-past rule.
func pastTense() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "-ta",
		Name:        "-ta",
		Description: "past (or -ta form)",
		Rules: []lt.RuleDescriptor{
			si("た", "る", v1, v1),
			si("いた", "く", v5, v5),
			si("いだ", "ぐ", v5, v5),
			si("した", "す", v5, v5),
			si("った", "う", v5, v5),
			si("んだ", "む", v5, v5),
			si("した", "する", vs, vs),
			si("きた", "くる", vk, vk),
			si("かった", "い", none, adjI),
			si("なかった", "ない", none, adjI),
			si("ませんでした", "ません", none, none),
		},
	}
}

// politeForm ports "-masu".
func politeForm() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "-masu",
		Name:        "-masu",
		Description: "polite form",
		Rules: []lt.RuleDescriptor{
			si("ます", "る", v1, v1),
			si("きます", "く", v5, v5),
			si("ぎます", "ぐ", v5, v5),
			si("します", "す", v5, v5),
			si("います", "う", v5, v5),
			si("ちます", "つ", v5, v5),
			si("にます", "ぬ", v5, v5),
			si("びます", "ぶ", v5, v5),
			si("みます", "む", v5, v5),
			si("ります", "る", v5, v5),
			si("します", "する", vs, vs),
			si("きます", "くる", vk, vk),
		},
	}
}

// politeNegative ports "-masen" (ません -> ます), an auxiliary-only
// transform whose output is unconstrained (conditions_out = 0) so it
// chains freely into politeForm.
func politeNegative() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "-masen",
		Name:        "-masen",
		Description: "polite negative",
		Rules: []lt.RuleDescriptor{
			si("ません", "ます", none, none),
		},
	}
}

// negative ports the "negative" transform. conditions_in = adj-i on
// every rule matches the original: the bare text "ない"/"かない"/... only
// continues a chain when the current state is either unconstrained (the
// raw input, conditions == 0) or was already tagged adj-i by a preceding
// rule (e.g. pastTense's なかった->ない).
func negative() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "negative",
		Name:        "negative",
		Description: "negative",
		Rules: []lt.RuleDescriptor{
			si("ない", "る", adjI, v1),
			si("かない", "く", adjI, v5),
			si("がない", "ぐ", adjI, v5),
			si("さない", "す", adjI, v5),
			si("たない", "つ", adjI, v5),
			si("なない", "ぬ", adjI, v5),
			si("ばない", "ぶ", adjI, v5),
			si("まない", "む", adjI, v5),
			si("らない", "る", adjI, v5),
			si("わない", "う", adjI, v5),
			si("しない", "する", adjI, vs),
			si("こない", "くる", adjI, vk),
		},
	}
}

// causative ports the "causative" transform, transforms.rs causative
// section: ichidan させる conditions_out stays v1 (the causative form
// itself conjugates like an ichidan verb), godan variants conditions_out
// stays v5, etc.
func causative() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "causative",
		Name:        "causative",
		Description: "causative",
		Rules: []lt.RuleDescriptor{
			si("させる", "る", v1, v1),
			si("かせる", "く", v5, v5),
			si("がせる", "ぐ", v5, v5),
			si("させる", "す", v5, v5),
			si("たせる", "つ", v5, v5),
			si("なせる", "ぬ", v5, v5),
			si("ばせる", "ぶ", v5, v5),
			si("ませる", "む", v5, v5),
			si("らせる", "る", v5, v5),
			si("わせる", "う", v5, v5),
			si("させる", "する", vs, vs),
			si("こさせる", "くる", vk, vk),
		},
	}
}

// potentialOrPassive attaches られる to the irrealis form of ichidan
// verbs. Because 食べられる is surface-identical whether read as
// potential or passive, conditions_out stays v1 either way — the
// distinction is semantic, not structural, and downstream rule-bitmask
// filtering against the matched dictionary entry is what narrows it to
// whichever entry actually exists.
//
// This is also the rule that, chained after causative, derives the
// non-contracted causative-passive form (食べさせられる) without a
// dedicated transform.
func potentialOrPassive() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "potential",
		Name:        "potential",
		Description: "potential",
		Rules: []lt.RuleDescriptor{
			si("られる", "る", v1, v1),
			si("える", "う", v5, v5),
			si("ける", "く", v5, v5),
			si("げる", "ぐ", v5, v5),
			si("せる", "す", v5, v5),
			si("てる", "つ", v5, v5),
			si("ねる", "ぬ", v5, v5),
			si("べる", "ぶ", v5, v5),
			si("める", "む", v5, v5),
			si("れる", "る", v5, v5),
			si("できる", "する", vs, vs),
			si("こられる", "くる", vk, vk),
		},
	}
}

// passive ports the godan-targeting られる rule from the "passive"
// section of transforms.rs (line ~1155): for godan verbs whose
// dictionary form itself ends in る (e.g. 乗る), the irrealis form ends
// in ら, so passive られる attaches directly and conditions_out is v5.
func passive() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "passive",
		Name:        "passive",
		Description: "passive",
		Rules: []lt.RuleDescriptor{
			si("かれる", "く", v5, v5),
			si("がれる", "ぐ", v5, v5),
			si("される", "す", v5, v5),
			si("たれる", "つ", v5, v5),
			si("なれる", "ぬ", v5, v5),
			si("ばれる", "ぶ", v5, v5),
			si("まれる", "む", v5, v5),
			si("られる", "る", v5, v5),
			si("われる", "う", v5, v5),
		},
	}
}

// causativePassive ports the contracted-form-only "causative-passive"
// transform from transforms.rs (~line 1364): only godan verbs contract
// ～せられる to ～される; ichidan verbs never contract (食べさせられる,
// never *食べさされる), so there is no ichidan rule here.
func causativePassive() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "causative-passive",
		Name:        "causative-passive",
		Description: "causative passive",
		Rules: []lt.RuleDescriptor{
			si("かされる", "く", v5, v5),
			si("がされる", "ぐ", v5, v5),
			si("たされる", "つ", v5, v5),
			si("なされる", "ぬ", v5, v5),
			si("ばされる", "ぶ", v5, v5),
			si("まされる", "む", v5, v5),
			si("らされる", "る", v5, v5),
			si("わされる", "う", v5, v5),
		},
	}
}

// volitional ports a representative subset of the volitional (-(y)ou)
// transform.
func volitional() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "volitional",
		Name:        "volitional",
		Description: "volitional",
		Rules: []lt.RuleDescriptor{
			si("よう", "る", none, v1),
			si("こう", "く", none, v5),
			si("ごう", "ぐ", none, v5),
			si("そう", "す", none, v5),
			si("とう", "つ", none, v5),
			si("のう", "ぬ", none, v5),
			si("ぼう", "ぶ", none, v5),
			si("もう", "む", none, v5),
			si("ろう", "る", none, v5),
			si("おう", "う", none, v5),
			si("しよう", "する", none, vs),
			si("こよう", "くる", none, vk),
		},
	}
}

// conditionalBa ports the -ba transform (suffix_inflection calls under
// transforms.rs's "-ば" section).
func conditionalBa() lt.TransformDescriptor {
	return lt.TransformDescriptor{
		ID:          "-ba",
		Name:        "-ba",
		Description: "conditional (-ba)",
		Rules: []lt.RuleDescriptor{
			si("れば", "る", none, v1),
			si("けば", "く", none, v5),
			si("げば", "ぐ", none, v5),
			si("せば", "す", none, v5),
			si("てば", "つ", none, v5),
			si("ねば", "ぬ", none, v5),
			si("べば", "ぶ", none, v5),
			si("めば", "む", none, v5),
			si("れば", "る", none, v5),
			si("えば", "う", none, v5),
			si("すれば", "する", none, vs),
			si("くれば", "くる", none, vk),
		},
	}
}
