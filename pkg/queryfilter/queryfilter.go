// Package queryfilter provides a small CEL-based query DSL
// (cel.NewEnv + cel.Program over a fixed field schema) for the
// `yomidict dictionaries --filter` CLI command: a boolean CEL
// expression evaluated directly against one DictionarySummary at a
// time.
package queryfilter

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"yomidict/internal/dictentry"
)

// summaryEnvOptions declares every DictionarySummary field a filter
// expression may reference.
var summaryEnvOptions = []cel.EnvOption{
	cel.Variable("title", cel.StringType),
	cel.Variable("revision", cel.StringType),
	cel.Variable("author", cel.StringType),
	cel.Variable("url", cel.StringType),
	cel.Variable("description", cel.StringType),
	cel.Variable("source_language", cel.StringType),
	cel.Variable("target_language", cel.StringType),
	cel.Variable("frequency_mode", cel.StringType),
	cel.Variable("sequenced", cel.BoolType),
	cel.Variable("prefix_wildcards_supported", cel.BoolType),
	cel.Variable("terms", cel.IntType),
	cel.Variable("kanji", cel.IntType),
	cel.Variable("tag_meta", cel.IntType),
	cel.Variable("media", cel.IntType),
}

// Predicate is a compiled CEL boolean expression over DictionarySummary
// fields.
type Predicate struct {
	program cel.Program
	source  string
}

// Compile parses and type-checks a CEL boolean expression. The
// expression is evaluated directly, so arbitrary boolean CEL
// (&&, ||, !, nested comparisons) is allowed.
func Compile(expr string) (*Predicate, error) {
	env, err := cel.NewEnv(summaryEnvOptions...)
	if err != nil {
		return nil, fmt.Errorf("queryfilter: build env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("queryfilter: invalid filter %q: %w", expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("queryfilter: filter %q must evaluate to a bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("queryfilter: build program: %w", err)
	}
	return &Predicate{program: prg, source: expr}, nil
}

// String returns the original filter expression.
func (p *Predicate) String() string { return p.source }

// Match evaluates the predicate against one summary.
func (p *Predicate) Match(s dictentry.DictionarySummary) (bool, error) {
	out, _, err := p.program.Eval(activation(s))
	if err != nil {
		return false, fmt.Errorf("queryfilter: eval %q: %w", p.source, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("queryfilter: filter %q did not evaluate to bool", p.source)
	}
	return matched, nil
}

func activation(s dictentry.DictionarySummary) map[string]any {
	return map[string]any{
		"title":                      s.Title,
		"revision":                   s.Revision,
		"author":                     s.Author,
		"url":                        s.URL,
		"description":                s.Description,
		"source_language":            s.SourceLanguage,
		"target_language":            s.TargetLanguage,
		"frequency_mode":             s.FrequencyMode,
		"sequenced":                  s.Sequenced,
		"prefix_wildcards_supported": s.PrefixWildcardsSupported,
		"terms":                      int64(s.TermCount),
		"kanji":                      int64(s.KanjiCount),
		"tag_meta":                   int64(s.TagMetaCount),
		"media":                      int64(s.MediaCount),
	}
}

// Filter returns the subset of summaries matching expr. An empty expr
// matches every summary without compiling a CEL environment.
func Filter(summaries []dictentry.DictionarySummary, expr string) ([]dictentry.DictionarySummary, error) {
	if expr == "" {
		return summaries, nil
	}
	pred, err := Compile(expr)
	if err != nil {
		return nil, err
	}

	out := make([]dictentry.DictionarySummary, 0, len(summaries))
	for _, s := range summaries {
		matched, err := pred.Match(s)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, s)
		}
	}
	return out, nil
}
