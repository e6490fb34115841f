package normalize

import (
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
)

// Step is a single string transform.
type Step func(string) string

// namedStep pairs a Step with the name it was registered under.
type namedStep struct {
	name string
	fn   Step
}

// steps are the transforms a Pipeline can be built from by name.
var steps = map[string]Step{
	"unicode":   NormalizeUnicode,
	"nfc":       func(s string) string { return NormalizeUnicodeForm(s, norm.NFC) },
	"nfd":       func(s string) string { return NormalizeUnicodeForm(s, norm.NFD) },
	"nfkd":      func(s string) string { return NormalizeUnicodeForm(s, norm.NFKD) },
	"number":    NormalizeNumber,
	"lower":     LowerText,
	"canonical": Normalize,
	"neologd":   NormalizeNeologd,
	"spaces":    RemoveExtraSpaces,
	"strip":     Strip,
	"hyphens":   UnifyHyphens,
	"choonpu":   UnifyChoonpu,
	"tildes":    RemoveTildes,
	"widen":     WidenSymbols,
	"quotes":    NarrowQuotes,
}

// StepNames lists the registered step names in sorted order.
func StepNames() []string {
	names := make([]string, 0, len(steps))
	for name := range steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pipeline orchestrates an ordered list of steps:
// text → step 1 → step 2 → ... → result
type Pipeline struct {
	steps []namedStep
}

// NewPipeline builds a pipeline from registered step names.
// An empty name list yields the canonical pipeline.
func NewPipeline(names ...string) (*Pipeline, error) {
	if len(names) == 0 {
		names = []string{"canonical"}
	}
	p := &Pipeline{steps: make([]namedStep, 0, len(names))}
	for _, name := range names {
		fn, ok := steps[name]
		if !ok {
			return nil, fmt.Errorf("pipeline step %q: %w", name, internalerr.ErrUnknownStep)
		}
		p.steps = append(p.steps, namedStep{name: name, fn: fn})
	}
	return p, nil
}

// Append adds a custom step at the end of the pipeline.
func (p *Pipeline) Append(name string, fn Step) *Pipeline {
	p.steps = append(p.steps, namedStep{name: name, fn: fn})
	return p
}

// Names returns the step names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.name
	}
	return names
}

// Process runs text through every step in order.
func (p *Pipeline) Process(text string) string {
	for _, s := range p.steps {
		text = s.fn(text)
	}
	return text
}
