package normalize

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
)

func TestNewPipelineDefault(t *testing.T) {
	p, err := NewPipeline()
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	if got := p.Names(); !reflect.DeepEqual(got, []string{"canonical"}) {
		t.Errorf("default steps = %v, want [canonical]", got)
	}
	if got := p.Process("ＡＢＣ１２３"); got != "abc0" {
		t.Errorf("Process = %q, want abc0", got)
	}
}

func TestPipelineComposition(t *testing.T) {
	p, err := NewPipeline("neologd", "lower", "number")
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	got := p.Process("南アルプスの　天然水　Ｓｐａｒｋｉｎｇ　Ｌｅｍｏｎ　レモン１絞り")
	want := "南アルプスの天然水sparking lemonレモン0絞り"
	if got != want {
		t.Errorf("Process = %q, want %q", got, want)
	}
}

func TestPipelineMatchesCanonical(t *testing.T) {
	p, err := NewPipeline("unicode", "number", "lower")
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	for _, in := range []string{"ＡＢＣ１２３", "Ⅻ 2024", "ΟΔΟΣ"} {
		if got, want := p.Process(in), Normalize(in); got != want {
			t.Errorf("Process(%q) = %q, Normalize = %q", in, got, want)
		}
	}
}

func TestPipelineUnknownStep(t *testing.T) {
	_, err := NewPipeline("neologd", "stemming")
	if !errors.Is(err, internalerr.ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
	if !strings.Contains(err.Error(), "stemming") {
		t.Errorf("error should name the step: %v", err)
	}
}

func TestPipelineAppend(t *testing.T) {
	p, err := NewPipeline("strip")
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	p.Append("upper", strings.ToUpper)

	if got := p.Process("  abc "); got != "ABC" {
		t.Errorf("Process = %q, want ABC", got)
	}
	if got := p.Names(); !reflect.DeepEqual(got, []string{"strip", "upper"}) {
		t.Errorf("Names = %v", got)
	}
}

func TestStepNames(t *testing.T) {
	names := StepNames()
	for _, want := range []string{"canonical", "neologd", "spaces", "quotes"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("StepNames missing %q", want)
		}
	}
}
