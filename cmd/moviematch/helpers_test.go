package main

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrompterIntInRangeReprompts(t *testing.T) {
	var out strings.Builder
	p := newPrompter(strings.NewReader("abc\n9\n2\n"), &out)

	value, err := p.intInRange("Select: ", 1, 5)
	if err != nil {
		t.Fatalf("intInRange failed: %v", err)
	}
	if value != 2 {
		t.Errorf("expected 2 after re-prompts, got %d", value)
	}
	if !strings.Contains(out.String(), "between 1 and 5") {
		t.Errorf("invalid input should explain the range: %q", out.String())
	}
}

func TestPrompterNonEmptyLineReprompts(t *testing.T) {
	var out strings.Builder
	p := newPrompter(strings.NewReader("\n   \nThe Title\n"), &out)

	value, err := p.nonEmptyLine("Title: ")
	if err != nil {
		t.Fatalf("nonEmptyLine failed: %v", err)
	}
	if value != "The Title" {
		t.Errorf("expected trimmed answer, got %q", value)
	}
}

func TestPrompterYesNo(t *testing.T) {
	var out strings.Builder
	p := newPrompter(strings.NewReader("maybe\nYES\n"), &out)

	answer, err := p.yesNo("Continue?")
	if err != nil {
		t.Fatalf("yesNo failed: %v", err)
	}
	if !answer {
		t.Error("expected yes")
	}
}

func TestPrompterEOF(t *testing.T) {
	p := newPrompter(strings.NewReader(""), io.Discard)
	if _, err := p.line("anything: "); !errors.Is(err, io.EOF) {
		t.Errorf("exhausted input should report EOF, got %v", err)
	}
}
