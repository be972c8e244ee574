package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestSurveySelectReturnsPickedIndex(t *testing.T) {
	var asked *survey.Select
	driver := &surveyDriver{
		out: &bytes.Buffer{},
		ask: func(prompt survey.Prompt, response any, _ ...survey.AskOpt) error {
			asked = prompt.(*survey.Select)
			idx, ok := response.(*int)
			if !ok {
				t.Fatalf("expected *int response, got %T", response)
			}
			*idx = 1
			return nil
		},
	}

	idx, err := driver.Select(context.Background(), SelectConfig{
		Message:      "showing 2 of 2 results",
		Options:      []string{"Hello (post)", "Hello (post)", backLabel},
		DefaultIndex: 1,
		PageSize:     5,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected second of two identical labels, got index %d", idx)
	}
	if asked.Default != 1 || asked.PageSize != 5 {
		t.Fatalf("unexpected prompt default %v page size %d", asked.Default, asked.PageSize)
	}
}

func TestSurveySelectWithoutDefault(t *testing.T) {
	driver := &surveyDriver{
		out: &bytes.Buffer{},
		ask: func(prompt survey.Prompt, _ any, _ ...survey.AskOpt) error {
			if prompt.(*survey.Select).Default != nil {
				t.Fatalf("expected no default")
			}
			return terminal.InterruptErr
		},
	}

	_, err := driver.Select(context.Background(), SelectConfig{Options: []string{"a"}, DefaultIndex: -1})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, err := driver.Select(context.Background(), SelectConfig{}); err == nil {
		t.Fatal("expected error without options")
	}
}

func TestSurveyInfo(t *testing.T) {
	var out bytes.Buffer
	driver := &surveyDriver{out: &out}
	if err := driver.Info(context.Background(), "No results"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if out.String() != "No results\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
