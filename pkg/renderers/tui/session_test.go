package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/catalog"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	selectErr    error
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectErr != nil {
		return -1, s.selectErr
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func associationSource(max int) *catalog.Source {
	field := testsupport.AssociationField(max, false)
	field.Options = testsupport.Posts(3)
	return catalog.NewSource(field, nil, nil)
}

func selectionKeys(t *testing.T, value any) []string {
	t.Helper()
	selection, err := model.SelectionFrom(value)
	if err != nil {
		t.Fatalf("SelectionFrom: %v", err)
	}
	return selection.Keys()
}

func TestRunAssociationAddSearchRemove(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{
			actionAdd, 0, // Post 1
			actionAdd, 0, // Post 1 again, rejected
			actionSearch,
			actionAdd, 0, // Post 2, the only match for "2"
			actionRemove, 0, // drop Post 1
			actionDone,
		},
		inputs: []string{"2"},
	}
	source := associationSource(0)

	if err := NewSession(WithPromptDriver(driver)).Run(context.Background(), source); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"post:post:2"}, selectionKeys(t, source.Value())); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if got := len(source.Changes()); got != 3 {
		t.Fatalf("expected 3 changes, got %d", got)
	}
	if diff := cmp.Diff([]string{"That item is already selected"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	// The search prompt narrowed the catalogue before the third add.
	addAfterSearch := driver.selects[6]
	if diff := cmp.Diff([]string{"Post 2 (post)", backLabel}, addAfterSearch.Options); diff != "" {
		t.Fatalf("search results mismatch (-want +got):\n%s", diff)
	}
	if addAfterSearch.Message != "showing 1 of 3 results" {
		t.Fatalf("unexpected counter %q", addAfterSearch.Message)
	}
}

func TestRunAssociationSameTitledOptions(t *testing.T) {
	field := testsupport.AssociationField(0, false)
	first, second := testsupport.Post("1"), testsupport.Post("2")
	first.Title, second.Title = "Hello", "Hello"
	field.Options = []model.Option{first, second}
	source := catalog.NewSource(field, nil, nil)

	driver := &stubDriver{selectIdx: []int{actionAdd, 1, actionAdd, 0, actionDone}}
	if err := NewSession(WithPromptDriver(driver)).Run(context.Background(), source); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"post:post:2", "post:post:1"}, selectionKeys(t, source.Value())); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("expected no rejection, got %v", driver.infoMessages)
	}
	if diff := cmp.Diff([]string{"Hello (post)", "Hello (post)", backLabel}, driver.selects[1].Options); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAssociationMaxReached(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{actionAdd, 0, actionAdd, 1, actionDone},
	}
	source := associationSource(1)

	if err := NewSession(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "})).Run(context.Background(), source); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"post:post:1"}, selectionKeys(t, source.Value())); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"! Maximum number of items reached (1)"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if got := driver.selects[2].Message; got != "Related posts (1 selected of 1)" {
		t.Fatalf("unexpected header %q", got)
	}
}

func TestRunAssociationBackAndEmptyRemove(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{actionRemove, actionAdd, 3, actionDone},
	}
	source := associationSource(0)

	if err := NewSession(WithPromptDriver(driver)).Run(context.Background(), source); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(source.Changes()) != 0 {
		t.Fatalf("expected no changes, got %v", source.Changes())
	}
	if diff := cmp.Diff([]string{"Nothing selected"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRunChoice(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1}}
	source := testsupport.NewSource(fields.Snapshot{Field: testsupport.RadioField(), Value: "x"})

	if err := NewSession(WithPromptDriver(driver)).Run(context.Background(), source); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []testsupport.Change{{Key: "layout", Value: "y"}}
	if diff := cmp.Diff(want, source.Changes()); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
	if got := driver.selects[0].DefaultIndex; got != 0 {
		t.Fatalf("expected current value as default, got index %d", got)
	}
	if diff := cmp.Diff([]string{"X", "Y"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestRunChoiceReselectEmits(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0}}
	source := testsupport.NewSource(fields.Snapshot{Field: testsupport.RadioField(), Value: "x"})

	if err := NewSession(WithPromptDriver(driver)).Run(context.Background(), source); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(source.Changes()); got != 1 {
		t.Fatalf("expected re-selection to emit once, got %d", got)
	}
}

func TestRunAborted(t *testing.T) {
	driver := &stubDriver{selectErr: ErrAborted}
	source := associationSource(0)

	err := NewSession(WithPromptDriver(driver)).Run(context.Background(), source)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRunUnsupportedField(t *testing.T) {
	source := testsupport.NewSource(fields.Snapshot{Field: model.Field{Key: "title", Type: "text"}})

	err := NewSession(WithPromptDriver(&stubDriver{})).Run(context.Background(), source)
	if !errors.Is(err, ErrUnsupportedField) {
		t.Fatalf("expected ErrUnsupportedField, got %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSession(WithPromptDriver(&stubDriver{})).Run(ctx, associationSource(0))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderOutputFormats(t *testing.T) {
	source := testsupport.NewSource(fields.Snapshot{Field: testsupport.RadioField()})
	out, err := NewSession(WithPromptDriver(&stubDriver{selectIdx: []int{1}})).Render(context.Background(), source)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != `{"layout":"y"}` {
		t.Fatalf("unexpected json %s", out)
	}

	assoc := associationSource(0)
	session := NewSession(
		WithPromptDriver(&stubDriver{selectIdx: []int{actionAdd, 2, actionDone}}),
		WithOutputFormat(OutputFormatPrettyText),
	)
	out, err = session.Render(context.Background(), assoc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "1. Post 3 (post) [post:post:3]") {
		t.Fatalf("unexpected pretty output %q", out)
	}
	if session.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", session.ContentType())
	}
}

func TestPlainText(t *testing.T) {
	if got := plainText("<em>Tom</em> &amp; <b>Jerry</b>"); got != "Tom & Jerry" {
		t.Fatalf("unexpected plain text %q", got)
	}
}
