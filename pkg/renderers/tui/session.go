package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfields/pkg/association"
	"github.com/goliatone/go-formfields/pkg/choice"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

const (
	actionAdd = iota
	actionRemove
	actionSearch
	actionDone
)

var actionLabels = []string{"Add an item", "Remove an item", "Search", "Done"}

const backLabel = "« Back"

// Session edits a single field interactively. It drives the same controls
// the HTML renderers use, so every change flows through the data source.
type Session struct {
	driver       PromptDriver
	outputFormat OutputFormat
	pageSize     int
	theme        Theme
}

// NewSession constructs a session with defaults (survey driver, JSON output).
func NewSession(options ...Option) *Session {
	s := &Session{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		pageSize:     10,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Name reports the renderer identifier.
func (s *Session) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (s *Session) ContentType() string {
	if s.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Run prompts until the user is done with the field. Association fields loop
// over add, remove and search actions; radio fields ask once.
func (s *Session) Run(ctx context.Context, source fields.DataSource) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}
	if source == nil {
		return errors.New("tui: data source is required")
	}

	field := source.Snapshot().Field
	switch field.Type {
	case model.FieldTypeAssociation:
		return s.runAssociation(ctx, source)
	case model.FieldTypeRadio, model.FieldTypeRadioImage:
		return s.runChoice(ctx, source)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedField, field.Type)
	}
}

// Render runs the session and serializes the final field value.
func (s *Session) Render(ctx context.Context, source fields.DataSource) ([]byte, error) {
	if err := s.Run(ctx, source); err != nil {
		return nil, err
	}
	return s.serialize(source.Snapshot())
}

func (s *Session) runAssociation(ctx context.Context, source fields.DataSource) error {
	control, err := association.New(source)
	if err != nil {
		return err
	}

	for {
		view := association.BuildView(source.Snapshot())
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      associationHeader(view),
			Options:      actionLabels,
			DefaultIndex: -1,
			Help:         view.Field.HelpText,
		})
		if err != nil {
			return err
		}

		switch idx {
		case actionAdd:
			if err := s.promptAdd(ctx, control, view); err != nil {
				return err
			}
		case actionRemove:
			if err := s.promptRemove(ctx, control, view); err != nil {
				return err
			}
		case actionSearch:
			term, err := s.driver.Input(ctx, InputConfig{
				Message: "Search",
				Default: view.QueryTerm,
			})
			if err != nil {
				return err
			}
			control.SetQueryTerm(strings.TrimSpace(term))
		case actionDone:
			return nil
		default:
			s.info(ctx, "Invalid selection")
		}
	}
}

func (s *Session) promptAdd(ctx context.Context, control *association.Control, view association.View) error {
	if len(view.Catalog) == 0 {
		s.info(ctx, "No results")
		return nil
	}

	labels := make([]string, 0, len(view.Catalog)+1)
	for _, entry := range view.Catalog {
		label := optionLabel(entry.Option)
		if entry.Selected {
			label += " ✓"
		}
		labels = append(labels, label)
	}
	labels = append(labels, backLabel)

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      fmt.Sprintf("showing %d of %d results", view.Counter.Visible, view.Counter.Total),
		Options:      labels,
		DefaultIndex: -1,
		PageSize:     s.pageSize,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(view.Catalog) {
		return nil
	}

	outcome, err := control.Add(view.Catalog[idx].Option)
	if err != nil {
		return err
	}
	s.report(ctx, outcome, view.Field)
	return nil
}

func (s *Session) promptRemove(ctx context.Context, control *association.Control, view association.View) error {
	if len(view.Selection) == 0 {
		s.info(ctx, "Nothing selected")
		return nil
	}

	labels := make([]string, 0, len(view.Selection)+1)
	for _, entry := range view.Selection {
		labels = append(labels, fmt.Sprintf("%d. %s", entry.Index+1, optionLabel(entry.Option)))
	}
	labels = append(labels, backLabel)

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Remove",
		Options:      labels,
		DefaultIndex: -1,
		PageSize:     s.pageSize,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(view.Selection) {
		return nil
	}

	outcome, err := control.RemoveAt(view.Selection[idx].Index)
	if err != nil {
		return err
	}
	s.report(ctx, outcome, view.Field)
	return nil
}

func (s *Session) runChoice(ctx context.Context, source fields.DataSource) error {
	adapter, err := choice.New(source)
	if err != nil {
		return err
	}

	view := choice.BuildView(source.Snapshot())
	if len(view.Choices) == 0 {
		s.info(ctx, fmt.Sprintf("%s has no choices", displayLabel(view.Field)))
		return nil
	}

	labels := make([]string, len(view.Choices))
	defaultIdx := -1
	for i, item := range view.Choices {
		labels[i] = choiceLabel(item)
		if item.Checked {
			defaultIdx = i
		}
	}

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(view.Field),
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         view.Field.HelpText,
			PageSize:     s.pageSize,
		})
		if err != nil {
			return err
		}
		if err := adapter.SelectIndex(idx); err != nil {
			s.info(ctx, fmt.Sprintf("Invalid %s selection", view.Field.Key))
			continue
		}
		return nil
	}
}

func (s *Session) report(ctx context.Context, outcome association.Outcome, field model.Field) {
	switch outcome {
	case association.Accepted:
		return
	case association.RejectedDuplicate:
		s.warn(ctx, "That item is already selected")
	case association.RejectedMaxReached:
		s.warn(ctx, fmt.Sprintf("Maximum number of items reached (%d)", field.MaxSelectable))
	default:
		s.warn(ctx, outcome.Err().Error())
	}
}

func (s *Session) info(ctx context.Context, msg string) {
	_ = s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) warn(ctx context.Context, msg string) {
	_ = s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
}

func (s *Session) serialize(snap fields.Snapshot) ([]byte, error) {
	if s.outputFormat == OutputFormatPrettyText {
		return []byte(prettyValue(snap)), nil
	}
	out, err := json.Marshal(map[string]any{snap.Field.Key: jsonValue(snap)})
	if err != nil {
		return nil, fmt.Errorf("tui: encode value: %w", err)
	}
	return out, nil
}

func jsonValue(snap fields.Snapshot) any {
	if snap.Field.Type == model.FieldTypeAssociation {
		selection, err := model.SelectionFrom(snap.Value)
		if err != nil || selection == nil {
			return model.Selection{}
		}
		return selection
	}
	value, err := model.ChoiceFrom(snap.Value)
	if err != nil {
		return ""
	}
	return value
}

func prettyValue(snap fields.Snapshot) string {
	var b strings.Builder
	b.WriteString(displayLabel(snap.Field))
	b.WriteString(":")
	switch value := jsonValue(snap).(type) {
	case model.Selection:
		if len(value) == 0 {
			b.WriteString(" (none)\n")
			return b.String()
		}
		b.WriteString("\n")
		for i, option := range value {
			fmt.Fprintf(&b, "  %d. %s [%s]\n", i+1, optionLabel(option), option.Key())
		}
	case string:
		if value == "" {
			value = "(none)"
		}
		b.WriteString(" " + value + "\n")
	}
	return b.String()
}

func associationHeader(view association.View) string {
	header := fmt.Sprintf("%s (%d selected", displayLabel(view.Field), len(view.Selection))
	if view.Field.Bounded() {
		header += fmt.Sprintf(" of %d", view.Field.MaxSelectable)
	}
	header += ")"
	if view.QueryTerm != "" {
		header += fmt.Sprintf(" search: %q", view.QueryTerm)
	}
	return header
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Key
}

func optionLabel(option model.Option) string {
	title := plainText(option.Title)
	if title == "" {
		title = option.Key()
	}
	kind := option.Subtype
	if kind == "" {
		kind = option.Type
	}
	if kind == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, kind)
}

func choiceLabel(item choice.Item) string {
	if item.Image != "" {
		return fmt.Sprintf("%s [%s]", item.Choice.Value, item.Image)
	}
	if item.Choice.Label != "" {
		return item.Choice.Label
	}
	return item.Choice.Value
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// plainText drops markup from host titles for terminal display.
func plainText(raw string) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(raw)))
}
