package choice

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

// View is the presentation model for radio fields.
type View struct {
	Field    model.Field
	Selected string
	Choices  []Item
}

// Item is a single rendered choice.
type Item struct {
	Choice  model.Choice
	Checked bool
	// Image is the image source for radio_image fields, empty otherwise.
	Image string
}

// BuildView marks the choice equal to the current value as checked. An empty
// or unknown value leaves every choice unchecked.
func BuildView(snap fields.Snapshot) View {
	selected, err := model.ChoiceFrom(snap.Value)
	if err != nil {
		selected = ""
	}
	view := View{
		Field:    snap.Field,
		Selected: selected,
		Choices:  make([]Item, 0, len(snap.Field.Choices)),
	}
	checked := false
	for _, c := range snap.Field.Choices {
		item := Item{Choice: c}
		if !checked && selected != "" && c.Value == selected {
			item.Checked = true
			checked = true
		}
		if snap.Field.Type == model.FieldTypeRadioImage {
			item.Image = imageSource(c)
		}
		view.Choices = append(view.Choices, item)
	}
	return view
}

func imageSource(c model.Choice) string {
	if src := strings.TrimSpace(c.ImageURL); src != "" {
		return src
	}
	return strings.TrimSpace(c.Label)
}
