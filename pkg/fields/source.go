package fields

import "github.com/goliatone/go-formfields/pkg/model"

// Snapshot is the render-time view a host supplies for a single field. Value
// holds a model.Selection for association fields and a string for single
// choice fields.
type Snapshot struct {
	Field             model.Field
	Value             any
	Options           []model.Option
	TotalOptionsCount int
	QueryTerm         string
}

// DataSource owns field state on behalf of the controls. Controls never keep
// state of their own; they read a fresh snapshot per interaction and report
// changes back through OnChange.
type DataSource interface {
	Snapshot() Snapshot
	OnChange(key string, value any)
	OnQueryTermChange(term string)
}

// ChangeFunc mirrors DataSource.OnChange.
type ChangeFunc func(key string, value any)

// QueryTermFunc mirrors DataSource.OnQueryTermChange.
type QueryTermFunc func(term string)

// Props is what renderers receive. The snapshot fields are forwarded as-is.
type Props struct {
	Field                 model.Field
	Value                 any
	Options               []model.Option
	TotalOptionsCount     int
	QueryTerm             string
	HandleChange          ChangeFunc
	HandleQueryTermChange QueryTermFunc
}

// PropsFrom builds renderer props from a data source.
func PropsFrom(source DataSource) Props {
	snap := source.Snapshot()
	return Props{
		Field:                 snap.Field,
		Value:                 snap.Value,
		Options:               snap.Options,
		TotalOptionsCount:     snap.TotalOptionsCount,
		QueryTerm:             snap.QueryTerm,
		HandleChange:          source.OnChange,
		HandleQueryTermChange: source.OnQueryTermChange,
	}
}

// Snapshot returns the data portion of the props.
func (p Props) Snapshot() Snapshot {
	return Snapshot{
		Field:             p.Field,
		Value:             p.Value,
		Options:           p.Options,
		TotalOptionsCount: p.TotalOptionsCount,
		QueryTerm:         p.QueryTerm,
	}
}

// Source adapts props back into a DataSource so controls can be driven from
// inside a renderer. Missing handlers become no-ops.
func (p Props) Source() DataSource {
	return propsSource{props: p}
}

type propsSource struct {
	props Props
}

func (s propsSource) Snapshot() Snapshot {
	return s.props.Snapshot()
}

func (s propsSource) OnChange(key string, value any) {
	if s.props.HandleChange != nil {
		s.props.HandleChange(key, value)
	}
}

func (s propsSource) OnQueryTermChange(term string) {
	if s.props.HandleQueryTermChange != nil {
		s.props.HandleQueryTermChange(term)
	}
}
