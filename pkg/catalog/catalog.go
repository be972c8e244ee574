package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/goliatone/go-formfields/pkg/model"
)

const (
	// DefaultFuzzyDistance is the maximum edit distance accepted by the fuzzy
	// fallback when no substring match exists.
	DefaultFuzzyDistance = 2
	minFuzzyTermLength   = 3
)

// Catalog holds the full browsable option set in a fixed order.
type Catalog struct {
	options       []model.Option
	fuzzyDistance int
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithFuzzyDistance overrides the fuzzy fallback distance. Zero or negative
// disables the fallback.
func WithFuzzyDistance(distance int) Option {
	return func(c *Catalog) {
		c.fuzzyDistance = distance
	}
}

// New copies options into a catalogue. Options without an ID receive a stable
// one derived from their type, subtype and title.
func New(options []model.Option, opts ...Option) *Catalog {
	c := &Catalog{
		options:       model.CloneOptions(options),
		fuzzyDistance: DefaultFuzzyDistance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	for idx := range c.options {
		if strings.TrimSpace(c.options[idx].ID) == "" {
			c.options[idx].ID = StableID(c.options[idx])
		}
		c.options[idx].Selected = false
	}
	return c
}

// StableID derives a deterministic identifier for an option that lacks one.
func StableID(option model.Option) string {
	name := strings.Join([]string{option.Type, option.Subtype, option.Title}, "/")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// Len reports the catalogue size.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.options)
}

// Options returns a copy of every option.
func (c *Catalog) Options() []model.Option {
	if c == nil {
		return nil
	}
	return model.CloneOptions(c.options)
}

// Lookup returns the option with the given key.
func (c *Catalog) Lookup(key string) (model.Option, bool) {
	if c == nil {
		return model.Option{}, false
	}
	for _, option := range c.options {
		if option.Key() == key {
			return option.Clone(), true
		}
	}
	return model.Option{}, false
}

// Search returns options whose title or type contains term, case
// insensitively, in catalogue order. When nothing matches and the term is long
// enough, options with a title word within the fuzzy distance are returned
// instead. An empty term matches everything. A positive limit caps the result.
func (c *Catalog) Search(term string, limit int) []model.Option {
	if c == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(term))

	var matches []model.Option
	for _, option := range c.options {
		if needle == "" || containsFold(option, needle) {
			matches = append(matches, option.Clone())
			if limit > 0 && len(matches) >= limit {
				return matches
			}
		}
	}
	if len(matches) > 0 || needle == "" {
		return matches
	}
	if c.fuzzyDistance <= 0 || len([]rune(needle)) < minFuzzyTermLength {
		return nil
	}

	for _, option := range c.options {
		if fuzzyMatch(option.Title, needle, c.fuzzyDistance) {
			matches = append(matches, option.Clone())
			if limit > 0 && len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

func containsFold(option model.Option, needle string) bool {
	return strings.Contains(strings.ToLower(option.Title), needle) ||
		strings.Contains(strings.ToLower(option.Type), needle) ||
		strings.Contains(strings.ToLower(option.Subtype), needle)
}

func fuzzyMatch(title, needle string, distance int) bool {
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if levenshtein.ComputeDistance(word, needle) <= distance {
			return true
		}
	}
	return false
}
