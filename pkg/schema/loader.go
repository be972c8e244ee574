package schema

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/catalog"
	"github.com/goliatone/go-formfields/pkg/model"
)

// Store keeps parsed field descriptors. It is safe for concurrent readers when
// treated as immutable after construction.
type Store struct {
	fields map[string]model.Field
	order  []string
}

type documentFile struct {
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Key               string            `json:"key" yaml:"key"`
	Type              string            `json:"type" yaml:"type"`
	Label             string            `json:"label" yaml:"label"`
	Description       string            `json:"description" yaml:"description"`
	HelpText          string            `json:"helpText" yaml:"helpText"`
	Max               int               `json:"max" yaml:"max"`
	DuplicatesAllowed bool              `json:"duplicatesAllowed" yaml:"duplicatesAllowed"`
	Options           []model.Option    `json:"options" yaml:"options"`
	Choices           []model.Choice    `json:"choices" yaml:"choices"`
	Metadata          map[string]string `json:"metadata" yaml:"metadata"`
}

// LoadFS walks fsys and parses every descriptor document. When fsys is nil or
// holds no documents, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{fields: make(map[string]model.Field)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes a single document. source names the document in errors.
func Parse(data []byte, source string) (*Store, error) {
	store := &Store{fields: make(map[string]model.Field)}
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Field returns the descriptor for key.
func (s *Store) Field(key string) (model.Field, bool) {
	if s == nil {
		return model.Field{}, false
	}
	field, ok := s.fields[strings.TrimSpace(key)]
	return field, ok
}

// Fields returns every descriptor in document order.
func (s *Store) Fields() []model.Field {
	if s == nil {
		return nil
	}
	out := make([]model.Field, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.fields[key])
	}
	return out
}

// Empty reports whether the store holds any fields.
func (s *Store) Empty() bool {
	return s == nil || len(s.fields) == 0
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for idx, raw := range doc.Fields {
		field, err := normaliseField(raw)
		if err != nil {
			return fmt.Errorf("schema: file %s field %d: %w", source, idx, err)
		}
		if _, exists := s.fields[field.Key]; exists {
			return fmt.Errorf("schema: duplicate field %q (file %s)", field.Key, source)
		}
		s.fields[field.Key] = field
		s.order = append(s.order, field.Key)
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("schema: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("schema: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseField(raw fieldFile) (model.Field, error) {
	key := strings.TrimSpace(raw.Key)
	if key == "" {
		return model.Field{}, fmt.Errorf("key is required")
	}
	fieldType := model.ParseFieldType(raw.Type)
	if !fieldType.Valid() {
		return model.Field{}, fmt.Errorf("field %q has unsupported type %q", key, raw.Type)
	}

	field := model.Field{
		Key:               key,
		Type:              fieldType,
		Label:             strings.TrimSpace(raw.Label),
		Description:       strings.TrimSpace(raw.Description),
		HelpText:          strings.TrimSpace(raw.HelpText),
		MaxSelectable:     raw.Max,
		DuplicatesAllowed: raw.DuplicatesAllowed,
		Metadata:          cloneStringMap(raw.Metadata),
	}
	if field.Label == "" {
		field.Label = labelFromKey(key)
	}

	switch fieldType {
	case model.FieldTypeAssociation:
		field.Options = catalog.New(raw.Options).Options()
	default:
		if len(raw.Choices) == 0 {
			return model.Field{}, fmt.Errorf("field %q requires at least one choice", key)
		}
		seen := make(map[string]struct{}, len(raw.Choices))
		for _, c := range raw.Choices {
			if _, dup := seen[c.Value]; dup {
				return model.Field{}, fmt.Errorf("field %q repeats choice %q", key, c.Value)
			}
			seen[c.Value] = struct{}{}
		}
		field.Choices = append([]model.Choice(nil), raw.Choices...)
	}
	return field, nil
}

func labelFromKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for idx, word := range words {
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
