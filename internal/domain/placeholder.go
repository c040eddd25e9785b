package domain

import (
	"fmt"
	"strings"
)

// NormalizeKey canonicalizes a raw placeholder key: trimmed, uppercased,
// runs of whitespace collapsed to a single underscore. Returns "" when
// nothing is left after trimming.
func NormalizeKey(raw string) string {
	fields := strings.Fields(strings.ToUpper(raw))
	return strings.Join(fields, "_")
}

// AddPlaceholder normalizes rawKey and prepends a placeholder with an
// empty value and description. An empty normalized key is a no-op, not
// an error. A key that already exists (uniqueness is checked after
// normalization, so casing and spacing variants collide) fails with
// ErrDuplicateKey.
func (p *Project) AddPlaceholder(rawKey string) (*Placeholder, error) {
	key := NormalizeKey(rawKey)
	if key == "" {
		return nil, nil
	}
	for i := range p.Placeholders {
		if p.Placeholders[i].Key == key {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
	}
	p.Placeholders = append([]Placeholder{{Key: key}}, p.Placeholders...)
	return &p.Placeholders[0], nil
}

// UpdatePlaceholder replaces the value or description of the placeholder
// at index. The key is immutable after creation.
func (p *Project) UpdatePlaceholder(index int, field PlaceholderField, value string) error {
	if index < 0 || index >= len(p.Placeholders) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	switch field {
	case FieldValue:
		p.Placeholders[index].Value = value
	case FieldDescription:
		p.Placeholders[index].Description = value
	default:
		return fmt.Errorf("%w: cannot set %q", ErrImmutableKey, field)
	}
	return nil
}

// RemovePlaceholder removes the placeholder at index. Indices are
// presentation-only; nothing external references them.
func (p *Project) RemovePlaceholder(index int) error {
	if index < 0 || index >= len(p.Placeholders) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	p.Placeholders = append(p.Placeholders[:index], p.Placeholders[index+1:]...)
	return nil
}

// ApplySuggestions merges suggested values into the existing placeholders.
// Every placeholder whose key appears in suggestions gets its value
// replaced; all others are untouched. The merge is pure: it never adds
// or removes keys, so missing suggestions are expected and ignored.
func (p *Project) ApplySuggestions(suggestions map[string]string) int {
	applied := 0
	for i := range p.Placeholders {
		if v, ok := suggestions[p.Placeholders[i].Key]; ok {
			p.Placeholders[i].Value = v
			applied++
		}
	}
	return applied
}

// PlaceholderKeys returns the keys of all placeholders in display order.
func (p *Project) PlaceholderKeys() []string {
	keys := make([]string, len(p.Placeholders))
	for i, ph := range p.Placeholders {
		keys[i] = ph.Key
	}
	return keys
}

// DefaultPlaceholders is the seed set applied to newly created projects.
func DefaultPlaceholders() []Placeholder {
	return []Placeholder{
		{Key: "PROJ_NOM", Value: "", Description: "Nom oficial del projecte"},
		{Key: "PROJ_ADRECA", Value: "", Description: "Ubicació de l'obra"},
		{Key: "CLIENT_NOM", Value: "", Description: "Nom del promotor"},
		{Key: "ARQUITECTE", Value: "", Description: "Equip redactor"},
		{Key: "DATA_PROJECTE", Value: "", Description: "Data de l'edició"},
	}
}
