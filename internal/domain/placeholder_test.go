package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"client nom", "CLIENT_NOM"},
		{"  Client   Nom  ", "CLIENT_NOM"},
		{"CLIENT_NOM", "CLIENT_NOM"},
		{"data\tprojecte", "DATA_PROJECTE"},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeKey(tc.raw), "raw %q", tc.raw)
	}
}

func TestAddPlaceholder_NormalizesAndPrepends(t *testing.T) {
	p := &Project{Placeholders: []Placeholder{{Key: "EXISTING"}}}

	ph, err := p.AddPlaceholder("client nom")
	require.NoError(t, err)
	require.NotNil(t, ph)
	assert.Equal(t, "CLIENT_NOM", ph.Key)
	assert.Empty(t, ph.Value)
	assert.Empty(t, ph.Description)

	// New keys go to the front of the list.
	assert.Equal(t, "CLIENT_NOM", p.Placeholders[0].Key)
	assert.Equal(t, "EXISTING", p.Placeholders[1].Key)
}

func TestAddPlaceholder_DuplicateRejected(t *testing.T) {
	p := &Project{}
	_, err := p.AddPlaceholder("client nom")
	require.NoError(t, err)

	_, err = p.AddPlaceholder("client nom")
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestAddPlaceholder_DuplicateAcrossCasingAndSpacing(t *testing.T) {
	p := &Project{}
	_, err := p.AddPlaceholder("Client Nom")
	require.NoError(t, err)

	_, err = p.AddPlaceholder("CLIENT_NOM")
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Len(t, p.Placeholders, 1)
}

func TestAddPlaceholder_EmptyKeyIsNoOp(t *testing.T) {
	p := &Project{}
	ph, err := p.AddPlaceholder("   ")
	assert.NoError(t, err)
	assert.Nil(t, ph)
	assert.Empty(t, p.Placeholders)
}

func TestUpdatePlaceholder_ValueAndDescription(t *testing.T) {
	p := &Project{Placeholders: []Placeholder{{Key: "A"}, {Key: "B"}}}

	require.NoError(t, p.UpdatePlaceholder(0, FieldValue, "x"))
	require.NoError(t, p.UpdatePlaceholder(1, FieldDescription, "notes"))

	assert.Equal(t, "x", p.Placeholders[0].Value)
	assert.Equal(t, "notes", p.Placeholders[1].Description)
}

func TestUpdatePlaceholder_KeyImmutable(t *testing.T) {
	p := &Project{Placeholders: []Placeholder{{Key: "A"}}}
	err := p.UpdatePlaceholder(0, PlaceholderField("key"), "B")
	assert.ErrorIs(t, err, ErrImmutableKey)
	assert.Equal(t, "A", p.Placeholders[0].Key)
}

func TestUpdatePlaceholder_IndexOutOfRange(t *testing.T) {
	p := &Project{}
	assert.ErrorIs(t, p.UpdatePlaceholder(0, FieldValue, "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, p.UpdatePlaceholder(-1, FieldValue, "x"), ErrIndexOutOfRange)
}

func TestRemovePlaceholder(t *testing.T) {
	p := &Project{Placeholders: []Placeholder{{Key: "A"}, {Key: "B"}, {Key: "C"}}}
	require.NoError(t, p.RemovePlaceholder(1))
	assert.Equal(t, []string{"A", "C"}, p.PlaceholderKeys())

	assert.ErrorIs(t, p.RemovePlaceholder(5), ErrIndexOutOfRange)
}

func TestApplySuggestions_PureMerge(t *testing.T) {
	p := &Project{Placeholders: []Placeholder{
		{Key: "A", Value: ""},
		{Key: "B", Value: ""},
	}}

	applied := p.ApplySuggestions(map[string]string{"A": "x"})

	assert.Equal(t, 1, applied)
	assert.Equal(t, "x", p.Placeholders[0].Value)
	assert.Equal(t, "", p.Placeholders[1].Value, "B must be untouched")
	assert.Len(t, p.Placeholders, 2, "merge must never add keys")
}

func TestApplySuggestions_UnknownKeysIgnored(t *testing.T) {
	p := &Project{Placeholders: []Placeholder{{Key: "A", Value: "old"}}}

	applied := p.ApplySuggestions(map[string]string{"Z": "ignored"})

	assert.Equal(t, 0, applied)
	assert.Equal(t, "old", p.Placeholders[0].Value)
	assert.Len(t, p.Placeholders, 1)
}

func TestDefaultPlaceholders_NormalizedKeys(t *testing.T) {
	for _, ph := range DefaultPlaceholders() {
		assert.Equal(t, NormalizeKey(ph.Key), ph.Key)
	}
}
