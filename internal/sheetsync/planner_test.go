package sheetsync

import (
	"testing"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject(t *testing.T) *domain.Project {
	t.Helper()
	p := &domain.Project{Name: "Casa Pere", SheetID: "sheet-1"}
	ch, err := p.AddChapter("01 Memòria")
	require.NoError(t, err)
	_, err = p.AddDocument(ch.ID, "01.01 Objecte", "https://docs.google.com/document/d/1", domain.DocGoogleDoc)
	require.NoError(t, err)
	_, err = p.AddPlaceholder("client nom")
	require.NoError(t, err)
	return p
}

func TestCompute_CreatesOnlyMissingTabs(t *testing.T) {
	p := testProject(t)

	plan, err := Compute([]string{"CONFIG", "ESTRUCTURA"}, p)
	require.NoError(t, err)

	assert.Equal(t, []string{"01_MEMÒRIA"}, plan.CreateTabs)
}

func TestCompute_ExistingChapterTabNotRecreated(t *testing.T) {
	p := testProject(t)

	plan, err := Compute([]string{"CONFIG", "ESTRUCTURA", "01_MEMÒRIA"}, p)
	require.NoError(t, err)

	assert.Empty(t, plan.CreateTabs)
	// Value writes still cover every range: full replace on every sync.
	assert.Len(t, plan.Writes, 3)
}

func TestCompute_WritesAllThreeRangeKinds(t *testing.T) {
	p := testProject(t)

	plan, err := Compute([]string{"CONFIG", "ESTRUCTURA"}, p)
	require.NoError(t, err)

	var ranges []string
	for _, w := range plan.Writes {
		ranges = append(ranges, w.Range)
	}
	assert.Equal(t, []string{"CONFIG!A1:C", "ESTRUCTURA!A1:C", "01_MEMÒRIA!A1:B"}, ranges)
}

func TestCompute_ConfigRows(t *testing.T) {
	p := testProject(t)
	require.NoError(t, p.UpdatePlaceholder(0, domain.FieldValue, "Joan Marc"))
	require.NoError(t, p.UpdatePlaceholder(0, domain.FieldDescription, "Nom del promotor"))

	plan, err := Compute(nil, p)
	require.NoError(t, err)

	config := plan.Writes[0]
	require.Len(t, config.Values, 2)
	assert.Equal(t, []string{"CLAU", "VALOR", "DESCRIPCIO"}, config.Values[0])
	assert.Equal(t, []string{"CLIENT_NOM", "Joan Marc", "Nom del promotor"}, config.Values[1])
}

func TestCompute_StructureRows(t *testing.T) {
	p := testProject(t)

	plan, err := Compute(nil, p)
	require.NoError(t, err)

	structure := plan.Writes[1]
	require.Len(t, structure.Values, 2)
	assert.Equal(t, []string{"TITOL", "PESTANYA", "DOCS"}, structure.Values[0])
	assert.Equal(t, []string{"01 Memòria", "01_MEMÒRIA", "1"}, structure.Values[1])
}

func TestCompute_ChapterRows(t *testing.T) {
	p := testProject(t)

	plan, err := Compute(nil, p)
	require.NoError(t, err)

	chapter := plan.Writes[2]
	require.Len(t, chapter.Values, 2)
	assert.Equal(t, []string{"NOM DOCUMENT", "URL DRIVE"}, chapter.Values[0])
	assert.Equal(t, []string{"01.01 Objecte", "https://docs.google.com/document/d/1"}, chapter.Values[1])
}

func TestCompute_DerivesTabNameWhenUnset(t *testing.T) {
	// Projects loaded from older sheets may carry chapters without a
	// stored tab name.
	p := &domain.Project{
		SheetID:  "sheet-1",
		Chapters: []domain.Chapter{{ID: "c1", Title: "02 annexos"}},
	}

	plan, err := Compute([]string{"CONFIG", "ESTRUCTURA"}, p)
	require.NoError(t, err)
	assert.Equal(t, []string{"02_ANNEXOS"}, plan.CreateTabs)
}

func TestCompute_DuplicateTabNamesRejected(t *testing.T) {
	p := &domain.Project{
		SheetID: "sheet-1",
		Chapters: []domain.Chapter{
			{ID: "c1", Title: "01 Memòria", SheetTabName: "01_MEMÒRIA"},
			{ID: "c2", Title: "01: Memòria", SheetTabName: "01_MEMÒRIA"},
		},
	}

	_, err := Compute(nil, p)
	assert.ErrorIs(t, err, domain.ErrDuplicateTabName)
}

func TestCompute_NeverProducesDeletes(t *testing.T) {
	// A tab for a removed chapter stays on the sheet: the plan has no
	// delete operation at all, only creates and overwrites.
	p := testProject(t)
	p.RemoveChapter(p.Chapters[0].ID)

	plan, err := Compute([]string{"CONFIG", "ESTRUCTURA", "01_MEMÒRIA"}, p)
	require.NoError(t, err)

	assert.Empty(t, plan.CreateTabs)
	var ranges []string
	for _, w := range plan.Writes {
		ranges = append(ranges, w.Range)
	}
	assert.Equal(t, []string{"CONFIG!A1:C", "ESTRUCTURA!A1:C"}, ranges,
		"the orphaned chapter tab must not be touched")
}

func TestCompute_Idempotent(t *testing.T) {
	p := testProject(t)
	first, err := Compute([]string{"CONFIG", "ESTRUCTURA"}, p)
	require.NoError(t, err)
	second, err := Compute([]string{"CONFIG", "ESTRUCTURA"}, p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
