// Package sheetsync keeps a project's external spreadsheet in step with
// its in-memory structure. A plan is computed locally by diffing the
// sheet's existing tabs against the chapter list, then executed against
// the remote store: missing tabs first, full range overwrites second.
package sheetsync

import (
	"fmt"
	"strconv"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/sheets"
)

// Fixed tabs every project spreadsheet carries. CONFIG holds the
// placeholder table, ESTRUCTURA the chapter index.
const (
	TabConfig    = "CONFIG"
	TabStructure = "ESTRUCTURA"
)

// Plan is the computed set of remote operations needed to make the
// external sheet match project state. It is a value object, never
// persisted. Plans only ever create and overwrite: removing a chapter
// locally never produces a tab deletion.
type Plan struct {
	// CreateTabs lists tab titles to add, in chapter order.
	CreateTabs []string

	// Writes is the full row-set per addressed range. Every execution
	// overwrites the whole range with current in-memory state, so the
	// addressed ranges are always derivable from the project alone.
	Writes []sheets.ValueRange
}

// Compute diffs the project against the sheet's existing tab titles.
// Chapters whose resolved tab name collides are rejected with
// domain.ErrDuplicateTabName: two chapters writing the same range would
// silently clobber each other's document list.
func Compute(existingTabs []string, project *domain.Project) (*Plan, error) {
	existing := make(map[string]bool, len(existingTabs))
	for _, t := range existingTabs {
		existing[t] = true
	}

	plan := &Plan{}
	seen := make(map[string]string, len(project.Chapters))
	for i := range project.Chapters {
		ch := &project.Chapters[i]
		tab := ch.ResolveTabName()
		if prev, dup := seen[tab]; dup {
			return nil, fmt.Errorf("%w: chapters %q and %q both resolve to %q",
				domain.ErrDuplicateTabName, prev, ch.Title, tab)
		}
		seen[tab] = ch.Title
		if !existing[tab] {
			plan.CreateTabs = append(plan.CreateTabs, tab)
		}
	}

	plan.Writes = append(plan.Writes, configRange(project), structureRange(project))
	for i := range project.Chapters {
		plan.Writes = append(plan.Writes, chapterRange(&project.Chapters[i]))
	}
	return plan, nil
}

// configRange builds the CONFIG tab content: one header row plus one row
// per placeholder (key, value, description).
func configRange(p *domain.Project) sheets.ValueRange {
	values := [][]string{{"CLAU", "VALOR", "DESCRIPCIO"}}
	for _, ph := range p.Placeholders {
		values = append(values, []string{ph.Key, ph.Value, ph.Description})
	}
	return sheets.ValueRange{Range: TabConfig + "!A1:C", Values: values}
}

// structureRange builds the ESTRUCTURA tab content: one header row plus
// one row per chapter (title, tab name, document count).
func structureRange(p *domain.Project) sheets.ValueRange {
	values := [][]string{{"TITOL", "PESTANYA", "DOCS"}}
	for i := range p.Chapters {
		ch := &p.Chapters[i]
		values = append(values, []string{
			ch.Title,
			ch.ResolveTabName(),
			strconv.Itoa(len(ch.Documents)),
		})
	}
	return sheets.ValueRange{Range: TabStructure + "!A1:C", Values: values}
}

// chapterRange builds one chapter tab's content: header plus one row per
// document (title, drive URL).
func chapterRange(ch *domain.Chapter) sheets.ValueRange {
	values := [][]string{{"NOM DOCUMENT", "URL DRIVE"}}
	for _, d := range ch.Documents {
		values = append(values, []string{d.Title, d.URL})
	}
	return sheets.ValueRange{Range: ch.ResolveTabName() + "!A1:B", Values: values}
}
