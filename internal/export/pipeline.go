package export

import (
	"context"
	"errors"
	"time"
)

// ErrNothingSelected indicates a compile was attempted with an empty
// selection.
var ErrNothingSelected = errors.New("no documents selected for export")

// Steps is the fixed compile sequence. The steps run strictly in order,
// one visible status label at a time; progress is completed/total. The
// work itself is simulated for now — a real implementation would replace
// each step body but must keep this sequencing contract.
var Steps = []string{
	"Substituint claus {{...}} en Google Docs",
	"Calculant numeració de pàgines i capítols",
	"Sincronitzant taules des de Google Sheets",
	"Generant índex general del projecte",
	"Fusionant capítols en PDF final",
	"Comprimint memòria per a lliurament",
}

// Progress reports the pipeline state after each step completes.
type Progress struct {
	StepIndex int // 0-based index of the step that just finished
	Total     int
	Label     string  // label of the step that just finished
	Fraction  float64 // completed / total
}

// Pipeline runs the staged compilation.
type Pipeline struct {
	// StepDelay is how long each simulated step takes. Tests set this
	// to zero.
	StepDelay time.Duration
}

// NewPipeline creates a Pipeline with the production step delay.
func NewPipeline() *Pipeline {
	return &Pipeline{StepDelay: 1200 * time.Millisecond}
}

// Run executes every step in order, invoking onProgress after each one.
// It fails fast on context cancellation between steps and refuses to
// start with an empty selection.
func (pl *Pipeline) Run(ctx context.Context, sel *Selection, onProgress func(Progress)) error {
	if sel == nil || sel.SelectedCount() == 0 {
		return ErrNothingSelected
	}

	total := len(Steps)
	for i, label := range Steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pl.StepDelay):
		}
		if onProgress != nil {
			onProgress(Progress{
				StepIndex: i,
				Total:     total,
				Label:     label,
				Fraction:  float64(i+1) / float64(total),
			})
		}
	}
	return nil
}
