package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/sheetsync"
)

// FormatProjectList renders the catalog as an aligned listing.
func FormatProjectList(projects []*domain.Project) string {
	var b strings.Builder
	b.WriteString(Header("Projectes") + "\n")

	for _, p := range projects {
		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format("2006-01-02")
		}
		line := fmt.Sprintf("  %s  %-28s %s",
			StyleGreen.Render(p.DisplayID()),
			truncate(p.Name, 28),
			Dim(created),
		)
		if p.IsTemplate {
			line += "  " + TemplateBadge(true)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// FormatProjectDetail renders an opened project: sheet link, placeholder
// table and chapter structure.
func FormatProjectDetail(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name))
	if p.IsTemplate {
		b.WriteString("  " + TemplateBadge(true))
	}
	b.WriteString("\n")
	if url := p.SheetURL(); url != "" {
		b.WriteString(Dim(url) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(Header("Dades del projecte") + "\n")
	if len(p.Placeholders) == 0 {
		b.WriteString("  " + Dim("Cap clau definida.") + "\n")
	}
	for _, ph := range p.Placeholders {
		value := ph.Value
		if value == "" {
			value = Dim("(buit)")
		}
		b.WriteString(fmt.Sprintf("  %-22s %s\n", StyleBlue.Render(ph.Key), value))
	}
	b.WriteString("\n")

	b.WriteString(Header("Capítols") + "\n")
	if len(p.Chapters) == 0 {
		b.WriteString("  " + Dim("Cap capítol encara.") + "\n")
	}
	for i := range p.Chapters {
		ch := &p.Chapters[i]
		b.WriteString(fmt.Sprintf("  %s %-32s %s %s\n",
			StyleGreen.Render("▪"),
			truncate(ch.Title, 32),
			Dim(ch.ResolveTabName()),
			Dim(fmt.Sprintf("(%d docs)", len(ch.Documents))),
		))
		for _, d := range ch.Documents {
			b.WriteString(fmt.Sprintf("      %s %s %s\n",
				Dim("·"), truncate(d.Title, 40), StylePurple.Render(string(d.Type))))
		}
	}

	return b.String()
}

// FormatSyncResult summarises an executed sync plan.
func FormatSyncResult(name string, plan *sheetsync.Plan, took time.Duration) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✓") + " " + Bold(name) + " sincronitzat")
	b.WriteString(Dim(fmt.Sprintf(" (%.1fs)", took.Seconds())) + "\n")

	if len(plan.CreateTabs) > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			Dim("pestanyes noves:"), strings.Join(plan.CreateTabs, ", ")))
	}
	b.WriteString(fmt.Sprintf("  %s %d\n", Dim("rangs escrits:"), len(plan.Writes)))
	return b.String()
}

// FormatPlaceholders renders the placeholder table with display indices,
// the way the editor shows them.
func FormatPlaceholders(placeholders []domain.Placeholder) string {
	var b strings.Builder
	b.WriteString(Header("Claus de substitució") + "\n")
	if len(placeholders) == 0 {
		b.WriteString("  " + Dim("Cap clau definida.") + "\n")
		return b.String()
	}
	for i, ph := range placeholders {
		value := ph.Value
		if value == "" {
			value = Dim("(buit)")
		}
		b.WriteString(fmt.Sprintf("  %s %-22s %-24s %s\n",
			Dim(fmt.Sprintf("%2d", i+1)),
			StyleBlue.Render("{{"+ph.Key+"}}"),
			value,
			Dim(ph.Description),
		))
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
