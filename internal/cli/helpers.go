package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/estudiarq/archisheets/internal/auth"
	"github.com/estudiarq/archisheets/internal/domain"
)

// token resolves the stored bearer credential for a command invocation.
func (app *App) token() (string, error) {
	return app.Credentials.Token()
}

// remoteErr routes remote-store failures through the credential handler,
// clearing an expired token so the next command prompts for login.
func (app *App) remoteErr(err error) error {
	return auth.HandleRemoteError(app.Credentials, err)
}

// resolveProject finds a catalog stub by exact ID, ID prefix, sheet ID or
// case-insensitive name.
func resolveProject(ctx context.Context, app *App, token, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("project reference is required")
	}

	projects, err := app.Projects.List(ctx, token)
	if err != nil {
		return nil, app.remoteErr(err)
	}

	for _, p := range projects {
		if p.ID == input || p.SheetID == input {
			return p, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p, nil
		}
	}

	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

// openProject resolves a stub and loads its full structure.
func openProject(ctx context.Context, app *App, token, input string) (*domain.Project, error) {
	stub, err := resolveProject(ctx, app, token, input)
	if err != nil {
		return nil, err
	}
	p, err := app.Projects.Open(ctx, token, stub)
	if err != nil {
		return nil, app.remoteErr(err)
	}
	return p, nil
}

// findChapterByRef matches a chapter by exact title or resolved tab name.
func findChapterByRef(p *domain.Project, ref string) *domain.Chapter {
	for i := range p.Chapters {
		ch := &p.Chapters[i]
		if strings.EqualFold(ch.Title, ref) || strings.EqualFold(ch.ResolveTabName(), ref) {
			return ch
		}
	}
	return nil
}

// placeholderIndex finds the display index of a normalized key, or -1.
func placeholderIndex(p *domain.Project, rawKey string) int {
	key := domain.NormalizeKey(rawKey)
	for i := range p.Placeholders {
		if p.Placeholders[i].Key == key {
			return i
		}
	}
	return -1
}
