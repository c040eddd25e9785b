package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/estudiarq/archisheets/internal/catalog"
	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/repository"
	"github.com/estudiarq/archisheets/internal/sheets"
	"github.com/estudiarq/archisheets/internal/sheetsync"
)

type projectService struct {
	registry *catalog.Registry
	cache    repository.CatalogCache
	store    sheets.Store
	syncer   Syncer
	observer UseCaseObserver
}

// NewProjectService creates a ProjectService over the remote registry,
// the local cache and the spreadsheet store.
func NewProjectService(
	registry *catalog.Registry,
	cache repository.CatalogCache,
	store sheets.Store,
	syncer Syncer,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		registry: registry,
		cache:    cache,
		store:    store,
		syncer:   syncer,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, token, name, description string, isTemplate bool) (p *domain.Project, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{"name": name, "template": isTemplate}
		if p != nil {
			fields["sheet_id"] = p.SheetID
		}
		observe(ctx, s.observer, "project_create", start, err, fields)
	}()

	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrEmptyTitle
	}

	p, err = s.registry.Create(ctx, token, name, isTemplate)
	if err != nil {
		return nil, err
	}
	p.Description = description

	if _, err := s.syncer.Sync(ctx, token, p); err != nil {
		return nil, fmt.Errorf("pushing initial structure: %w", err)
	}

	// Cache immediately so the dashboard shows the project even while
	// the remote catalog append is still propagating.
	if cacheErr := s.cache.Put(ctx, p); cacheErr != nil {
		observe(ctx, s.observer, "catalog_cache_put", start, cacheErr, map[string]any{"project": p.ID})
	}

	// One best-effort read-back confirms the catalog row landed; a miss
	// is reported, not fatal, since the row usually appears shortly.
	if stub, backErr := s.registry.FindBySheetID(ctx, token, p.SheetID); backErr != nil {
		observe(ctx, s.observer, "catalog_readback", start, backErr, map[string]any{"project": p.ID})
	} else if stub == nil {
		observe(ctx, s.observer, "catalog_readback", start,
			fmt.Errorf("catalog row for sheet %s not visible yet", p.SheetID), map[string]any{"project": p.ID})
	}

	return p, nil
}

func (s *projectService) CreateFromTemplate(ctx context.Context, token, name, description string, template *domain.Project) (*domain.Project, error) {
	if template == nil {
		return nil, fmt.Errorf("no template given")
	}

	p, err := s.Create(ctx, token, name, description, false)
	if err != nil {
		return nil, err
	}

	// Fresh IDs throughout: the copy shares nothing with the template.
	p.Placeholders = append([]domain.Placeholder{}, template.Placeholders...)
	for i := range template.Chapters {
		src := &template.Chapters[i]
		ch, err := p.AddChapter(src.Title)
		if err != nil {
			return nil, fmt.Errorf("copying chapter %q: %w", src.Title, err)
		}
		for _, d := range src.Documents {
			if _, err := p.AddDocument(ch.ID, d.Title, d.URL, d.Type); err != nil {
				return nil, fmt.Errorf("copying document %q: %w", d.Title, err)
			}
		}
	}

	if _, err := s.syncer.Sync(ctx, token, p); err != nil {
		return nil, fmt.Errorf("pushing template structure: %w", err)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, token string) (projects []*domain.Project, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "project_list", start, err, map[string]any{"count": len(projects)})
	}()

	projects, err = s.registry.List(ctx, token)
	if err != nil {
		// A missing catalog tab is a configuration problem, not an
		// outage; surface it instead of serving stale rows.
		if errors.Is(err, catalog.ErrCatalogTabMissing) || errors.Is(err, sheets.ErrUnauthorized) {
			return nil, err
		}
		cached, cacheErr := s.cache.List(ctx)
		if cacheErr != nil || len(cached) == 0 {
			return nil, err
		}
		observe(ctx, s.observer, "catalog_cache_fallback", start, err, map[string]any{"count": len(cached)})
		return cached, nil
	}

	if cacheErr := s.cache.Replace(ctx, projects); cacheErr != nil {
		observe(ctx, s.observer, "catalog_cache_refresh", start, cacheErr, nil)
	}
	return projects, nil
}

func (s *projectService) ListTemplates(ctx context.Context, token string) ([]*domain.Project, error) {
	projects, err := s.List(ctx, token)
	if err != nil {
		return nil, err
	}
	templates := make([]*domain.Project, 0, len(projects))
	for _, p := range projects {
		if p.IsTemplate {
			templates = append(templates, p)
		}
	}
	return templates, nil
}

// Open reads the project's spreadsheet back into a full domain object.
// The ranges mirror what sync writes; a tab that has never been written
// simply yields no rows.
func (s *projectService) Open(ctx context.Context, token string, stub *domain.Project) (p *domain.Project, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "project_open", start, err, map[string]any{"sheet_id": stub.SheetID})
	}()

	if stub.SheetID == "" {
		return nil, fmt.Errorf("project %q has no spreadsheet attached", stub.Name)
	}

	p = &domain.Project{
		ID:          stub.ID,
		Name:        stub.Name,
		Description: stub.Description,
		SheetID:     stub.SheetID,
		IsTemplate:  stub.IsTemplate,
		CreatedAt:   stub.CreatedAt,
	}

	configRows, err := s.readRows(ctx, token, stub.SheetID, sheetsync.TabConfig+"!A1:C")
	if err != nil {
		return nil, fmt.Errorf("reading placeholders: %w", err)
	}
	for _, row := range dropHeader(configRows) {
		if cell(row, 0) == "" {
			continue
		}
		p.Placeholders = append(p.Placeholders, domain.Placeholder{
			Key:         cell(row, 0),
			Value:       cell(row, 1),
			Description: cell(row, 2),
		})
	}

	structRows, err := s.readRows(ctx, token, stub.SheetID, sheetsync.TabStructure+"!A1:C")
	if err != nil {
		return nil, fmt.Errorf("reading structure: %w", err)
	}
	for _, row := range dropHeader(structRows) {
		title := cell(row, 0)
		if title == "" {
			continue
		}
		ch := domain.Chapter{
			ID:           uuid.New().String(),
			Title:        title,
			SheetTabName: cell(row, 1),
		}
		docRows, err := s.readRows(ctx, token, stub.SheetID, ch.ResolveTabName()+"!A1:B")
		if err != nil {
			return nil, fmt.Errorf("reading documents of %q: %w", title, err)
		}
		for _, dr := range dropHeader(docRows) {
			if cell(dr, 0) == "" {
				continue
			}
			ch.Documents = append(ch.Documents, domain.Document{
				ID:    uuid.New().String(),
				Title: cell(dr, 0),
				URL:   cell(dr, 1),
				Type:  inferDocType(cell(dr, 1)),
			})
		}
		p.Chapters = append(p.Chapters, ch)
	}

	return p, nil
}

// readRows reads one range, treating a missing tab as empty.
func (s *projectService) readRows(ctx context.Context, token, sheetID, rng string) ([][]string, error) {
	rows, err := s.store.GetValues(ctx, token, sheetID, rng)
	if err != nil {
		if errors.Is(err, sheets.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

// dropHeader skips the header row every written range carries.
func dropHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// inferDocType guesses a document type from its Drive URL. The sheet
// stores only title and URL, so the type is reconstructed on load.
func inferDocType(url string) domain.DocType {
	switch {
	case strings.Contains(url, "/document/"):
		return domain.DocGoogleDoc
	case strings.Contains(url, "/spreadsheets/"):
		return domain.DocGoogleSheet
	case strings.HasSuffix(strings.ToLower(url), ".pdf"):
		return domain.DocPDF
	default:
		return domain.DocOther
	}
}
