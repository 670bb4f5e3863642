package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/domain/models"
	domainservice "github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/constants"
	apperrors "github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

type mockSiteRepo struct {
	mu        sync.Mutex
	sites     map[uuid.UUID]*models.Site
	saveErr   error
	deleteErr map[uuid.UUID]error
	deleted   []uuid.UUID
	grants    map[uuid.UUID][]uuid.UUID
}

func newMockSiteRepo() *mockSiteRepo {
	return &mockSiteRepo{
		sites:     make(map[uuid.UUID]*models.Site),
		deleteErr: make(map[uuid.UUID]error),
		grants:    make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *mockSiteRepo) Save(ctx context.Context, site *models.Site) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sites[site.ID] = site
	return nil
}

func (m *mockSiteRepo) Update(ctx context.Context, site *models.Site) error {
	m.sites[site.ID] = site
	return nil
}

func (m *mockSiteRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Site, error) {
	site, ok := m.sites[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return site, nil
}

func (m *mockSiteRepo) FindAll(ctx context.Context, scope models.Scope) ([]*models.Site, error) {
	out := make([]*models.Site, 0, len(m.sites))
	for _, site := range m.sites {
		if scope.AllowsSite(site.ID) {
			out = append(out, site)
		}
	}
	return out, nil
}

func (m *mockSiteRepo) Count(ctx context.Context, scope models.Scope) (int64, error) {
	sites, _ := m.FindAll(ctx, scope)
	return int64(len(sites)), nil
}

func (m *mockSiteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.deleteErr[id]; err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	delete(m.sites, id)
	return nil
}

func (m *mockSiteRepo) GrantAccess(ctx context.Context, userID, siteID uuid.UUID) error {
	m.grants[userID] = append(m.grants[userID], siteID)
	return nil
}

func (m *mockSiteRepo) RevokeAccess(ctx context.Context, userID, siteID uuid.UUID) error {
	granted := m.grants[userID]
	out := granted[:0]
	for _, id := range granted {
		if id != siteID {
			out = append(out, id)
		}
	}
	m.grants[userID] = out
	return nil
}

func (m *mockSiteRepo) AccessibleSiteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.grants[userID], nil
}

type mockCatalogMatcher struct {
	assets  int
	threats int
	err     error
	calls   int
}

func (m *mockCatalogMatcher) Match(ctx context.Context, siteID uuid.UUID) (int, int, error) {
	m.calls++
	return m.assets, m.threats, m.err
}

type mockGenerator struct {
	result *domainservice.GenerationResult
	err    error
	calls  int
}

func (m *mockGenerator) Generate(ctx context.Context, req domainservice.GenerationRequest) (*domainservice.GenerationResult, error) {
	m.calls++
	return m.result, m.err
}

type mockVisibility struct {
	scope models.Scope
	err   error
}

func (m *mockVisibility) Resolve(ctx context.Context, principal models.Principal, sel models.Selection) (models.Scope, error) {
	return m.scope, m.err
}

type mockAudit struct {
	events []models.AuditEvent
}

func (m *mockAudit) LogEvent(ctx context.Context, event models.AuditEvent) error {
	m.events = append(m.events, event)
	return nil
}

func adminPrincipal() models.Principal {
	return models.Principal{
		UserID: uuid.New(),
		Email:  "admin@resguardo.io",
		Role:   constants.RoleAdmin,
	}
}

func newSiteService(repo *mockSiteRepo, catalog *mockCatalogMatcher, gen *mockGenerator, audit *mockAudit) SiteAppService {
	return NewSiteAppService(
		repo, catalog, gen,
		&mockVisibility{scope: models.Unrestricted()},
		audit,
		logger.NewNoopLogger(),
	)
}

func TestSiteCreate_CatalogBootstrap(t *testing.T) {
	repo := newMockSiteRepo()
	catalog := &mockCatalogMatcher{assets: 12, threats: 7}
	gen := &mockGenerator{}
	svc := newSiteService(repo, catalog, gen, &mockAudit{})

	resp, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateSiteRequest{
		OrganizationID: uuid.New(),
		Name:           "Planta Monterrey",
		IndustryType:   "manufactura",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.BootstrapCatalog, resp.Bootstrap.Path)
	assert.Equal(t, 12, resp.Bootstrap.AssetsAdded)
	assert.Equal(t, 7, resp.Bootstrap.ThreatsAdded)
	assert.Empty(t, resp.Bootstrap.Warning)
	assert.Equal(t, 0, gen.calls, "catalog hit must not trigger generation")
	assert.Len(t, repo.sites, 1)
}

func TestSiteCreate_AIFallbackWhenCatalogEmpty(t *testing.T) {
	repo := newMockSiteRepo()
	catalog := &mockCatalogMatcher{assets: 0, threats: 0}
	gen := &mockGenerator{result: &domainservice.GenerationResult{Success: true, AssetsAdded: 5, ThreatsAdded: 9}}
	svc := newSiteService(repo, catalog, gen, &mockAudit{})

	resp, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateSiteRequest{
		OrganizationID: uuid.New(),
		Name:           "Planta Monterrey",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.BootstrapAIGenerated, resp.Bootstrap.Path)
	assert.Equal(t, 5, resp.Bootstrap.AssetsAdded)
	assert.Equal(t, 9, resp.Bootstrap.ThreatsAdded)
	assert.Equal(t, 1, gen.calls, "generation runs exactly once")
	assert.Equal(t, 1, catalog.calls)
}

func TestSiteCreate_PartialCatalogSkipsFallback(t *testing.T) {
	repo := newMockSiteRepo()
	catalog := &mockCatalogMatcher{assets: 3, threats: 0}
	gen := &mockGenerator{}
	svc := newSiteService(repo, catalog, gen, &mockAudit{})

	resp, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateSiteRequest{
		OrganizationID: uuid.New(),
		Name:           "Oficina CDMX",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.BootstrapCatalog, resp.Bootstrap.Path)
	assert.Equal(t, 0, gen.calls, "any catalog match suppresses the fallback")
}

func TestSiteCreate_GenerationFailureKeepsSite(t *testing.T) {
	repo := newMockSiteRepo()
	catalog := &mockCatalogMatcher{}
	gen := &mockGenerator{err: errors.New("upstream timeout")}
	svc := newSiteService(repo, catalog, gen, &mockAudit{})

	resp, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateSiteRequest{
		OrganizationID: uuid.New(),
		Name:           "Planta Monterrey",
	})
	require.NoError(t, err, "bootstrap failure must not fail site creation")

	assert.Equal(t, constants.BootstrapFailed, resp.Bootstrap.Path)
	assert.Contains(t, resp.Bootstrap.Warning, "upstream timeout")
	assert.Len(t, repo.sites, 1, "site survives a failed bootstrap")
}

func TestSiteCreate_CatalogErrorKeepsSite(t *testing.T) {
	repo := newMockSiteRepo()
	catalog := &mockCatalogMatcher{err: errors.New("rpc unavailable")}
	gen := &mockGenerator{}
	svc := newSiteService(repo, catalog, gen, &mockAudit{})

	resp, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateSiteRequest{
		OrganizationID: uuid.New(),
		Name:           "Bodega Norte",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.BootstrapFailed, resp.Bootstrap.Path)
	assert.Equal(t, 0, gen.calls, "catalog error does not trigger generation")
	assert.Len(t, repo.sites, 1)
}

func TestSiteCreate_EmptyGenerationReportsNone(t *testing.T) {
	repo := newMockSiteRepo()
	catalog := &mockCatalogMatcher{}
	gen := &mockGenerator{result: &domainservice.GenerationResult{Success: true}}
	svc := newSiteService(repo, catalog, gen, &mockAudit{})

	resp, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateSiteRequest{
		OrganizationID: uuid.New(),
		Name:           "Sucursal Vacía",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.BootstrapNone, resp.Bootstrap.Path)
	assert.Zero(t, resp.Bootstrap.AssetsAdded)
	assert.Zero(t, resp.Bootstrap.ThreatsAdded)
}

func TestSiteBulkDelete_AggregatesFailures(t *testing.T) {
	repo := newMockSiteRepo()
	svc := newSiteService(repo, &mockCatalogMatcher{}, &mockGenerator{}, &mockAudit{})

	ids := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		site := models.NewSite(uuid.New(), uuid.New(), "Sitio")
		repo.sites[site.ID] = site
		ids = append(ids, site.ID)
	}
	repo.deleteErr[ids[2]] = errors.New("foreign key violation")
	repo.deleteErr[ids[4]] = errors.New("foreign key violation")

	result, err := svc.BulkDelete(context.Background(), adminPrincipal(), ids)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodePartialFailure, appErr.Code)
	assert.Contains(t, appErr.Message, "2 sitio(s)")

	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 3, result.Deleted)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, repo.deleted, 3, "failures must not stop the remaining deletes")
}

func TestSiteUpdate_PartialFields(t *testing.T) {
	repo := newMockSiteRepo()
	svc := newSiteService(repo, &mockCatalogMatcher{}, &mockGenerator{}, &mockAudit{})

	site := models.NewSite(uuid.New(), uuid.New(), "Planta Monterrey")
	site.LocationCity = "Monterrey"
	repo.sites[site.ID] = site

	newName := "Planta Monterrey Norte"
	resp, err := svc.Update(context.Background(), adminPrincipal(), site.ID, &dto.UpdateSiteRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Planta Monterrey Norte", resp.Name)
	assert.Equal(t, "Monterrey", resp.LocationCity, "untouched fields keep their value")
}

func TestSiteCreate_AuditsCreation(t *testing.T) {
	repo := newMockSiteRepo()
	audit := &mockAudit{}
	svc := newSiteService(repo, &mockCatalogMatcher{assets: 1}, &mockGenerator{}, audit)

	_, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateSiteRequest{
		OrganizationID: uuid.New(),
		Name:           "Planta Monterrey",
	})
	require.NoError(t, err)

	require.Len(t, audit.events, 1)
	assert.Equal(t, constants.ActionCreate, audit.events[0].Action)
	assert.Equal(t, constants.EntitySite, audit.events[0].Entity)
}
