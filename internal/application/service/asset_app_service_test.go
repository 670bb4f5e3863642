package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/domain/models"
	apperrors "github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
	"github.com/resguardo/resguardo/pkg/utils"
)

type mockAssetRepo struct {
	assets map[uuid.UUID]*models.Asset
}

func newMockAssetRepo() *mockAssetRepo {
	return &mockAssetRepo{assets: make(map[uuid.UUID]*models.Asset)}
}

func (m *mockAssetRepo) Save(ctx context.Context, asset *models.Asset) error {
	m.assets[asset.ID] = asset
	return nil
}

func (m *mockAssetRepo) Update(ctx context.Context, asset *models.Asset) error {
	m.assets[asset.ID] = asset
	return nil
}

func (m *mockAssetRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	asset, ok := m.assets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return asset, nil
}

func (m *mockAssetRepo) FindAll(ctx context.Context, scope models.Scope) ([]*models.Asset, error) {
	out := make([]*models.Asset, 0, len(m.assets))
	for _, asset := range m.assets {
		out = append(out, asset)
	}
	return out, nil
}

func (m *mockAssetRepo) FindBySite(ctx context.Context, siteID uuid.UUID) ([]*models.Asset, error) {
	var out []*models.Asset
	for _, asset := range m.assets {
		if asset.SiteID == siteID {
			out = append(out, asset)
		}
	}
	return out, nil
}

func (m *mockAssetRepo) Count(ctx context.Context, scope models.Scope) (int64, error) {
	return int64(len(m.assets)), nil
}

func (m *mockAssetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.assets, id)
	return nil
}

func newAssetService(assets *mockAssetRepo, scenarios *mockScenarioRepo) AssetAppService {
	return NewAssetAppService(
		assets, scenarios,
		&mockVisibility{scope: models.Unrestricted()},
		&mockAudit{},
		logger.NewNoopLogger(),
	)
}

func seedAsset(repo *mockAssetRepo, siteID uuid.UUID, name, assetType string) *models.Asset {
	asset := models.NewAsset(siteID, uuid.New(), name)
	asset.Type = assetType
	repo.assets[asset.ID] = asset
	return asset
}

func TestAssetCreate_ClassifiesType(t *testing.T) {
	repo := newMockAssetRepo()
	svc := newAssetService(repo, newMockScenarioRepo())

	resp, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateAssetRequest{
		SiteID: uuid.New(),
		Name:   "Director General",
		Type:   "Personal directivo",
	})
	require.NoError(t, err)
	assert.Equal(t, utils.CategoryPersonas, resp.DisplayCategory)
}

func TestAssetList_GroupsByCategory(t *testing.T) {
	repo := newMockAssetRepo()
	svc := newAssetService(repo, newMockScenarioRepo())

	siteID := uuid.New()
	seedAsset(repo, siteID, "Servidor de nómina", "Información confidencial")
	seedAsset(repo, siteID, "Director General", "Personal directivo")
	seedAsset(repo, siteID, "Camión de reparto", "Equipo de transporte")
	seedAsset(repo, siteID, "Auditoría interna", "Proceso administrativo")
	seedAsset(repo, siteID, "Escultura del lobby", "Arte")

	out, err := svc.List(context.Background(), adminPrincipal(), &dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, out, 5)

	categories := make([]string, 0, len(out))
	for _, a := range out {
		categories = append(categories, a.DisplayCategory)
	}
	assert.Equal(t, []string{
		utils.CategoryPersonas,
		utils.CategoryBienes,
		utils.CategoryProcesos,
		utils.CategoryInformacion,
		utils.CategoryOtros,
	}, categories, "unmatched types sort last")
}

func TestAssetList_SearchFiltersAcrossFields(t *testing.T) {
	repo := newMockAssetRepo()
	svc := newAssetService(repo, newMockScenarioRepo())

	siteID := uuid.New()
	seedAsset(repo, siteID, "Bodega Central", "Inmueble")
	asset := seedAsset(repo, siteID, "Archivo muerto", "Documentos")
	asset.Location = "Bodega 3"

	out, err := svc.List(context.Background(), adminPrincipal(), &dto.ListQuery{Search: "bodega"})
	require.NoError(t, err)
	assert.Len(t, out, 2, "search matches name and location")
}

func TestAssetGet_IncludesScenarioCount(t *testing.T) {
	assets := newMockAssetRepo()
	scenarios := newMockScenarioRepo()
	svc := newAssetService(assets, scenarios)

	siteID := uuid.New()
	asset := seedAsset(assets, siteID, "Director General", "Personal")
	for i := 0; i < 3; i++ {
		s := models.NewScenario(siteID, &asset.ID, uuid.New(), uuid.New())
		scenarios.scenarios[s.ID] = s
	}

	resp, err := svc.Get(context.Background(), adminPrincipal(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ScenarioCount)
}
