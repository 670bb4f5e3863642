//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/resguardo/resguardo/internal/domain/models"
	pginfra "github.com/resguardo/resguardo/internal/infrastructure/persistence/postgres"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/logger"
)

func setupDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("SKIP_DOCKER_TESTS") == "true" {
		t.Skip("Skipping Docker-dependent tests")
	}

	ctx := context.Background()
	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("resguardo_test"),
		postgres.WithUsername("resguardo"),
		postgres.WithPassword("resguardo"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(context.Background()))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, pginfra.Migrate(db))
	return db
}

func TestOrganizationRepository_RoundTrip(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	repo := pginfra.NewOrganizationRepository(db, logger.NewNoopLogger())

	org := models.NewOrganization("Minera del Norte")
	require.NoError(t, repo.Save(ctx, org))

	loaded, err := repo.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Minera del Norte", loaded.Name)
	assert.Equal(t, constants.LicenseFree, loaded.LicenseType)

	loaded.LicenseType = constants.LicensePro
	require.NoError(t, repo.Update(ctx, loaded))

	count, err := repo.Count(ctx, models.Unrestricted())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, org.ID))
	_, err = repo.FindByID(ctx, org.ID)
	assert.Error(t, err)
}

func TestSiteRepository_ScopeFiltersByOrganization(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	orgRepo := pginfra.NewOrganizationRepository(db, logger.NewNoopLogger())
	siteRepo := pginfra.NewSiteRepository(db, logger.NewNoopLogger())
	adminID := uuid.New()

	orgA := models.NewOrganization("Alfa Logística")
	orgB := models.NewOrganization("Beta Portuaria")
	require.NoError(t, orgRepo.Save(ctx, orgA))
	require.NoError(t, orgRepo.Save(ctx, orgB))

	siteA := models.NewSite(orgA.ID, adminID, "Planta Monterrey")
	siteB := models.NewSite(orgB.ID, adminID, "Terminal Veracruz")
	require.NoError(t, siteRepo.Save(ctx, siteA))
	require.NoError(t, siteRepo.Save(ctx, siteB))

	all, err := siteRepo.FindAll(ctx, models.Unrestricted())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := siteRepo.FindAll(ctx, models.Scope{OrganizationIDs: []uuid.UUID{orgA.ID}})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Planta Monterrey", scoped[0].Name)

	none, err := siteRepo.FindAll(ctx, models.EmptyScope())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSiteRepository_AccessGrantsAreIdempotent(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	siteRepo := pginfra.NewSiteRepository(db, logger.NewNoopLogger())

	siteID := uuid.New()
	userID := uuid.New()
	site := models.NewSite(uuid.New(), uuid.New(), "Bodega Central")
	site.ID = siteID
	require.NoError(t, siteRepo.Save(ctx, site))

	require.NoError(t, siteRepo.GrantAccess(ctx, userID, siteID))
	require.NoError(t, siteRepo.GrantAccess(ctx, userID, siteID))

	ids, err := siteRepo.AccessibleSiteIDs(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{siteID}, ids)

	require.NoError(t, siteRepo.RevokeAccess(ctx, userID, siteID))
	ids, err = siteRepo.AccessibleSiteIDs(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestScenarioRepository_UniquePairAbsorbsDuplicates(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	repo := pginfra.NewScenarioRepository(db, logger.NewNoopLogger())

	siteID := uuid.New()
	assetID := uuid.New()
	threatID := uuid.New()
	creator := uuid.New()

	first := models.NewScenario(siteID, &assetID, threatID, creator)
	failed, err := repo.SaveBatch(ctx, []*models.Scenario{first})
	require.NoError(t, err)
	assert.Zero(t, failed)

	// The same (site, asset, threat) pair again trips the unique index and is
	// counted as a failure instead of aborting the batch.
	duplicate := models.NewScenario(siteID, &assetID, threatID, creator)
	other := models.NewScenario(siteID, &assetID, uuid.New(), creator)
	failed, err = repo.SaveBatch(ctx, []*models.Scenario{duplicate, other})
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	paired, err := repo.PairedThreatIDs(ctx, siteID, &assetID)
	require.NoError(t, err)
	assert.Len(t, paired, 2)

	count, err := repo.CountByAsset(ctx, siteID, assetID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestScenarioRepository_SiteLevelPairsAreUniqueToo(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	repo := pginfra.NewScenarioRepository(db, logger.NewNoopLogger())

	siteID := uuid.New()
	threatID := uuid.New()
	creator := uuid.New()

	first := models.NewScenario(siteID, nil, threatID, creator)
	failed, err := repo.SaveBatch(ctx, []*models.Scenario{first})
	require.NoError(t, err)
	assert.Zero(t, failed)

	// Pairs without an asset carry a NULL asset_id, which the composite index
	// treats as distinct; the partial site-pair index must still reject the
	// duplicate.
	duplicate := models.NewScenario(siteID, nil, threatID, creator)
	failed, err = repo.SaveBatch(ctx, []*models.Scenario{duplicate})
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	paired, err := repo.PairedThreatIDs(ctx, siteID, nil)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{threatID}, paired)
}

func TestScenarioRepository_SiteScopeFallsBackThroughOwningSite(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	orgRepo := pginfra.NewOrganizationRepository(db, logger.NewNoopLogger())
	siteRepo := pginfra.NewSiteRepository(db, logger.NewNoopLogger())
	scenarioRepo := pginfra.NewScenarioRepository(db, logger.NewNoopLogger())
	creator := uuid.New()

	org := models.NewOrganization("Gamma Industrial")
	require.NoError(t, orgRepo.Save(ctx, org))
	site := models.NewSite(org.ID, creator, "Planta Querétaro")
	require.NoError(t, siteRepo.Save(ctx, site))

	foreignSite := models.NewSite(uuid.New(), creator, "Sitio Ajeno")
	require.NoError(t, siteRepo.Save(ctx, foreignSite))

	inScope := models.NewScenario(site.ID, nil, uuid.New(), creator)
	outOfScope := models.NewScenario(foreignSite.ID, nil, uuid.New(), creator)
	_, err := scenarioRepo.SaveBatch(ctx, []*models.Scenario{inScope, outOfScope})
	require.NoError(t, err)

	// An organization restriction reaches site-owned rows through the owning
	// site, without any explicit site list.
	scoped, err := scenarioRepo.FindAll(ctx, models.Scope{OrganizationIDs: []uuid.UUID{org.ID}})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, inScope.ID, scoped[0].ID)
}
