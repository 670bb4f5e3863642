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
	"github.com/resguardo/resguardo/pkg/constants"
	apperrors "github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

type mockOrgRepo struct {
	mu        sync.Mutex
	orgs      map[uuid.UUID]*models.Organization
	deleteErr map[uuid.UUID]error
	deleted   []uuid.UUID
}

func newMockOrgRepo() *mockOrgRepo {
	return &mockOrgRepo{
		orgs:      make(map[uuid.UUID]*models.Organization),
		deleteErr: make(map[uuid.UUID]error),
	}
}

func (m *mockOrgRepo) Save(ctx context.Context, org *models.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orgs[org.ID] = org
	return nil
}

func (m *mockOrgRepo) Update(ctx context.Context, org *models.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orgs[org.ID] = org
	return nil
}

func (m *mockOrgRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	org, ok := m.orgs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return org, nil
}

func (m *mockOrgRepo) FindAll(ctx context.Context, scope models.Scope) ([]*models.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Organization, 0, len(m.orgs))
	for _, org := range m.orgs {
		out = append(out, org)
	}
	return out, nil
}

func (m *mockOrgRepo) Count(ctx context.Context, scope models.Scope) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.orgs)), nil
}

func (m *mockOrgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.deleteErr[id]; err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	delete(m.orgs, id)
	return nil
}

func newOrgService(repo *mockOrgRepo) OrganizationAppService {
	return NewOrganizationAppService(
		repo,
		&mockVisibility{scope: models.Unrestricted()},
		&mockAudit{},
		logger.NewNoopLogger(),
	)
}

func TestOrganizationCreate(t *testing.T) {
	repo := newMockOrgRepo()
	svc := newOrgService(repo)

	resp, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateOrganizationRequest{
		Name:        "Grupo Industrial del Norte",
		LicenseType: "pro",
	})
	require.NoError(t, err)

	assert.Equal(t, "Grupo Industrial del Norte", resp.Name)
	assert.Equal(t, constants.LicensePro, resp.LicenseType)
	assert.Len(t, repo.orgs, 1)
}

func TestOrganizationList_SearchAndSort(t *testing.T) {
	repo := newMockOrgRepo()
	svc := newOrgService(repo)

	for _, name := range []string{"Zeta Seguridad", "Alfa Logística", "Alfa Minera"} {
		org := models.NewOrganization(name)
		repo.orgs[org.ID] = org
	}

	out, err := svc.List(context.Background(), adminPrincipal(), &dto.ListQuery{Search: "alfa"})
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "Alfa Logística", out[0].Name, "default sort is name ascending")
	assert.Equal(t, "Alfa Minera", out[1].Name)
}

func TestOrganizationBulkDelete_AllSucceed(t *testing.T) {
	repo := newMockOrgRepo()
	svc := newOrgService(repo)

	ids := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		org := models.NewOrganization("Org")
		repo.orgs[org.ID] = org
		ids = append(ids, org.ID)
	}

	result, err := svc.BulkDelete(context.Background(), adminPrincipal(), ids)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 5, result.Deleted)
	assert.Zero(t, result.Failed)
	assert.Empty(t, repo.orgs)
}

func TestOrganizationBulkDelete_OneFailureReportsCount(t *testing.T) {
	repo := newMockOrgRepo()
	svc := newOrgService(repo)

	ids := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		org := models.NewOrganization("Org")
		repo.orgs[org.ID] = org
		ids = append(ids, org.ID)
	}
	repo.deleteErr[ids[1]] = errors.New("organization has sites")

	result, err := svc.BulkDelete(context.Background(), adminPrincipal(), ids)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodePartialFailure, appErr.Code)
	assert.Equal(t, "error eliminando 1 organización(es)", appErr.Message)

	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 4, result.Deleted)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, repo.deleted, 4, "one failure must not abort the other deletes")
}

func TestOrganizationUpdate_NotFound(t *testing.T) {
	svc := newOrgService(newMockOrgRepo())

	name := "Nuevo Nombre"
	_, err := svc.Update(context.Background(), adminPrincipal(), uuid.New(), &dto.UpdateOrganizationRequest{Name: &name})
	assert.True(t, apperrors.IsNotFound(err))
}
