package service

import (
	"context"
	"errors"
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

type mockUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) Save(ctx context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepo) FindAll(ctx context.Context, scope models.Scope) ([]*models.User, error) {
	out := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

func (m *mockUserRepo) Count(ctx context.Context, scope models.Scope) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

type mockProvisioner struct {
	id    uuid.UUID
	err   error
	calls []domainservice.ProvisionRequest
}

func (m *mockProvisioner) Provision(ctx context.Context, req domainservice.ProvisionRequest) (uuid.UUID, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return uuid.Nil, m.err
	}
	return m.id, nil
}

type mockAvatarStore struct {
	url     string
	err     error
	deleted []string
}

func (m *mockAvatarStore) Upload(ctx context.Context, path string, content []byte, contentType string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

func (m *mockAvatarStore) Delete(ctx context.Context, path string) error {
	m.deleted = append(m.deleted, path)
	return nil
}

func newUserService(users *mockUserRepo, sites *mockSiteRepo, prov *mockProvisioner, avatars *mockAvatarStore) UserAppService {
	return NewUserAppService(users, sites, prov, avatars, &mockAudit{}, logger.NewNoopLogger())
}

func TestUserCreate_ProvisionsThenMirrors(t *testing.T) {
	users := newMockUserRepo()
	prov := &mockProvisioner{id: uuid.New()}
	svc := newUserService(users, newMockSiteRepo(), prov, &mockAvatarStore{})

	siteID := uuid.New()
	resp, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateUserRequest{
		Email:    "consultor@resguardo.io",
		Password: "s3cre7pass",
		FullName: "Laura Méndez",
		Role:     "consultant",
		SiteIDs:  []uuid.UUID{siteID},
	})
	require.NoError(t, err)

	assert.Equal(t, prov.id, resp.ID)
	assert.Equal(t, constants.RoleConsultant, resp.Role)
	require.Len(t, prov.calls, 1)
	assert.Equal(t, []uuid.UUID{siteID}, prov.calls[0].SiteIDs, "grants travel with the provision call")
	assert.Contains(t, users.users, prov.id)
}

func TestUserCreate_ScopedRoleRequiresGrants(t *testing.T) {
	prov := &mockProvisioner{id: uuid.New()}
	svc := newUserService(newMockUserRepo(), newMockSiteRepo(), prov, &mockAvatarStore{})

	_, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateUserRequest{
		Email:    "reader@resguardo.io",
		Password: "s3cre7pass",
		FullName: "Lector Sin Sitios",
		Role:     "reader",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidRequest, appErr.Code)
	assert.Empty(t, prov.calls, "validation runs before the external call")
}

func TestUserCreate_ProvisionFailureLeavesNoProfile(t *testing.T) {
	users := newMockUserRepo()
	prov := &mockProvisioner{err: errors.New("backend rejected email")}
	svc := newUserService(users, newMockSiteRepo(), prov, &mockAvatarStore{})

	_, err := svc.Create(context.Background(), adminPrincipal(), &dto.CreateUserRequest{
		Email:          "dup@resguardo.io",
		Password:       "s3cre7pass",
		FullName:       "Cuenta Duplicada",
		Role:           "admin",
		OrganizationID: nil,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeExternalService, appErr.Code)
	assert.Empty(t, users.users, "no half-created account")
}

func TestUserUpdate_ReconcilesGrants(t *testing.T) {
	users := newMockUserRepo()
	sites := newMockSiteRepo()
	svc := newUserService(users, sites, &mockProvisioner{}, &mockAvatarStore{})

	userID := uuid.New()
	users.users[userID] = &models.User{ID: userID, Email: "c@resguardo.io", Role: constants.RoleConsultant}

	keep, drop, add := uuid.New(), uuid.New(), uuid.New()
	sites.grants[userID] = []uuid.UUID{keep, drop}

	_, err := svc.Update(context.Background(), adminPrincipal(), userID, &dto.UpdateUserRequest{
		SiteIDs: []uuid.UUID{keep, add},
	})
	require.NoError(t, err)

	got, _ := sites.AccessibleSiteIDs(context.Background(), userID)
	assert.ElementsMatch(t, []uuid.UUID{keep, add}, got)
}

func TestUploadAvatar_StoresURLOnProfile(t *testing.T) {
	users := newMockUserRepo()
	avatars := &mockAvatarStore{url: "https://cdn.resguardo.io/avatars/abc"}
	svc := newUserService(users, newMockSiteRepo(), &mockProvisioner{}, avatars)

	userID := uuid.New()
	users.users[userID] = &models.User{ID: userID, Email: "a@resguardo.io"}

	resp, err := svc.UploadAvatar(context.Background(), adminPrincipal(), userID, []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, avatars.url, resp.AvatarURL)
	assert.Equal(t, avatars.url, users.users[userID].AvatarURL)
}

func TestUploadAvatar_StoreFailure(t *testing.T) {
	users := newMockUserRepo()
	avatars := &mockAvatarStore{err: errors.New("bucket unavailable")}
	svc := newUserService(users, newMockSiteRepo(), &mockProvisioner{}, avatars)

	userID := uuid.New()
	users.users[userID] = &models.User{ID: userID}

	_, err := svc.UploadAvatar(context.Background(), adminPrincipal(), userID, []byte{1}, "image/png")
	require.Error(t, err)
	assert.Empty(t, users.users[userID].AvatarURL)
}
