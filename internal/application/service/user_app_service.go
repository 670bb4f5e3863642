package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/domain/repository"
	domainservice "github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
	"github.com/resguardo/resguardo/pkg/utils"
)

// UserAppService defines the account management use cases. Account creation
// is delegated to the external identity backend; the local table mirrors the
// resulting profile.
type UserAppService interface {
	Create(ctx context.Context, principal models.Principal, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.UserResponse, error)
	List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.UserResponse, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
	BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error)
	UploadAvatar(ctx context.Context, principal models.Principal, id uuid.UUID, content []byte, contentType string) (*dto.AvatarResponse, error)
}

type userAppService struct {
	userRepo    repository.UserRepository
	siteRepo    repository.SiteRepository
	provisioner domainservice.UserProvisioner
	avatars     domainservice.AvatarStore
	audit       domainservice.AuditService
	logger      logger.Logger
}

// NewUserAppService creates the user application service.
func NewUserAppService(
	userRepo repository.UserRepository,
	siteRepo repository.SiteRepository,
	provisioner domainservice.UserProvisioner,
	avatars domainservice.AvatarStore,
	audit domainservice.AuditService,
	log logger.Logger,
) UserAppService {
	return &userAppService{
		userRepo:    userRepo,
		siteRepo:    siteRepo,
		provisioner: provisioner,
		avatars:     avatars,
		audit:       audit,
		logger:      log.WithComponent("user_service"),
	}
}

// Create asks the identity backend to provision the account, its role and
// its grants atomically, then mirrors the profile locally. The caller sees
// one success or one failure, never a half-created account.
func (s *userAppService) Create(ctx context.Context, principal models.Principal, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := constants.Role(req.Role)
	if role.IsScoped() && len(req.SiteIDs) == 0 {
		return nil, errors.ErrInvalidRequest.WithMessage("scoped roles require at least one site grant")
	}

	userID, err := s.provisioner.Provision(ctx, domainservice.ProvisionRequest{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		Role:           req.Role,
		OrganizationID: req.OrganizationID,
		SiteIDs:        req.SiteIDs,
	})
	if err != nil {
		s.logger.Error(ctx, "user provisioning failed", err, logger.Fields{"email": req.Email})
		return nil, errors.ErrExternalService.WithMessage("failed to provision user").WithError(err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:             userID,
		Email:          req.Email,
		FullName:       req.FullName,
		Role:           role,
		OrganizationID: req.OrganizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to save user profile").WithError(err)
	}
	s.logAudit(ctx, principal, constants.ActionCreate, user.ID.String())
	return dto.NewUserResponse(user), nil
}

func (s *userAppService) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		user.Role = constants.Role(*req.Role)
	}
	if req.OrganizationID != nil {
		user.OrganizationID = req.OrganizationID
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to update user").WithError(err)
	}

	if req.SiteIDs != nil {
		if err := s.replaceGrants(ctx, user.ID, req.SiteIDs); err != nil {
			return nil, err
		}
	}
	s.logAudit(ctx, principal, constants.ActionEdit, user.ID.String())
	return dto.NewUserResponse(user), nil
}

// replaceGrants reconciles the stored grants against the requested set.
func (s *userAppService) replaceGrants(ctx context.Context, userID uuid.UUID, siteIDs []uuid.UUID) error {
	current, err := s.siteRepo.AccessibleSiteIDs(ctx, userID)
	if err != nil {
		return err
	}
	want := make(map[uuid.UUID]struct{}, len(siteIDs))
	for _, id := range siteIDs {
		want[id] = struct{}{}
	}
	have := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
		if _, keep := want[id]; !keep {
			if err := s.siteRepo.RevokeAccess(ctx, userID, id); err != nil {
				return err
			}
		}
	}
	for id := range want {
		if _, exists := have[id]; !exists {
			if err := s.siteRepo.GrantAccess(ctx, userID, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *userAppService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userAppService) List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx, models.Unrestricted())
	if err != nil {
		return nil, err
	}

	out := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.NewUserResponse(user))
	}
	out = utils.Filter(out, q.Search, func(u *dto.UserResponse) []string {
		return []string{u.Email, u.FullName, string(u.Role)}
	})
	dir := utils.SortDirection(q.SortDir)
	switch q.SortBy {
	case "email":
		utils.SortByString(out, dir, func(u *dto.UserResponse) string { return u.Email })
	case "created_at":
		utils.SortByTime(out, dir, func(u *dto.UserResponse) time.Time { return u.CreatedAt })
	default:
		utils.SortByString(out, dir, func(u *dto.UserResponse) string { return u.FullName })
	}
	return out, nil
}

func (s *userAppService) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logAudit(ctx, principal, constants.ActionDelete, id.String())
	return nil
}

func (s *userAppService) BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error) {
	result := runBulkDelete(ctx, ids, s.userRepo.Delete)
	if result.Failed > 0 {
		return &result, errors.ErrPartialFailure.
			WithMessagef("error eliminando %d usuario(s)", result.Failed).
			WithDetail("failed", result.Failed)
	}
	return &result, nil
}

// UploadAvatar stores the image under a user-scoped path and records the
// public URL on the profile.
func (s *userAppService) UploadAvatar(ctx context.Context, principal models.Principal, id uuid.UUID, content []byte, contentType string) (*dto.AvatarResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("avatars/%s", user.ID)
	url, err := s.avatars.Upload(ctx, path, content, contentType)
	if err != nil {
		s.logger.Error(ctx, "avatar upload failed", err, logger.Fields{"user_id": user.ID.String()})
		return nil, errors.ErrExternalService.WithMessage("failed to upload avatar").WithError(err)
	}

	user.AvatarURL = url
	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to save avatar url").WithError(err)
	}
	s.logAudit(ctx, principal, constants.ActionEdit, user.ID.String())
	return &dto.AvatarResponse{AvatarURL: url}, nil
}

func (s *userAppService) logAudit(ctx context.Context, principal models.Principal, action constants.Action, resourceID string) {
	event := models.NewAuditEvent(principal.UserID, action, constants.EntityUser, resourceID)
	if err := s.audit.LogEvent(ctx, *event); err != nil {
		s.logger.Warn(ctx, "failed to record audit event", logger.Fields{"error": err.Error()})
	}
}
