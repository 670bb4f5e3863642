package service

import (
	"context"
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

// OrganizationAppService defines the organization management use cases.
type OrganizationAppService interface {
	Create(ctx context.Context, principal models.Principal, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error)
	Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.OrganizationResponse, error)
	List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.OrganizationResponse, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
	BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error)
}

type organizationAppService struct {
	orgRepo    repository.OrganizationRepository
	visibility domainservice.VisibilityResolver
	audit      domainservice.AuditService
	logger     logger.Logger
}

// NewOrganizationAppService creates the organization application service.
func NewOrganizationAppService(
	orgRepo repository.OrganizationRepository,
	visibility domainservice.VisibilityResolver,
	audit domainservice.AuditService,
	log logger.Logger,
) OrganizationAppService {
	return &organizationAppService{
		orgRepo:    orgRepo,
		visibility: visibility,
		audit:      audit,
		logger:     log.WithComponent("organization_service"),
	}
}

func (s *organizationAppService) Create(ctx context.Context, principal models.Principal, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org := models.NewOrganization(req.Name)
	if req.LicenseType != "" {
		org.LicenseType = constants.LicenseType(req.LicenseType)
	}
	org.LicenseLimit = req.LicenseLimit

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error(ctx, "failed to create organization", err, logger.Fields{"name": req.Name})
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to create organization").WithError(err)
	}

	s.logAudit(ctx, principal, constants.ActionCreate, org.ID.String(), &org.ID)
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationAppService) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.LicenseType != nil {
		org.LicenseType = constants.LicenseType(*req.LicenseType)
	}
	if req.LicenseLimit != nil {
		org.LicenseLimit = *req.LicenseLimit
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		s.logger.Error(ctx, "failed to update organization", err, logger.Fields{"id": id.String()})
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to update organization").WithError(err)
	}

	s.logAudit(ctx, principal, constants.ActionEdit, id.String(), &id)
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationAppService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationAppService) List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.OrganizationResponse, error) {
	scope, err := s.visibility.Resolve(ctx, principal, models.Selection{
		OrganizationID: q.OrganizationID,
		SiteID:         q.SiteID,
	})
	if err != nil {
		return nil, err
	}

	orgs, err := s.orgRepo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, dto.NewOrganizationResponse(org))
	}
	out = utils.Filter(out, q.Search, func(o *dto.OrganizationResponse) []string {
		return []string{o.Name, string(o.LicenseType)}
	})
	sortOrganizations(out, q)
	return out, nil
}

func (s *organizationAppService) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	if err := s.orgRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logAudit(ctx, principal, constants.ActionDelete, id.String(), &id)
	return nil
}

// BulkDelete deletes all selected organizations concurrently. A partial
// failure is reported as one aggregate error with the failure count, worded
// the way the console displays it.
func (s *organizationAppService) BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error) {
	result := runBulkDelete(ctx, ids, s.orgRepo.Delete)

	s.logAudit(ctx, principal, constants.ActionBulkDelete, "", nil)
	if result.Failed > 0 {
		return &result, errors.ErrPartialFailure.
			WithMessagef("error eliminando %d organización(es)", result.Failed).
			WithDetail("failed", result.Failed)
	}
	return &result, nil
}

func sortOrganizations(items []*dto.OrganizationResponse, q *dto.ListQuery) {
	dir := utils.SortDirection(q.SortDir)
	switch q.SortBy {
	case "created_at":
		utils.SortByTime(items, dir, func(o *dto.OrganizationResponse) time.Time { return o.CreatedAt })
	case "license_limit":
		utils.SortByNumber(items, dir, func(o *dto.OrganizationResponse) float64 { return float64(o.LicenseLimit) })
	default:
		utils.SortByString(items, dir, func(o *dto.OrganizationResponse) string { return o.Name })
	}
}

func (s *organizationAppService) logAudit(ctx context.Context, principal models.Principal, action constants.Action, entityID string, orgID *uuid.UUID) {
	event := models.NewAuditEvent(principal.UserID, action, constants.EntityOrganization, entityID)
	if orgID != nil {
		event.WithOrganization(*orgID)
	}
	if err := s.audit.LogEvent(ctx, *event); err != nil {
		s.logger.Warn(ctx, "failed to record audit event", logger.Fields{"error": err.Error()})
	}
}
