package service

import (
	"context"
	"sort"
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

// ThreatAppService defines the threat management use cases.
type ThreatAppService interface {
	Create(ctx context.Context, principal models.Principal, req *dto.CreateThreatRequest) (*dto.ThreatResponse, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateThreatRequest) (*dto.ThreatResponse, error)
	Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.ThreatResponse, error)
	List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.ThreatResponse, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
	BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error)
}

type threatAppService struct {
	threatRepo repository.ThreatRepository
	visibility domainservice.VisibilityResolver
	audit      domainservice.AuditService
	logger     logger.Logger
}

// NewThreatAppService creates the threat application service.
func NewThreatAppService(
	threatRepo repository.ThreatRepository,
	visibility domainservice.VisibilityResolver,
	audit domainservice.AuditService,
	log logger.Logger,
) ThreatAppService {
	return &threatAppService{
		threatRepo: threatRepo,
		visibility: visibility,
		audit:      audit,
		logger:     log.WithComponent("threat_service"),
	}
}

func (s *threatAppService) Create(ctx context.Context, principal models.Principal, req *dto.CreateThreatRequest) (*dto.ThreatResponse, error) {
	threat := models.NewThreat(req.SiteID, principal.UserID, req.Name)
	threat.Category = constants.ThreatCategory(req.Category)
	threat.Description = req.Description
	threat.Probability = constants.Likelihood(req.Probability)
	threat.Impact = constants.Likelihood(req.Impact)
	threat.RiskLevel = constants.RiskLevel(req.RiskLevel)
	threat.MitigationMeasures = req.MitigationMeasures
	if req.Status != "" {
		threat.Status = constants.ThreatStatus(req.Status)
	}

	if err := s.threatRepo.Save(ctx, threat); err != nil {
		s.logger.Error(ctx, "failed to create threat", err, logger.Fields{"name": req.Name})
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to create threat").WithError(err)
	}
	s.logAudit(ctx, principal, constants.ActionCreate, threat.ID.String())
	return dto.NewThreatResponse(threat), nil
}

func (s *threatAppService) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateThreatRequest) (*dto.ThreatResponse, error) {
	threat, err := s.threatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		threat.Name = *req.Name
	}
	if req.Category != nil {
		threat.Category = constants.ThreatCategory(*req.Category)
	}
	if req.Description != nil {
		threat.Description = *req.Description
	}
	if req.Probability != nil {
		threat.Probability = constants.Likelihood(*req.Probability)
	}
	if req.Impact != nil {
		threat.Impact = constants.Likelihood(*req.Impact)
	}
	if req.RiskLevel != nil {
		threat.RiskLevel = constants.RiskLevel(*req.RiskLevel)
	}
	if req.MitigationMeasures != nil {
		threat.MitigationMeasures = *req.MitigationMeasures
	}
	if req.Status != nil {
		threat.Status = constants.ThreatStatus(*req.Status)
	}
	threat.UpdatedAt = time.Now().UTC()

	if err := s.threatRepo.Update(ctx, threat); err != nil {
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to update threat").WithError(err)
	}
	s.logAudit(ctx, principal, constants.ActionEdit, threat.ID.String())
	return dto.NewThreatResponse(threat), nil
}

func (s *threatAppService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.ThreatResponse, error) {
	threat, err := s.threatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewThreatResponse(threat), nil
}

// List returns the visible threats ordered by category (natural,
// technological, social, environmental, then unknown) and by name inside
// each category, unless the caller asks for another ordering.
func (s *threatAppService) List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.ThreatResponse, error) {
	scope, err := s.visibility.Resolve(ctx, principal, models.Selection{
		OrganizationID: q.OrganizationID,
		SiteID:         q.SiteID,
	})
	if err != nil {
		return nil, err
	}

	threats, err := s.threatRepo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ThreatResponse, 0, len(threats))
	for _, threat := range threats {
		out = append(out, dto.NewThreatResponse(threat))
	}
	out = utils.Filter(out, q.Search, func(t *dto.ThreatResponse) []string {
		return []string{t.Name, string(t.Category), t.Description}
	})
	sortThreats(out, q)
	return out, nil
}

func (s *threatAppService) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	if _, err := s.threatRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.threatRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logAudit(ctx, principal, constants.ActionDelete, id.String())
	return nil
}

func (s *threatAppService) BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error) {
	result := runBulkDelete(ctx, ids, s.threatRepo.Delete)
	if result.Failed > 0 {
		return &result, errors.ErrPartialFailure.
			WithMessagef("error eliminando %d amenaza(s)", result.Failed).
			WithDetail("failed", result.Failed)
	}
	return &result, nil
}

func sortThreats(items []*dto.ThreatResponse, q *dto.ListQuery) {
	dir := utils.SortDirection(q.SortDir)
	switch q.SortBy {
	case "name":
		utils.SortByString(items, dir, func(t *dto.ThreatResponse) string { return t.Name })
	case "risk_level":
		utils.SortByString(items, dir, func(t *dto.ThreatResponse) string { return string(t.RiskLevel) })
	case "created_at":
		utils.SortByTime(items, dir, func(t *dto.ThreatResponse) time.Time { return t.CreatedAt })
	default:
		sort.SliceStable(items, func(i, j int) bool {
			ri := utils.ThreatCategoryRank(string(items[i].Category))
			rj := utils.ThreatCategoryRank(string(items[j].Category))
			if ri != rj {
				return ri < rj
			}
			return items[i].Name < items[j].Name
		})
	}
}

func (s *threatAppService) logAudit(ctx context.Context, principal models.Principal, action constants.Action, resourceID string) {
	event := models.NewAuditEvent(principal.UserID, action, constants.EntityThreat, resourceID)
	if err := s.audit.LogEvent(ctx, *event); err != nil {
		s.logger.Warn(ctx, "failed to record audit event", logger.Fields{"error": err.Error()})
	}
}
