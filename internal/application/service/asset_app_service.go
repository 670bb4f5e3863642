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

// AssetAppService defines the asset management use cases.
type AssetAppService interface {
	Create(ctx context.Context, principal models.Principal, req *dto.CreateAssetRequest) (*dto.AssetResponse, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateAssetRequest) (*dto.AssetResponse, error)
	Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.AssetResponse, error)
	List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.AssetResponse, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
	BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error)
}

type assetAppService struct {
	assetRepo    repository.AssetRepository
	scenarioRepo repository.ScenarioRepository
	visibility   domainservice.VisibilityResolver
	audit        domainservice.AuditService
	logger       logger.Logger
}

// NewAssetAppService creates the asset application service.
func NewAssetAppService(
	assetRepo repository.AssetRepository,
	scenarioRepo repository.ScenarioRepository,
	visibility domainservice.VisibilityResolver,
	audit domainservice.AuditService,
	log logger.Logger,
) AssetAppService {
	return &assetAppService{
		assetRepo:    assetRepo,
		scenarioRepo: scenarioRepo,
		visibility:   visibility,
		audit:        audit,
		logger:       log.WithComponent("asset_service"),
	}
}

func (s *assetAppService) Create(ctx context.Context, principal models.Principal, req *dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	asset := models.NewAsset(req.SiteID, principal.UserID, req.Name)
	asset.Type = req.Type
	asset.Description = req.Description
	asset.Location = req.Location
	asset.Owner = req.Owner
	if req.Value != "" {
		asset.Value = constants.AssetValue(req.Value)
	}
	if req.Status != "" {
		asset.Status = constants.AssetStatus(req.Status)
	}

	if err := s.assetRepo.Save(ctx, asset); err != nil {
		s.logger.Error(ctx, "failed to create asset", err, logger.Fields{"name": req.Name})
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to create asset").WithError(err)
	}
	s.logAudit(ctx, principal, constants.ActionCreate, asset.ID.String())
	return dto.NewAssetResponse(asset), nil
}

func (s *assetAppService) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Type != nil {
		asset.Type = *req.Type
	}
	if req.Description != nil {
		asset.Description = *req.Description
	}
	if req.Value != nil {
		asset.Value = constants.AssetValue(*req.Value)
	}
	if req.Location != nil {
		asset.Location = *req.Location
	}
	if req.Owner != nil {
		asset.Owner = *req.Owner
	}
	if req.Status != nil {
		asset.Status = constants.AssetStatus(*req.Status)
	}
	asset.UpdatedAt = time.Now().UTC()

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to update asset").WithError(err)
	}
	s.logAudit(ctx, principal, constants.ActionEdit, asset.ID.String())
	return dto.NewAssetResponse(asset), nil
}

func (s *assetAppService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.AssetResponse, error) {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAssetResponse(asset)
	if count, err := s.scenarioRepo.CountByAsset(ctx, asset.SiteID, asset.ID); err == nil {
		resp.ScenarioCount = count
	}
	return resp, nil
}

// List returns the visible assets grouped by display category (Personas,
// Bienes, Procesos, Información, then unmatched types) and sorted by name
// inside each group, unless the caller asks for another ordering.
func (s *assetAppService) List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.AssetResponse, error) {
	scope, err := s.visibility.Resolve(ctx, principal, models.Selection{
		OrganizationID: q.OrganizationID,
		SiteID:         q.SiteID,
	})
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.AssetResponse, 0, len(assets))
	for _, asset := range assets {
		out = append(out, dto.NewAssetResponse(asset))
	}
	out = utils.Filter(out, q.Search, func(a *dto.AssetResponse) []string {
		return []string{a.Name, a.Type, a.Location, a.Owner}
	})
	sortAssets(out, q)
	return out, nil
}

func (s *assetAppService) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	if _, err := s.assetRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.assetRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logAudit(ctx, principal, constants.ActionDelete, id.String())
	return nil
}

func (s *assetAppService) BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error) {
	result := runBulkDelete(ctx, ids, s.assetRepo.Delete)
	if result.Failed > 0 {
		return &result, errors.ErrPartialFailure.
			WithMessagef("error eliminando %d activo(s)", result.Failed).
			WithDetail("failed", result.Failed)
	}
	return &result, nil
}

func sortAssets(items []*dto.AssetResponse, q *dto.ListQuery) {
	dir := utils.SortDirection(q.SortDir)
	switch q.SortBy {
	case "name":
		utils.SortByString(items, dir, func(a *dto.AssetResponse) string { return a.Name })
	case "created_at":
		utils.SortByTime(items, dir, func(a *dto.AssetResponse) time.Time { return a.CreatedAt })
	default:
		sort.SliceStable(items, func(i, j int) bool {
			ri := utils.AssetCategoryRank(items[i].Type)
			rj := utils.AssetCategoryRank(items[j].Type)
			if ri != rj {
				return ri < rj
			}
			return items[i].Name < items[j].Name
		})
	}
}

func (s *assetAppService) logAudit(ctx context.Context, principal models.Principal, action constants.Action, resourceID string) {
	event := models.NewAuditEvent(principal.UserID, action, constants.EntityAsset, resourceID)
	if err := s.audit.LogEvent(ctx, *event); err != nil {
		s.logger.Warn(ctx, "failed to record audit event", logger.Fields{"error": err.Error()})
	}
}
