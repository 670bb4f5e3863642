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

// SiteAppService defines the site management use cases, including the
// catalog bootstrap that populates a new site.
type SiteAppService interface {
	Create(ctx context.Context, principal models.Principal, req *dto.CreateSiteRequest) (*dto.CreateSiteResponse, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateSiteRequest) (*dto.SiteResponse, error)
	Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.SiteResponse, error)
	List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.SiteResponse, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
	BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error)
	GrantAccess(ctx context.Context, principal models.Principal, userID, siteID uuid.UUID) error
	RevokeAccess(ctx context.Context, principal models.Principal, userID, siteID uuid.UUID) error
}

type siteAppService struct {
	siteRepo   repository.SiteRepository
	catalog    domainservice.CatalogMatcher
	generator  domainservice.AIGenerator
	visibility domainservice.VisibilityResolver
	audit      domainservice.AuditService
	logger     logger.Logger
}

// NewSiteAppService creates the site application service.
func NewSiteAppService(
	siteRepo repository.SiteRepository,
	catalog domainservice.CatalogMatcher,
	generator domainservice.AIGenerator,
	visibility domainservice.VisibilityResolver,
	audit domainservice.AuditService,
	log logger.Logger,
) SiteAppService {
	return &siteAppService{
		siteRepo:   siteRepo,
		catalog:    catalog,
		generator:  generator,
		visibility: visibility,
		audit:      audit,
		logger:     log.WithComponent("site_service"),
	}
}

// Create persists the site first and then runs the bootstrap. The site
// creation outcome is independent of the bootstrap outcome: a catalog or AI
// failure is downgraded to a warning on the already-created site, never a
// rollback.
func (s *siteAppService) Create(ctx context.Context, principal models.Principal, req *dto.CreateSiteRequest) (*dto.CreateSiteResponse, error) {
	site := models.NewSite(req.OrganizationID, principal.UserID, req.Name)
	site.IndustryType = req.IndustryType
	site.LocationCountry = req.LocationCountry
	site.LocationState = req.LocationState
	site.LocationCity = req.LocationCity
	site.LocationZone = req.LocationZone
	site.LocationAddress = req.LocationAddress
	site.LocationType = constants.LocationType(req.LocationType)
	site.RiskZoneClassification = constants.RiskZone(req.RiskZoneClassification)

	if err := s.siteRepo.Save(ctx, site); err != nil {
		s.logger.Error(ctx, "failed to create site", err, logger.Fields{"name": req.Name})
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to create site").WithError(err)
	}
	s.logAudit(ctx, principal, constants.ActionCreate, site)

	report := s.bootstrap(ctx, principal, site)
	return &dto.CreateSiteResponse{
		Site:      dto.NewSiteResponse(site),
		Bootstrap: report,
	}, nil
}

// bootstrap tries the catalog match first and falls back to AI generation
// only when the catalog produced nothing at all. The AI call happens at most
// once per site creation.
func (s *siteAppService) bootstrap(ctx context.Context, principal models.Principal, site *models.Site) *dto.BootstrapReport {
	assets, threats, err := s.catalog.Match(ctx, site.ID)
	if err != nil {
		s.logger.Warn(ctx, "catalog match failed", logger.Fields{
			"site_id": site.ID.String(), "error": err.Error(),
		})
		return &dto.BootstrapReport{
			Path:    constants.BootstrapFailed,
			Warning: "catalog match failed: " + err.Error(),
		}
	}

	if assets > 0 || threats > 0 {
		return &dto.BootstrapReport{
			Path:         constants.BootstrapCatalog,
			AssetsAdded:  assets,
			ThreatsAdded: threats,
		}
	}

	result, err := s.generator.Generate(ctx, domainservice.GenerationRequest{
		SiteID:          site.ID,
		SiteName:        site.Name,
		IndustryType:    site.IndustryType,
		LocationType:    string(site.LocationType),
		LocationCountry: site.LocationCountry,
		UserID:          principal.UserID,
	})
	if err != nil {
		s.logger.Warn(ctx, "ai generation failed", logger.Fields{
			"site_id": site.ID.String(), "error": err.Error(),
		})
		return &dto.BootstrapReport{
			Path:    constants.BootstrapFailed,
			Warning: "ai generation failed: " + err.Error(),
		}
	}
	if !result.Success {
		return &dto.BootstrapReport{
			Path:    constants.BootstrapFailed,
			Warning: "ai generation reported no result",
		}
	}
	if result.AssetsAdded == 0 && result.ThreatsAdded == 0 {
		return &dto.BootstrapReport{Path: constants.BootstrapNone}
	}
	return &dto.BootstrapReport{
		Path:         constants.BootstrapAIGenerated,
		AssetsAdded:  result.AssetsAdded,
		ThreatsAdded: result.ThreatsAdded,
	}
}

func (s *siteAppService) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateSiteRequest) (*dto.SiteResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.IndustryType != nil {
		site.IndustryType = *req.IndustryType
	}
	if req.LocationCountry != nil {
		site.LocationCountry = *req.LocationCountry
	}
	if req.LocationState != nil {
		site.LocationState = *req.LocationState
	}
	if req.LocationCity != nil {
		site.LocationCity = *req.LocationCity
	}
	if req.LocationZone != nil {
		site.LocationZone = *req.LocationZone
	}
	if req.LocationAddress != nil {
		site.LocationAddress = *req.LocationAddress
	}
	if req.LocationType != nil {
		site.LocationType = constants.LocationType(*req.LocationType)
	}
	if req.RiskZoneClassification != nil {
		site.RiskZoneClassification = constants.RiskZone(*req.RiskZoneClassification)
	}

	if err := s.siteRepo.Update(ctx, site); err != nil {
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to update site").WithError(err)
	}
	s.logAudit(ctx, principal, constants.ActionEdit, site)
	return dto.NewSiteResponse(site), nil
}

func (s *siteAppService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.SiteResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSiteResponse(site), nil
}

func (s *siteAppService) List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.SiteResponse, error) {
	scope, err := s.visibility.Resolve(ctx, principal, models.Selection{
		OrganizationID: q.OrganizationID,
		SiteID:         q.SiteID,
	})
	if err != nil {
		return nil, err
	}

	sites, err := s.siteRepo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SiteResponse, 0, len(sites))
	for _, site := range sites {
		out = append(out, dto.NewSiteResponse(site))
	}
	out = utils.Filter(out, q.Search, func(site *dto.SiteResponse) []string {
		return []string{site.Name, site.IndustryType, site.LocationCity, site.LocationCountry}
	})
	sortSites(out, q)
	return out, nil
}

func (s *siteAppService) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.siteRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logAudit(ctx, principal, constants.ActionDelete, site)
	return nil
}

func (s *siteAppService) BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error) {
	result := runBulkDelete(ctx, ids, s.siteRepo.Delete)
	if result.Failed > 0 {
		return &result, errors.ErrPartialFailure.
			WithMessagef("error eliminando %d sitio(s)", result.Failed).
			WithDetail("failed", result.Failed)
	}
	return &result, nil
}

func (s *siteAppService) GrantAccess(ctx context.Context, principal models.Principal, userID, siteID uuid.UUID) error {
	return s.siteRepo.GrantAccess(ctx, userID, siteID)
}

func (s *siteAppService) RevokeAccess(ctx context.Context, principal models.Principal, userID, siteID uuid.UUID) error {
	return s.siteRepo.RevokeAccess(ctx, userID, siteID)
}

func sortSites(items []*dto.SiteResponse, q *dto.ListQuery) {
	dir := utils.SortDirection(q.SortDir)
	switch q.SortBy {
	case "created_at":
		utils.SortByTime(items, dir, func(site *dto.SiteResponse) time.Time { return site.CreatedAt })
	case "industry_type":
		utils.SortByString(items, dir, func(site *dto.SiteResponse) string { return site.IndustryType })
	default:
		utils.SortByString(items, dir, func(site *dto.SiteResponse) string { return site.Name })
	}
}

func (s *siteAppService) logAudit(ctx context.Context, principal models.Principal, action constants.Action, site *models.Site) {
	event := models.NewAuditEvent(principal.UserID, action, constants.EntitySite, site.ID.String()).
		WithOrganization(site.OrganizationID)
	if err := s.audit.LogEvent(ctx, *event); err != nil {
		s.logger.Warn(ctx, "failed to record audit event", logger.Fields{"error": err.Error()})
	}
}
