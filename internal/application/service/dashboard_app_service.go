package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/domain/repository"
	domainservice "github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/logger"
)

// DashboardAppService aggregates per-entity counts within the caller's
// visibility scope.
type DashboardAppService interface {
	Summary(ctx context.Context, principal models.Principal, sel models.Selection) (*dto.DashboardSummary, error)
}

type dashboardAppService struct {
	orgRepo      repository.OrganizationRepository
	siteRepo     repository.SiteRepository
	userRepo     repository.UserRepository
	assetRepo    repository.AssetRepository
	threatRepo   repository.ThreatRepository
	scenarioRepo repository.ScenarioRepository
	visibility   domainservice.VisibilityResolver
	logger       logger.Logger
}

// NewDashboardAppService creates the dashboard application service.
func NewDashboardAppService(
	orgRepo repository.OrganizationRepository,
	siteRepo repository.SiteRepository,
	userRepo repository.UserRepository,
	assetRepo repository.AssetRepository,
	threatRepo repository.ThreatRepository,
	scenarioRepo repository.ScenarioRepository,
	visibility domainservice.VisibilityResolver,
	log logger.Logger,
) DashboardAppService {
	return &dashboardAppService{
		orgRepo:      orgRepo,
		siteRepo:     siteRepo,
		userRepo:     userRepo,
		assetRepo:    assetRepo,
		threatRepo:   threatRepo,
		scenarioRepo: scenarioRepo,
		visibility:   visibility,
		logger:       log.WithComponent("dashboard_service"),
	}
}

// Summary runs the six counts concurrently against the resolved scope.
func (s *dashboardAppService) Summary(ctx context.Context, principal models.Principal, sel models.Selection) (*dto.DashboardSummary, error) {
	scope, err := s.visibility.Resolve(ctx, principal, sel)
	if err != nil {
		return nil, err
	}

	var summary dto.DashboardSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.orgRepo.Count(gctx, scope)
		summary.Organizations = n
		return err
	})
	g.Go(func() error {
		n, err := s.siteRepo.Count(gctx, scope)
		summary.Sites = n
		return err
	})
	g.Go(func() error {
		n, err := s.userRepo.Count(gctx, scope)
		summary.Users = n
		return err
	})
	g.Go(func() error {
		n, err := s.assetRepo.Count(gctx, scope)
		summary.Assets = n
		return err
	})
	g.Go(func() error {
		n, err := s.threatRepo.Count(gctx, scope)
		summary.Threats = n
		return err
	})
	g.Go(func() error {
		n, err := s.scenarioRepo.Count(gctx, scope)
		summary.Scenarios = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}
