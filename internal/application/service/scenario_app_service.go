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

// ScenarioAppService defines the scenario use cases, including the pairing
// wizard that couples an asset with the site's threats.
type ScenarioAppService interface {
	PairingOptions(ctx context.Context, principal models.Principal, req *dto.PairingOptionsRequest) (*dto.PairingOptionsResponse, error)
	CreatePairs(ctx context.Context, principal models.Principal, req *dto.CreateScenariosRequest) (*dto.CreateScenariosResponse, error)
	UpdateStatus(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateScenarioRequest) (*dto.ScenarioResponse, error)
	Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.ScenarioResponse, error)
	List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.ScenarioResponse, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error
	BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error)
}

type scenarioAppService struct {
	scenarioRepo repository.ScenarioRepository
	threatRepo   repository.ThreatRepository
	visibility   domainservice.VisibilityResolver
	audit        domainservice.AuditService
	logger       logger.Logger
}

// NewScenarioAppService creates the scenario application service.
func NewScenarioAppService(
	scenarioRepo repository.ScenarioRepository,
	threatRepo repository.ThreatRepository,
	visibility domainservice.VisibilityResolver,
	audit domainservice.AuditService,
	log logger.Logger,
) ScenarioAppService {
	return &scenarioAppService{
		scenarioRepo: scenarioRepo,
		threatRepo:   threatRepo,
		visibility:   visibility,
		audit:        audit,
		logger:       log.WithComponent("scenario_service"),
	}
}

// PairingOptions lists every threat of the site with its paired flag for the
// given asset. Threats already paired stay visible so the wizard can show
// them disabled instead of hiding them.
func (s *scenarioAppService) PairingOptions(ctx context.Context, principal models.Principal, req *dto.PairingOptionsRequest) (*dto.PairingOptionsResponse, error) {
	threats, err := s.threatRepo.FindBySite(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	paired, err := s.scenarioRepo.PairedThreatIDs(ctx, req.SiteID, req.AssetID)
	if err != nil {
		return nil, err
	}

	pairedSet := make(map[uuid.UUID]struct{}, len(paired))
	for _, id := range paired {
		pairedSet[id] = struct{}{}
	}

	options := make([]dto.ThreatOption, 0, len(threats))
	selectable := 0
	for _, threat := range threats {
		_, isPaired := pairedSet[threat.ID]
		if !isPaired {
			selectable++
		}
		options = append(options, dto.ThreatOption{
			ThreatID:      threat.ID,
			Name:          threat.Name,
			Category:      threat.Category,
			RiskLevel:     threat.RiskLevel,
			AlreadyPaired: isPaired,
		})
	}
	sort.SliceStable(options, func(i, j int) bool {
		ri := utils.ThreatCategoryRank(string(options[i].Category))
		rj := utils.ThreatCategoryRank(string(options[j].Category))
		if ri != rj {
			return ri < rj
		}
		return options[i].Name < options[j].Name
	})

	return &dto.PairingOptionsResponse{
		SiteID:          req.SiteID,
		AssetID:         req.AssetID,
		Threats:         options,
		SelectableCount: selectable,
		PairedCount:     len(options) - selectable,
	}, nil
}

// CreatePairs commits the wizard selection, one scenario per threat. Threats
// already paired with the asset are counted as skipped, not failed, so
// re-submitting a selection is idempotent. Insert failures are aggregated and
// never abort the rest of the batch.
func (s *scenarioAppService) CreatePairs(ctx context.Context, principal models.Principal, req *dto.CreateScenariosRequest) (*dto.CreateScenariosResponse, error) {
	existing, err := s.scenarioRepo.PairedThreatIDs(ctx, req.SiteID, req.AssetID)
	if err != nil {
		return nil, err
	}
	existingSet := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(req.ThreatIDs))
	scenarios := make([]*models.Scenario, 0, len(req.ThreatIDs))
	skipped := 0
	for _, threatID := range req.ThreatIDs {
		if _, dup := seen[threatID]; dup {
			skipped++
			continue
		}
		seen[threatID] = struct{}{}
		if _, ok := existingSet[threatID]; ok {
			skipped++
			continue
		}
		scenarios = append(scenarios, models.NewScenario(req.SiteID, req.AssetID, threatID, principal.UserID))
	}

	failed := 0
	if len(scenarios) > 0 {
		failed, err = s.scenarioRepo.SaveBatch(ctx, scenarios)
		if err != nil {
			return nil, errors.ErrDatabaseOperation.WithMessage("failed to create scenarios").WithError(err)
		}
	}
	created := len(scenarios) - failed
	if created > 0 {
		s.logAudit(ctx, principal, constants.ActionCreate, req.SiteID.String())
	}

	refreshed, err := s.scenarioRepo.PairedThreatIDs(ctx, req.SiteID, req.AssetID)
	if err != nil {
		s.logger.Warn(ctx, "failed to refresh paired threats", logger.Fields{
			"site_id": req.SiteID.String(), "error": err.Error(),
		})
		refreshed = existing
	}

	var count int64
	if req.AssetID != nil {
		count, err = s.scenarioRepo.CountByAsset(ctx, req.SiteID, *req.AssetID)
		if err != nil {
			count = 0
		}
	}

	resp := &dto.CreateScenariosResponse{
		Requested:       len(req.ThreatIDs),
		Created:         created,
		Skipped:         skipped,
		Failed:          failed,
		PairedThreatIDs: refreshed,
		ScenarioCount:   count,
	}
	if failed > 0 {
		return resp, errors.ErrPartialFailure.
			WithMessagef("error creando %d escenario(s)", failed).
			WithDetail("failed", failed)
	}
	return resp, nil
}

func (s *scenarioAppService) UpdateStatus(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateScenarioRequest) (*dto.ScenarioResponse, error) {
	scenario, err := s.scenarioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	scenario.Status = constants.ScenarioStatus(req.Status)
	scenario.UpdatedAt = time.Now().UTC()
	if err := s.scenarioRepo.Update(ctx, scenario); err != nil {
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to update scenario").WithError(err)
	}
	s.logAudit(ctx, principal, constants.ActionEdit, scenario.ID.String())
	return dto.NewScenarioResponse(scenario), nil
}

func (s *scenarioAppService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.ScenarioResponse, error) {
	scenario, err := s.scenarioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewScenarioResponse(scenario), nil
}

func (s *scenarioAppService) List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.ScenarioResponse, error) {
	scope, err := s.visibility.Resolve(ctx, principal, models.Selection{
		OrganizationID: q.OrganizationID,
		SiteID:         q.SiteID,
	})
	if err != nil {
		return nil, err
	}

	scenarios, err := s.scenarioRepo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ScenarioResponse, 0, len(scenarios))
	for _, scenario := range scenarios {
		out = append(out, dto.NewScenarioResponse(scenario))
	}
	dir := utils.SortDirection(q.SortDir)
	switch q.SortBy {
	case "status":
		utils.SortByString(out, dir, func(s *dto.ScenarioResponse) string { return string(s.Status) })
	default:
		utils.SortByTime(out, dir, func(s *dto.ScenarioResponse) time.Time { return s.CreatedAt })
	}
	return out, nil
}

func (s *scenarioAppService) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	scenario, err := s.scenarioRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.scenarioRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logAudit(ctx, principal, constants.ActionDelete, scenario.ID.String())
	return nil
}

func (s *scenarioAppService) BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error) {
	result := runBulkDelete(ctx, ids, s.scenarioRepo.Delete)
	if result.Failed > 0 {
		return &result, errors.ErrPartialFailure.
			WithMessagef("error eliminando %d escenario(s)", result.Failed).
			WithDetail("failed", result.Failed)
	}
	return &result, nil
}

func (s *scenarioAppService) logAudit(ctx context.Context, principal models.Principal, action constants.Action, resourceID string) {
	event := models.NewAuditEvent(principal.UserID, action, constants.EntityScenario, resourceID)
	if err := s.audit.LogEvent(ctx, *event); err != nil {
		s.logger.Warn(ctx, "failed to record audit event", logger.Fields{"error": err.Error()})
	}
}
