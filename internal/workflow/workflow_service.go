package workflow

import (
	"context"
	"database/sql"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateDefinitionRequest) (DefinitionResponse, error)
	GetAll(ctx context.Context, companyID, module string) ([]DefinitionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DefinitionResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDefinitionRequest) (DefinitionResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	AddStep(ctx context.Context, companyID, id string, req StepRequest) (DefinitionResponse, error)
	RemoveStep(ctx context.Context, companyID, id string, stepNumber int) (DefinitionResponse, error)
	MoveStep(ctx context.Context, companyID, id string, stepNumber int, direction string) (DefinitionResponse, error)
	Import(ctx context.Context, companyID string, data []byte) ([]DefinitionResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	seedPath string
	logger   *zap.Logger
}

// NewService builds the definition service. seedPath is the YAML file
// imported when an import request carries no body; "" disables it.
func NewService(db *sql.DB, repo Repository, seedPath string, logger ...*zap.Logger) Service {
	l := zap.L().Named("workflow.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workflow.service")
	}
	return &service{db: db, repo: repo, seedPath: seedPath, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateDefinitionRequest) (DefinitionResponse, error) {
	s.logger.Debug("create workflow definition requested",
		zap.String("company_id", companyID),
		zap.String("name", req.Name),
		zap.Int("steps", len(req.Steps)),
	)
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DefinitionResponse{}, apperror.ErrInvalidCompanyID
	}

	module := req.Module
	if module == "" {
		module = ModuleLeave
	}
	def := &Definition{
		ID:                   uuid.New(),
		CompanyID:            companyUUID,
		Name:                 req.Name,
		Module:               module,
		Description:          req.Description,
		SLAHours:             req.SLAHours,
		EscalationEnabled:    req.EscalationEnabled,
		EscalationAfterHours: req.EscalationAfterHours,
		IsDefault:            req.IsDefault,
		IsActive:             true,
	}
	def.SetSteps(toSteps(req.Steps))
	if err := def.Validate(); err != nil {
		s.logger.Warn("create workflow definition invalid", zap.Error(err))
		return DefinitionResponse{}, err
	}

	if err := s.persistNew(ctx, def); err != nil {
		return DefinitionResponse{}, err
	}

	s.logger.Info("create workflow definition success", zap.String("workflow_id", def.ID.String()))
	return mapToResponse(*def), nil
}

func (s *service) persistNew(ctx context.Context, def *Definition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("workflow definition begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CreateDefinition(ctx, def); err != nil {
		s.logger.Error("workflow definition persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if def.IsDefault {
		if err := qtx.ClearDefault(ctx, def.CompanyID.String(), def.Module, def.ID.String()); err != nil {
			s.logger.Error("workflow definition clear default failed", zap.Error(err))
			return err
		}
	}
	return tx.Commit()
}

func (s *service) GetAll(ctx context.Context, companyID, module string) ([]DefinitionResponse, error) {
	spec := query.Spec{Filter: map[string]any{}}
	if module != "" {
		spec.Filter["module"] = module
	}
	defs, err := s.repo.FindDefinitions(ctx, companyID, spec)
	if err != nil {
		s.logger.Error("list workflow definitions failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]DefinitionResponse, len(defs))
	for i, d := range defs {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DefinitionResponse, error) {
	def, err := s.repo.FindDefinitionByID(ctx, companyID, id)
	if err != nil {
		return DefinitionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*def), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateDefinitionRequest) (DefinitionResponse, error) {
	return s.mutate(ctx, companyID, id, "update", func(def *Definition) error {
		def.Name = req.Name
		def.Description = req.Description
		def.SLAHours = req.SLAHours
		def.EscalationEnabled = req.EscalationEnabled
		def.EscalationAfterHours = req.EscalationAfterHours
		def.IsDefault = req.IsDefault
		if req.IsActive != nil {
			def.IsActive = *req.IsActive
		}
		if req.Steps != nil {
			def.SetSteps(toSteps(req.Steps))
		}
		return def.Validate()
	})
}

func (s *service) AddStep(ctx context.Context, companyID, id string, req StepRequest) (DefinitionResponse, error) {
	return s.mutate(ctx, companyID, id, "add step", func(def *Definition) error {
		return def.AddStep(req.toStep())
	})
}

func (s *service) RemoveStep(ctx context.Context, companyID, id string, stepNumber int) (DefinitionResponse, error) {
	return s.mutate(ctx, companyID, id, "remove step", func(def *Definition) error {
		return def.RemoveStep(stepNumber)
	})
}

func (s *service) MoveStep(ctx context.Context, companyID, id string, stepNumber int, direction string) (DefinitionResponse, error) {
	return s.mutate(ctx, companyID, id, "move step", func(def *Definition) error {
		return def.MoveStep(stepNumber, direction)
	})
}

// mutate loads a definition, applies fn and saves it in one transaction.
func (s *service) mutate(ctx context.Context, companyID, id, op string, fn func(def *Definition) error) (DefinitionResponse, error) {
	s.logger.Debug("workflow definition "+op+" requested",
		zap.String("company_id", companyID),
		zap.String("workflow_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("workflow definition "+op+" begin tx failed", zap.Error(err))
		return DefinitionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	def, err := qtx.FindDefinitionByID(ctx, companyID, id)
	if err != nil {
		return DefinitionResponse{}, mapRepositoryError(err)
	}

	if err := fn(def); err != nil {
		s.logger.Warn("workflow definition "+op+" rejected",
			zap.String("workflow_id", id),
			zap.Error(err),
		)
		return DefinitionResponse{}, err
	}

	if err := qtx.UpdateDefinition(ctx, def); err != nil {
		s.logger.Error("workflow definition "+op+" persist failed", zap.Error(err))
		return DefinitionResponse{}, mapRepositoryError(err)
	}
	if def.IsDefault {
		if err := qtx.ClearDefault(ctx, companyID, def.Module, def.ID.String()); err != nil {
			return DefinitionResponse{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("workflow definition "+op+" commit failed", zap.Error(err))
		return DefinitionResponse{}, err
	}

	s.logger.Info("workflow definition "+op+" success",
		zap.String("workflow_id", id),
		zap.Int("steps", len(def.StepList())),
	)
	return mapToResponse(*def), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteDefinition(ctx, companyID, id); err != nil {
		s.logger.Error("delete workflow definition failed",
			zap.String("workflow_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	s.logger.Info("delete workflow definition success", zap.String("workflow_id", id))
	return nil
}

// Import creates every definition in a YAML seed document. An empty
// document falls back to the configured seed file.
func (s *service) Import(ctx context.Context, companyID string, data []byte) ([]DefinitionResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, apperror.ErrInvalidCompanyID
	}

	var seeds []Seed
	if len(data) == 0 && s.seedPath != "" {
		seeds, err = LoadSeeds(s.seedPath)
	} else {
		seeds, err = ParseSeeds(data)
	}
	if err != nil {
		s.logger.Warn("import workflow definitions parse failed", zap.Error(err))
		return nil, err
	}

	defs := make([]*Definition, 0, len(seeds))
	for _, seed := range seeds {
		def, err := seed.Definition(companyUUID)
		if err != nil {
			s.logger.Warn("import workflow definition invalid",
				zap.String("name", seed.Name),
				zap.Error(err),
			)
			return nil, err
		}
		defs = append(defs, def)
	}

	resp := make([]DefinitionResponse, 0, len(defs))
	for _, def := range defs {
		if err := s.persistNew(ctx, def); err != nil {
			return resp, err
		}
		resp = append(resp, mapToResponse(*def))
	}

	s.logger.Info("import workflow definitions success",
		zap.String("company_id", companyID),
		zap.Int("count", len(resp)),
	)
	return resp, nil
}

func toSteps(reqs []StepRequest) []Step {
	steps := make([]Step, len(reqs))
	for i, r := range reqs {
		steps[i] = r.toStep()
	}
	return steps
}

func mapToResponse(def Definition) DefinitionResponse {
	steps := def.StepList()
	if steps == nil {
		steps = []Step{}
	}
	return DefinitionResponse{
		ID:                   def.ID.String(),
		CompanyID:            def.CompanyID.String(),
		Name:                 def.Name,
		Module:               def.Module,
		Description:          def.Description,
		Steps:                steps,
		SLAHours:             def.SLAHours,
		EscalationEnabled:    def.EscalationEnabled,
		EscalationAfterHours: def.EscalationAfterHours,
		IsDefault:            def.IsDefault,
		IsActive:             def.IsActive,
	}
}
