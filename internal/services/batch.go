package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/batch"
	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/types"
)

// BatchService applies a parsed batch document. The whole run executes in a
// single transaction: item-level problems (bad lookups, dependency
// conflicts) become warnings or errors in the summary and the batch
// continues, while storage failures abort and roll back everything.
type BatchService interface {
	Apply(ctx context.Context, result *batch.ParseResult) (*batch.Summary, error)
}

type batchService struct {
	db             *gorm.DB
	log            *logger.Logger
	featureRepo    repos.ProductFeatureRepo
	capabilityRepo repos.CapabilityRepo
	functionRepo   repos.TechnicalFunctionRepo
	assessmentRepo repos.ReadinessAssessmentRepo
	platformRepo   repos.VehiclePlatformRepo
	oddRepo        repos.ODDRepo
	envRepo        repos.EnvironmentRepo
	trailerRepo    repos.TrailerRepo
	levelRepo      repos.ReadinessLevelRepo
	now            func() time.Time
}

func NewBatchService(
	db *gorm.DB,
	baseLog *logger.Logger,
	featureRepo repos.ProductFeatureRepo,
	capabilityRepo repos.CapabilityRepo,
	functionRepo repos.TechnicalFunctionRepo,
	assessmentRepo repos.ReadinessAssessmentRepo,
	platformRepo repos.VehiclePlatformRepo,
	oddRepo repos.ODDRepo,
	envRepo repos.EnvironmentRepo,
	trailerRepo repos.TrailerRepo,
	levelRepo repos.ReadinessLevelRepo,
) BatchService {
	serviceLog := baseLog.With("service", "BatchService")
	return &batchService{
		db:             db,
		log:            serviceLog,
		featureRepo:    featureRepo,
		capabilityRepo: capabilityRepo,
		functionRepo:   functionRepo,
		assessmentRepo: assessmentRepo,
		platformRepo:   platformRepo,
		oddRepo:        oddRepo,
		envRepo:        envRepo,
		trailerRepo:    trailerRepo,
		levelRepo:      levelRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *batchService) Apply(ctx context.Context, result *batch.ParseResult) (*batch.Summary, error) {
	summary := &batch.Summary{}
	for _, issue := range result.Issues {
		summary.Errorf("%s", issue)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range result.Ops {
			if err := s.applyOne(ctx, tx, &result.Ops[i], summary); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("Batch aborted, all changes rolled back", "error", err)
		return summary, err
	}
	s.log.Info("Batch applied", "summary", summary.String())
	return summary, nil
}

func (s *batchService) applyOne(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	switch op.Entity {
	case batch.EntityProductFeature:
		return s.applyProductFeature(ctx, tx, op, summary)
	case batch.EntityCapability:
		return s.applyCapability(ctx, tx, op, summary)
	case batch.EntityTechnicalFunction:
		return s.applyTechnicalFunction(ctx, tx, op, summary)
	case batch.EntityVehiclePlatform, batch.EntityODD, batch.EntityEnvironment, batch.EntityTrailer, batch.EntityReadinessLevel:
		return s.applyConfiguration(ctx, tx, op, summary)
	default:
		summary.Errorf("%sunknown entity type %q", refPrefix(op), op.Entity)
		return nil
	}
}

func refPrefix(op *batch.Operation) string {
	if op.Ref == "" {
		return ""
	}
	return op.Ref + ": "
}

// --- product features ---

func (s *batchService) applyProductFeature(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	feature, err := s.featureRepo.GetByNameOrLabel(ctx, tx, op.Name)
	if err != nil {
		return err
	}

	switch op.Kind {
	case batch.OpCreate:
		if feature != nil {
			summary.Warnf("%sproduct feature %q already exists, skipping creation", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		feature = &types.ProductFeature{Name: op.Name}
		s.applyFeatureFields(feature, &op.Fields)
		if err := s.featureRepo.Create(ctx, tx, feature); err != nil {
			return err
		}
		if op.Fields.Capabilities != nil {
			caps := s.resolveCapabilities(ctx, tx, *op.Fields.Capabilities, op, summary)
			if err := s.featureRepo.ReplaceCapabilities(ctx, tx, feature, caps); err != nil {
				return err
			}
		}
		summary.Created++
		return nil

	case batch.OpUpdate:
		if feature == nil {
			summary.Warnf("%sproduct feature %q not found", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		s.applyFeatureFields(feature, &op.Fields)
		if err := s.featureRepo.Save(ctx, tx, feature); err != nil {
			return err
		}
		if op.Fields.Capabilities != nil {
			caps := s.resolveCapabilities(ctx, tx, *op.Fields.Capabilities, op, summary)
			if err := s.featureRepo.ReplaceCapabilities(ctx, tx, feature, caps); err != nil {
				return err
			}
		}
		if op.Cascades() {
			capIDs := make([]uint, 0, len(feature.Capabilities))
			for _, cap := range feature.Capabilities {
				capIDs = append(capIDs, cap.ID)
			}
			functionIDs, err := s.capabilityRepo.ListTechnicalFunctionIDs(ctx, tx, capIDs)
			if err != nil {
				return err
			}
			if err := s.cascade(ctx, tx, op, functionIDs, summary); err != nil {
				return err
			}
		}
		summary.Updated++
		return nil

	case batch.OpDelete:
		if feature == nil {
			summary.Warnf("%sproduct feature %q not found for deletion", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		links, err := s.featureRepo.CountCapabilityLinks(ctx, tx, feature.ID)
		if err != nil {
			return err
		}
		if links > 0 && !op.ForceDelete {
			summary.Errorf("%scannot delete product feature %q: has %d capabilities (use force_delete to override)", refPrefix(op), op.Name, links)
			return nil
		}
		if err := s.featureRepo.Delete(ctx, tx, feature); err != nil {
			return err
		}
		summary.Deleted++
		return nil
	}
	return nil
}

func (s *batchService) applyFeatureFields(feature *types.ProductFeature, f *batch.EntityFields) {
	applyString(&feature.Description, f.Description)
	applyString(&feature.Label, f.Label)
	applyString(&feature.SwimlaneDecorators, f.SwimlaneDecorators)
	applyString(&feature.TMOS, f.TMOS)
	applyString(&feature.ActiveFlag, f.ActiveFlag)
	applyString(&feature.DocumentURL, f.DocumentURL)
	if f.Progress != nil {
		feature.ProgressRelativeToTMOS = *f.Progress
	}
	if f.VehiclePlatformID != nil {
		feature.VehiclePlatformID = f.VehiclePlatformID
	}
	if f.PlannedStartDate != nil {
		feature.PlannedStartDate = f.PlannedStartDate
	}
	if f.PlannedEndDate != nil {
		feature.PlannedEndDate = f.PlannedEndDate
	}
}

// --- capabilities ---

func (s *batchService) applyCapability(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	capability, err := s.capabilityRepo.GetByNameOrLabel(ctx, tx, op.Name)
	if err != nil {
		return err
	}

	switch op.Kind {
	case batch.OpCreate:
		if capability != nil {
			summary.Warnf("%scapability %q already exists, skipping creation", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		capability = &types.Capability{Name: op.Name}
		s.applyCapabilityFields(capability, &op.Fields)
		if err := s.capabilityRepo.Create(ctx, tx, capability); err != nil {
			return err
		}
		if err := s.linkCapability(ctx, tx, capability, op, summary); err != nil {
			return err
		}
		summary.Created++
		return nil

	case batch.OpUpdate:
		if capability == nil {
			summary.Warnf("%scapability %q not found", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		s.applyCapabilityFields(capability, &op.Fields)
		if err := s.capabilityRepo.Save(ctx, tx, capability); err != nil {
			return err
		}
		if err := s.linkCapability(ctx, tx, capability, op, summary); err != nil {
			return err
		}
		if op.Cascades() {
			functionIDs, err := s.capabilityRepo.ListTechnicalFunctionIDs(ctx, tx, []uint{capability.ID})
			if err != nil {
				return err
			}
			if err := s.cascade(ctx, tx, op, functionIDs, summary); err != nil {
				return err
			}
		}
		summary.Updated++
		return nil

	case batch.OpDelete:
		if capability == nil {
			summary.Warnf("%scapability %q not found for deletion", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		functionLinks, featureLinks, err := s.capabilityRepo.CountLinks(ctx, tx, capability.ID)
		if err != nil {
			return err
		}
		if (functionLinks > 0 || featureLinks > 0) && !op.ForceDelete {
			summary.Errorf("%scannot delete capability %q: has %d technical functions, %d product features (use force_delete to override)",
				refPrefix(op), op.Name, functionLinks, featureLinks)
			return nil
		}
		if err := s.capabilityRepo.Delete(ctx, tx, capability); err != nil {
			return err
		}
		summary.Deleted++
		return nil
	}
	return nil
}

func (s *batchService) applyCapabilityFields(capability *types.Capability, f *batch.EntityFields) {
	applyString(&capability.Label, f.Label)
	applyString(&capability.SuccessCriteria, f.SuccessCriteria)
	applyString(&capability.TMOS, f.TMOS)
	applyString(&capability.DocumentURL, f.DocumentURL)
	if f.Progress != nil {
		capability.ProgressRelativeToTMOS = *f.Progress
	}
	if f.VehiclePlatformID != nil {
		capability.VehiclePlatformID = f.VehiclePlatformID
	}
	if f.PlannedStartDate != nil {
		capability.PlannedStartDate = f.PlannedStartDate
	}
	if f.PlannedEndDate != nil {
		capability.PlannedEndDate = f.PlannedEndDate
	}
}

func (s *batchService) linkCapability(ctx context.Context, tx *gorm.DB, capability *types.Capability, op *batch.Operation, summary *batch.Summary) error {
	if op.Fields.TechnicalFunctions != nil {
		funcs := make([]*types.TechnicalFunction, 0, len(*op.Fields.TechnicalFunctions))
		for _, ref := range *op.Fields.TechnicalFunctions {
			fn, err := s.functionRepo.GetByNameOrLabel(ctx, tx, ref)
			if err != nil {
				return err
			}
			if fn == nil {
				summary.Warnf("%stechnical function %q not found, skipping link", refPrefix(op), ref)
				continue
			}
			funcs = append(funcs, fn)
		}
		if err := s.capabilityRepo.ReplaceTechnicalFunctions(ctx, tx, capability, funcs); err != nil {
			return err
		}
	}
	if op.Fields.ProductFeatures != nil {
		features := make([]*types.ProductFeature, 0, len(*op.Fields.ProductFeatures))
		for _, ref := range *op.Fields.ProductFeatures {
			pf, err := s.featureRepo.GetByNameOrLabel(ctx, tx, ref)
			if err != nil {
				return err
			}
			if pf == nil {
				summary.Warnf("%sproduct feature %q not found, skipping link", refPrefix(op), ref)
				continue
			}
			features = append(features, pf)
		}
		if err := s.capabilityRepo.ReplaceProductFeatures(ctx, tx, capability, features); err != nil {
			return err
		}
	}
	return nil
}

// --- technical functions ---

func (s *batchService) applyTechnicalFunction(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	function, err := s.functionRepo.GetByNameOrLabel(ctx, tx, op.Name)
	if err != nil {
		return err
	}

	switch op.Kind {
	case batch.OpCreate:
		if function != nil {
			summary.Warnf("%stechnical function %q already exists, skipping creation", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		function = &types.TechnicalFunction{Name: op.Name}
		s.applyFunctionFields(function, &op.Fields)
		if err := s.functionRepo.Create(ctx, tx, function); err != nil {
			return err
		}
		if op.Fields.Capabilities != nil {
			caps := s.resolveCapabilities(ctx, tx, *op.Fields.Capabilities, op, summary)
			if err := s.functionRepo.ReplaceCapabilities(ctx, tx, function, caps); err != nil {
				return err
			}
		}
		summary.Created++
		return nil

	case batch.OpUpdate:
		if function == nil {
			summary.Warnf("%stechnical function %q not found", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		s.applyFunctionFields(function, &op.Fields)
		if err := s.functionRepo.Save(ctx, tx, function); err != nil {
			return err
		}
		if op.Fields.Capabilities != nil {
			caps := s.resolveCapabilities(ctx, tx, *op.Fields.Capabilities, op, summary)
			if err := s.functionRepo.ReplaceCapabilities(ctx, tx, function, caps); err != nil {
				return err
			}
		}
		if op.Cascades() {
			if err := s.cascade(ctx, tx, op, []uint{function.ID}, summary); err != nil {
				return err
			}
		}
		summary.Updated++
		return nil

	case batch.OpDelete:
		if function == nil {
			summary.Warnf("%stechnical function %q not found for deletion", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		assessments, err := s.assessmentRepo.CountByFunctionID(ctx, tx, function.ID)
		if err != nil {
			return err
		}
		if assessments > 0 && !op.ForceDelete {
			summary.Errorf("%scannot delete technical function %q: has %d readiness assessments (use force_delete to override)",
				refPrefix(op), op.Name, assessments)
			return nil
		}
		if assessments > 0 {
			if err := s.assessmentRepo.DeleteByFunctionID(ctx, tx, function.ID); err != nil {
				return err
			}
		}
		if err := s.functionRepo.Delete(ctx, tx, function); err != nil {
			return err
		}
		summary.Deleted++
		return nil
	}
	return nil
}

func (s *batchService) applyFunctionFields(function *types.TechnicalFunction, f *batch.EntityFields) {
	applyString(&function.Description, f.Description)
	applyString(&function.Label, f.Label)
	applyString(&function.SuccessCriteria, f.SuccessCriteria)
	applyString(&function.TMOS, f.TMOS)
	applyString(&function.DocumentURL, f.DocumentURL)
	if f.Progress != nil {
		function.ProgressRelativeToTMOS = *f.Progress
	}
	if f.VehiclePlatformID != nil {
		function.VehiclePlatformID = f.VehiclePlatformID
	}
	if f.PlannedStartDate != nil {
		function.PlannedStartDate = f.PlannedStartDate
	}
	if f.PlannedEndDate != nil {
		function.PlannedEndDate = f.PlannedEndDate
	}
}

// --- cascade ---

// cascade pushes a due-date/target-TRL change down to every readiness
// assessment owned by the given technical functions. Function ids arrive
// deduplicated from the repo layer; assessments are updated exactly once.
func (s *batchService) cascade(ctx context.Context, tx *gorm.DB, op *batch.Operation, functionIDs []uint, summary *batch.Summary) error {
	var trlRow *types.TechnicalReadinessLevel
	if op.Fields.TargetTRL != nil {
		row, err := s.levelRepo.GetByLevel(ctx, tx, *op.Fields.TargetTRL)
		if err != nil {
			return err
		}
		if row == nil {
			summary.Errorf("%sTRL level %d not found", refPrefix(op), *op.Fields.TargetTRL)
			return nil
		}
		trlRow = row
	}

	assessments, err := s.assessmentRepo.GetByFunctionIDs(ctx, tx, functionIDs)
	if err != nil {
		return err
	}
	now := s.now()
	for _, assessment := range assessments {
		if op.Fields.DueDate != nil {
			assessment.NextReviewDate = op.Fields.DueDate
		}
		if trlRow != nil {
			assessment.TargetTRL = trlRow.Level
			assessment.ReadinessLevelID = trlRow.ID
		}
		if op.Fields.Assessor != nil {
			assessment.Assessor = *op.Fields.Assessor
		}
		if op.Fields.Notes != nil {
			assessment.Notes = *op.Fields.Notes
		}
		assessment.AssessmentDate = now
		if err := s.assessmentRepo.Save(ctx, tx, assessment); err != nil {
			return err
		}
	}
	summary.AssessmentsAffected += len(assessments)
	return nil
}

// --- configurations ---

func (s *batchService) applyConfiguration(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	switch op.Entity {
	case batch.EntityVehiclePlatform:
		return s.applyVehiclePlatform(ctx, tx, op, summary)
	case batch.EntityODD:
		return s.applyODD(ctx, tx, op, summary)
	case batch.EntityEnvironment:
		return s.applyEnvironment(ctx, tx, op, summary)
	case batch.EntityTrailer:
		return s.applyTrailer(ctx, tx, op, summary)
	case batch.EntityReadinessLevel:
		return s.applyReadinessLevel(ctx, tx, op, summary)
	}
	return nil
}

func (s *batchService) applyVehiclePlatform(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	platform, err := s.platformRepo.GetByName(ctx, tx, op.Name)
	if err != nil {
		return err
	}
	switch op.Kind {
	case batch.OpCreate:
		if platform != nil {
			summary.Warnf("%svehicle platform %q already exists, skipping creation", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		platform = &types.VehiclePlatform{Name: op.Name}
		applyString(&platform.Description, op.Config.Description)
		applyString(&platform.VehicleType, op.Config.VehicleType)
		platform.MaxPayload = op.Config.MaxPayload
		if err := s.platformRepo.Create(ctx, tx, platform); err != nil {
			return err
		}
		summary.Created++
	case batch.OpUpdate:
		if platform == nil {
			summary.Warnf("%svehicle platform %q not found", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		applyString(&platform.Description, op.Config.Description)
		applyString(&platform.VehicleType, op.Config.VehicleType)
		if op.Config.MaxPayload != nil {
			platform.MaxPayload = op.Config.MaxPayload
		}
		if err := s.platformRepo.Save(ctx, tx, platform); err != nil {
			return err
		}
		summary.Updated++
	case batch.OpDelete:
		if platform == nil {
			summary.Warnf("%svehicle platform %q not found for deletion", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		count, err := s.assessmentRepo.CountByColumn(ctx, tx, "vehicle_platform_id", platform.ID)
		if err != nil {
			return err
		}
		if count > 0 && !op.ForceDelete {
			summary.Errorf("%scannot delete vehicle platform %q: has %d readiness assessments (use force_delete to override)", refPrefix(op), op.Name, count)
			return nil
		}
		if err := s.platformRepo.Delete(ctx, tx, platform); err != nil {
			return err
		}
		summary.Deleted++
	}
	return nil
}

func (s *batchService) applyODD(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	odd, err := s.oddRepo.GetByName(ctx, tx, op.Name)
	if err != nil {
		return err
	}
	apply := func(dst *types.ODD) {
		applyString(&dst.Description, op.Config.Description)
		if op.Config.MaxSpeed != nil {
			dst.MaxSpeed = op.Config.MaxSpeed
		}
		applyString(&dst.Direction, op.Config.Direction)
		applyString(&dst.Lanes, op.Config.Lanes)
		applyString(&dst.Intersections, op.Config.Intersections)
		applyString(&dst.Infrastructure, op.Config.Infrastructure)
		applyString(&dst.Hazards, op.Config.Hazards)
		applyString(&dst.Actors, op.Config.Actors)
		applyString(&dst.HandlingEquipment, op.Config.HandlingEquipment)
		applyString(&dst.Traction, op.Config.Traction)
		applyString(&dst.Inclines, op.Config.Inclines)
	}
	switch op.Kind {
	case batch.OpCreate:
		if odd != nil {
			summary.Warnf("%sODD %q already exists, skipping creation", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		odd = &types.ODD{Name: op.Name}
		apply(odd)
		if err := s.oddRepo.Create(ctx, tx, odd); err != nil {
			return err
		}
		summary.Created++
	case batch.OpUpdate:
		if odd == nil {
			summary.Warnf("%sODD %q not found", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		apply(odd)
		if err := s.oddRepo.Save(ctx, tx, odd); err != nil {
			return err
		}
		summary.Updated++
	case batch.OpDelete:
		if odd == nil {
			summary.Warnf("%sODD %q not found for deletion", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		count, err := s.assessmentRepo.CountByColumn(ctx, tx, "odd_id", odd.ID)
		if err != nil {
			return err
		}
		if count > 0 && !op.ForceDelete {
			summary.Errorf("%scannot delete ODD %q: has %d readiness assessments (use force_delete to override)", refPrefix(op), op.Name, count)
			return nil
		}
		if err := s.oddRepo.Delete(ctx, tx, odd); err != nil {
			return err
		}
		summary.Deleted++
	}
	return nil
}

func (s *batchService) applyEnvironment(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	env, err := s.envRepo.GetByName(ctx, tx, op.Name)
	if err != nil {
		return err
	}
	apply := func(dst *types.Environment) {
		applyString(&dst.Description, op.Config.Description)
		applyString(&dst.Region, op.Config.Region)
		applyString(&dst.Climate, op.Config.Climate)
		applyString(&dst.Terrain, op.Config.Terrain)
	}
	switch op.Kind {
	case batch.OpCreate:
		if env != nil {
			summary.Warnf("%senvironment %q already exists, skipping creation", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		env = &types.Environment{Name: op.Name}
		apply(env)
		if err := s.envRepo.Create(ctx, tx, env); err != nil {
			return err
		}
		summary.Created++
	case batch.OpUpdate:
		if env == nil {
			summary.Warnf("%senvironment %q not found", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		apply(env)
		if err := s.envRepo.Save(ctx, tx, env); err != nil {
			return err
		}
		summary.Updated++
	case batch.OpDelete:
		if env == nil {
			summary.Warnf("%senvironment %q not found for deletion", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		count, err := s.assessmentRepo.CountByColumn(ctx, tx, "environment_id", env.ID)
		if err != nil {
			return err
		}
		if count > 0 && !op.ForceDelete {
			summary.Errorf("%scannot delete environment %q: has %d readiness assessments (use force_delete to override)", refPrefix(op), op.Name, count)
			return nil
		}
		if err := s.envRepo.Delete(ctx, tx, env); err != nil {
			return err
		}
		summary.Deleted++
	}
	return nil
}

func (s *batchService) applyTrailer(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	trailer, err := s.trailerRepo.GetByName(ctx, tx, op.Name)
	if err != nil {
		return err
	}
	apply := func(dst *types.Trailer) {
		applyString(&dst.Description, op.Config.Description)
		applyString(&dst.TrailerType, op.Config.TrailerType)
		if op.Config.Length != nil {
			dst.Length = op.Config.Length
		}
		if op.Config.MaxWeight != nil {
			dst.MaxWeight = op.Config.MaxWeight
		}
		if op.Config.AxleCount != nil {
			dst.AxleCount = op.Config.AxleCount
		}
	}
	switch op.Kind {
	case batch.OpCreate:
		if trailer != nil {
			summary.Warnf("%strailer %q already exists, skipping creation", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		trailer = &types.Trailer{Name: op.Name}
		apply(trailer)
		if err := s.trailerRepo.Create(ctx, tx, trailer); err != nil {
			return err
		}
		summary.Created++
	case batch.OpUpdate:
		if trailer == nil {
			summary.Warnf("%strailer %q not found", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		apply(trailer)
		if err := s.trailerRepo.Save(ctx, tx, trailer); err != nil {
			return err
		}
		summary.Updated++
	case batch.OpDelete:
		if trailer == nil {
			summary.Warnf("%strailer %q not found for deletion", refPrefix(op), op.Name)
			summary.Skipped++
			return nil
		}
		count, err := s.assessmentRepo.CountByColumn(ctx, tx, "trailer_id", trailer.ID)
		if err != nil {
			return err
		}
		if count > 0 && !op.ForceDelete {
			summary.Errorf("%scannot delete trailer %q: has %d readiness assessments (use force_delete to override)", refPrefix(op), op.Name, count)
			return nil
		}
		if err := s.trailerRepo.Delete(ctx, tx, trailer); err != nil {
			return err
		}
		summary.Deleted++
	}
	return nil
}

func (s *batchService) applyReadinessLevel(ctx context.Context, tx *gorm.DB, op *batch.Operation, summary *batch.Summary) error {
	if op.Level == nil {
		summary.Errorf("%smissing level for technical_readiness_level operation", refPrefix(op))
		return nil
	}
	switch op.Kind {
	case batch.OpUpdate:
		row, err := s.levelRepo.GetByLevel(ctx, tx, *op.Level)
		if err != nil {
			return err
		}
		if row == nil {
			summary.Warnf("%sTRL level %d not found", refPrefix(op), *op.Level)
			summary.Skipped++
			return nil
		}
		applyString(&row.Name, op.Config.LevelName)
		applyString(&row.Description, op.Config.Description)
		if err := s.levelRepo.Save(ctx, tx, row); err != nil {
			return err
		}
		summary.Updated++
	default:
		// The TRL scale is system-defined reference data.
		summary.Errorf("%scannot %s technical readiness levels, only update is supported", refPrefix(op), op.Kind)
	}
	return nil
}

// --- helpers ---

func (s *batchService) resolveCapabilities(ctx context.Context, tx *gorm.DB, refs []string, op *batch.Operation, summary *batch.Summary) []*types.Capability {
	caps := make([]*types.Capability, 0, len(refs))
	for _, ref := range refs {
		capability, err := s.capabilityRepo.GetByNameOrLabel(ctx, tx, ref)
		if err != nil {
			s.log.Warn("Capability lookup failed", "ref", ref, "error", err)
			continue
		}
		if capability == nil {
			summary.Warnf("%scapability %q not found, skipping link", refPrefix(op), ref)
			continue
		}
		caps = append(caps, capability)
	}
	return caps
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
