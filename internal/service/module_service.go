package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// ModuleService manages extensible record types. Record payloads are
// validated against the module's field definitions on every write.
type ModuleService struct {
	moduleRepo *repository.ModuleRepository
	recordRepo *repository.ModuleRecordRepository
	activity   *ActivityService
	logger     *zap.Logger
}

func NewModuleService(
	moduleRepo *repository.ModuleRepository,
	recordRepo *repository.ModuleRecordRepository,
	activity *ActivityService,
	logger *zap.Logger,
) *ModuleService {
	return &ModuleService{
		moduleRepo: moduleRepo,
		recordRepo: recordRepo,
		activity:   activity,
		logger:     logger,
	}
}

func validateFieldDefinition(req *domain.CreateModuleFieldRequest) error {
	if !req.FieldType.IsValid() {
		return fmt.Errorf("%w: field type %q", domain.ErrInvalidEnum, req.FieldType)
	}
	needsOptions := req.FieldType == domain.FieldTypeSelect || req.FieldType == domain.FieldTypeMultiselect
	if needsOptions && len(req.Options) == 0 {
		return fmt.Errorf("%w: field %q requires options", domain.ErrInvalidInput, req.Key)
	}
	if !needsOptions && len(req.Options) > 0 {
		return fmt.Errorf("%w: field %q does not take options", domain.ErrInvalidInput, req.Key)
	}
	return nil
}

func (s *ModuleService) Create(ctx context.Context, req *domain.CreateModuleRequest) (*domain.Module, error) {
	module := &domain.Module{
		Name:        req.Name,
		Label:       req.Label,
		Description: req.Description,
		Icon:        req.Icon,
	}
	for i := range req.Fields {
		f := &req.Fields[i]
		if err := validateFieldDefinition(f); err != nil {
			return nil, err
		}
		module.Fields = append(module.Fields, domain.ModuleField{
			Key:       f.Key,
			Label:     f.Label,
			FieldType: f.FieldType,
			Required:  f.Required,
			Options:   f.Options,
			SortOrder: f.SortOrder,
		})
	}
	module.CreatedBy = actorSubject(ctx)

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "created", "module", &module.ID, module.Name)
	return module, nil
}

func (s *ModuleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Module, error) {
	return s.moduleRepo.GetByID(ctx, id)
}

func (s *ModuleService) GetByName(ctx context.Context, name string) (*domain.Module, error) {
	return s.moduleRepo.GetByName(ctx, name)
}

func (s *ModuleService) List(ctx context.Context) ([]domain.Module, error) {
	return s.moduleRepo.List(ctx)
}

func (s *ModuleService) Update(ctx context.Context, id uuid.UUID, label, description, icon string) (*domain.Module, error) {
	module, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	module.Label = label
	module.Description = description
	module.Icon = icon
	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}
	return module, nil
}

func (s *ModuleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.moduleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "module", &id, "")
	return nil
}

// AddField appends a field definition; the key is unique within the module
func (s *ModuleService) AddField(ctx context.Context, moduleID uuid.UUID, req *domain.CreateModuleFieldRequest) (*domain.ModuleField, error) {
	if _, err := s.moduleRepo.GetByID(ctx, moduleID); err != nil {
		return nil, err
	}
	if err := validateFieldDefinition(req); err != nil {
		return nil, err
	}

	field := &domain.ModuleField{
		ModuleID:  moduleID,
		Key:       req.Key,
		Label:     req.Label,
		FieldType: req.FieldType,
		Required:  req.Required,
		Options:   req.Options,
		SortOrder: req.SortOrder,
	}
	if err := s.moduleRepo.AddField(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

func (s *ModuleService) RemoveField(ctx context.Context, moduleID, fieldID uuid.UUID) error {
	return s.moduleRepo.RemoveField(ctx, moduleID, fieldID)
}

// validatePayload checks a record payload against the module's field
// definitions: unknown keys are rejected, required fields must be present and
// every value must match its field type.
func validatePayload(fields []domain.ModuleField, raw json.RawMessage) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: record payload is not a JSON object", domain.ErrInvalidInput)
	}

	byKey := make(map[string]*domain.ModuleField, len(fields))
	for i := range fields {
		byKey[fields[i].Key] = &fields[i]
	}

	for key := range payload {
		if _, ok := byKey[key]; !ok {
			return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, key)
		}
	}

	for i := range fields {
		field := &fields[i]
		value, present := payload[field.Key]
		if !present || value == nil {
			if field.Required {
				return fmt.Errorf("%w: missing required field %q", domain.ErrInvalidInput, field.Key)
			}
			continue
		}
		if err := validateFieldValue(field, value); err != nil {
			return err
		}
	}
	return nil
}

func validateFieldValue(field *domain.ModuleField, value interface{}) error {
	switch field.FieldType {
	case domain.FieldTypeText, domain.FieldTypeTextarea, domain.FieldTypeEmail,
		domain.FieldTypePhone, domain.FieldTypeURL, domain.FieldTypeFile:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: field %q expects a string", domain.ErrInvalidInput, field.Key)
		}
	case domain.FieldTypeNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("%w: field %q expects a number", domain.ErrInvalidInput, field.Key)
		}
	case domain.FieldTypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: field %q expects a boolean", domain.ErrInvalidInput, field.Key)
		}
	case domain.FieldTypeDate:
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: field %q expects a date string", domain.ErrInvalidInput, field.Key)
		}
		if _, err := time.Parse("2006-01-02", str); err != nil {
			return fmt.Errorf("%w: field %q is not a valid date", domain.ErrInvalidInput, field.Key)
		}
	case domain.FieldTypeDatetime:
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: field %q expects a datetime string", domain.ErrInvalidInput, field.Key)
		}
		if _, err := time.Parse(time.RFC3339, str); err != nil {
			return fmt.Errorf("%w: field %q is not a valid datetime", domain.ErrInvalidInput, field.Key)
		}
	case domain.FieldTypeSelect:
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: field %q expects a string", domain.ErrInvalidInput, field.Key)
		}
		if !optionAllowed(field.Options, str) {
			return fmt.Errorf("%w: field %q value %q is not an allowed option", domain.ErrInvalidInput, field.Key, str)
		}
	case domain.FieldTypeMultiselect:
		items, ok := value.([]interface{})
		if !ok {
			return fmt.Errorf("%w: field %q expects an array", domain.ErrInvalidInput, field.Key)
		}
		for _, item := range items {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("%w: field %q expects string elements", domain.ErrInvalidInput, field.Key)
			}
			if !optionAllowed(field.Options, str) {
				return fmt.Errorf("%w: field %q value %q is not an allowed option", domain.ErrInvalidInput, field.Key, str)
			}
		}
	}
	return nil
}

func optionAllowed(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

// Records

func (s *ModuleService) CreateRecord(ctx context.Context, moduleID uuid.UUID, req *domain.CreateModuleRecordRequest) (*domain.ModuleRecord, error) {
	module, err := s.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(module.Fields, json.RawMessage(req.Data)); err != nil {
		return nil, err
	}

	record := &domain.ModuleRecord{
		ModuleID: moduleID,
		Data:     req.Data,
	}
	record.CreatedBy = actorSubject(ctx)

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	s.activity.Record(ctx, "created", "module_record", &record.ID, module.Name)
	return record, nil
}

func (s *ModuleService) GetRecord(ctx context.Context, id uuid.UUID) (*domain.ModuleRecord, error) {
	return s.recordRepo.GetByID(ctx, id)
}

func (s *ModuleService) ListRecords(ctx context.Context, moduleID uuid.UUID, params domain.ListParams) (*domain.PagedResponse[domain.ModuleRecord], error) {
	if _, err := s.moduleRepo.GetByID(ctx, moduleID); err != nil {
		return nil, err
	}
	params.Normalize()
	records, total, err := s.recordRepo.ListByModule(ctx, moduleID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return domain.NewPagedResponse(records, params, total), nil
}

func (s *ModuleService) UpdateRecord(ctx context.Context, id uuid.UUID, req *domain.CreateModuleRecordRequest) (*domain.ModuleRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	module, err := s.moduleRepo.GetByID(ctx, record.ModuleID)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(module.Fields, json.RawMessage(req.Data)); err != nil {
		return nil, err
	}

	record.Data = req.Data
	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	s.activity.Record(ctx, "updated", "module_record", &record.ID, module.Name)
	return record, nil
}

func (s *ModuleService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "module_record", &id, "")
	return nil
}

// AssignRecord grants a profile or a team access to a record. Exactly one
// grantee must be named.
func (s *ModuleService) AssignRecord(ctx context.Context, recordID uuid.UUID, req *domain.AssignModuleRecordRequest) (*domain.ModuleRecordAssignment, error) {
	if _, err := s.recordRepo.GetByID(ctx, recordID); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.AssignmentRoleViewer
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: assignment role %q", domain.ErrInvalidEnum, role)
	}

	assignment := &domain.ModuleRecordAssignment{
		RecordID:  recordID,
		ProfileID: req.ProfileID,
		TeamID:    req.TeamID,
		Role:      role,
	}
	if err := s.recordRepo.Assign(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *ModuleService) UnassignRecord(ctx context.Context, recordID, assignmentID uuid.UUID) error {
	return s.recordRepo.Unassign(ctx, recordID, assignmentID)
}

func (s *ModuleService) RecordAssignments(ctx context.Context, recordID uuid.UUID) ([]domain.ModuleRecordAssignment, error) {
	if _, err := s.recordRepo.GetByID(ctx, recordID); err != nil {
		return nil, err
	}
	return s.recordRepo.ListAssignments(ctx, recordID)
}
