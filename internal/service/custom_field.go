package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"funil.app/crm/common/id"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/pipeline"
	"funil.app/crm/internal/store"
)

type CustomFieldInput struct {
	Name     *string
	Type     *model.FieldType
	Required *bool
	Options  []string
	Position *int32
}

type CustomFieldService interface {
	Create(ctx context.Context, workspaceID, actorID int64, in CustomFieldInput) (*model.CustomField, error)
	List(ctx context.Context, workspaceID, userID int64) ([]model.CustomField, error)
	Update(ctx context.Context, workspaceID, actorID, fieldID int64, in CustomFieldInput) (*model.CustomField, error)
	// Delete removes the field and drops it from every stage requirement.
	Delete(ctx context.Context, workspaceID, actorID, fieldID int64) error
}

type customFieldService struct {
	authz    Authorizer
	fields   store.CustomFieldStore
	txRunner TxRunner
}

func NewCustomFieldService(authz Authorizer, fields store.CustomFieldStore, txRunner TxRunner) CustomFieldService {
	return &customFieldService{authz: authz, fields: fields, txRunner: txRunner}
}

func (s *customFieldService) Create(ctx context.Context, workspaceID, actorID int64, in CustomFieldInput) (*model.CustomField, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.CanEditWorkspace); err != nil {
		return nil, err
	}

	existing, err := s.fields.List(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("listing custom fields", err)
	}

	f := &model.CustomField{
		ID:          id.New(),
		WorkspaceID: workspaceID,
		Type:        model.FieldTypeText,
		Options:     []string{},
		Position:    int32(len(existing)),
	}
	if err := applyCustomFieldInput(f, in); err != nil {
		return nil, err
	}

	if err := s.fields.Create(ctx, f); err != nil {
		return nil, storeErr("creating custom field", err)
	}

	slog.InfoContext(ctx, "custom field created",
		"workspace_id", workspaceID,
		"field_id", f.ID,
		"type", f.Type)
	return f, nil
}

func (s *customFieldService) List(ctx context.Context, workspaceID, userID int64) ([]model.CustomField, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	list, err := s.fields.List(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("listing custom fields", err)
	}
	return list, nil
}

func (s *customFieldService) get(ctx context.Context, workspaceID, fieldID int64) (*model.CustomField, error) {
	f, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, storeErr("getting custom field", err)
	}
	if f.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *customFieldService) Update(ctx context.Context, workspaceID, actorID, fieldID int64, in CustomFieldInput) (*model.CustomField, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.CanEditWorkspace); err != nil {
		return nil, err
	}
	f, err := s.get(ctx, workspaceID, fieldID)
	if err != nil {
		return nil, err
	}
	if err := applyCustomFieldInput(f, in); err != nil {
		return nil, err
	}
	if err := s.fields.Update(ctx, f); err != nil {
		return nil, storeErr("updating custom field", err)
	}
	return f, nil
}

func (s *customFieldService) Delete(ctx context.Context, workspaceID, actorID, fieldID int64) error {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.CanEditWorkspace); err != nil {
		return err
	}
	if _, err := s.get(ctx, workspaceID, fieldID); err != nil {
		return err
	}

	key := pipeline.CustomFieldKey(fieldID)
	return s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.CustomFields().Delete(ctx, fieldID); err != nil {
			return storeErr("deleting custom field", err)
		}
		stages, err := sp.Pipelines().ListStages(ctx, workspaceID)
		if err != nil {
			return storeErr("listing stage configs", err)
		}
		for _, st := range stages {
			if !slices.Contains(st.RequiredFields, key) {
				continue
			}
			kept := slices.DeleteFunc(slices.Clone(st.RequiredFields), func(f string) bool { return f == key })
			if _, err := sp.Pipelines().UpsertStage(ctx, workspaceID, st.Stage, kept); err != nil {
				return storeErr("updating stage config", err)
			}
		}
		return nil
	})
}

func applyCustomFieldInput(f *model.CustomField, in CustomFieldInput) error {
	if in.Name != nil {
		f.Name = strings.TrimSpace(*in.Name)
	}
	if f.Name == "" {
		return invalidInput("field name is required")
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return invalidInput("unknown field type %q", *in.Type)
		}
		f.Type = *in.Type
	}
	if in.Required != nil {
		f.Required = *in.Required
	}
	if in.Position != nil {
		f.Position = *in.Position
	}
	if in.Options != nil {
		opts := make([]string, 0, len(in.Options))
		for _, o := range in.Options {
			if o = strings.TrimSpace(o); o != "" && !slices.Contains(opts, o) {
				opts = append(opts, o)
			}
		}
		f.Options = opts
	}

	if f.Type == model.FieldTypeSelect {
		if len(f.Options) == 0 {
			return invalidInput("select fields need at least one option")
		}
	} else {
		f.Options = []string{}
	}
	return nil
}
