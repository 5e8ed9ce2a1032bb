package store

import (
	"context"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
)

type customFieldStore struct {
	queries *sqlc.Queries
}

func newCustomFieldStore(queries *sqlc.Queries) CustomFieldStore {
	return &customFieldStore{queries: queries}
}

func (s *customFieldStore) Create(ctx context.Context, field *model.CustomField) error {
	row, err := s.queries.CreateCustomField(ctx, sqlc.CreateCustomFieldParams{
		ID:          field.ID,
		WorkspaceID: field.WorkspaceID,
		Name:        field.Name,
		FieldType:   string(field.Type),
		Required:    field.Required,
		Options:     nonNilStrings(field.Options),
		Position:    field.Position,
	})
	if err != nil {
		return mapErr(err)
	}
	*field = *toCustomFieldModel(row)
	return nil
}

func (s *customFieldStore) GetByID(ctx context.Context, id int64) (*model.CustomField, error) {
	row, err := s.queries.GetCustomField(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toCustomFieldModel(row), nil
}

func (s *customFieldStore) List(ctx context.Context, workspaceID int64) ([]model.CustomField, error) {
	rows, err := s.queries.ListCustomFields(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	result := make([]model.CustomField, len(rows))
	for i, row := range rows {
		result[i] = *toCustomFieldModel(row)
	}
	return result, nil
}

func (s *customFieldStore) Update(ctx context.Context, field *model.CustomField) error {
	row, err := s.queries.UpdateCustomField(ctx, sqlc.UpdateCustomFieldParams{
		ID:        field.ID,
		Name:      field.Name,
		FieldType: string(field.Type),
		Required:  field.Required,
		Options:   nonNilStrings(field.Options),
		Position:  field.Position,
	})
	if err != nil {
		return mapErr(err)
	}
	*field = *toCustomFieldModel(row)
	return nil
}

func (s *customFieldStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteCustomField(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toCustomFieldModel(row sqlc.CustomField) *model.CustomField {
	return &model.CustomField{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		Type:        model.FieldType(row.FieldType),
		Required:    row.Required,
		Options:     row.Options,
		Position:    row.Position,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
