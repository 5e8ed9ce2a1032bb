package pipeline

import (
	"strconv"
	"strings"

	"funil.app/crm/internal/model"
)

// Built-in lead field ids, as stored in stage requirement lists.
const (
	FieldNome        = "nome"
	FieldEmail       = "email"
	FieldTelefone    = "telefone"
	FieldCargo       = "cargo"
	FieldEmpresa     = "empresa"
	FieldSegmento    = "segmento"
	FieldFaturamento = "faturamento"
	FieldLinkedIn    = "linkedin"
	FieldObservacoes = "observacoes"
)

type Field struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	BuiltIn bool            `json:"built_in"`
	Type    model.FieldType `json:"type"`
}

var builtInFields = []Field{
	{ID: FieldNome, Label: "Nome", BuiltIn: true, Type: model.FieldTypeText},
	{ID: FieldEmail, Label: "Email", BuiltIn: true, Type: model.FieldTypeEmail},
	{ID: FieldTelefone, Label: "Telefone", BuiltIn: true, Type: model.FieldTypePhone},
	{ID: FieldCargo, Label: "Cargo", BuiltIn: true, Type: model.FieldTypeText},
	{ID: FieldEmpresa, Label: "Empresa", BuiltIn: true, Type: model.FieldTypeText},
	{ID: FieldSegmento, Label: "Segmento", BuiltIn: true, Type: model.FieldTypeText},
	{ID: FieldFaturamento, Label: "Faturamento", BuiltIn: true, Type: model.FieldTypeText},
	{ID: FieldLinkedIn, Label: "LinkedIn", BuiltIn: true, Type: model.FieldTypeText},
	{ID: FieldObservacoes, Label: "Observações", BuiltIn: true, Type: model.FieldTypeTextarea},
}

func BuiltInFields() []Field {
	out := make([]Field, len(builtInFields))
	copy(out, builtInFields)
	return out
}

func builtIn(id string) (Field, bool) {
	for _, f := range builtInFields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// CustomFieldKey is the id a custom field is referenced by in requirement
// lists and in Lead.CustomValues.
func CustomFieldKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// AvailableFields lists every field a stage may require: built-ins first,
// then the workspace's custom fields in their configured order.
func AvailableFields(custom []model.CustomField) []Field {
	out := BuiltInFields()
	for _, cf := range custom {
		out = append(out, Field{ID: CustomFieldKey(cf.ID), Label: cf.Name, Type: cf.Type})
	}
	return out
}

// UnknownFields returns the ids that are neither built-in nor one of custom.
func UnknownFields(ids []string, custom []model.CustomField) []string {
	known := make(map[string]bool, len(custom))
	for _, cf := range custom {
		known[CustomFieldKey(cf.ID)] = true
	}
	var unknown []string
	for _, id := range ids {
		if _, ok := builtIn(id); ok || known[id] {
			continue
		}
		unknown = append(unknown, id)
	}
	return unknown
}

// builtInValue resolves a built-in id against lead. ok is false for ids that
// are not built-ins.
func builtInValue(lead *model.Lead, id string) (value string, ok bool) {
	switch id {
	case FieldNome:
		return lead.Name, true
	case FieldEmail:
		return lead.Email, true
	case FieldTelefone:
		return lead.Phone, true
	case FieldCargo:
		return lead.Position, true
	case FieldEmpresa:
		return lead.Company, true
	case FieldSegmento:
		return deref(lead.Segment), true
	case FieldFaturamento:
		return deref(lead.Revenue), true
	case FieldLinkedIn:
		return deref(lead.LinkedIn), true
	case FieldObservacoes:
		return deref(lead.Notes), true
	}
	return "", false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isMissing treats absent, nil, blank strings and empty lists as missing.
// Numbers and booleans are always present.
func isMissing(v any, present bool) bool {
	if !present || v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return blank(t)
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}
