package pipeline

import (
	"fmt"

	"funil.app/crm/internal/model"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func requiredMessage(label string) string {
	return fmt.Sprintf("%s é obrigatório", label)
}

// Validate returns one FieldError per required field of target that lead
// does not fill, in the order the stage lists them. An empty result means the
// transition is allowed. Stages without configuration require nothing.
//
// A required id that matches neither a built-in nor a current custom field
// is reported as missing under its raw id.
func Validate(lead *model.Lead, target model.StageSlug, cfg *model.PipelineConfig, custom []model.CustomField) []FieldError {
	required := cfg.RequiredFor(target)
	if len(required) == 0 {
		return nil
	}

	customByKey := make(map[string]model.CustomField, len(custom))
	for _, cf := range custom {
		customByKey[CustomFieldKey(cf.ID)] = cf
	}

	var errs []FieldError
	for _, id := range required {
		if v, ok := builtInValue(lead, id); ok {
			if blank(v) {
				f, _ := builtIn(id)
				errs = append(errs, FieldError{Field: id, Message: requiredMessage(f.Label)})
			}
			continue
		}

		label := id
		if cf, ok := customByKey[id]; ok {
			label = cf.Name
		}
		v, present := lead.CustomValues[id]
		if isMissing(v, present) {
			errs = append(errs, FieldError{Field: id, Message: requiredMessage(label)})
		}
	}
	return errs
}
