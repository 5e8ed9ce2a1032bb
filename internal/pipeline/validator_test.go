package pipeline_test

import (
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/pipeline"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func configWith(stage model.StageSlug, fields ...string) *model.PipelineConfig {
	return &model.PipelineConfig{
		WorkspaceID: 1,
		Stages:      []model.StageConfig{{WorkspaceID: 1, Stage: stage, RequiredFields: fields}},
	}
}

var _ = Describe("Validate", func() {
	var lead *model.Lead

	BeforeEach(func() {
		lead = &model.Lead{
			ID:           10,
			WorkspaceID:  1,
			Name:         "Ana",
			Phone:        "",
			Position:     "CEO",
			Stage:        model.StageBase,
			CustomValues: map[string]any{},
		}
	})

	It("reports a blank phone when qualificado requires nome, telefone, cargo", func() {
		cfg := configWith(model.StageQualificado, pipeline.FieldNome, pipeline.FieldTelefone, pipeline.FieldCargo)

		errs := pipeline.Validate(lead, model.StageQualificado, cfg, nil)

		Expect(errs).To(Equal([]pipeline.FieldError{
			{Field: "telefone", Message: "Telefone é obrigatório"},
		}))
	})

	It("allows any transition into a stage without configuration", func() {
		cfg := configWith(model.StageQualificado, pipeline.FieldTelefone)
		Expect(pipeline.Validate(lead, model.StageTentativaContato, cfg, nil)).To(BeEmpty())
		Expect(pipeline.Validate(lead, model.StageDesqualificado, nil, nil)).To(BeEmpty())
	})

	It("treats whitespace-only values as missing", func() {
		lead.Name = "   "
		cfg := configWith(model.StageLeadMapeado, pipeline.FieldNome)

		errs := pipeline.Validate(lead, model.StageLeadMapeado, cfg, nil)

		Expect(errs).To(HaveLen(1))
		Expect(errs[0].Message).To(Equal("Nome é obrigatório"))
	})

	It("resolves optional built-ins from pointer fields", func() {
		cfg := configWith(model.StageConexaoIniciada, pipeline.FieldLinkedIn, pipeline.FieldSegmento)
		segment := "Varejo"
		lead.Segment = &segment

		errs := pipeline.Validate(lead, model.StageConexaoIniciada, cfg, nil)

		Expect(errs).To(Equal([]pipeline.FieldError{
			{Field: "linkedin", Message: "LinkedIn é obrigatório"},
		}))
	})

	Context("custom fields", func() {
		custom := []model.CustomField{
			{ID: 42, WorkspaceID: 1, Name: "Ramo", Type: model.FieldTypeSelect},
			{ID: 43, WorkspaceID: 1, Name: "Funcionários", Type: model.FieldTypeNumber},
		}

		It("uses the custom field name as label", func() {
			cfg := configWith(model.StageQualificado, "42")

			errs := pipeline.Validate(lead, model.StageQualificado, cfg, custom)

			Expect(errs).To(Equal([]pipeline.FieldError{{Field: "42", Message: "Ramo é obrigatório"}}))
		})

		It("accepts filled values of any type", func() {
			lead.CustomValues["42"] = "Indústria"
			lead.CustomValues["43"] = float64(0)
			cfg := configWith(model.StageQualificado, "42", "43")

			Expect(pipeline.Validate(lead, model.StageQualificado, cfg, custom)).To(BeEmpty())
		})

		It("treats nil and blank values as missing", func() {
			lead.CustomValues["42"] = nil
			lead.CustomValues["43"] = " "
			cfg := configWith(model.StageQualificado, "42", "43")

			Expect(pipeline.Validate(lead, model.StageQualificado, cfg, custom)).To(HaveLen(2))
		})

		It("reports a deleted custom field under its id", func() {
			cfg := configWith(model.StageQualificado, "99")

			errs := pipeline.Validate(lead, model.StageQualificado, cfg, custom)

			Expect(errs).To(Equal([]pipeline.FieldError{{Field: "99", Message: "99 é obrigatório"}}))
		})
	})

	It("passes iff every required field resolves to a value", func() {
		cfg := configWith(model.StageReuniaoAgendada,
			pipeline.FieldNome, pipeline.FieldEmail, pipeline.FieldTelefone, pipeline.FieldCargo, pipeline.FieldEmpresa)
		lead.Email = "ana@acme.com"
		lead.Phone = "+55 11 99999-0000"
		lead.Company = "Acme"

		Expect(pipeline.Validate(lead, model.StageReuniaoAgendada, cfg, nil)).To(BeEmpty())

		lead.Company = ""
		Expect(pipeline.Validate(lead, model.StageReuniaoAgendada, cfg, nil)).To(HaveLen(1))
	})
})

var _ = Describe("UnknownFields", func() {
	It("accepts built-ins and existing custom fields", func() {
		custom := []model.CustomField{{ID: 42}}
		Expect(pipeline.UnknownFields([]string{"nome", "42", "observacoes"}, custom)).To(BeEmpty())
	})

	It("returns ids that match nothing", func() {
		Expect(pipeline.UnknownFields([]string{"nome", "idade", "7"}, nil)).To(Equal([]string{"idade", "7"}))
	})
})
