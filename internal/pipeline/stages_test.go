package pipeline_test

import (
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/pipeline"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Stages", func() {
	It("exposes exactly the five mid-pipeline stages as configurable", func() {
		var slugs []model.StageSlug
		for _, s := range pipeline.ConfigurableStages() {
			slugs = append(slugs, s.Slug)
		}
		Expect(slugs).To(Equal([]model.StageSlug{
			model.StageLeadMapeado,
			model.StageTentativaContato,
			model.StageConexaoIniciada,
			model.StageQualificado,
			model.StageReuniaoAgendada,
		}))
	})

	DescribeTable("IsConfigurable",
		func(slug model.StageSlug, expected bool) {
			Expect(pipeline.IsConfigurable(slug)).To(Equal(expected))
		},
		Entry("base is never configurable", model.StageBase, false),
		Entry("desqualificado is never configurable", model.StageDesqualificado, false),
		Entry("qualificado", model.StageQualificado, true),
		Entry("unknown slug", model.StageSlug("ganho"), false),
	)

	It("knows the built-in stages", func() {
		Expect(pipeline.IsKnown(model.StageBase)).To(BeTrue())
		Expect(pipeline.IsKnown(model.StageDesqualificado)).To(BeTrue())
		Expect(pipeline.IsKnown("ganho")).To(BeFalse())
	})
})

var _ = Describe("Normalize", func() {
	It("returns one entry per configurable stage with empty defaults", func() {
		stored := []model.StageConfig{
			{WorkspaceID: 5, Stage: model.StageQualificado, RequiredFields: []string{"nome"}},
		}

		cfg := pipeline.Normalize(5, stored)

		Expect(cfg.WorkspaceID).To(Equal(int64(5)))
		Expect(cfg.Stages).To(HaveLen(5))
		Expect(cfg.Stages[0].Stage).To(Equal(model.StageLeadMapeado))
		Expect(cfg.Stages[0].RequiredFields).To(BeEmpty())
		Expect(cfg.Stages[0].RequiredFields).NotTo(BeNil())
		Expect(cfg.RequiredFor(model.StageQualificado)).To(Equal([]string{"nome"}))
	})
})
