package handler_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"funil.app/crm/internal/http/handler"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/pipeline"
	"funil.app/crm/internal/service"
)

var _ = Describe("LeadHandler", func() {
	var (
		router     *gin.Engine
		leads      *mockLeadService
		promotions *mockPromotionService
	)

	BeforeEach(func() {
		router = gin.New()
		leads = &mockLeadService{}
		promotions = &mockPromotionService{}
		h := handler.NewLeadHandler(leads, promotions)

		rg := router.Group("/workspaces/:workspaceID/leads", asUser(&model.User{ID: 3}, &model.Session{ID: 1}))
		rg.GET("", h.List)
		rg.POST("", h.Create)
		rg.GET("/eligible", h.Eligible)
		rg.POST("/promote", h.Promote)
		rg.GET("/:leadID", h.Get)
		rg.PATCH("/:leadID", h.Update)
		rg.POST("/:leadID/stage", h.ChangeStage)
		rg.POST("/:leadID/archive", h.Archive)
	})

	Describe("ChangeStage", func() {
		It("answers 422 with the missing fields", func() {
			leads.stageFn = func(_ context.Context, _, _, _ int64, _ model.StageSlug) (*model.Lead, error) {
				return nil, &service.ValidationError{Fields: []pipeline.FieldError{
					{Field: "telefone", Message: "Telefone é obrigatório"},
				}}
			}

			w := doJSON(router, http.MethodPost, "/workspaces/10/leads/100/stage", map[string]string{"stage": "tentativa_contato"})

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			resp := decode(w)
			Expect(resp["code"]).To(Equal("validation_failed"))
			Expect(resp["fields"]).To(ConsistOf(HaveKeyWithValue("field", "telefone")))
		})

		It("passes workspace, actor, lead and stage through", func() {
			leads.stageFn = func(_ context.Context, wsID, actorID, leadID int64, stage model.StageSlug) (*model.Lead, error) {
				Expect(wsID).To(Equal(int64(10)))
				Expect(actorID).To(Equal(int64(3)))
				Expect(leadID).To(Equal(int64(100)))
				return &model.Lead{ID: leadID, WorkspaceID: wsID, Stage: stage}, nil
			}

			w := doJSON(router, http.MethodPost, "/workspaces/10/leads/100/stage", map[string]string{"stage": "qualificado"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["stage"]).To(Equal("qualificado"))
		})

		It("maps an unknown stage to 400", func() {
			leads.stageFn = func(_ context.Context, _, _, _ int64, _ model.StageSlug) (*model.Lead, error) {
				return nil, service.ErrInvalidStage
			}

			w := doJSON(router, http.MethodPost, "/workspaces/10/leads/100/stage", map[string]string{"stage": "won"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["code"]).To(Equal("invalid_stage"))
		})

		It("requires a stage", func() {
			w := doJSON(router, http.MethodPost, "/workspaces/10/leads/100/stage", `{}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	It("rejects a non-numeric lead id", func() {
		w := doJSON(router, http.MethodGet, "/workspaces/10/leads/abc", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("hides leads of other workspaces as 404", func() {
		leads.err = service.ErrNotFound
		w := doJSON(router, http.MethodGet, "/workspaces/10/leads/100", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("answers 403 when the caller has no access", func() {
		leads.err = service.ErrForbidden
		w := doJSON(router, http.MethodPost, "/workspaces/10/leads/100/archive", nil)
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("lists archived leads on request", func() {
		var gotArchived bool
		leads.listFn = func(_ context.Context, _, _ int64, archived bool) ([]model.Lead, error) {
			gotArchived = archived
			return nil, nil
		}

		w := doJSON(router, http.MethodGet, "/workspaces/10/leads?archived=true", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotArchived).To(BeTrue())
		Expect(decode(w)["leads"]).To(BeEmpty())
	})

	It("maps a create body onto the lead input", func() {
		leads.createFn = func(_ context.Context, wsID, _ int64, in service.LeadInput) (*model.Lead, error) {
			Expect(*in.Name).To(Equal("Ana"))
			Expect(in.CustomValues).To(HaveKeyWithValue("42", "enterprise"))
			return &model.Lead{ID: 1, WorkspaceID: wsID, Name: *in.Name}, nil
		}

		w := doJSON(router, http.MethodPost, "/workspaces/10/leads", map[string]any{
			"name":          "Ana",
			"custom_values": map[string]any{"42": "enterprise"},
		})

		Expect(w.Code).To(Equal(http.StatusCreated))
	})

	It("reports an internal failure as 500 without leaking it", func() {
		leads.updateFn = func(_ context.Context, _, _, _ int64, _ service.LeadInput) (*model.Lead, error) {
			return nil, errors.New("connection reset")
		}

		w := doJSON(router, http.MethodPatch, "/workspaces/10/leads/100", map[string]string{"name": "x"})

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).NotTo(ContainSubstring("connection reset"))
	})

	It("promotes eligible leads", func() {
		promotions.result = &service.PromotionResult{PromotedCount: 2, QueuedGenerations: 1}

		w := doJSON(router, http.MethodPost, "/workspaces/10/leads/promote", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["promoted_count"]).To(BeNumerically("==", 2))
		Expect(resp["leads"]).To(BeEmpty())
	})

	It("routes /eligible ahead of the lead id", func() {
		promotions.eligible = []model.Lead{{ID: 5}}

		w := doJSON(router, http.MethodGet, "/workspaces/10/leads/eligible", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["leads"]).To(HaveLen(1))
	})
})
