package handler_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"funil.app/crm/internal/http/handler"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
)

var _ = Describe("UserHandler", func() {
	var (
		router     *gin.Engine
		users      *mockUserService
		invites    *mockInvitationService
		onboarding *mockOnboardingService
	)

	BeforeEach(func() {
		router = gin.New()
		users = &mockUserService{}
		invites = &mockInvitationService{}
		onboarding = &mockOnboardingService{}
		h := handler.NewUserHandler(users, invites, onboarding)

		rg := router.Group("/me", asUser(&model.User{ID: 3, Email: "rui@funil.test"}, &model.Session{ID: 1}))
		rg.GET("", h.Me)
		rg.PATCH("", h.UpdateMe)
		rg.GET("/invites", h.PendingInvites)
		rg.GET("/onboarding", h.Onboarding)
	})

	It("updates the profile fields", func() {
		users.updateFn = func(_ context.Context, userID int64, in service.ProfileUpdate) (*model.User, []string, error) {
			Expect(in.Avatar).To(BeNil())
			return &model.User{ID: userID, Name: *in.Name, Position: in.Position}, nil, nil
		}

		w := doJSON(router, http.MethodPatch, "/me", map[string]string{"name": "Rui Souza", "position": "SDR"})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["user"]).To(HaveKeyWithValue("position", "SDR"))
	})

	It("rejects an empty name", func() {
		w := doJSON(router, http.MethodPatch, "/me", map[string]string{"name": ""})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("lists pending invites for the caller", func() {
		invites.pendingFn = func(_ context.Context, user *model.User) ([]model.Invitation, error) {
			return []model.Invitation{{ID: 1, Email: user.Email}}, nil
		}

		w := doJSON(router, http.MethodGet, "/me/invites", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["invites"]).To(HaveLen(1))
	})

	It("returns the onboarding decision", func() {
		wsID := int64(10)
		onboarding.decision = &service.OnboardingDecision{Step: service.OnboardingDashboard, WorkspaceID: &wsID}

		w := doJSON(router, http.MethodGet, "/me/onboarding", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["workspace_id"]).To(BeNumerically("==", 10))
	})
})
