package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"funil.app/crm/internal/http/handler"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
)

var _ = Describe("InvitationHandler", func() {
	var (
		router *gin.Engine
		svc    *mockInvitationService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockInvitationService{}
		h := handler.NewInvitationHandler(svc)

		router.GET("/invites/:token", h.Preview)
		authed := router.Group("", asUser(&model.User{ID: 5, Email: "ana@funil.test"}, &model.Session{ID: 1}))
		authed.POST("/invites/:token/accept", h.Accept)
		authed.POST("/invites/:token/reject", h.Reject)
		authed.POST("/workspaces/:workspaceID/invites", h.Create)
		authed.GET("/workspaces/:workspaceID/invites", h.List)
		authed.POST("/workspaces/:workspaceID/invites/:inviteID/cancel", h.Cancel)
	})

	Describe("Create", func() {
		It("returns the invite, its accept URL and mail warnings", func() {
			svc.inviteFn = func(_ context.Context, wsID, inviterID int64, email string, role model.Role) (*service.InviteResult, error) {
				Expect(wsID).To(Equal(int64(10)))
				Expect(inviterID).To(Equal(int64(5)))
				Expect(role).To(Equal(model.RoleAdmin))
				return &service.InviteResult{
					Invitation: &model.Invitation{ID: 1, WorkspaceID: wsID, Email: email, Role: role},
					AcceptURL:  "https://app.funil.test/invites/accept/tok",
					Warnings:   []string{"invitation email could not be sent"},
				}, nil
			}

			w := doJSON(router, http.MethodPost, "/workspaces/10/invites", map[string]string{"email": "bia@funil.test", "role": "Admin"})

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decode(w)
			Expect(resp["accept_url"]).To(Equal("https://app.funil.test/invites/accept/tok"))
			Expect(resp["warnings"]).To(HaveLen(1))
			Expect(resp["invitation"]).NotTo(HaveKey("token"))
		})

		It("maps a duplicate pending invite to 409", func() {
			svc.inviteFn = func(_ context.Context, _, _ int64, _ string, _ model.Role) (*service.InviteResult, error) {
				return nil, service.ErrConflict
			}

			w := doJSON(router, http.MethodPost, "/workspaces/10/invites", map[string]string{"email": "bia@funil.test", "role": "member"})

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("requires email and role", func() {
			w := doJSON(router, http.MethodPost, "/workspaces/10/invites", map[string]string{"email": "bia@funil.test"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	It("previews an invite without a session", func() {
		svc.previewFn = func(_ context.Context, token string) (*model.Invitation, *model.Workspace, error) {
			return &model.Invitation{Email: "ana@funil.test", Role: model.RoleMember, ExpiresAt: time.Now().Add(time.Hour)},
				&model.Workspace{ID: 10, Name: "Acme"}, nil
		}

		w := doJSON(router, http.MethodGet, "/invites/tok", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["workspace_name"]).To(Equal("Acme"))
		Expect(resp["role"]).To(Equal("member"))
	})

	It("answers 404 for an unknown token", func() {
		w := doJSON(router, http.MethodGet, "/invites/nope", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("accepts on behalf of the signed-in user", func() {
		svc.acceptFn = func(_ context.Context, token string, user *model.User) (*service.AcceptResult, error) {
			Expect(user.ID).To(Equal(int64(5)))
			return &service.AcceptResult{Invitation: &model.Invitation{ID: 1}, WorkspaceID: 10, Role: model.RoleMember}, nil
		}

		w := doJSON(router, http.MethodPost, "/invites/tok/accept", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["workspace_id"]).To(BeNumerically("==", 10))
	})

	It("answers 410 for an expired invite", func() {
		svc.acceptFn = func(_ context.Context, _ string, _ *model.User) (*service.AcceptResult, error) {
			return nil, service.ErrExpired
		}

		w := doJSON(router, http.MethodPost, "/invites/tok/accept", nil)

		Expect(w.Code).To(Equal(http.StatusGone))
	})

	It("answers 403 when the email does not match", func() {
		svc.rejectFn = func(_ context.Context, _ string, _ *model.User) (*model.Invitation, error) {
			return nil, service.ErrEmailMismatch
		}

		w := doJSON(router, http.MethodPost, "/invites/tok/reject", nil)

		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(decode(w)["code"]).To(Equal("email_mismatch"))
	})

	It("cancels by id within the workspace", func() {
		svc.cancelFn = func(_ context.Context, wsID, _, inviteID int64) (*model.Invitation, error) {
			return &model.Invitation{ID: inviteID, WorkspaceID: wsID, Status: model.InvitationStatusCancelled}, nil
		}

		w := doJSON(router, http.MethodPost, "/workspaces/10/invites/7/cancel", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["invitation"]).To(HaveKeyWithValue("status", "cancelled"))
	})

	It("lists an empty set as an empty array", func() {
		w := doJSON(router, http.MethodGet, "/workspaces/10/invites", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"invites":[]`))
	})
})
