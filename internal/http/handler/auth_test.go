package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"funil.app/crm/internal/http/handler"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
)

var _ = Describe("AuthHandler", func() {
	var (
		router  *gin.Engine
		auth    *mockAuthService
		invites *mockInvitationService
		user    *model.User
		session *model.Session
	)

	BeforeEach(func() {
		router = gin.New()
		auth = &mockAuthService{}
		invites = &mockInvitationService{}
		user = &model.User{ID: 3, Name: "Rui", Email: "rui@funil.test"}
		session = &model.Session{ID: 77, UserID: 3, ExpiresAt: time.Now().Add(time.Hour)}

		auth.callbackFn = func(_ context.Context, code string) (*model.User, *model.Session, error) {
			if code != "good" {
				return nil, nil, service.ErrInvalidCode
			}
			return user, session, nil
		}

		h := handler.NewAuthHandler(auth, invites, false)
		router.GET("/auth/url", h.GetAuthURL)
		router.POST("/auth/exchange", h.Exchange)
		router.POST("/auth/logout", h.Logout)
		authed := router.Group("/auth/session", asUser(user, session))
		authed.GET("", h.Session)
		authed.PUT("/workspace", h.SelectWorkspace)
	})

	It("returns an authorization URL with a fresh state", func() {
		w := doJSON(router, http.MethodGet, "/auth/url", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["state"]).NotTo(BeEmpty())
		Expect(resp["authorization_url"]).To(ContainSubstring(resp["state"].(string)))
	})

	It("exchanges a code for a session and sets the cookie", func() {
		w := doJSON(router, http.MethodPost, "/auth/exchange", map[string]string{"code": "good"})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["session_id"]).To(Equal("77"))
		Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring("funil_session=77"))
	})

	It("rejects a bad code with 400", func() {
		w := doJSON(router, http.MethodPost, "/auth/exchange", map[string]string{"code": "bad"})

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["code"]).To(Equal("invalid_code"))
	})

	It("requires a code", func() {
		w := doJSON(router, http.MethodPost, "/auth/exchange", `{}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	Context("with an invite token", func() {
		It("accepts the invite and selects its workspace", func() {
			invites.acceptFn = func(_ context.Context, token string, u *model.User) (*service.AcceptResult, error) {
				Expect(token).To(Equal("tok"))
				Expect(u.ID).To(Equal(int64(3)))
				return &service.AcceptResult{WorkspaceID: 10, Role: model.RoleMember}, nil
			}

			w := doJSON(router, http.MethodPost, "/auth/exchange", map[string]string{"code": "good", "invite_token": "tok"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["workspace_id"]).To(BeNumerically("==", 10))
			Expect(auth.logouts).To(BeEmpty())
		})

		It("keeps the session on email mismatch so the client can sign out", func() {
			invites.acceptFn = func(_ context.Context, _ string, _ *model.User) (*service.AcceptResult, error) {
				return nil, service.ErrEmailMismatch
			}

			w := doJSON(router, http.MethodPost, "/auth/exchange", map[string]string{"code": "good", "invite_token": "tok"})

			Expect(w.Code).To(Equal(http.StatusForbidden))
			resp := decode(w)
			Expect(resp["code"]).To(Equal("email_mismatch"))
			Expect(resp["session_id"]).To(Equal("77"))
			Expect(auth.logouts).To(BeEmpty())
		})

		It("drops the session when the invite has expired", func() {
			invites.acceptFn = func(_ context.Context, _ string, _ *model.User) (*service.AcceptResult, error) {
				return nil, service.ErrExpired
			}

			w := doJSON(router, http.MethodPost, "/auth/exchange", map[string]string{"code": "good", "invite_token": "tok"})

			Expect(w.Code).To(Equal(http.StatusGone))
			Expect(decode(w)["code"]).To(Equal("expired"))
			Expect(auth.logouts).To(ConsistOf(int64(77)))
		})

		It("reports an already processed invite as gone", func() {
			invites.acceptFn = func(_ context.Context, _ string, _ *model.User) (*service.AcceptResult, error) {
				return nil, service.ErrAlreadyProcessed
			}

			w := doJSON(router, http.MethodPost, "/auth/exchange", map[string]string{"code": "good", "invite_token": "tok"})

			Expect(w.Code).To(Equal(http.StatusGone))
			Expect(decode(w)["code"]).To(Equal("already_processed"))
		})
	})

	It("returns the current session", func() {
		w := doJSON(router, http.MethodGet, "/auth/session", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["user"]).To(HaveKeyWithValue("email", "rui@funil.test"))
	})

	It("selects a workspace the user can access", func() {
		w := doJSON(router, http.MethodPut, "/auth/session/workspace", map[string]int64{"workspace_id": 10})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["workspace_id"]).To(BeNumerically("==", 10))
	})

	It("refuses a workspace the user cannot access", func() {
		auth.selectFn = func(_ context.Context, _, _, _ int64) (*model.Session, error) {
			return nil, service.ErrForbidden
		}

		w := doJSON(router, http.MethodPut, "/auth/session/workspace", map[string]int64{"workspace_id": 99})

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("logs out the session named by the header", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.Header.Set("X-Session-ID", "77")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(auth.logouts).To(ConsistOf(int64(77)))
		Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring("funil_session=;"))
	})
})
