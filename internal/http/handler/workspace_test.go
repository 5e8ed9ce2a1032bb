package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"funil.app/crm/internal/http/handler"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
)

var _ = Describe("WorkspaceHandler", func() {
	var (
		router  *gin.Engine
		svc     *mockWorkspaceService
		history *mockHistoryService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockWorkspaceService{}
		history = &mockHistoryService{}
		h := handler.NewWorkspaceHandler(svc, history)

		rg := router.Group("/workspaces", asUser(&model.User{ID: 1}, &model.Session{ID: 1}))
		rg.POST("", h.Create)
		rg.GET("/:workspaceID", h.Get)
		rg.POST("/:workspaceID/logo", h.UploadLogo)
		rg.PATCH("/:workspaceID/members/:userID", h.ChangeRole)
		rg.DELETE("/:workspaceID/members/:userID", h.RemoveMember)
		rg.POST("/:workspaceID/transfer-ownership", h.TransferOwnership)
		rg.GET("/:workspaceID/history", h.History)
	})

	It("creates a workspace owned by the caller", func() {
		w := doJSON(router, http.MethodPost, "/workspaces", map[string]string{"name": "Acme"})

		Expect(w.Code).To(Equal(http.StatusCreated))
		resp := decode(w)
		Expect(resp["role"]).To(Equal("owner"))
		Expect(resp["workspace"]).To(HaveKeyWithValue("owner_id", BeNumerically("==", 1)))
	})

	It("requires a name", func() {
		w := doJSON(router, http.MethodPost, "/workspaces", map[string]string{"name": ""})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns the caller's role with the workspace", func() {
		svc.getFn = func(_ context.Context, wsID, _ int64) (*model.Workspace, model.Role, error) {
			return &model.Workspace{ID: wsID, Name: "Acme"}, model.RoleAdmin, nil
		}

		w := doJSON(router, http.MethodGet, "/workspaces/10", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["role"]).To(Equal("admin"))
	})

	It("uploads a logo and surfaces upload warnings", func() {
		var got *service.Upload
		svc.updateFn = func(_ context.Context, wsID, _ int64, in service.WorkspaceUpdate) (*model.Workspace, []string, error) {
			got = in.Logo
			return &model.Workspace{ID: wsID}, []string{"logo upload failed"}, nil
		}

		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		part, err := mw.CreateFormFile("logo", "logo.png")
		Expect(err).NotTo(HaveOccurred())
		_, _ = part.Write([]byte("png-bytes"))
		Expect(mw.Close()).To(Succeed())

		req := httptest.NewRequest(http.MethodPost, "/workspaces/10/logo", body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(got).NotTo(BeNil())
		Expect(got.Filename).To(Equal("logo.png"))
		Expect(got.Data).To(Equal([]byte("png-bytes")))
		Expect(decode(w)["warnings"]).To(ConsistOf("logo upload failed"))
	})

	It("requires the logo file", func() {
		w := doJSON(router, http.MethodPost, "/workspaces/10/logo", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("maps an invalid role to 400", func() {
		svc.roleFn = func(_ context.Context, _, _, _ int64, _ model.Role) (*model.WorkspaceMember, error) {
			return nil, service.ErrInvalidRole
		}

		w := doJSON(router, http.MethodPatch, "/workspaces/10/members/2", map[string]string{"role": "owner"})

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["code"]).To(Equal("invalid_role"))
	})

	It("removes a member with 204", func() {
		var target int64
		svc.removeFn = func(_ context.Context, _, _, targetID int64) error {
			target = targetID
			return nil
		}

		w := doJSON(router, http.MethodDelete, "/workspaces/10/members/2", nil)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(target).To(Equal(int64(2)))
	})

	It("answers 403 when a member tries to transfer ownership", func() {
		svc.transferFn = func(_ context.Context, _, _, _ int64) (*model.Workspace, error) {
			return nil, service.ErrForbidden
		}

		w := doJSON(router, http.MethodPost, "/workspaces/10/transfer-ownership", map[string]int64{"user_id": 2})

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("passes the history limit through", func() {
		w := doJSON(router, http.MethodGet, "/workspaces/10/history?limit=20", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(history.limits).To(ConsistOf(int32(20)))
		Expect(decode(w)["events"]).To(BeEmpty())
	})

	It("rejects a malformed history limit", func() {
		w := doJSON(router, http.MethodGet, "/workspaces/10/history?limit=many", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
