package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"funil.app/crm/core/config"
	"funil.app/crm/internal/mailer"
	"funil.app/crm/internal/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		received map[string]any
		authz    string
		status   int
	)

	BeforeEach(func() {
		received = nil
		status = http.StatusOK
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz = r.Header.Get("Authorization")
			Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"id":"m1"}`))
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	newClient := func() *mailer.Client {
		return mailer.New(config.MailConfig{APIURL: server.URL, APIKey: "key", From: "Funil <c@funil.app>"}, server.Client())
	}

	invite := mailer.Invite{
		To:            "ana@acme.com",
		WorkspaceName: "Acme",
		InviterName:   "Rui",
		Role:          model.RoleAdmin,
		AcceptURL:     "https://funil.app/invites/accept/tok",
		ExpiresAt:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	It("posts the rendered invite with the api key", func() {
		Expect(newClient().SendInvite(context.Background(), invite)).To(Succeed())

		Expect(authz).To(Equal("Bearer key"))
		Expect(received["from"]).To(Equal("Funil <c@funil.app>"))
		Expect(received["to"]).To(ConsistOf("ana@acme.com"))
		Expect(received["subject"]).To(Equal("Convite para o workspace Acme"))
		Expect(received["text"]).To(ContainSubstring("Rui convidou você"))
		Expect(received["text"]).To(ContainSubstring("como administrador"))
		Expect(received["text"]).To(ContainSubstring("https://funil.app/invites/accept/tok"))
		Expect(received["html"]).To(ContainSubstring(`href="https://funil.app/invites/accept/tok"`))
		Expect(received["text"]).To(ContainSubstring("09/03/2026"))
	})

	It("surfaces non-2xx answers as APIError", func() {
		status = http.StatusUnprocessableEntity

		err := newClient().SendInvite(context.Background(), invite)

		var apiErr *mailer.APIError
		Expect(err).To(BeAssignableToTypeOf(apiErr))
		Expect(err.(*mailer.APIError).StatusCode).To(Equal(http.StatusUnprocessableEntity))
	})

	It("is disabled without an api key", func() {
		Expect(mailer.New(config.MailConfig{APIURL: server.URL}, nil)).To(BeNil())
	})
})
