package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
)

var _ = Describe("HistoryService", func() {
	var (
		ctx  context.Context
		logs *mockEventLogStore
		svc  service.HistoryService
	)

	BeforeEach(func() {
		ctx = context.Background()
		logs = &mockEventLogStore{}
		for i := 0; i < 3; i++ {
			logs.events = append(logs.events, &model.WorkspaceEventLog{ID: int64(i), EventType: model.WorkspaceEventTypeUpdated})
		}
		svc = service.NewHistoryService(&mockAuthorizer{roles: map[int64]model.Role{2: model.RoleAdmin, 3: model.RoleMember}}, logs)
	})

	It("is visible to admins", func() {
		list, err := svc.List(ctx, 10, 2, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(2))
	})

	It("is hidden from members", func() {
		_, err := svc.List(ctx, 10, 3, 0)
		Expect(err).To(MatchError(service.ErrForbidden))
	})

	It("never fails the action that records it", func() {
		logs.err = errors.New("disk full")
		ws := &mockWorkspaceStore{}
		wsSvc := service.NewWorkspaceService(&mockAuthorizer{}, ws, &mockMemberStore{}, &mockUserStore{}, logs, &mockTxRunner{}, nil, "")
		_, err := wsSvc.Create(ctx, 1, "Acme")
		Expect(err).NotTo(HaveOccurred())
	})
})
