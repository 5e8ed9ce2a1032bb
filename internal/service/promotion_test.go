package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
)

var _ = Describe("PromotionService", func() {
	const wsID = int64(10)

	var (
		ctx       context.Context
		leads     *mockLeadStore
		campaigns *mockCampaignStore
		logs      *mockEventLogStore
		enqueuer  *mockEnqueuer
		svc       service.PromotionService
	)

	BeforeEach(func() {
		ctx = context.Background()
		leads = newMockLeadStore(
			model.Lead{ID: 1, WorkspaceID: wsID, Stage: model.StageBase, Name: "Ana", Company: "Acme", Email: "ana@acme.com"},
			model.Lead{ID: 2, WorkspaceID: wsID, Stage: model.StageBase, Name: "Bia", Position: "CTO", Phone: "11999990000"},
			model.Lead{ID: 3, WorkspaceID: wsID, Stage: model.StageBase, Name: "Caio", Company: "Acme"},
			model.Lead{ID: 4, WorkspaceID: wsID, Stage: model.StageQualificado, Name: "Duda", Company: "Acme", Email: "d@acme.com"},
		)
		trigger := model.StageLeadMapeado
		campaigns = newMockCampaignStore(model.Campaign{ID: 200, WorkspaceID: wsID, Status: model.CampaignStatusActive, TriggerStage: &trigger})
		logs = &mockEventLogStore{}
		enqueuer = &mockEnqueuer{}
		authz := &mockAuthorizer{roles: map[int64]model.Role{3: model.RoleMember}}
		svc = service.NewPromotionService(authz, leads, campaigns, logs, enqueuer)
	})

	It("lists only base leads that pass the heuristic", func() {
		list, err := svc.ListEligible(ctx, wsID, 3)
		Expect(err).NotTo(HaveOccurred())
		ids := []int64{}
		for _, l := range list {
			ids = append(ids, l.ID)
		}
		Expect(ids).To(ConsistOf(int64(1), int64(2)))
	})

	It("promotes eligible leads and queues generation for triggered campaigns", func() {
		res, err := svc.PromoteEligible(ctx, wsID, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.PromotedCount).To(Equal(2))
		Expect(res.QueuedGenerations).To(Equal(2))
		Expect(leads.stage(1)).To(Equal(model.StageLeadMapeado))
		Expect(leads.stage(2)).To(Equal(model.StageLeadMapeado))
		Expect(leads.stage(3)).To(Equal(model.StageBase))
		Expect(leads.stage(4)).To(Equal(model.StageQualificado))
		Expect(logs.types()).To(ConsistOf(model.WorkspaceEventTypeLeadsPromoted))
	})

	It("is a no-op the second time", func() {
		_, err := svc.PromoteEligible(ctx, wsID, 3)
		Expect(err).NotTo(HaveOccurred())

		res, err := svc.PromoteEligible(ctx, wsID, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.PromotedCount).To(BeZero())
		Expect(res.Leads).To(BeEmpty())
	})

	It("still promotes when enqueueing fails", func() {
		enqueuer.err = errors.New("redis down")
		res, err := svc.PromoteEligible(ctx, wsID, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.PromotedCount).To(Equal(2))
		Expect(res.QueuedGenerations).To(BeZero())
	})

	It("still promotes when campaigns cannot be listed", func() {
		campaigns.listErr = errors.New("timeout")
		res, err := svc.PromoteEligible(ctx, wsID, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.PromotedCount).To(Equal(2))
	})

	It("requires workspace access", func() {
		_, err := svc.PromoteEligible(ctx, wsID, 99)
		Expect(err).To(MatchError(service.ErrForbidden))
		Expect(leads.stage(1)).To(Equal(model.StageBase))
	})
})
