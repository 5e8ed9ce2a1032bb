package service_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"funil.app/crm/internal/store"
)

var _ = Describe("InvitationService", func() {
	const (
		wsID    = int64(10)
		ownerID = int64(1)
		adminID = int64(2)
	)

	var (
		ctx        context.Context
		authz      *mockAuthorizer
		invites    *mockInvitationStore
		workspaces *mockWorkspaceStore
		members    *mockMemberStore
		users      *mockUserStore
		logs       *mockEventLogStore
		tx         *mockTxRunner
		mail       *mockMailer
		svc        service.InvitationService
		invitee    *model.User
	)

	newService := func(m service.InviteMailer) service.InvitationService {
		return service.NewInvitationService(authz, invites, workspaces, users, logs, tx, m, "https://app.funil.test/")
	}

	pending := func(expiresAt time.Time) *model.Invitation {
		return &model.Invitation{
			ID:          500,
			WorkspaceID: wsID,
			Email:       "ana@example.com",
			Role:        model.RoleMember,
			InvitedBy:   ownerID,
			Token:       "tok-500",
			Status:      model.InvitationStatusPending,
			ExpiresAt:   expiresAt,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		authz = &mockAuthorizer{roles: map[int64]model.Role{ownerID: model.RoleOwner, adminID: model.RoleAdmin, 3: model.RoleMember}}
		invites = newMockInvitationStore()
		workspaces = &mockWorkspaceStore{
			getByIDFn: func(_ context.Context, id int64) (*model.Workspace, error) {
				return &model.Workspace{ID: id, OwnerID: ownerID, Name: "Acme"}, nil
			},
		}
		members = &mockMemberStore{}
		users = &mockUserStore{}
		logs = &mockEventLogStore{}
		tx = &mockTxRunner{provider: &mockStoreProvider{
			workspaces:  workspaces,
			members:     members,
			invitations: invites,
			logs:        logs,
		}}
		mail = &mockMailer{}
		svc = newService(mail)
		invitee = &model.User{ID: 7, Email: "Ana@Example.com", Name: "Ana"}
	})

	Describe("Invite", func() {
		It("stores a pending invite that expires in seven days and emails it", func() {
			res, err := svc.Invite(ctx, wsID, adminID, "  ANA@example.com ", model.RoleMember)
			Expect(err).NotTo(HaveOccurred())

			inv := res.Invitation
			Expect(inv.Email).To(Equal("ana@example.com"))
			Expect(inv.Status).To(Equal(model.InvitationStatusPending))
			Expect(inv.Token).NotTo(BeEmpty())
			Expect(inv.ExpiresAt).To(BeTemporally("~", time.Now().Add(7*24*time.Hour), time.Minute))
			Expect(res.AcceptURL).To(Equal("https://app.funil.test/invites/accept/" + inv.Token))
			Expect(res.Warnings).To(BeEmpty())

			Expect(mail.sent).To(HaveLen(1))
			Expect(mail.sent[0].WorkspaceName).To(Equal("Acme"))
			Expect(mail.sent[0].AcceptURL).To(Equal(res.AcceptURL))
			Expect(logs.types()).To(ConsistOf(model.WorkspaceEventTypeMemberInvited))
		})

		It("forbids plain members", func() {
			_, err := svc.Invite(ctx, wsID, 3, "ana@example.com", model.RoleMember)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(invites.invites).To(BeEmpty())
		})

		It("rejects the owner role", func() {
			_, err := svc.Invite(ctx, wsID, ownerID, "ana@example.com", model.RoleOwner)
			Expect(err).To(MatchError(service.ErrInvalidRole))
		})

		It("rejects malformed emails", func() {
			_, err := svc.Invite(ctx, wsID, ownerID, "not-an-email", model.RoleMember)
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("refuses to invite an existing member", func() {
			users.getByEmailFn = func(_ context.Context, _ string) (*model.User, error) {
				return &model.User{ID: 3}, nil
			}
			_, err := svc.Invite(ctx, wsID, ownerID, "bob@example.com", model.RoleMember)
			Expect(err).To(MatchError(service.ErrConflict))
		})

		It("refuses a second pending invite for the same email", func() {
			invites = newMockInvitationStore(pending(time.Now().Add(time.Hour)))
			svc = newService(mail)
			_, err := svc.Invite(ctx, wsID, ownerID, "ana@example.com", model.RoleAdmin)
			Expect(err).To(MatchError(service.ErrConflict))
		})

		It("replaces a pending invite that already expired", func() {
			invites = newMockInvitationStore(pending(time.Now().Add(-time.Hour)))
			svc = newService(mail)
			res, err := svc.Invite(ctx, wsID, ownerID, "ana@example.com", model.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(invites.status(500)).To(Equal(model.InvitationStatusExpired))
			Expect(invites.status(res.Invitation.ID)).To(Equal(model.InvitationStatusPending))
		})

		It("keeps the invite and warns when the email fails", func() {
			mail.err = errors.New("smtp down")
			res, err := svc.Invite(ctx, wsID, ownerID, "ana@example.com", model.RoleMember)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Warnings).To(HaveLen(1))
			Expect(invites.invites).To(HaveKey(res.Invitation.ID))
		})

		It("warns when email delivery is disabled", func() {
			svc = newService(nil)
			res, err := svc.Invite(ctx, wsID, ownerID, "ana@example.com", model.RoleMember)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Warnings).NotTo(BeEmpty())
		})
	})

	Describe("Accept", func() {
		It("adds the membership and reports the workspace to switch to", func() {
			invites = newMockInvitationStore(pending(time.Now().Add(time.Hour)))
			tx.provider.invitations = invites
			svc = newService(mail)

			res, err := svc.Accept(ctx, "tok-500", invitee)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.WorkspaceID).To(Equal(wsID))
			Expect(res.Role).To(Equal(model.RoleMember))
			Expect(res.Invitation.Status).To(Equal(model.InvitationStatusAccepted))
			Expect(*res.Invitation.AcceptedBy).To(Equal(invitee.ID))

			Expect(members.upserts).To(ConsistOf(model.WorkspaceMember{WorkspaceID: wsID, UserID: 7, Role: model.RoleMember}))
			Expect(logs.types()).To(ConsistOf(model.WorkspaceEventTypeInviteAccepted))
			Expect(tx.calls).To(Equal(1))
		})

		It("fails the second acceptance without touching memberships again", func() {
			invites = newMockInvitationStore(pending(time.Now().Add(time.Hour)))
			tx.provider.invitations = invites
			svc = newService(mail)

			_, err := svc.Accept(ctx, "tok-500", invitee)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Accept(ctx, "tok-500", invitee)
			Expect(err).To(MatchError(service.ErrAlreadyProcessed))
			Expect(members.upserts).To(HaveLen(1))
		})

		It("reports expiry before anything else and grants nothing", func() {
			inv := pending(time.Now().Add(-24 * time.Hour))
			invites = newMockInvitationStore(inv)
			tx.provider.invitations = invites
			svc = newService(mail)

			_, err := svc.Accept(ctx, "tok-500", &model.User{ID: 8, Email: "someone-else@example.com"})
			Expect(err).To(MatchError(service.ErrExpired))
			Expect(members.upserts).To(BeEmpty())
			Expect(invites.status(500)).To(Equal(model.InvitationStatusExpired))
		})

		It("reports expiry even when the stored status is no longer pending", func() {
			inv := pending(time.Now().Add(-time.Hour))
			inv.Status = model.InvitationStatusCancelled
			invites = newMockInvitationStore(inv)
			svc = newService(mail)

			_, err := svc.Accept(ctx, "tok-500", invitee)
			Expect(err).To(MatchError(service.ErrExpired))
		})

		It("rejects a different email", func() {
			invites = newMockInvitationStore(pending(time.Now().Add(time.Hour)))
			svc = newService(mail)

			_, err := svc.Accept(ctx, "tok-500", &model.User{ID: 8, Email: "bob@example.com"})
			Expect(err).To(MatchError(service.ErrEmailMismatch))
			Expect(invites.status(500)).To(Equal(model.InvitationStatusPending))
		})

		It("returns not found for unknown tokens", func() {
			_, err := svc.Accept(ctx, "nope", invitee)
			Expect(err).To(MatchError(service.ErrNotFound))

			_, err = svc.Accept(ctx, "", invitee)
			Expect(err).To(MatchError(service.ErrNotFound))
		})

		It("does not write a membership row for the owner", func() {
			inv := pending(time.Now().Add(time.Hour))
			inv.Email = "owner@example.com"
			invites = newMockInvitationStore(inv)
			tx.provider.invitations = invites
			svc = newService(mail)

			_, err := svc.Accept(ctx, "tok-500", &model.User{ID: ownerID, Email: "owner@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(members.upserts).To(BeEmpty())
		})
	})

	Describe("Reject and Cancel", func() {
		BeforeEach(func() {
			invites = newMockInvitationStore(pending(time.Now().Add(time.Hour)))
			svc = newService(mail)
		})

		It("lets the invitee decline", func() {
			inv, err := svc.Reject(ctx, "tok-500", invitee)
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Status).To(Equal(model.InvitationStatusCancelled))
			Expect(logs.types()).To(ConsistOf(model.WorkspaceEventTypeInviteRejected))
		})

		It("lets an admin cancel and refuses to cancel twice", func() {
			_, err := svc.Cancel(ctx, wsID, adminID, 500)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Cancel(ctx, wsID, adminID, 500)
			Expect(err).To(MatchError(service.ErrAlreadyProcessed))
		})

		It("hides invites from other workspaces", func() {
			_, err := svc.Cancel(ctx, 99, adminID, 500)
			Expect(err).To(MatchError(service.ErrNotFound))
		})
	})

	Describe("listing", func() {
		It("filters out expired invites", func() {
			expired := pending(time.Now().Add(-time.Hour))
			expired.ID, expired.Token = 501, "tok-501"
			invites = newMockInvitationStore(pending(time.Now().Add(time.Hour)), expired)
			svc = newService(mail)

			list, err := svc.ListPendingForUser(ctx, invitee)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(int64(500)))

			list, err = svc.List(ctx, wsID, ownerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})
	})

	Describe("Preview", func() {
		It("returns the invite with its workspace", func() {
			invites = newMockInvitationStore(pending(time.Now().Add(time.Hour)))
			svc = newService(mail)

			inv, ws, err := svc.Preview(ctx, "tok-500")
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.ID).To(Equal(int64(500)))
			Expect(ws.Name).To(Equal("Acme"))
		})

		It("maps a failing workspace lookup to not found", func() {
			invites = newMockInvitationStore(pending(time.Now().Add(time.Hour)))
			workspaces.getByIDFn = func(_ context.Context, _ int64) (*model.Workspace, error) {
				return nil, store.ErrNotFound
			}
			svc = newService(mail)

			_, _, err := svc.Preview(ctx, "tok-500")
			Expect(err).To(MatchError(service.ErrNotFound))
			Expect(strings.Contains(err.Error(), "workspace")).To(BeTrue())
		})
	})
})
