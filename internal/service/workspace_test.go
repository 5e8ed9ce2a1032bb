package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"funil.app/crm/internal/store"
)

var _ = Describe("WorkspaceService", func() {
	const (
		wsID     = int64(10)
		ownerID  = int64(1)
		adminID  = int64(2)
		memberID = int64(3)
	)

	var (
		ctx        context.Context
		authz      *mockAuthorizer
		workspaces *mockWorkspaceStore
		members    *mockMemberStore
		users      *mockUserStore
		logs       *mockEventLogStore
		tx         *mockTxRunner
		uploader   *mockUploader
		svc        service.WorkspaceService
	)

	BeforeEach(func() {
		ctx = context.Background()
		authz = &mockAuthorizer{roles: map[int64]model.Role{
			ownerID:  model.RoleOwner,
			adminID:  model.RoleAdmin,
			memberID: model.RoleMember,
		}}
		workspaces = &mockWorkspaceStore{
			getByIDFn: func(_ context.Context, id int64) (*model.Workspace, error) {
				if id != wsID {
					return nil, store.ErrNotFound
				}
				return &model.Workspace{ID: wsID, OwnerID: ownerID, Name: "Acme", Slug: "acme"}, nil
			},
		}
		members = &mockMemberStore{
			getFn: func(_ context.Context, _, userID int64) (*model.WorkspaceMember, error) {
				switch userID {
				case adminID:
					return &model.WorkspaceMember{WorkspaceID: wsID, UserID: adminID, Role: model.RoleAdmin}, nil
				case memberID:
					return &model.WorkspaceMember{WorkspaceID: wsID, UserID: memberID, Role: model.RoleMember}, nil
				}
				return nil, store.ErrNotFound
			},
		}
		users = &mockUserStore{}
		logs = &mockEventLogStore{}
		tx = &mockTxRunner{provider: &mockStoreProvider{workspaces: workspaces, members: members, logs: logs}}
		uploader = &mockUploader{}
		svc = service.NewWorkspaceService(authz, workspaces, members, users, logs, tx, uploader, "logos")
	})

	Describe("Create", func() {
		It("slugifies the name and records the creation", func() {
			ws, err := svc.Create(ctx, ownerID, "  Ação Comercial ")
			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Name).To(Equal("Ação Comercial"))
			Expect(ws.Slug).To(Equal("acao-comercial"))
			Expect(ws.OwnerID).To(Equal(ownerID))
			Expect(logs.types()).To(ConsistOf(model.WorkspaceEventTypeCreated))
		})

		It("moves to the next suffix when the slug is taken", func() {
			taken := map[string]bool{"acme": true, "acme-1": true}
			workspaces.createFn = func(_ context.Context, ws *model.Workspace) error {
				if taken[ws.Slug] {
					return store.ErrConflict
				}
				return nil
			}
			ws, err := svc.Create(ctx, ownerID, "Acme")
			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Slug).To(Equal("acme-2"))
			Expect(workspaces.createCalls).To(Equal(3))
		})

		It("gives up after too many collisions", func() {
			workspaces.createFn = func(_ context.Context, _ *model.Workspace) error {
				return store.ErrConflict
			}
			_, err := svc.Create(ctx, ownerID, "Acme")
			Expect(err).To(MatchError(service.ErrConflict))
		})

		It("requires a name", func() {
			_, err := svc.Create(ctx, ownerID, "   ")
			Expect(err).To(MatchError(service.ErrInvalidInput))
			Expect(workspaces.createCalls).To(BeZero())
		})
	})

	Describe("Update", func() {
		It("saves the name and reports a failed logo upload as a warning", func() {
			uploader.err = errors.New("bucket unavailable")
			var saved *model.Workspace
			workspaces.updateFn = func(_ context.Context, ws *model.Workspace) error {
				saved = ws
				return nil
			}
			name := "Acme Brasil"
			ws, warnings, err := svc.Update(ctx, wsID, adminID, service.WorkspaceUpdate{
				Name: &name,
				Logo: &service.Upload{Filename: "logo.png", ContentType: "image/png", Data: []byte("png")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(warnings).To(HaveLen(1))
			Expect(ws.Name).To(Equal("Acme Brasil"))
			Expect(ws.LogoURL).To(BeNil())
			Expect(saved).NotTo(BeNil())
		})

		It("stores the uploaded logo under the workspace id", func() {
			ws, warnings, err := svc.Update(ctx, wsID, ownerID, service.WorkspaceUpdate{
				Logo: &service.Upload{Filename: "brand.JPG", ContentType: "image/jpeg", Data: []byte("jpg")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(warnings).To(BeEmpty())
			Expect(uploader.uploads).To(ConsistOf("logos/10/logo.JPG"))
			Expect(*ws.LogoURL).To(Equal("https://cdn.test/logos/10/logo.JPG"))
		})

		It("forbids members", func() {
			name := "x"
			_, _, err := svc.Update(ctx, wsID, memberID, service.WorkspaceUpdate{Name: &name})
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("ListMembers", func() {
		It("puts the owner first and drops stale owner rows", func() {
			users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, Name: "Olga", Email: "olga@example.com"}, nil
			}
			members.listFn = func(_ context.Context, _ int64) ([]model.WorkspaceMember, error) {
				return []model.WorkspaceMember{
					{UserID: ownerID, Role: model.RoleAdmin},
					{UserID: adminID, Role: model.RoleAdmin},
					{UserID: memberID, Role: model.RoleMember},
				}, nil
			}
			list, err := svc.ListMembers(ctx, wsID, memberID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(list[0].UserID).To(Equal(ownerID))
			Expect(list[0].Role).To(Equal(model.RoleOwner))
			Expect(list[0].UserName).To(Equal("Olga"))
		})

		It("hides the roster from outsiders", func() {
			_, err := svc.ListMembers(ctx, wsID, 99)
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("ChangeRole", func() {
		It("promotes a member to admin", func() {
			m, err := svc.ChangeRole(ctx, wsID, adminID, memberID, model.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Role).To(Equal(model.RoleAdmin))
			Expect(logs.types()).To(ConsistOf(model.WorkspaceEventTypeMemberRoleChanged))
		})

		It("never assigns owner through a role change", func() {
			_, err := svc.ChangeRole(ctx, wsID, ownerID, memberID, model.RoleOwner)
			Expect(err).To(MatchError(service.ErrInvalidRole))
		})

		It("cannot demote the owner", func() {
			_, err := svc.ChangeRole(ctx, wsID, adminID, ownerID, model.RoleMember)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(members.upserts).To(BeEmpty())
		})

		It("is a no-op when the role is unchanged", func() {
			_, err := svc.ChangeRole(ctx, wsID, adminID, memberID, model.RoleMember)
			Expect(err).NotTo(HaveOccurred())
			Expect(members.upserts).To(BeEmpty())
			Expect(logs.events).To(BeEmpty())
		})
	})

	Describe("TransferOwnership", func() {
		It("swaps owner and demotes the former owner to admin", func() {
			var newOwner int64
			workspaces.setOwnerFn = func(_ context.Context, id, expected, to int64) (*model.Workspace, error) {
				Expect(expected).To(Equal(ownerID))
				newOwner = to
				return &model.Workspace{ID: id, OwnerID: to}, nil
			}
			ws, err := svc.TransferOwnership(ctx, wsID, ownerID, adminID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ws.OwnerID).To(Equal(adminID))
			Expect(newOwner).To(Equal(adminID))
			Expect(members.upserts).To(ConsistOf(model.WorkspaceMember{WorkspaceID: wsID, UserID: ownerID, Role: model.RoleAdmin}))
			Expect(members.deletes).To(ConsistOf(adminID))
			Expect(logs.types()).To(ConsistOf(model.WorkspaceEventTypeOwnershipTransferred))
			Expect(tx.calls).To(Equal(1))
		})

		It("loses to a concurrent transfer that already moved ownership", func() {
			// GetByID keeps answering the pre-commit snapshot; only the
			// conditional update sees the committed owner.
			currentOwner := ownerID
			workspaces.setOwnerFn = func(_ context.Context, id, expected, newOwnerID int64) (*model.Workspace, error) {
				if currentOwner != expected {
					return nil, store.ErrNotFound
				}
				currentOwner = newOwnerID
				return &model.Workspace{ID: id, OwnerID: newOwnerID}, nil
			}

			_, err := svc.TransferOwnership(ctx, wsID, ownerID, adminID)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.TransferOwnership(ctx, wsID, ownerID, memberID)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(currentOwner).To(Equal(adminID))
			Expect(members.deletes).To(Equal([]int64{adminID}))
			Expect(members.upserts).To(HaveLen(1))
		})

		It("is owner-only", func() {
			_, err := svc.TransferOwnership(ctx, wsID, adminID, memberID)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(tx.calls).To(BeZero())
		})

		It("requires the new owner to already be a member", func() {
			_, err := svc.TransferOwnership(ctx, wsID, ownerID, 99)
			Expect(err).To(MatchError(service.ErrNotFound))
			Expect(members.upserts).To(BeEmpty())
		})
	})

	Describe("RemoveMember and Leave", func() {
		It("removes a member", func() {
			Expect(svc.RemoveMember(ctx, wsID, adminID, memberID)).To(Succeed())
			Expect(members.deletes).To(ConsistOf(memberID))
		})

		It("never removes the owner", func() {
			Expect(svc.RemoveMember(ctx, wsID, adminID, ownerID)).To(MatchError(service.ErrForbidden))
			Expect(members.deletes).To(BeEmpty())
		})

		It("forbids members from removing others", func() {
			Expect(svc.RemoveMember(ctx, wsID, memberID, adminID)).To(MatchError(service.ErrForbidden))
		})

		It("lets a member leave but not the owner", func() {
			Expect(svc.Leave(ctx, wsID, memberID)).To(Succeed())
			Expect(svc.Leave(ctx, wsID, ownerID)).To(MatchError(service.ErrForbidden))
			Expect(members.deletes).To(ConsistOf(memberID))
		})
	})

	It("Get returns the caller's role", func() {
		ws, role, err := svc.Get(ctx, wsID, memberID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ws.ID).To(Equal(wsID))
		Expect(role).To(Equal(model.RoleMember))

		_, _, err = svc.Get(ctx, wsID, 99)
		Expect(err).To(MatchError(service.ErrForbidden))
	})

	It("ListForUser passes through the store order", func() {
		now := time.Now()
		workspaces.listForUserFn = func(_ context.Context, _ int64) ([]model.Workspace, error) {
			return []model.Workspace{{ID: 1, CreatedAt: now}, {ID: 2, CreatedAt: now.Add(time.Hour)}}, nil
		}
		list, err := svc.ListForUser(ctx, memberID)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(2))
	})
})
