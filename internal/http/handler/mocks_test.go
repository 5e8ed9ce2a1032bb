package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"funil.app/crm/internal/http/middleware"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/pipeline"
	"funil.app/crm/internal/service"
)

// asUser stands in for RequireAuth.
func asUser(user *model.User, session *model.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithUser(c.Request.Context(), user, session))
		c.Next()
	}
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		r = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

type mockAuthService struct {
	urlFn      func(state string) (string, error)
	callbackFn func(ctx context.Context, code string) (*model.User, *model.Session, error)
	validateFn func(ctx context.Context, sessionID int64) (*model.User, *model.Session, error)
	selectFn   func(ctx context.Context, sessionID, userID, workspaceID int64) (*model.Session, error)
	logouts    []int64
}

func (m *mockAuthService) GetAuthorizationURL(state string) (string, error) {
	if m.urlFn != nil {
		return m.urlFn(state)
	}
	return "https://auth.test/authorize?state=" + state, nil
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	if m.callbackFn != nil {
		return m.callbackFn(ctx, code)
	}
	return nil, nil, service.ErrInvalidCode
}

func (m *mockAuthService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, *model.Session, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, sessionID)
	}
	return nil, nil, service.ErrSessionExpired
}

func (m *mockAuthService) SelectWorkspace(ctx context.Context, sessionID, userID, workspaceID int64) (*model.Session, error) {
	if m.selectFn != nil {
		return m.selectFn(ctx, sessionID, userID, workspaceID)
	}
	return &model.Session{ID: sessionID, UserID: userID, WorkspaceID: &workspaceID}, nil
}

func (m *mockAuthService) Logout(_ context.Context, sessionID int64) error {
	m.logouts = append(m.logouts, sessionID)
	return nil
}

type mockInvitationService struct {
	inviteFn  func(ctx context.Context, workspaceID, inviterID int64, email string, role model.Role) (*service.InviteResult, error)
	previewFn func(ctx context.Context, token string) (*model.Invitation, *model.Workspace, error)
	acceptFn  func(ctx context.Context, token string, user *model.User) (*service.AcceptResult, error)
	rejectFn  func(ctx context.Context, token string, user *model.User) (*model.Invitation, error)
	cancelFn  func(ctx context.Context, workspaceID, actorID, inviteID int64) (*model.Invitation, error)
	resendFn  func(ctx context.Context, workspaceID, actorID, inviteID int64) (*service.InviteResult, error)
	listFn    func(ctx context.Context, workspaceID, actorID int64) ([]model.Invitation, error)
	pendingFn func(ctx context.Context, user *model.User) ([]model.Invitation, error)
}

func (m *mockInvitationService) Invite(ctx context.Context, workspaceID, inviterID int64, email string, role model.Role) (*service.InviteResult, error) {
	if m.inviteFn != nil {
		return m.inviteFn(ctx, workspaceID, inviterID, email, role)
	}
	return nil, service.ErrForbidden
}

func (m *mockInvitationService) Preview(ctx context.Context, token string) (*model.Invitation, *model.Workspace, error) {
	if m.previewFn != nil {
		return m.previewFn(ctx, token)
	}
	return nil, nil, service.ErrNotFound
}

func (m *mockInvitationService) Accept(ctx context.Context, token string, user *model.User) (*service.AcceptResult, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, token, user)
	}
	return nil, service.ErrNotFound
}

func (m *mockInvitationService) Reject(ctx context.Context, token string, user *model.User) (*model.Invitation, error) {
	if m.rejectFn != nil {
		return m.rejectFn(ctx, token, user)
	}
	return nil, service.ErrNotFound
}

func (m *mockInvitationService) Cancel(ctx context.Context, workspaceID, actorID, inviteID int64) (*model.Invitation, error) {
	if m.cancelFn != nil {
		return m.cancelFn(ctx, workspaceID, actorID, inviteID)
	}
	return nil, service.ErrNotFound
}

func (m *mockInvitationService) Resend(ctx context.Context, workspaceID, actorID, inviteID int64) (*service.InviteResult, error) {
	if m.resendFn != nil {
		return m.resendFn(ctx, workspaceID, actorID, inviteID)
	}
	return nil, service.ErrNotFound
}

func (m *mockInvitationService) List(ctx context.Context, workspaceID, actorID int64) ([]model.Invitation, error) {
	if m.listFn != nil {
		return m.listFn(ctx, workspaceID, actorID)
	}
	return nil, nil
}

func (m *mockInvitationService) ListPendingForUser(ctx context.Context, user *model.User) ([]model.Invitation, error) {
	if m.pendingFn != nil {
		return m.pendingFn(ctx, user)
	}
	return nil, nil
}

type mockUserService struct {
	getFn    func(ctx context.Context, userID int64) (*model.User, error)
	updateFn func(ctx context.Context, userID int64, in service.ProfileUpdate) (*model.User, []string, error)
}

func (m *mockUserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return &model.User{ID: userID}, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID int64, in service.ProfileUpdate) (*model.User, []string, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, in)
	}
	return &model.User{ID: userID}, nil, nil
}

type mockOnboardingService struct {
	decision *service.OnboardingDecision
	err      error
}

func (m *mockOnboardingService) Decide(_ context.Context, _ *model.User) (*service.OnboardingDecision, error) {
	return m.decision, m.err
}

type mockWorkspaceService struct {
	createFn   func(ctx context.Context, ownerID int64, name string) (*model.Workspace, error)
	getFn      func(ctx context.Context, workspaceID, userID int64) (*model.Workspace, model.Role, error)
	updateFn   func(ctx context.Context, workspaceID, actorID int64, in service.WorkspaceUpdate) (*model.Workspace, []string, error)
	listFn     func(ctx context.Context, userID int64) ([]model.Workspace, error)
	membersFn  func(ctx context.Context, workspaceID, userID int64) ([]model.WorkspaceMember, error)
	roleFn     func(ctx context.Context, workspaceID, actorID, targetID int64, role model.Role) (*model.WorkspaceMember, error)
	transferFn func(ctx context.Context, workspaceID, actorID, newOwnerID int64) (*model.Workspace, error)
	removeFn   func(ctx context.Context, workspaceID, actorID, targetID int64) error
	leaveFn    func(ctx context.Context, workspaceID, userID int64) error
}

func (m *mockWorkspaceService) Create(ctx context.Context, ownerID int64, name string) (*model.Workspace, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, name)
	}
	return &model.Workspace{ID: 1, OwnerID: ownerID, Name: name}, nil
}

func (m *mockWorkspaceService) Get(ctx context.Context, workspaceID, userID int64) (*model.Workspace, model.Role, error) {
	if m.getFn != nil {
		return m.getFn(ctx, workspaceID, userID)
	}
	return nil, model.RoleNone, service.ErrNotFound
}

func (m *mockWorkspaceService) Update(ctx context.Context, workspaceID, actorID int64, in service.WorkspaceUpdate) (*model.Workspace, []string, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, workspaceID, actorID, in)
	}
	return &model.Workspace{ID: workspaceID}, nil, nil
}

func (m *mockWorkspaceService) ListForUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWorkspaceService) ListMembers(ctx context.Context, workspaceID, userID int64) ([]model.WorkspaceMember, error) {
	if m.membersFn != nil {
		return m.membersFn(ctx, workspaceID, userID)
	}
	return nil, nil
}

func (m *mockWorkspaceService) ChangeRole(ctx context.Context, workspaceID, actorID, targetID int64, role model.Role) (*model.WorkspaceMember, error) {
	if m.roleFn != nil {
		return m.roleFn(ctx, workspaceID, actorID, targetID, role)
	}
	return &model.WorkspaceMember{WorkspaceID: workspaceID, UserID: targetID, Role: role}, nil
}

func (m *mockWorkspaceService) TransferOwnership(ctx context.Context, workspaceID, actorID, newOwnerID int64) (*model.Workspace, error) {
	if m.transferFn != nil {
		return m.transferFn(ctx, workspaceID, actorID, newOwnerID)
	}
	return &model.Workspace{ID: workspaceID, OwnerID: newOwnerID}, nil
}

func (m *mockWorkspaceService) RemoveMember(ctx context.Context, workspaceID, actorID, targetID int64) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, workspaceID, actorID, targetID)
	}
	return nil
}

func (m *mockWorkspaceService) Leave(ctx context.Context, workspaceID, userID int64) error {
	if m.leaveFn != nil {
		return m.leaveFn(ctx, workspaceID, userID)
	}
	return nil
}

type mockHistoryService struct {
	limits []int32
	events []model.WorkspaceEventLog
	err    error
}

func (m *mockHistoryService) List(_ context.Context, _, _ int64, limit int32) ([]model.WorkspaceEventLog, error) {
	m.limits = append(m.limits, limit)
	return m.events, m.err
}

type mockPipelineService struct {
	config   *model.PipelineConfig
	replaced []model.StageConfig
	err      error
}

func (m *mockPipelineService) GetConfig(_ context.Context, workspaceID, _ int64) (*model.PipelineConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.config != nil {
		return m.config, nil
	}
	return &model.PipelineConfig{WorkspaceID: workspaceID}, nil
}

func (m *mockPipelineService) ReplaceConfig(_ context.Context, workspaceID, _ int64, stages []model.StageConfig) (*model.PipelineConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.replaced = stages
	return &model.PipelineConfig{WorkspaceID: workspaceID, Stages: stages}, nil
}

func (m *mockPipelineService) Fields(_ context.Context, _, _ int64) ([]pipeline.Field, error) {
	return nil, m.err
}

type mockCustomFieldService struct {
	created []service.CustomFieldInput
	deleted []int64
	err     error
}

func (m *mockCustomFieldService) Create(_ context.Context, workspaceID, _ int64, in service.CustomFieldInput) (*model.CustomField, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, in)
	return &model.CustomField{ID: 1, WorkspaceID: workspaceID, Name: *in.Name}, nil
}

func (m *mockCustomFieldService) List(_ context.Context, _, _ int64) ([]model.CustomField, error) {
	return nil, m.err
}

func (m *mockCustomFieldService) Update(_ context.Context, workspaceID, _, fieldID int64, _ service.CustomFieldInput) (*model.CustomField, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.CustomField{ID: fieldID, WorkspaceID: workspaceID}, nil
}

func (m *mockCustomFieldService) Delete(_ context.Context, _, _, fieldID int64) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, fieldID)
	return nil
}

type mockLeadService struct {
	createFn func(ctx context.Context, workspaceID, actorID int64, in service.LeadInput) (*model.Lead, error)
	listFn   func(ctx context.Context, workspaceID, userID int64, archived bool) ([]model.Lead, error)
	updateFn func(ctx context.Context, workspaceID, actorID, leadID int64, in service.LeadInput) (*model.Lead, error)
	stageFn  func(ctx context.Context, workspaceID, actorID, leadID int64, stage model.StageSlug) (*model.Lead, error)
	err      error
}

func (m *mockLeadService) Create(ctx context.Context, workspaceID, actorID int64, in service.LeadInput) (*model.Lead, error) {
	if m.createFn != nil {
		return m.createFn(ctx, workspaceID, actorID, in)
	}
	return nil, m.err
}

func (m *mockLeadService) Get(_ context.Context, workspaceID, _, leadID int64) (*model.Lead, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.Lead{ID: leadID, WorkspaceID: workspaceID}, nil
}

func (m *mockLeadService) List(ctx context.Context, workspaceID, userID int64, archived bool) ([]model.Lead, error) {
	if m.listFn != nil {
		return m.listFn(ctx, workspaceID, userID, archived)
	}
	return nil, m.err
}

func (m *mockLeadService) Update(ctx context.Context, workspaceID, actorID, leadID int64, in service.LeadInput) (*model.Lead, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, workspaceID, actorID, leadID, in)
	}
	return nil, m.err
}

func (m *mockLeadService) ChangeStage(ctx context.Context, workspaceID, actorID, leadID int64, stage model.StageSlug) (*model.Lead, error) {
	if m.stageFn != nil {
		return m.stageFn(ctx, workspaceID, actorID, leadID, stage)
	}
	return nil, m.err
}

func (m *mockLeadService) Archive(_ context.Context, workspaceID, _, leadID int64) (*model.Lead, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.Lead{ID: leadID, WorkspaceID: workspaceID}, nil
}

func (m *mockLeadService) Restore(_ context.Context, workspaceID, _, leadID int64) (*model.Lead, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.Lead{ID: leadID, WorkspaceID: workspaceID}, nil
}

type mockPromotionService struct {
	eligible []model.Lead
	result   *service.PromotionResult
	err      error
}

func (m *mockPromotionService) ListEligible(_ context.Context, _, _ int64) ([]model.Lead, error) {
	return m.eligible, m.err
}

func (m *mockPromotionService) PromoteEligible(_ context.Context, _, _ int64) (*service.PromotionResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &service.PromotionResult{}, nil
}

type mockCampaignService struct {
	created []service.CampaignInput
	err     error
}

func (m *mockCampaignService) Create(_ context.Context, workspaceID, actorID int64, in service.CampaignInput) (*model.Campaign, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, in)
	return &model.Campaign{ID: 1, WorkspaceID: workspaceID, CreatedBy: actorID}, nil
}

func (m *mockCampaignService) Get(_ context.Context, workspaceID, _, campaignID int64) (*model.Campaign, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.Campaign{ID: campaignID, WorkspaceID: workspaceID}, nil
}

func (m *mockCampaignService) List(_ context.Context, _, _ int64) ([]model.Campaign, error) {
	return nil, m.err
}

func (m *mockCampaignService) Update(_ context.Context, workspaceID, _, campaignID int64, _ service.CampaignInput) (*model.Campaign, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.Campaign{ID: campaignID, WorkspaceID: workspaceID}, nil
}

type generateCall struct {
	workspaceID, leadID, campaignID int64
	channels                        []model.Channel
	variations                      int
}

type mockOutreachService struct {
	calls  []generateCall
	result *service.GenerateResult
	viewed [][2]int64
	err    error
}

func (m *mockOutreachService) Generate(_ context.Context, workspaceID, _, leadID, campaignID int64, channels []model.Channel, variations int) (*service.GenerateResult, error) {
	m.calls = append(m.calls, generateCall{workspaceID, leadID, campaignID, channels, variations})
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockOutreachService) GenerateAutoMessagesForLead(_ context.Context, _, _, _ int64) (*service.GenerateResult, error) {
	return m.result, m.err
}

func (m *mockOutreachService) GetSuggestions(_ context.Context, _, _, _ int64) ([]model.SuggestionBatch, error) {
	return nil, m.err
}

func (m *mockOutreachService) MarkSuggestionsViewed(_ context.Context, _, _, leadID, campaignID int64) error {
	if m.err != nil {
		return m.err
	}
	m.viewed = append(m.viewed, [2]int64{leadID, campaignID})
	return nil
}
