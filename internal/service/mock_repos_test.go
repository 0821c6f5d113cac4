package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/phase"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// 所有 mock 均以互斥锁保护并返回副本，模拟数据库行的读写隔离

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func copyProject(p *model.Project) *model.Project {
	cp := *p
	cp.Authors = append([]model.ProjectAuthor(nil), p.Authors...)
	cp.Advisors = append([]model.ProjectAdvisor(nil), p.Advisors...)
	return &cp
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	if err := project.CheckAuthors(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if project.ProjectID == "" {
		project.ProjectID = uuid.NewString()
	}
	if project.Status == "" {
		project.Status = lifecycle.StatusActive
	}
	if project.Version == 0 {
		project.Version = 1
	}
	now := time.Now()
	project.CreatedAt, project.UpdatedAt = now, now
	for i := range project.Authors {
		project.Authors[i].ProjectID = project.ProjectID
	}
	for i := range project.Advisors {
		project.Advisors[i].ProjectID = project.ProjectID
	}
	m.projects[project.ProjectID] = copyProject(project)
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.projects[id]; ok {
		return copyProject(p), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Project, error) {
	return m.GetByID(ctx, id)
}

func (m *mockProjectRepo) UpdateStatus(_ context.Context, project *model.Project, status lifecycle.Status, actorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.projects[project.ProjectID]
	if !ok || stored.Version != project.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = status
	stored.Version++
	stored.UpdatedBy = &actorID
	stored.UpdatedAt = time.Now()

	project.Status = status
	project.Version = stored.Version
	project.UpdatedBy = &actorID
	project.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *mockProjectRepo) List(_ context.Context, filter repository.ProjectListFilter) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Project
	for _, p := range m.projects {
		if len(filter.Statuses) > 0 && !containsProjectStatus(filter.Statuses, p.Status) {
			continue
		}
		if filter.AuthorID != "" && !p.IsAuthor(filter.AuthorID) {
			continue
		}
		result = append(result, *copyProject(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProjectID < result[j].ProjectID })
	return result, nil
}

func containsProjectStatus(list []lifecycle.Status, s lifecycle.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ── Mock ArchivalRequestRepository ──

type mockArchivalRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*model.ArchivalRequest
	order    []string
	projects *mockProjectRepo
	seq      int
}

func newMockArchivalRequestRepo(projects *mockProjectRepo) *mockArchivalRequestRepo {
	return &mockArchivalRequestRepo{requests: make(map[string]*model.ArchivalRequest), projects: projects}
}

func copyRequest(r *model.ArchivalRequest) *model.ArchivalRequest {
	cp := *r
	return &cp
}

// Create 模拟部分唯一索引：同一项目最多一条 pending
func (m *mockArchivalRequestRepo) Create(_ context.Context, req *model.ArchivalRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.ProjectID == req.ProjectID && r.Status == lifecycle.RequestPending {
			return gorm.ErrDuplicatedKey
		}
	}
	if req.ArchivalRequestID == "" {
		req.ArchivalRequestID = uuid.NewString()
	}
	req.Version = 1
	// 递增时间戳保证列表顺序稳定
	m.seq++
	req.CreatedAt = time.Date(2026, 3, 1, 8, 0, m.seq, 0, time.UTC)
	req.UpdatedAt = req.CreatedAt
	m.requests[req.ArchivalRequestID] = copyRequest(req)
	m.order = append(m.order, req.ArchivalRequestID)
	return nil
}

func (m *mockArchivalRequestRepo) GetByID(_ context.Context, id string) (*model.ArchivalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.requests[id]; ok {
		return copyRequest(r), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockArchivalRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ArchivalRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *mockArchivalRequestRepo) GetPendingByProject(_ context.Context, projectID string) (*model.ArchivalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.ProjectID == projectID && r.Status == lifecycle.RequestPending {
			return copyRequest(r), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Resolve 模拟条件更新：WHERE status='pending' AND version=?
func (m *mockArchivalRequestRepo) Resolve(_ context.Context, req *model.ArchivalRequest, status lifecycle.RequestStatus, resolverID string, justification *string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.requests[req.ArchivalRequestID]
	if !ok || stored.Status != lifecycle.RequestPending || stored.Version != req.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = status
	stored.ResolverID = &resolverID
	stored.ResolutionJustification = justification
	stored.ResolvedAt = &at
	stored.Version++

	req.Status = status
	req.ResolverID = &resolverID
	req.ResolutionJustification = justification
	req.ResolvedAt = &at
	req.Version = stored.Version
	return nil
}

func (m *mockArchivalRequestRepo) List(_ context.Context, filter repository.ArchivalRequestFilter) ([]model.ArchivalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.ArchivalRequest
	for _, id := range m.order {
		r := m.requests[id]
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.RequesterID != "" && r.RequesterID != filter.RequesterID {
			continue
		}
		if filter.ProjectID != "" && r.ProjectID != filter.ProjectID {
			continue
		}
		if filter.AdvisorID != "" && m.projects != nil {
			p, err := m.projects.GetByID(context.Background(), r.ProjectID)
			if err != nil || !p.IsAdvisor(filter.AdvisorID) {
				continue
			}
		}
		result = append(result, *copyRequest(r))
	}
	return result, nil
}

func (m *mockArchivalRequestRepo) countPending(projectID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.requests {
		if r.ProjectID == projectID && r.Status == lifecycle.RequestPending {
			n++
		}
	}
	return n
}

// ── Mock PhaseRepository ──

type phaseKey struct {
	projectID string
	phase     phase.Phase
}

type mockPhaseRepo struct {
	mu   sync.Mutex
	rows map[phaseKey]*model.ProjectPhase
	err  error // 非 nil 时所有读取返回该错误
}

func newMockPhaseRepo() *mockPhaseRepo {
	return &mockPhaseRepo{rows: make(map[phaseKey]*model.ProjectPhase)}
}

func (m *mockPhaseRepo) ListByProject(_ context.Context, projectID string) ([]model.ProjectPhase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var result []model.ProjectPhase
	for _, p := range phase.All() {
		if row, ok := m.rows[phaseKey{projectID, p}]; ok {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *mockPhaseRepo) Get(_ context.Context, projectID string, p phase.Phase) (*model.ProjectPhase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if row, ok := m.rows[phaseKey{projectID, p}]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPhaseRepo) Upsert(_ context.Context, row *model.ProjectPhase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *row
	m.rows[phaseKey{row.ProjectID, row.Phase}] = &cp
	return nil
}

// ── Mock LifecycleEventRepository ──

type mockLifecycleEventRepo struct {
	mu     sync.Mutex
	events []model.LifecycleEvent
}

func newMockLifecycleEventRepo() *mockLifecycleEventRepo {
	return &mockLifecycleEventRepo{}
}

func (m *mockLifecycleEventRepo) Create(_ context.Context, event *model.LifecycleEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if event.LifecycleEventID == "" {
		event.LifecycleEventID = uuid.NewString()
	}
	event.CreatedAt = time.Now()
	m.events = append(m.events, *event)
	return nil
}

func (m *mockLifecycleEventRepo) ListByProject(_ context.Context, projectID string) ([]model.LifecycleEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.LifecycleEvent
	for _, e := range m.events {
		if e.ProjectID == projectID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockLifecycleEventRepo) ListAll(_ context.Context) ([]model.LifecycleEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.LifecycleEvent(nil), m.events...), nil
}

// ── Mock UserRoleRepository ──

type mockUserRoleRepo struct {
	mu    sync.Mutex
	roles map[string][]string
	err   error
}

func newMockUserRoleRepo() *mockUserRoleRepo {
	return &mockUserRoleRepo{roles: make(map[string][]string)}
}

func (m *mockUserRoleRepo) RolesOf(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]string(nil), m.roles[userID]...), nil
}

func (m *mockUserRoleRepo) ListUserIDsByRole(_ context.Context, role string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, roles := range m.roles {
		for _, r := range roles {
			if r == role {
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockUserRoleRepo) Grant(_ context.Context, userID, role, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[userID] = append(m.roles[userID], role)
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	mu    sync.Mutex
	items []model.Notification
}

func (m *mockNotificationRepo) BatchCreate(_ context.Context, items []model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []model.Notification
	for _, n := range m.items {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			matched = append(matched, n)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].NotificationID == notificationID && m.items[i].UserID == userID {
			m.items[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock Notifier ──

type recordingNotifier struct {
	mu        sync.Mutex
	requested []ArchiveRequestedNotice
	resolved  []ArchiveResolvedNotice
	fail      bool
}

var errNotifierDown = errors.New("fila indisponível")

func (n *recordingNotifier) ArchiveRequested(_ context.Context, notice ArchiveRequestedNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errNotifierDown
	}
	n.requested = append(n.requested, notice)
	return nil
}

func (n *recordingNotifier) ArchiveResolved(_ context.Context, notice ArchiveResolvedNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errNotifierDown
	}
	n.resolved = append(n.resolved, notice)
	return nil
}

// ── 测试辅助 ──

const (
	testProjectID  = "proj-1"
	testLeaderID   = "aluno-lider"
	testCoAuthorID = "aluno-coautor"
	testOutsiderID = "aluno-externo"
	testAdvisorID  = "prof-orientador"
	testOtherProf  = "prof-outro"
	testAdminID    = "admin-1"

	testRequestText = "Quero arquivar pois o projeto foi descontinuado"
	testDenialText  = "Justificativa de negação"
	testAdminText   = "Violação de termos"
)

type testEnv struct {
	repo     *repository.Repository
	projects *mockProjectRepo
	requests *mockArchivalRequestRepo
	phases   *mockPhaseRepo
	events   *mockLifecycleEventRepo
	roles    *mockUserRoleRepo
	inbox    *mockNotificationRepo
	notifier *recordingNotifier
}

// newTestEnv 构造带一个 Active 项目的测试环境
func newTestEnv() *testEnv {
	projects := newMockProjectRepo()
	env := &testEnv{
		projects: projects,
		requests: newMockArchivalRequestRepo(projects),
		phases:   newMockPhaseRepo(),
		events:   newMockLifecycleEventRepo(),
		roles:    newMockUserRoleRepo(),
		inbox:    &mockNotificationRepo{},
		notifier: &recordingNotifier{},
	}
	env.repo = &repository.Repository{
		Project:         env.projects,
		ArchivalRequest: env.requests,
		Phase:           env.phases,
		LifecycleEvent:  env.events,
		UserRole:        env.roles,
		Notification:    env.inbox,
	}

	env.roles.roles[testLeaderID] = []string{"student"}
	env.roles.roles[testCoAuthorID] = []string{"ALUNO"}
	env.roles.roles[testOutsiderID] = []string{"student"}
	env.roles.roles[testAdvisorID] = []string{"advisor"}
	env.roles.roles[testOtherProf] = []string{"PROFESSOR"}
	env.roles.roles[testAdminID] = []string{"admin"}

	_ = projects.Create(context.Background(), &model.Project{
		ProjectID:   testProjectID,
		Title:       "Sistema de Irrigação Inteligente",
		Description: "Monitoramento de umidade do solo",
		Authors: []model.ProjectAuthor{
			{UserID: testLeaderID, IsLeader: true, Position: 0},
			{UserID: testCoAuthorID, Position: 1},
		},
		Advisors: []model.ProjectAdvisor{{UserID: testAdvisorID}},
	})
	return env
}

func (e *testEnv) project() *model.Project {
	p, _ := e.projects.GetByID(context.Background(), testProjectID)
	return p
}
