package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// ── 测试辅助 ──

func setupTestLifecycleService() (LifecycleService, *testEnv) {
	env := newTestEnv()
	logger := zap.NewNop()
	roles := NewRoleResolver(env.repo, logger)
	machine := lifecycle.NewMachine(lifecycle.DefaultPolicy())
	svc := NewLifecycleService(env.repo, roles, machine, env.notifier, logger)
	return svc, env
}

func justification(text string) *dto.JustificationRequest {
	return &dto.JustificationRequest{Justification: text}
}

func mustRequestArchive(t *testing.T, svc LifecycleService) *dto.ArchivalRequestResponse {
	t.Helper()
	req, err := svc.RequestArchive(context.Background(), testProjectID, justification(testRequestText), testLeaderID)
	if err != nil {
		t.Fatalf("RequestArchive 应成功: %v", err)
	}
	return req
}

func assertKind(t *testing.T, err error, kind pkgerrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望 %s 错误，实际为 nil", kind)
	}
	if got := pkgerrors.KindOf(err); got != kind {
		t.Fatalf("期望 %s 错误，实际 %s: %v", kind, got, err)
	}
}

// ── 场景测试 ──

func TestRequestArchive_ScenarioA_AuthorSucceeds(t *testing.T) {
	svc, env := setupTestLifecycleService()

	req := mustRequestArchive(t, svc)

	if req.Status != string(lifecycle.RequestPending) {
		t.Errorf("期望申请状态 pending，实际=%s", req.Status)
	}
	if req.RequesterID != testLeaderID {
		t.Errorf("期望申请人=%s，实际=%s", testLeaderID, req.RequesterID)
	}
	if got := env.project().Status; got != lifecycle.StatusPendingArchive {
		t.Errorf("期望项目状态 pending_archive，实际=%s", got)
	}
	if n := env.requests.countPending(testProjectID); n != 1 {
		t.Errorf("期望 1 条待处理申请，实际=%d", n)
	}

	if len(env.notifier.requested) != 1 {
		t.Fatalf("期望发送 1 条申请通知，实际=%d", len(env.notifier.requested))
	}
	notice := env.notifier.requested[0]
	if len(notice.AdvisorIDs) != 1 || notice.AdvisorIDs[0] != testAdvisorID {
		t.Errorf("通知应发给项目导师，实际=%v", notice.AdvisorIDs)
	}

	events, _ := env.events.ListByProject(context.Background(), testProjectID)
	if len(events) != 1 || events[0].Event != lifecycle.EventRequestArchive || events[0].ArchivalRequestID == nil {
		t.Errorf("应记录一条 request_archive 审计事件，实际=%+v", events)
	}
}

func TestRequestArchive_ScenarioB_ShortJustification(t *testing.T) {
	svc, env := setupTestLifecycleService()

	_, err := svc.RequestArchive(context.Background(), testProjectID, justification("curto"), testLeaderID)
	assertKind(t, err, pkgerrors.KindValidation)

	ae, _ := pkgerrors.As(err)
	if ae.Field != "justification" || ae.Meta["min_length"] != 20 {
		t.Errorf("错误应指出字段与最小长度，实际 field=%s meta=%v", ae.Field, ae.Meta)
	}
	if got := env.project().Status; got != lifecycle.StatusActive {
		t.Errorf("校验失败不应改变状态，实际=%s", got)
	}
	if n := env.requests.countPending(testProjectID); n != 0 {
		t.Errorf("校验失败不应创建申请，实际=%d", n)
	}
}

func TestApproveArchive_ScenarioC(t *testing.T) {
	svc, env := setupTestLifecycleService()
	req := mustRequestArchive(t, svc)

	project, err := svc.ApproveArchive(context.Background(), req.ID, testAdvisorID)
	if err != nil {
		t.Fatalf("ApproveArchive 应成功: %v", err)
	}
	if project.Status != string(lifecycle.StatusArchived) {
		t.Errorf("期望项目状态 archived，实际=%s", project.Status)
	}

	stored, _ := env.requests.GetByID(context.Background(), req.ID)
	if stored.Status != lifecycle.RequestApproved {
		t.Errorf("期望申请状态 approved，实际=%s", stored.Status)
	}
	if stored.ResolverID == nil || *stored.ResolverID != testAdvisorID {
		t.Errorf("期望处理人=%s，实际=%v", testAdvisorID, stored.ResolverID)
	}
	if stored.ResolutionJustification != nil {
		t.Error("批准不应记录处理理由")
	}
	if stored.ResolvedAt == nil {
		t.Error("处理时间不应为空")
	}

	if len(env.notifier.resolved) != 1 || env.notifier.resolved[0].RequesterID != testLeaderID {
		t.Errorf("应通知申请人，实际=%+v", env.notifier.resolved)
	}
}

func TestRequestArchive_ScenarioD_PendingConflict(t *testing.T) {
	svc, _ := setupTestLifecycleService()
	mustRequestArchive(t, svc)

	for _, caller := range []string{testCoAuthorID, testLeaderID, testOutsiderID} {
		_, err := svc.RequestArchive(context.Background(), testProjectID, justification(testRequestText), caller)
		assertKind(t, err, pkgerrors.KindConflict)
	}
}

func TestDenyArchive_ScenarioE(t *testing.T) {
	svc, env := setupTestLifecycleService()
	req := mustRequestArchive(t, svc)

	denied, err := svc.DenyArchive(context.Background(), req.ID, justification(testDenialText), testAdvisorID)
	if err != nil {
		t.Fatalf("DenyArchive 应成功: %v", err)
	}
	if denied.Status != string(lifecycle.RequestDenied) {
		t.Errorf("期望申请状态 denied，实际=%s", denied.Status)
	}
	if denied.ResolutionJustification == nil || *denied.ResolutionJustification != testDenialText {
		t.Errorf("驳回理由应被保存，实际=%v", denied.ResolutionJustification)
	}
	if got := env.project().Status; got != lifecycle.StatusActive {
		t.Errorf("驳回后项目应回到 active，实际=%s", got)
	}

	_, err = svc.DenyArchive(context.Background(), req.ID, justification(testDenialText), testAdvisorID)
	assertKind(t, err, pkgerrors.KindInvalidState)
	_, err = svc.ApproveArchive(context.Background(), req.ID, testAdvisorID)
	assertKind(t, err, pkgerrors.KindInvalidState)

	stored, _ := env.requests.GetByID(context.Background(), req.ID)
	if stored.Status != lifecycle.RequestDenied {
		t.Errorf("已处理申请不可变，实际=%s", stored.Status)
	}
}

func TestAdminDelete_ScenarioF(t *testing.T) {
	svc, env := setupTestLifecycleService()

	project, err := svc.AdminDelete(context.Background(), testProjectID, justification(testAdminText), testAdminID)
	if err != nil {
		t.Fatalf("AdminDelete 应成功: %v", err)
	}
	if project.Status != string(lifecycle.StatusDeleted) {
		t.Errorf("期望 deleted，实际=%s", project.Status)
	}
	if len(project.AllowedEvents) != 0 {
		t.Errorf("已删除项目不应有可用操作，实际=%v", project.AllowedEvents)
	}

	_, err = svc.RequestArchive(context.Background(), testProjectID, justification(testRequestText), testLeaderID)
	assertKind(t, err, pkgerrors.KindInvalidState)
	_, err = svc.AdminDeactivate(context.Background(), testProjectID, justification(testAdminText), testAdminID)
	assertKind(t, err, pkgerrors.KindInvalidState)
	_, err = svc.AdminDelete(context.Background(), testProjectID, justification(testAdminText), testAdminID)
	assertKind(t, err, pkgerrors.KindInvalidState)

	events, _ := env.events.ListByProject(context.Background(), testProjectID)
	if len(events) != 1 || events[0].Justification != testAdminText {
		t.Errorf("管理员理由应写入审计记录，实际=%+v", events)
	}
}

func TestRequestThenDeny_RoundTripPreservesProject(t *testing.T) {
	svc, env := setupTestLifecycleService()
	before := env.project()

	req := mustRequestArchive(t, svc)
	if _, err := svc.DenyArchive(context.Background(), req.ID, justification(testDenialText), testAdvisorID); err != nil {
		t.Fatalf("DenyArchive 应成功: %v", err)
	}
	after := env.project()

	if after.Status != before.Status || after.Title != before.Title || after.Description != before.Description {
		t.Errorf("往返后项目字段应保持不变: before=%+v after=%+v", before, after)
	}
	if len(after.Authors) != len(before.Authors) || len(after.Advisors) != len(before.Advisors) {
		t.Error("往返后作者与导师不应变化")
	}
	for i := range before.Authors {
		if after.Authors[i] != before.Authors[i] {
			t.Errorf("作者 %d 变化: %+v → %+v", i, before.Authors[i], after.Authors[i])
		}
	}

	// 驳回后允许再次申请
	if _, err := svc.RequestArchive(context.Background(), testProjectID, justification(testRequestText), testCoAuthorID); err != nil {
		t.Errorf("驳回后共同作者应可再次申请: %v", err)
	}
}

// ── 授权测试 ──

func TestRequestArchive_NonAuthorRejected(t *testing.T) {
	svc, env := setupTestLifecycleService()

	for _, caller := range []string{testOutsiderID, testAdvisorID, testAdminID} {
		_, err := svc.RequestArchive(context.Background(), testProjectID, justification(testRequestText), caller)
		assertKind(t, err, pkgerrors.KindAuthorization)
	}
	if got := env.project().Status; got != lifecycle.StatusActive {
		t.Errorf("授权失败不应改变状态，实际=%s", got)
	}
}

func TestApproveArchive_StudentRejectedWithRequiredRoles(t *testing.T) {
	svc, _ := setupTestLifecycleService()
	req := mustRequestArchive(t, svc)

	_, err := svc.ApproveArchive(context.Background(), req.ID, testLeaderID)
	assertKind(t, err, pkgerrors.KindAuthorization)
	ae, _ := pkgerrors.As(err)
	roles, _ := ae.Meta["required_roles"].([]string)
	if len(roles) != 2 {
		t.Errorf("错误应列出所需角色，实际=%v", ae.Meta)
	}
}

func TestApproveArchive_AnyAdvisorMayResolve(t *testing.T) {
	svc, _ := setupTestLifecycleService()
	req := mustRequestArchive(t, svc)

	// testOtherProf 不是该项目的指定导师
	if _, err := svc.ApproveArchive(context.Background(), req.ID, testOtherProf); err != nil {
		t.Errorf("任意导师都应可处理待处理申请: %v", err)
	}
}

func TestApproveArchive_RequestNotFound(t *testing.T) {
	svc, _ := setupTestLifecycleService()

	_, err := svc.ApproveArchive(context.Background(), "nao-existe", testAdvisorID)
	assertKind(t, err, pkgerrors.KindNotFound)
}

func TestDenyArchive_ShortJustification(t *testing.T) {
	svc, env := setupTestLifecycleService()
	req := mustRequestArchive(t, svc)

	_, err := svc.DenyArchive(context.Background(), req.ID, justification("não"), testAdvisorID)
	assertKind(t, err, pkgerrors.KindValidation)

	stored, _ := env.requests.GetByID(context.Background(), req.ID)
	if stored.Status != lifecycle.RequestPending {
		t.Errorf("校验失败申请应保持 pending，实际=%s", stored.Status)
	}
}

// ── 管理员操作 ──

func TestAdminDeactivate(t *testing.T) {
	svc, env := setupTestLifecycleService()

	_, err := svc.AdminDeactivate(context.Background(), testProjectID, justification(testAdminText), testAdvisorID)
	assertKind(t, err, pkgerrors.KindAuthorization)

	_, err = svc.AdminDeactivate(context.Background(), testProjectID, justification("curto"), testAdminID)
	assertKind(t, err, pkgerrors.KindValidation)

	project, err := svc.AdminDeactivate(context.Background(), testProjectID, justification(testAdminText), testAdminID)
	if err != nil {
		t.Fatalf("AdminDeactivate 应成功: %v", err)
	}
	if project.Status != string(lifecycle.StatusArchived) {
		t.Errorf("期望 archived，实际=%s", project.Status)
	}

	// Archived → Archived 同样允许，理由再次记录
	if _, err := svc.AdminDeactivate(context.Background(), testProjectID, justification("Reforço da decisão"), testAdminID); err != nil {
		t.Errorf("对已归档项目再次停用应成功: %v", err)
	}
	events, _ := env.events.ListByProject(context.Background(), testProjectID)
	if len(events) != 2 {
		t.Fatalf("期望 2 条审计记录，实际=%d", len(events))
	}
	if events[0].FromStatus != lifecycle.StatusActive || events[1].FromStatus != lifecycle.StatusArchived {
		t.Errorf("审计记录源状态不符: %+v", events)
	}
}

func TestAdminDeactivate_PendingArchiveRejected(t *testing.T) {
	svc, _ := setupTestLifecycleService()
	mustRequestArchive(t, svc)

	_, err := svc.AdminDeactivate(context.Background(), testProjectID, justification(testAdminText), testAdminID)
	assertKind(t, err, pkgerrors.KindInvalidState)
}

func TestAdminDelete_AutoDeniesPendingRequest(t *testing.T) {
	svc, env := setupTestLifecycleService()
	req := mustRequestArchive(t, svc)

	if _, err := svc.AdminDelete(context.Background(), testProjectID, justification(testAdminText), testAdminID); err != nil {
		t.Fatalf("AdminDelete 应成功: %v", err)
	}

	stored, _ := env.requests.GetByID(context.Background(), req.ID)
	if stored.Status != lifecycle.RequestDenied {
		t.Errorf("待处理申请应被自动驳回，实际=%s", stored.Status)
	}
	if stored.ResolutionJustification == nil || *stored.ResolutionJustification != testAdminText {
		t.Errorf("自动驳回应使用管理员理由，实际=%v", stored.ResolutionJustification)
	}
	if n := env.requests.countPending(testProjectID); n != 0 {
		t.Errorf("删除后不应残留待处理申请，实际=%d", n)
	}
	if len(env.notifier.resolved) != 1 || env.notifier.resolved[0].Status != lifecycle.RequestDenied {
		t.Errorf("应通知申请人驳回结果，实际=%+v", env.notifier.resolved)
	}

	events, _ := env.events.ListByProject(context.Background(), testProjectID)
	last := events[len(events)-1]
	if last.Event != lifecycle.EventAdminDelete || last.ArchivalRequestID == nil || *last.ArchivalRequestID != req.ID {
		t.Errorf("删除审计记录应关联被驳回的申请，实际=%+v", last)
	}
}

func TestAdminDelete_ProjectNotFound(t *testing.T) {
	svc, _ := setupTestLifecycleService()

	_, err := svc.AdminDelete(context.Background(), "nao-existe", justification(testAdminText), testAdminID)
	assertKind(t, err, pkgerrors.KindNotFound)
}

// ── 通知失败不影响操作 ──

func TestRequestArchive_NotifierFailureIsSwallowed(t *testing.T) {
	svc, env := setupTestLifecycleService()
	env.notifier.fail = true

	req := mustRequestArchive(t, svc)
	if _, err := svc.ApproveArchive(context.Background(), req.ID, testAdvisorID); err != nil {
		t.Fatalf("通知失败不应影响批准: %v", err)
	}
	if got := env.project().Status; got != lifecycle.StatusArchived {
		t.Errorf("期望 archived，实际=%s", got)
	}
}

func TestRoleResolverFailure_IsInternal(t *testing.T) {
	svc, env := setupTestLifecycleService()
	env.roles.err = errors.New("conexão recusada")

	_, err := svc.RequestArchive(context.Background(), testProjectID, justification(testRequestText), testLeaderID)
	assertKind(t, err, pkgerrors.KindInternal)
	if got := env.project().Status; got != lifecycle.StatusActive {
		t.Errorf("角色解析失败不应改变状态，实际=%s", got)
	}
}

// ── 并发 ──

func TestRequestArchive_ConcurrentSingleWinner(t *testing.T) {
	svc, env := setupTestLifecycleService()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		caller := testLeaderID
		if i%2 == 1 {
			caller = testCoAuthorID
		}
		wg.Add(1)
		go func(caller string) {
			defer wg.Done()
			_, err := svc.RequestArchive(context.Background(), testProjectID, justification(testRequestText), caller)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, pkgerrors.ErrConflict):
				conflicts++
			default:
				t.Errorf("意外错误: %v", err)
			}
		}(caller)
	}
	wg.Wait()

	if successes != 1 || conflicts != workers-1 {
		t.Errorf("期望 1 成功 %d 冲突，实际 %d 成功 %d 冲突", workers-1, successes, conflicts)
	}
	if n := env.requests.countPending(testProjectID); n != 1 {
		t.Errorf("期望恰好 1 条待处理申请，实际=%d", n)
	}
}

func TestResolve_ConcurrentSingleWinner(t *testing.T) {
	svc, env := setupTestLifecycleService()
	req := mustRequestArchive(t, svc)

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		approved int
		denied   int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = svc.ApproveArchive(context.Background(), req.ID, testAdvisorID)
			} else {
				_, err = svc.DenyArchive(context.Background(), req.ID, justification(testDenialText), testOtherProf)
			}
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && i%2 == 0:
				approved++
			case err == nil:
				denied++
			case errors.Is(err, pkgerrors.ErrConflict), errors.Is(err, pkgerrors.ErrInvalidState):
				rejected++
			default:
				t.Errorf("意外错误: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if approved+denied != 1 || rejected != workers-1 {
		t.Fatalf("期望恰好 1 次处理成功，实际 approved=%d denied=%d rejected=%d", approved, denied, rejected)
	}

	stored, _ := env.requests.GetByID(context.Background(), req.ID)
	project := env.project()
	switch {
	case approved == 1:
		if stored.Status != lifecycle.RequestApproved || project.Status != lifecycle.StatusArchived {
			t.Errorf("批准胜出时状态不一致: request=%s project=%s", stored.Status, project.Status)
		}
	default:
		if stored.Status != lifecycle.RequestDenied || project.Status != lifecycle.StatusActive {
			t.Errorf("驳回胜出时状态不一致: request=%s project=%s", stored.Status, project.Status)
		}
	}
}

// ── 查询 ──

func TestGetProject_Visibility(t *testing.T) {
	svc, _ := setupTestLifecycleService()

	resp, err := svc.GetProject(context.Background(), testProjectID, testOutsiderID)
	if err != nil {
		t.Fatalf("Active 项目应公开可见: %v", err)
	}
	if resp.CurrentPhase == nil || resp.CurrentPhase.Name != "ideation" {
		t.Errorf("无阶段内容时当前阶段应为 ideation，实际=%+v", resp.CurrentPhase)
	}

	leaderView, _ := svc.GetProject(context.Background(), testProjectID, testLeaderID)
	if len(leaderView.AllowedEvents) != 1 || leaderView.AllowedEvents[0] != string(lifecycle.EventRequestArchive) {
		t.Errorf("作者可用操作应为 request_archive，实际=%v", leaderView.AllowedEvents)
	}

	mustRequestArchive(t, svc)
	_, err = svc.GetProject(context.Background(), testProjectID, testOutsiderID)
	assertKind(t, err, pkgerrors.KindNotFound)
	if _, err := svc.GetProject(context.Background(), testProjectID, testCoAuthorID); err != nil {
		t.Errorf("作者应可查看待审核项目: %v", err)
	}

	if _, err := svc.AdminDelete(context.Background(), testProjectID, justification(testAdminText), testAdminID); err != nil {
		t.Fatalf("AdminDelete 应成功: %v", err)
	}
	_, err = svc.GetProject(context.Background(), testProjectID, testAdvisorID)
	assertKind(t, err, pkgerrors.KindNotFound)
	if _, err := svc.GetProject(context.Background(), testProjectID, testAdminID); err != nil {
		t.Errorf("管理员应可查看已删除项目: %v", err)
	}
}

func TestGetProject_PhaseReadFailureDegrades(t *testing.T) {
	svc, env := setupTestLifecycleService()
	env.phases.err = errors.New("timeout")

	resp, err := svc.GetProject(context.Background(), testProjectID, testLeaderID)
	if err != nil {
		t.Fatalf("阶段读取失败不应影响项目查询: %v", err)
	}
	if resp.CurrentPhase != nil {
		t.Errorf("阶段读取失败时不应返回当前阶段，实际=%+v", resp.CurrentPhase)
	}
}

func TestListProjectHistory(t *testing.T) {
	svc, _ := setupTestLifecycleService()
	req := mustRequestArchive(t, svc)
	if _, err := svc.DenyArchive(context.Background(), req.ID, justification(testDenialText), testAdvisorID); err != nil {
		t.Fatalf("DenyArchive 应成功: %v", err)
	}

	history, err := svc.ListProjectHistory(context.Background(), testProjectID, testAdvisorID)
	if err != nil {
		t.Fatalf("ListProjectHistory 应成功: %v", err)
	}
	if len(history) != 2 || history[0].Event != "request_archive" || history[1].Event != "deny" {
		t.Errorf("审计记录顺序不符: %+v", history)
	}
	if history[1].Justification != testDenialText {
		t.Errorf("驳回审计记录应包含理由，实际=%q", history[1].Justification)
	}

	// 项目作者（含非负责人）可查看本项目历史
	if own, err := svc.ListProjectHistory(context.Background(), testProjectID, testCoAuthorID); err != nil || len(own) != 2 {
		t.Errorf("作者应可查看项目历史: %d 条 err=%v", len(own), err)
	}

	_, err = svc.ListProjectHistory(context.Background(), testProjectID, testOutsiderID)
	assertKind(t, err, pkgerrors.KindAuthorization)
}

func TestListDeactivatedProjects_Scopes(t *testing.T) {
	svc, env := setupTestLifecycleService()
	_ = env.projects.Create(context.Background(), &model.Project{
		ProjectID: "proj-2",
		Title:     "Aplicativo de Carona",
		Authors:   []model.ProjectAuthor{{UserID: testOutsiderID, IsLeader: true}},
	})

	if _, err := svc.AdminDeactivate(context.Background(), testProjectID, justification(testAdminText), testAdminID); err != nil {
		t.Fatalf("AdminDeactivate 应成功: %v", err)
	}
	if _, err := svc.AdminDelete(context.Background(), "proj-2", justification(testAdminText), testAdminID); err != nil {
		t.Fatalf("AdminDelete 应成功: %v", err)
	}

	mine, err := svc.ListDeactivatedProjects(context.Background(), &dto.DeactivatedProjectsQuery{}, testLeaderID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("学生默认应看到自己的已停用项目，实际 len=%d err=%v", len(mine), err)
	}
	outsider, _ := svc.ListDeactivatedProjects(context.Background(), &dto.DeactivatedProjectsQuery{Scope: "mine"}, testOutsiderID)
	if len(outsider) != 0 {
		t.Errorf("已删除项目不应出现在默认列表中，实际=%d", len(outsider))
	}

	_, err = svc.ListDeactivatedProjects(context.Background(), &dto.DeactivatedProjectsQuery{Scope: "all"}, testLeaderID)
	assertKind(t, err, pkgerrors.KindAuthorization)
	_, err = svc.ListDeactivatedProjects(context.Background(), &dto.DeactivatedProjectsQuery{Scope: "all", IncludeDeleted: true}, testAdvisorID)
	assertKind(t, err, pkgerrors.KindAuthorization)

	all, err := svc.ListDeactivatedProjects(context.Background(), &dto.DeactivatedProjectsQuery{Scope: "all", IncludeDeleted: true}, testAdminID)
	if err != nil || len(all) != 2 {
		t.Errorf("管理员应看到已归档与已删除项目，实际 len=%d err=%v", len(all), err)
	}
}

func TestListArchivalRequests_Scopes(t *testing.T) {
	svc, _ := setupTestLifecycleService()
	mustRequestArchive(t, svc)

	mine, err := svc.ListMyArchivalRequests(context.Background(), testLeaderID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("申请人应看到自己的申请，实际 len=%d err=%v", len(mine), err)
	}
	coAuthor, _ := svc.ListMyArchivalRequests(context.Background(), testCoAuthorID)
	if len(coAuthor) != 0 {
		t.Errorf("mine 仅包含调用者自己的申请，实际=%d", len(coAuthor))
	}

	_, err = svc.ListArchivalRequests(context.Background(), &dto.ArchivalRequestListQuery{Scope: "all"}, testLeaderID)
	assertKind(t, err, pkgerrors.KindAuthorization)
	_, err = svc.ListPendingArchivalRequests(context.Background(), testLeaderID)
	assertKind(t, err, pkgerrors.KindAuthorization)

	pending, err := svc.ListPendingArchivalRequests(context.Background(), testOtherProf)
	if err != nil || len(pending) != 1 {
		t.Errorf("任意导师应看到全部待处理申请，实际 len=%d err=%v", len(pending), err)
	}
	approved, err := svc.ListArchivalRequests(context.Background(), &dto.ArchivalRequestListQuery{Status: "approved"}, testAdminID)
	if err != nil || len(approved) != 0 {
		t.Errorf("按状态过滤结果不符，实际 len=%d err=%v", len(approved), err)
	}
}

func TestGetArchivalRequest_Visibility(t *testing.T) {
	svc, _ := setupTestLifecycleService()
	req := mustRequestArchive(t, svc)

	for _, caller := range []string{testLeaderID, testCoAuthorID, testAdvisorID, testAdminID} {
		got, err := svc.GetArchivalRequest(context.Background(), req.ID, caller)
		if err != nil {
			t.Errorf("%s 应可查看申请: %v", caller, err)
			continue
		}
		if got.ProjectTitle == "" {
			t.Error("申请详情应包含项目标题")
		}
	}
	_, err := svc.GetArchivalRequest(context.Background(), req.ID, testOutsiderID)
	assertKind(t, err, pkgerrors.KindAuthorization)
}
