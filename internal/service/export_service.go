package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出归档台账与生命周期审计记录为 Excel (.xlsx)，仅管理员可用
//   - 以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Sheet "Solicitações"：每条归档申请一行；Sheet "Eventos"：每次状态迁移一行
type ExportService interface {
	// ExportArchivalLedger status 为空时导出全部申请
	ExportArchivalLedger(ctx context.Context, status, callerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	roles  RoleResolver
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, roles RoleResolver, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, roles: roles, logger: logger}
}

var (
	ledgerSheet = "Solicitações"
	eventsSheet = "Eventos"

	ledgerHeaders = []string{"ID", "Projeto", "Título", "Solicitante", "Justificativa", "Status", "Resolvido por", "Justificativa da resolução", "Criado em", "Resolvido em"}
	eventsHeaders = []string{"ID", "Projeto", "Solicitação", "Evento", "De", "Para", "Ator", "Justificativa", "Data"}
)

// ═══════════════════════════════════════════════════════════
// ExportArchivalLedger 导出归档台账
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportArchivalLedger(ctx context.Context, status, callerID string) (*bytes.Buffer, string, error) {
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, "", err
	}
	if !caller.IsAdmin() {
		err := pkgerrors.Authorization(lifecycle.CodeRoleRequired, "导出归档台账需要管理员角色").
			WithMeta("required_roles", []string{string(lifecycle.RoleAdmin)})
		logRejection(s.logger, "导出归档台账", callerID, err)
		return nil, "", err
	}
	filter := repository.ArchivalRequestFilter{Status: lifecycle.RequestStatus(status)}
	if status != "" && !filter.Status.Valid() {
		return nil, "", pkgerrors.Validation(CodeInvalidScope, "status", fmt.Sprintf("不支持的申请状态 %q", status))
	}

	// 1. 查询数据
	reqs, err := s.repo.ArchivalRequest.List(ctx, filter)
	if err != nil {
		return nil, "", translate(s.logger, "查询归档申请", err)
	}
	events, err := s.repo.LifecycleEvent.ListAll(ctx)
	if err != nil {
		return nil, "", translate(s.logger, "查询生命周期审计记录", err)
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	idx, _ := f.NewSheet(ledgerSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	writeHeader(f, ledgerSheet, ledgerHeaders, headerStyle)
	f.SetColWidth(ledgerSheet, "A", "D", 38)
	f.SetColWidth(ledgerSheet, "E", "E", 50)
	f.SetColWidth(ledgerSheet, "H", "H", 50)
	f.SetColWidth(ledgerSheet, "I", "J", 22)
	for i := range reqs {
		writeRow(f, ledgerSheet, i+2, ledgerRow(&reqs[i]))
	}

	f.NewSheet(eventsSheet)
	writeHeader(f, eventsSheet, eventsHeaders, headerStyle)
	f.SetColWidth(eventsSheet, "A", "C", 38)
	f.SetColWidth(eventsSheet, "H", "H", 50)
	for i := range events {
		writeRow(f, eventsSheet, i+2, eventRow(&events[i]))
	}

	// 3. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", translate(s.logger, "写入 Excel", err)
	}

	s.logger.Info("归档台账已导出",
		zap.String("admin_id", callerID),
		zap.Int("requests", len(reqs)),
		zap.Int("events", len(events)),
	)

	filename := "arquivamentos.xlsx"
	if status != "" {
		filename = fmt.Sprintf("arquivamentos_%s.xlsx", status)
	}
	return buf, filename, nil
}

// ── 辅助函数 ──

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheet, "A1", cell(colName(len(headers)-1), 1), style)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

func ledgerRow(r *model.ArchivalRequest) []any {
	title := ""
	if r.Project != nil {
		title = r.Project.Title
	}
	return []any{
		r.ArchivalRequestID,
		r.ProjectID,
		title,
		r.RequesterID,
		r.Justification,
		string(r.Status),
		deref(r.ResolverID),
		deref(r.ResolutionJustification),
		formatTime(r.CreatedAt),
		func() string {
			if r.ResolvedAt == nil {
				return ""
			}
			return formatTime(*r.ResolvedAt)
		}(),
	}
}

func eventRow(e *model.LifecycleEvent) []any {
	return []any{
		e.LifecycleEventID,
		e.ProjectID,
		deref(e.ArchivalRequestID),
		string(e.Event),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorID,
		e.Justification,
		formatTime(e.CreatedAt),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
