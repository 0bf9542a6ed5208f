package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-voice/backend/internal/model"
	"campus-voice/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoComplaints = errors.New("当前可见范围内暂无投诉")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出范围与调用者的投诉可见范围一致（管理员全量，系主任本院系 Pending）
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportComplaints 导出投诉清单为 Excel，返回文件内容与建议文件名
	ExportComplaints(ctx context.Context, caller *Caller) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportHeaders = []string{"标题", "类别", "优先级", "状态", "学生姓名", "学生邮箱", "院系", "处理意见", "提交时间", "办结时间"}

func (s *exportService) ExportComplaints(ctx context.Context, caller *Caller) (*bytes.Buffer, string, error) {
	filters, err := visibleComplaintFilters(caller)
	if err != nil {
		return nil, "", err
	}

	complaints, err := s.repo.Complaint.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询投诉列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(complaints) == 0 {
		return nil, "", ErrExportNoComplaints
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "投诉清单"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, c := range complaints {
		values := []interface{}{
			c.Title,
			string(c.Category),
			string(c.Priority),
			string(c.Status),
			c.StudentName,
			c.StudentEmail,
			departmentName(&c),
			derefString(c.ResolutionDetail),
			c.CreatedAt.Format("2006-01-02 15:04"),
			formatTimePtr(c.ResolvedAt),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("complaints_%s.xlsx", time.Now().Format("20060102"))
	return &buf, filename, nil
}

// ── 辅助 ──

func departmentName(c *model.Complaint) string {
	if c.Department == nil {
		return ""
	}
	return c.Department.Name
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
