package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-voice/backend/internal/model"
	"campus-voice/backend/internal/repository"
)

// ── 测试辅助 ──

func setupExportTest() (ExportService, *mockComplaintRepo) {
	complaintRepo := newMockComplaintRepo()
	repo := &repository.Repository{
		User:       newMockUserRepo(),
		Role:       newMockRoleRepo(),
		Department: newMockDeptRepo(),
		Complaint:  complaintRepo,
	}
	svc := NewExportService(repo, zap.NewNop())
	return svc, complaintRepo
}

func seedExportComplaint(repo *mockComplaintRepo, id, studentID, deptID string, status model.ComplaintStatus) {
	_ = repo.Create(context.Background(), &model.Complaint{
		ComplaintID:  id,
		Title:        "实验室投影仪损坏",
		Description:  "三号楼实验室的投影仪已经连续两周无法开机，影响正常上课。",
		Category:     model.CategoryFacilities,
		Priority:     model.PriorityHigh,
		Status:       status,
		StudentID:    studentID,
		StudentName:  "王明",
		StudentEmail: studentID + "@campus.test",
		DepartmentID: deptID,
		Department:   &model.Department{DepartmentID: deptID, Name: "计算机学院"},
	})
}

// ── ExportComplaints 测试 ──

func TestExportService_ExportComplaints_Admin(t *testing.T) {
	svc, complaintRepo := setupExportTest()
	seedExportComplaint(complaintRepo, "c-1", "stu-1", "dept-cs", model.StatusPending)
	seedExportComplaint(complaintRepo, "c-2", "stu-2", "dept-ee", model.StatusResolved)

	caller := &Caller{UserID: "admin-1", Role: model.RoleAdmin}
	buf, filename, err := svc.ExportComplaints(context.Background(), caller)
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if !strings.HasPrefix(filename, "complaints_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名格式错误: %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("投诉清单")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 表头 + 2 条数据
	if len(rows) != 3 {
		t.Fatalf("期望3行，实际=%d", len(rows))
	}
	if rows[0][0] != "标题" || rows[0][3] != "状态" {
		t.Errorf("表头不符: %v", rows[0])
	}
}

func TestExportService_ExportComplaints_ScopeFollowsRole(t *testing.T) {
	svc, complaintRepo := setupExportTest()
	seedExportComplaint(complaintRepo, "c-1", "stu-1", "dept-cs", model.StatusPending)
	seedExportComplaint(complaintRepo, "c-2", "stu-2", "dept-cs", model.StatusForwarded)
	seedExportComplaint(complaintRepo, "c-3", "stu-3", "dept-ee", model.StatusPending)

	// 系主任只导出本院系 Pending
	caller := &Caller{UserID: "hod-1", Role: model.RoleHod, DepartmentID: "dept-cs"}
	buf, _, err := svc.ExportComplaints(context.Background(), caller)
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("投诉清单")
	if len(rows) != 2 {
		t.Errorf("系主任导出范围应限于本院系 Pending，期望2行（含表头），实际=%d", len(rows))
	}
}

func TestExportService_ExportComplaints_Empty(t *testing.T) {
	svc, _ := setupExportTest()

	caller := &Caller{UserID: "admin-1", Role: model.RoleAdmin}
	_, _, err := svc.ExportComplaints(context.Background(), caller)
	if !errors.Is(err, ErrExportNoComplaints) {
		t.Errorf("空范围导出应返回 ErrExportNoComplaints，实际: %v", err)
	}
}

func TestExportService_ExportComplaints_ProfessorDenied(t *testing.T) {
	svc, complaintRepo := setupExportTest()
	seedExportComplaint(complaintRepo, "c-1", "stu-1", "dept-cs", model.StatusPending)

	caller := &Caller{UserID: "prof-1", Role: model.RoleProfessor, DepartmentID: "dept-cs"}
	_, _, err := svc.ExportComplaints(context.Background(), caller)
	if !errors.Is(err, ErrComplaintAccessDenied) {
		t.Errorf("教授无导出范围，期望 ErrComplaintAccessDenied，实际: %v", err)
	}
}
