//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-voice/backend/internal/model"
	"campus-voice/backend/internal/repository"
	apperrors "campus-voice/backend/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=campus_voice password=campus_voice_password dbname=campus_voice_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Role{},
		&model.Department{},
		&model.User{},
		&model.Complaint{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTeamFixture 创建一个院系 + 三个角色 + 系主任/现任协调员/候选教授，返回清理函数
func setupTeamFixture(t *testing.T) (dept *model.Department, roles map[string]*model.Role, users map[string]*model.User, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	nano := time.Now().UnixNano()

	dept = &model.Department{Name: fmt.Sprintf("测试院系-%d", nano)}
	if err := testDB.WithContext(ctx).Create(dept).Error; err != nil {
		t.Fatalf("创建院系失败: %v", err)
	}

	roles = make(map[string]*model.Role)
	for _, name := range []string{model.RoleProfessor, model.RoleCoordinator, model.RoleHod} {
		role := &model.Role{Name: fmt.Sprintf("%s-%d", name, nano)}
		if err := testDB.WithContext(ctx).Create(role).Error; err != nil {
			t.Fatalf("创建角色失败: %v", err)
		}
		roles[name] = role
	}

	users = make(map[string]*model.User)
	mk := func(key, roleName string, deptID *string) {
		u := &model.User{
			Name:         "测试用户-" + key,
			Email:        fmt.Sprintf("%s-%d@campus.test", key, nano),
			RegisterNo:   fmt.Sprintf("R%d", nano),
			PasswordHash: "$2a$10$placeholder",
			RoleID:       roles[roleName].RoleID,
			DepartmentID: deptID,
		}
		if err := testDB.WithContext(ctx).Create(u).Error; err != nil {
			t.Fatalf("创建用户 %s 失败: %v", key, err)
		}
		users[key] = u
	}
	mk("hod", model.RoleHod, &dept.DepartmentID)
	mk("incumbent", model.RoleCoordinator, &dept.DepartmentID)
	mk("candidate", model.RoleProfessor, &dept.DepartmentID)

	cleanup = func() {
		for _, u := range users {
			testDB.Unscoped().Where("user_id = ?", u.UserID).Delete(&model.User{})
		}
		for _, r := range roles {
			testDB.Unscoped().Where("role_id = ?", r.RoleID).Delete(&model.Role{})
		}
		testDB.Unscoped().Where("department_id = ?", dept.DepartmentID).Delete(&model.Department{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: ReassignCoordinator（事务原子性）
// ═══════════════════════════════════════════════════════════

func TestReassignCoordinator_SwapInOneTransaction(t *testing.T) {
	dept, roles, users, cleanup := setupTeamFixture(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	err := repo.User.ReassignCoordinator(ctx,
		dept.DepartmentID,
		roles[model.RoleCoordinator].RoleID,
		roles[model.RoleProfessor].RoleID,
		users["candidate"].UserID,
	)
	if err != nil {
		t.Fatalf("交接应成功: %v", err)
	}

	// 前任降为教授，新任升为协调员
	var incumbent, candidate model.User
	testDB.Where("user_id = ?", users["incumbent"].UserID).First(&incumbent)
	testDB.Where("user_id = ?", users["candidate"].UserID).First(&candidate)
	if incumbent.RoleID != roles[model.RoleProfessor].RoleID {
		t.Error("前任协调员应被降为教授")
	}
	if candidate.RoleID != roles[model.RoleCoordinator].RoleID {
		t.Error("候选人应被升为协调员")
	}

	// 院系内协调员恰好1名
	var n int64
	testDB.Model(&model.User{}).
		Where("role_id = ? AND department_id = ?", roles[model.RoleCoordinator].RoleID, dept.DepartmentID).
		Count(&n)
	if n != 1 {
		t.Errorf("院系内协调员应恰好1名，实际=%d", n)
	}
}

func TestReassignCoordinator_IneligibleCandidateRollsBack(t *testing.T) {
	dept, roles, users, cleanup := setupTeamFixture(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 候选人 ID 不存在 → 事务整体回滚
	err := repo.User.ReassignCoordinator(ctx,
		dept.DepartmentID,
		roles[model.RoleCoordinator].RoleID,
		roles[model.RoleProfessor].RoleID,
		"00000000-0000-0000-0000-000000000000",
	)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望 gorm.ErrRecordNotFound，实际: %v", err)
	}

	// 现任协调员不应被降级
	var incumbent model.User
	testDB.Where("user_id = ?", users["incumbent"].UserID).First(&incumbent)
	if incumbent.RoleID != roles[model.RoleCoordinator].RoleID {
		t.Error("交接失败后现任协调员应保持不变（事务未回滚）")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Complaint UpdateStatus（乐观锁）
// ═══════════════════════════════════════════════════════════

func TestComplaintUpdateStatus_OptimisticLock(t *testing.T) {
	dept, roles, users, cleanup := setupTeamFixture(t)
	defer cleanup()
	_ = roles

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	complaint := &model.Complaint{
		Title:        "实验室投影仪损坏",
		Description:  "三号楼实验室的投影仪已经连续两周无法开机，影响正常上课。",
		Category:     model.CategoryFacilities,
		Priority:     model.PriorityHigh,
		Status:       model.StatusPending,
		StudentID:    users["candidate"].UserID,
		StudentName:  "测试学生",
		StudentEmail: "stu@campus.test",
		DepartmentID: dept.DepartmentID,
		Version:      1,
	}
	if err := repo.Complaint.Create(ctx, complaint); err != nil {
		t.Fatalf("创建投诉失败: %v", err)
	}
	defer testDB.Unscoped().Where("complaint_id = ?", complaint.ComplaintID).Delete(&model.Complaint{})

	// 两个持有 version=1 快照的写入方
	first, _ := repo.Complaint.GetByID(ctx, complaint.ComplaintID)
	second, _ := repo.Complaint.GetByID(ctx, complaint.ComplaintID)

	first.Status = model.StatusForwarded
	if err := repo.Complaint.UpdateStatus(ctx, first, first.Version); err != nil {
		t.Fatalf("首个写入应成功: %v", err)
	}
	if first.Version != 2 {
		t.Errorf("成功写入后版本应前移至2，实际=%d", first.Version)
	}

	second.Status = model.StatusResolved
	err := repo.Complaint.UpdateStatus(ctx, second, second.Version)
	if !errors.Is(err, apperrors.ErrOptimisticLock) {
		t.Errorf("过期快照写入应返回 ErrOptimisticLock，实际: %v", err)
	}

	// 存储状态应为首个写入的结果
	stored, _ := repo.Complaint.GetByID(ctx, complaint.ComplaintID)
	if stored.Status != model.StatusForwarded {
		t.Errorf("冲突写入不应覆盖已提交状态，实际=%s", stored.Status)
	}
}
