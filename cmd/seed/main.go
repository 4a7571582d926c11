package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fosms/backend/config"
	"fosms/backend/internal/model"
	"fosms/backend/internal/repository"
	"fosms/backend/pkg/database"
	applogger "fosms/backend/pkg/logger"
)

// 初始化首个管理员账号；重复执行不会覆盖已有账号
func main() {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "配置文件路径")
	email := flags.String("admin-email", "admin@fosms.local", "管理员邮箱")
	secret := flags.String("admin-password", "", "管理员密码（至少 6 位）")
	employeeID := flags.String("admin-employee-id", "ADMIN-001", "管理员工号")
	name := flags.String("admin-name", "System Admin", "管理员姓名")
	demo := flags.Bool("demo", false, "额外创建演示员工与一条排班")
	_ = flags.Parse(os.Args[1:])

	if len(*secret) < 6 {
		fmt.Fprintln(os.Stderr, "--admin-password 至少 6 位")
		os.Exit(2)
	}

	cfg, err := config.LoadWith(viper.New(), *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if _, err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := repository.NewRepository(db)

	admin, err := ensureUser(ctx, repo, &model.User{
		EmployeeID: *employeeID,
		Name:       *name,
		Email:      strings.ToLower(strings.TrimSpace(*email)),
		Role:       model.RoleAdmin,
	}, *secret, cfg.Auth.BcryptCost, logger)
	if err != nil {
		logger.Fatal("创建管理员失败", zap.Error(err))
	}

	if *demo {
		if err := seedDemo(ctx, repo, admin, cfg, logger); err != nil {
			logger.Fatal("创建演示数据失败", zap.Error(err))
		}
	}

	logger.Info("初始化完成", zap.String("admin", admin.Email))
}

// ensureUser 邮箱或工号已存在时返回已有账号；要求管理员但已有账号不是管理员时报错
func ensureUser(ctx context.Context, repo *repository.Repository, u *model.User, secret string, cost int, logger *zap.Logger) (*model.User, error) {
	existing, err := findExisting(ctx, repo, u)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if u.IsAdmin() && !existing.IsAdmin() {
			return nil, fmt.Errorf("账号 %s 已存在且不是管理员", existing.Email)
		}
		logger.Info("账号已存在，跳过", zap.String("email", existing.Email))
		return existing, nil
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, err
	}

	u.PasswordHash = string(hash)
	if u.Department == "" {
		u.Department = model.DefaultDepartment
	}
	if u.CurrentShift == "" {
		u.CurrentShift = model.DefaultCurrentShift
	}
	u.Status = model.UserStatusActive

	if err := repo.User.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.Info("账号已创建", zap.String("email", u.Email), zap.String("role", u.Role.String()))
	return u, nil
}

// seedDemo 演示员工与其明日早班，在同一事务内完成
func seedDemo(ctx context.Context, repo *repository.Repository, admin *model.User, cfg *config.Config, logger *zap.Logger) error {
	loc := cfg.Database.Location()
	now := time.Now().In(loc)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, loc)

	return repo.Transaction(ctx, func(tx *repository.Repository) error {
		staff, err := ensureUser(ctx, tx, &model.User{
			EmployeeID:   "EMP-DEMO",
			Name:         "Demo Staff",
			Email:        "staff@fosms.local",
			Role:         model.RoleStaff,
			Department:   "Assembly",
			CurrentShift: "Morning",
		}, "staff123", cfg.Auth.BcryptCost, logger)
		if err != nil {
			return err
		}

		// 约束冲突会使事务中止，先查再写
		existing, err := tx.ShiftAssignment.ListByUser(ctx, staff.UserID)
		if err != nil {
			return err
		}
		for _, a := range existing {
			if a.ShiftDate.Format("2006-01-02") == tomorrow.Format("2006-01-02") {
				logger.Info("演示排班已存在，跳过")
				return nil
			}
		}

		createdBy := admin.UserID
		return tx.ShiftAssignment.Create(ctx, &model.ShiftAssignment{
			UserID:    staff.UserID,
			ShiftType: "Morning",
			ShiftDate: tomorrow,
			StartTime: "06:00",
			EndTime:   "14:00",
			Location:  "Line A",
			CreatedBy: &createdBy,
		})
	})
}

func findExisting(ctx context.Context, repo *repository.Repository, u *model.User) (*model.User, error) {
	existing, err := repo.User.GetByEmail(ctx, u.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	existing, err = repo.User.GetByEmployeeID(ctx, u.EmployeeID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, nil
}
