package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fosms/backend/internal/model"
)

// ShiftAssignmentRepository 排班数据访问接口
type ShiftAssignmentRepository interface {
	// Create 单条插入；同一用户同一天重复时返回 *DuplicateError
	Create(ctx context.Context, a *model.ShiftAssignment) error
	ListByUser(ctx context.Context, userID string) ([]model.ShiftAssignment, error)
	ListAll(ctx context.Context, filter ShiftFilter) ([]model.ShiftAssignment, error)
}

// ShiftFilter 排班日期区间（闭区间），nil 表示不限
type ShiftFilter struct {
	From *time.Time
	To   *time.Time
}

type shiftAssignmentRepo struct {
	db *gorm.DB
}

// NewShiftAssignmentRepo 创建 ShiftAssignmentRepository 实例
func NewShiftAssignmentRepo(db *gorm.DB) ShiftAssignmentRepository {
	return &shiftAssignmentRepo{db: db}
}

func (r *shiftAssignmentRepo) Create(ctx context.Context, a *model.ShiftAssignment) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

// ListByUser 本人排班，日期升序
func (r *shiftAssignmentRepo) ListByUser(ctx context.Context, userID string) ([]model.ShiftAssignment, error) {
	var items []model.ShiftAssignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("shift_date ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll 全部排班，日期降序
func (r *shiftAssignmentRepo) ListAll(ctx context.Context, filter ShiftFilter) ([]model.ShiftAssignment, error) {
	var items []model.ShiftAssignment

	db := r.db.WithContext(ctx).Preload("User")
	if filter.From != nil {
		db = db.Where("shift_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("shift_date <= ?", *filter.To)
	}

	if err := db.Order("shift_date DESC, created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
