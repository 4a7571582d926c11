package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fosms/backend/internal/model"
)

// SwapRequestRepository 换班申请数据访问接口
type SwapRequestRepository interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	GetByID(ctx context.Context, id string) (*model.SwapRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]model.SwapRequest, error)
	ListAll(ctx context.Context, status *model.SwapStatus) ([]model.SwapRequest, error)
	// Resolve 仅当申请仍为 PENDING 时写入处理结果
	// 不存在返回 gorm.ErrRecordNotFound，已处理返回 ErrNotPending
	Resolve(ctx context.Context, id string, res Resolution) (*model.SwapRequest, error)
}

// Resolution 管理员处理结果
type Resolution struct {
	Status     model.SwapStatus
	AdminNotes *string
	ResolvedBy string
	ResolvedAt time.Time
}

type swapRequestRepo struct {
	db *gorm.DB
}

// NewSwapRequestRepo 创建 SwapRequestRepository 实例
func NewSwapRequestRepo(db *gorm.DB) SwapRequestRepository {
	return &swapRequestRepo{db: db}
}

func (r *swapRequestRepo) Create(ctx context.Context, req *model.SwapRequest) error {
	return translate(r.db.WithContext(ctx).Create(req).Error)
}

func (r *swapRequestRepo) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Colleague").
		Where("swap_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByRequester 本人申请，最新在前
func (r *swapRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]model.SwapRequest, error) {
	var items []model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Colleague").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *swapRequestRepo) ListAll(ctx context.Context, status *model.SwapStatus) ([]model.SwapRequest, error) {
	var items []model.SwapRequest

	db := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Colleague")
	if status != nil {
		db = db.Where("status = ?", *status)
	}

	if err := db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *swapRequestRepo) Resolve(ctx context.Context, id string, res Resolution) (*model.SwapRequest, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("swap_request_id = ? AND status = ?", id, model.SwapStatusPending).
		Updates(map[string]interface{}{
			"status":      res.Status,
			"admin_notes": res.AdminNotes,
			"resolved_by": res.ResolvedBy,
			"resolved_at": res.ResolvedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// 区分「不存在」与「已被处理」
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNotPending
	}
	return r.GetByID(ctx, id)
}
