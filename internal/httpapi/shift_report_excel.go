package httpapi

import (
	"bytes"
	"fmt"
	"time"

	"carewatch/internal/service"

	"github.com/xuri/excelize/v2"
)

// ShiftScheduleHeader 排程工作表表头
var ShiftScheduleHeader = []string{
	"Resident ID",
	"Name",
	"Room",
	"Next Due",
	"Overdue",
	"Urgent",
}

// ShiftTodoHeader 任务工作表表头
var ShiftTodoHeader = []string{
	"Title",
	"Assignee",
	"Due At",
	"Completed",
}

// GenerateShiftReport 生成班次报表 Excel 文件
// 包含两个工作表：测量排程（含紧急标记）和当班任务清单
func GenerateShiftReport(overview *service.Overview, progress service.Progress, todos []todoRow) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	urgentIDs := make(map[string]bool, len(overview.Urgent))
	for _, r := range overview.Urgent {
		urgentIDs[r.ResidentID] = true
	}

	scheduleSheet := "Schedule"
	index, err := f.NewSheet(scheduleSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create schedule sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheetHeader(f, scheduleSheet, ShiftScheduleHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for rowIdx, entry := range overview.Schedule {
		row := rowIdx + 2
		values := []interface{}{
			entry.Resident.ResidentID,
			entry.Resident.Name,
			entry.Resident.Room,
			entry.DueAt.Format("2006-01-02 15:04:05"),
			yesNo(entry.Overdue),
			yesNo(urgentIDs[entry.Resident.ResidentID]),
		}
		for col, value := range values {
			if err := setReportCell(f, scheduleSheet, col+1, row, value); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	todoSheet := "Todos"
	if _, err := f.NewSheet(todoSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create todo sheet: %w", err)
	}
	if err := writeSheetHeader(f, todoSheet, ShiftTodoHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for rowIdx, todo := range todos {
		row := rowIdx + 2
		dueAt := ""
		if todo.DueAt != nil {
			dueAt = todo.DueAt.Format("2006-01-02 15:04:05")
		}
		values := []interface{}{
			todo.Title,
			todo.Assignee,
			dueAt,
			yesNo(todo.Completed),
		}
		for col, value := range values {
			if err := setReportCell(f, todoSheet, col+1, row, value); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	// 任务表底部追加进度汇总行
	summaryRow := len(todos) + 3
	summary := fmt.Sprintf("Progress: %d/%d (%d%%)", progress.Completed, progress.Total, progress.Rate)
	if err := setReportCell(f, todoSheet, 1, summaryRow, summary); err != nil {
		f.Close()
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}

// todoRow 报表任务行
type todoRow struct {
	Title     string
	Assignee  string
	DueAt     *time.Time
	Completed bool
}

// writeSheetHeader 写入表头并应用样式
func writeSheetHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}
	return nil
}

// setReportCell 设置单元格值
func setReportCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
