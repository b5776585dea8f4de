package services

import (
	"bytes"
	"fmt"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/xuri/excelize/v2"
)

const hoursSummarySheet = "Hours Summary"

var hoursSummaryHeader = []interface{}{
	"Username", "Total Hours", "Weeks Worked", "Average Weekly Hours", "Max Weekly Hours", "Over Limit",
}

// ExportHoursSummary renders an hours summary report as an xlsx workbook
func ExportHoursSummary(report *models.HoursSummaryReport) ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", hoursSummarySheet); err != nil {
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Department", report.Department},
		{"Period", fmt.Sprintf("%s to %s", report.StartDate, report.EndDate)},
		{},
		hoursSummaryHeader,
	}
	for _, emp := range report.Employees {
		overLimit := "No"
		if emp.OverLimit {
			overLimit = "Yes"
		}
		rows = append(rows, []interface{}{
			emp.Username, emp.TotalHours, emp.WeeksWorked, emp.AverageWeeklyHours, emp.MaxWeeklyHours, overLimit,
		})
	}
	rows = append(rows, []interface{}{"Total", report.TotalHours}, []interface{}{"Over Limit", report.OverLimitCount})

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("error resolving cell: %w", err)
		}
		if err := file.SetSheetRow(hoursSummarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
