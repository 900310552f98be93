// Package report выгружает агрегированную статистику в книгу Excel.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-store/internal/domain/entity"
	"github.com/yourusername/quiz-store/internal/service/stats"
)

// Имена листов книги
const (
	SheetDaily  = "Daily"
	SheetWeekly = "Weekly"
	SheetThemes = "Themes"
)

var header = []interface{}{"Label", "Correct", "Total", "Accuracy (%)"}

// AccuracyReport - данные для выгрузки
type AccuracyReport struct {
	Daily   stats.Buckets
	Weekly  stats.Buckets
	Themes  stats.Buckets
	Summary stats.Summary
}

// NewAccuracyReport строит отчет по записям статистики и уже посчитанной точности по темам
func NewAccuracyReport(agg *stats.Aggregator, records []entity.QuizStatistic, themes stats.Buckets) AccuracyReport {
	return AccuracyReport{
		Daily:   agg.DailyAccuracy(records),
		Weekly:  agg.WeeklyAccuracy(records),
		Themes:  themes,
		Summary: stats.Summarize(records),
	}
}

// WriteAccuracyWorkbook пишет книгу с листами Daily, Weekly и Themes в w
func WriteAccuracyWorkbook(w io.Writer, r AccuracyReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDaily); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetWeekly); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetWeekly, err)
	}
	if _, err := f.NewSheet(SheetThemes); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetThemes, err)
	}

	sheets := []struct {
		name    string
		buckets stats.Buckets
		summary bool
	}{
		{name: SheetDaily, buckets: r.Daily, summary: true},
		{name: SheetWeekly, buckets: r.Weekly},
		{name: SheetThemes, buckets: r.Themes},
	}
	for _, s := range sheets {
		if err := writeBuckets(f, s.name, s.buckets, s.summary, r.Summary); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeBuckets пишет лист через StreamWriter: заголовок, строки групп и, при необходимости, итог
func writeBuckets(f *excelize.File, sheet string, buckets stats.Buckets, withSummary bool, summary stats.Summary) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer for %s: %w", sheet, err)
	}

	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}

	for i, b := range buckets {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{sanitizeForExcel(b.Label), b.Correct, b.Total, roundPercent(b.Accuracy)}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}

	if withSummary {
		cell, _ := excelize.CoordinatesToCellName(1, len(buckets)+3)
		row := []interface{}{"Total", summary.Correct, summary.Total, roundPercent(summary.Accuracy)}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write summary of %s: %w", sheet, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", sheet, err)
	}
	return nil
}

func roundPercent(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
