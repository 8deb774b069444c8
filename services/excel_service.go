// services/excel_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/repository"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// ExcelService exports a trip's full ledger to a spreadsheet
type ExcelService struct {
	tripRepo          *repository.TripRepository
	expenseRepo       *repository.ExpenseRepository
	settlementRepo    *repository.SettlementRepository
	settlementService *SettlementService
}

// NewExcelService creates a new ExcelService
func NewExcelService() *ExcelService {
	return &ExcelService{
		tripRepo:          repository.NewTripRepository(),
		expenseRepo:       repository.NewExpenseRepository(),
		settlementRepo:    repository.NewSettlementRepository(),
		settlementService: NewSettlementService(),
	}
}

// ExportTrip generates an Excel workbook for a trip and returns it with a filename
func (s *ExcelService) ExportTrip(tripID int) (*excelize.File, string, error) {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return nil, "", err
	}

	expenses, err := s.expenseRepo.GetExpensesByTrip(tripID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get expenses: %v", err)
	}
	settlements, err := s.settlementRepo.GetSettlementsByTrip(tripID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get settlements: %v", err)
	}

	balances := ComputeTripBalances(trip.Members, expenses, settlements)
	suggestions, err := s.settlementService.GetSuggestions(tripID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compute suggestions: %v", err)
	}

	f := excelize.NewFile()

	if err := s.createSummarySheet(f, trip, expenses, balances, suggestions); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}
	if err := s.createExpenseMatrixSheet(f, trip, expenses); err != nil {
		return nil, "", fmt.Errorf("failed to create expense matrix sheet: %v", err)
	}
	if err := s.createSettlementSheet(f, settlements); err != nil {
		return nil, "", fmt.Errorf("failed to create settlement sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Export_%s.xlsx",
		utils.CleanFileName(trip.Name),
		time.Now().Format("2006-01-02"))
	return f, filename, nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	return style
}

// createSummarySheet writes each member's totals and the suggested settlements
func (s *ExcelService) createSummarySheet(f *excelize.File, trip *models.Trip, expenses []*models.Expense, balances map[int]float64, suggestions []models.SettlementSuggestion) error {
	sheetName := "Summary"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	spent := make(map[int]float64)
	owed := make(map[int]float64)
	for _, e := range expenses {
		spent[e.PaidByUserID] += e.Amount
		for _, sp := range e.Splits {
			owed[sp.UserID] += sp.Amount
		}
	}

	members := make([]models.TripMember, len(trip.Members))
	copy(members, trip.Members)
	sort.Slice(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})

	headers := []string{"Member", "Total Spent", "Total Owed", "Net Balance"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	style := headerStyle(f)
	f.SetCellStyle(sheetName, "A1", "D1", style)

	for i, m := range members {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), m.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), utils.Round(spent[m.UserID]))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), utils.Round(owed[m.UserID]))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), balances[m.UserID])
	}

	suggestionsRow := len(members) + 4
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", suggestionsRow), "Suggested Settlements:")
	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", suggestionsRow), fmt.Sprintf("A%d", suggestionsRow), titleStyle)

	suggestionsRow++
	for i, header := range []string{"From", "To", "Amount"} {
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", string(rune('A'+i)), suggestionsRow), header)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", suggestionsRow), fmt.Sprintf("C%d", suggestionsRow), style)

	for i, suggestion := range suggestions {
		row := suggestionsRow + 1 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), suggestion.FromUserName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), suggestion.ToUserName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), suggestion.Amount)
	}

	f.SetColWidth(sheetName, "A", "D", 15)
	return nil
}

// createExpenseMatrixSheet writes one row per expense with a column per member
func (s *ExcelService) createExpenseMatrixSheet(f *excelize.File, trip *models.Trip, expenses []*models.Expense) error {
	sheetName := "Expenses"
	f.NewSheet(sheetName)

	members := make([]models.TripMember, len(trip.Members))
	copy(members, trip.Members)
	sort.Slice(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})

	headers := []string{"Date", "Description", "Paid By", "Total Amount"}
	for _, m := range members {
		headers = append(headers, m.Name)
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	lastCol := string(rune('A' + len(headers) - 1))
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", lastCol), headerStyle(f))

	// Oldest first reads naturally in a spreadsheet
	ordered := make([]*models.Expense, len(expenses))
	copy(ordered, expenses)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ExpenseDate.Before(ordered[j].ExpenseDate)
	})

	for i, e := range ordered {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.ExpenseDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.PaidByName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Amount)

		shares := make(map[int]float64, len(e.Splits))
		for _, sp := range e.Splits {
			shares[sp.UserID] = sp.Amount
		}
		for j, m := range members {
			col := string(rune('E' + j))
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), shares[m.UserID])
		}
	}

	f.SetColWidth(sheetName, "A", lastCol, 12)
	f.SetColWidth(sheetName, "B", "B", 20)
	return nil
}

// createSettlementSheet writes the recorded settlements
func (s *ExcelService) createSettlementSheet(f *excelize.File, settlements []*models.Settlement) error {
	sheetName := "Settlements"
	f.NewSheet(sheetName)

	headers := []string{"Date", "From", "To", "Amount", "Notes"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", "E1", headerStyle(f))

	for i, settlement := range settlements {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), settlement.SettlementDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), settlement.FromUserName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), settlement.ToUserName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), settlement.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), settlement.Notes)
	}

	f.SetColWidth(sheetName, "A", "E", 15)
	return nil
}
