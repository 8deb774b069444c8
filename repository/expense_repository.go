// repository/expense_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// ExpenseRepository handles database operations for expenses and their splits
type ExpenseRepository struct {
	DB *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{
		DB: GetDB(),
	}
}

// CreateExpense saves an expense and its splits in one transaction
func (r *ExpenseRepository) CreateExpense(expense *models.Expense) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO expenses (trip_id, description, amount, paid_by_user_id, expense_date, category, split_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		expense.TripID, expense.Description, expense.Amount, expense.PaidByUserID,
		expense.ExpenseDate, expense.Category, expense.SplitType, expense.CreatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %v", err)
	}

	if err := insertSplits(tx, expense.ID, expense.Splits); err != nil {
		return err
	}
	for i := range expense.Splits {
		expense.Splits[i].ExpenseID = expense.ID
	}

	return tx.Commit()
}

// UpdateExpense updates an expense and fully replaces its splits
func (r *ExpenseRepository) UpdateExpense(expense *models.Expense) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE expenses SET description = $1, amount = $2, paid_by_user_id = $3,
		        category = $4, split_type = $5, updated_at = $6
		 WHERE id = $7`,
		expense.Description, expense.Amount, expense.PaidByUserID,
		expense.Category, expense.SplitType, time.Now().UTC(), expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %v", err)
	}
	if err := requireRowAffected(result, "Expense"); err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM expense_splits WHERE expense_id = $1", expense.ID); err != nil {
		return fmt.Errorf("failed to delete expense splits: %v", err)
	}
	if err := insertSplits(tx, expense.ID, expense.Splits); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceSplits swaps an expense's splits and split type without touching the rest
func (r *ExpenseRepository) ReplaceSplits(expenseID int, splitType string, splits []models.ExpenseSplit) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"UPDATE expenses SET split_type = $1, updated_at = $2 WHERE id = $3",
		splitType, time.Now().UTC(), expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %v", err)
	}
	if err := requireRowAffected(result, "Expense"); err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM expense_splits WHERE expense_id = $1", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense splits: %v", err)
	}
	if err := insertSplits(tx, expenseID, splits); err != nil {
		return err
	}

	return tx.Commit()
}

func insertSplits(tx *sql.Tx, expenseID int, splits []models.ExpenseSplit) error {
	for i := range splits {
		split := &splits[i]
		err := tx.QueryRow(
			`INSERT INTO expense_splits (expense_id, user_id, amount, percentage, is_paid)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			expenseID, split.UserID, split.Amount, split.Percentage, split.IsPaid,
		).Scan(&split.ID)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %v", err)
		}
	}
	return nil
}

const expenseSelect = `SELECT e.id, e.trip_id, e.description, e.amount, e.paid_by_user_id,
	u.name, e.expense_date, e.category, e.split_type, e.created_at, e.updated_at
	FROM expenses e
	JOIN users u ON u.id = e.paid_by_user_id`

// GetExpenseByID retrieves an expense with its splits
func (r *ExpenseRepository) GetExpenseByID(id int) (*models.Expense, error) {
	var expense models.Expense
	var updatedAt sql.NullTime

	err := r.DB.QueryRow(expenseSelect+" WHERE e.id = $1", id).Scan(
		&expense.ID, &expense.TripID, &expense.Description, &expense.Amount,
		&expense.PaidByUserID, &expense.PaidByName, &expense.ExpenseDate,
		&expense.Category, &expense.SplitType, &expense.CreatedAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewNotFoundError("Expense")
		}
		return nil, fmt.Errorf("failed to get expense: %v", err)
	}
	if updatedAt.Valid {
		expense.UpdatedAt = &updatedAt.Time
	}

	expense.Splits, err = r.getSplits(expense.ID)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// GetExpensesByTrip retrieves all expenses for a trip, newest first, with splits
func (r *ExpenseRepository) GetExpensesByTrip(tripID int) ([]*models.Expense, error) {
	rows, err := r.DB.Query(
		expenseSelect+" WHERE e.trip_id = $1 ORDER BY e.expense_date DESC, e.id DESC",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %v", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var expense models.Expense
		var updatedAt sql.NullTime

		err = rows.Scan(
			&expense.ID, &expense.TripID, &expense.Description, &expense.Amount,
			&expense.PaidByUserID, &expense.PaidByName, &expense.ExpenseDate,
			&expense.Category, &expense.SplitType, &expense.CreatedAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		if updatedAt.Valid {
			expense.UpdatedAt = &updatedAt.Time
		}
		expenses = append(expenses, &expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, expense := range expenses {
		expense.Splits, err = r.getSplits(expense.ID)
		if err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func (r *ExpenseRepository) getSplits(expenseID int) ([]models.ExpenseSplit, error) {
	rows, err := r.DB.Query(
		`SELECT s.id, s.expense_id, s.user_id, u.name, s.amount, s.percentage, s.is_paid
		 FROM expense_splits s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.expense_id = $1
		 ORDER BY s.id`, expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %v", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		var split models.ExpenseSplit
		var percentage sql.NullFloat64

		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &split.UserName,
			&split.Amount, &percentage, &split.IsPaid); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %v", err)
		}
		if percentage.Valid {
			split.Percentage = &percentage.Float64
		}
		splits = append(splits, split)
	}
	return splits, rows.Err()
}

// DeleteExpense removes an expense; splits cascade
func (r *ExpenseRepository) DeleteExpense(id int) error {
	result, err := r.DB.Exec("DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %v", err)
	}
	return requireRowAffected(result, "Expense")
}

// HasSettlementsSince reports whether a trip recorded settlements at or after a time
func (r *ExpenseRepository) HasSettlementsSince(tripID int, since time.Time) (bool, error) {
	var count int
	err := r.DB.QueryRow(
		"SELECT COUNT(*) FROM settlements WHERE trip_id = $1 AND created_at >= $2",
		tripID, since,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check settlements: %v", err)
	}
	return count > 0, nil
}
