// repository/settlement_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// SettlementRepository handles database operations for settlements
type SettlementRepository struct {
	DB *sql.DB
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository() *SettlementRepository {
	return &SettlementRepository{
		DB: GetDB(),
	}
}

// CreateSettlement saves a settlement record
func (r *SettlementRepository) CreateSettlement(settlement *models.Settlement) error {
	err := r.DB.QueryRow(
		`INSERT INTO settlements (trip_id, from_user_id, to_user_id, amount, settlement_date, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		settlement.TripID, settlement.FromUserID, settlement.ToUserID,
		settlement.Amount, settlement.SettlementDate, settlement.Notes, settlement.CreatedAt,
	).Scan(&settlement.ID)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %v", err)
	}
	return nil
}

const settlementSelect = `SELECT s.id, s.trip_id, s.from_user_id, fu.name, s.to_user_id, tu.name,
	s.amount, s.settlement_date, s.notes, s.created_at
	FROM settlements s
	JOIN users fu ON fu.id = s.from_user_id
	JOIN users tu ON tu.id = s.to_user_id`

func scanSettlement(row interface{ Scan(...interface{}) error }) (*models.Settlement, error) {
	var settlement models.Settlement
	var notes sql.NullString

	err := row.Scan(
		&settlement.ID, &settlement.TripID, &settlement.FromUserID, &settlement.FromUserName,
		&settlement.ToUserID, &settlement.ToUserName, &settlement.Amount,
		&settlement.SettlementDate, &notes, &settlement.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	settlement.Notes = notes.String
	return &settlement, nil
}

// GetSettlementByID retrieves one settlement with both party names
func (r *SettlementRepository) GetSettlementByID(id int) (*models.Settlement, error) {
	settlement, err := scanSettlement(r.DB.QueryRow(settlementSelect+" WHERE s.id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewNotFoundError("Settlement")
		}
		return nil, fmt.Errorf("failed to get settlement: %v", err)
	}
	return settlement, nil
}

// GetSettlementsByTrip retrieves all settlements for a trip, newest first
func (r *SettlementRepository) GetSettlementsByTrip(tripID int) ([]*models.Settlement, error) {
	rows, err := r.DB.Query(
		settlementSelect+" WHERE s.trip_id = $1 ORDER BY s.settlement_date DESC, s.id DESC",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlements: %v", err)
	}
	defer rows.Close()

	return collectSettlements(rows)
}

// GetSettlementsForUser retrieves a member's settlements within a trip,
// in either direction, newest first
func (r *SettlementRepository) GetSettlementsForUser(tripID, userID int) ([]*models.Settlement, error) {
	rows, err := r.DB.Query(
		settlementSelect+` WHERE s.trip_id = $1 AND (s.from_user_id = $2 OR s.to_user_id = $2)
		 ORDER BY s.settlement_date DESC, s.id DESC`,
		tripID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlements: %v", err)
	}
	defer rows.Close()

	return collectSettlements(rows)
}

func collectSettlements(rows *sql.Rows) ([]*models.Settlement, error) {
	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %v", err)
		}
		settlements = append(settlements, settlement)
	}
	return settlements, rows.Err()
}

// DeleteSettlement removes a settlement record
func (r *SettlementRepository) DeleteSettlement(id int) error {
	result, err := r.DB.Exec("DELETE FROM settlements WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %v", err)
	}
	return requireRowAffected(result, "Settlement")
}
