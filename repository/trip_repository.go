// repository/trip_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// TripRepository handles database operations for trips and their members
type TripRepository struct {
	DB *sql.DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository() *TripRepository {
	return &TripRepository{
		DB: GetDB(),
	}
}

// CreateTrip saves a trip and its initial members in one transaction
func (r *TripRepository) CreateTrip(trip *models.Trip) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO trips (name, description, currency, start_date, end_date, created_by_user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		trip.Name, trip.Description, trip.Currency, trip.StartDate, trip.EndDate,
		trip.CreatedByUserID, trip.CreatedAt,
	).Scan(&trip.ID)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %v", err)
	}

	for i := range trip.Members {
		member := &trip.Members[i]
		member.TripID = trip.ID
		err = tx.QueryRow(
			`INSERT INTO trip_members (trip_id, user_id, role, joined_at, is_active)
			 VALUES ($1, $2, $3, $4, TRUE) RETURNING id`,
			trip.ID, member.UserID, member.Role, member.JoinedAt,
		).Scan(&member.ID)
		if err != nil {
			return fmt.Errorf("failed to insert trip member: %v", err)
		}
	}

	return tx.Commit()
}

// GetTripByID retrieves a trip with all its members (active and inactive)
func (r *TripRepository) GetTripByID(id int) (*models.Trip, error) {
	trip, err := r.scanTrip(r.DB.QueryRow(
		`SELECT t.id, t.name, t.description, t.currency, t.start_date, t.end_date,
		        t.created_by_user_id, u.name, t.invite_token, t.invite_token_expiry,
		        t.is_invite_link_active, t.created_at, t.updated_at
		 FROM trips t
		 JOIN users u ON u.id = t.created_by_user_id
		 WHERE t.id = $1`, id,
	))
	if err != nil {
		return nil, err
	}

	trip.Members, err = r.getMembers(trip.ID)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// GetTripByInviteToken retrieves a trip by its invite token
func (r *TripRepository) GetTripByInviteToken(token string) (*models.Trip, error) {
	trip, err := r.scanTrip(r.DB.QueryRow(
		`SELECT t.id, t.name, t.description, t.currency, t.start_date, t.end_date,
		        t.created_by_user_id, u.name, t.invite_token, t.invite_token_expiry,
		        t.is_invite_link_active, t.created_at, t.updated_at
		 FROM trips t
		 JOIN users u ON u.id = t.created_by_user_id
		 WHERE t.invite_token = $1`, token,
	))
	if err != nil {
		return nil, err
	}

	trip.Members, err = r.getMembers(trip.ID)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

func (r *TripRepository) scanTrip(row *sql.Row) (*models.Trip, error) {
	var trip models.Trip
	var expiry, updatedAt sql.NullTime

	err := row.Scan(
		&trip.ID, &trip.Name, &trip.Description, &trip.Currency,
		&trip.StartDate, &trip.EndDate, &trip.CreatedByUserID, &trip.CreatedByName,
		&trip.InviteToken, &expiry, &trip.IsInviteLinkActive,
		&trip.CreatedAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewNotFoundError("Trip")
		}
		return nil, fmt.Errorf("failed to get trip: %v", err)
	}

	if expiry.Valid {
		trip.InviteTokenExpiry = &expiry.Time
	}
	if updatedAt.Valid {
		trip.UpdatedAt = &updatedAt.Time
	}
	return &trip, nil
}

func (r *TripRepository) getMembers(tripID int) ([]models.TripMember, error) {
	rows, err := r.DB.Query(
		`SELECT tm.id, tm.trip_id, tm.user_id, u.name, u.avatar, tm.role, tm.joined_at, tm.is_active
		 FROM trip_members tm
		 JOIN users u ON u.id = tm.user_id
		 WHERE tm.trip_id = $1
		 ORDER BY tm.id`, tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip members: %v", err)
	}
	defer rows.Close()

	var members []models.TripMember
	for rows.Next() {
		var m models.TripMember
		if err := rows.Scan(&m.ID, &m.TripID, &m.UserID, &m.Name, &m.Avatar, &m.Role, &m.JoinedAt, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %v", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListTripsForUser returns summaries of trips where the user is an active member
func (r *TripRepository) ListTripsForUser(userID int) ([]models.TripSummary, error) {
	rows, err := r.DB.Query(
		`SELECT t.id, t.name, t.currency, t.start_date, t.end_date,
		        (SELECT COUNT(*) FROM trip_members tm2 WHERE tm2.trip_id = t.id AND tm2.is_active),
		        COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.trip_id = t.id), 0)
		 FROM trips t
		 JOIN trip_members tm ON tm.trip_id = t.id
		 WHERE tm.user_id = $1 AND tm.is_active
		 ORDER BY t.start_date DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %v", err)
	}
	defer rows.Close()

	var trips []models.TripSummary
	for rows.Next() {
		var t models.TripSummary
		if err := rows.Scan(&t.ID, &t.Name, &t.Currency, &t.StartDate, &t.EndDate, &t.MemberCount, &t.TotalExpenses); err != nil {
			return nil, fmt.Errorf("failed to scan trip summary: %v", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// UpdateTrip updates a trip's editable fields
func (r *TripRepository) UpdateTrip(trip *models.Trip) error {
	result, err := r.DB.Exec(
		`UPDATE trips SET name = $1, description = $2, currency = $3, start_date = $4,
		        end_date = $5, updated_at = $6
		 WHERE id = $7`,
		trip.Name, trip.Description, trip.Currency, trip.StartDate, trip.EndDate,
		time.Now().UTC(), trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %v", err)
	}
	return requireRowAffected(result, "Trip")
}

// GetMember returns the membership row for a user in a trip, if any
func (r *TripRepository) GetMember(tripID, userID int) (*models.TripMember, error) {
	var m models.TripMember
	err := r.DB.QueryRow(
		`SELECT id, trip_id, user_id, role, joined_at, is_active
		 FROM trip_members WHERE trip_id = $1 AND user_id = $2`,
		tripID, userID,
	).Scan(&m.ID, &m.TripID, &m.UserID, &m.Role, &m.JoinedAt, &m.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewNotFoundError("Member")
		}
		return nil, fmt.Errorf("failed to get trip member: %v", err)
	}
	return &m, nil
}

// AddMember adds a user to a trip
func (r *TripRepository) AddMember(tripID, userID int, role string) error {
	_, err := r.DB.Exec(
		`INSERT INTO trip_members (trip_id, user_id, role, joined_at, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)`,
		tripID, userID, role, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip member: %v", err)
	}
	return nil
}

// DeactivateMember soft-removes a member from a trip
func (r *TripRepository) DeactivateMember(tripID, userID int) error {
	result, err := r.DB.Exec(
		"UPDATE trip_members SET is_active = FALSE WHERE trip_id = $1 AND user_id = $2",
		tripID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate trip member: %v", err)
	}
	return requireRowAffected(result, "Member")
}

// ReactivateMember marks a previously removed member as active again
func (r *TripRepository) ReactivateMember(tripID, userID int) error {
	result, err := r.DB.Exec(
		"UPDATE trip_members SET is_active = TRUE, joined_at = $1 WHERE trip_id = $2 AND user_id = $3",
		time.Now().UTC(), tripID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to reactivate trip member: %v", err)
	}
	return requireRowAffected(result, "Member")
}

// SetInviteToken stores the invite link state for a trip
func (r *TripRepository) SetInviteToken(tripID int, token string, expiry *time.Time, active bool) error {
	result, err := r.DB.Exec(
		`UPDATE trips SET invite_token = $1, invite_token_expiry = $2,
		        is_invite_link_active = $3, updated_at = $4
		 WHERE id = $5`,
		token, expiry, active, time.Now().UTC(), tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to set invite token: %v", err)
	}
	return requireRowAffected(result, "Trip")
}

// InviteTokenInUse reports whether an active invite link already uses this token
func (r *TripRepository) InviteTokenInUse(token string) (bool, error) {
	var count int
	err := r.DB.QueryRow(
		"SELECT COUNT(*) FROM trips WHERE invite_token = $1 AND is_invite_link_active",
		token,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check invite token: %v", err)
	}
	return count > 0, nil
}
