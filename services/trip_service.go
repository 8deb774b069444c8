// services/trip_service.go
package services

import (
	"fmt"
	"os"
	"time"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/repository"
	"github.com/tripexpense/tripexpense-backend/utils"
)

const defaultInviteExpiryDays = 7

// TripService handles trip lifecycle, membership and invite links
type TripService struct {
	tripRepo *repository.TripRepository
	userRepo *repository.UserRepository
}

// NewTripService creates a new TripService
func NewTripService() *TripService {
	return &TripService{
		tripRepo: repository.NewTripRepository(),
		userRepo: repository.NewUserRepository(),
	}
}

// CreateTrip creates a trip with the creator as admin plus any listed members
func (s *TripService) CreateTrip(creatorID int, req *models.CreateTripRequest) (*models.Trip, error) {
	if err := utils.ValidateRequired(req.Name, "name"); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = utils.DefaultCurrency
	}

	now := time.Now().UTC()
	trip := &models.Trip{
		Name:            req.Name,
		Description:     req.Description,
		Currency:        currency,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		CreatedByUserID: creatorID,
		CreatedAt:       now,
	}

	trip.Members = append(trip.Members, models.TripMember{
		UserID:   creatorID,
		Role:     utils.RoleAdmin,
		JoinedAt: now,
		IsActive: true,
	})
	for _, memberID := range req.MemberIDs {
		if memberID == creatorID {
			continue
		}
		if _, err := s.userRepo.GetUserByID(memberID); err != nil {
			return nil, err
		}
		trip.Members = append(trip.Members, models.TripMember{
			UserID:   memberID,
			Role:     utils.RoleMember,
			JoinedAt: now,
			IsActive: true,
		})
	}

	if err := s.tripRepo.CreateTrip(trip); err != nil {
		return nil, err
	}
	return s.tripRepo.GetTripByID(trip.ID)
}

// GetTrip returns a trip with its members
func (s *TripService) GetTrip(tripID int) (*models.Trip, error) {
	return s.tripRepo.GetTripByID(tripID)
}

// ListTripsForUser returns summaries of the trips a user belongs to
func (s *TripService) ListTripsForUser(userID int) ([]models.TripSummary, error) {
	summaries, err := s.tripRepo.ListTripsForUser(userID)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.TripSummary{}
	}
	return summaries, nil
}

// UpdateTrip updates a trip's editable fields
func (s *TripService) UpdateTrip(tripID int, req *models.CreateTripRequest) (*models.Trip, error) {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return nil, err
	}

	trip.Name = req.Name
	trip.Description = req.Description
	if req.Currency != "" {
		trip.Currency = req.Currency
	}
	if !req.StartDate.IsZero() {
		trip.StartDate = req.StartDate
	}
	if !req.EndDate.IsZero() {
		trip.EndDate = req.EndDate
	}

	if err := s.tripRepo.UpdateTrip(trip); err != nil {
		return nil, err
	}
	return s.tripRepo.GetTripByID(tripID)
}

// AddMember adds a user to a trip, reactivating them if they left before
func (s *TripService) AddMember(tripID, userID int) error {
	if _, err := s.tripRepo.GetTripByID(tripID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetUserByID(userID); err != nil {
		return err
	}

	member, err := s.tripRepo.GetMember(tripID, userID)
	if err == nil {
		if member.IsActive {
			return utils.NewBadRequestError("User is already a member of this trip")
		}
		return s.tripRepo.ReactivateMember(tripID, userID)
	}
	if !utils.IsNotFound(err) {
		return err
	}

	return s.tripRepo.AddMember(tripID, userID, utils.RoleMember)
}

// RemoveMember deactivates a trip member. Their historical splits stay intact.
func (s *TripService) RemoveMember(tripID, userID int) error {
	member, err := s.tripRepo.GetMember(tripID, userID)
	if err != nil {
		return err
	}
	if !member.IsActive {
		return utils.NewBadRequestError("User is not an active member of this trip")
	}
	return s.tripRepo.DeactivateMember(tripID, userID)
}

// GenerateInviteLink creates a fresh invite code for a trip. Codes are retried
// until unused among active links. Expiry defaults to seven days.
func (s *TripService) GenerateInviteLink(tripID int, expiryDays int) (*models.TripInvite, error) {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return nil, err
	}

	var code string
	for {
		code = GenerateWordCode()
		inUse, err := s.tripRepo.InviteTokenInUse(code)
		if err != nil {
			return nil, err
		}
		if !inUse {
			break
		}
	}

	if expiryDays <= 0 {
		expiryDays = defaultInviteExpiryDays
	}
	expiry := time.Now().UTC().AddDate(0, 0, expiryDays)

	if err := s.tripRepo.SetInviteToken(tripID, code, &expiry, true); err != nil {
		return nil, err
	}

	return &models.TripInvite{
		TripID:      trip.ID,
		TripName:    trip.Name,
		InviteToken: code,
		InviteLink:  inviteLink(code),
		ExpiryDate:  &expiry,
		IsActive:    true,
	}, nil
}

// GetInviteInfo returns the public preview for an invite token. Invalid,
// deactivated and expired links all come back with IsValid false rather
// than an error.
func (s *TripService) GetInviteInfo(token string) (*models.TripInviteInfo, error) {
	trip, err := s.tripRepo.GetTripByInviteToken(token)
	if err != nil {
		if utils.IsNotFound(err) {
			return &models.TripInviteInfo{IsValid: false, Message: "Invalid invite link"}, nil
		}
		return nil, err
	}

	if !trip.IsInviteLinkActive {
		return &models.TripInviteInfo{
			TripName: trip.Name,
			IsValid:  false,
			Message:  "This invite link has been deactivated",
		}, nil
	}
	if trip.InviteTokenExpiry != nil && trip.InviteTokenExpiry.Before(time.Now().UTC()) {
		return &models.TripInviteInfo{
			TripName: trip.Name,
			IsValid:  false,
			Message:  "This invite link has expired",
		}, nil
	}

	return &models.TripInviteInfo{
		TripID:        trip.ID,
		TripName:      trip.Name,
		Description:   trip.Description,
		StartDate:     trip.StartDate,
		EndDate:       trip.EndDate,
		MemberCount:   len(trip.Members),
		CreatedByName: trip.CreatedByName,
		IsValid:       true,
		Message:       "Valid invite link",
	}, nil
}

// JoinTripViaInvite adds the user to the trip behind an invite token.
// Returning members are reactivated instead of duplicated.
func (s *TripService) JoinTripViaInvite(userID int, token string) (*models.Trip, error) {
	trip, err := s.tripRepo.GetTripByInviteToken(token)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NewNotFoundError("Invite link")
		}
		return nil, err
	}

	if !trip.IsInviteLinkActive {
		return nil, utils.NewBadRequestError("This invite link has been deactivated")
	}
	if trip.InviteTokenExpiry != nil && trip.InviteTokenExpiry.Before(time.Now().UTC()) {
		return nil, utils.NewBadRequestError("This invite link has expired")
	}

	member, err := s.tripRepo.GetMember(trip.ID, userID)
	switch {
	case err == nil && member.IsActive:
		return nil, utils.NewBadRequestError("You are already a member of this trip")
	case err == nil:
		if err := s.tripRepo.ReactivateMember(trip.ID, userID); err != nil {
			return nil, err
		}
	case utils.IsNotFound(err):
		if err := s.tripRepo.AddMember(trip.ID, userID, utils.RoleMember); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.tripRepo.GetTripByID(trip.ID)
}

// DeactivateInvite turns off a trip's invite link
func (s *TripService) DeactivateInvite(tripID int) error {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return err
	}
	return s.tripRepo.SetInviteToken(tripID, trip.InviteToken, trip.InviteTokenExpiry, false)
}

// GetInviteStatus returns the trip's current invite link, if one exists
func (s *TripService) GetInviteStatus(tripID int) (*models.TripInvite, error) {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip.InviteToken == "" {
		return nil, utils.NewNotFoundError("Invite link")
	}

	return &models.TripInvite{
		TripID:      trip.ID,
		TripName:    trip.Name,
		InviteToken: trip.InviteToken,
		InviteLink:  inviteLink(trip.InviteToken),
		ExpiryDate:  trip.InviteTokenExpiry,
		IsActive:    trip.IsInviteLinkActive,
	}, nil
}

func inviteLink(token string) string {
	base := os.Getenv("CLIENT_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/join/%s", base, token)
}
