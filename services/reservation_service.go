package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// calendarLedger is the slice of the availability ledger the lifecycle
// needs, with the transaction handle passed through so ledger mutations
// commit or roll back together with the status write.
type calendarLedger interface {
	conflictingDays(tx *gorm.DB, propertyID uint, r models.DateRange) ([]time.Time, error)
	blockStrict(tx *gorm.DB, propertyID uint, r models.DateRange, provenance string) error
	unblock(tx *gorm.DB, propertyID uint, r models.DateRange, provenance string) error
}

// ReservationService drives a reservation through
// pending -> confirmed|rejected and confirmed -> cancelled, keeping the
// availability ledger consistent with every move.
type ReservationService struct {
	DB      *gorm.DB
	Pricing *PricingService
	ledger  calendarLedger
}

func NewReservationService(db *gorm.DB, pricing *PricingService, ledger *AvailabilityService) *ReservationService {
	return &ReservationService{DB: db, Pricing: pricing, ledger: ledger}
}

type CreateReservationInput struct {
	PropertyID      uint
	Kind            string
	CheckIn         time.Time
	CheckOut        time.Time
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	OccupantCount   int
	CompanionGuests datatypes.JSON
}

func (in *CreateReservationInput) validate() error {
	if strings.TrimSpace(in.GuestName) == "" {
		return errors.New("guest_name_required")
	}
	if _, err := mail.ParseAddress(in.GuestEmail); err != nil {
		return errors.New("guest_email_invalid")
	}
	if in.OccupantCount <= 0 {
		return errors.New("occupant_count_invalid")
	}
	switch in.Kind {
	case "", models.KindStay, models.KindSeason:
	default:
		return errors.New("reservation_kind_invalid")
	}
	return nil
}

// Create quotes the total once and stores the reservation as pending.
func (s *ReservationService) Create(in CreateReservationInput) (models.Reservation, error) {
	if err := in.validate(); err != nil {
		return models.Reservation{}, err
	}
	kind := in.Kind
	if kind == "" {
		kind = models.KindStay
	}

	r, err := models.NewDateRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return models.Reservation{}, err
	}
	if r.Nights() < 1 {
		return models.Reservation{}, models.ErrInvalidRange
	}

	var property models.Property
	if err := s.DB.First(&property, in.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reservation{}, ErrPropertyNotFound
		}
		return models.Reservation{}, fmt.Errorf("load property: %w", err)
	}

	var total float64
	switch kind {
	case models.KindStay:
		if property.MinNights > 0 && r.Nights() < property.MinNights {
			return models.Reservation{}, ErrStayTooShort
		}
		if property.MaxNights > 0 && r.Nights() > property.MaxNights {
			return models.Reservation{}, ErrStayTooLong
		}
		total, err = s.Pricing.Quote(property, r)
	case models.KindSeason:
		total, err = SeasonTotal(property.MonthlyRate, r)
	}
	if err != nil {
		return models.Reservation{}, err
	}

	reservation := models.Reservation{
		PropertyID:      property.ID,
		Kind:            kind,
		ReferenceCode:   utils.NewReferenceCode(),
		CheckIn:         r.Start,
		CheckOut:        r.End,
		GuestName:       strings.TrimSpace(in.GuestName),
		GuestEmail:      strings.TrimSpace(in.GuestEmail),
		GuestPhone:      strings.TrimSpace(in.GuestPhone),
		OccupantCount:   in.OccupantCount,
		CompanionGuests: in.CompanionGuests,
		TotalPrice:      total,
		Status:          models.StatusPending,
	}
	if err := s.DB.Create(&reservation).Error; err != nil {
		return models.Reservation{}, fmt.Errorf("save reservation: %w", err)
	}
	return reservation, nil
}

func (s *ReservationService) GetByID(id uint) (models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Property").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reservation{}, ErrReservationNotFound
		}
		return models.Reservation{}, fmt.Errorf("load reservation: %w", err)
	}
	return reservation, nil
}

func (s *ReservationService) ListByProperty(propertyID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.
		Where("property_id = ?", propertyID).
		Order("check_in ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

// Confirm moves a pending reservation to confirmed. For stay bookings the
// availability re-check, the status write and the calendar block run in one
// transaction: if any step fails, the reservation is still pending and the
// calendar untouched. A lost race against a competing writer surfaces as
// RangeUnavailableError; any other storage failure as ErrConfirmationFailed.
func (s *ReservationService) Confirm(id uint) (models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("load reservation: %w", err)
		}
		if reservation.Status != models.StatusPending {
			return ErrInvalidTransition
		}

		r, err := reservation.Range()
		if err != nil {
			return err
		}

		if reservation.Kind == models.KindStay {
			days, err := s.ledger.conflictingDays(tx, reservation.PropertyID, r)
			if err != nil {
				return fmt.Errorf("%w: availability check: %v", ErrConfirmationFailed, err)
			}
			if len(days) > 0 {
				return &RangeUnavailableError{Days: days}
			}
		}

		if err := tx.Model(&reservation).Update("status", models.StatusConfirmed).Error; err != nil {
			return fmt.Errorf("%w: update status: %v", ErrConfirmationFailed, err)
		}

		if reservation.Kind == models.KindStay {
			if err := s.ledger.blockStrict(tx, reservation.PropertyID, r, models.ProvenanceBooking); err != nil {
				if isDuplicateEntry(err) {
					return &RangeUnavailableError{}
				}
				return fmt.Errorf("%w: block calendar: %v", ErrConfirmationFailed, err)
			}
		}

		reservation.Status = models.StatusConfirmed
		return nil
	})
	if err != nil {
		return models.Reservation{}, err
	}
	return reservation, nil
}

// Reject moves a pending reservation to the terminal rejected status. It
// never touched the ledger, so there is nothing to compensate.
func (s *ReservationService) Reject(id uint, note string) (models.Reservation, error) {
	return s.finalize(id, models.StatusPending, models.StatusRejected, note)
}

// Cancel moves a confirmed reservation to cancelled and frees the
// booking-provenance days of its range. The status flip commits on its own:
// if the unblock then fails, the result is a recoverable
// cancelled-but-still-blocked calendar rather than a phantom booking, so it
// is reported as PartialCancellationError instead of being rolled back.
func (s *ReservationService) Cancel(id uint, note string) (models.Reservation, error) {
	reservation, err := s.finalize(id, models.StatusConfirmed, models.StatusCancelled, note)
	if err != nil {
		return models.Reservation{}, err
	}

	if reservation.Kind == models.KindStay {
		r, rerr := reservation.Range()
		if rerr != nil {
			return reservation, &PartialCancellationError{Err: rerr}
		}
		if uerr := s.ledger.unblock(s.DB, reservation.PropertyID, r, models.ProvenanceBooking); uerr != nil {
			return reservation, &PartialCancellationError{Err: uerr}
		}
	}
	return reservation, nil
}

func (s *ReservationService) finalize(id uint, from, to, note string) (models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("load reservation: %w", err)
		}
		if reservation.Status != from {
			return ErrInvalidTransition
		}
		updates := map[string]interface{}{"status": to, "status_note": strings.TrimSpace(note)}
		if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		reservation.Status = to
		reservation.StatusNote = strings.TrimSpace(note)
		return nil
	})
	if err != nil {
		return models.Reservation{}, err
	}
	return reservation, nil
}
