package service

import (
	"context"
	"time"

	"clientflow/cmd/internal/domain/entity"
	"clientflow/cmd/internal/metrics"
	"clientflow/cmd/internal/utils"
	"clientflow/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type BookingRepository interface {
	Insert(ctx context.Context, booking *entity.Booking) error
	FindByUserID(ctx context.Context, userID string) ([]*entity.Booking, error)
	IsSlotTaken(ctx context.Context, advisorID string, begin, end int64) (bool, error)
}

type BookingRequest struct {
	AdvisorID     string  `json:"advisor_id" validate:"required,uuid"`
	SessionTime   string  `json:"session_time" validate:"required,iso8601"`
	SessionLength int     `json:"session_length" validate:"required,oneof=15 30"`
	Notes         *string `json:"notes" validate:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	AdvisorID     string `json:"advisor_id"`
	SessionTime   string `json:"session_time"`
	SessionLength int    `json:"session_length"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type DefaultBookingService struct {
	BookingRepo BookingRepository
	UserRepo    UserRepository
	Validate    *validator.Validate
	Metrics     metrics.Recorder
}

func NewBookingService(bookingRepo BookingRepository, userRepo UserRepository, validate *validator.Validate, recorder metrics.Recorder) *DefaultBookingService {
	return &DefaultBookingService{BookingRepo: bookingRepo, UserRepo: userRepo, Validate: validate, Metrics: recorder}
}

// CreateBooking books an advisory session for the caller. Bookings are
// immutable once created; there is no edit or cancel path.
func (b *DefaultBookingService) CreateBooking(ctx context.Context, req *BookingRequest, sub string) (*BookingResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := b.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	advisor, err := b.UserRepo.FindByID(ctx, req.AdvisorID)
	if err != nil {
		log.Errorf("failed to fetch advisor (%s): %v", req.AdvisorID, err)
		return nil, apierror.InternalServerError
	}
	if advisor == nil || advisor.Role != entity.RoleAdvisor {
		return nil, apierror.NotFoundError
	}

	begin, err := utils.FromEpoch(req.SessionTime)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}
	if begin <= utils.NowUTC() {
		return nil, apierror.SessionInPastError
	}
	end := begin + int64(req.SessionLength)*time.Minute.Milliseconds()

	taken, err := b.BookingRepo.IsSlotTaken(ctx, req.AdvisorID, begin, end)
	if err != nil {
		log.Errorf("failed to check slot availability for advisor (%s): %v", req.AdvisorID, err)
		return nil, apierror.InternalServerError
	}
	if taken {
		return nil, apierror.SlotNotAvailableError
	}

	booking := &entity.Booking{
		ID:            uuid.NewString(),
		UserID:        sub,
		AdvisorID:     req.AdvisorID,
		SessionTime:   begin,
		SessionLength: req.SessionLength,
		Status:        entity.BookingStatusScheduled,
		Notes:         req.Notes,
		CreatedAt:     utils.NowUTC(),
	}

	if err := b.BookingRepo.Insert(ctx, booking); err != nil {
		log.Errorf("failed to save booking: %v", err)
		return nil, apierror.InternalServerError
	}

	b.Metrics.RecordBooking()
	return toBookingResponse(booking), nil
}

func (b *DefaultBookingService) GetBookings(ctx context.Context, sub string) ([]*BookingResponse, apierror.ErrorResponse) {
	bookings, err := b.BookingRepo.FindByUserID(ctx, sub)
	if err != nil {
		log.Errorf("failed to fetch bookings for user (%s): %v", sub, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp[i] = toBookingResponse(booking)
	}
	return resp, nil
}

func toBookingResponse(booking *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            booking.ID,
		UserID:        booking.UserID,
		AdvisorID:     booking.AdvisorID,
		SessionTime:   utils.FormatEpoch(booking.SessionTime),
		SessionLength: booking.SessionLength,
		Status:        booking.Status,
		Notes:         utils.Deref(booking.Notes),
		CreatedAt:     utils.FormatEpoch(booking.CreatedAt),
	}
}
