package routes

import (
	"context"
	"net/http"

	"clientflow/cmd/internal/service"
	"clientflow/cmd/internal/utils"
	"clientflow/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *service.BookingRequest, sub string) (*service.BookingResponse, apierror.ErrorResponse)
	GetBookings(ctx context.Context, sub string) ([]*service.BookingResponse, apierror.ErrorResponse)
}

type DefaultBookingRoute struct {
	BookingService BookingService
}

func NewBookingDefault(bookingService BookingService) *DefaultBookingRoute {
	return &DefaultBookingRoute{BookingService: bookingService}
}

func (b *DefaultBookingRoute) CreateBooking(c echo.Context) error {
	var req service.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	booking, apierr := b.BookingService.CreateBooking(c.Request().Context(), &req, data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (b *DefaultBookingRoute) GetBookings(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	bookings, apierr := b.BookingService.GetBookings(c.Request().Context(), data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"bookings": bookings}
	return c.JSON(http.StatusOK, &resp)
}
