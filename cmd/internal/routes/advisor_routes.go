package routes

import (
	"context"
	"net/http"
	"strings"

	"clientflow/cmd/internal/service"
	"clientflow/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AdvisorService interface {
	GetAdvisors(ctx context.Context) ([]*service.AdvisorResponse, apierror.ErrorResponse)
	GetAdvisor(ctx context.Context, id string) (*service.AdvisorResponse, apierror.ErrorResponse)
	GetSlots(ctx context.Context, id, date string) (*service.SlotsResponse, apierror.ErrorResponse)
}

type DefaultAdvisorRoute struct {
	AdvisorService AdvisorService
}

func NewAdvisorDefault(advisorService AdvisorService) *DefaultAdvisorRoute {
	return &DefaultAdvisorRoute{AdvisorService: advisorService}
}

func (a *DefaultAdvisorRoute) GetAdvisors(c echo.Context) error {
	advisors, apierr := a.AdvisorService.GetAdvisors(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"advisors": advisors}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAdvisorRoute) GetAdvisor(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	advisor, apierr := a.AdvisorService.GetAdvisor(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, advisor)
}

func (a *DefaultAdvisorRoute) GetSlots(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	date := c.QueryParam("date") // "2025-09-01"
	if date == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("date"))
	}

	slots, apierr := a.AdvisorService.GetSlots(c.Request().Context(), id, date)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, slots)
}
