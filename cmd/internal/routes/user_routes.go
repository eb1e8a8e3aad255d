package routes

import (
	"context"
	"net/http"

	"clientflow/cmd/internal/service"
	"clientflow/cmd/internal/utils"
	"clientflow/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	SignUp(ctx context.Context, req *service.SignUpRequest) apierror.ErrorResponse
	Login(ctx context.Context, req *service.LoginRequest) (*service.LoginResponse, apierror.ErrorResponse)
	Logout(ctx context.Context, accessToken string) apierror.ErrorResponse
	ConfirmSignup(ctx context.Context, req *service.ConfirmSignupRequest) apierror.ErrorResponse
	GetProfile(ctx context.Context, sub string) (*service.ProfileResponse, apierror.ErrorResponse)
	UpdateProfile(ctx context.Context, sub string, req *service.UpdateProfileRequest) (*service.ProfileResponse, apierror.ErrorResponse)
	SetTheme(ctx context.Context, sub string, req *service.ThemeRequest) apierror.ErrorResponse
}

type DefaultUserRoute struct {
	UserService UserService
}

func NewUserDefault(userService UserService) *DefaultUserRoute {
	return &DefaultUserRoute{UserService: userService}
}

func (u *DefaultUserRoute) SignUp(c echo.Context) error {
	var req service.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := u.UserService.SignUp(c.Request().Context(), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusCreated)
}

func (u *DefaultUserRoute) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := u.UserService.Login(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (u *DefaultUserRoute) Logout(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	if apierr := u.UserService.Logout(c.Request().Context(), data.RawToken); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (u *DefaultUserRoute) VerifySignup(c echo.Context) error {
	var req service.ConfirmSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := u.UserService.ConfirmSignup(c.Request().Context(), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (u *DefaultUserRoute) GetMe(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	profile, apierr := u.UserService.GetProfile(c.Request().Context(), data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}

func (u *DefaultUserRoute) UpdateMe(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	var req service.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	profile, apierr := u.UserService.UpdateProfile(c.Request().Context(), data.Sub, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}

func (u *DefaultUserRoute) SetTheme(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	var req service.ThemeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := u.UserService.SetTheme(c.Request().Context(), data.Sub, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
