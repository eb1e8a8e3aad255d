package service

import (
	"context"
	"errors"

	"clientflow/cmd/internal/domain/entity"
	cognitoclient "clientflow/cmd/internal/integration/aws/cognito"
	"clientflow/cmd/internal/metrics"
	"clientflow/cmd/internal/utils"
	"clientflow/cmd/internal/utils/apierror"

	"github.com/aws/smithy-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByRole(ctx context.Context, role string) ([]*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
}

type SignUpRequest struct {
	FullName  string  `json:"full_name" validate:"required,min=2,max=120"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=64,nospaces,hasspecial,hasdigit,hasupper,haslower"`
	Role      string  `json:"role" validate:"omitempty,oneof=customer advisor"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type ConfirmSignupRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,min=1,max=6"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

type ProfileResponse struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	Role            string `json:"role"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	Location        string `json:"location,omitempty"`
	LinkedinURL     string `json:"linkedin_url,omitempty"`
	Bio             string `json:"bio,omitempty"`
	ThemePreference string `json:"theme_preference,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// UpdateProfileRequest is a partial update: absent fields stay untouched.
type UpdateProfileRequest struct {
	FullName        *string `json:"full_name" validate:"omitempty,min=2,max=120"`
	Phone           *string `json:"phone" validate:"omitempty,max=32"`
	Address         *string `json:"address" validate:"omitempty,max=255"`
	AvatarURL       *string `json:"avatar_url" validate:"omitempty,url"`
	Location        *string `json:"location" validate:"omitempty,max=120"`
	LinkedinURL     *string `json:"linkedin_url" validate:"omitempty,url"`
	Bio             *string `json:"bio" validate:"omitempty,max=2000"`
	ThemePreference *string `json:"theme_preference" validate:"omitempty,oneof=light dark"`
}

type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

type DefaultUserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
	Cognito  cognitoclient.CognitoInterface
	Metrics  metrics.Recorder
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, cogClient cognitoclient.CognitoInterface, recorder metrics.Recorder) *DefaultUserService {
	return &DefaultUserService{UserRepo: userRepo, Validate: validate, Cognito: cogClient, Metrics: recorder}
}

// SignUp registers the credential with the identity provider (initial profile
// fields attached as metadata) and creates the profile row keyed by the
// issued subject. It does not sign the user in.
func (u *DefaultUserService) SignUp(ctx context.Context, req *SignUpRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	found, err := u.UserRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return apierror.InternalServerError
	}
	if found {
		return apierror.UserAlreadyExistsError
	}

	role := req.Role
	if role == "" {
		role = entity.RoleCustomer
	}

	metadata := map[string]string{"full_name": req.FullName, "role": role}
	if req.AvatarURL != nil {
		metadata["avatar_url"] = *req.AvatarURL
	}

	cogUser := &cognitoclient.User{Email: req.Email, Password: req.Password, Metadata: metadata}
	sub, apierr, revert := handleUserSignup(ctx, u.Cognito, cogUser)
	if apierr != nil {
		return apierr
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:        sub,
		FullName:  &req.FullName,
		Email:     &req.Email,
		Role:      role,
		AvatarURL: req.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.UserRepo.Save(ctx, user); err != nil {
		revert()
		log.Errorf("failed to create user: %v", err)
		return apierror.InternalServerError
	}

	u.Metrics.RecordSignup()
	return nil
}

func (u *DefaultUserService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, apierror.ErrorResponse) {
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		u.Metrics.RecordLogin(false)
		return nil, apierror.IDPUserNotFoundError
	}

	credentials := &cognitoclient.UserLogin{Email: req.Email, Password: req.Password}
	auth, apierr := handleUserSignin(ctx, u.Cognito, credentials)
	if apierr != nil {
		u.Metrics.RecordLogin(false)
		return nil, apierr
	}

	u.Metrics.RecordLogin(true)
	return &LoginResponse{AccessToken: auth.AccessToken, IDToken: auth.IDToken}, nil
}

// Logout revokes the caller's credential everywhere.
func (u *DefaultUserService) Logout(ctx context.Context, accessToken string) apierror.ErrorResponse {
	if err := u.Cognito.GlobalSignOut(ctx, accessToken); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotAuthorizedException" {
			// Already revoked; signing out twice is not an error worth surfacing.
			return nil
		}
		log.Errorf("failed to sign out user: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (u *DefaultUserService) ConfirmSignup(ctx context.Context, req *ConfirmSignupRequest) apierror.ErrorResponse {
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	confirms := &cognitoclient.UserConfirmation{Email: req.Email, Code: req.Code}
	return handleSignupConfirmation(ctx, u.Cognito, confirms)
}

func (u *DefaultUserService) GetProfile(ctx context.Context, sub string) (*ProfileResponse, apierror.ErrorResponse) {
	user, err := u.UserRepo.FindByID(ctx, sub)
	if err != nil {
		log.Errorf("failed to find user (%s): %v", sub, err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.NotFoundError
	}
	return toProfileResponse(user), nil
}

// UpdateProfile applies a partial update to the caller's profile row and
// returns the result.
func (u *DefaultUserService) UpdateProfile(ctx context.Context, sub string, req *UpdateProfileRequest) (*ProfileResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByID(ctx, sub)
	if err != nil {
		log.Errorf("failed to find user (%s): %v", sub, err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.NotFoundError
	}

	if err := u.UserRepo.UpdateFields(ctx, sub, req.fields()); err != nil {
		log.Errorf("failed to update user (%s): %v", sub, err)
		return nil, apierror.InternalServerError
	}

	updated, err := u.UserRepo.FindByID(ctx, sub)
	if err != nil || updated == nil {
		log.Errorf("failed to re-read user (%s) after update: %v", sub, err)
		return nil, apierror.InternalServerError
	}
	return toProfileResponse(updated), nil
}

func (u *DefaultUserService) SetTheme(ctx context.Context, sub string, req *ThemeRequest) apierror.ErrorResponse {
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	err := u.UserRepo.UpdateFields(ctx, sub, map[string]any{"theme_preference": req.Theme})
	if err != nil {
		log.Errorf("failed to update theme for user (%s): %v", sub, err)
		return apierror.InternalServerError
	}
	return nil
}

func (r *UpdateProfileRequest) fields() map[string]any {
	fields := map[string]any{}
	put := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	put("full_name", r.FullName)
	put("phone", r.Phone)
	put("address", r.Address)
	put("avatar_url", r.AvatarURL)
	put("location", r.Location)
	put("linkedin_url", r.LinkedinURL)
	put("bio", r.Bio)
	put("theme_preference", r.ThemePreference)
	return fields
}

func handleUserSignup(ctx context.Context, cogClient cognitoclient.CognitoInterface, req *cognitoclient.User) (string, apierror.ErrorResponse, func()) {
	revert := func() {
		_ = cogClient.AdminDeleteUser(context.WithoutCancel(ctx), req.Email)
	}

	sub, err := cogClient.SignUp(ctx, req)
	if err == nil {
		return sub, nil, revert
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidPasswordException":
			return "", apierror.IDPInvalidPasswordError, revert
		case "UsernameExistsException":
			return "", apierror.IDPExistingEmailError, revert
		default:
			log.Errorf("signup failed for user (%s): %s - %s", req.Email, apiErr.ErrorCode(), apiErr.ErrorMessage())
			return "", apierror.InternalServerError, revert
		}
	}

	log.Errorf("failed to signup user (%s): %v", req.Email, err)
	return "", apierror.InternalServerError, revert
}

func handleUserSignin(ctx context.Context, cogClient cognitoclient.CognitoInterface, req *cognitoclient.UserLogin) (*cognitoclient.AuthCreate, apierror.ErrorResponse) {
	auth, err := cogClient.SignIn(ctx, req)
	if err == nil {
		return auth, nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UserNotFoundException":
			return nil, apierror.IDPUserNotFoundError
		case "UserNotConfirmedException":
			return nil, apierror.IDPUserNotConfirmedError
		case "NotAuthorizedException":
			return nil, apierror.IDPCredentialsMismatchError
		default:
			log.Errorf("signin failed for user (%s): %s - %s", req.Email, apiErr.ErrorCode(), apiErr.ErrorMessage())
			return nil, apierror.InternalServerError
		}
	}

	log.Errorf("failed to signin user (%s): %v", req.Email, err)
	return nil, apierror.InternalServerError
}

func handleSignupConfirmation(ctx context.Context, cogClient cognitoclient.CognitoInterface, req *cognitoclient.UserConfirmation) apierror.ErrorResponse {
	err := cogClient.ConfirmAccount(ctx, req)
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "CodeMismatchException":
			return apierror.IDPConfirmCodeMismatchError
		case "ExpiredCodeException":
			return apierror.IDPConfirmCodeExpiredError
		case "UserNotFoundException":
			return apierror.IDPUserNotFoundError
		default:
			log.Errorf("confirmation failed for user (%s): %s - %s", req.Email, apiErr.ErrorCode(), apiErr.ErrorMessage())
			return apierror.InternalServerError
		}
	}

	log.Errorf("failed to confirm user (%s): %v", req.Email, err)
	return apierror.InternalServerError
}

func toProfileResponse(user *entity.User) *ProfileResponse {
	return &ProfileResponse{
		ID:              user.ID,
		FullName:        utils.Deref(user.FullName),
		Email:           utils.Deref(user.Email),
		Phone:           utils.Deref(user.Phone),
		Address:         utils.Deref(user.Address),
		Role:            user.Role,
		AvatarURL:       utils.Deref(user.AvatarURL),
		Location:        utils.Deref(user.Location),
		LinkedinURL:     utils.Deref(user.LinkedinURL),
		Bio:             utils.Deref(user.Bio),
		ThemePreference: utils.Deref(user.ThemePreference),
		CreatedAt:       utils.FormatEpoch(user.CreatedAt),
		UpdatedAt:       utils.FormatEpoch(user.UpdatedAt),
	}
}
