package service

import (
	"context"
	"time"

	"clientflow/cmd/internal/domain/entity"
	"clientflow/cmd/internal/schedule"
	"clientflow/cmd/internal/utils"
	"clientflow/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// defaultCalendlyLink is offered when an advisor has no extended row yet.
const defaultCalendlyLink = "https://calendly.com/tony-hein/30min"

type AdvisorRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Advisor, error)
}

type AdvisorResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	Location     string `json:"location,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	Bio          string `json:"bio,omitempty"`
	CalendlyLink string `json:"calendly_link,omitempty"`
}

type SlotsResponse struct {
	Date  string              `json:"date"`
	Slots []schedule.TimeSlot `json:"slots"`
}

type DefaultAdvisorService struct {
	UserRepo    UserRepository
	AdvisorRepo AdvisorRepository

	// now is swappable for tests; slot policy depends on the current day.
	now func() time.Time
}

func NewAdvisorService(userRepo UserRepository, advisorRepo AdvisorRepository) *DefaultAdvisorService {
	return &DefaultAdvisorService{UserRepo: userRepo, AdvisorRepo: advisorRepo, now: time.Now}
}

func (a *DefaultAdvisorService) GetAdvisors(ctx context.Context) ([]*AdvisorResponse, apierror.ErrorResponse) {
	advisors, err := a.UserRepo.FindByRole(ctx, entity.RoleAdvisor)
	if err != nil {
		log.Errorf("failed to fetch advisors: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*AdvisorResponse, len(advisors))
	for i, advisor := range advisors {
		resp[i] = toAdvisorResponse(advisor, nil)
	}
	return resp, nil
}

// GetAdvisor merges the advisor's profile row with the optional extended row.
// A missing extended row is a normal empty case, not a failure.
func (a *DefaultAdvisorService) GetAdvisor(ctx context.Context, id string) (*AdvisorResponse, apierror.ErrorResponse) {
	user, apierr := a.fetchAdvisorUser(ctx, id)
	if apierr != nil {
		return nil, apierr
	}

	extended, err := a.AdvisorRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch advisor row (%s): %v", id, err)
		return nil, apierror.InternalServerError
	}

	return toAdvisorResponse(user, extended), nil
}

// GetSlots generates the bookable slots an advisor offers on a calendar date.
// An empty list is a valid answer; callers render a "no slots" state.
func (a *DefaultAdvisorService) GetSlots(ctx context.Context, id, rawDate string) (*SlotsResponse, apierror.ErrorResponse) {
	if _, apierr := a.fetchAdvisorUser(ctx, id); apierr != nil {
		return nil, apierr
	}

	date, err := utils.ParseDate(rawDate)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError("date", "YYYY-MM-DD")
	}

	return &SlotsResponse{
		Date:  rawDate,
		Slots: schedule.GenerateSlots(date, a.now().UTC()),
	}, nil
}

func (a *DefaultAdvisorService) fetchAdvisorUser(ctx context.Context, id string) (*entity.User, apierror.ErrorResponse) {
	user, err := a.UserRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch advisor (%s): %v", id, err)
		return nil, apierror.InternalServerError
	}
	if user == nil || user.Role != entity.RoleAdvisor {
		return nil, apierror.NotFoundError
	}
	return user, nil
}

func toAdvisorResponse(user *entity.User, extended *entity.Advisor) *AdvisorResponse {
	resp := &AdvisorResponse{
		ID:          user.ID,
		FullName:    utils.Deref(user.FullName),
		Email:       utils.Deref(user.Email),
		AvatarURL:   utils.Deref(user.AvatarURL),
		Location:    utils.Deref(user.Location),
		LinkedinURL: utils.Deref(user.LinkedinURL),
		Bio:         utils.Deref(user.Bio),
	}

	resp.CalendlyLink = defaultCalendlyLink
	if extended != nil && extended.CalendlyLink != nil && *extended.CalendlyLink != "" {
		resp.CalendlyLink = *extended.CalendlyLink
	}
	return resp
}
