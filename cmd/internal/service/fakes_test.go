package service

import (
	"context"
	"errors"

	"clientflow/cmd/internal/domain/entity"
	cognitoclient "clientflow/cmd/internal/integration/aws/cognito"
)

type fakeUserRepo struct {
	users     map[string]*entity.User // keyed by id
	saveErr   error
	saveCalls int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	user, found := r.users[id]
	if !found {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email != nil && *user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := r.FindByEmail(ctx, email)
	return user != nil, err
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role string) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range r.users {
		if user.Role == role {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *entity.User) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	user, found := r.users[id]
	if !found {
		return errors.New("no such user")
	}
	for column, value := range fields {
		str, _ := value.(string)
		switch column {
		case "full_name":
			user.FullName = &str
		case "phone":
			user.Phone = &str
		case "address":
			user.Address = &str
		case "avatar_url":
			user.AvatarURL = &str
		case "location":
			user.Location = &str
		case "linkedin_url":
			user.LinkedinURL = &str
		case "bio":
			user.Bio = &str
		case "theme_preference":
			user.ThemePreference = &str
		}
	}
	return nil
}

type fakeAdvisorRepo struct {
	advisors map[string]*entity.Advisor
}

func (r *fakeAdvisorRepo) FindByID(_ context.Context, id string) (*entity.Advisor, error) {
	advisor, found := r.advisors[id]
	if !found {
		return nil, nil
	}
	return advisor, nil
}

type fakeBookingRepo struct {
	bookings  []*entity.Booking
	taken     bool
	insertErr error
}

func (r *fakeBookingRepo) Insert(_ context.Context, booking *entity.Booking) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.bookings = append(r.bookings, booking)
	return nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID string) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) IsSlotTaken(context.Context, string, int64, int64) (bool, error) {
	return r.taken, nil
}

type fakeCognito struct {
	sub           string
	signUpErr     error
	signInErr     error
	signOutErr    error
	confirmErr    error
	deletedEmails []string
	lastMetadata  map[string]string
}

func (f *fakeCognito) SignUp(_ context.Context, user *cognitoclient.User) (string, error) {
	f.lastMetadata = user.Metadata
	if f.signUpErr != nil {
		return "", f.signUpErr
	}
	return f.sub, nil
}

func (f *fakeCognito) ConfirmAccount(context.Context, *cognitoclient.UserConfirmation) error {
	return f.confirmErr
}

func (f *fakeCognito) SignIn(_ context.Context, _ *cognitoclient.UserLogin) (*cognitoclient.AuthCreate, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &cognitoclient.AuthCreate{AccessToken: "access", IDToken: "id"}, nil
}

func (f *fakeCognito) CurrentUser(context.Context, string) (*cognitoclient.Identity, error) {
	return &cognitoclient.Identity{Sub: f.sub}, nil
}

func (f *fakeCognito) GlobalSignOut(context.Context, string) error {
	return f.signOutErr
}

func (f *fakeCognito) AdminDeleteUser(_ context.Context, email string) error {
	f.deletedEmails = append(f.deletedEmails, email)
	return nil
}

type fakeRecorder struct {
	signups       int
	loginSuccess  int
	loginFailure  int
	bookings      int
}

func (f *fakeRecorder) RecordSignup() { f.signups++ }

func (f *fakeRecorder) RecordLogin(success bool) {
	if success {
		f.loginSuccess++
		return
	}
	f.loginFailure++
}

func (f *fakeRecorder) RecordBooking() { f.bookings++ }
