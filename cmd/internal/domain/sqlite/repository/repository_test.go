package repository

import (
	"context"
	"testing"
	"time"

	"clientflow/cmd/internal/domain/entity"
	"clientflow/cmd/internal/domain/sqlite"
	"clientflow/cmd/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, repo *DefaultUserRepository, id, email, role string) *entity.User {
	t.Helper()
	now := utils.NowUTC()
	user := &entity.User{
		ID:        id,
		FullName:  utils.StrPtr("Jane Doe"),
		Email:     utils.StrPtr(email),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("FindByID returns nil without error for a missing row", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))

		user, err := repo.FindByID(ctx, "ghost")

		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Save then FindByEmail round-trips the row", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))
		seedUser(t, repo, "u1", "jane@example.com", entity.RoleCustomer)

		user, err := repo.FindByEmail(ctx, "jane@example.com")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "Jane Doe", utils.Deref(user.FullName))
	})

	t.Run("ExistsByEmail", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))
		seedUser(t, repo, "u1", "jane@example.com", entity.RoleCustomer)

		found, err := repo.ExistsByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.True(t, found)

		found, err = repo.ExistsByEmail(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("FindByRole filters and orders by creation time", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))
		first := seedUser(t, repo, "adv-1", "one@example.com", entity.RoleAdvisor)
		second := seedUser(t, repo, "adv-2", "two@example.com", entity.RoleAdvisor)
		second.CreatedAt = first.CreatedAt + 1
		require.NoError(t, repo.Save(ctx, second))
		seedUser(t, repo, "cust-1", "three@example.com", entity.RoleCustomer)

		advisors, err := repo.FindByRole(ctx, entity.RoleAdvisor)

		require.NoError(t, err)
		require.Len(t, advisors, 2)
		assert.Equal(t, "adv-1", advisors[0].ID)
		assert.Equal(t, "adv-2", advisors[1].ID)
	})

	t.Run("UpdateFields touches only the named columns", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))
		seedUser(t, repo, "u1", "jane@example.com", entity.RoleCustomer)

		err := repo.UpdateFields(ctx, "u1", map[string]any{"location": "Berlin"})
		require.NoError(t, err)

		user, err := repo.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Berlin", utils.Deref(user.Location))
		assert.Equal(t, "Jane Doe", utils.Deref(user.FullName))
	})
}

func TestAdvisorRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("FindByID treats a missing row as empty", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewAdvisorRepository(db)

		advisor, err := repo.FindByID(ctx, "adv-1")

		require.NoError(t, err)
		assert.Nil(t, advisor)
	})

	t.Run("Save then FindByID", func(t *testing.T) {
		db := newTestDB(t)
		seedUser(t, NewUserRepository(db), "adv-1", "tony@example.com", entity.RoleAdvisor)
		repo := NewAdvisorRepository(db)

		row := &entity.Advisor{
			ID:           "adv-1",
			CalendlyLink: utils.StrPtr("https://calendly.com/adv-1/intro"),
			CreatedAt:    utils.NowUTC(),
		}
		require.NoError(t, repo.Save(ctx, row))

		advisor, err := repo.FindByID(ctx, "adv-1")
		require.NoError(t, err)
		require.NotNil(t, advisor)
		assert.Equal(t, "https://calendly.com/adv-1/intro", utils.Deref(advisor.CalendlyLink))
	})
}

func TestBookingRepository(t *testing.T) {
	ctx := context.Background()

	seedBooking := func(t *testing.T, repo *DefaultBookingRepository, id, userID string, start time.Time, length int) {
		t.Helper()
		require.NoError(t, repo.Insert(ctx, &entity.Booking{
			ID:            id,
			UserID:        userID,
			AdvisorID:     "adv-1",
			SessionTime:   start.UnixMilli(),
			SessionLength: length,
			Status:        entity.BookingStatusScheduled,
			CreatedAt:     utils.NowUTC(),
		}))
	}

	t.Run("FindByUserID returns the caller's bookings ordered by session time", func(t *testing.T) {
		db := newTestDB(t)
		seedUser(t, NewUserRepository(db), "adv-1", "tony@example.com", entity.RoleAdvisor)
		repo := NewBookingRepository(db)

		base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
		seedBooking(t, repo, "b2", "cust-1", base.Add(time.Hour), 30)
		seedBooking(t, repo, "b1", "cust-1", base, 30)
		seedBooking(t, repo, "b3", "cust-2", base, 30)

		bookings, err := repo.FindByUserID(ctx, "cust-1")

		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, "b1", bookings[0].ID)
		assert.Equal(t, "b2", bookings[1].ID)
	})

	t.Run("IsSlotTaken detects overlaps", func(t *testing.T) {
		db := newTestDB(t)
		seedUser(t, NewUserRepository(db), "adv-1", "tony@example.com", entity.RoleAdvisor)
		repo := NewBookingRepository(db)

		start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
		seedBooking(t, repo, "b1", "cust-1", start, 30)

		overlap := func(begin time.Time, length int) bool {
			end := begin.Add(time.Duration(length) * time.Minute)
			taken, err := repo.IsSlotTaken(ctx, "adv-1", begin.UnixMilli(), end.UnixMilli())
			require.NoError(t, err)
			return taken
		}

		assert.True(t, overlap(start, 30), "same slot")
		assert.True(t, overlap(start.Add(15*time.Minute), 30), "partial overlap")
		assert.False(t, overlap(start.Add(30*time.Minute), 30), "back to back")
		assert.False(t, overlap(start.Add(-30*time.Minute), 30), "slot before")
	})

	t.Run("IsSlotTaken scopes by advisor", func(t *testing.T) {
		db := newTestDB(t)
		seedUser(t, NewUserRepository(db), "adv-1", "tony@example.com", entity.RoleAdvisor)
		repo := NewBookingRepository(db)

		start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
		seedBooking(t, repo, "b1", "cust-1", start, 30)

		taken, err := repo.IsSlotTaken(ctx, "adv-2", start.UnixMilli(), start.Add(30*time.Minute).UnixMilli())
		require.NoError(t, err)
		assert.False(t, taken)
	})
}
