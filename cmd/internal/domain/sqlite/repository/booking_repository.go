package repository

import (
	"context"

	"clientflow/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *DefaultBookingRepository {
	return &DefaultBookingRepository{db: db}
}

func (b *DefaultBookingRepository) Insert(ctx context.Context, booking *entity.Booking) error {
	return b.db.WithContext(ctx).Create(booking).Error
}

func (b *DefaultBookingRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	err := b.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("session_time asc").
		Find(&bookings).Error
	return bookings, err
}

// IsSlotTaken reports whether the advisor already has a booking overlapping
// [begin, end).
func (b *DefaultBookingRepository) IsSlotTaken(ctx context.Context, advisorID string, begin, end int64) (bool, error) {
	var count int64
	err := b.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("advisor_id = ?", advisorID).
		Where("session_time < ?", end).
		Where("session_time + session_length * 60000 > ?", begin).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
