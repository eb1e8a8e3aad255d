package repository

import (
	"context"
	"errors"

	"clientflow/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultAdvisorRepository struct {
	db *gorm.DB
}

func NewAdvisorRepository(db *gorm.DB) *DefaultAdvisorRepository {
	return &DefaultAdvisorRepository{db: db}
}

// FindByID returns the advisor extension row, or (nil, nil) when none exists.
// Advisors without one are still bookable; the caller falls back to defaults.
func (a *DefaultAdvisorRepository) FindByID(ctx context.Context, id string) (*entity.Advisor, error) {
	var advisor entity.Advisor
	err := a.db.WithContext(ctx).First(&advisor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &advisor, nil
}

func (a *DefaultAdvisorRepository) Save(ctx context.Context, advisor *entity.Advisor) error {
	return a.db.WithContext(ctx).Save(advisor).Error
}
