package repository

import (
	"context"
	"errors"

	"clientflow/cmd/internal/domain/entity"
	"clientflow/cmd/internal/utils"

	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *DefaultUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (u *DefaultUserRepository) FindByRole(ctx context.Context, role string) ([]*entity.User, error) {
	var users []*entity.User
	err := u.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at asc").
		Find(&users).Error
	return users, err
}

func (u *DefaultUserRepository) Save(ctx context.Context, user *entity.User) error {
	return u.db.WithContext(ctx).Save(user).Error
}

// UpdateFields applies a partial update; only the supplied columns change.
func (u *DefaultUserRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = utils.NowUTC()
	return u.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}
