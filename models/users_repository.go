package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsersRepository struct {
	db *gorm.DB
}

// ErrUserNotFound is returned when no user has the requested email.
var ErrUserNotFound = errors.New("user not found")

func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{
		db: db,
	}
}

// DeleteAll removes every user together with the profiles they own.
func (r *UsersRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := global.Delete(&Profile{}).Error; err != nil {
			return err
		}
		res := global.Delete(&User{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

// UpsertByEmail inserts user unless a user with the same email already
// exists. An existing row is left untouched and loaded into user instead.
// A new user's Profile is created in the same transaction.
// The returned flag reports whether a row was inserted.
func (r *UsersRepository) UpsertByEmail(ctx context.Context, user *User) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Omit("Profile").Create(user)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var existing User
			if err := tx.Preload("Profile").Where("email = ?", user.Email).Take(&existing).Error; err != nil {
				return err
			}
			*user = existing
			return nil
		}

		created = true
		if user.Profile != nil {
			user.Profile.UserID = user.ID
			return tx.Create(user.Profile).Error
		}
		return nil
	})
	return created, err
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&total).Error
	return total, err
}
