package store

import (
	"context"
	"errors"

	"buglog/internal/domain"

	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

// SelectAll returns every user in database order.
func (u *UserStore) SelectAll(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := u.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, dbError("select users", err)
	}
	return users, nil
}

// SelectByID returns nil, nil when no user has the id.
func (u *UserStore) SelectByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError("select user by id", err)
	}
	return &user, nil
}
