package repository

import (
	"context"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
)

var (
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrUserEmailExists = dao.ErrUserEmailExists
)

type UserDAO interface {
	Create(ctx context.Context, user dao.User) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Create(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Role:     user.Role,
	})
	if err != nil {
		return domain.User{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) daoToDomain(user dao.User) domain.User {
	return domain.User{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.Password,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
