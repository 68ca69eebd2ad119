package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"umkmotion-otp/model"
)

type UserRepository interface {
	Create(user *model.User) error
	GetByID(id uuid.UUID) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	Update(user *model.User) error
}

type pgUserRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *pgUserRepo) GetByID(id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.Preload("Credentials").First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgUserRepo) GetByEmail(email string) (*model.User, error) {
	var u model.User
	// Credentials are needed for the password check during login
	if err := r.db.Preload("Credentials").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgUserRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}
