package service

import (
	"errors"

	"goblog/database"
	"goblog/database/model"
	"goblog/logger"
	"goblog/util/crypto"

	"gorm.io/gorm"
)

// Registration failures that map to user-visible messages rather than hard
// errors.
var (
	ErrEmailTaken    = errors.New("email already exists")
	ErrUsernameTaken = errors.New("username already exists")
)

type UserService struct{}

// Register creates a new user after checking email and username uniqueness.
// The raw password is bcrypt-hashed before it is stored. The check-then-insert
// is not transactional; a concurrent duplicate surfaces as a store-level
// constraint failure instead of the friendly message.
func (s *UserService) Register(firstName, lastName, username, email, password string) error {
	db := database.GetDB()

	var count int64
	if err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	if err := db.Model(model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	user := &model.User{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
	}
	return db.Create(user).Error
}

// CheckUser looks a user up by email and verifies the password. Returns nil
// on any failure; callers surface a single generic invalid-credentials
// message either way.
func (s *UserService) CheckUser(email string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	return user
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) CountUsers() (int64, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).Count(&count).Error
	return count, err
}
