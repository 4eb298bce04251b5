package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"todo-server/entities"
	"todo-server/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUsernameTaken      = errors.New("a user with the given username is already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
}

type AuthUseCase struct {
	Users repositories.UserRepository
	cost  int
}

func NewAuthUseCase(users repositories.UserRepository) *AuthUseCase {
	return &AuthUseCase{Users: users, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost.
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// Register stores a new user with a hashed password.
func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns the matching user.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := uc.Users.GetByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
