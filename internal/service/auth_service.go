package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	config "github.com/lyrahq/lyra-backend/configs"
	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/repository"
	"github.com/lyrahq/lyra-backend/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (int64, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, errors.New("username and password are required")
	}

	_, exists, err := s.u.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if exists {
		err = errors.New("username already registered")
		slog.Info(err.Error())
		return 0, err
	}

	if email != "" {
		_, exists, err = s.u.GetByEmail(ctx, email)
		if err != nil {
			return 0, err
		}
		if exists {
			err = errors.New("email already registered")
			slog.Info(err.Error())
			return 0, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	userID, err := s.u.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return userID, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, exists, err := s.u.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.cfg.SecretKey, fmt.Sprintf("%d", user.ID), 30*time.Minute)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return token, nil
}
