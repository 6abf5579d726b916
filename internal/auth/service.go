package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/infrastructure/mysql"
)

const (
	msgUserExists         = "username already exists"
	msgInvalidCredentials = "Please check your Login credentials"
)

type service struct {
	repo       Repository
	tokens     *TokenIssuer
	welcomer   Welcomer
	logger     *zap.Logger
	bcryptCost int
}

func NewService(repo Repository, tokens *TokenIssuer, welcomer Welcomer, logger *zap.Logger, bcryptCost int) Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{
		repo:       repo,
		tokens:     tokens,
		welcomer:   welcomer,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *service) SignUp(ctx context.Context, req SignUpRequest) (string, error) {
	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperrors.NewConflictError(msgUserExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := domain.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Country:      req.Country,
	}

	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return "", apperrors.NewConflictError(msgUserExists)
		}
		return "", err
	}
	user.ID = id

	s.logger.Info("user registered", zap.String("username", user.Username), zap.String("role", user.Role))

	if s.welcomer != nil {
		s.welcomer.UserRegistered(ctx, user)
	}

	return fmt.Sprintf("User with username %s is created.", user.Username), nil
}

func (s *service) SignIn(ctx context.Context, req SignInRequest) (*TokenResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Warn("sign in rejected", zap.String("username", req.Username))
		return nil, apperrors.NewUnauthorizedError(msgInvalidCredentials)
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &TokenResponse{AccessToken: token}, nil
}
