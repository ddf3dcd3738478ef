package user

import (
	"context"
	"errors"
	"strings"

	"spicery-be/internal/logger"
	"spicery-be/internal/utils"
	"spicery-be/internal/validate"

	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
}

type service struct {
	repo   Repository
	tokens *Tokens
}

func NewService(repo Repository, tokens *Tokens) Service {
	return &service{repo: repo, tokens: tokens}
}

// Register creates an account. Emails are stored lower-cased. Only the
// first owner may register as owner; later owners must be promoted in the
// store directly.
func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	u := User{
		ID:        utils.NewID(utils.PrefixUser),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Role:      input.Role,
		CreatedAt: utils.NowMillis(),
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}

	errs := &validate.Error{}
	if u.Name == "" {
		errs.Add("name", "name is required")
	}
	if u.Email == "" {
		errs.Add("email", "email is required")
	}
	if len(input.Password) < minPasswordLength {
		errs.Add("password", "password must be at least 8 characters")
	}
	if !u.Role.Valid() {
		errs.Add("role", "role must be one of owner, customer, supplier")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if u.Role == RoleOwner {
		owners, err := s.repo.CountByRole(ctx, RoleOwner)
		if err != nil {
			return nil, err
		}
		if owners > 0 {
			return nil, ErrOwnerExists
		}
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}
	u.PasswordHash = hashed

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, input.Email)
	if errors.Is(err, ErrUserNotFound) {
		log.Debug("email not found")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(input.Password, u.PasswordHash) {
		log.Debug("password not match", zap.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(*u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *u}, nil
}
