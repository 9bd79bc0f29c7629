package user

import (
	"context"
	"fmt"

	"smartcart-be/internal/auth"
	"smartcart-be/internal/logger"
	"smartcart-be/internal/mail"
	"smartcart-be/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	List(ctx context.Context) ([]*User, error)
	ListCustomers(ctx context.Context) ([]*User, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*User, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*User, error)
}

type service struct {
	repo   Repository
	mailer mail.Mailer
	stats  *metrics.Store
}

func NewService(repo Repository, mailer mail.Mailer, stats *metrics.Store) Service {
	return &service{repo: repo, mailer: mailer, stats: stats}
}

func (s *service) Register(ctx context.Context, name, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	if name == "" || email == "" || password == "" {
		return "", nil, ErrMissingFields
	}
	if len(password) < 6 {
		return "", nil, ErrWeakPassword
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u := &User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     RoleCustomer,
		Status:   StatusActive,
		Avatar:   fmt.Sprintf("https://api.dicebear.com/9.x/adventurer/svg?seed=%s", name),
	}

	u, err = s.repo.Create(ctx, u)
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}

	token, err := auth.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate token", zap.Int64("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	// Best effort, never blocks registration.
	subject, body := mail.WelcomeEmail(u.Name)
	mail.SendAsync(s.mailer, u.Email, subject, body)

	s.stats.UsersRegistered.Inc()
	log.Info("user registered",
		zap.Int64("user_id", u.ID),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Debug("login: email not found", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(password, u.Password) {
		log.Debug("login: password mismatch", zap.Int64("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) ListCustomers(ctx context.Context) ([]*User, error) {
	return s.repo.ListByRole(ctx, RoleCustomer)
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status string) (*User, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, Status(status))
}

func (s *service) Update(ctx context.Context, id int64, params UpdateParams) (*User, error) {
	// Passwords are re-hashed here; they never reach storage in plaintext.
	if params.Password != nil {
		if len(*params.Password) < 6 {
			return nil, ErrWeakPassword
		}
		hashed, err := auth.HashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		params.Password = &hashed
	}

	return s.repo.Update(ctx, id, params)
}
