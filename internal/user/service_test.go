package user

import (
	"context"
	"testing"

	"smartcart-be/internal/auth"
	"smartcart-be/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) (*User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockRepository) ListByRole(ctx context.Context, role Role) ([]*User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, status Status) (*User, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, params UpdateParams) (*User, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

// MockMailer records sends without talking to SMTP.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

func newTestService(repo *MockRepository, mailer *MockMailer) Service {
	return NewService(repo, mailer, metrics.NewStore())
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		repo := new(MockRepository)
		mailer := new(MockMailer)
		svc := newTestService(repo, mailer)

		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*User)
				assert.Equal(t, RoleCustomer, u.Role)
				assert.Equal(t, StatusActive, u.Status)
				assert.NotEqual(t, "secret123", u.Password)
				assert.Contains(t, u.Avatar, "dicebear")
				u.ID = 7
			}).
			Return(&User{ID: 7, Name: "Jane", Email: "jane@example.com", Role: RoleCustomer}, nil)
		mailer.On("Send", mock.Anything, "jane@example.com", mock.Anything, mock.Anything).
			Return(nil).Maybe()

		token, u, err := svc.Register(ctx, "Jane", "jane@example.com", "secret123")
		require.NoError(t, err)

		assert.NotEmpty(t, token)
		assert.Equal(t, int64(7), u.ID)

		claims, err := auth.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "jane@example.com", claims.Email)
		assert.Equal(t, "customer", claims.Role)

		repo.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockMailer))

		_, _, err := svc.Register(ctx, "", "jane@example.com", "secret123")
		assert.ErrorIs(t, err, ErrMissingFields)

		_, _, err = svc.Register(ctx, "Jane", "", "secret123")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		_, _, err := svc.Register(ctx, "Jane", "jane@example.com", "12345")
		assert.ErrorIs(t, err, ErrWeakPassword)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		repo.On("Create", ctx, mock.Anything).Return(nil, ErrEmailExists)

		_, _, err := svc.Register(ctx, "Jane", "jane@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		hashed, err := auth.HashPassword("secret123")
		require.NoError(t, err)

		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		repo.On("FindByEmail", ctx, "jane@example.com").
			Return(&User{ID: 7, Email: "jane@example.com", Password: hashed, Role: RoleCustomer}, nil)

		token, u, err := svc.Login(ctx, "jane@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(7), u.ID)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, ErrUserNotFound)

		_, _, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		hashed, err := auth.HashPassword("secret123")
		require.NoError(t, err)

		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		repo.On("FindByEmail", ctx, "jane@example.com").
			Return(&User{ID: 7, Email: "jane@example.com", Password: hashed}, nil)

		_, _, err = svc.Login(ctx, "jane@example.com", "wrong")
		// Indistinguishable from an unknown email.
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidEnum", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		_, err := svc.UpdateStatus(ctx, 7, "Suspended")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Blocked", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		repo.On("UpdateStatus", ctx, int64(7), StatusBlocked).
			Return(&User{ID: 7, Status: StatusBlocked}, nil)

		u, err := svc.UpdateStatus(ctx, 7, "Blocked")
		require.NoError(t, err)
		assert.Equal(t, StatusBlocked, u.Status)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("RehashesPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		plain := "newsecret"
		repo.On("Update", ctx, int64(7), mock.MatchedBy(func(params UpdateParams) bool {
			return params.Password != nil &&
				*params.Password != plain &&
				auth.CheckPasswordHash(plain, *params.Password)
		})).Return(&User{ID: 7}, nil)

		_, err := svc.Update(ctx, 7, UpdateParams{Password: &plain})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		short := "123"
		_, err := svc.Update(ctx, 7, UpdateParams{Password: &short})
		assert.ErrorIs(t, err, ErrWeakPassword)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}
