package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"spicery-be/internal/utils"
	"spicery-be/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) CountByRole(ctx context.Context, role Role) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

// --- Tests ---

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokens("testsecret", time.Hour)

	t.Run("Defaults to customer", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)

		repo.On("Create", ctx, mock.MatchedBy(func(u User) bool {
			return strings.HasPrefix(u.ID, utils.PrefixUser+"-") &&
				u.Email == "ayesha@spice.lk" &&
				u.Role == RoleCustomer &&
				CheckPasswordHash("cardamom-7", u.PasswordHash)
		})).Return(nil)

		res, err := svc.Register(ctx, RegisterInput{Name: "Ayesha", Email: " Ayesha@Spice.lk ", Password: "cardamom-7"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, RoleCustomer, res.User.Role)
		repo.AssertExpectations(t)
	})

	t.Run("First owner allowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)
		repo.On("CountByRole", ctx, RoleOwner).Return(0, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		res, err := svc.Register(ctx, RegisterInput{Name: "Owner", Email: "owner@spice.lk", Password: "cardamom-7", Role: RoleOwner})
		require.NoError(t, err)

		claims, err := tokens.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, RoleOwner, claims.Role)
	})

	t.Run("Second owner refused", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)
		repo.On("CountByRole", ctx, RoleOwner).Return(1, nil)

		_, err := svc.Register(ctx, RegisterInput{Name: "Owner", Email: "o2@spice.lk", Password: "cardamom-7", Role: RoleOwner})
		assert.ErrorIs(t, err, ErrOwnerExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewService(new(MockRepository), tokens)

		_, err := svc.Register(ctx, RegisterInput{Email: "x@spice.lk", Password: "short", Role: "admin"})
		var verr *validate.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
		assert.Contains(t, verr.Fields, "password")
		assert.Contains(t, verr.Fields, "role")
	})

	t.Run("Duplicate email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)
		repo.On("Create", ctx, mock.Anything).Return(ErrEmailExists)

		_, err := svc.Register(ctx, RegisterInput{Name: "Ayesha", Email: "ayesha@spice.lk", Password: "cardamom-7"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokens("testsecret", time.Hour)
	hash, err := HashPassword("cardamom-7")
	require.NoError(t, err)
	stored := &User{ID: "USR-1", Email: "ayesha@spice.lk", PasswordHash: hash, Role: RoleCustomer}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)
		repo.On("FindByEmail", ctx, "ayesha@spice.lk").Return(stored, nil)

		res, err := svc.Login(ctx, LoginInput{Email: "ayesha@spice.lk", Password: "cardamom-7"})
		require.NoError(t, err)
		assert.Equal(t, "USR-1", res.User.ID)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)
		repo.On("FindByEmail", ctx, "ayesha@spice.lk").Return(stored, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "ayesha@spice.lk", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)
		repo.On("FindByEmail", ctx, "ghost@spice.lk").Return(nil, ErrUserNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "ghost@spice.lk", Password: "x"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Store error", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)
		repo.On("FindByEmail", ctx, "ayesha@spice.lk").Return(nil, errors.New("db down"))

		_, err := svc.Login(ctx, LoginInput{Email: "ayesha@spice.lk", Password: "x"})
		assert.EqualError(t, err, "db down")
	})
}
