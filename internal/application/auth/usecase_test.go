package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, taken := r.byEmail[u.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func testJWTConfig() JWTConfig {
	return JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "safetrack-test"}
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "ops@northfield.example",
		Password: "correct horse battery staple",
		Name:     "Ops",
		Role:     entity.RoleSales,
	}
}

func TestRegisterUser_DuplicateEmailRejected(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// A failed email lookup must surface as an error, never read as "email
// available" and proceed to create the account.
func TestRegisterUser_LookupFailurePropagates(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("connection refused")
	uc := NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(context.Background(), registerRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, repo.byEmail, "no account created on a failed lookup")
}

func TestLogin_VerifiesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(context.Background(), registerRequest())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ops@northfield.example",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ops@northfield.example", out.User.Email)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ops@northfield.example",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmailReturnsUserNotFound(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWTConfig())

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@northfield.example",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
