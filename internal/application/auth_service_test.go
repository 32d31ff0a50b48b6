package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
	seq     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, taken := r.byEmail[u.Email]; taken {
		return repository.ErrConflict
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.IsActive = true
	u.CreatedAt = time.Now()
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func newTestAuthService(repo repository.UserRepository) *AuthService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewAuthService(repo, helpers.NewJWTManager("test-secret", time.Hour), logger, nil, "insavente", 4, false)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Email:    "marie@example.com",
		Password: "S3cure!pass",
		Name:     "Marie",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, u.Role)
	assert.NotEqual(t, "S3cure!pass", u.Password)

	logged, token, exp, err := svc.Login(ctx, "marie@example.com", "S3cure!pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleMember, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "marie@example.com", Password: "S3cure!pass", Name: "Marie"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "marie@example.com", Password: "Other!pass1", Name: "Imposter"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "marie@example.com", Password: "S3cure!pass", Name: "Marie"})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "marie@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reads identically to a wrong password.
	_, _, _, err = svc.Login(ctx, "nobody@example.com", "S3cure!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "marie@example.com", Password: "S3cure!pass", Name: "Marie"})
	require.NoError(t, err)

	stored := repo.byID[u.ID]
	stored.IsActive = false

	_, _, _, err = svc.Login(ctx, "marie@example.com", "S3cure!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "marie@example.com", Password: "S3cure!pass", Name: "Marie"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, "not-the-password", "N3w!password")
	require.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(ctx, u.ID, "S3cure!pass", "N3w!password")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "marie@example.com", "S3cure!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = svc.Login(ctx, "marie@example.com", "N3w!password")
	assert.NoError(t, err)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "marie@example.com", Password: "S3cure!pass", Name: "Marie", Phone: "+33612345678"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: "Marie C."})
	require.NoError(t, err)
	assert.Equal(t, "Marie C.", updated.Name)
	assert.Equal(t, "+33612345678", updated.Phone)
}
