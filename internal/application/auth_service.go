package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
	"github.com/Ping-Win-Info/insavente/pkg/mailer"
)

// AuthService covers registration, login, and the authenticated user's own
// account: profile reads/updates and password changes.
type AuthService struct {
	Repo       repository.UserRepository
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	Pub        *helpers.RabbitPublisher
	AppName    string
	BcryptCost int
	MailSend   bool
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, appName string, bcryptCost int, mailSend bool) *AuthService {
	return &AuthService{
		Repo:       repo,
		JWT:        jwt,
		Logger:     logger,
		Pub:        pub,
		AppName:    appName,
		BcryptCost: bcryptCost,
		MailSend:   mailSend,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// Register creates a member identity. Duplicate emails surface as
// ErrEmailTaken. On success a welcome email job is enqueued best-effort.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:    in.Email,
		Password: hash,
		Name:     in.Name,
		Phone:    in.Phone,
		Role:     entity.RoleMember,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.Pub != nil && s.MailSend {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Name": u.Name, "AppName": s.AppName},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}

	return u, nil
}

// Authenticate validates email/password and returns the user without issuing
// a token. Unknown email and wrong password are indistinguishable to callers.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a signed bearer token carrying id and role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.JWT.Generate(u.ID, u.Role)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name  string
	Phone string
}

// UpdateProfile applies the non-empty fields to the caller's own record.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password before rehashing the new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return ErrNotFound
	}
	if !helpers.CheckPassword(u.Password, current) {
		return ErrWrongPassword
	}
	hash, err := helpers.HashPassword(next, s.BcryptCost)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.Repo.Update(ctx, u)
}
