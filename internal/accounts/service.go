// Package accounts covers registration, login, admin login and the user
// profile. Admin identity is configured through the environment and never
// touches the user collection.
package accounts

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/internal/auth"
	"github.com/Sanushoffl/thelivostore/internal/images"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

const minPasswordLength = 8

// UserStore is the slice of persistence the account service needs.
type UserStore interface {
	InsertUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error
}

type Service struct {
	store         UserStore
	tokens        *auth.TokenManager
	uploader      images.Uploader // nil disables avatar uploads
	adminEmail    string
	adminPassword string
	logger        *logrus.Logger
}

func NewService(store UserStore, tokens *auth.TokenManager, uploader images.Uploader, adminEmail, adminPassword string, logger *logrus.Logger) *Service {
	return &Service{
		store:         store,
		tokens:        tokens,
		uploader:      uploader,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.ToLower(email))
}

// Register creates a user account and returns a user-scoped token.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" {
		return "", apperr.New(apperr.Validation, "name is required")
	}
	if !validEmail(email) {
		return "", apperr.New(apperr.Validation, "please enter a valid email")
	}
	if len(password) < minPasswordLength {
		return "", apperr.New(apperr.Validation, "please enter a strong password")
	}

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return "", apperr.New(apperr.Duplicate, "user already exists")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		CartData: models.Cart{},
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return "", err
	}

	s.logger.WithField("user_id", user.ID.Hex()).Info("User registered")
	return s.tokens.IssueUser(user.ID.Hex())
}

// Login checks credentials and returns a user-scoped token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if apperr.IsKind(err, apperr.NotFound) {
		return "", apperr.New(apperr.NotFound, "user doesn't exist")
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", apperr.New(apperr.Auth, "invalid credentials")
	}

	return s.tokens.IssueUser(user.ID.Hex())
}

// AdminLogin checks the configured admin credentials and returns an
// admin-scoped token.
func (s *Service) AdminLogin(email, password string) (string, error) {
	if email != s.adminEmail || password != s.adminPassword {
		return "", apperr.New(apperr.Auth, "invalid credentials")
	}
	return s.tokens.IssueAdmin(email)
}

// GetProfile returns the public view of the account.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.ProfileOf(user), nil
}

// UpdateProfileInput carries the optional profile changes. Zero-value fields
// are left untouched; Avatar, when set, replaces the profile image.
type UpdateProfileInput struct {
	Name       string
	Email      string
	Password   string
	Avatar     io.Reader
	AvatarName string
}

// UpdateProfile applies a partial update. A field equal to the stored value
// does not count as a change, so resubmitting the current profile fails with
// NoChanges rather than claiming an update happened.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.Profile, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})

	if in.Name != "" && in.Name != user.Name {
		fields["name"] = in.Name
	}
	if in.Email != "" {
		if !validEmail(in.Email) {
			return nil, apperr.New(apperr.Validation, "please enter a valid email")
		}
		if in.Email != user.Email {
			fields["email"] = in.Email
		}
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return nil, apperr.New(apperr.Validation, "please enter a strong password")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
			}
			fields["password"] = string(hash)
		}
	}
	if in.Avatar != nil {
		if s.uploader == nil {
			return nil, apperr.New(apperr.Validation, "profile image uploads are not enabled")
		}
		normalized, err := images.Normalize(in.Avatar)
		if err != nil {
			return nil, err
		}
		url, err := s.uploader.Upload(ctx, in.AvatarName, normalized)
		if err != nil {
			return nil, err
		}
		fields["profileImage"] = url
	}

	if len(fields) == 0 {
		return nil, apperr.New(apperr.NoChanges, "no changes provided")
	}

	if err := s.store.UpdateUserFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"fields":  len(fields),
	}).Info("Profile updated")
	return s.GetProfile(ctx, userID)
}
