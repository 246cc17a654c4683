package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	infraRepo "github.com/sangkips/optica-api/internal/infrastructure/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/oauth"
	"github.com/sangkips/optica-api/pkg/utils"
	"github.com/sangkips/optica-api/pkg/validation"
)

// IdentityProvider proves a staff e-mail address through an external
// sign-in (Google).
type IdentityProvider interface {
	AuthURL() (string, error)
	Identify(ctx context.Context, code, state string) (*oauth.Identity, error)
}

// AuthService handles authentication-related operations
type AuthService struct {
	tenantRepo repository.TenantRepository
	userRepo   repository.UserRepository
	transactor repository.Transactor
	jwtManager *utils.JWTManager
	identities IdentityProvider
}

// NewAuthService creates a new auth service. identities may be nil, which
// disables external sign-in.
func NewAuthService(
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	transactor repository.Transactor,
	jwtManager *utils.JWTManager,
	identities IdentityProvider,
) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		transactor: transactor,
		jwtManager: jwtManager,
		identities: identities,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	Tenant       *entity.Tenant
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens bound to the user's store
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	out, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	_ = s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now())
	return out, nil
}

var errExternalSignInDisabled = apperror.NewAppError(http.StatusNotFound, "Google sign-in is not enabled")

// ExternalSignInURL returns the consent page of the identity provider
func (s *AuthService) ExternalSignInURL() (string, error) {
	if s.identities == nil {
		return "", errExternalSignInDisabled
	}
	url, err := s.identities.AuthURL()
	if errors.Is(err, oauth.ErrNotConfigured) {
		return "", errExternalSignInDisabled
	}
	return url, err
}

// ExternalLogin completes an external sign-in. There is no sign-up here:
// the proven e-mail must belong to an active user of some store.
func (s *AuthService) ExternalLogin(ctx context.Context, code, state string) (*LoginOutput, error) {
	if s.identities == nil {
		return nil, errExternalSignInDisabled
	}
	identity, err := s.identities.Identify(ctx, code, state)
	switch {
	case errors.Is(err, oauth.ErrNotConfigured):
		return nil, errExternalSignInDisabled
	case errors.Is(err, oauth.ErrInvalidState):
		return nil, apperror.NewBadRequestError("Sign-in expired, please try again")
	case err != nil:
		log.Printf("Warning: external sign-in failed: %v", err)
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.NewAppError(http.StatusUnauthorized, "No active account for this e-mail")
	}

	out, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	_ = s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now())
	return out, nil
}

// RegisterInput opens a new store together with its owner account
type RegisterInput struct {
	StoreName string
	Document  string
	Phone     string
	Name      string
	Email     string
	Password  string
}

// Register creates a tenant and its owner in one transaction
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*LoginOutput, error) {
	v := validation.Violations{}
	validation.Required("store_name", input.StoreName, v)
	validation.Required("name", input.Name, v)
	validation.Required("email", input.Email, v)
	if len(input.Password) < 8 {
		v.Add("password", "must have at least 8 characters")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	tenant := &entity.Tenant{
		Name:     strings.TrimSpace(input.StoreName),
		Document: input.Document,
		Phone:    input.Phone,
	}
	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: hashedPassword,
		Role:     enum.UserRoleOwner,
		Active:   true,
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		slug, err := s.uniqueSlug(txCtx, tenant.Name)
		if err != nil {
			return err
		}
		tenant.Slug = slug
		if err := s.tenantRepo.Create(txCtx, tenant); err != nil {
			return err
		}
		return s.userRepo.Create(infraRepo.WithTenant(txCtx, tenant.ID), user)
	})
	if err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

func (s *AuthService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "loja"
	}
	slug := base
	for attempt := 0; attempt < 5; attempt++ {
		taken, err := s.tenantRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + uuid.NewString()[:4]
	}
	return "", apperror.NewConflictError("Could not allocate a store slug")
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	// the refresh token carries no tenant; the user row decides it
	user, err := s.userRepo.GetByID(infraRepo.WithSkipTenantScope(ctx, true), userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidToken
	}
	return s.issue(ctx, user)
}

// GetCurrentUser returns the signed-in user and their store
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*LoginOutput, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	tenant, err := s.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{User: user, Tenant: tenant}, nil
}

func (s *AuthService) issue(ctx context.Context, user *entity.User) (*LoginOutput, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.TenantID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		Tenant:       tenant,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
