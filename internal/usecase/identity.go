package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/domain/repository"
	pkgAuth "github.com/gebeyahq/marketadmin/internal/pkg/auth"
)

// Gate is the authorization check every state-mutating operation runs at its
// entry point.
type Gate interface {
	Require(identity *model.Identity, roles ...model.Role) error
}

// RoleGate implements Gate over the resolved caller role.
type RoleGate struct{}

// NewRoleGate constructs RoleGate.
func NewRoleGate() *RoleGate {
	return &RoleGate{}
}

// Require checks that the caller is authenticated and carries one of the
// given roles. A super-admin passes every admin check.
func (RoleGate) Require(identity *model.Identity, roles ...model.Role) error {
	if identity == nil {
		return domainErrors.ErrUnauthorized
	}
	for _, role := range roles {
		if identity.Role == role {
			return nil
		}
		if role == model.RoleAdmin && identity.Role == model.RoleSuperAdmin {
			return nil
		}
	}
	return domainErrors.ErrForbidden
}

// IdentityUseCase handles console account login and identity resolution.
type IdentityUseCase struct {
	admins repository.AdminRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewIdentityUseCase constructs IdentityUseCase.
func NewIdentityUseCase(admins repository.AdminRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *IdentityUseCase {
	return &IdentityUseCase{admins: admins, hasher: hasher, tokens: strategy}
}

// Login verifies credentials and returns an access token.
func (u *IdentityUseCase) Login(ctx context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}

	admin, err := u.admins.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := u.hasher.Compare(admin.PasswordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}

	return u.tokens.IssueToken(admin.ID)
}

// Resolve validates a token and loads the caller identity behind it.
func (u *IdentityUseCase) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	adminID, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrUnauthorized
	}

	admin, err := u.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}

	return &model.Identity{AdminID: admin.ID, Role: admin.Role}, nil
}

// EnsureSuperAdmin creates the bootstrap super-admin account when absent.
func (u *IdentityUseCase) EnsureSuperAdmin(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return nil
	}

	if _, err := u.admins.GetByLogin(ctx, login); err == nil {
		return nil
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}

	if _, err := u.admins.Create(ctx, login, hash, model.RoleSuperAdmin); err != nil && !errors.Is(err, domainErrors.ErrAlreadyExists) {
		return err
	}
	return nil
}
