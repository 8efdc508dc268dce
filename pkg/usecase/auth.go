package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// AuthUseCaseInterface resolves the caller of a manager-only operation
type AuthUseCaseInterface interface {
	// AuthorizeManager returns the user owning the session token.
	// ErrUnauthenticated when the token does not name an active session of an
	// unblocked user, ErrForbidden when the user is not a manager.
	AuthorizeManager(ctx context.Context, token string) (*model.User, error)

	IsNoAuthn() bool
}

// AuthUseCase checks bearer tokens against the sessions of the primary store.
// Sessions are issued elsewhere; this only looks them up.
type AuthUseCase struct {
	repo              interfaces.Repository
	managerUserTypeID int64
	now               func() time.Time
	cache             *authCache
}

var _ AuthUseCaseInterface = &AuthUseCase{}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithAuthClock replaces time.Now for session expiry checks
func WithAuthClock(now func() time.Time) AuthOption {
	return func(uc *AuthUseCase) {
		uc.now = now
	}
}

// WithAuthCacheTTL changes how long a resolved session is reused; zero disables caching
func WithAuthCacheTTL(ttl time.Duration) AuthOption {
	return func(uc *AuthUseCase) {
		uc.cache.ttl = ttl
	}
}

func NewAuthUseCase(repo interfaces.Repository, managerUserTypeID int64, options ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		repo:              repo,
		managerUserTypeID: managerUserTypeID,
		now:               time.Now,
		cache:             newAuthCache(),
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

func (uc *AuthUseCase) AuthorizeManager(ctx context.Context, token string) (*model.User, error) {
	user, err := uc.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if user.UserTypeID != uc.managerUserTypeID {
		return nil, goerr.Wrap(ErrForbidden, "user is not a manager",
			goerr.V(UserIDKey, user.ID),
			goerr.V("user_type_id", user.UserTypeID))
	}
	return user, nil
}

func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

func (uc *AuthUseCase) authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, goerr.Wrap(ErrUnauthenticated, "no session token")
	}

	now := uc.now()
	if user, ok := uc.cache.get(token, now); ok {
		return user, nil
	}

	session, err := uc.repo.Session().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUnauthenticated, "unknown session token")
		}
		return nil, goerr.Wrap(err, "failed to get session")
	}

	if !session.IsActive(now) {
		return nil, goerr.Wrap(ErrUnauthenticated, "session is not active",
			goerr.V("session_id", session.ID),
			goerr.V("ends_at", session.EndsAt))
	}

	user, err := uc.repo.User().Get(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUnauthenticated, "session user not found", goerr.V(UserIDKey, session.UserID))
		}
		return nil, goerr.Wrap(err, "failed to get session user", goerr.V(UserIDKey, session.UserID))
	}

	if user.Blocked {
		logging.From(ctx).Warn("blocked user presented a session", "user_id", user.ID)
		return nil, goerr.Wrap(ErrUnauthenticated, "user is blocked", goerr.V(UserIDKey, user.ID))
	}

	uc.cache.set(token, user, session.EndsAt, now)
	return user, nil
}

// NoAuthnUseCase treats every request as coming from one manager (for development/testing)
type NoAuthnUseCase struct {
	repo              interfaces.Repository
	userID            int64
	managerUserTypeID int64
}

var _ AuthUseCaseInterface = &NoAuthnUseCase{}

// NewNoAuthnUseCase creates a NoAuthnUseCase acting as userID
func NewNoAuthnUseCase(repo interfaces.Repository, userID, managerUserTypeID int64) *NoAuthnUseCase {
	return &NoAuthnUseCase{
		repo:              repo,
		userID:            userID,
		managerUserTypeID: managerUserTypeID,
	}
}

// AuthorizeManager ignores token and returns the configured user. When the
// user does not exist in the primary store a placeholder manager is returned.
func (uc *NoAuthnUseCase) AuthorizeManager(ctx context.Context, _ string) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, uc.userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to get no-auth user", goerr.V(UserIDKey, uc.userID))
	}
	return &model.User{ID: uc.userID, UserTypeID: uc.managerUserTypeID}, nil
}

func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
