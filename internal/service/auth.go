package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/riaz37/job-finder-sub001/internal/db"
	"github.com/riaz37/job-finder-sub001/internal/logging"
	"github.com/riaz37/job-finder-sub001/internal/model"
	"github.com/riaz37/job-finder-sub001/internal/session"
	"github.com/riaz37/job-finder-sub001/internal/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrMisconfigured    = errors.New("auth config invalid")
)

// dummyHash absorbs a bcrypt comparison when the email is unknown so the
// two authentication failures stay indistinguishable.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// UserStore is the identity collaborator. The relational schema behind it
// is not this package's concern.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	UpdateUserEmail(ctx context.Context, userID, email string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
	DeleteUser(ctx context.Context, userID string) error
}

// AuthService couples the token codec with the session store: a request
// is authenticated only when the signed token verifies AND a matching
// live session exists.
type AuthService struct {
	users    UserStore
	sessions *session.Store
	codec    *token.Codec
	activity *logging.ActivityLog
	log      *slog.Logger
}

func NewAuthService(users UserStore, sessions *session.Store, codec *token.Codec, activity *logging.ActivityLog, log *slog.Logger) (*AuthService, error) {
	if codec == nil {
		return nil, fmt.Errorf("%w: token codec is required", ErrMisconfigured)
	}
	if sessions == nil {
		return nil, fmt.Errorf("%w: session store is required", ErrMisconfigured)
	}
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		codec:    codec,
		activity: activity,
		log:      log,
	}, nil
}

// Register persists a new identity with a bcrypt-hashed password and
// returns the public record. A duplicate email yields ErrConflict.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.PublicUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, email, string(hash))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	s.activity.Record(logging.Entry{UserID: user.ID, Action: "register"})
	pub := user.Public()
	return &pub, nil
}

// Authenticate verifies the email/password pair. Unknown email and wrong
// password both return (nil, nil); the caller cannot tell them apart.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			// Burn a comparison anyway to level response timing.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, nil
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	return user, nil
}

// CreateSession issues a token and writes the matching session record.
// When the session write fails the token is never handed out: the caller
// sees only the error.
func (s *AuthService) CreateSession(ctx context.Context, user *model.User) (string, error) {
	tok, err := s.codec.Issue(user.ID, 0)
	if err != nil {
		return "", err
	}

	rec := session.Record{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: time.Now().UTC(),
		Token:     tok,
	}
	if err := s.sessions.Set(ctx, user.ID, rec, s.codec.TTL()); err != nil {
		return "", fmt.Errorf("%w: session write failed: %v", ErrStoreUnavailable, err)
	}

	s.activity.Record(logging.Entry{UserID: user.ID, Action: "login"})
	return tok, nil
}

// CurrentUser resolves a bearer token to its identity. All three checks
// are mandatory and ordered: token signature, live session, identity row.
// The session is consulted before the token's claims are trusted.
func (s *AuthService) CurrentUser(ctx context.Context, tokenStr string) (*model.User, error) {
	userID := s.codec.Verify(tokenStr)
	if userID == "" {
		return nil, ErrUnauthorized
	}

	rec, err := s.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		// An unreachable store is an outage, not bad credentials.
		s.log.Error("session lookup failed during authentication", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	// A later login or refresh overwrote the session; earlier tokens are
	// superseded even though they still verify.
	if rec.Token != tokenStr {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// Invalidate deletes the session. The token keeps verifying until its
// natural expiry but no longer resolves to an identity.
func (s *AuthService) Invalidate(ctx context.Context, userID string) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.activity.Record(logging.Entry{UserID: userID, Action: "logout"})
	return nil
}

// Refresh replaces the session's token and resets its TTL, preserving
// email and created_at. Without a live session it returns ErrUnauthorized
// so the caller maps it to 401, not a server error.
func (s *AuthService) Refresh(ctx context.Context, userID string) (string, error) {
	rec, err := s.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	tok, err := s.codec.Issue(userID, 0)
	if err != nil {
		return "", err
	}

	rec.Token = tok
	if err := s.sessions.Set(ctx, userID, *rec, s.codec.TTL()); err != nil {
		return "", fmt.Errorf("%w: session write failed: %v", ErrStoreUnavailable, err)
	}
	return tok, nil
}

// ChangePassword re-authenticates with the current password, stores the
// new hash, and invalidates the session to force a fresh login.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrUnauthorized
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password incorrect", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return err
	}

	if err := s.Invalidate(ctx, userID); err != nil {
		s.log.Error("session invalidation failed after password change", "user_id", userID, "error", err)
		return err
	}
	s.activity.Record(logging.Entry{UserID: userID, Action: "password_change"})
	return nil
}

// UpdateEmail changes the identity's email and rewrites the session
// record in place, keeping its remaining TTL.
func (s *AuthService) UpdateEmail(ctx context.Context, userID, email string) (*model.PublicUser, error) {
	user, err := s.users.UpdateUserEmail(ctx, userID, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	rec, err := s.sessions.Get(ctx, userID)
	if err == nil {
		rec.Email = email
		if err := s.sessions.Update(ctx, userID, *rec, s.codec.TTL()); err != nil {
			s.log.Warn("session email update failed", "user_id", userID, "error", err)
		}
	}

	pub := user.Public()
	return &pub, nil
}

// DeleteAccount removes the identity and its session.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Invalidate(ctx, userID); err != nil {
		return err
	}
	s.activity.Record(logging.Entry{UserID: userID, Action: "account_deleted"})
	return nil
}
