package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vidora-app/vidora/internal/auth/domain"
	"github.com/vidora-app/vidora/internal/auth/store"
	"github.com/vidora-app/vidora/pkg/cryptox"
	"github.com/vidora-app/vidora/pkg/idx"
	"github.com/vidora-app/vidora/pkg/jwtx"
	"github.com/vidora-app/vidora/pkg/slogx"
)

// AuthService owns the credential flows and the refresh rotation protocol.
// The single-slot session lives on the user record: login overwrites it,
// refresh rotates it, logout clears it.
type AuthService struct {
	Store  store.Store
	Tokens *jwtx.Issuer
}

// RegisterInput carries the already-uploaded asset URLs; the HTTP layer is
// responsible for pushing the files to the object store first.
type RegisterInput struct {
	FullName      string
	Email         string
	Username      string
	Password      string
	AvatarURL     string
	CoverImageURL string
}

// Register validates, hashes, and persists a new identity. Username and
// email are normalized to lowercase before the uniqueness check so the
// check and the stored value agree.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.PublicUser, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"fullname", in.FullName},
		{"email", in.Email},
		{"username", in.Username},
		{"password", in.Password},
		{"avatar", in.AvatarURL},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.PublicUser{}, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	if !strings.Contains(in.Email, "@") {
		return domain.PublicUser{}, fmt.Errorf("%w: malformed email", ErrValidation)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		Avatar:       in.AvatarURL,
		CoverImage:   in.CoverImageURL,
		PasswordHash: hash,
	}

	var created domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Pre-check both unique fields so the caller gets a conflict
		// rather than a bare constraint error; the unique indexes remain
		// the backstop for concurrent registrations.
		if _, err := tx.Users().GetUserByUsername(ctx, user.Username); err == nil {
			return ErrDuplicate
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := tx.Users().GetUserByEmail(ctx, user.Email); err == nil {
			return ErrDuplicate
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicate
			}
			return err
		}

		created, err = tx.Users().GetUserByID(ctx, user.ID)
		return err
	})
	if err != nil {
		return domain.PublicUser{}, err
	}

	slogx.FromContext(ctx).Info("user registered",
		slog.String("user_id", created.ID),
		slog.String("username", created.Username),
	)
	return created.Public(), nil
}

// LoginInput accepts either username or email; username wins when both are set.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// Login verifies the password and opens the single session slot. Any prior
// session for the identity is silently invalidated by the overwrite.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (domain.PublicUser, domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" && email == "" {
		return domain.PublicUser{}, domain.TokenPair{}, fmt.Errorf("%w: username or email required", ErrValidation)
	}
	if in.Password == "" {
		return domain.PublicUser{}, domain.TokenPair{}, fmt.Errorf("%w: password required", ErrValidation)
	}

	var (
		user domain.User
		err  error
	)
	if username != "" {
		user, err = s.Store.Users().GetUserByUsername(ctx, username)
	} else {
		user, err = s.Store.Users().GetUserByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.PublicUser{}, domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(in.Password, user.PasswordHash); err != nil {
		log.Info("login rejected", slog.String("user_id", user.ID))
		return domain.PublicUser{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, err
	}

	log.Info("login succeeded", slog.String("user_id", user.ID))
	return user.Public(), pair, nil
}

// Refresh runs the rotation protocol: verify signature and expiry, resolve
// the identity, compare against the stored slot, then rotate. All three
// checks collapse to ErrInvalidRefresh so a caller can't tell which one
// rejected them. Presenting an already-rotated token always lands in the
// comparison failure — that is the reuse-detection guarantee.
func (s *AuthService) Refresh(ctx context.Context, incoming string) (domain.TokenPair, error) {
	claims, err := s.Tokens.VerifyRefresh(incoming)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		if user.RefreshToken == nil ||
			subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(incoming)) != 1 {
			slogx.FromContext(ctx).Warn("refresh token reuse or mismatch",
				slog.String("user_id", user.ID))
			return ErrInvalidRefresh
		}

		now := time.Now().UTC()
		access, err := s.Tokens.IssueAccess(user.ID, user.Email, user.Username, user.FullName, now)
		if err != nil {
			return fmt.Errorf("sign access token: %w", err)
		}
		refresh, err := s.Tokens.IssueRefresh(user.ID, now)
		if err != nil {
			return fmt.Errorf("sign refresh token: %w", err)
		}

		if err := tx.Users().UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
			return err
		}

		pair = domain.TokenPair{AccessToken: access, RefreshToken: refresh}
		return nil
	})
	if err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// Logout clears the session slot. Idempotent: logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	err := s.Store.Users().UpdateRefreshToken(ctx, userID, nil)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ChangePassword verifies the old password before storing a new hash. The
// current session slot is intentionally left untouched.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password required", ErrValidation)
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := cryptox.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}

// issuePair mints both tokens and persists the refresh half as the new
// session slot.
func (s *AuthService) issuePair(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.Tokens.IssueAccess(user.ID, user.Email, user.Username, user.FullName, now)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.Tokens.IssueRefresh(user.ID, now)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.Store.Users().UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
