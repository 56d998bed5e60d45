package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vidora-app/vidora/internal/auth/domain"
	"github.com/vidora-app/vidora/internal/auth/store"
)

// UserService serves the account surface behind the auth gate.
type UserService struct {
	Store store.Store
}

// GetUserByID fetches the canonical record.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNotFound
	}
	return user, err
}

// UpdateAccountDetails changes fullname and/or email, keeping the other
// field at its current value when omitted.
func (s *UserService) UpdateAccountDetails(ctx context.Context, userID, fullName, email string) (domain.PublicUser, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" && email == "" {
		return domain.PublicUser{}, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if email != "" && !strings.Contains(email, "@") {
		return domain.PublicUser{}, fmt.Errorf("%w: malformed email", ErrValidation)
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if fullName == "" {
			fullName = current.FullName
		}
		if email == "" {
			email = current.Email
		}

		if email != current.Email {
			if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
				return ErrDuplicate
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		if err := tx.Users().UpdateAccountDetails(ctx, userID, fullName, email); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicate
			}
			return err
		}

		updated, err = tx.Users().GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		return domain.PublicUser{}, err
	}
	return updated.Public(), nil
}

// UpdateAvatar stores the new avatar URL returned by the object store.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (domain.PublicUser, error) {
	if strings.TrimSpace(avatarURL) == "" {
		return domain.PublicUser{}, fmt.Errorf("%w: avatar upload failed", ErrValidation)
	}
	return s.updateImage(ctx, userID, func() error {
		return s.Store.Users().UpdateAvatar(ctx, userID, avatarURL)
	})
}

// UpdateCoverImage stores the new cover image URL.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID, coverURL string) (domain.PublicUser, error) {
	if strings.TrimSpace(coverURL) == "" {
		return domain.PublicUser{}, fmt.Errorf("%w: cover image upload failed", ErrValidation)
	}
	return s.updateImage(ctx, userID, func() error {
		return s.Store.Users().UpdateCoverImage(ctx, userID, coverURL)
	})
}

func (s *UserService) updateImage(ctx context.Context, userID string, apply func() error) (domain.PublicUser, error) {
	if err := apply(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrNotFound
		}
		return domain.PublicUser{}, err
	}
	updated, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return updated.Public(), nil
}
