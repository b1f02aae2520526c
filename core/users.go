package core

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

type UserService struct {
	store    Store
	hasher   Hasher
	tokens   TokenIssuer
	notifier Notifier[User]
}

func NewUserService(log *slog.Logger, store Store, hasher Hasher, tokens TokenIssuer) *UserService {
	s := &UserService{store: store, hasher: hasher, tokens: tokens}
	s.notifier.Subscribe(LogObserver[User](log))
	return s
}

func (s *UserService) Subscribe(o Observer[User]) {
	s.notifier.Subscribe(o)
}

func (s *UserService) Create(ctx context.Context, name, email, password string) (User, error) {
	if emptyTrimmed(name) || !ValidEmail(email) || !ValidPassword(password) {
		return User{}, ErrBadArguments
	}

	// fast-path check; the unique constraint in the store is the authoritative guard
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return User{}, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, err
	}

	u, err := s.store.CreateUser(ctx, User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return User{}, err
	}

	s.notifier.Publish("User Created", u)
	return u, nil
}

// Login authenticates by email and password. A missing user and a wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (UserProfile, error) {
	if id <= 0 {
		return UserProfile{}, ErrBadArguments
	}
	return s.store.GetUserProfile(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Avatar   *string
}

func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (User, error) {
	if id <= 0 {
		return User{}, ErrBadArguments
	}
	if patch.Name == nil && patch.Email == nil && patch.Password == nil && patch.Avatar == nil {
		return User{}, ErrBadArguments
	}
	if patch.Name != nil && emptyTrimmed(*patch.Name) {
		return User{}, ErrBadArguments
	}
	if patch.Email != nil && !ValidEmail(*patch.Email) {
		return User{}, ErrBadArguments
	}
	if patch.Password != nil && !ValidPassword(*patch.Password) {
		return User{}, ErrBadArguments
	}

	cur, err := s.store.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}

	if patch.Email != nil {
		// uniqueness excluding self
		if other, err := s.store.GetUserByEmail(ctx, *patch.Email); err == nil {
			if other.ID != id {
				return User{}, ErrUserExists
			}
		} else if !errors.Is(err, ErrUserNotFound) {
			return User{}, err
		}
		cur.Email = *patch.Email
	}
	if patch.Name != nil {
		cur.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return User{}, err
		}
		cur.PasswordHash = hash
	}
	if patch.Avatar != nil {
		cur.Avatar = patch.Avatar
	}

	u, err := s.store.UpdateUser(ctx, cur)
	if err != nil {
		return User{}, err
	}

	s.notifier.Publish("User Updated", u)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrBadArguments
	}

	cur, err := s.store.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.notifier.Publish("User Deleted", cur)
	return nil
}
