package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/cache"
	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService struct {
	Users   *repo.UserRepo
	Carts   *repo.CartStore
	Orders  *repo.OrderStore
	Reviews *repo.ReviewRepo
	Hasher  PasswordHasher
	Tokens  TokenIssuer
	Events  Publisher
	Cache   ProductCache
}

func validUsername(s string) bool {
	n := len([]rune(s))
	return n >= 6 && n <= 20
}

// validPassword requires six characters, one digit and one upper-case letter.
func validPassword(s string) bool {
	if len([]rune(s)) < 6 {
		return false
	}
	var digit, upper bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && upper
}

func (s *UserService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "user.register")

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	switch {
	case username == "" || email == "" || req.Password == "":
		return nil, fmt.Errorf("username, email and password are required: %w", ErrValidation)
	case !validUsername(username):
		return nil, fmt.Errorf("username must be 6 to 20 characters: %w", ErrValidation)
	case !emailRe.MatchString(email):
		return nil, fmt.Errorf("invalid email format: %w", ErrValidation)
	case !validPassword(req.Password):
		return nil, fmt.Errorf("password needs 6 characters with a digit and an upper-case letter: %w", ErrValidation)
	}

	if taken, err := s.Users.Exists(ctx, "email = ? OR username = ?", email, username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email or username already in use: %w", ErrConflict)
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Avatar:       req.Avatar,
		Role:         models.RoleUser,
	}
	cart, err := s.Users.CreateWithCart(ctx, user)
	if err != nil {
		return nil, conflict(err, "email or username already in use")
	}

	token, exp, err := s.Tokens.Issue(user.ID.String(), user.Role)
	if err != nil {
		l.Error("register_error", "reason", "cannot issue token", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUsers, "user_registered", user.ID.String(), user.ID.String(), map[string]any{"username": user.Username})
	l.Info("user_registered", "user_id", user.ID)
	return &transport.AuthResponse{Token: token, ExpiresAt: exp, User: user, Cart: cart}, nil
}

func (s *UserService) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "user.login")

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	user, err := s.Users.ByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.Hasher.Compare(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "user_id", user.ID, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}

	cart, err := s.Carts.ByUser(ctx, user.ID)
	if err != nil {
		l.Warn("login_cart_missing", "user_id", user.ID, "error", err)
		cart = nil
	}

	return &transport.AuthResponse{Token: token, ExpiresAt: exp, User: user, Cart: cart}, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.Users.FindByID(ctx, id)
	return u, notFound(err, "user")
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	return s.Users.FindMany(ctx, repo.Query{Offset: offset, Limit: limit})
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req transport.UpdateUserRequest) (*models.User, error) {
	fields := map[string]any{}
	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if !validUsername(name) {
			return nil, fmt.Errorf("username must be 6 to 20 characters: %w", ErrValidation)
		}
		fields["username"] = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailRe.MatchString(email) {
			return nil, fmt.Errorf("invalid email format: %w", ErrValidation)
		}
		taken, err := s.Users.Exists(ctx, "email = ? AND id <> ?", email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("email already in use: %w", ErrConflict)
		}
		fields["email"] = email
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Addresses != nil {
		fields["addresses"] = jsonList(*req.Addresses)
	}
	if req.Favorites != nil {
		fields["favorites"] = jsonList(*req.Favorites)
	}

	u, err := s.Users.Update(ctx, id, fields)
	if err != nil {
		return nil, conflict(notFound(err, "user"), "username already in use")
	}
	return u, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req transport.ChangePasswordRequest) error {
	if !validPassword(req.NewPassword) {
		return fmt.Errorf("password needs 6 characters with a digit and an upper-case letter: %w", ErrValidation)
	}
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "user")
	}
	if !s.Hasher.Compare(u.PasswordHash, req.OldPassword) {
		return ErrInvalidCredentials
	}
	hash, err := s.Hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.Users.Update(ctx, id, map[string]any{"password_hash": hash})
	return err
}

// Delete removes the user after clearing their cart, reviews and orders. The
// three cascades run concurrently.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "user.delete", "user_id", id)

	if _, err := s.Users.FindByID(ctx, id); err != nil {
		return notFound(err, "user")
	}

	var touched []uuid.UUID
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Carts.DeleteByUser(gCtx, id) })
	g.Go(func() error {
		var err error
		touched, err = s.Reviews.DeleteByUser(gCtx, id)
		return err
	})
	g.Go(func() error { return s.Orders.DeleteByUser(gCtx, id) })
	if err := g.Wait(); err != nil {
		l.Error("delete_user_cascade_error", "error", err)
		return err
	}

	if _, err := s.Users.Delete(ctx, id); err != nil {
		return err
	}

	if s.Cache != nil && len(touched) > 0 {
		keys := make([]string, len(touched))
		for i, pid := range touched {
			keys[i] = cache.ProductKey(pid.String())
		}
		if err := s.Cache.Delete(ctx, keys...); err != nil {
			l.Warn("cache_invalidate_error", "error", err)
		}
	}

	publish(ctx, s.Events, events.TopicUsers, "user_deleted", id.String(), id.String(), nil)
	l.Info("user_deleted", "reviews_products", len(touched))
	return nil
}
