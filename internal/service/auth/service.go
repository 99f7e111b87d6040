package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

// userRepo defines the user repository interface needed by the auth
// service.
type userRepo interface {
	List(ctx context.Context) ([]domain.User, error)
}

// sessionManager defines the session token interface needed by the auth
// service.
type sessionManager interface {
	Issue(username string, role domain.Role) (string, error)
	Validate(token string) (username string, role domain.Role, err error)
}

// Service implements login and session validation.
type Service struct {
	log      *slog.Logger
	users    userRepo
	sessions sessionManager
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, users userRepo, sessions sessionManager) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		sessions: sessions,
	}
}

// LoginInput holds credentials for the login operation.
type LoginInput struct {
	Username string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginResult carries the session token and the authenticated identity.
type LoginResult struct {
	Token    string
	Username string
	Role     domain.Role
}

// Login authenticates a username/password pair against the users
// collection: a linear scan for an exact match on both fields. Any miss
// returns the same ErrUnauthorized, with no distinction between an
// unknown user and a wrong password.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Password = strings.TrimSpace(input.Password)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Username != input.Username || u.Password != input.Password {
			continue
		}

		role := u.Role
		if !role.IsValid() {
			role = domain.RoleStaff
		}

		token, err := s.sessions.Issue(u.Username, role)
		if err != nil {
			return nil, err
		}

		s.log.InfoContext(ctx, "user logged in",
			slog.String("username", u.Username),
			slog.String("role", role.String()),
		)

		return &LoginResult{Token: token, Username: u.Username, Role: role}, nil
	}

	s.log.WarnContext(ctx, "failed login attempt",
		slog.String("username", input.Username),
	)
	return nil, domain.ErrUnauthorized
}

// ValidateToken checks a session token and returns the identity it
// carries.
func (s *Service) ValidateToken(_ context.Context, token string) (ctxutil.Identity, error) {
	username, role, err := s.sessions.Validate(token)
	if err != nil {
		return ctxutil.Identity{}, domain.ErrUnauthorized
	}
	return ctxutil.Identity{Username: username, Role: role.String()}, nil
}
