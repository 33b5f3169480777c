package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"

	autherrors "github.com/hxben0103/ojt-ai-system/internal/auth/errors"
	"github.com/hxben0103/ojt-ai-system/internal/config"
	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID int64) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (RegisterResult, error)
}

type service struct {
	users  user.Repository
	ttl    TokenTTL
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(users user.Repository, ttl TokenTTL, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, ttl: ttl, clock: clk, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
			return TokenPair{}, AuthResponse{}, err
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login validation failed", zap.Int64("user_id", u.ID))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := checkStatus(u); err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	tokens, err := s.issue(u)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	s.logger.Info("login success", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	return tokens, user.ToResponse(*u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claims, err := middleware.ParseToken(refreshToken, middleware.TokenTypeRefresh)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	uid, _ := claims["user_id"].(string)
	id, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
		}
		return TokenPair{}, AuthResponse{}, err
	}
	if err := checkStatus(u); err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	tokens, err := s.issue(u)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return tokens, user.ToResponse(*u), nil
}

func (s *service) GetMe(ctx context.Context, userID int64) (AuthResponse, error) {
	if userID <= 0 {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return user.ToResponse(*u), nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (RegisterResult, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RoleStudent
	}
	if !domain.IsValidRole(role) {
		return RegisterResult{}, autherrors.ErrInvalidRole
	}
	s.logger.Debug("register requested", zap.String("role", role))

	if role == domain.RoleAdmin {
		if err := s.ensureNoAdmin(ctx); err != nil {
			return RegisterResult{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return RegisterResult{}, err
	}

	status := user.StatusPending
	if role == domain.RoleAdmin {
		status = user.StatusActive
	}

	u := &user.User{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:  string(hashed),
		Role:          role,
		Status:        status,
		StudentNumber: trimmed(req.StudentNumber),
		Course:        trimmed(req.Course),
		Age:           req.Age,
		Gender:        trimmed(req.Gender),
		ContactNumber: trimmed(req.ContactNumber),
		Address:       trimmed(req.Address),
		RequiredHours: req.RequiredHours,
		ProfilePhoto:  trimmed(req.ProfilePhoto),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if isDuplicateEmail(err) {
			return RegisterResult{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("register persist failed", zap.Error(err))
		return RegisterResult{}, err
	}

	result := RegisterResult{User: user.ToResponse(*u), Message: registerMessage(role)}
	if u.Status == user.StatusActive {
		tokens, err := s.issue(u)
		if err != nil {
			return RegisterResult{}, err
		}
		result.TokenPair = tokens
	}

	s.logger.Info("register success", zap.Int64("user_id", u.ID), zap.String("status", u.Status))
	return result, nil
}

// checkStatus lets Admins in regardless of status, everyone else only
// once Active.
func checkStatus(u *user.User) error {
	if u.Role == domain.RoleAdmin {
		return nil
	}
	switch u.Status {
	case user.StatusActive:
		return nil
	case user.StatusRejected:
		return autherrors.ErrAccountRejected
	default:
		return autherrors.ErrAccountPending
	}
}

func (s *service) issue(u *user.User) (TokenPair, error) {
	access, err := s.generateToken(u, middleware.TokenTypeAccess)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(u, middleware.TokenTypeRefresh)
	if err != nil {
		s.logger.Error("sign refresh token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) generateToken(u *user.User, tokenType string) (string, error) {
	ttl := s.ttl.Access
	if tokenType == middleware.TokenTypeRefresh {
		ttl = s.ttl.Refresh
	}
	now := s.clock.Now()

	claims := jwt.MapClaims{
		"user_id": strconv.FormatInt(u.ID, 10),
		"role":    u.Role,
		"email":   u.Email,
		"typ":     tokenType,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret()))
}

func registerMessage(role string) string {
	switch role {
	case domain.RoleCoordinator:
		return "Registration submitted, waiting for Admin approval"
	case domain.RoleStudent, domain.RoleSupervisor:
		return "Registration submitted, waiting for Coordinator approval"
	default:
		return "User registered successfully"
	}
}

func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName == "uq_users_email"
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_email")
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

// ensureNoAdmin lets the public register route create the first Admin only.
// Later Admin accounts are refused.
func (s *service) ensureNoAdmin(ctx context.Context) error {
	admins, err := s.users.FindAll(ctx, user.ListFilter{Role: domain.RoleAdmin})
	if err != nil {
		s.logger.Error("register admin lookup failed", zap.Error(err))
		return err
	}
	if len(admins) > 0 {
		s.logger.Warn("register validation failed", zap.String("reason", "admin already exists"))
		return autherrors.ErrAdminRegistrationClosed
	}
	return nil
}
