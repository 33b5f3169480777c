package user

import (
	"context"
	"errors"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/shared/contextutil"
	usererrors "github.com/hxben0103/ojt-ai-system/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, filter ListFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id int64) (UserResponse, error)
	GetPending(ctx context.Context, actorRole string) ([]UserResponse, error)
	Approve(ctx context.Context, actorRole string, id int64) (UserResponse, error)
	Reject(ctx context.Context, actorRole string, id int64) (UserResponse, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

// reviewable lists the roles whose pending registrations a reviewer role
// may approve or reject.
var reviewable = map[string][]string{
	domain.RoleAdmin:       {domain.RoleCoordinator},
	domain.RoleCoordinator: {domain.RoleStudent, domain.RoleSupervisor},
}

func CanReview(actorRole, targetRole string) bool {
	for _, r := range reviewable[actorRole] {
		if r == targetRole {
			return true
		}
	}
	return false
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]UserResponse, error) {
	if filter.Role != "" && !domain.IsValidRole(filter.Role) {
		return nil, usererrors.ErrInvalidRole
	}
	if filter.Status != "" && !isValidStatus(filter.Status) {
		return nil, usererrors.ErrInvalidStatus
	}

	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, err
	}
	return toResponses(users), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return ToResponse(*u), nil
}

func (s *service) GetPending(ctx context.Context, actorRole string) ([]UserResponse, error) {
	roles, ok := reviewable[actorRole]
	if !ok {
		return nil, usererrors.ErrPendingListNotAllowed
	}

	users, err := s.repo.FindPending(ctx, roles)
	if err != nil {
		s.logger.Error("get pending users failed", zap.Error(err))
		return nil, err
	}
	return toResponses(users), nil
}

func (s *service) Approve(ctx context.Context, actorRole string, id int64) (UserResponse, error) {
	return s.review(ctx, actorRole, id, StatusActive)
}

func (s *service) Reject(ctx context.Context, actorRole string, id int64) (UserResponse, error) {
	return s.review(ctx, actorRole, id, StatusRejected)
}

func (s *service) review(ctx context.Context, actorRole string, id int64, to string) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("user review requested", zap.Int64("user_id", id), zap.String("to", to))

	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	if !CanReview(actorRole, u.Role) {
		l.Warn("user review validation failed",
			zap.Int64("user_id", id),
			zap.String("actor_role", actorRole),
			zap.String("target_role", u.Role),
		)
		return UserResponse{}, usererrors.ErrApprovalNotAllowed
	}
	if u.Status != StatusPending {
		return UserResponse{}, usererrors.ErrUserNotPending.WithDetails(map[string]string{"status": u.Status})
	}

	ok, err := s.repo.UpdateStatus(ctx, id, StatusPending, to)
	if err != nil {
		l.Error("user review persist failed", zap.Int64("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	if !ok {
		return UserResponse{}, usererrors.ErrUserNotPending
	}

	u.Status = to
	l.Info("user review success", zap.Int64("user_id", id), zap.String("status", to))
	return ToResponse(*u), nil
}

func (s *service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	u, err := s.find(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash new password failed", zap.Error(err))
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		s.logger.Error("change password persist failed", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) find(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func isValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func toResponses(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = ToResponse(u)
	}
	return resp
}
