package rbac

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const (
	sourceBuiltin = "builtin"
	sourceStored  = "stored"
)

var (
	ErrPermissionNotFound = apperror.New(apperror.CodeNotFound, "Permission not found", http.StatusNotFound)
	ErrBuiltinPermission  = apperror.New(apperror.CodeInvalidState, "Built-in permissions cannot be revoked", http.StatusConflict)
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy(ctx context.Context) error
	Enforce(req domain.EnforceRequest) (bool, error)
	ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error)
	GrantPermission(ctx context.Context, req domain.PermissionRequest) error
	RevokePermission(ctx context.Context, req domain.PermissionRequest) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{repo: repo, enforcer: enforcer, logger: l}
}

// LoadPolicy rebuilds the enforcer from the built-in policy plus stored grants.
func (s *service) LoadPolicy(ctx context.Context) error {
	rows, err := s.repo.GetRolePermissions(ctx)
	if err != nil {
		s.logger.Error("rbac policy load failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, p := range defaultPolicy {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, rp := range rows {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policy loaded", zap.Int("builtin", len(defaultPolicy)), zap.Int("stored", len(rows)))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		return false, err
	}
	s.logger.Debug("rbac enforce",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error) {
	rows, err := s.repo.GetRolePermissions(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.PermissionResponse, 0, len(defaultPolicy)+len(rows))
	for _, p := range defaultPolicy {
		resp = append(resp, domain.PermissionResponse{Role: p[0], Resource: p[1], Action: p[2], Source: sourceBuiltin})
	}
	for _, rp := range rows {
		resp = append(resp, domain.PermissionResponse{Role: rp.Role, Resource: rp.Resource, Action: rp.Action, Source: sourceStored})
	}
	return resp, nil
}

func (s *service) GrantPermission(ctx context.Context, req domain.PermissionRequest) error {
	req = normalize(req)
	if !domain.IsValidRole(req.Role) {
		return apperror.InvalidField("role")
	}

	if err := s.repo.AddRolePermission(ctx, &RolePermissionRow{Role: req.Role, Resource: req.Resource, Action: req.Action}); err != nil {
		s.logger.Error("rbac grant persist failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.enforcer.AddPolicy(req.Role, req.Resource, req.Action); err != nil {
		return err
	}
	s.logger.Info("rbac grant success", zap.String("role", req.Role), zap.String("resource", req.Resource), zap.String("action", req.Action))
	return nil
}

func (s *service) RevokePermission(ctx context.Context, req domain.PermissionRequest) error {
	req = normalize(req)
	if isBuiltin(req) {
		return ErrBuiltinPermission
	}

	deleted, err := s.repo.DeleteRolePermission(ctx, req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac revoke persist failed", zap.Error(err))
		return err
	}
	if !deleted {
		return ErrPermissionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.enforcer.RemovePolicy(req.Role, req.Resource, req.Action); err != nil {
		return err
	}
	s.logger.Info("rbac revoke success", zap.String("role", req.Role), zap.String("resource", req.Resource), zap.String("action", req.Action))
	return nil
}

func normalize(req domain.PermissionRequest) domain.PermissionRequest {
	return domain.PermissionRequest{
		Role:     strings.TrimSpace(req.Role),
		Resource: strings.ToLower(strings.TrimSpace(req.Resource)),
		Action:   strings.ToLower(strings.TrimSpace(req.Action)),
	}
}

func isBuiltin(req domain.PermissionRequest) bool {
	for _, p := range defaultPolicy {
		if p[0] == req.Role && p[1] == req.Resource && p[2] == req.Action {
			return true
		}
	}
	return false
}
