package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	reporterrors "github.com/hxben0103/ojt-ai-system/internal/report/errors"
	"github.com/hxben0103/ojt-ai-system/internal/shared/contextutil"
	"github.com/hxben0103/ojt-ai-system/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateReportRequest) (ReportResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]ReportResponse, error)
	GetByID(ctx context.Context, id int64) (ReportResponse, error)
	RenderPDF(ctx context.Context, id int64) (RenderedPDF, error)
}

type service struct {
	repo   Repository
	users  user.Repository
	logger *zap.Logger
}

func NewService(repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, users: users, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateReportRequest) (ReportResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create report requested",
		zap.String("request_id", rid),
		zap.String("report_type", req.ReportType),
		zap.Int64("generated_by", req.GeneratedBy),
	)

	reportType := strings.TrimSpace(req.ReportType)
	if reportType == "" {
		return ReportResponse{}, reporterrors.ErrReportTypeRequired
	}
	content := bytes.TrimSpace(req.Content)
	if len(content) == 0 {
		content = []byte("{}")
	}
	if !json.Valid(content) {
		s.logger.Warn("create report validation failed", zap.String("request_id", rid), zap.String("reason", "content not json"))
		return ReportResponse{}, reporterrors.ErrInvalidContent
	}

	generator, err := s.users.FindByID(ctx, req.GeneratedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, reporterrors.ErrGeneratorNotFound
		}
		return ReportResponse{}, err
	}

	rep := &SystemReport{
		ReportType:  reportType,
		GeneratedBy: req.GeneratedBy,
		Content:     json.RawMessage(content),
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		s.logger.Error("create report persist failed", zap.String("request_id", rid), zap.Error(err))
		return ReportResponse{}, err
	}
	rep.Generator = &UserRef{ID: generator.ID, FullName: generator.FullName}

	s.logger.Info("create report success", zap.String("request_id", rid), zap.Int64("report_id", rep.ID))
	return mapToResponse(*rep), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]ReportResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all reports failed", zap.Error(err))
		return nil, err
	}
	resp := make([]ReportResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, mapToResponse(r))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (ReportResponse, error) {
	rep, err := s.find(ctx, id)
	if err != nil {
		return ReportResponse{}, err
	}
	return mapToResponse(*rep), nil
}

func (s *service) RenderPDF(ctx context.Context, id int64) (RenderedPDF, error) {
	rep, err := s.find(ctx, id)
	if err != nil {
		return RenderedPDF{}, err
	}

	body := buildReportPDF(reportLines(*rep))
	s.logger.Debug("report pdf rendered", zap.Int64("report_id", id), zap.Int("bytes", len(body)))
	return RenderedPDF{
		Filename: fmt.Sprintf("report-%d.pdf", rep.ID),
		Body:     body,
	}, nil
}

func (s *service) find(ctx context.Context, id int64) (*SystemReport, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reporterrors.ErrReportNotFound
		}
		return nil, err
	}
	return rep, nil
}

func mapToResponse(r SystemReport) ReportResponse {
	resp := ReportResponse{
		ID:          r.ID,
		ReportType:  r.ReportType,
		GeneratedBy: r.GeneratedBy,
		Content:     r.Content,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.Generator != nil {
		resp.GeneratedByName = r.Generator.FullName
	}
	return resp
}
