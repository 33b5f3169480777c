package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable is returned when the prediction service cannot be reached
// or is switched off.
var ErrUnavailable = errors.New("ai prediction service unavailable")

// Snapshot is the daily feature vector the model is trained on.
type Snapshot struct {
	DailyProgressScore    float64 `json:"daily_progress_score"`
	NarrativeScore        float64 `json:"narrative_score"`
	CoordEvalScore        float64 `json:"coord_eval_score"`
	PartnerEvalScore      float64 `json:"partner_eval_score"`
	AttendanceDaysPresent float64 `json:"attendance_days_present"`
	AttendanceTodayHours  float64 `json:"attendance_today_hours"`
	TotalHoursCompleted   float64 `json:"total_hours_completed"`
}

type Prediction struct {
	PredictedLabel     string             `json:"predicted_label"`
	Probability        float64            `json:"probability"`
	ClassProbabilities map[string]float64 `json:"class_probabilities,omitempty"`
	RiskLevel          string             `json:"risk_level"`
}

type PredictResult struct {
	Prediction Prediction
	// Raw is the full response body as returned by the service.
	Raw json.RawMessage
}

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ai service error %d: %s", e.StatusCode, e.Body)
}

//go:generate mockgen -source=client.go -destination=mock/client_mock.go -package=mock
type Predictor interface {
	Predict(ctx context.Context, snap Snapshot) (PredictResult, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	disabled   bool
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Disabled returns a client that reports ErrUnavailable without dialing.
func Disabled() *Client {
	return &Client{disabled: true}
}

func (c *Client) Predict(ctx context.Context, snap Snapshot) (PredictResult, error) {
	if c.disabled {
		return PredictResult{}, ErrUnavailable
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return PredictResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return PredictResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PredictResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return PredictResult{}, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return PredictResult{}, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded struct {
		Prediction Prediction `json:"prediction"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return PredictResult{}, fmt.Errorf("decode ai prediction: %w", err)
	}
	return PredictResult{Prediction: decoded.Prediction, Raw: raw}, nil
}
