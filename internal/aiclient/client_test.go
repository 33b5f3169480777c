package aiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPredict(t *testing.T) {
	t.Run("posts the snapshot and decodes the prediction", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var snap Snapshot
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&snap))
			assert.Equal(t, 18.0, snap.AttendanceDaysPresent)

			w.Write([]byte(`{"prediction":{"predicted_label":"Good","probability":0.82,"risk_level":"LOW","class_probabilities":{"Good":0.82}}}`))
		}))
		defer srv.Close()

		res, err := New(srv.URL, time.Second).Predict(context.Background(), Snapshot{AttendanceDaysPresent: 18})

		assert.NoError(t, err)
		assert.Equal(t, "Good", res.Prediction.PredictedLabel)
		assert.Equal(t, 0.82, res.Prediction.Probability)
		assert.Equal(t, "LOW", res.Prediction.RiskLevel)
		assert.Contains(t, string(res.Raw), "class_probabilities")
	})

	t.Run("service returns an error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "models not loaded", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(srv.URL, time.Second).Predict(context.Background(), Snapshot{})

		var statusErr *StatusError
		assert.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.False(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("unreachable service", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := New(url, time.Second).Predict(context.Background(), Snapshot{})

		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("slow service times out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := New(srv.URL, 20*time.Millisecond).Predict(context.Background(), Snapshot{})

		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("disabled client never dials", func(t *testing.T) {
		_, err := Disabled().Predict(context.Background(), Snapshot{})

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
