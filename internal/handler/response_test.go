package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"washpos-backend/internal/repository"
	"washpos-backend/internal/service"

	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]any{"plate": "B 1 A"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
	require.Nil(t, resp.Error)
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusNotFound, "customer not found")

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "error", resp.Status)
	require.Equal(t, "customer not found", resp.Message)
	require.NotNil(t, resp.Error)
	require.Equal(t, http.StatusNotFound, resp.Error.Code)
}

func TestWriteDomainError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("load wash: %w", repository.ErrNotFound), http.StatusNotFound},
		{repository.ErrPlateExists, http.StatusConflict},
		{repository.ErrReviewExists, http.StatusConflict},
		{repository.ErrWashNotInProgress, http.StatusUnprocessableEntity},
		{repository.ErrOverpayment, http.StatusUnprocessableEntity},
		{repository.ErrPayrollNotPending, http.StatusUnprocessableEntity},
		{service.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{service.ErrInvalidRating, http.StatusUnprocessableEntity},
		{service.ErrUnknownPackage, http.StatusUnprocessableEntity},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeDomainError(rec, tc.err)
		require.Equal(t, tc.want, rec.Code, "error %v", tc.err)
	}
}
