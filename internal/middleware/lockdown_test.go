package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
	"selecao-backend/internal/testutil"
)

func TestRequireOpen(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	settingsRepo := repository.NewSettingsRepository(tc.DB)
	mw := NewLockdownMiddleware(settingsRepo)

	reached := false
	handler := mw.RequireOpen(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))

	// Open process lets mutations through
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/candidates", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, reached)

	// Closed process rejects them with 423 Locked
	require.NoError(t, settingsRepo.Set(models.SettingProcessStatus, models.ProcessClosed))

	reached = false
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/candidates", nil))
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.False(t, reached)
	assert.True(t, strings.Contains(rec.Body.String(), "Processo seletivo encerrado"))

	// Reopening lifts the gate
	require.NoError(t, settingsRepo.Set(models.SettingProcessStatus, models.ProcessOpen))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/candidates", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, reached)
}
