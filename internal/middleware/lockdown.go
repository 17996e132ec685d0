package middleware

import (
	"log/slog"
	"net/http"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
)

// LockdownMiddleware rejects mutating requests while the selection
// process is closed (ENCERRADO). The gate is checked before every
// mutating entry point; the only exempt mutation is the credential-gated
// status toggle itself, which is simply not wrapped with this middleware.
type LockdownMiddleware struct {
	settingsRepo *repository.SettingsRepository
}

// NewLockdownMiddleware creates a new lockdown middleware
func NewLockdownMiddleware(settingsRepo *repository.SettingsRepository) *LockdownMiddleware {
	return &LockdownMiddleware{settingsRepo: settingsRepo}
}

// RequireOpen allows the request through only while the process is open
func (m *LockdownMiddleware) RequireOpen(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, err := m.settingsRepo.Get(models.SettingProcessStatus, models.ProcessOpen)
		if err != nil {
			slog.Error("Failed to read process status", "error", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to read process status")
			return
		}

		if status == models.ProcessClosed {
			respondWithError(w, http.StatusLocked, "Processo seletivo encerrado")
			return
		}

		next.ServeHTTP(w, r)
	})
}
