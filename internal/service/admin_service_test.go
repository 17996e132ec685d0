package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selecao-backend/internal/auth"
	"selecao-backend/internal/config"
	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
	"selecao-backend/internal/testutil"
)

func setupAdminService(t *testing.T) (*AdminService, *testutil.TestContainers) {
	tc := testutil.SetupTestContainers(t)

	settingsRepo := repository.NewSettingsRepository(tc.DB)
	weightRepo := repository.NewWeightRepository(tc.DB)
	auditService := NewAuditService(repository.NewAuditRepository(tc.DB))
	authService := auth.NewService(&config.JWTConfig{
		Secret:     "test-secret",
		Expiration: 2 * time.Hour,
	})

	return NewAdminService(settingsRepo, weightRepo, authService, auditService), tc
}

func TestAdminLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, tc := setupAdminService(t)
	defer tc.Cleanup(t)

	require.NoError(t, svc.EnsureAdminPIN("1234"))

	token, expiresAt, err := svc.Login("1234", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	_, _, err = svc.Login("4321", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidPIN)
}

func TestAdminChangePIN(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, tc := setupAdminService(t)
	defer tc.Cleanup(t)

	require.NoError(t, svc.EnsureAdminPIN("1234"))

	assert.ErrorIs(t, svc.ChangePIN("9999", "5678"), ErrInvalidPIN)

	require.NoError(t, svc.ChangePIN("1234", "5678"))

	_, _, err := svc.Login("1234", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidPIN)

	_, _, err = svc.Login("5678", "127.0.0.1")
	require.NoError(t, err)

	// Seeding never overwrites an existing credential
	require.NoError(t, svc.EnsureAdminPIN("1234"))
	_, _, err = svc.Login("5678", "127.0.0.1")
	require.NoError(t, err)
}

func TestAdminProcessStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, tc := setupAdminService(t)
	defer tc.Cleanup(t)

	status, err := svc.ProcessStatus()
	require.NoError(t, err)
	assert.Equal(t, models.ProcessOpen, status)

	assert.ErrorIs(t, svc.SetProcessStatus("PAUSADO"), ErrInvalidProcessStatus)

	require.NoError(t, svc.SetProcessStatus(models.ProcessClosed))
	status, err = svc.ProcessStatus()
	require.NoError(t, err)
	assert.Equal(t, models.ProcessClosed, status)
}

func TestAdminSetWeight(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, tc := setupAdminService(t)
	defer tc.Cleanup(t)

	assert.ErrorIs(t, svc.SetWeight("charisma", 0.5), ErrUnknownWeight)

	require.NoError(t, svc.SetWeight(models.WeightDevelopment, 0.6))

	weights, err := svc.Weights()
	require.NoError(t, err)
	found := false
	for _, w := range weights {
		if w.Name == models.WeightDevelopment {
			found = true
			assert.InDelta(t, 0.6, w.Weight, 1e-9)
		}
	}
	assert.True(t, found)
}
