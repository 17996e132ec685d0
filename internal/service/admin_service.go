package service

import (
	"errors"
	"fmt"
	"time"

	"selecao-backend/internal/auth"
	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
)

var (
	ErrInvalidPIN           = errors.New("invalid PIN")
	ErrInvalidProcessStatus = errors.New("process status must be ABERTO or ENCERRADO")
	ErrUnknownWeight        = errors.New("unknown weight name")
)

// AdminService handles the admin credential, the process-status gate and
// the internal weights
type AdminService struct {
	settingsRepo *repository.SettingsRepository
	weightRepo   *repository.WeightRepository
	authService  *auth.Service
	auditService *AuditService
}

// NewAdminService creates a new admin service
func NewAdminService(
	settingsRepo *repository.SettingsRepository,
	weightRepo *repository.WeightRepository,
	authService *auth.Service,
	auditService *AuditService,
) *AdminService {
	return &AdminService{
		settingsRepo: settingsRepo,
		weightRepo:   weightRepo,
		authService:  authService,
		auditService: auditService,
	}
}

// Login verifies the admin PIN and issues a JWT on success
func (s *AdminService) Login(pin, ip string) (string, time.Time, error) {
	hash, err := s.settingsRepo.Get(models.SettingAdminHash, "")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to load admin credential: %w", err)
	}
	if hash == "" || s.authService.VerifyPIN(hash, pin) != nil {
		s.auditService.Log("admin.login_failed", "settings", fmt.Sprintf("invalid PIN from %s", ip))
		return "", time.Time{}, ErrInvalidPIN
	}

	token, expiresAt, err := s.authService.GenerateToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.auditService.Log("admin.login", "settings", fmt.Sprintf("admin authenticated from %s", ip))

	return token, expiresAt, nil
}

// ChangePIN replaces the admin PIN. The current PIN must verify.
func (s *AdminService) ChangePIN(currentPIN, newPIN string) error {
	hash, err := s.settingsRepo.Get(models.SettingAdminHash, "")
	if err != nil {
		return fmt.Errorf("failed to load admin credential: %w", err)
	}
	if hash == "" || s.authService.VerifyPIN(hash, currentPIN) != nil {
		return ErrInvalidPIN
	}

	newHash, err := s.authService.HashPIN(newPIN)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	if err := s.settingsRepo.Set(models.SettingAdminHash, newHash); err != nil {
		return fmt.Errorf("failed to store admin credential: %w", err)
	}

	s.auditService.Log("admin.change_pin", "settings", "admin PIN changed")

	return nil
}

// ProcessStatus returns the current process status, defaulting to open
func (s *AdminService) ProcessStatus() (string, error) {
	return s.settingsRepo.Get(models.SettingProcessStatus, models.ProcessOpen)
}

// SetProcessStatus opens or closes the selection process. While closed,
// all mutating routes are rejected by the lockdown middleware.
func (s *AdminService) SetProcessStatus(status string) error {
	if status != models.ProcessOpen && status != models.ProcessClosed {
		return ErrInvalidProcessStatus
	}

	if err := s.settingsRepo.Set(models.SettingProcessStatus, status); err != nil {
		return fmt.Errorf("failed to store process status: %w", err)
	}

	s.auditService.Log("admin.process_status", "settings",
		fmt.Sprintf("status=%s", status))

	return nil
}

// Weights lists the internal scoring weights
func (s *AdminService) Weights() ([]models.InternalWeight, error) {
	return s.weightRepo.GetList()
}

// SetWeight updates one internal scoring weight. Existing hidden scores
// are untouched until the next recompute.
func (s *AdminService) SetWeight(name string, weight float64) error {
	switch name {
	case models.WeightImmersion, models.WeightDevelopment, models.WeightPresentation:
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownWeight)
	}

	if err := s.weightRepo.Set(name, weight); err != nil {
		return fmt.Errorf("failed to store weight: %w", err)
	}

	s.auditService.Log("admin.set_weight", "internal_weights",
		fmt.Sprintf("name=%s, weight=%.3f", name, weight))

	return nil
}

// EnsureAdminPIN seeds the admin credential with the default PIN when no
// credential exists yet. Called once at startup.
func (s *AdminService) EnsureAdminPIN(defaultPIN string) error {
	exists, err := s.settingsRepo.Exists(models.SettingAdminHash)
	if err != nil {
		return fmt.Errorf("failed to check admin credential: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := s.authService.HashPIN(defaultPIN)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	return s.settingsRepo.Set(models.SettingAdminHash, hash)
}
