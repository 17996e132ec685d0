package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Ranking.ApprovedCount != 5 || cfg.Ranking.WaitlistCount != 5 {
		t.Errorf("expected default ranking counts 5/5, got %d/%d",
			cfg.Ranking.ApprovedCount, cfg.Ranking.WaitlistCount)
	}
	if cfg.JWT.Expiration != 2*time.Hour {
		t.Errorf("expected default JWT expiration 2h, got %s", cfg.JWT.Expiration)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when JWT_SECRET is missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RANKING_APPROVED_COUNT", "3")
	t.Setenv("RANKING_WAITLIST_COUNT", "7")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Ranking.ApprovedCount != 3 || cfg.Ranking.WaitlistCount != 7 {
		t.Errorf("expected ranking counts 3/7, got %d/%d",
			cfg.Ranking.ApprovedCount, cfg.Ranking.WaitlistCount)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Server.Port)
	}
	if cfg.RateLimit.Enabled {
		t.Error("expected rate limiting disabled")
	}
}

func TestValidateNegativeRankingCounts(t *testing.T) {
	cfg := &Config{
		JWT:     JWTConfig{Secret: "s"},
		Ranking: RankingConfig{ApprovedCount: -1},
	}

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative ranking count")
	}
}
