package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("ARTIFACT_DIR", "")
	t.Setenv("NOTIFIER_MODE", "")
	t.Setenv("SESSION_COOKIE", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.APIPort)
	}
	if cfg.ArtifactDir != "./data/artifacts" {
		t.Fatalf("expected artifact dir under data dir, got %q", cfg.ArtifactDir)
	}
	if cfg.NotifierMode != "log" {
		t.Fatalf("expected log notifier default, got %q", cfg.NotifierMode)
	}
	if cfg.SessionCookie != "invoice_session" {
		t.Fatalf("expected default session cookie name, got %q", cfg.SessionCookie)
	}
	if cfg.RateLimitRPS != 50 {
		t.Fatalf("expected default rate limit 50, got %d", cfg.RateLimitRPS)
	}
	if cfg.WorkerMetricsPort != "9090" {
		t.Fatalf("expected default worker metrics port 9090, got %q", cfg.WorkerMetricsPort)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/invoices")
	t.Setenv("ARTIFACT_DIR", "")
	t.Setenv("NOTIFIER_MODE", "nats")
	t.Setenv("NATS_SUBJECT", "billing.sent")
	t.Setenv("API_RATE_LIMIT_RPS", "5")
	t.Setenv("NOTICE_TTL_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.ArtifactDir != "/var/lib/invoices/artifacts" {
		t.Fatalf("expected artifact dir to follow data dir, got %q", cfg.ArtifactDir)
	}
	if cfg.NotifierMode != "nats" {
		t.Fatalf("expected nats notifier, got %q", cfg.NotifierMode)
	}
	if cfg.NATSSubject != "billing.sent" {
		t.Fatalf("expected subject override, got %q", cfg.NATSSubject)
	}
	if cfg.RateLimitRPS != 5 {
		t.Fatalf("expected rate limit 5, got %d", cfg.RateLimitRPS)
	}
	if cfg.NoticeTTLSecs != 600 {
		t.Fatalf("expected malformed ttl to fall back to 600, got %d", cfg.NoticeTTLSecs)
	}
}
