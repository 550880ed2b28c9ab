package config

import (
	"testing"
	"time"
)

// gateEnvVars lists all env vars that must be cleared between tests.
var gateEnvVars = []string{
	"GATEWARDEN_DATABASE_URL", "GATEWARDEN_HTTP_ADDR", "GATEWARDEN_NATS_URL",
	"GATEWARDEN_AUTH_TOKEN", "GATEWARDEN_TELEGRAM_TOKEN",
	"GATEWARDEN_QUESTIONS_FILE", "GATEWARDEN_QUESTIONS_S3_BUCKET",
	"GATEWARDEN_QUESTIONS_S3_KEY", "GATEWARDEN_QUESTIONS_S3_REGION",
	"GATEWARDEN_QUESTIONS_S3_ENDPOINT", "GATEWARDEN_ATTEMPT_BUDGET",
	"GATEWARDEN_ANSWER_TIMEOUT", "GATEWARDEN_REROLL_ON_RETRY",
	"GATEWARDEN_DELETE_JOIN_MESSAGES",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range gateEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearAllEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty (memory store)", cfg.DatabaseURL)
	}
	if cfg.QuestionsFile != "questions.json" {
		t.Errorf("QuestionsFile = %q, want %q", cfg.QuestionsFile, "questions.json")
	}
	if cfg.QuestionsS3Region != "us-east-1" {
		t.Errorf("QuestionsS3Region = %q, want %q", cfg.QuestionsS3Region, "us-east-1")
	}
	if cfg.AttemptBudget != 3 {
		t.Errorf("AttemptBudget = %d, want 3", cfg.AttemptBudget)
	}
	if cfg.AnswerTimeout != 5*time.Minute {
		t.Errorf("AnswerTimeout = %v, want 5m", cfg.AnswerTimeout)
	}
	if cfg.RerollOnRetry {
		t.Error("RerollOnRetry should default to false")
	}
}

func TestLoad_Custom(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("GATEWARDEN_DATABASE_URL", "postgres://db:5432/gatewarden")
	t.Setenv("GATEWARDEN_HTTP_ADDR", ":3000")
	t.Setenv("GATEWARDEN_NATS_URL", "nats://localhost:4222")
	t.Setenv("GATEWARDEN_ATTEMPT_BUDGET", "2")
	t.Setenv("GATEWARDEN_ANSWER_TIMEOUT", "300s")
	t.Setenv("GATEWARDEN_REROLL_ON_RETRY", "true")
	t.Setenv("GATEWARDEN_QUESTIONS_S3_BUCKET", "quiz-bucket")
	t.Setenv("GATEWARDEN_QUESTIONS_S3_ENDPOINT", "http://minio:9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "postgres://db:5432/gatewarden" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Errorf("NATSURL = %q", cfg.NATSURL)
	}
	if cfg.AttemptBudget != 2 {
		t.Errorf("AttemptBudget = %d, want 2", cfg.AttemptBudget)
	}
	if cfg.AnswerTimeout != 300*time.Second {
		t.Errorf("AnswerTimeout = %v, want 300s", cfg.AnswerTimeout)
	}
	if !cfg.RerollOnRetry {
		t.Error("RerollOnRetry = false, want true")
	}
	if cfg.QuestionsS3Bucket != "quiz-bucket" {
		t.Errorf("QuestionsS3Bucket = %q", cfg.QuestionsS3Bucket)
	}
	if cfg.QuestionsS3Endpoint != "http://minio:9000" {
		t.Errorf("QuestionsS3Endpoint = %q", cfg.QuestionsS3Endpoint)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	for _, tc := range []struct {
		name  string
		key   string
		value string
	}{
		{"BadBudget", "GATEWARDEN_ATTEMPT_BUDGET", "lots"},
		{"ZeroBudget", "GATEWARDEN_ATTEMPT_BUDGET", "0"},
		{"BadTimeout", "GATEWARDEN_ANSWER_TIMEOUT", "soon"},
		{"ZeroTimeout", "GATEWARDEN_ANSWER_TIMEOUT", "0s"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_ENVDEFAULT", "")
	if got := envOrDefault("TEST_ENVDEFAULT", "fallback"); got != "fallback" {
		t.Errorf("envOrDefault = %q, want fallback", got)
	}
	t.Setenv("TEST_ENVDEFAULT", "custom")
	if got := envOrDefault("TEST_ENVDEFAULT", "fallback"); got != "custom" {
		t.Errorf("envOrDefault = %q, want custom", got)
	}
}

func TestEnvBool(t *testing.T) {
	for val, want := range map[string]bool{
		"1": true, "true": true, "TRUE": true, "yes": true,
		"": false, "0": false, "no": false, "banana": false,
	} {
		t.Setenv("TEST_ENVBOOL", val)
		if got := envBool("TEST_ENVBOOL"); got != want {
			t.Errorf("envBool(%q) = %v, want %v", val, got, want)
		}
	}
}
