package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL   string // GATEWARDEN_DATABASE_URL (optional, empty = in-memory store)
	HTTPAddr      string // GATEWARDEN_HTTP_ADDR (default ":8080")
	NATSURL       string // GATEWARDEN_NATS_URL (optional, empty = no events)
	AuthToken     string // GATEWARDEN_AUTH_TOKEN (optional, empty = auth disabled)
	TelegramToken string // GATEWARDEN_TELEGRAM_TOKEN (optional, empty = HTTP ingest only)

	// Question source. The S3 bucket takes precedence over the file when set.
	QuestionsFile       string // GATEWARDEN_QUESTIONS_FILE (default "questions.json")
	QuestionsS3Bucket   string // GATEWARDEN_QUESTIONS_S3_BUCKET (enables S3 when set)
	QuestionsS3Key      string // GATEWARDEN_QUESTIONS_S3_KEY (default "gatewarden/questions.json")
	QuestionsS3Region   string // GATEWARDEN_QUESTIONS_S3_REGION (default "us-east-1")
	QuestionsS3Endpoint string // GATEWARDEN_QUESTIONS_S3_ENDPOINT (custom endpoint for MinIO)

	// Gate policy
	AttemptBudget      int           // GATEWARDEN_ATTEMPT_BUDGET (default 3)
	AnswerTimeout      time.Duration // GATEWARDEN_ANSWER_TIMEOUT (default 5m)
	RerollOnRetry      bool          // GATEWARDEN_REROLL_ON_RETRY (default false: re-send the same question)
	DeleteJoinMessages bool          // GATEWARDEN_DELETE_JOIN_MESSAGES (Telegram service messages)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:         os.Getenv("GATEWARDEN_DATABASE_URL"),
		HTTPAddr:            envOrDefault("GATEWARDEN_HTTP_ADDR", ":8080"),
		NATSURL:             os.Getenv("GATEWARDEN_NATS_URL"),
		AuthToken:           os.Getenv("GATEWARDEN_AUTH_TOKEN"),
		TelegramToken:       os.Getenv("GATEWARDEN_TELEGRAM_TOKEN"),
		QuestionsFile:       envOrDefault("GATEWARDEN_QUESTIONS_FILE", "questions.json"),
		QuestionsS3Bucket:   os.Getenv("GATEWARDEN_QUESTIONS_S3_BUCKET"),
		QuestionsS3Key:      envOrDefault("GATEWARDEN_QUESTIONS_S3_KEY", "gatewarden/questions.json"),
		QuestionsS3Region:   envOrDefault("GATEWARDEN_QUESTIONS_S3_REGION", "us-east-1"),
		QuestionsS3Endpoint: os.Getenv("GATEWARDEN_QUESTIONS_S3_ENDPOINT"),
	}

	budgetStr := envOrDefault("GATEWARDEN_ATTEMPT_BUDGET", "3")
	budget, err := strconv.Atoi(budgetStr)
	if err != nil || budget < 1 {
		return nil, fmt.Errorf("GATEWARDEN_ATTEMPT_BUDGET: must be a positive integer, got %q", budgetStr)
	}
	c.AttemptBudget = budget

	timeoutStr := envOrDefault("GATEWARDEN_ANSWER_TIMEOUT", "5m")
	d, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("GATEWARDEN_ANSWER_TIMEOUT: %w", err)
	}
	if d <= 0 {
		return nil, fmt.Errorf("GATEWARDEN_ANSWER_TIMEOUT: must be positive, got %q", timeoutStr)
	}
	c.AnswerTimeout = d

	c.RerollOnRetry = envBool("GATEWARDEN_REROLL_ON_RETRY")
	c.DeleteJoinMessages = envBool("GATEWARDEN_DELETE_JOIN_MESSAGES")

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes":
		return true
	}
	return false
}
