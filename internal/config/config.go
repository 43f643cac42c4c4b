package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/opteron-x86/exam-ace/internal/models"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	Environment string
	BanksDir    string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine for local runs; plain env vars still apply.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "data/quiz_history.db"),
		RedisURL:    getEnv("REDIS_URL", ""),
		Environment: getEnv("ENVIRONMENT", "development"),
		BanksDir:    getEnv("QUESTION_BANKS_DIR", "question_banks"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// DefaultScoring returns the exam scoring configuration: percentages map onto
// a 100-900 scale with 710 required to pass, and domain results are reported
// against the published exam domain weights.
func DefaultScoring() models.ScoringConfig {
	return models.ScoringConfig{
		ScaleMin:     100,
		ScaleMax:     900,
		PassingScore: 710,
		DomainWeights: map[string]models.DomainInfo{
			"1": {Name: "Project Management Concepts", Weight: 0.33},
			"2": {Name: "Project Life Cycle Phases", Weight: 0.30},
			"3": {Name: "Tools and Documentation", Weight: 0.19},
			"4": {Name: "Basics of IT and Governance", Weight: 0.18},
		},
	}
}
