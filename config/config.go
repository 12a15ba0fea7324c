package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"agrivision/pkg/advisory"
)

type AppConfig struct {
	Port        string
	DBPath      string
	LogLevel    string
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string
	RequireUser bool

	// Optional advisory tuning tables.
	ThresholdsCSV  string
	CropRulesCSV   string
	ThresholdsXLSX string

	HistoryLimit int
}

const DefaultHistoryLimit = 5

// Load reads .env (if present) and the process environment. The returned
// warnings are logged by the caller once a logger exists.
func Load() (AppConfig, []string) {
	var warn []string
	if err := godotenv.Load(); err != nil {
		warn = append(warn, "no .env file loaded: "+err.Error())
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		DBPath:         get("DB_PATH", "agrivision.db"),
		LogLevel:       get("LOG_LEVEL", "info"),
		LLMEndpoint:    get("LLM_ENDPOINT", ""),
		LLMAPIKey:      get("LLM_API_KEY", ""),
		LLMModel:       get("LLM_MODEL", "gpt-4o-mini"),
		RequireUser:    get("REQUIRE_USER", "false") == "true",
		ThresholdsCSV:  get("THRESHOLDS_CSV", ""),
		CropRulesCSV:   get("CROP_RULES_CSV", ""),
		ThresholdsXLSX: get("THRESHOLDS_XLSX", ""),
		HistoryLimit:   DefaultHistoryLimit,
	}
	if v := get("HISTORY_LIMIT", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			warn = append(warn, "ignoring HISTORY_LIMIT="+v)
		} else {
			cfg.HistoryLimit = n
		}
	}
	return cfg, warn
}

// AdvisorySources maps the configured table paths onto the advisory loader.
func (c AppConfig) AdvisorySources() advisory.Sources {
	return advisory.Sources{
		ThresholdsCSV: c.ThresholdsCSV,
		CropRulesCSV:  c.CropRulesCSV,
		WorkbookXLSX:  c.ThresholdsXLSX,
	}
}

// Fields returns the config as log fields with the API key redacted.
func (c AppConfig) Fields() []zap.Field {
	key := ""
	if c.LLMAPIKey != "" {
		key = "***"
	}
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("db_path", c.DBPath),
		zap.String("log_level", c.LogLevel),
		zap.String("llm_endpoint", c.LLMEndpoint),
		zap.String("llm_api_key", key),
		zap.String("llm_model", c.LLMModel),
		zap.Bool("require_user", c.RequireUser),
		zap.String("thresholds_csv", c.ThresholdsCSV),
		zap.String("crop_rules_csv", c.CropRulesCSV),
		zap.String("thresholds_xlsx", c.ThresholdsXLSX),
		zap.Int("history_limit", c.HistoryLimit),
	}
}
