package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/garage-backend/internal/data/db"
	"github.com/yungbote/garage-backend/internal/modules/prediction"
	"github.com/yungbote/garage-backend/internal/platform/envutil"
	"github.com/yungbote/garage-backend/internal/platform/llm"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

const (
	CacheBackendPostgres = "postgres"
	CacheBackendRedis    = "redis"
)

type Config struct {
	Env  string
	Addr string

	DB db.Config

	CacheBackend   string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SuggestionTTL  time.Duration
	AITimeout      time.Duration
	Concurrency    int
	PlansPath      string
	Plans          prediction.PlanConfig
	LLM            llm.Config
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Env:            envutil.String("LOG_MODE", "development"),
		Addr:           ":" + envutil.String("PORT", "8080"),
		DB:             db.ConfigFromEnv(),
		CacheBackend:   strings.ToLower(envutil.String("CACHE_BACKEND", CacheBackendPostgres)),
		RedisAddr:      envutil.String("REDIS_ADDR", ""),
		RedisPassword:  envutil.String("REDIS_PASSWORD", ""),
		RedisDB:        envutil.Int("REDIS_DB", 0),
		SuggestionTTL:  envutil.Seconds("PREDICTION_CACHE_TTL_SECONDS", prediction.DefaultSuggestionTTL),
		AITimeout:      envutil.Seconds("AI_TIMEOUT_SECONDS", prediction.DefaultAITimeout),
		Concurrency:    envutil.Int("PREDICTION_CONCURRENCY", prediction.DefaultConcurrency),
		PlansPath:      envutil.String("PREDICTION_PLANS_PATH", ""),
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", ""),
		AccessTokenTTL: envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),
		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),
	}
	cfg.LLM = loadLLMConfig(cfg.AITimeout)

	switch cfg.CacheBackend {
	case CacheBackendPostgres:
	case CacheBackendRedis:
		if cfg.RedisAddr == "" {
			return Config{}, fmt.Errorf("CACHE_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return Config{}, fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.CacheBackend)
	}

	plans, err := prediction.LoadPlanConfig(cfg.PlansPath)
	if err != nil {
		return Config{}, err
	}
	cfg.Plans = plans

	if cfg.JWTSecretKey == "" {
		log.Warn("JWT_SECRET_KEY is empty; every bearer token will be rejected")
	}
	return cfg, nil
}

// loadLLMConfig picks the provider from LLM_PROVIDER, falling back to openai when an
// OpenAI key is present and to the disabled provider otherwise.
func loadLLMConfig(timeout time.Duration) llm.Config {
	provider := strings.ToLower(envutil.String("LLM_PROVIDER", ""))
	if provider == "" {
		if envutil.String("OPENAI_API_KEY", "") != "" {
			provider = llm.ProviderOpenAI
		} else {
			provider = llm.ProviderDisabled
		}
	}
	cfg := llm.Config{Provider: provider, Timeout: timeout + 5*time.Second}
	switch provider {
	case llm.ProviderOpenAI:
		cfg.APIKey = envutil.String("OPENAI_API_KEY", "")
		cfg.BaseURL = envutil.String("OPENAI_BASE_URL", "")
		cfg.Model = envutil.String("OPENAI_MODEL", "")
	case llm.ProviderAnthropic:
		cfg.APIKey = envutil.String("ANTHROPIC_API_KEY", "")
		cfg.BaseURL = envutil.String("ANTHROPIC_BASE_URL", "")
		cfg.Model = envutil.String("ANTHROPIC_MODEL", "")
	}
	return cfg
}
