package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/brief-responses-frontend/internal/utils"

	"github.com/spf13/viper"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress string        `mapstructure:"SERVER_ADDRESS"`
	Environment   string        `mapstructure:"DM_ENVIRONMENT"`
	AppName       string        `mapstructure:"DM_APP_NAME"`
	LogLevel      string        `mapstructure:"DM_LOG_LEVEL"`
	BaseURL       string        `mapstructure:"DM_BASE_URL"`
	StaticURL     string        `mapstructure:"DM_STATIC_URL_PATH"`
	Timeout       time.Duration `mapstructure:"DM_REQUEST_TIMEOUT"`

	DataAPIURL       string `mapstructure:"DM_DATA_API_URL"`
	DataAPIAuthToken string `mapstructure:"DM_DATA_API_AUTH_TOKEN"`

	NotifyAPIURL                      string `mapstructure:"DM_NOTIFY_API_URL"`
	NotifyAPIKey                      string `mapstructure:"DM_NOTIFY_API_KEY"`
	ClarificationTemplateID           string `mapstructure:"DM_CLARIFICATION_TEMPLATE_ID"`
	ClarificationConfirmationTemplate string `mapstructure:"DM_CLARIFICATION_CONFIRMATION_TEMPLATE_ID"`

	SessionSecret string `mapstructure:"DM_SESSION_SECRET"`
	SessionCookie string `mapstructure:"DM_SESSION_COOKIE"`
	LoginURL      string `mapstructure:"DM_LOGIN_URL"`

	OtelEndpoint string `mapstructure:"DM_OTEL_ENDPOINT"`
}

const developmentSessionSecret = "not-a-secret"

var environments = []string{"development", "test", "preview", "staging", "production"}

var defaults = map[string]any{
	"SERVER_ADDRESS":                            ":5003",
	"DM_ENVIRONMENT":                            "development",
	"DM_APP_NAME":                               "brief-responses-frontend",
	"DM_LOG_LEVEL":                              "info",
	"DM_BASE_URL":                               "http://localhost",
	"DM_STATIC_URL_PATH":                        "/suppliers/opportunities/static",
	"DM_REQUEST_TIMEOUT":                        "5s",
	"DM_DATA_API_URL":                           "",
	"DM_DATA_API_AUTH_TOKEN":                    "",
	"DM_NOTIFY_API_URL":                         "https://api.notifications.service.gov.uk",
	"DM_NOTIFY_API_KEY":                         "",
	"DM_CLARIFICATION_TEMPLATE_ID":              "",
	"DM_CLARIFICATION_CONFIRMATION_TEMPLATE_ID": "",
	"DM_SESSION_SECRET":                         "",
	"DM_SESSION_COOKIE":                         "dm_session",
	"DM_LOGIN_URL":                              "/user/login",
	"DM_OTEL_ENDPOINT":                          "",
}

// LoadConfig загружает конфигурацию из файла app.env и переменных окружения
func LoadConfig(path string) (cfg Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}
	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.SessionSecret == "" && cfg.Development() {
		cfg.SessionSecret = developmentSessionSecret
	}
	return cfg, cfg.Validate()
}

// Development сообщает, что сервис запущен локально или в тестах.
func (c Config) Development() bool {
	return c.Environment == "development" || c.Environment == "test"
}

// Validate проверяет обязательные параметры
func (c Config) Validate() error {
	if !utils.Contains(environments, c.Environment) {
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Timeout <= 0 {
		return errors.New("DM_REQUEST_TIMEOUT must be positive")
	}
	if c.Development() {
		return nil
	}

	var missing []string
	for _, required := range []struct{ key, value string }{
		{"DM_DATA_API_URL", c.DataAPIURL},
		{"DM_DATA_API_AUTH_TOKEN", c.DataAPIAuthToken},
		{"DM_NOTIFY_API_KEY", c.NotifyAPIKey},
		{"DM_SESSION_SECRET", c.SessionSecret},
	} {
		if required.value == "" {
			missing = append(missing, required.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}
