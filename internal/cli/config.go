package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lenslate/internal/ocr"
	"codeberg.org/snonux/lenslate/internal/phrasebook"
	"codeberg.org/snonux/lenslate/internal/platform"
	"codeberg.org/snonux/lenslate/internal/translation"
)

// Config is the resolved application configuration
type Config struct {
	InputLang  string
	OutputLang string
	Realtime   bool

	OCREndpoint string
	OCRAPIKey   string

	Provider      string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string

	PhrasebookBackend  string
	PhrasebookPath     string
	PhrasebookRedisURL string

	AMQPURL   string
	AMQPQueue string

	ThemePrimary string
	Locale       string
	LogLevel     string
	LogFormat    string
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".lenslate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lenslate")
	}

	SetDefaults()

	// Environment variables, e.g. LENSLATE_OCR_API_KEY for ocr.api_key
	viper.SetEnvPrefix("LENSLATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// SetDefaults registers the default value of every configuration key
func SetDefaults() {
	viper.SetDefault("settings.input_lang", "en")
	viper.SetDefault("settings.output_lang", "de")
	viper.SetDefault("settings.realtime", false)
	viper.SetDefault("ocr.endpoint", ocr.DefaultEndpoint)
	viper.SetDefault("ocr.api_key", ocr.DefaultAPIKey)
	viper.SetDefault("translation.provider", "openai")
	viper.SetDefault("translation.openai_model", "gpt-4o-mini")
	viper.SetDefault("translation.gemini_model", translation.DefaultGeminiModel)
	viper.SetDefault("phrasebook.backend", phrasebook.BackendSQLite)
	viper.SetDefault("phrasebook.path", DefaultPhrasebookPath())
	viper.SetDefault("alerts.amqp_queue", "lenslate.alerts")
	viper.SetDefault("theme.primary", platform.DefaultPrimaryColor)
	viper.SetDefault("ui.locale", "en")
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")
}

// DefaultPhrasebookPath returns ~/.local/state/lenslate/phrasebook.db
func DefaultPhrasebookPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "lenslate", "phrasebook.db")
}

// LoadConfig resolves the configuration from viper and validates it
func LoadConfig() (*Config, error) {
	cfg := &Config{
		InputLang:          viper.GetString("settings.input_lang"),
		OutputLang:         viper.GetString("settings.output_lang"),
		Realtime:           viper.GetBool("settings.realtime"),
		OCREndpoint:        viper.GetString("ocr.endpoint"),
		OCRAPIKey:          viper.GetString("ocr.api_key"),
		Provider:           strings.ToLower(viper.GetString("translation.provider")),
		OpenAIKey:          GetOpenAIKey(),
		OpenAIModel:        viper.GetString("translation.openai_model"),
		OpenAIBaseURL:      viper.GetString("translation.openai_base_url"),
		GeminiKey:          GetGeminiKey(),
		GeminiModel:        viper.GetString("translation.gemini_model"),
		GeminiBaseURL:      viper.GetString("translation.gemini_base_url"),
		PhrasebookBackend:  viper.GetString("phrasebook.backend"),
		PhrasebookPath:     viper.GetString("phrasebook.path"),
		PhrasebookRedisURL: viper.GetString("phrasebook.redis_url"),
		AMQPURL:            viper.GetString("alerts.amqp_url"),
		AMQPQueue:          viper.GetString("alerts.amqp_queue"),
		ThemePrimary:       viper.GetString("theme.primary"),
		Locale:             viper.GetString("ui.locale"),
		LogLevel:           viper.GetString("log.level"),
		LogFormat:          viper.GetString("log.format"),
	}

	var err error
	if cfg.InputLang, err = translation.NormalizeLanguage(cfg.InputLang); err != nil {
		return nil, fmt.Errorf("invalid input language: %w", err)
	}
	if cfg.OutputLang, err = translation.NormalizeLanguage(cfg.OutputLang); err != nil {
		return nil, fmt.Errorf("invalid output language: %w", err)
	}

	switch cfg.Provider {
	case "openai", "gemini":
	default:
		return nil, fmt.Errorf("unknown translation provider: %s (valid: openai, gemini)", cfg.Provider)
	}

	if strings.HasPrefix(cfg.PhrasebookPath, "~/") {
		home, _ := os.UserHomeDir()
		cfg.PhrasebookPath = filepath.Join(home, cfg.PhrasebookPath[2:])
	}

	return cfg, nil
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}
