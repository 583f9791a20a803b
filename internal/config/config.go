package config

import (
	"sync"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

// Config is read from hcl files and FOOTY_* environment variables.
// API keys only come from here; nothing in code carries a key.
type Config struct {
	AppEnv     string `hcl:"app_env" env:"APP_ENV" default:"development"`
	ListenAddr string `hcl:"listen_addr" env:"LISTEN_ADDR" default:":8080"`
	// Comma separated list in env
	CORSOrigins []string `hcl:"cors_origins" env:"CORS_ORIGINS" default:"*"`
	DataDir     string   `hcl:"data_dir" env:"DATA_DIR" default:"./data"`
	DatabaseDSN string   `hcl:"database_dsn" env:"DATABASE_DSN" default:":memory:"`

	CacheTTL         time.Duration `hcl:"cache_ttl" env:"CACHE_TTL" default:"5m"`
	CoalesceRequests bool          `hcl:"coalesce_requests" env:"COALESCE_REQUESTS" default:"true"`
	// silent | strict
	FallbackMode  string        `hcl:"fallback_mode" env:"FALLBACK_MODE" default:"silent"`
	CacheFallback bool          `hcl:"cache_fallback" env:"CACHE_FALLBACK" default:"false"`
	ServeStale    bool          `hcl:"serve_stale" env:"SERVE_STALE" default:"false"`
	WarmInterval  time.Duration `hcl:"warm_interval" env:"WARM_INTERVAL" default:"0s"`

	HTTPTimeout   time.Duration `hcl:"http_timeout" env:"HTTP_TIMEOUT" default:"10s"`
	HTTPRetryMax  int           `hcl:"http_retry_max" env:"HTTP_RETRY_MAX" default:"0"`
	HTTPUserAgent string        `hcl:"http_user_agent" env:"HTTP_USER_AGENT" default:"UgandaFootyHub/1.0"`

	SportsDBURL     string `hcl:"sportsdb_url" env:"SPORTSDB_URL" default:"https://www.thesportsdb.com/api/v1/json"`
	SportsDBKey     string `hcl:"sportsdb_key" env:"SPORTSDB_KEY" default:"3"`
	SportsDBCountry string `hcl:"sportsdb_country" env:"SPORTSDB_COUNTRY" default:"Uganda"`

	NewsAPIURL          string   `hcl:"news_api_url" env:"NEWS_API_URL" default:"https://newsapi.org/v2"`
	NewsAPIKey          string   `hcl:"news_api_key" env:"NEWS_API_KEY"`
	NewsQuery           string   `hcl:"news_query" env:"NEWS_QUERY" default:"Uganda football"`
	NewsLanguage        string   `hcl:"news_language" env:"NEWS_LANGUAGE" default:"en"`
	NewsPageSize        int      `hcl:"news_page_size" env:"NEWS_PAGE_SIZE" default:"10"`
	NewsFeedURL         string   `hcl:"news_feed_url" env:"NEWS_FEED_URL"`
	NewsExcludeKeywords []string `hcl:"news_exclude_keywords" env:"NEWS_EXCLUDE_KEYWORDS"`

	WeatherAPIURL string `hcl:"weather_api_url" env:"WEATHER_API_URL" default:"https://api.openweathermap.org/data/2.5"`
	WeatherAPIKey string `hcl:"weather_api_key" env:"WEATHER_API_KEY"`
	WeatherCity   string `hcl:"weather_city" env:"WEATHER_CITY" default:"Kampala,UG"`
	WeatherUnits  string `hcl:"weather_units" env:"WEATHER_UNITS" default:"metric"`

	WikipediaURL string `hcl:"wikipedia_url" env:"WIKIPEDIA_URL" default:"https://en.wikipedia.org/w/api.php"`

	// Bot and notifier stay off until a token is set
	TelegramBotToken     string        `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChannelID    int64         `hcl:"telegram_channel_id" env:"TELEGRAM_CHANNEL_ID"`
	NotificationInterval time.Duration `hcl:"notification_interval" env:"NOTIFICATION_INTERVAL" default:"30m"`
	NotificationWindow   time.Duration `hcl:"notification_window" env:"NOTIFICATION_WINDOW" default:"24h"`
	OpenAIKey            string        `hcl:"openai_key" env:"OPENAI_KEY"`
	OpenAIPrompt         string        `hcl:"openai_prompt" env:"OPENAI_PROMPT" default:"Summarize this Ugandan football story in two short sentences."`
}

var (
	cfg     Config
	loadErr error
	once    sync.Once
)

// Get loads the config on first use and returns the same value afterwards.
func Get() (Config, error) {
	once.Do(func() {
		loader := aconfig.LoaderFor(&cfg, aconfig.Config{
			EnvPrefix: "FOOTY",
			// cobra owns the command line
			SkipFlags: true,
			Files:     []string{"./config.hcl", "./config.local.hcl"},
			FileDecoders: map[string]aconfig.FileDecoder{
				".hcl": aconfighcl.New(),
			},
		})

		loadErr = loader.Load()
	})

	return cfg, loadErr
}

// Load reads a config without touching the process-wide one. Used by tests
// and by the CLI when an explicit file is passed.
func Load(files ...string) (Config, error) {
	var c Config
	loader := aconfig.LoaderFor(&c, aconfig.Config{
		EnvPrefix:          "FOOTY",
		SkipFlags:          true,
		AllowUnknownFields: true,
		Files:              files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	if err := loader.Load(); err != nil {
		return Config{}, err
	}
	return c, nil
}
