package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime knobs: how to launch the browser and how long the
// engine waits at each stage. Destination data (URLs, selectors, keywords)
// is fixed in the domain layer, not configured here.
type Config struct {
	Browser  BrowserConfig
	Timeouts TimeoutsConfig
}

type BrowserConfig struct {
	Channel  string
	Headless bool
	SlowMo   time.Duration
}

type TimeoutsConfig struct {
	Popup       time.Duration
	PopupSettle time.Duration
	Search      time.Duration
	Action      time.Duration
	Results     time.Duration
	Settle      time.Duration
	TypeDelay   time.Duration
}

// Load loads configuration using Viper: defaults, then an optional
// ./config.yaml, then WEBTASK_* environment variables. A .env file is
// loaded first if present.
func Load() (*Config, error) {
	// .env file is optional
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("WEBTASK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.Browser.Channel = viper.GetString("browser.channel")
	cfg.Browser.Headless = viper.GetBool("browser.headless")
	cfg.Browser.SlowMo = viper.GetDuration("browser.slow_mo")

	cfg.Timeouts.Popup = viper.GetDuration("timeouts.popup")
	cfg.Timeouts.PopupSettle = viper.GetDuration("timeouts.popup_settle")
	cfg.Timeouts.Search = viper.GetDuration("timeouts.search")
	cfg.Timeouts.Action = viper.GetDuration("timeouts.action")
	cfg.Timeouts.Results = viper.GetDuration("timeouts.results")
	cfg.Timeouts.Settle = viper.GetDuration("timeouts.settle")
	cfg.Timeouts.TypeDelay = viper.GetDuration("timeouts.type_delay")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("browser.channel", "chromium")
	viper.SetDefault("browser.headless", false)
	viper.SetDefault("browser.slow_mo", "0s")

	viper.SetDefault("timeouts.popup", "800ms")
	viper.SetDefault("timeouts.popup_settle", "250ms")
	viper.SetDefault("timeouts.search", "5s")
	viper.SetDefault("timeouts.action", "2s")
	viper.SetDefault("timeouts.results", "8s")
	viper.SetDefault("timeouts.settle", "400ms")
	viper.SetDefault("timeouts.type_delay", "15ms")
}
