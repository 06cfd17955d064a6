package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Odoo    OdooConfig
	Woo     WooConfig
	Webhook WebhookConfig
	Storage StorageConfig
	Sync    SyncConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port int
}

type OdooConfig struct {
	URL      string
	Database string
	Login    string
	APIKey   string
	Timeout  time.Duration
}

type WooConfig struct {
	URL            string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

type WebhookConfig struct {
	Secret string
}

type StorageConfig struct {
	Path string
}

type SyncConfig struct {
	// Schedule is a cron expression; empty disables the stock/price sync job.
	Schedule  string
	BatchSize int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 3000)
	viper.SetDefault("ODOO_URL", "")
	viper.SetDefault("ODOO_DB", "")
	viper.SetDefault("ODOO_LOGIN", "")
	viper.SetDefault("ODOO_API_KEY", "")
	viper.SetDefault("WOO_URL", "")
	viper.SetDefault("WOO_CONSUMER_KEY", "")
	viper.SetDefault("WOO_CONSUMER_SECRET", "")
	viper.SetDefault("WOO_WEBHOOK_SECRET", "")
	viper.SetDefault("DB_PATH", "./data.sqlite")
	viper.SetDefault("CRON_STOCK_PRICE", "")
	viper.SetDefault("SYNC_BATCH_SIZE", 200)
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("LOG_LEVEL", "info")

	httpTimeout, err := time.ParseDuration(viper.GetString("HTTP_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Odoo: OdooConfig{
			URL:      viper.GetString("ODOO_URL"),
			Database: viper.GetString("ODOO_DB"),
			Login:    viper.GetString("ODOO_LOGIN"),
			APIKey:   viper.GetString("ODOO_API_KEY"),
			Timeout:  httpTimeout,
		},
		Woo: WooConfig{
			URL:            viper.GetString("WOO_URL"),
			ConsumerKey:    viper.GetString("WOO_CONSUMER_KEY"),
			ConsumerSecret: viper.GetString("WOO_CONSUMER_SECRET"),
			Timeout:        httpTimeout,
		},
		Webhook: WebhookConfig{
			Secret: viper.GetString("WOO_WEBHOOK_SECRET"),
		},
		Storage: StorageConfig{
			Path: viper.GetString("DB_PATH"),
		},
		Sync: SyncConfig{
			Schedule:  viper.GetString("CRON_STOCK_PRICE"),
			BatchSize: viper.GetInt("SYNC_BATCH_SIZE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
