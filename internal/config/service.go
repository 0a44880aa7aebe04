package config

import "time"

type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	// Timezone localizes timestamps shown in operator messages.
	Timezone string `mapstructure:"timezone"`
}

// TelegramConfig holds the Bot API credentials for the operator channel.
type TelegramConfig struct {
	BotToken    string        `mapstructure:"bot_token"`
	AdminChatID int64         `mapstructure:"admin_chat_id"`
	BaseURL     string        `mapstructure:"base_url"`
	CodePrefix  string        `mapstructure:"code_prefix"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// PaymentConfig carries storefront payment settings.
type PaymentConfig struct {
	// WalletNumber is the mobile wallet customers are told to send money to.
	WalletNumber string `mapstructure:"wallet_number"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Output      string `mapstructure:"output"`
	Development bool   `mapstructure:"development"`
}
