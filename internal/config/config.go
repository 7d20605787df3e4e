package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken string
	StoreDSN string
	HTTPAddr string
}

// Load reads .env if present, then the environment. Everything except
// the bot token has a local-dev default.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		StoreDSN: getenv("STORE_DSN", "root:123456@tcp(127.0.0.1:3306)/taskbot?parseTime=true"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
