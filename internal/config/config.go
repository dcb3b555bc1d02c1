package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Databases holds the Notion database IDs the dashboard reads from. An
// empty ID means the corresponding collection is not configured; fetch
// code skips the call and serves an empty list instead of erroring.
type Databases struct {
	Accounts string
	Debts    string
	Expenses string
	Incomes  string
	Users    string
}

// Config is the full runtime configuration, assembled once in main and
// passed down explicitly. Nothing below main reads the environment.
type Config struct {
	NotionToken string
	Databases   Databases

	GeminiModel string

	// ReceiptsBucket is the GCS bucket receipt images are staged in before
	// extraction. Empty disables receipt uploads.
	ReceiptsBucket string

	Port string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present (development convenience);
// real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		NotionToken: os.Getenv("NOTION_TOKEN"),
		Databases: Databases{
			Accounts: os.Getenv("NOTION_ACCOUNTS_DB"),
			Debts:    os.Getenv("NOTION_DEBTS_DB"),
			Expenses: os.Getenv("NOTION_EXPENSES_DB"),
			Incomes:  os.Getenv("NOTION_INCOMES_DB"),
			Users:    os.Getenv("NOTION_USERS_DB"),
		},
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		ReceiptsBucket: os.Getenv("RECEIPTS_BUCKET"),
		Port:           os.Getenv("PORT"),
	}

	if cfg.NotionToken == "" {
		return nil, fmt.Errorf("config: NOTION_TOKEN is required")
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}
