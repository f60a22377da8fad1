package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverFile  = "file"
	DriverMongo = "mongo"
)

type Config struct {
	Port           string
	StorageDriver  string
	IdeasFile      string
	EmployeesFile  string
	AllowedOrigins []string
	Mongo          struct {
		URI        string
		DBName     string
		Collection string
	}
	Log struct {
		Level string
		File  string
	}
	Notify struct {
		ResendAPIKey string
		FromEmail    string
		To           []string
	}
}

// Load reads configuration from the environment. Call godotenv.Load first
// to pick up a local .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	cfg.Port = v.GetString("PORT")
	cfg.StorageDriver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	cfg.IdeasFile = v.GetString("IDEAS_FILE")
	cfg.EmployeesFile = v.GetString("EMPLOYEES_FILE")
	cfg.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.Mongo.URI = v.GetString("MONGODB_URI")
	cfg.Mongo.DBName = v.GetString("DB_NAME")
	cfg.Mongo.Collection = v.GetString("MONGO_COLLECTION")

	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.File = v.GetString("LOG_FILE")

	cfg.Notify.ResendAPIKey = v.GetString("RESEND_API_KEY")
	cfg.Notify.FromEmail = v.GetString("FROM_EMAIL")
	cfg.Notify.To = splitList(v.GetString("NOTIFY_EMAIL_TO"))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EmailEnabled reports whether new ideas should be announced by email.
func (c *Config) EmailEnabled() bool {
	return c.Notify.ResendAPIKey != "" && len(c.Notify.To) > 0
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORAGE_DRIVER", DriverFile)
	v.SetDefault("IDEAS_FILE", "data/ideas.json")
	v.SetDefault("EMPLOYEES_FILE", "data/employees.json")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_NAME", "idea_portal")
	v.SetDefault("MONGO_COLLECTION", "ideas")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FROM_EMAIL", "Idea Portal <ideas@example.com>")
}

func validate(cfg *Config) error {
	switch cfg.StorageDriver {
	case DriverFile:
		if cfg.IdeasFile == "" {
			return fmt.Errorf("IDEAS_FILE is required for the file driver")
		}
	case DriverMongo:
		if cfg.Mongo.URI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.EmployeesFile == "" {
		return fmt.Errorf("EMPLOYEES_FILE is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
