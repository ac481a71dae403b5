package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // hours
	} `yaml:"jwt"`

	Midtrans struct {
		ServerKey      string `yaml:"server_key"`
		Environment    string `yaml:"environment"` // sandbox, production
		BaseURL        string `yaml:"base_url"`    // overrides the Snap endpoint
		StrictWebhooks bool   `yaml:"strict_webhooks"`
	} `yaml:"midtrans"`

	WhatsApp struct {
		APIURL string `yaml:"api_url"`
		Token  string `yaml:"token"`
	} `yaml:"whatsapp"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`

	Documents struct {
		StorageDir string `yaml:"storage_dir"` // base dir for generated artifacts
		BaseURL    string `yaml:"base_url"`    // public prefix for download links
	} `yaml:"documents"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// Load reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (test mode). The resulting struct is injected into
// components at wiring time; nothing else reads the process environment.
func Load() *Config {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		// yaml leaves absent keys untouched, so defaults that must survive
		// an omitted key are seeded before decoding.
		cfg.Midtrans.StrictWebhooks = true

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		return &cfg
	}

	// Env-var mode
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 168 // 7 days, same as the tokens the original issued

	cfg.Midtrans.ServerKey = os.Getenv("MIDTRANS_SERVER_KEY")
	cfg.Midtrans.Environment = os.Getenv("MIDTRANS_ENVIRONMENT")
	cfg.Midtrans.StrictWebhooks = os.Getenv("MIDTRANS_STRICT_WEBHOOKS") != "false"

	cfg.WhatsApp.APIURL = os.Getenv("WHATSAPP_API_URL")
	cfg.WhatsApp.Token = os.Getenv("WHATSAPP_TOKEN")

	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 168
	}
	if cfg.Midtrans.Environment == "" {
		cfg.Midtrans.Environment = "sandbox"
	}
	if cfg.Documents.StorageDir == "" {
		cfg.Documents.StorageDir = "./storage/documents"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
}
