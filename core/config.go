package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every externally-configured value. The API base URL is a
// single value here on purpose: pages must never hardcode their own origin.
type Config struct {
	Env      string
	Debug    bool
	TestMode bool
	AppName  string
	Build    string

	// APIBaseURL is the origin of the REST backend, eg "https://api.careerpath.in".
	APIBaseURL string

	// APIToken, when set, restores an existing session at startup.
	APIToken string

	RollbarToken string
}

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and the environment (prefixed with ENV, eg DEV_APIBASEURL).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "CareerPath")
	conf.SetDefault("apiBaseUrl", "http://localhost:5000")
	conf.SetDefault("apiToken", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("build", "dev")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     env == "TEST",
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		APIBaseURL:   strings.TrimRight(conf.GetString("apiBaseUrl"), "/"),
		APIToken:     conf.GetString("apiToken"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
}
