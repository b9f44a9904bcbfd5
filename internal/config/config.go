package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	TemplateDir   string
	PageSize      int
	MaxBodyBytes  int
	AdminUser     string
	AdminPassword string

	// Invalid lists env keys whose values were ignored in favour of defaults.
	Invalid []string
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int, invalid *[]string) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		*invalid = append(*invalid, key)
		return def
	}
	return n
}

func Load() Config {
	var invalid []string
	return Config{
		Port:          env("PORT", "8080"),
		DBDSN:         env("DB_DSN", "gamestore.db"), // sqlite file in project root
		LogFile:       env("LOG_FILE", "./gamestore.log"),
		TemplateDir:   env("TEMPLATE_DIR", "./web/templates"),
		PageSize:      envInt("PAGE_SIZE", 4, &invalid),
		MaxBodyBytes:  envInt("MAX_BODY_BYTES", 1<<20, &invalid),
		AdminUser:     env("ADMIN_USER", "admin"),
		AdminPassword: env("ADMIN_PASSWORD", "Passw0rd!"),
		Invalid:       invalid,
	}
}

// Log reports the loaded config. Call it once the log output is final.
func (c Config) Log(l logrus.FieldLogger) {
	for _, key := range c.Invalid {
		l.WithField("key", key).Warn("[config] ignoring invalid value")
	}
	l.WithFields(logrus.Fields{
		"port":      c.Port,
		"db_dsn":    c.DBDSN,
		"log_file":  c.LogFile,
		"templates": c.TemplateDir,
		"page_size": c.PageSize,
	}).Info("[config] loaded")
}
