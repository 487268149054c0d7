package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port          string
	RemoteBaseURL string
	SessionDSN    string
	LogFile       string

	// Fixed admin credential pair. The password is kept only as a bcrypt
	// hash; the defaults match the legacy panel and are not a security
	// boundary (the remote store enforces nothing).
	AdminID           string
	AdminPasswordHash string

	// Session token contract: the opaque secret persisted on login and the
	// validity window checked on every protected-route evaluation.
	SessionSecret string
	SessionTTL    time.Duration
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		RemoteBaseURL: getenv("REMOTE_BASE_URL", "https://admin-server-2aht.onrender.com"),
		SessionDSN:    getenv("SESSION_DSN", "nepmartadmin.db"),
		LogFile:       getenv("LOG_FILE", "./nepmartadmin.log"),
		AdminID:       getenv("ADMIN_ID", "admin"),
		SessionSecret: getenv("SESSION_SECRET", "qwerty1!2@3#38"),
		SessionTTL:    24 * time.Hour,
	}

	if h := os.Getenv("ADMIN_PASSWORD_HASH"); h != "" {
		cfg.AdminPasswordHash = h
	} else {
		raw := getenv("ADMIN_PASSWORD", "admin")
		hash, err := bcrypt.GenerateFromPassword([]byte(raw), 12)
		if err != nil {
			log.Fatalf("[config] hash admin password: %v", err)
		}
		cfg.AdminPasswordHash = string(hash)
	}

	log.Printf("[config] PORT=%s REMOTE_BASE_URL=%s SESSION_DSN=%s LOG_FILE=%s",
		cfg.Port, cfg.RemoteBaseURL, cfg.SessionDSN, cfg.LogFile)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
