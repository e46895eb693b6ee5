package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SherClockHolmes/webpush-go"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTPPort     string
	DatabasePath string
	FrontendURI  string
	PublicSite   string

	AdminUsername string
	AdminPINHash  []byte

	JWTSecret     string
	TokenTTLHours int

	VAPIDKeys *VAPIDKeys
}

type VAPIDKeys struct {
	PublicKey  string
	PrivateKey string
	Subject    string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "rsvp.db"),
		FrontendURI:   getEnv("FRONTEND_URI", "*"),
		PublicSite:    getEnv("PUBLIC_SITE_URL", "http://localhost:3000"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		JWTSecret:     loadOrGenerateJWTSecret(),
		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 72),
	}

	pin := getEnv("ADMIN_PIN", "")
	if pin == "" {
		return nil, fmt.Errorf("ADMIN_PIN is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin PIN: %w", err)
	}
	cfg.AdminPINHash = hash

	vapidKeys, err := loadVAPIDKeys()
	if err != nil {
		return nil, err
	}
	cfg.VAPIDKeys = vapidKeys

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func generateRandomSecret() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

func loadOrGenerateJWTSecret() string {
	// Environment variable has highest priority.
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}

	keysDir := getKeysDirectory()
	secretFile := filepath.Join(keysDir, "jwt-secret.key")

	if secretData, err := os.ReadFile(secretFile); err == nil {
		secret := strings.TrimSpace(string(secretData))
		if secret != "" {
			return secret
		}
	}

	secret := generateRandomSecret()

	// Persist so admin sessions survive a restart. Losing the file only
	// invalidates outstanding tokens, so a write failure is not fatal.
	if err := os.MkdirAll(keysDir, 0700); err == nil {
		os.WriteFile(secretFile, []byte(secret), 0600)
	}

	return secret
}

func loadVAPIDKeys() (*VAPIDKeys, error) {
	subject := getEnv("VAPID_SUBJECT", "mailto:admin@rsvp01.local")

	// Environment variables have highest priority.
	publicKey := os.Getenv("VAPID_PUBLIC_KEY")
	privateKey := os.Getenv("VAPID_PRIVATE_KEY")
	if publicKey != "" && privateKey != "" {
		return &VAPIDKeys{PublicKey: publicKey, PrivateKey: privateKey, Subject: subject}, nil
	}

	keysDir := getKeysDirectory()
	publicKeyFile := filepath.Join(keysDir, "vapid-public.key")
	privateKeyFile := filepath.Join(keysDir, "vapid-private.key")

	if publicKeyData, err := os.ReadFile(publicKeyFile); err == nil {
		if privateKeyData, err := os.ReadFile(privateKeyFile); err == nil {
			return &VAPIDKeys{
				PublicKey:  strings.TrimSpace(string(publicKeyData)),
				PrivateKey: strings.TrimSpace(string(privateKeyData)),
				Subject:    subject,
			}, nil
		}
	}

	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to generate VAPID keys: %w", err)
	}

	if err := os.MkdirAll(keysDir, 0700); err == nil {
		os.WriteFile(publicKeyFile, []byte(publicKey), 0600)
		os.WriteFile(privateKeyFile, []byte(privateKey), 0600)
	}

	return &VAPIDKeys{PublicKey: publicKey, PrivateKey: privateKey, Subject: subject}, nil
}

func getKeysDirectory() string {
	// Keys live next to the executable so the deployment stays
	// self-contained.
	execPath, err := os.Executable()
	if err != nil {
		return "keys"
	}
	return filepath.Join(filepath.Dir(execPath), "keys")
}
