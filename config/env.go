package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDB       = "menuadmin"
	defaultRedisAddr     = "localhost:6379"
	defaultSessionSecret = "change-me-in-production"
	defaultAppPort       = "8080"
	defaultAppEnv        = "local"
	defaultPublicHost    = "etmenu.vercel.app"
	defaultThemeColor    = "#3B82F6"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"MONGODB_URI":    defaultMongoURI,
		"MONGODB_DB":     defaultMongoDB,
		"REDIS_ADDR":     defaultRedisAddr,
		"REDIS_PASSWORD": "",
		"SESSION_SECRET": defaultSessionSecret,
		"APP_PORT":       defaultAppPort,
		"APP_ENV":        defaultAppEnv,
		"PUBLIC_HOST":    defaultPublicHost,
		"LOG_TO_MONGO":   "false",
		"OPERATOR_USER":  "admin",
		"OPERATOR_PASS":  "",
		"OPERATOR_USER2": "",
		"OPERATOR_PASS2": "",
	}
}

func MongoURI() string {
	_ = Load()
	return get("MONGODB_URI", defaultMongoURI)
}

func MongoDB() string {
	_ = Load()
	return get("MONGODB_DB", defaultMongoDB)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func SessionSecret() string {
	_ = Load()
	return get("SESSION_SECRET", defaultSessionSecret)
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// PublicHost is the host used in shared menu deep links and QR codes.
func PublicHost() string {
	_ = Load()
	return get("PUBLIC_HOST", defaultPublicHost)
}

// DefaultThemeColor is applied when a restaurant is created without one.
func DefaultThemeColor() string {
	return defaultThemeColor
}

func LogToMongo() bool {
	_ = Load()
	return strings.EqualFold(get("LOG_TO_MONGO", "false"), "true")
}

// OperatorCredentials returns the configured username/password pairs.
// Pairs with an empty password are skipped so a half-configured second
// operator cannot log in with a blank password.
func OperatorCredentials() map[string]string {
	_ = Load()

	creds := make(map[string]string, 2)
	if u, p := get("OPERATOR_USER", ""), get("OPERATOR_PASS", ""); u != "" && p != "" {
		creds[u] = p
	}
	if u, p := get("OPERATOR_USER2", ""), get("OPERATOR_PASS2", ""); u != "" && p != "" {
		creds[u] = p
	}
	return creds
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and config/app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
