package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"docassist/internal/observability"
)

const DefaultSystemPreamble = "You are a helpful assistant. " +
	"I will provide you with raw text extracted from scanned documents. " +
	"Your goal is to answer questions strictly based on this context. " +
	"Here is the document content:\n\n"

type Config struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	ChatDir        string `yaml:"chat_dir"`
	SystemPreamble string `yaml:"system_preamble"`
	MaxTokens      int    `yaml:"max_tokens"`
	TessdataPrefix string `yaml:"tessdata_prefix"`
	PDFDPI         int    `yaml:"pdf_dpi"`
	LogLevel       string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		BaseURL:        "http://localhost:11434/v1",
		APIKey:         "ollama",
		Model:          "llama3",
		ChatDir:        "saved_chats",
		SystemPreamble: DefaultSystemPreamble,
		PDFDPI:         200,
		LogLevel:       "warn",
	}
}

// Load layers configuration: built-in defaults, then the YAML file named by
// yamlPath or DOCASSIST_CONFIG, then environment variables (a .env file at
// envPath only fills variables that are unset or empty).
func Load(envPath, yamlPath string) (Config, error) {
	if err := loadDotEnv(envPath); err != nil && !os.IsNotExist(err) {
		observability.Logger().Warn("could not read .env", "path", envPath, "err", err)
	}

	cfg := Default()

	if yamlPath == "" {
		yamlPath = os.Getenv("DOCASSIST_CONFIG")
	}
	if yamlPath != "" {
		if err := loadYAML(yamlPath, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.BaseURL = getenvDefault("OPENAI_BASE_URL", cfg.BaseURL)
	cfg.APIKey = getenvDefault("OPENAI_API_KEY", cfg.APIKey)
	cfg.Model = getenvDefault("DOCASSIST_MODEL", cfg.Model)
	cfg.ChatDir = getenvDefault("DOCASSIST_CHAT_DIR", cfg.ChatDir)
	cfg.SystemPreamble = getenvDefault("DOCASSIST_SYSTEM_PREAMBLE", cfg.SystemPreamble)
	cfg.MaxTokens = getenvIntDefault("DOCASSIST_MAX_TOKENS", cfg.MaxTokens)
	cfg.TessdataPrefix = getenvDefault("DOCASSIST_TESSDATA_PREFIX", cfg.TessdataPrefix)
	cfg.PDFDPI = getenvIntDefault("DOCASSIST_PDF_DPI", cfg.PDFDPI)
	cfg.LogLevel = getenvDefault("DOCASSIST_LOG_LEVEL", cfg.LogLevel)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if strings.TrimSpace(c.ChatDir) == "" {
		return fmt.Errorf("chat directory is required")
	}
	if c.PDFDPI <= 0 {
		return fmt.Errorf("pdf dpi must be positive, got %d", c.PDFDPI)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative, got %d", c.MaxTokens)
	}
	return nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		observability.Logger().Warn("invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
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
		key, val, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if cur, exists := os.LookupEnv(key); !exists || cur == "" {
			_ = os.Setenv(key, val)
		}
	}
	return scanner.Err()
}

func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, val, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	val = strings.Trim(strings.TrimSpace(val), `"'`)
	if key == "" {
		return "", "", false
	}
	return key, val, true
}
