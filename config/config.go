package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAnalyzerURL = "http://localhost:5001"
	DefaultDownloadDir = "."
	DefaultLogLevel    = "info"
)

type Config struct {
	TelegramToken string `yaml:"telegram_token"`
	AnalyzerURL   string `yaml:"analyzer_url"`
	CameraDevice  int    `yaml:"camera_device"`
	DownloadDir   string `yaml:"download_dir"`
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл
// (если path не пуст), затем переменные окружения.
func Load(path string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		AnalyzerURL: DefaultAnalyzerURL,
		DownloadDir: DefaultDownloadDir,
		LogLevel:    DefaultLogLevel,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("ANALYZER_URL"); v != "" {
		c.AnalyzerURL = v
	}
	if v := os.Getenv("CAMERA_DEVICE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CAMERA_DEVICE: %w", err)
		}
		c.CameraDevice = n
	}
	if v := os.Getenv("DOWNLOAD_DIR"); v != "" {
		c.DownloadDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.LogFile = v
	}
	return nil
}

// Validate проверяет поля, нужные всем режимам.
func (c *Config) Validate() error {
	if c.AnalyzerURL == "" {
		return errors.New("ANALYZER_URL is required")
	}
	if c.CameraDevice < 0 {
		return fmt.Errorf("camera device must be >= 0, got %d", c.CameraDevice)
	}
	return nil
}
