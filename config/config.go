package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN renders the settings as a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// SolverConfig carries the IRR solver defaults served by the API.
type SolverConfig struct {
	InitialGuess  float64 `yaml:"initial_guess"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

// Config is the service configuration: YAML file overlaid by environment
// variables.
type Config struct {
	Port             string         `yaml:"port"`
	RedisAddr        string         `yaml:"redis_addr"`
	BondsFile        string         `yaml:"bonds_file"`
	IndexURL         string         `yaml:"index_url"`
	IndexFile        string         `yaml:"index_file"`
	SettlementOffset int            `yaml:"settlement_offset"`
	Database         DatabaseConfig `yaml:"database"`
	Solver           SolverConfig   `yaml:"solver"`
}

// Load reads the YAML file at path (skipped when path is empty or missing)
// and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:             "8080",
		SettlementOffset: 2,
		Database: DatabaseConfig{
			Host: "localhost",
			Port: "5432",
			User: "postgres",
			Name: "finmath",
		},
		Solver: SolverConfig{
			InitialGuess:  0.1,
			Tolerance:     1e-6,
			MaxIterations: 1000,
		},
	}

	if path != "" {
		payload, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(payload, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.BondsFile = getEnv("BONDS_FILE", cfg.BondsFile)
	cfg.IndexURL = getEnv("INDEX_URL", cfg.IndexURL)
	cfg.IndexFile = getEnv("INDEX_FILE", cfg.IndexFile)
	cfg.SettlementOffset = getEnvInt("SETTLEMENT_OFFSET", cfg.SettlementOffset)

	cfg.Database.Host = getEnv("POSTGRES_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("POSTGRES_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("POSTGRES_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("POSTGRES_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("POSTGRES_DB", cfg.Database.Name)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
