package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort            = 3318
	DefaultDebateDuration  = 24 * time.Hour
	DefaultPetitionerRatio = 0.25
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	AdminKeySalt    string
	DebateDuration  time.Duration
	PetitionerRatio float64
}

// ParseFlags reads flags, falling back to the environment and then to an
// optional env file (-env, default .env)
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("agora", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&envFile, "env", ".env", "Env file to load (existing env wins)")

	// Procedure settings
	fs.DurationVar(&cfg.DebateDuration, "debate", 0, "Default debate duration, e.g. 72h")
	fs.Float64Var(&cfg.PetitionerRatio, "ratio", 0, "Share of electors drawn into a petition, in (0, 1]")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// -debate 0 is a real setting, so fallbacks key off whether it was given
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Missing file is fine; godotenv.Load never overrides variables already set
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if !set["debate"] {
		if s := os.Getenv("DEBATE_DURATION"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid DEBATE_DURATION env variable")
			}
			cfg.DebateDuration = d
		} else {
			cfg.DebateDuration = DefaultDebateDuration
		}
	}
	if cfg.DebateDuration < 0 {
		return Config{}, errors.New("debate duration cannot be negative")
	}

	if !set["ratio"] {
		if s := os.Getenv("PETITIONER_RATIO"); s != "" {
			r, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid PETITIONER_RATIO env variable")
			}
			cfg.PetitionerRatio = r
		} else {
			cfg.PetitionerRatio = DefaultPetitionerRatio
		}
	}
	if !(cfg.PetitionerRatio > 0 && cfg.PetitionerRatio <= 1) {
		return Config{}, fmt.Errorf("petitioner ratio must be in (0, 1], got %v", cfg.PetitionerRatio)
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	return cfg, nil
}
