package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, parsed from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8091"`

	// Auth
	APIKey string `env:"MEDTIMELINE_API_KEY"`

	// Output
	OutputDir string `env:"OUTPUT_DIR" envDefault:"./output"`

	// Worker pool
	WorkerCount  int `env:"WORKER_COUNT" envDefault:"4"`
	MaxQueueSize int `env:"MAX_QUEUE_SIZE" envDefault:"100"`

	// Upload limits
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"` // 100MB

	// Job state
	JobTTL time.Duration `env:"JOB_TTL" envDefault:"1h"`

	// Segmentation
	MinSegmentLength int      `env:"MIN_SEGMENT_LENGTH" envDefault:"50"`
	MaxSegmentLength int      `env:"MAX_SEGMENT_LENGTH" envDefault:"2000"`
	MedicalSections  []string `env:"MEDICAL_SECTIONS" envSeparator:","`
	DatePatterns     []string `env:"DATE_PATTERNS" envSeparator:";"`

	// Timeline builder
	MaxChunkTokens int `env:"MAX_CHUNK_TOKENS" envDefault:"4000"`

	// PDF
	PDFFallbackPdftotext bool `env:"PDF_FALLBACK_PDFTOTEXT" envDefault:"true"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 104857600
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}
	if cfg.MinSegmentLength <= 0 {
		cfg.MinSegmentLength = 50
	}
	if cfg.MaxSegmentLength <= 0 {
		cfg.MaxSegmentLength = 2000
	}
	if cfg.MaxChunkTokens <= 0 {
		cfg.MaxChunkTokens = 4000
	}

	return cfg, nil
}

// Validate checks settings that the HTTP server cannot run without.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("MEDTIMELINE_API_KEY is required")
	}
	return nil
}
