package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// EnvPipelineQuality overrides the rasterization DPI.
	EnvPipelineQuality = "PDF_QUALITY"

	// EnvPipelineWorkers overrides the ingestion worker count.
	EnvPipelineWorkers = "PIPELINE_WORKERS"

	// EnvPipelineQueueSize overrides the ingestion queue capacity.
	EnvPipelineQueueSize = "PIPELINE_QUEUE_SIZE"

	// EnvPipelineTimeout overrides the per-document processing timeout.
	EnvPipelineTimeout = "PIPELINE_TIMEOUT"
)

// PipelineConfig contains document ingestion pipeline configuration.
type PipelineConfig struct {
	// Quality is the rasterization resolution in DPI.
	Quality int `toml:"quality"`

	// MaxDimension is the pixel bound above which page images are downscaled.
	MaxDimension int `toml:"max_dimension"`

	// OptimizeQuality is the JPEG quality used when recompressing downscaled pages.
	OptimizeQuality int `toml:"optimize_quality"`

	// ThumbWidth and ThumbHeight bound the generated thumbnail.
	ThumbWidth  int `toml:"thumb_width"`
	ThumbHeight int `toml:"thumb_height"`

	// ThumbQuality is the JPEG quality for thumbnails.
	ThumbQuality int `toml:"thumb_quality"`

	// Workers is the number of concurrent ingestion workers.
	Workers int `toml:"workers"`

	// QueueSize is the capacity of the pending ingestion queue.
	QueueSize int `toml:"queue_size"`

	// Timeout bounds the processing of a single document.
	Timeout string `toml:"timeout"`
}

// TimeoutDuration parses and returns the per-document timeout as a time.Duration.
func (c *PipelineConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the pipeline configuration.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.Quality != 0 {
		c.Quality = overlay.Quality
	}
	if overlay.MaxDimension != 0 {
		c.MaxDimension = overlay.MaxDimension
	}
	if overlay.OptimizeQuality != 0 {
		c.OptimizeQuality = overlay.OptimizeQuality
	}
	if overlay.ThumbWidth != 0 {
		c.ThumbWidth = overlay.ThumbWidth
	}
	if overlay.ThumbHeight != 0 {
		c.ThumbHeight = overlay.ThumbHeight
	}
	if overlay.ThumbQuality != 0 {
		c.ThumbQuality = overlay.ThumbQuality
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.QueueSize != 0 {
		c.QueueSize = overlay.QueueSize
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.Quality == 0 {
		c.Quality = 150
	}
	if c.MaxDimension == 0 {
		c.MaxDimension = 2000
	}
	if c.OptimizeQuality == 0 {
		c.OptimizeQuality = 85
	}
	if c.ThumbWidth == 0 {
		c.ThumbWidth = 300
	}
	if c.ThumbHeight == 0 {
		c.ThumbHeight = 400
	}
	if c.ThumbQuality == 0 {
		c.ThumbQuality = 80
	}
	if c.Workers == 0 {
		c.Workers = 2
	}
	if c.QueueSize == 0 {
		c.QueueSize = 64
	}
	if c.Timeout == "" {
		c.Timeout = "5m"
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineQuality); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Quality = n
		}
	}
	if v := os.Getenv(EnvPipelineWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvPipelineQueueSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.QueueSize = n
		}
	}
	if v := os.Getenv(EnvPipelineTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *PipelineConfig) validate() error {
	if c.Quality < 1 {
		return fmt.Errorf("quality must be positive")
	}
	if c.MaxDimension < 1 {
		return fmt.Errorf("max_dimension must be positive")
	}
	if c.OptimizeQuality < 1 || c.OptimizeQuality > 100 {
		return fmt.Errorf("optimize_quality must be between 1 and 100")
	}
	if c.ThumbWidth < 1 || c.ThumbHeight < 1 {
		return fmt.Errorf("thumbnail dimensions must be positive")
	}
	if c.ThumbQuality < 1 || c.ThumbQuality > 100 {
		return fmt.Errorf("thumb_quality must be between 1 and 100")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
