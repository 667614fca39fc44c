package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"FaceReporter/pkg/imageproc"
	"FaceReporter/pkg/slack"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	App      AppSection      `yaml:"app"`
	Slack    SlackSection    `yaml:"slack"`
	AWS      AWSSection      `yaml:"aws"`
	Pipeline PipelineSection `yaml:"pipeline"`
	Redis    RedisSection    `yaml:"redis"`
}

type AppSection struct {
	Port      string  `yaml:"port" validate:"required,numeric"`
	Env       string  `yaml:"env"`
	LogLevel  string  `yaml:"logLevel" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	LogDir    string  `yaml:"logDir"`
	RateLimit float64 `yaml:"rateLimit" validate:"gte=0"`
	RateBurst int     `yaml:"rateBurst" validate:"gte=0"`
}

type SlackSection struct {
	AccessToken       string `yaml:"accessToken" validate:"required"`
	VerificationToken string `yaml:"verificationToken"`
	SigningSecret     string `yaml:"signingSecret"`
	APIURL            string `yaml:"apiUrl" validate:"omitempty,url"`
}

type AWSSection struct {
	Region          string `yaml:"region" validate:"required"`
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey" validate:"required_with=AccessKeyID"`
	BucketName      string `yaml:"bucketName" validate:"required"`
}

type PipelineSection struct {
	// MaxFileSize bounds the uploads that are fetched at all; MaxImageSize is
	// the detector's payload budget after reduction.
	MaxFileSize         int64         `yaml:"maxFileSize" validate:"gt=0"`
	MaxImageSize        int           `yaml:"maxImageSize" validate:"gt=0"`
	MaxReduceIterations int           `yaml:"maxReduceIterations" validate:"gt=0"`
	ThumbnailSize       int           `yaml:"thumbnailSize" validate:"gt=0"`
	JPEGQuality         int           `yaml:"jpegQuality" validate:"min=1,max=100"`
	FanOutLimit         int           `yaml:"fanOutLimit" validate:"gte=0"`
	Timeout             time.Duration `yaml:"timeout" validate:"gte=0"`
	DispatchConcurrency int           `yaml:"dispatchConcurrency" validate:"gt=0"`
}

type RedisSection struct {
	Address   string        `yaml:"address"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db" validate:"gte=0"`
	DedupeTTL time.Duration `yaml:"dedupeTtl" validate:"gte=0"`
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		App: AppSection{
			Port:     "3000",
			Env:      "development",
			LogLevel: "info",
		},
		Pipeline: PipelineSection{
			MaxFileSize:         slack.DefaultMaxDownloadBytes,
			MaxImageSize:        imageproc.DefaultMaxImageSize,
			MaxReduceIterations: imageproc.DefaultMaxIterations,
			ThumbnailSize:       imageproc.DefaultThumbnailSize,
			JPEGQuality:         imageproc.DefaultJPEGQuality,
			DispatchConcurrency: 4,
		},
		Redis: RedisSection{
			DedupeTTL: time.Hour,
		},
	}
}

// LoadAppConfig reads the optional YAML file at filePath, applies environment
// overrides and validates the result. An empty filePath skips the file.
func LoadAppConfig(filePath string) (*AppConfig, error) {
	c := defaultAppConfig()

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := NewValidator().Struct(c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &c, nil
}

func (c *AppConfig) applyEnv() error {
	setString(&c.App.Port, "APP_PORT")
	setString(&c.App.Env, "APP_ENV")
	setString(&c.App.LogLevel, "LOG_LEVEL")
	setString(&c.App.LogDir, "LOG_DIR")

	setString(&c.Slack.AccessToken, "SLACK_ACCESS_TOKEN")
	setString(&c.Slack.VerificationToken, "SLACK_VERIFICATION_TOKEN")
	setString(&c.Slack.SigningSecret, "SLACK_SIGNING_SECRET")
	setString(&c.Slack.APIURL, "SLACK_API_URL")

	setString(&c.AWS.Region, "AWS_REGION")
	setString(&c.AWS.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&c.AWS.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	setString(&c.AWS.BucketName, "AWS_BUCKET_NAME")

	setString(&c.Redis.Address, "REDIS_ADDRESS")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	ints := []struct {
		dst *int
		key string
	}{
		{&c.App.RateBurst, "RATE_BURST"},
		{&c.Pipeline.MaxImageSize, "MAX_IMAGE_SIZE"},
		{&c.Pipeline.MaxReduceIterations, "MAX_REDUCE_ITERATIONS"},
		{&c.Pipeline.ThumbnailSize, "THUMBNAIL_SIZE"},
		{&c.Pipeline.JPEGQuality, "JPEG_QUALITY"},
		{&c.Pipeline.FanOutLimit, "FAN_OUT_LIMIT"},
		{&c.Pipeline.DispatchConcurrency, "DISPATCH_CONCURRENCY"},
		{&c.Redis.DB, "REDIS_DB"},
	}
	for _, i := range ints {
		if err := setInt(i.dst, i.key); err != nil {
			return err
		}
	}

	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_FILE_SIZE: %w", err)
		}
		c.Pipeline.MaxFileSize = n
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT: %w", err)
		}
		c.App.RateLimit = f
	}

	if err := setDuration(&c.Pipeline.Timeout, "PIPELINE_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&c.Redis.DedupeTTL, "EVENT_DEDUPE_TTL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func NewValidator() *validator.Validate {
	return validator.New()
}
