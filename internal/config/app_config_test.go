package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func requiredEnv(t *testing.T) {
	t.Setenv("SLACK_ACCESS_TOKEN", "xoxb-test")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_BUCKET_NAME", "thumbs")
}

func TestLoadAppConfigDefaults(t *testing.T) {
	requiredEnv(t)

	c, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	if c.Pipeline.MaxImageSize != 5000000 {
		t.Errorf("MaxImageSize = %d, want 5000000", c.Pipeline.MaxImageSize)
	}
	if c.Pipeline.MaxFileSize != 64<<20 {
		t.Errorf("MaxFileSize = %d, want %d", c.Pipeline.MaxFileSize, 64<<20)
	}
	if c.Pipeline.MaxReduceIterations != 10 || c.Pipeline.ThumbnailSize != 72 {
		t.Errorf("pipeline defaults = %+v", c.Pipeline)
	}
	if c.App.Port != "3000" || c.Redis.DedupeTTL != time.Hour {
		t.Errorf("app = %+v, redis = %+v", c.App, c.Redis)
	}
}

func TestLoadAppConfigFileAndEnv(t *testing.T) {
	requiredEnv(t)
	t.Setenv("THUMBNAIL_SIZE", "96")
	t.Setenv("PIPELINE_TIMEOUT", "45s")
	t.Setenv("MAX_FILE_SIZE", "1048576")

	path := writeConfig(t, `
app:
  port: "8080"
slack:
  verificationToken: from-file
aws:
  region: us-east-1
pipeline:
  thumbnailSize: 48
  fanOutLimit: 3
  timeout: 10s
redis:
  address: localhost:6379
`)

	c, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}

	if c.App.Port != "8080" || c.Slack.VerificationToken != "from-file" {
		t.Errorf("file values not applied: %+v %+v", c.App, c.Slack)
	}
	if c.AWS.Region != "eu-west-1" {
		t.Errorf("Region = %q, env must win over the file", c.AWS.Region)
	}
	if c.Pipeline.ThumbnailSize != 96 || c.Pipeline.FanOutLimit != 3 || c.Pipeline.Timeout != 45*time.Second {
		t.Errorf("pipeline = %+v", c.Pipeline)
	}
	if c.Pipeline.MaxImageSize != 5000000 {
		t.Errorf("MaxImageSize = %d, default lost", c.Pipeline.MaxImageSize)
	}
	if c.Pipeline.MaxFileSize != 1048576 {
		t.Errorf("MaxFileSize = %d, want 1048576", c.Pipeline.MaxFileSize)
	}
}

func TestLoadAppConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "missing bucket", env: map[string]string{"AWS_BUCKET_NAME": ""}},
		{name: "bad int", env: map[string]string{"MAX_IMAGE_SIZE": "five"}},
		{name: "bad file size", env: map[string]string{"MAX_FILE_SIZE": "big"}},
		{name: "negative file size", env: map[string]string{"MAX_FILE_SIZE": "-1"}},
		{name: "zero budget", env: map[string]string{"MAX_IMAGE_SIZE": "0"}},
		{name: "bad duration", env: map[string]string{"PIPELINE_TIMEOUT": "soon"}},
		{name: "quality out of range", env: map[string]string{"JPEG_QUALITY": "101"}},
		{name: "secret without key", env: map[string]string{"AWS_ACCESS_KEY_ID": "AKIA", "AWS_SECRET_ACCESS_KEY": ""}},
		{name: "bad yaml", file: "app: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			if _, err := LoadAppConfig(path); err == nil {
				t.Fatal("LoadAppConfig() error = nil, want error")
			}
		})
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	requiredEnv(t)
	if _, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadAppConfig() error = nil for a missing file")
	}
}
