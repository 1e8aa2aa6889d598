package service

import (
	"os"
	"path/filepath"
	"testing"

	"vidtube/internal/config"
	"vidtube/pkg/logger"
)

const testConfigYAML = `
app:
  name: vidtube-test
  version: test
  mode: test
  port: 0
  dedup_watch_history: true
jwt:
  access_secret: test-access-secret
  refresh_secret: test-refresh-secret
  access_expire_min: 30
  refresh_expire_days: 7
upload:
  temp_dir: /tmp/vidtube-test
  max_video_mb: 500
  max_image_mb: 10
  video_bucket: test-videos
  image_bucket: test-images
log:
  level: error
  format: json
  output: stdout
`

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "vidtube-config")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o644); err != nil {
		panic(err)
	}
	if _, err := config.Load(path); err != nil {
		panic(err)
	}
	if err := logger.Init("error", "json", "stdout", ""); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}
