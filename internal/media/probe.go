package media

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// ProbeDuration 用 ffprobe 探测视频时长（秒）
// 媒体托管侧不提供时长，上传前在本地探测一次
func ProbeDuration(videoFile string) (float64, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		videoFile,
	}

	cmd := exec.Command("ffprobe", args...)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var data struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}

	if err := json.Unmarshal(output, &data); err != nil {
		return 0, err
	}

	if data.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe returned no duration for %s", videoFile)
	}

	duration, err := strconv.ParseFloat(data.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", data.Format.Duration, err)
	}

	return duration, nil
}
