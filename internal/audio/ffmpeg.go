package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// FFmpegTranscoder encodes raw speech to mono MP3 by piping it through ffmpeg.
type FFmpegTranscoder struct {
	binary  string
	bitrate string
}

func NewFFmpegTranscoder(binary, bitrate string) *FFmpegTranscoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	if bitrate == "" {
		bitrate = "64k"
	}
	return &FFmpegTranscoder{binary: binary, bitrate: bitrate}
}

func (t *FFmpegTranscoder) Transcode(ctx context.Context, raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("transcode: empty input")
	}
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vn",
		"-ac", "1",
		"-c:a", "libmp3lame",
		"-b:a", t.bitrate,
		"-f", "mp3",
		"pipe:1",
	}
	cmd := commandContext(ctx, t.binary, args...) //nolint:gosec
	cmd.Stdin = bytes.NewReader(raw)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg transcode: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg transcode: no output")
	}
	return stdout.Bytes(), nil
}
