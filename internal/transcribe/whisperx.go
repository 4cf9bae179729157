package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, stderr.String())
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// WhisperXEngine runs a whisperx-style CLI and parses its JSON output.
type WhisperXEngine struct {
	bin    string
	runner commandRunner
}

func NewWhisperXEngine(bin string) *WhisperXEngine {
	return &WhisperXEngine{bin: bin, runner: execRunner{}}
}

var _ Engine = (*WhisperXEngine)(nil)

func (e *WhisperXEngine) Transcribe(ctx context.Context, req Request) (*RawResult, error) {
	args := []string{
		req.AudioPath,
		"--model", req.Model,
		"--chunk_size", strconv.Itoa(req.ChunkSize),
		"--vad_onset", strconv.FormatFloat(req.VADOnset, 'f', -1, 64),
		"--vad_offset", strconv.FormatFloat(req.VADOffset, 'f', -1, 64),
		"--output_format", "json",
		"--print_json",
	}
	if req.Language != nil && *req.Language != "" {
		args = append(args, "--language", *req.Language)
	}
	if req.Diarize {
		args = append(args, "--diarize")
		if req.MinSpeakers != nil {
			args = append(args, "--min_speakers", strconv.Itoa(*req.MinSpeakers))
		}
		if req.MaxSpeakers != nil {
			args = append(args, "--max_speakers", strconv.Itoa(*req.MaxSpeakers))
		}
	}

	out, err := e.runner.Run(ctx, e.bin, args...)
	if err != nil {
		return nil, err
	}

	var raw RawResult
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parse %s output: %w", e.bin, err)
	}
	return &raw, nil
}
