package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nyralei/scribeq/common"
	"github.com/nyralei/scribeq/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	result  *RawResult
	err     error
	lastReq Request
}

func (f *fakeEngine) Transcribe(ctx context.Context, req Request) (*RawResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func tempAudio(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF fake audio"), 0o644))
	return path
}

func testJob(audioPath string) *models.TranscriptionJob {
	lang := "en"
	minSpk := 1
	maxSpk := 3
	return &models.TranscriptionJob{
		ID:          "job-1",
		AudioPath:   audioPath,
		Model:       "small",
		Language:    &lang,
		Diarize:     true,
		MinSpeakers: &minSpk,
		MaxSpeakers: &maxSpk,
		ChunkSize:   15,
		VADOnset:    0.5,
		VADOffset:   0.363,
	}
}

func TestAdapter_Transcribe(t *testing.T) {
	tests := []struct {
		name     string
		segments string
		want     []Segment
	}{
		{
			name:     "flat segment list",
			segments: `[{"start":0,"end":1,"text":"hello"}]`,
			want:     []Segment{{Start: 0, End: 1, Text: "hello"}},
		},
		{
			name:     "segments nested one level deeper",
			segments: `{"segments":[{"start":0,"end":1,"text":"hello"},{"start":1,"end":2,"text":"world"}]}`,
			want: []Segment{
				{Start: 0, End: 1, Text: "hello"},
				{Start: 1, End: 2, Text: "world"},
			},
		},
		{
			name:     "missing segments",
			segments: "",
			want:     []Segment{},
		},
		{
			name:     "nested without list",
			segments: `{}`,
			want:     []Segment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{
				result: &RawResult{
					Text:     "hello world",
					Language: "en",
					Duration: 2.5,
					Segments: json.RawMessage(tt.segments),
				},
			}
			adapter := NewAdapter(engine)

			result, err := adapter.Transcribe(context.Background(), testJob(tempAudio(t)))
			require.NoError(t, err)
			assert.Equal(t, "hello world", result.Text)
			assert.Equal(t, "en", result.Language)
			assert.InDelta(t, 2.5, result.Duration, 0.001)
			assert.Equal(t, tt.want, result.Segments)
		})
	}
}

func TestAdapter_PassesJobConfiguration(t *testing.T) {
	engine := &fakeEngine{result: &RawResult{Segments: json.RawMessage(`[]`)}}
	adapter := NewAdapter(engine)

	audio := tempAudio(t)
	_, err := adapter.Transcribe(context.Background(), testJob(audio))
	require.NoError(t, err)

	req := engine.lastReq
	assert.Equal(t, audio, req.AudioPath)
	assert.Equal(t, "small", req.Model)
	require.NotNil(t, req.Language)
	assert.Equal(t, "en", *req.Language)
	assert.True(t, req.Diarize)
	require.NotNil(t, req.MinSpeakers)
	assert.Equal(t, 1, *req.MinSpeakers)
	require.NotNil(t, req.MaxSpeakers)
	assert.Equal(t, 3, *req.MaxSpeakers)
	assert.Equal(t, 15, req.ChunkSize)
	assert.InDelta(t, 0.5, req.VADOnset, 0.001)
	assert.InDelta(t, 0.363, req.VADOffset, 0.001)
}

func TestAdapter_EngineFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("model not found")}
	adapter := NewAdapter(engine)

	_, err := adapter.Transcribe(context.Background(), testJob(tempAudio(t)))
	require.Error(t, err)

	var terr *common.TranscriptionError
	require.True(t, errors.As(err, &terr))
	assert.Contains(t, err.Error(), "model not found")
}

func TestAdapter_MissingArtifact(t *testing.T) {
	engine := &fakeEngine{result: &RawResult{}}
	adapter := NewAdapter(engine)

	job := testJob(filepath.Join(t.TempDir(), "gone.wav"))
	_, err := adapter.Transcribe(context.Background(), job)
	require.Error(t, err)

	var aerr *common.ArtifactError
	assert.True(t, errors.As(err, &aerr))
	// The engine must not have been invoked.
	assert.Empty(t, engine.lastReq.AudioPath)
}

func TestAdapter_MalformedSegments(t *testing.T) {
	engine := &fakeEngine{
		result: &RawResult{Segments: json.RawMessage(`"not segments"`)},
	}
	adapter := NewAdapter(engine)

	_, err := adapter.Transcribe(context.Background(), testJob(tempAudio(t)))
	require.Error(t, err)

	var terr *common.TranscriptionError
	assert.True(t, errors.As(err, &terr))
}
