package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/littleyear/iv-engine/internal/media"
)

// Transcriber is the speech-to-text dependency of the orchestrator.
type Transcriber interface {
	Transcribe(ctx context.Context, videoKey, apiKey string) ([]Segment, error)
}

// WhisperClient uploads a recording to an OpenAI-compatible
// /v1/audio/transcriptions endpoint and returns segment-level timestamps.
// The video is an opaque payload; no decoding happens here.
type WhisperClient struct {
	url   string
	model string
	files media.Store
	httpc *http.Client
}

// NewWhisperClient creates a transcription client. timeout bounds the whole
// upload/response cycle; hitting it surfaces as a TransportError.
func NewWhisperClient(url, model string, files media.Store, timeout time.Duration) *WhisperClient {
	return &WhisperClient{
		url:   url,
		model: model,
		files: files,
		httpc: &http.Client{Timeout: timeout},
	}
}

// verboseResponse is the verbose_json payload. Only segments are consumed.
type verboseResponse struct {
	Segments []Segment `json:"segments"`
}

type serviceErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe validates the file by metadata (existence, 25 MiB ceiling),
// then performs a single multipart upload. Failures map onto the client's
// error taxonomy: ErrFileNotFound, FileTooLargeError, TransportError,
// ServiceError.
func (c *WhisperClient) Transcribe(ctx context.Context, videoKey, apiKey string) ([]Segment, error) {
	info, err := c.files.Stat(ctx, videoKey)
	if err != nil {
		return nil, fmt.Errorf("inspect video file: %w", err)
	}
	if !info.Exists {
		return nil, ErrFileNotFound
	}
	if info.Size > MaxUploadBytes {
		return nil, &FileTooLargeError{Size: info.Size}
	}

	f, err := c.files.Open(ctx, videoKey)
	if err != nil {
		return nil, fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", path.Base(videoKey))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy video data: %w", err)
	}

	w.WriteField("model", c.model)
	w.WriteField("response_format", "verbose_json")
	w.WriteField("timestamp_granularities", "segment")
	w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var eb serviceErrorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error.Message != "" {
			return nil, &ServiceError{StatusCode: resp.StatusCode, Message: eb.Error.Message}
		}
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("speech service error (%d)", resp.StatusCode),
		}
	}

	var result verboseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode transcription response: %w", err)
	}
	if result.Segments == nil {
		result.Segments = []Segment{}
	}
	return result.Segments, nil
}
