package transcribe

import (
	"errors"
	"fmt"
)

// MaxUploadBytes is the speech service's upload ceiling (25 MiB).
const MaxUploadBytes = 25 * 1024 * 1024

// ErrFileNotFound means the video file referenced by an interview does not
// exist in the media store. Checked before any upload is attempted.
var ErrFileNotFound = errors.New("video file not found")

// ErrRunInProgress means a pipeline run for the same interview is already
// in flight. The caller should wait for it to reach a terminal status.
var ErrRunInProgress = errors.New("transcription already in progress for this interview")

// FileTooLargeError means the video exceeds MaxUploadBytes. Like
// ErrFileNotFound it is raised from file metadata alone; no partial upload
// happens.
type FileTooLargeError struct {
	Size int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("video file is %d bytes, over the %d MiB limit; try recording a shorter interview",
		e.Size, MaxUploadBytes/(1024*1024))
}

// ServiceError is a non-success response from the speech service. Message
// is the service's own error.message when the body carried one, otherwise
// a generic status-coded message.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// TransportError is a network-level failure talking to the speech service,
// including the client-side upload timeout. It follows the same failure
// path as ServiceError.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "speech service request: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
