package tagger

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// MissingFieldError is returned before any remote call when the request
// lacks a required field.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + strings.Join(e.Fields, ", ")
}

// RemoteAPIError wraps a failed CreateTags call. The SDK error is kept
// untouched and remains reachable through errors.As.
type RemoteAPIError struct {
	InstanceID string
	Err        error
}

func (e *RemoteAPIError) Error() string {
	return "tagging " + e.InstanceID + ": " + e.Err.Error()
}

func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

var errEmptyResponse = errors.New("CreateTags returned no response")

// IsErrMissingField reports whether the request was rejected before any remote call.
func IsErrMissingField(err error) bool {
	var mfe *MissingFieldError
	return errors.As(err, &mfe)
}

// IsErrRemoteAPI reports whether CreateTags itself failed.
func IsErrRemoteAPI(err error) bool {
	var rae *RemoteAPIError
	return errors.As(err, &rae)
}

// IsErrInstanceNotFound reports whether EC2 rejected the instance id.
func IsErrInstanceNotFound(err error) bool {
	switch apiErrorCode(err) {
	case "InvalidInstanceID.NotFound", "InvalidInstanceID.Malformed", "InvalidID":
		return true
	}
	return false
}

// IsErrThrottled reports whether EC2 rate-limited the call.
func IsErrThrottled(err error) bool {
	switch apiErrorCode(err) {
	case "RequestLimitExceeded", "Throttling", "ThrottlingException":
		return true
	}
	return false
}

// failureKind labels an invocation failure for the log line.
func failureKind(err error) string {
	switch {
	case IsErrMissingField(err):
		return "missing field"
	case IsErrInstanceNotFound(err):
		return "instance not found"
	case IsErrThrottled(err):
		return "throttled"
	case IsErrRemoteAPI(err):
		return "remote api"
	}
	return "bad request"
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
