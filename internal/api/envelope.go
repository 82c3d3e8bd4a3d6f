package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rendevo/client-go/internal/apierrors"
)

// timestampLayout matches the millisecond ISO-8601 form the API emits.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

const defaultErrorMessage = "An error occurred"

// Envelope is the normalized shape of every successful response.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// Decode unmarshals the envelope data into v. A nil v discards the data.
func (e *Envelope) Decode(v any) error {
	if v == nil || len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// response is what a single attempt hands to normalize.
type response struct {
	method      string
	path        string
	statusCode  int
	contentType string
	body        []byte
}

// normalize turns a raw response into an envelope or one of the
// apierrors types. Exactly one of the two return values is non-nil.
func normalize(r response, now time.Time) (*Envelope, error) {
	stamp := now.UTC().Format(timestampLayout)

	if r.statusCode == http.StatusNoContent {
		return &Envelope{Success: true, Data: json.RawMessage("null"), Timestamp: stamp}, nil
	}

	if !isJSONContentType(r.contentType) {
		return nil, &apierrors.ResponseFormatError{Endpoint: r.path, ContentType: r.contentType}
	}

	body := bytes.TrimSpace(r.body)
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &apierrors.ResponseFormatError{
			Endpoint:    r.path,
			ContentType: r.contentType,
			Err:         fmt.Errorf("decode response body: %w", err),
		}
	}
	fields, _ := decoded.(map[string]any)

	if r.statusCode < 200 || r.statusCode > 299 {
		return nil, errorFromBody(r, decoded, fields, stamp)
	}

	if isErrorShaped(fields) {
		payload := errorPayload(fields)
		return nil, apierrors.NewAPIError(payload.StatusCode, payload)
	}

	if isEnvelope(fields) {
		var env Envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, &apierrors.ResponseFormatError{
				Endpoint:    r.path,
				ContentType: r.contentType,
				Err:         fmt.Errorf("decode envelope: %w", err),
			}
		}
		return &env, nil
	}

	return &Envelope{Success: true, Data: json.RawMessage(body), Timestamp: stamp}, nil
}

func errorFromBody(r response, decoded any, fields map[string]any, stamp string) error {
	if hasKeys(fields, "message", "statusCode") {
		return apierrors.NewAPIError(r.statusCode, errorPayload(fields))
	}

	message := defaultErrorMessage
	if s, ok := decoded.(string); ok && s != "" {
		message = s
	}
	return apierrors.NewAPIError(r.statusCode, apierrors.ErrorPayload{
		Success:    false,
		StatusCode: r.statusCode,
		Timestamp:  stamp,
		Path:       r.path,
		Method:     r.method,
		Message:    message,
	})
}

// errorPayload reads an error-shaped object. Validation failures carry a
// list of messages, which are joined into one.
func errorPayload(fields map[string]any) apierrors.ErrorPayload {
	p := apierrors.ErrorPayload{}
	if v, ok := fields["statusCode"].(float64); ok {
		p.StatusCode = int(v)
	}
	p.Timestamp, _ = fields["timestamp"].(string)
	p.Path, _ = fields["path"].(string)
	p.Method, _ = fields["method"].(string)

	switch m := fields["message"].(type) {
	case string:
		p.Message = m
	case []any:
		parts := make([]string, 0, len(m))
		for _, item := range m {
			parts = append(parts, fmt.Sprint(item))
		}
		p.Message = strings.Join(parts, "; ")
	case nil:
		p.Message = defaultErrorMessage
	default:
		p.Message = fmt.Sprint(m)
	}
	return p
}

func isEnvelope(fields map[string]any) bool {
	return hasKeys(fields, "success", "data", "timestamp")
}

func isErrorShaped(fields map[string]any) bool {
	success, ok := fields["success"].(bool)
	return ok && !success && hasKeys(fields, "statusCode", "message")
}

func hasKeys(fields map[string]any, keys ...string) bool {
	if fields == nil {
		return false
	}
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return false
		}
	}
	return true
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
