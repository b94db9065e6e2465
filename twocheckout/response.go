package twocheckout

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// unwrap decodes a gateway response. The raw exchange is logged first, then
// the envelope is inspected in the documented order: errors, warnings,
// response_code, and finally the transport status. A decodable envelope
// error wins over a non-200 status.
func (c *Client) unwrap(req *http.Request, resp *http.Response) (map[string]any, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Str("response", string(body)).
		Msg("gateway_exchange")

	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return nil, ErrMalformedResponse
	}

	if err := envelopeError(payload); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{Status: resp.StatusCode}
	}

	return payload, nil
}

// envelopeError inspects the diagnostic keys every Admin API reply carries.
// Only the first entry of errors or warnings is surfaced; callers depend on
// receiving that single code, so nothing is aggregated.
func envelopeError(payload map[string]any) error {
	if msg, ok := firstEnvelopeMessage(payload["errors"]); ok {
		return &APIError{Code: msg.code, Message: msg.message}
	}
	if msg, ok := firstEnvelopeMessage(payload["warnings"]); ok {
		return &APIWarningError{Code: msg.code, Message: msg.message}
	}
	if code, ok := payload["response_code"].(string); ok && code != "OK" {
		message, _ := payload["response_message"].(string)
		return &APIResponseError{Code: code, Message: message}
	}
	return nil
}

type envelopeMessage struct {
	code    string
	message string
}

func firstEnvelopeMessage(v any) (envelopeMessage, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return envelopeMessage{}, false
	}
	entry, _ := list[0].(map[string]any)
	return envelopeMessage{
		code:    stringValue(entry["code"]),
		message: stringValue(entry["message"]),
	}, true
}

// stringValue tolerates the gateway emitting numeric codes as JSON numbers.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
