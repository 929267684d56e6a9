package client

import (
	"time"
)

// logRequest emits an info event for an outgoing attempt and, when payload
// logging is enabled, a debug event with headers and a truncated body
// preview.
func (c *Client) logRequest(desc *RequestDescriptor, attempt int) {
	event := c.logger.Info().
		Str("direction", "outbound").
		Str("method", desc.Method).
		Str("url", desc.URL).
		Int("attempt", attempt)

	if id, ok := desc.Headers[c.traceHeader]; ok && c.traceHeader != "" {
		event = event.Str("request_id", id)
	}
	if len(desc.Headers) > 0 {
		event = event.Int("header_count", len(desc.Headers))
	}
	if desc.HasBody {
		event = event.Int("body_size", len(desc.Body))
	}
	event.Msg("REST client request")

	if !c.cfg.LogPayloads {
		return
	}

	limit := c.cfg.MaxPayloadLogBytes
	if limit <= 0 {
		limit = defaultMaxPayloadLogBytes
	}
	preview := desc.Body
	truncated := false
	if len(preview) > limit {
		preview = preview[:limit]
		truncated = true
	}

	debug := c.logger.Debug().
		Str("direction", "outbound").
		Str("method", desc.Method).
		Str("url", desc.URL).
		Interface("headers", desc.Headers)
	if desc.HasBody {
		debug = debug.
			Int("body_size", len(desc.Body)).
			Str("body_truncated", boolString(truncated)).
			Bytes("body_preview", []byte(preview))
	}
	debug.Msg("REST client request")
}

// logResponse emits an info event for a completed attempt.
func (c *Client) logResponse(desc *RequestDescriptor, status int, elapsed time.Duration) {
	c.logger.Info().
		Str("direction", "inbound").
		Str("method", desc.Method).
		Str("url", desc.URL).
		Int("status", status).
		Dur("duration", elapsed).
		Msg("REST client response")
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
