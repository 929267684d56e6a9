package client

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/callixhq/callix/config"
	"github.com/callixhq/callix/template"
	"github.com/callixhq/callix/trace"
)

// methods is the fixed set of supported HTTP methods.
var methods = map[string]string{
	"GET":     http.MethodGet,
	"POST":    http.MethodPost,
	"PUT":     http.MethodPut,
	"DELETE":  http.MethodDelete,
	"PATCH":   http.MethodPatch,
	"HEAD":    http.MethodHead,
	"OPTIONS": http.MethodOptions,
}

// resolveMethod matches an endpoint's method string case-insensitively
// against the supported set.
func resolveMethod(method string) (string, error) {
	if m, ok := methods[strings.ToUpper(method)]; ok {
		return m, nil
	}
	return "", NewInvalidMethodError(method)
}

// RequestDescriptor is a fully resolved request: every template rendered,
// nothing left to substitute. Rendering happens once, before the retry
// loop, so all attempts send an identical descriptor.
type RequestDescriptor struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
	HasBody bool
}

// RequestBuilder accumulates variables and extra headers for one call
// against a provider endpoint. It is call-local and not safe for concurrent
// use; issue one builder per request.
type RequestBuilder struct {
	client   *Client
	provider config.Provider
	endpoint config.Endpoint
	vars     template.Vars
	headers  map[string]string
	varErr   error
}

// Var attaches a named variable, converting any Go value through its JSON
// form. A conversion failure is remembered and surfaced by Send; the chain
// stays fluent. Writing a name twice keeps the last value.
func (b *RequestBuilder) Var(key string, value any) *RequestBuilder {
	v, err := template.From(value)
	if err != nil {
		if b.varErr == nil {
			b.varErr = NewVariableError(key, err)
		}
		return b
	}
	b.vars[key] = v
	return b
}

// VarValue attaches an already-constructed template value.
func (b *RequestBuilder) VarValue(key string, value template.Value) *RequestBuilder {
	b.vars[key] = value
	return b
}

// Vars attaches every entry of the given variable set.
func (b *RequestBuilder) Vars(vars template.Vars) *RequestBuilder {
	for key, value := range vars {
		b.vars[key] = value
	}
	return b
}

// Header attaches an extra header sent as-is. Extra headers take precedence
// over rendered provider headers on collision.
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.headers[key] = value
	return b
}

// assemble resolves the endpoint into a RequestDescriptor. The first
// failure aborts; no partial descriptor is returned and no transport call
// is made.
func (b *RequestBuilder) assemble() (*RequestDescriptor, error) {
	method, err := resolveMethod(b.endpoint.Method)
	if err != nil {
		return nil, err
	}

	url, err := b.buildURL()
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(b.client.cfg.DefaultHeaders)+len(b.provider.Headers)+len(b.headers))
	for key, value := range b.client.cfg.DefaultHeaders {
		headers[key] = value
	}
	for key, tmpl := range b.provider.Headers {
		rendered, err := template.Render(tmpl, b.vars)
		if err != nil {
			return nil, err
		}
		headers[key] = rendered
	}
	for key, value := range b.headers {
		headers[key] = value
	}

	desc := &RequestDescriptor{
		Method:  method,
		URL:     url,
		Headers: headers,
	}

	if b.endpoint.BodyTemplate != "" {
		body, err := template.Render(b.endpoint.BodyTemplate, b.vars)
		if err != nil {
			return nil, err
		}
		desc.Body = body
		desc.HasBody = true
	}

	return desc, nil
}

// buildURL concatenates the provider base URL with the rendered path and
// appends rendered query parameters. Parameter values are not URL-escaped;
// templates are expected to supply already-safe values. Keys are appended
// in sorted order so a single assembly is deterministic.
func (b *RequestBuilder) buildURL() (string, error) {
	path, err := template.Render(b.endpoint.Path, b.vars)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(b.provider.BaseURL)
	sb.WriteString(path)

	if len(b.endpoint.QueryParams) > 0 {
		keys := make([]string, 0, len(b.endpoint.QueryParams))
		for key := range b.endpoint.QueryParams {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		sb.WriteByte('?')
		for i, key := range keys {
			value, err := template.Render(b.endpoint.QueryParams[key], b.vars)
			if err != nil {
				return "", err
			}
			if i > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(key)
			sb.WriteByte('=')
			sb.WriteString(value)
		}
	}

	return sb.String(), nil
}

// Send assembles the request and drives it through the retry executor.
// Assembly failures (missing variable, invalid method) are returned
// immediately and never retried; only transport-level failures consume the
// retry budget. HTTP error statuses are a successful send.
func (b *RequestBuilder) Send(ctx context.Context) (*Response, error) {
	if b.varErr != nil {
		return nil, b.varErr
	}

	desc, err := b.assemble()
	if err != nil {
		return nil, err
	}

	if b.client.traceHeader != "" {
		if _, ok := desc.Headers[b.client.traceHeader]; !ok {
			desc.Headers[b.client.traceHeader] = trace.EnsureRequestID(ctx)
		}
	}

	if b.provider.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.provider.Timeout)
		defer cancel()
	}

	exec := newExecutor(b.client)
	return exec.run(ctx, desc)
}
