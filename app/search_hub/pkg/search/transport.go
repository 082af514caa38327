package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "search_hub/1.0"
	maxErrorBody   = 4 << 10
)

// Transport provider 共用的 HTTP 客户端，带限流
type Transport struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewTransport 创建 HTTP transport；limiter 为 nil 时不限流
func NewTransport(timeout time.Duration, limiter *rate.Limiter) *Transport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Transport{
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// NewLimiter 按 RPM/QPS 创建限流器，RPM 为 0 时不限流
func NewLimiter(rpm, qps int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if qps <= 0 {
		qps = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps)
}

// GetJSON 发起 GET 请求并解码响应
func (t *Transport) GetJSON(ctx context.Context, provider, url string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ProviderError{Provider: provider, Err: fmt.Errorf("create request failed: %w", err)}
	}
	return t.do(req, provider, header, out)
}

// PostJSON 以 JSON body 发起 POST 请求并解码响应
func (t *Transport) PostJSON(ctx context.Context, provider, url string, header http.Header, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ProviderError{Provider: provider, Err: fmt.Errorf("marshal request failed: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &ProviderError{Provider: provider, Err: fmt.Errorf("create request failed: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req, provider, header, out)
}

func (t *Transport) do(req *http.Request, provider string, header http.Header, out any) error {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return &ProviderError{Provider: provider, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := t.client.Do(req)
	if err != nil {
		if isOffline(err) {
			err = fmt.Errorf("%w: %v", ErrOffline, err)
		}
		return &ProviderError{Provider: provider, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &ProviderError{
			Provider:   provider,
			StatusCode: res.StatusCode,
			APIMessage: apiMessage(body),
			Err:        fmt.Errorf("unexpected status code: %d", res.StatusCode),
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &ProviderError{Provider: provider, StatusCode: res.StatusCode, Err: fmt.Errorf("decode response failed: %w", err)}
	}
	return nil
}

// apiMessage 从错误响应中提取结构化信息，依次尝试
// message / error.message / error / errors[0]
func apiMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if s, ok := payload["message"].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	switch e := payload["error"].(type) {
	case map[string]any:
		if s, ok := e["message"].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	case string:
		if strings.TrimSpace(e) != "" {
			return strings.TrimSpace(e)
		}
	}
	if list, ok := payload["errors"].([]any); ok && len(list) > 0 {
		if s, ok := list[0].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func isOffline(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return false
}
