package climbsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/aussiebroadwan/climblog/pkg/eventx"
	"github.com/aussiebroadwan/climblog/pkg/idx"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Request sends body as JSON to path and decodes a 2xx response into out.
// A nil body sends no body and a nil out discards the response. Every error
// returned is an *APIError.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindRequest, Message: "request body could not be encoded", Err: err}
		}
		payload = b
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.retries
	}

	var lastErr *APIError
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := c.backoff(ctx, attempt-1); err != nil {
				break
			}
			c.logger.Debug("retrying request", "method", method, "path", path, "attempt", attempt, "err", lastErr)
		}

		lastErr = c.do(ctx, method, path, payload, out)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			break
		}
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out any) *APIError {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return &APIError{Kind: KindRequest, Message: "request could not be created", Err: err}
	}

	reqID := idx.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// The token is read once so the header and the staleness check agree.
	token := c.currentToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(err)
	}

	log := c.logger.With("method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)

	// A 401 is reported as a rejection even when the session has moved on;
	// handleRejection only cleans up what still belongs to token.
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		c.handleRejection(token)
		log.Info("authorization rejected", "fingerprint", cryptox.FingerprintToken(token))
		return errorFromResponse(KindAuthorizationRejected, resp.StatusCode, body)
	}

	if token != "" && c.currentToken() != token {
		log.Debug("discarding response for stale session")
		return &APIError{
			Kind:       KindStaleSession,
			StatusCode: resp.StatusCode,
			Message:    "the session changed while the request was in flight",
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("request failed")
		return errorFromResponse(KindServer, resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Kind:       KindDecode,
			StatusCode: resp.StatusCode,
			Message:    "the server sent a response that could not be read",
			Err:        err,
		}
	}
	return nil
}

// handleRejection ends the session that carried token and announces the
// expiry. Nothing belonging to a newer token is touched, and repeated
// rejections of the same token are handled once.
func (c *Client) handleRejection(token string) {
	fp := cryptox.FingerprintToken(token)

	c.rejectedMu.Lock()
	if c.lastRejected == fp {
		c.rejectedMu.Unlock()
		return
	}
	c.lastRejected = fp
	c.rejectedMu.Unlock()

	// Not tied to the request so a canceled caller still clears the token.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var expired bool
	if exp, ok := c.sessions.(TokenExpirer); ok {
		expired = exp.Expire(ctx, token)
	} else {
		expired = c.forgetStored(ctx, token, fp)
	}
	if !expired {
		c.logger.Debug("rejected token no longer current", "fingerprint", fp)
		return
	}
	if c.notifier != nil {
		c.notifier.Publish(eventx.EventAuthenticationExpired)
	}
}

// forgetStored deletes the stored token if it is still token. It reports
// false only when the store holds a different token, meaning a newer session
// has taken over.
func (c *Client) forgetStored(ctx context.Context, token, fp string) bool {
	if c.store == nil {
		return true
	}
	stored, ok, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn("rejected token lookup failed", "fingerprint", fp, "err", err)
		return true
	}
	if !ok {
		return true
	}
	if stored != token {
		return false
	}
	if err := c.store.Delete(ctx); err != nil {
		c.logger.Warn("rejected token delete failed", "fingerprint", fp, "err", err)
	}
	return true
}

func (c *Client) backoff(ctx context.Context, n int) error {
	if c.retryDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(n) * c.retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryable(e *APIError) bool {
	switch e.Kind {
	case KindNetwork, KindTimeout:
		return true
	case KindServer:
		return e.StatusCode >= 500
	default:
		return false
	}
}

func transportError(err error) *APIError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{Kind: KindTimeout, Message: "the server took too long to respond", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &APIError{Kind: KindNetwork, Message: "the request was canceled", Err: err}
	}
	return &APIError{Kind: KindNetwork, Message: fmt.Sprintf("could not reach the server: %v", unwrapURLError(err)), Err: err}
}

func unwrapURLError(err error) error {
	if inner := errors.Unwrap(err); inner != nil {
		return inner
	}
	return err
}
