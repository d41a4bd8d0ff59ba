package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rok4/pyramid-core/internal/logging"
	"github.com/rok4/pyramid-core/internal/rerr"
)

// httpStatusError records the response code behind a failed request so
// callers of do, such as exists, can recognize a 404 (spec.md §4.1),
// grounded on SwiftContext.cpp's http_code checks.
type httpStatusError struct {
	code int
	err  error
}

func (e *httpStatusError) Error() string { return e.err.Error() }
func (e *httpStatusError) Unwrap() error { return e.err }

// authenticator is the lazy, re-authenticating credential source shared by
// the S3/Swift/Ceph backends (original_source/src/storage/SwiftContext.cpp
// "connection()"/token-file/keystone flow, generalized past Swift alone).
type authenticator interface {
	// Authenticate returns the current bearer token or signing material,
	// authenticating for the first time if necessary.
	Authenticate(ctx context.Context) (string, error)
	// Reauthenticate forces a fresh credential after a 401/403/400.
	Reauthenticate(ctx context.Context) (string, error)
}

// httpBackend is the shared plumbing for object-store backends reached
// over HTTP: retry-with-backoff reads/writes, a single re-auth attempt on
// 401/403/400, and Go's http.Client as the per-process connection pool
// (the idiomatic replacement for the source library's per-thread libcurl
// handle pool — http.Transport already multiplexes and reuses
// connections safely across goroutines, so no extra pooling layer is
// needed).
type httpBackend struct {
	client       *http.Client
	auth         authenticator
	baseURL      func(container, name string) string
	readAttempts int
	writeAttempts int
	backoff      time.Duration
	log          *logging.Logger
}

func newHTTPBackend(auth authenticator, baseURL func(container, name string) string) *httpBackend {
	return &httpBackend{
		client:        &http.Client{Timeout: 30 * time.Second},
		auth:          auth,
		baseURL:       baseURL,
		readAttempts:  3,
		writeAttempts: 3,
		backoff:       200 * time.Millisecond,
		log:           logging.Default,
	}
}

func (b *httpBackend) do(ctx context.Context, attempts int, build func(token string) (*http.Request, error)) (*http.Response, error) {
	token, err := b.auth.Authenticate(ctx)
	if err != nil {
		return nil, rerr.Wrap(rerr.Storage, "authenticate: %v", err)
	}

	reauthed := false
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := build(token)
		if err != nil {
			return nil, rerr.Wrap(rerr.Storage, "build request: %v", err)
		}
		resp, err := b.client.Do(req)
		if err != nil {
			lastErr = err
			b.log.Warnf("storage request failed (attempt %d/%d): %v", attempt, attempts, err)
			time.Sleep(b.backoff)
			continue
		}

		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusPartialContent {
			return resp, nil
		}

		code := resp.StatusCode
		resp.Body.Close()

		if !reauthed && (code == http.StatusUnauthorized || code == http.StatusForbidden || code == http.StatusBadRequest) {
			reauthed = true
			token, err = b.auth.Reauthenticate(ctx)
			if err != nil {
				return nil, rerr.Wrap(rerr.Storage, "reauthenticate after %d: %v", code, err)
			}
			attempt--
			continue // re-authentication does not count against attempts
		}

		lastErr = &httpStatusError{code: code, err: fmt.Errorf("unexpected status %d", code)}
		time.Sleep(b.backoff)
	}
	if se, ok := lastErr.(*httpStatusError); ok {
		return nil, &httpStatusError{code: se.code, err: rerr.Wrap(rerr.Storage, "after %d attempts: %v", attempts, se)}
	}
	return nil, rerr.Wrap(rerr.Storage, "after %d attempts: %v", attempts, lastErr)
}

func (b *httpBackend) exists(ctx context.Context, container, name string) (bool, error) {
	resp, err := b.do(ctx, 1, func(token string) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, b.baseURL(container, name), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Auth-Token", token)
		return req, nil
	})
	if err != nil {
		var statusErr *httpStatusError
		if asStatusError(err, &statusErr) && statusErr.code == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	resp.Body.Close()
	return true, nil
}

func (b *httpBackend) readRange(ctx context.Context, container, name string, offset, size int64) ([]byte, error) {
	resp, err := b.do(ctx, b.readAttempts, func(token string) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL(container, name), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Auth-Token", token)
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", offset, offset+size-1))
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (b *httpBackend) readFull(ctx context.Context, container, name string) ([]byte, error) {
	resp, err := b.do(ctx, b.readAttempts, func(token string) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL(container, name), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Auth-Token", token)
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (b *httpBackend) putObject(ctx context.Context, container, name string, data []byte) error {
	resp, err := b.do(ctx, b.writeAttempts, func(token string) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.baseURL(container, name), bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.ContentLength = int64(len(data))
		req.Header.Set("X-Auth-Token", token)
		return req, nil
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func asStatusError(err error, target **httpStatusError) bool {
	for err != nil {
		if se, ok := err.(*httpStatusError); ok {
			*target = se
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
