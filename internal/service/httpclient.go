package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/genspectrum/sourcewatch/internal/buildinfo"
	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHTTPClient struct{ *http.Client }

func NewHTTPClient(timeout time.Duration) *DefaultHTTPClient {
	return &DefaultHTTPClient{Client: &http.Client{Timeout: timeout}}
}

// MakeHTTPRequest sends a body-less request and returns the response when the
// status is 2xx. Any failure is wrapped in errs.ErrTransport.
func MakeHTTPRequest(ctx context.Context, client HTTPClient, method, url string) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s request: %v", errs.ErrTransport, method, err)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", errs.ErrTransport, method, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		logger.Debug("%s %s: unexpected status %d", method, url, resp.StatusCode)
		return nil, fmt.Errorf("%w: %s %s: unexpected status %d", errs.ErrTransport, method, url, resp.StatusCode)
	}

	return resp, nil
}
