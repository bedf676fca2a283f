package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/models"
	"github.com/genspectrum/sourcewatch/internal/utils"
)

// MetadataFetcher reads the fingerprint of the tracked resource with a HEAD request.
type MetadataFetcher struct {
	URL    string
	Client HTTPClient
}

func NewMetadataFetcher(url string, client HTTPClient) *MetadataFetcher {
	return &MetadataFetcher{URL: url, Client: client}
}

// FetchMetadata returns Content-Length and Last-Modified exactly as sent by the server.
func (m *MetadataFetcher) FetchMetadata(ctx context.Context) (models.Fingerprint, error) {
	resp, err := MakeHTTPRequest(ctx, m.Client, http.MethodHead, m.URL)
	if err != nil {
		return models.Fingerprint{}, err
	}
	defer utils.DrainClose(resp.Body)

	// raw header values; resp.ContentLength would normalize them
	contentLength, ok := headerValue(resp.Header, "Content-Length")
	if !ok {
		return models.Fingerprint{}, fmt.Errorf("%w: HEAD %s: missing Content-Length header", errs.ErrTransport, m.URL)
	}
	lastModified, ok := headerValue(resp.Header, "Last-Modified")
	if !ok {
		return models.Fingerprint{}, fmt.Errorf("%w: HEAD %s: missing Last-Modified header", errs.ErrTransport, m.URL)
	}

	logger.Debug("HEAD %s: Content-Length=%s, Last-Modified=%s", m.URL, contentLength, lastModified)
	return models.Fingerprint{ContentLength: contentLength, LastModified: lastModified}, nil
}

func headerValue(h http.Header, key string) (string, bool) {
	values := h.Values(key)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}
