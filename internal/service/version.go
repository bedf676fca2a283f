package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/models"
	"github.com/genspectrum/sourcewatch/internal/utils"
)

const maxInfoBytes = 1 << 20

type infoResponse struct {
	DataVersion json.RawMessage `json:"dataVersion"`
}

// VersionFetcher reads the data version token from the LAPIS info endpoint.
type VersionFetcher struct {
	URL    string
	Client HTTPClient
}

func NewVersionFetcher(url string, client HTTPClient) *VersionFetcher {
	return &VersionFetcher{URL: url, Client: client}
}

func (v *VersionFetcher) FetchDataVersion(ctx context.Context) (models.DataVersion, error) {
	resp, err := MakeHTTPRequest(ctx, v.Client, http.MethodGet, v.URL)
	if err != nil {
		return "", err
	}
	defer utils.DrainClose(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInfoBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", errs.ErrTransport, v.URL, err)
	}

	var info infoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("%w: decode %s: %v", errs.ErrMalformedResponse, v.URL, err)
	}
	if len(info.DataVersion) == 0 || string(info.DataVersion) == "null" {
		return "", fmt.Errorf("%w: %s: no dataVersion field", errs.ErrMalformedResponse, v.URL)
	}

	version, err := models.NewDataVersion(info.DataVersion)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrMalformedResponse, err)
	}

	logger.Debug("GET %s: dataVersion=%s", v.URL, version)
	return version, nil
}
