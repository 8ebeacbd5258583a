package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func (h hostingImpl) GetDomain(ctx context.Context, slug string) (DomainStatus, int, error) {
	var status DomainStatus
	path := fmt.Sprintf("/v1/domains/%s", url.PathEscape(slug))
	statusCode, err := h.do(ctx, http.MethodGet, path, &status)
	if err != nil {
		return DomainStatus{}, statusCode, err
	}
	return status, statusCode, nil
}

func (h hostingImpl) GetDomainConfig(ctx context.Context, slug string) (DomainConfig, int, error) {
	var conf DomainConfig
	path := fmt.Sprintf("/v1/domains/%s/config", url.PathEscape(slug))
	statusCode, err := h.do(ctx, http.MethodGet, path, &conf)
	if err != nil {
		return DomainConfig{}, statusCode, err
	}
	return conf, statusCode, nil
}

func (h hostingImpl) VerifyDomain(ctx context.Context, slug string) (DomainStatus, int, error) {
	var status DomainStatus
	path := fmt.Sprintf("/v1/domains/%s/verify", url.PathEscape(slug))
	statusCode, err := h.do(ctx, http.MethodPost, path, &status)
	if err != nil {
		return DomainStatus{}, statusCode, err
	}
	return status, statusCode, nil
}

// do performs the request and unmarshals the response into out. A 404 with a
// parseable body is not an error, the provider reports unknown domains
// through the error code in the payload.
func (h hostingImpl) do(ctx context.Context, method string, path string, out interface{}) (int, error) {
	statusCode := http.StatusInternalServerError

	req, err := http.NewRequestWithContext(ctx, method, h.server+path, nil)
	if err != nil {
		return statusCode, err
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	var body []byte
	resp, err := h.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return statusCode, fmt.Errorf("error during read response body: %w", err)
		}
		if resp.StatusCode != 0 {
			statusCode = resp.StatusCode
		}
	}
	if err != nil {
		return statusCode, fmt.Errorf("error during %s request: %w", method, err)
	}
	if (statusCode < 200 || statusCode >= 300) && statusCode != http.StatusNotFound {
		return statusCode, fmt.Errorf("unexpected status code %d with body: %s", statusCode, string(body))
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return statusCode, fmt.Errorf("error during unmarshal response body: %w", err)
	}
	return statusCode, nil
}
