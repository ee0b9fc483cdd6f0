package fetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goliatone/go-formstate/pkg/source"
)

const acceptDocuments = "application/json, application/yaml;q=0.9, */*;q=0.5"

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, string, error) {
	if f.client == nil {
		return nil, "", source.ErrRemoteDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", source.ErrInvalidRef, err)
	}
	for key, values := range f.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", acceptDocuments)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("source: get %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("%w: %s from %s", source.ErrUnexpectedStatus, resp.Status, url)
	}
	if resp.ContentLength > f.maxSize {
		return nil, "", fmt.Errorf("%w: %s declares %d bytes", source.ErrTooLarge, url, resp.ContentLength)
	}

	data, err := readLimited(resp.Body, f.maxSize, url)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}
