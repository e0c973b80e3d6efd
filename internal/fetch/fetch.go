// Package fetch retrieves playlist source text before parsing begins.
// Retrieval is synchronous and awaited to completion; the parse never
// starts on a failed fetch.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ErrFetchFailed reports a remote retrieval that returned a
// non-success status.
var ErrFetchFailed = errors.New("playlist fetch failed")

// FromURL retrieves playlist text over HTTP/S. Any non-2xx status is
// an ErrFetchFailed; there are no retries.
func FromURL(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned status %d", ErrFetchFailed, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}
	return string(data), nil
}

// IsRemote reports whether the source names an HTTP/S address rather
// than a local file
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads playlist text from a local path or a remote address
func Load(source string) (string, error) {
	if IsRemote(source) {
		return FromURL(source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
