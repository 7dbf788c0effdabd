package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// requestValues flattens the request body into url.Values. Form-encoded and
// JSON bodies are accepted identically; several client libraries default to
// JSON for these endpoints.
func requestValues(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return nil, err
		}
		values := url.Values{}
		for key, value := range fields {
			if str, ok := value.(string); ok {
				values.Set(key, str)
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}
