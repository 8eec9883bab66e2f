package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

const JSONContentType = "application/json"

func JSON[T any](ctx context.Context, url *url.URL, options ...Option) (T, error) {
	return fetch(ctx, url, []string{JSONContentType}, func(body io.Reader) (T, error) {
		var value T
		if err := json.NewDecoder(body).Decode(&value); err != nil {
			return value, fmt.Errorf("got an invalid JSON: %w", err)
		}
		return value, nil
	}, options...)
}
