package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/cenkalti/backoff/v4"

	"github.com/KonishchevDmitry/easypub/internal/util"
)

const requestTimeout = time.Minute

func fetch[T any](
	ctx context.Context, url *url.URL, allowedMediaTypes []string, parser func(body io.Reader) (T, error),
	opts ...Option,
) (_ T, retErr error) {
	var zero T
	defer func() {
		if retErr != nil {
			retErr = fmt.Errorf("failed to fetch %s: %w", url, retErr)
		}
	}()

	var options options
	for _, opt := range opts {
		opt(&options)
	}
	allowedMediaTypes = append(slices.Clone(allowedMediaTypes), options.contentTypes...)

	fetchCtx, err := getContext(ctx)
	if err != nil {
		return zero, err
	}

	var (
		result  T
		attempt int
	)

	err = backoff.RetryNotify(func() error {
		attempt++

		value, err := fetchOnce(ctx, fetchCtx, url, allowedMediaTypes, parser, &options)
		if err != nil {
			if !util.IsTemporaryError(err) || attempt >= fetchCtx.config.MaxAttempts {
				return backoff.Permanent(err)
			}
			return err
		}

		result = value
		return nil
	}, backoff.WithContext(fetchCtx.backoff(), ctx), func(err error, delay time.Duration) {
		logging.L(ctx).Warnf("Failed to fetch %s: %s. Retrying in %s...", url, err, delay.Round(time.Millisecond))
	})
	if err != nil {
		return zero, err
	}

	return result, nil
}

func (c *fetchContext) backoff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	if c.config.InitialDelay > 0 {
		policy.InitialInterval = c.config.InitialDelay
	}
	policy.MaxElapsedTime = 0
	return policy
}

func fetchOnce[T any](
	ctx context.Context, fetchCtx *fetchContext, url *url.URL, allowedMediaTypes []string,
	parser func(body io.Reader) (T, error), options *options,
) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := fetchCtx.wait(ctx, url.Host); err != nil {
		return zero, err
	}

	logging.L(ctx).Debugf("Fetching %s...", url)

	startTime := time.Now()
	response, err := httpClientFetch(ctx, url, fetchCtx.config.UserAgent, allowedMediaTypes, options.headers)
	fetchCtx.duration.Observe(time.Since(startTime).Seconds())
	if err != nil {
		return zero, err
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.L(ctx).Errorf("Failed to close HTTP client body: %s.", err)
		}
	}()

	if statusCode := response.StatusCode; statusCode != http.StatusOK {
		var err error = &StatusError{StatusCode: statusCode, Status: response.Status}
		if isTemporaryStatus(statusCode) {
			err = util.MakeTemporaryError(err)
		}
		return zero, err
	}

	if err := checkContentType(response.Header.Get("Content-Type"), allowedMediaTypes); err != nil {
		return zero, err
	}

	return parser(bodyReader{body: response.Body})
}

func httpClientFetch(
	ctx context.Context, url *url.URL, userAgent string, acceptMediaTypes []string, headers map[string]string,
) (*http.Response, error) {
	client := http.Client{}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, err
	}

	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept", strings.Join(acceptMediaTypes, ", "))
	for name, value := range headers {
		request.Header.Set(name, value)
	}

	response, err := client.Do(request)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, util.MakeTemporaryError(err)
	}

	return response, nil
}

type bodyReader struct {
	body io.Reader
}

var _ io.Reader = bodyReader{}

func (r bodyReader) Read(buf []byte) (int, error) {
	n, err := r.body.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		err = util.MakeTemporaryError(err)
	}
	return n, err
}

func checkContentType(contentType string, allowedMediaTypes []string) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("got an invalid Content-Type: %w", err)
	}

	for _, allowedMediaType := range allowedMediaTypes {
		if mediaType == allowedMediaType {
			return nil
		}
	}

	return fmt.Errorf("got an invalid Content-Type (%s)", mediaType)
}
