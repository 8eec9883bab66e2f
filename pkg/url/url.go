package url

import (
	"fmt"
	"net/url"
	"strings"
)

type (
	URL    = url.URL
	Values = url.Values
)

const doiResolver = "https://doi.org/"

func MustURL(value string) *url.URL {
	url, err := url.Parse(value)
	if err != nil {
		panic(fmt.Sprintf("Invalid URL: %s", value))
	}
	return url
}

func Parse(value string) (*url.URL, error) {
	url, err := url.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %q", value)
	} else if url.Scheme == "" || url.Host == "" {
		return nil, fmt.Errorf("invalid URL: %q: an absolute URL is required", value)
	}
	return url, nil
}

// DOI returns the doi.org resolver link for the DOI.
func DOI(doi string) string {
	return doiResolver + strings.TrimPrefix(strings.TrimSpace(doi), doiResolver)
}

// JoinPath appends the path segments to the base URL. The segments are escaped, but slashes in them are kept as path
// separators since the services expect DOIs as multiple path segments.
func JoinPath(base string, segments ...string) (*url.URL, error) {
	baseURL, err := Parse(base)
	if err != nil {
		return nil, err
	}

	parts := []string{strings.TrimSuffix(baseURL.EscapedPath(), "/")}
	for _, segment := range segments {
		for _, part := range strings.Split(segment, "/") {
			parts = append(parts, url.PathEscape(part))
		}
	}

	result := *baseURL
	result.RawPath = strings.Join(parts, "/")
	if result.Path, err = url.PathUnescape(result.RawPath); err != nil {
		return nil, err
	}
	result.RawQuery, result.Fragment, result.RawFragment = "", "", ""

	return &result, nil
}
