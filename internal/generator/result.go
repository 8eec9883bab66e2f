package generator

import (
	"net/http"
	"time"
)

type Format string

const (
	FormatHTML   Format = "html"
	FormatRSS    Format = "rss"
	FormatReport Format = "report"
)

type Document struct {
	ContentType string
	Data        []byte
}

type Result struct {
	HTTPStatus int
	Time       time.Time
	Documents  map[Format]Document
}

func makeResult(documents map[Format]Document) Result {
	return Result{
		HTTPStatus: http.StatusOK,
		Time:       time.Now(),
		Documents:  documents,
	}
}

func makeErrorResult(status int) Result {
	return Result{
		HTTPStatus: status,
		Time:       time.Now(),
	}
}

func (r Result) OK() bool {
	return r.HTTPStatus == http.StatusOK
}

// Document returns the result in the specified format or an error message if the generation has failed.
func (r Result) Document(format Format) (int, Document) {
	if document, ok := r.Documents[format]; ok && r.OK() {
		return http.StatusOK, document
	}

	status := r.HTTPStatus
	if r.OK() {
		status = http.StatusNotFound
	}

	return status, Document{
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte("Failed to generate the publication list"),
	}
}
