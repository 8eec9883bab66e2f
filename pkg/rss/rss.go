package rss

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

const ContentType = "application/rss+xml"

var PossibleContentTypes = []string{ContentType, "application/xml", "text/xml"}

type document struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel *Feed    `xml:"channel"`
}

// Read decodes an RSS 2.0 (or compatible 0.9x) document honoring its declared charset.
func Read(reader io.Reader) (*Feed, error) {
	var doc document

	decoder := xml.NewDecoder(reader)
	decoder.Strict = false
	decoder.CharsetReader = charset.NewReaderLabel

	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}

	switch doc.Version {
	case "2.0", "0.92", "0.91":
	default:
		return nil, fmt.Errorf("unsupported RSS version: %s", doc.Version)
	}

	if doc.Channel == nil {
		return nil, errors.New("the document doesn't conform to RSS specification")
	}

	return doc.Channel, nil
}

func Parse(data []byte) (*Feed, error) {
	return Read(bytes.NewReader(data))
}

func Write(feed *Feed, writer io.Writer) error {
	if _, err := io.WriteString(writer, xml.Header); err != nil {
		return err
	}

	encoder := xml.NewEncoder(writer)
	encoder.Indent("", "    ")
	return encoder.Encode(&document{Version: "2.0", Channel: feed})
}

func Generate(feed *Feed) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Write(feed, &buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
