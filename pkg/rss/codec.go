package rss

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "Mon, 02 Jan 2006 15:04:05"

var dateLayouts = makeDateLayouts()

// makeDateLayouts lists RFC 822 date variants seen in the wild followed by ISO 8601 ones.
func makeDateLayouts() []string {
	var layouts []string

	for _, tz := range []string{"MST", "-0700"} {
		for _, year := range []string{"2006", "06"} {
			for _, day := range []string{"02", "2"} {
				for _, dayOfWeek := range []string{"Mon, ", ""} {
					layouts = append(layouts, fmt.Sprintf("%s%s Jan %s 15:04:05 %s", dayOfWeek, day, year, tz))
				}
			}
		}
	}

	return append(layouts,
		"2006-01-02 15:04:05 -0700",
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05.000-07:00",
	)
}

func (g *GUID) MarshalXML(encoder *xml.Encoder, start xml.StartElement) error {
	if g.ID == "" {
		return nil
	}

	if g.IsPermaLink != nil {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "isPermaLink"},
			Value: strconv.FormatBool(*g.IsPermaLink),
		})
	}

	return encoder.EncodeElement(g.ID, start)
}

func (d *Date) MarshalXML(encoder *xml.Encoder, start xml.StartElement) error {
	if d.IsZero() {
		return nil
	}
	return encoder.EncodeElement(d.UTC().Format(dateLayout)+" GMT", start)
}

func (d *Date) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	var value string
	if err := decoder.DecodeElement(&value, &start); err != nil {
		return err
	}

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			d.Time = date
			return nil
		}
	}

	return fmt.Errorf("can't parse date: %s", value)
}
