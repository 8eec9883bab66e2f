package rss

import (
	"fmt"
	"time"
)

type Feed struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Language    string   `xml:"language,omitempty"`
	Date        Date     `xml:"pubDate"`
	Category    []string `xml:"category"`
	Generator   string   `xml:"generator,omitempty"`
	TTL         int      `xml:"ttl,omitempty"`
	Items       []*Item  `xml:"item"`
}

func NewFeed(title string, link string, description string) *Feed {
	return &Feed{
		Title:       title,
		Link:        link,
		Description: description,
	}
}

func (f *Feed) AddItem(item *Item) {
	f.Items = append(f.Items, item)
}

// Normalize makes item links permanent GUIDs for items without an explicit one.
func (f *Feed) Normalize() {
	trueValue := true

	for _, item := range f.Items {
		if guid := &item.GUID; guid.ID == "" && item.Link != "" {
			guid.ID = item.Link
			guid.IsPermaLink = &trueValue
		}
	}
}

func (f *Feed) String() string {
	if f == nil {
		return fmt.Sprintf("%#v", f)
	}

	xml, err := Generate(f)
	if err == nil {
		return string(xml)
	}

	return fmt.Sprintf("XML generation error: %s. Go representation: %#v", err, f)
}

type Date struct {
	time.Time
}

type Item struct {
	Title       string   `xml:"title,omitempty"`
	GUID        GUID     `xml:"guid"`
	Link        string   `xml:"link,omitempty"`
	Description string   `xml:"description,omitempty"`
	Date        Date     `xml:"pubDate"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
}

func NewItem(time time.Time, title string, link string, description string) *Item {
	return &Item{
		Title:       title,
		Link:        link,
		Description: description,
		Date:        Date{Time: time},
	}
}

type GUID struct {
	ID          string `xml:",chardata"`
	IsPermaLink *bool  `xml:"isPermaLink,attr,omitempty"`
}

func MakeGUID(id string, isPermaLink bool) GUID {
	guid := GUID{ID: id}
	if !isPermaLink {
		guid.IsPermaLink = &isPermaLink
	}
	return guid
}
