package work

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Works are (de)serialized as CSL-JSON as returned by CrossRef. Decoding additionally accepts some deviations seen in
// the wild and in manually written metadata: arrays instead of strings, numbers instead of strings and vice versa, and
// "authors" list with "firstName" and "lastName" fields.

type cslWork struct {
	ID                  flexString  `json:"id,omitempty"`
	DOI                 flexString  `json:"DOI,omitempty"`
	Title               flexString  `json:"title"`
	Author              []cslAuthor `json:"author,omitempty"`
	Authors             []altAuthor `json:"authors,omitempty"`
	ContainerTitle      flexString  `json:"container-title,omitempty"`
	ContainerTitleShort flexString  `json:"container-title-short,omitempty"`
	Volume              flexString  `json:"volume,omitempty"`
	Page                flexString  `json:"page,omitempty"`
	ArticleNumber       flexString  `json:"article-number,omitempty"`
	URL                 flexString  `json:"URL,omitempty"`
	Published           *cslDate    `json:"published,omitempty"`
	Issued              *cslDate    `json:"issued,omitempty"`
	Created             *cslDate    `json:"created,omitempty"`
	StatusPublished     *bool       `json:"status_published,omitempty"`
}

type cslAuthor struct {
	Given   string `json:"given,omitempty"`
	Family  string `json:"family,omitempty"`
	Literal string `json:"literal,omitempty"`
	Name    string `json:"name,omitempty"`
}

type altAuthor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type cslDate struct {
	DateParts [][]flexInt `json:"date-parts"`
}

var (
	_ json.Marshaler   = &Work{}
	_ json.Unmarshaler = &Work{}
)

func (w *Work) MarshalJSON() ([]byte, error) {
	csl := cslWork{
		ID:                  flexString(w.ID),
		DOI:                 flexString(w.DOI),
		Title:               flexString(w.Title),
		ContainerTitle:      flexString(w.ContainerTitle),
		ContainerTitleShort: flexString(w.ContainerTitleShort),
		Volume:              flexString(w.Volume),
		Page:                flexString(w.Page),
		ArticleNumber:       flexString(w.ArticleNumber),
		URL:                 flexString(w.URL),
		Published:           makeCSLDate(w.Published),
		Created:             makeCSLDate(w.Created),
	}

	csl.Author = lo.Map(w.Authors, func(author Author, _ int) cslAuthor {
		return cslAuthor{Given: author.Given, Family: author.Family}
	})

	if status, ok := w.Status.Get(); ok {
		csl.StatusPublished = &status
	}

	return json.Marshal(&csl)
}

func (w *Work) UnmarshalJSON(data []byte) error {
	var csl cslWork
	if err := json.Unmarshal(data, &csl); err != nil {
		return err
	}

	var authors []Author
	if len(csl.Author) != 0 {
		for _, author := range csl.Author {
			switch {
			case author.Family != "" || author.Given != "":
				authors = append(authors, Author{Given: author.Given, Family: author.Family})
			case author.Literal != "":
				authors = append(authors, Author{Family: author.Literal})
			case author.Name != "":
				authors = append(authors, Author{Family: author.Name})
			default:
				return errors.New("got an author without name")
			}
		}
	} else {
		authors = lo.Map(csl.Authors, func(author altAuthor, _ int) Author {
			return Author{Given: author.FirstName, Family: author.LastName}
		})
	}

	published := csl.Published
	if published == nil {
		published = csl.Issued
	}

	publishedDate, err := published.date()
	if err != nil {
		return fmt.Errorf("invalid publication date: %w", err)
	}

	createdDate, err := csl.Created.date()
	if err != nil {
		return fmt.Errorf("invalid creation date: %w", err)
	}

	var status mo.Option[bool]
	if csl.StatusPublished != nil {
		status = mo.Some(*csl.StatusPublished)
	}

	*w = Work{
		ID:                  string(csl.ID),
		DOI:                 string(csl.DOI),
		Title:               string(csl.Title),
		Authors:             authors,
		ContainerTitle:      string(csl.ContainerTitle),
		ContainerTitleShort: string(csl.ContainerTitleShort),
		Volume:              string(csl.Volume),
		Page:                string(csl.Page),
		ArticleNumber:       string(csl.ArticleNumber),
		URL:                 string(csl.URL),
		Published:           publishedDate,
		Created:             createdDate,
		Status:              status,
	}

	return nil
}

func makeCSLDate(date Date) *cslDate {
	parts := date.parts()
	if len(parts) == 0 {
		return nil
	}

	return &cslDate{DateParts: [][]flexInt{lo.Map(parts, func(part int, _ int) flexInt {
		return flexInt(part)
	})}}
}

func (d *cslDate) date() (Date, error) {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 || d.DateParts[0][0] == 0 {
		return Date{}, nil
	}

	parts := d.DateParts[0]
	if len(parts) > 3 {
		return Date{}, fmt.Errorf("got too many date parts: %v", parts)
	}

	var date Date
	for i, part := range parts {
		switch i {
		case 0:
			date.Year = int(part)
		case 1:
			if part < 0 || part > 12 {
				return Date{}, fmt.Errorf("invalid month: %d", part)
			}
			date.Month = int(part)
		case 2:
			if part < 0 || part > 31 || date.Month == 0 && part != 0 {
				return Date{}, fmt.Errorf("invalid day: %d", part)
			}
			date.Day = int(part)
		}
	}

	return date, nil
}

type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return err
	}

	switch value := value.(type) {
	case nil:
		*s = ""
	case string:
		*s = flexString(value)
	case json.Number:
		*s = flexString(value.String())
	case []any:
		*s = ""
		for _, item := range value {
			if item, ok := item.(string); ok && item != "" {
				*s = flexString(item)
				break
			}
		}
	default:
		return fmt.Errorf("expected a string, got %s", data)
	}

	return nil
}

type flexInt int

func (i *flexInt) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return err
	}

	var number string
	switch value := value.(type) {
	case nil:
		*i = 0
		return nil
	case json.Number:
		number = value.String()
	case string:
		number = value
	default:
		return fmt.Errorf("expected an integer, got %s", data)
	}

	parsed, err := strconv.Atoi(number)
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", data)
	}
	*i = flexInt(parsed)

	return nil
}
