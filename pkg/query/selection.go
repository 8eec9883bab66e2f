package query

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

func Optional(selection *goquery.Selection, name string, selector string) (*goquery.Selection, bool, error) {
	selection = selection.Find(selector)

	switch size := selection.Size(); size {
	case 0:
		return nil, false, nil
	case 1:
		return selection, true, nil
	default:
		return nil, false, fmt.Errorf("unable to find %s: got %d elements that match %q selector", name, size, selector)
	}
}

func One(selection *goquery.Selection, name string, selector string) (*goquery.Selection, error) {
	selection, ok, err := Optional(selection, name, selector)
	if err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("unable to find %s", name)
	}
	return selection, nil
}

// Map maps each element of the selection stopping on the first error.
func Map[T any](selection *goquery.Selection, mapper func(*goquery.Selection) (T, error)) ([]T, error) {
	var (
		items []T
		err   error
	)

	selection.EachWithBreak(func(_ int, selection *goquery.Selection) bool {
		var item T
		if item, err = mapper(selection); err == nil {
			items = append(items, item)
		}
		return err == nil
	})

	return items, err
}
