package render

import (
	"fmt"

	"github.com/KonishchevDmitry/easypub/pkg/publist"
	"github.com/KonishchevDmitry/easypub/pkg/rss"
	"github.com/KonishchevDmitry/easypub/pkg/url"
)

const (
	generator        = "easypub"
	preprintCategory = "Preprint"
)

// RSS renders the publication list as an RSS feed: preprints first and then published works from the newest ones.
func RSS(list *publist.List, title string, link *url.URL) *rss.Feed {
	var feedLink string
	if link != nil {
		feedLink = link.String()
	}

	feed := rss.NewFeed(title, feedLink, fmt.Sprintf("%s: %d publications", title, list.Len()))
	feed.Generator = generator

	for _, entry := range list.Preprints {
		feed.AddItem(rssItem(entry, preprintCategory))
	}

	for _, group := range list.Published {
		for _, entry := range group.Entries {
			feed.AddItem(rssItem(entry, YearTitle(group.Year)))
		}
	}

	feed.Normalize()
	return feed
}

func rssItem(entry publist.Entry, category string) *rss.Item {
	work := entry.Work

	item := rss.NewItem(work.SortDate(), work.Title, work.URL, Article(work))
	item.Author = Authors(work.Authors)
	item.Categories = []string{category}

	if work.DOI != "" {
		item.GUID = rss.MakeGUID(work.DOI, false)
	} else if work.URL == "" {
		item.GUID = rss.MakeGUID(work.ID, false)
	}

	return item
}
