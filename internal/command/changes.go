package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"slices"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/samber/lo"

	"github.com/KonishchevDmitry/easypub/pkg/query"
	"github.com/KonishchevDmitry/easypub/pkg/rss"
)

// publications maps a stable publication key to its title.
type publications map[string]string

// logChanges compares the rendered publication list with the previously generated one. The RSS feed is preferred when
// it's generated since its items carry DOI based GUIDs.
func logChanges(ctx context.Context, htmlPath string, html []byte, feedPath string, feed []byte) {
	path, data, parse := htmlPath, html, citationPublications
	if feedPath != "" {
		path, data, parse = feedPath, feed, feedPublications
	}

	previousData, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.L(ctx).Warnf("Failed to read the previous publication list: %s.", err)
		}
		return
	}

	previous, err := parse(previousData)
	if err != nil {
		logging.L(ctx).Warnf("Failed to parse the previous publication list %q: %s.", path, err)
		return
	}

	current, err := parse(data)
	if err != nil {
		logging.L(ctx).Errorf("Failed to parse the generated publication list: %s.", err)
		return
	}

	added, removed := previous.changes(current)
	for _, title := range added {
		logging.L(ctx).Infof("New publication: %q.", title)
	}
	for _, title := range removed {
		logging.L(ctx).Infof("Removed publication: %q.", title)
	}
}

// changes returns titles of added and removed publications.
func (p publications) changes(current publications) (added []string, removed []string) {
	addedKeys, removedKeys := lo.Difference(lo.Keys(current), lo.Keys(p))

	added = lo.Map(addedKeys, func(key string, _ int) string {
		return current[key]
	})
	removed = lo.Map(removedKeys, func(key string, _ int) string {
		return p[key]
	})

	slices.Sort(added)
	slices.Sort(removed)
	return added, removed
}

func citationPublications(data []byte) (publications, error) {
	citations, err := query.Citations(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	result := make(publications, len(citations))
	for _, citation := range citations {
		key := citation.URL
		if key == "" {
			key = citation.Title
		}
		result[key] = citation.Title
	}

	return result, nil
}

func feedPublications(data []byte) (publications, error) {
	feed, err := rss.Parse(data)
	if err != nil {
		return nil, err
	}

	result := make(publications, len(feed.Items))
	for _, item := range feed.Items {
		key := item.GUID.ID
		if key == "" {
			key = item.Title
		}
		result[key] = item.Title
	}

	return result, nil
}
