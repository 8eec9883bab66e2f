package publist

import (
	"context"

	logging "github.com/KonishchevDmitry/go-easy-logging"
)

// Report lists the problems the user should fix in the input.
type Report struct {
	// Preprints which have been published in a journal and should be moved to the list of published works.
	PublishedPreprints []PublishedPreprint `json:"published_preprints"`
	MissingPreprints   []string            `json:"missing_preprints"`
	Missing            []string            `json:"missing"`
}

type PublishedPreprint struct {
	ID string `json:"id"`
	// DOI of the journal publication if the preprint server knows it.
	DOI string `json:"doi,omitempty"`
}

func (r *Report) Empty() bool {
	return len(r.PublishedPreprints) == 0 && len(r.MissingPreprints) == 0 && len(r.Missing) == 0
}

// Log logs the report. File paths are used in hints to point the user where to fix the problems.
func (r *Report) Log(ctx context.Context, publishedPath string, manualDir string) {
	logger := logging.L(ctx)

	if len(r.PublishedPreprints) != 0 {
		logger.Warn("The following preprints have been published:")
		for _, preprint := range r.PublishedPreprints {
			if preprint.DOI != "" {
				logger.Warnf("* %s (DOI: %s)", preprint.ID, preprint.DOI)
			} else {
				logger.Warnf("* %s", preprint.ID)
			}
		}
		logger.Warnf("Please move them to %q with the permanent DOI.", publishedPath)
	}

	for _, missing := range []struct {
		name string
		ids  []string
	}{
		{"preprints", r.MissingPreprints},
		{"papers", r.Missing},
	} {
		if len(missing.ids) == 0 {
			continue
		}

		logger.Warnf("The following %s were not found:", missing.name)
		for _, id := range missing.ids {
			logger.Warnf("* %s", id)
		}
		logger.Warnf("Please either correct the entry or add a manual metadata file to %q.", manualDir)
	}
}
