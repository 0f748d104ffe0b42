package citectx

import (
	"fmt"
	"strings"

	"github.com/tsawler/citectx/model"
)

// WarningCode classifies a non-fatal extraction issue.
type WarningCode string

const (
	// WarningImageFallback means the document had no usable figure markup
	// and figures were taken from standalone images.
	WarningImageFallback WarningCode = "image-fallback"

	// WarningTablesSkipped means some tables had too little content.
	WarningTablesSkipped WarningCode = "tables-skipped"

	// WarningFiguresSkipped means some figures or images were rejected.
	WarningFiguresSkipped WarningCode = "figures-skipped"

	// WarningNoParagraphs means no paragraph qualified, so mentions and
	// context are empty.
	WarningNoParagraphs WarningCode = "no-paragraphs"

	// WarningMissingCaption means some entities have no caption.
	WarningMissingCaption WarningCode = "missing-caption"
)

// Warning describes an issue where extraction succeeded but the results
// may be incomplete.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into one line per warning.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// warningsFor derives warnings from the counters and entities of one
// document.
func warningsFor(stats model.Stats, entities []model.Entity) []Warning {
	var warnings []Warning
	if stats.ImageFallbacks > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningImageFallback,
			Message: fmt.Sprintf("no figure elements found; %d figures taken from standalone images", stats.FiguresExtracted),
		})
	}
	if stats.TablesSkipped > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningTablesSkipped,
			Message: fmt.Sprintf("%d of %d tables skipped", stats.TablesSkipped, stats.TablesFound),
		})
	}
	if stats.FiguresSkipped > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningFiguresSkipped,
			Message: fmt.Sprintf("%d of %d figures skipped", stats.FiguresSkipped, stats.FiguresFound),
		})
	}
	if stats.Paragraphs == 0 {
		warnings = append(warnings, Warning{
			Code:    WarningNoParagraphs,
			Message: "no paragraphs indexed",
		})
	}

	missing := 0
	for _, e := range entities {
		if e.Caption == "" {
			missing++
		}
	}
	if missing > 0 {
		warnings = append(warnings, Warning{
			Code:    WarningMissingCaption,
			Message: fmt.Sprintf("%d entities have no caption", missing),
		})
	}
	return warnings
}
