package extract

import (
	"fmt"
	"regexp"

	"github.com/tsawler/citectx/model"
)

// mentionPatterns builds the citation patterns for an entity, in the order
// they are tried: the reference token itself, the spelled-out label with
// the entity's position, then the usual abbreviations.
//
// The positional patterns match any "Figure 2" in the text, even where an
// author restarts numbering in an appendix. That is a known limitation of
// the heuristic.
func mentionPatterns(kind model.Kind, ref string, position int) []*regexp.Regexp {
	sources := []string{regexp.QuoteMeta(ref)}
	switch kind {
	case model.KindTable:
		sources = append(sources,
			fmt.Sprintf(`Table\s*%d`, position),
			fmt.Sprintf(`tab\.\s*%d`, position),
			fmt.Sprintf(`tbl\.\s*%d`, position),
		)
	case model.KindFigure:
		sources = append(sources,
			fmt.Sprintf(`Figure\s*%d`, position),
			fmt.Sprintf(`Fig\.\s*%d`, position),
		)
	}

	patterns := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+src+`\b`))
	}
	return patterns
}

// FindMentions returns the texts of the paragraphs that cite the entity, in
// document order, capped at cfg.MaxMentions. A paragraph counts once no
// matter how many patterns it matches.
func FindMentions(paragraphs []model.Paragraph, kind model.Kind, ref string, position int, cfg *Config) []string {
	patterns := mentionPatterns(kind, ref, position)

	var mentions []string
	for _, p := range paragraphs {
		if len(mentions) >= cfg.MaxMentions {
			break
		}
		for _, re := range patterns {
			if re.MatchString(p.Text) {
				mentions = append(mentions, p.Text)
				break
			}
		}
	}
	return mentions
}
