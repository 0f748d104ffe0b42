package model

// Stats counts what happened while extracting one or more documents.
type Stats struct {
	Paragraphs int

	TablesFound     int
	TablesExtracted int
	TablesSkipped   int

	FiguresFound     int
	FiguresExtracted int
	FiguresSkipped   int

	// ImageFallbacks counts documents whose figures came from loose images
	// rather than figure markup.
	ImageFallbacks int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Paragraphs += other.Paragraphs
	s.TablesFound += other.TablesFound
	s.TablesExtracted += other.TablesExtracted
	s.TablesSkipped += other.TablesSkipped
	s.FiguresFound += other.FiguresFound
	s.FiguresExtracted += other.FiguresExtracted
	s.FiguresSkipped += other.FiguresSkipped
	s.ImageFallbacks += other.ImageFallbacks
}

// Extracted returns the number of emitted entities of both kinds.
func (s Stats) Extracted() int {
	return s.TablesExtracted + s.FiguresExtracted
}

// Skipped returns the number of dropped entities of both kinds.
func (s Stats) Skipped() int {
	return s.TablesSkipped + s.FiguresSkipped
}
