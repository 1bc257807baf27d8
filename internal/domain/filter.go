package domain

// LessonFilter contains filtering/pagination parameters for lesson listings.
// A nil Kind lists both kinds.
type LessonFilter struct {
	Kind       *Kind
	SourceFile string
	Limit      int
	Offset     int
}
