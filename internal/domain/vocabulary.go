package domain

// VocabularyEntry is a single word extracted from a textbook page.
type VocabularyEntry struct {
	ID            string `json:"id"`
	Kanji         string `json:"kanji"`
	Hiragana      string `json:"hiragana"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
	Example       string `json:"example"`
	QualityScore  int    `json:"qualityScore"`
	Page          int    `json:"page,omitempty"`
}

// HasKanji reports whether the entry carries a kanji form.
func (e *VocabularyEntry) HasKanji() bool { return e.Kanji != "" }

// HasReading reports whether the entry carries a kana reading.
func (e *VocabularyEntry) HasReading() bool { return e.Hiragana != "" }

// Headword returns the form shown to learners: kanji when present, otherwise the reading.
func (e *VocabularyEntry) Headword() string {
	if e.Kanji != "" {
		return e.Kanji
	}
	return e.Hiragana
}

// GrammarEntry is a single grammar pattern with its explanation.
type GrammarEntry struct {
	ID        string `json:"id"`
	Pattern   string `json:"pattern"`
	Meaning   string `json:"meaning"`
	Usage     string `json:"usage"`
	Example   string `json:"example"`
	Formation string `json:"formation"`
	Notes     string `json:"notes"`
	Level     Level  `json:"level"`
	Page      int    `json:"page,omitempty"`
}
