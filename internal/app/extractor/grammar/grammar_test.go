package grammar

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/n3vocab/internal/app/extractor/lines"
	"github.com/heartmarshall/n3vocab/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func newTestExtractor() *Extractor {
	return NewExtractor(slog.New(slog.NewTextHandler(io.Discard, nil)), Options{})
}

// --- Line classification ---

func TestIsPatternStart(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"〜ても", true},
		{"～ても", true},
		{"~ても", true},
		{"のに", true},
		{"V + ために", true},
		{"N+でも", true},
		{"わたしは学生です。", false},
		{"家族", false},
		{"V-て + も", false},
		{"even if", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPatternStart(tt.line))
		})
	}
}

func TestIsSectionStart(t *testing.T) {
	assert.True(t, IsSectionStart("文法"))
	assert.True(t, IsSectionStart("ぶん法ぽう"))
	assert.True(t, IsSectionStart("Grammar N3"))
	assert.False(t, IsSectionStart("Vocabulary"))
}

func TestSplitPattern(t *testing.T) {
	tests := []struct {
		line        string
		wantPattern string
		wantRest    string
	}{
		{"〜ても: even if", "〜ても", "even if"},
		{"~ために để", "〜ために", "để"},
		{"〜ばかり", "〜ばかり", ""},
		{"のに although", "のに", "although"},
		{"V + ために", "V + ために", ""},
	}
	for _, tt := range tests {
		pattern, rest := splitPattern(tt.line)
		assert.Equal(t, tt.wantPattern, pattern, "pattern of %q", tt.line)
		assert.Equal(t, tt.wantRest, rest, "rest of %q", tt.line)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"Cách dùng: diễn tả sự nhượng bộ", kindUsage},
		{"用法：条件を表す", kindUsage},
		{"V-て + も", kindFormation},
		{"N＋でも", kindFormation},
		{"雨が降っても、試合は行われます。", kindExample},
		{"雨だ", kindNotes},
		{"even if, dù cho", kindMeaning},
		{"NOTE ONLY", kindNotes},
		{"...", kindNotes},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.line))
		})
	}
}

// --- Extraction ---

func TestExtract_Sample(t *testing.T) {
	data, err := os.ReadFile(testdataPath(t, "grammar_sample.txt"))
	require.NoError(t, err)

	res := newTestExtractor().Extract(lines.Normalize(string(data)))

	require.Len(t, res.Entries, 2)

	temo := res.Entries[0]
	assert.Equal(t, "〜ても", temo.Pattern)
	assert.Equal(t, "even if, dù cho", temo.Meaning)
	assert.Equal(t, "V-て + も", temo.Formation)
	assert.Equal(t, "雨が降っても、試合は行われます。", temo.Example)
	assert.Equal(t, "Cách dùng: diễn tả sự nhượng bộ", temo.Usage)
	assert.Equal(t, domain.LevelN3, temo.Level)
	assert.Equal(t, 1, temo.Page)

	tame := res.Entries[1]
	assert.Equal(t, "〜ために", tame.Pattern)
	assert.Equal(t, "để, nhằm mục đích", tame.Meaning)
	assert.Equal(t, "日本語を勉強するために日本へ来ました。", tame.Example)

	s := res.Stats
	assert.Equal(t, 13, s.LinesProcessed)
	assert.Equal(t, 1, s.SectionsDetected)
	assert.Equal(t, 1, s.SkippedLines)
	assert.Equal(t, 4, s.CandidatePatterns)
	assert.Equal(t, 2, s.TotalPatterns)
	assert.Equal(t, 2, s.RejectedPatterns)
	assert.Equal(t, 2, s.WithMeaning)
	assert.Equal(t, 2, s.WithExample)
	assert.Equal(t, 1, s.WithFormation)
}

func TestExtract_RetentionInvariant(t *testing.T) {
	data, err := os.ReadFile(testdataPath(t, "grammar_sample.txt"))
	require.NoError(t, err)

	res := newTestExtractor().Extract(lines.Normalize(string(data)))

	for _, e := range res.Entries {
		n := coreLen(e.Pattern)
		assert.GreaterOrEqual(t, n, 2)
		assert.Less(t, n, 20)
		assert.True(t, e.Meaning != "" || e.Example != "", "pattern %q has neither meaning nor example", e.Pattern)
	}
}

func TestExtract_LatinFormulaFillsOpenPattern(t *testing.T) {
	raw := lines.Normalize("文法\n〜でも\nN + でも\neven, ngay cả\nV + ば\nif, nếu")

	res := newTestExtractor().Extract(raw)

	require.Len(t, res.Entries, 2)
	assert.Equal(t, "N + でも", res.Entries[0].Formation)
	assert.Equal(t, "V + ば", res.Entries[1].Pattern)
	assert.Equal(t, "if, nếu", res.Entries[1].Meaning)
}

func TestExtract_MarkerFallback(t *testing.T) {
	raw := lines.Normalize("家族 かぞく family\n〜ても\neven if")

	res := newTestExtractor().Extract(raw)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, "〜ても", res.Entries[0].Pattern)
	assert.Equal(t, 2, res.Stats.LinesProcessed)
}

func TestExtract_NoSection(t *testing.T) {
	res := newTestExtractor().Extract(lines.Normalize("家族 かぞく family\n学校 がっこう school"))

	assert.Empty(t, res.Entries)
	assert.Equal(t, 2, res.Stats.LinesProcessed)
}
