package deckforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() map[string]any {
	return map[string]any{
		"presentation_data": map[string]any{
			"title_slide": map[string]any{
				"title":    "Q3 Sustainability Review",
				"subtitle": "Operations Team",
			},
			"benefits_slide": map[string]any{
				"title":        "Key Benefits",
				"key_benefits": []any{"Lower emissions", "Reduced costs", "Better reporting"},
				"image_label":  "Facility photo",
			},
			"impact_slide": map[string]any{
				"title": "Impact Metrics",
				"metrics": []any{
					map[string]any{"name": "Energy saved", "value": "120 MWh", "change": "-18%"},
					map[string]any{"name": "Water saved", "value": "300 kL", "change": "-9%"},
				},
			},
		},
		"meta": map[string]any{
			"year":  float64(2026),
			"ratio": 0.85,
			"final": true,
		},
	}
}

// slideBlock returns the mutable data block for one slide key.
func slideBlock(record map[string]any, key string) map[string]any {
	return record["presentation_data"].(map[string]any)[key].(map[string]any)
}

func TestResolveNestedPaths(t *testing.T) {
	record := sampleRecord()

	v, ok := Resolve(record, "presentation_data.title_slide.title")
	require.True(t, ok)
	assert.Equal(t, "Q3 Sustainability Review", v)

	v, ok = Resolve(record, "presentation_data.impact_slide.metrics")
	require.True(t, ok)
	assert.Len(t, v, 2)
}

func TestResolveAbsentPathsNeverPanic(t *testing.T) {
	record := sampleRecord()

	for _, path := range []string{
		"",
		"nope",
		"title_slide.title", // slide data lives under the envelope
		"presentation_data.title_slide.nope",
		"presentation_data.title_slide.title.deeper", // scalar in the middle
		"presentation_data.benefits_slide.key_benefits.0",
		"a.b.c.d.e",
	} {
		_, ok := Resolve(record, path)
		assert.False(t, ok, "path %q should not resolve", path)
	}
}

func TestResolveStringScalars(t *testing.T) {
	record := sampleRecord()

	s, ok := ResolveString(record, "meta.year")
	require.True(t, ok)
	assert.Equal(t, "2026", s, "integral floats render without decimal point")

	s, ok = ResolveString(record, "meta.ratio")
	require.True(t, ok)
	assert.Equal(t, "0.85", s)

	s, ok = ResolveString(record, "meta.final")
	require.True(t, ok)
	assert.Equal(t, "true", s)

	_, ok = ResolveString(record, "presentation_data.title_slide")
	assert.False(t, ok, "objects are not scalars")
}

func TestResolveStringList(t *testing.T) {
	record := sampleRecord()

	items, ok := ResolveStringList(record, "presentation_data.benefits_slide.key_benefits")
	require.True(t, ok)
	assert.Equal(t, []string{"Lower emissions", "Reduced costs", "Better reporting"}, items)

	_, ok = ResolveStringList(record, "presentation_data.title_slide.title")
	assert.False(t, ok, "scalar is not a list")

	_, ok = ResolveStringList(record, "presentation_data.impact_slide.metrics")
	assert.False(t, ok, "object rows are not a string list")
}

func TestResolveRows(t *testing.T) {
	record := sampleRecord()
	columns := []string{"name", "value", "change"}

	rows, ok := ResolveRows(record, "presentation_data.impact_slide.metrics", columns)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Energy saved", "120 MWh", "-18%"}, rows[0])
	assert.Equal(t, []string{"Water saved", "300 kL", "-9%"}, rows[1])
}

func TestRowColumnsInference(t *testing.T) {
	v, _ := Resolve(sampleRecord(), "presentation_data.impact_slide.metrics")
	cols := rowColumns(v)
	require.NotEmpty(t, cols)
	assert.Equal(t, "name", cols[0], "name-like keys lead the column order")
	assert.ElementsMatch(t, []string{"name", "value", "change"}, cols)
}

func TestValidateContentEnvelopedRecord(t *testing.T) {
	record := sampleRecord()

	// The built-in plan binds under the presentation_data envelope.
	v, ok := Resolve(record, "presentation_data.title_slide.title")
	require.True(t, ok)
	assert.Equal(t, "Q3 Sustainability Review", v)

	problems := ValidateContent(record, DefaultMappingConfig())
	assert.Empty(t, problems)
}

func TestValidateContentUnenvelopedRecordFails(t *testing.T) {
	// Slide blocks hoisted to the top level are not where the built-in
	// plan binds; every slide reports missing data.
	record := map[string]any{
		"title_slide":    sampleRecord()["presentation_data"].(map[string]any)["title_slide"],
		"benefits_slide": sampleRecord()["presentation_data"].(map[string]any)["benefits_slide"],
		"impact_slide":   sampleRecord()["presentation_data"].(map[string]any)["impact_slide"],
	}

	problems := ValidateContent(record, DefaultMappingConfig())
	assert.Contains(t, problems, "Missing slide data for: title_slide")
	assert.Contains(t, problems, "Missing slide data for: benefits_slide")
	assert.Contains(t, problems, "Missing slide data for: impact_slide")
}

func TestValidateContentBlockFollowsMappingPaths(t *testing.T) {
	// A custom mapping without the conventional envelope validates
	// against the block its own paths bind under.
	cfg := &MappingConfig{
		Slides: []SlideConfig{
			{
				Key: "intro",
				Placeholders: []PlaceholderMapping{
					{Index: 0, Type: ContentTitle, Path: "intro.title"},
				},
			},
		},
	}
	record := map[string]any{
		"intro": map[string]any{"title": "Hello"},
	}

	assert.Empty(t, ValidateContent(record, cfg))

	delete(record, "intro")
	problems := ValidateContent(record, cfg)
	assert.Contains(t, problems, "Missing slide data for: intro")
}

func TestValidateContentCollectsAllProblems(t *testing.T) {
	record := sampleRecord()
	delete(record["presentation_data"].(map[string]any), "benefits_slide")
	slideBlock(record, "impact_slide")["metrics"] = "not a list"

	problems := ValidateContent(record, DefaultMappingConfig())
	assert.Contains(t, problems, "Missing slide data for: benefits_slide")
	assert.Contains(t, problems, "Table data must be a list: presentation_data.impact_slide.metrics")
	assert.Len(t, problems, 2, "validation reports every problem, not just the first")
}

func TestValidateContentMissingPath(t *testing.T) {
	record := sampleRecord()
	delete(slideBlock(record, "benefits_slide"), "key_benefits")

	problems := ValidateContent(record, DefaultMappingConfig())
	assert.Contains(t, problems, "Missing data for path: presentation_data.benefits_slide.key_benefits")
}

func TestValidateContentBulletListShape(t *testing.T) {
	record := sampleRecord()
	slideBlock(record, "benefits_slide")["key_benefits"] = map[string]any{"oops": true}

	problems := ValidateContent(record, DefaultMappingConfig())
	assert.Contains(t, problems, "Bullet list data must be a list: presentation_data.benefits_slide.key_benefits")
}
