package deckforge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeValid(t *testing.T) {
	for _, ct := range []ContentType{ContentText, ContentBulletList, ContentTable, ContentImage, ContentTitle, ContentSubtitle} {
		assert.True(t, ct.Valid(), "%s", ct)
	}
	assert.False(t, ContentType("chart").Valid())
	assert.False(t, ContentType("").Valid())
}

func TestContentTypeUnmarshalRejectsUnknown(t *testing.T) {
	var ct ContentType
	require.NoError(t, json.Unmarshal([]byte(`"bullet_list"`), &ct))
	assert.Equal(t, ContentBulletList, ct)

	err := json.Unmarshal([]byte(`"word_art"`), &ct)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown content type")
}

func TestContentTypeTier(t *testing.T) {
	assert.Equal(t, "title", ContentTitle.Tier())
	assert.Equal(t, "subheading", ContentSubtitle.Tier())
	assert.Equal(t, "body", ContentText.Tier())
	assert.Equal(t, "body", ContentBulletList.Tier())
}

func TestDefaultMappingConfig(t *testing.T) {
	cfg := DefaultMappingConfig()
	require.Len(t, cfg.Slides, 3)

	title := cfg.Slide("title_slide")
	require.NotNil(t, title)
	assert.Equal(t, "Title Slide", title.LayoutName)
	require.Len(t, title.Placeholders, 2)
	assert.Equal(t, ContentTitle, title.Placeholders[0].Type)
	assert.True(t, title.Placeholders[0].Substitute)
	assert.Equal(t, "presentation_data.title_slide.title", title.Placeholders[0].Path,
		"built-in paths bind under the content envelope")

	for _, slide := range cfg.Slides {
		for _, ph := range slide.Placeholders {
			assert.Equal(t, ContentRoot+"."+slide.Key, slide.blockPath())
			assert.Contains(t, ph.Path, ContentRoot+"."+slide.Key+".")
		}
	}

	benefits := cfg.Slide("benefits_slide")
	require.NotNil(t, benefits)
	assert.Equal(t, ContentBulletList, benefits.Placeholders[1].Type)
	assert.Equal(t, ContentImage, benefits.Placeholders[2].Type)

	impact := cfg.Slide("impact_slide")
	require.NotNil(t, impact)
	assert.Equal(t, ContentTable, impact.Placeholders[1].Type)

	assert.Nil(t, cfg.Slide("nope"))
}

func TestLoadMappingConfigRoundTrip(t *testing.T) {
	cfg := DefaultMappingConfig()
	path := t.TempDir() + "/mapping.json"
	require.NoError(t, SaveJSON(path, cfg))

	loaded, err := LoadMappingConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMappingConfigEmpty(t *testing.T) {
	path := t.TempDir() + "/empty.json"
	require.NoError(t, SaveJSON(path, &MappingConfig{}))

	_, err := LoadMappingConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no slides")
}
