package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"youtubeUrl", "youtube_url"},
		{"youtube_url", "youtube_url"},
		{"thumbnailURL", "thumbnail_url"},
		{"YoutubeID", "youtube_id"},
		{"HTMLBody", "html_body"},
		{"orderIndex", "order_index"},
		{"part2Title", "part2_title"},
		{"is_active", "is_active"},
		{"id", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.input))
		})
	}
}

func TestKeys_TopLevelOnly(t *testing.T) {
	input := `{"youtubeUrl":"https://youtu.be/dQw4w9WgXcQ","ingredients":[{"name":"oats","unitType":"cup"}],"meta":{"isActive":true}}`

	out, err := Keys([]byte(input))
	require.NoError(t, err)

	assert.JSONEq(t, `{"youtube_url":"https://youtu.be/dQw4w9WgXcQ","ingredients":[{"name":"oats","unitType":"cup"}],"meta":{"isActive":true}}`, string(out))
}

func TestKeysToDepth_CollectionRows(t *testing.T) {
	input := `{"storefrontProducts":[{"orderIndex":2,"imagePath":"a.jpg"}],"recipes":[{"isBeginner":true,"ingredients":[{"unitType":"cup"}],"steps":{"stepOne":"soak"}}]}`

	out, err := KeysToDepth([]byte(input), 2)
	require.NoError(t, err)

	assert.JSONEq(t, `{"storefront_products":[{"order_index":2,"image_path":"a.jpg"}],"recipes":[{"is_beginner":true,"ingredients":[{"unitType":"cup"}],"steps":{"stepOne":"soak"}}]}`, string(out))
}

func TestKeysToDepth_ZeroLeavesDocument(t *testing.T) {
	out, err := KeysToDepth([]byte(`{"orderIndex": 1}`), 0)
	require.NoError(t, err)

	assert.JSONEq(t, `{"orderIndex":1}`, string(out))
}

func TestKeys_NonObjectDocuments(t *testing.T) {
	for input, want := range map[string]string{
		`null`:               `null`,
		`[{"orderIndex":1}]`: `[{"order_index":1}]`,
		`"camelCase"`:        `"camelCase"`,
		`{"emptyList":[]}`:   `{"empty_list":[]}`,
		`{"nullValue":null}`: `{"null_value":null}`,
	} {
		t.Run(input, func(t *testing.T) {
			out, err := Keys([]byte(input))
			require.NoError(t, err)
			assert.JSONEq(t, want, string(out))
		})
	}
}

func TestKeys_SnakeCaseWinsCollision(t *testing.T) {
	out, err := Keys([]byte(`{"thumbnailUrl":"camel","thumbnail_url":"snake"}`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"thumbnail_url":"snake"}`, string(out))
}

func TestKeys_PreservesLargeNumbers(t *testing.T) {
	out, err := Keys([]byte(`{"orderIndex":12345678901234567890}`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"order_index":12345678901234567890}`, string(out))
}

func TestKeys_InvalidJSON(t *testing.T) {
	_, err := Keys([]byte(`{"title":`))
	assert.Error(t, err)

	_, err = KeysToDepth([]byte(`{"recipes":[{"title":1}]} trailing`), 2)
	assert.Error(t, err)
}
