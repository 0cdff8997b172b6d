package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestCheckImageDataAcceptsPNGDataURI(t *testing.T) {
	result := CheckImageData("data:image/png;base64," + tinyPNG)

	assert.True(t, result.Valid)
	assert.Nil(t, result.Error)
	assert.Equal(t, "image/png", result.MimeType)
}

func TestCheckImageDataAcceptsHTTPURL(t *testing.T) {
	assert.True(t, CheckImageData("https://cdn.example.com/mask.png").Valid)
	assert.True(t, CheckImageData("http://cdn.example.com/mask.png").Valid)
}

func TestCheckImageDataRejectsOtherSchemes(t *testing.T) {
	tests := []string{
		"ftp://example.com/mask.png",
		"file:///etc/passwd",
		"javascript:alert(1)",
		"not a url",
	}
	for _, raw := range tests {
		result := CheckImageData(raw)
		assert.False(t, result.Valid, raw)
		require.NotNil(t, result.Error, raw)
	}
}

func TestCheckImageDataRejectsBadDataURIs(t *testing.T) {
	tests := []struct {
		name    string
		dataURI string
	}{
		{"no payload separator", "data:image/png;base64"},
		{"not base64", "data:image/png;base64,!!!not-base64!!!"},
		{"empty payload", "data:image/png;base64,"},
		{"payload is not an image", "data:image/png;base64,aGVsbG8gd29ybGQ="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckImageData(tt.dataURI)
			assert.False(t, result.Valid)
			require.NotNil(t, result.Error)
		})
	}
}
