package uri

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ImageCheckResult represents the result of validating NFT image data
type ImageCheckResult struct {
	Valid    bool
	Error    *string
	MimeType string // Detected mime type, set for data URIs only
}

// CheckImageData validates the image reference attached to a mint.
// It accepts either an http(s) URL or an image data URI whose base64
// payload sniffs as a real image.
func CheckImageData(imageData string) ImageCheckResult {
	if strings.HasPrefix(imageData, "data:image/") {
		return checkImageDataURI(imageData)
	}
	return checkImageURL(imageData)
}

// checkImageDataURI validates a data URI
// It checks:
// 1. Format follows RFC 2397 with a base64 payload
// 2. Payload content sniffs as image/* using magic numbers
func checkImageDataURI(dataURI string) ImageCheckResult {
	idx := strings.Index(dataURI, ",")
	if idx < 0 {
		return invalid("invalid data URI: missing payload separator")
	}

	payload, err := base64.StdEncoding.DecodeString(dataURI[idx+1:])
	if err != nil {
		return invalid("invalid data URI: payload is not base64")
	}
	if len(payload) == 0 {
		return invalid("invalid data URI: empty data")
	}

	detected := mimetype.Detect(payload).String()
	if !strings.HasPrefix(detected, "image/") {
		return invalid(fmt.Sprintf("data URI payload is not an image: detected %s", detected))
	}

	return ImageCheckResult{
		Valid:    true,
		MimeType: detected,
	}
}

// checkImageURL validates that the reference is a well-formed http(s) URL.
// No health check is performed; remote content is fetched lazily by clients.
func checkImageURL(rawURL string) ImageCheckResult {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return invalid("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return invalid("only HTTP/HTTPS URLs are supported")
	}
	return ImageCheckResult{Valid: true}
}

func invalid(msg string) ImageCheckResult {
	return ImageCheckResult{
		Valid: false,
		Error: &msg,
	}
}
