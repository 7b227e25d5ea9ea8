// Package dataurl encodes and decodes base64 data URLs, the locator format
// the upload flow hands around so the declared media type always travels
// with the bytes.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const prefix = "data:"

var (
	ErrNotDataURL = errors.New("dataurl: not a data URL")
	ErrMalformed  = errors.New("dataurl: malformed data URL")
)

// Encode renders mime-typed bytes as a base64 data URL.
func Encode(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// Parse splits a base64 data URL into its declared media type and decoded
// bytes. The media type is read from the URL header, never guessed.
func Parse(s string) (string, []byte, error) {
	if !strings.HasPrefix(s, prefix) {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(s[len(prefix):], ",")
	if !ok {
		return "", nil, ErrMalformed
	}
	mime, encoding := meta, ""
	if m, e, ok := strings.Cut(meta, ";"); ok {
		mime, encoding = m, e
	}
	if encoding != "base64" {
		return "", nil, fmt.Errorf("%w: unsupported encoding %q", ErrMalformed, encoding)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if mime == "" {
		mime = DetectMIME(data)
	}
	return mime, data, nil
}

// DetectMIME sniffs the media type from encoded content.
func DetectMIME(data []byte) string {
	return http.DetectContentType(data)
}
