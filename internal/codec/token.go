package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

// urlSafe maps the standard base64 alphabet onto the URL-safe one.
var urlSafe = strings.NewReplacer("+", "-", "/", "_")

// EncodeToken serializes a compact form to a URL-safe token:
// compact JSON, base64 with the URL alphabet, padding stripped.
func EncodeToken(compact []any) (string, error) {
	data, err := json.Marshal(compact)
	if err != nil {
		return "", fmt.Errorf("codec: marshal compact form: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeToken parses a share token back into its raw JSON value.
// The direct path accepts both base64 alphabets with or without
// padding; if it fails to yield JSON, the legacy double-encoded
// variant (standard base64 wrapping a percent-encoded payload) is
// tried. Malformed or empty tokens yield apperr.ErrNoState.
func DecodeToken(token string) (any, error) {
	if token == "" {
		return nil, apperr.ErrNoState
	}

	normalized := strings.TrimRight(urlSafe.Replace(token), "=")
	if data, err := base64.RawURLEncoding.DecodeString(normalized); err == nil {
		var raw any
		if err := json.Unmarshal(data, &raw); err == nil {
			return raw, nil
		}
	}

	if raw, err := decodeLegacyToken(token); err == nil {
		return raw, nil
	}

	return nil, fmt.Errorf("codec: malformed token: %w", apperr.ErrNoState)
}

// decodeLegacyToken handles the oldest token generation, which
// percent-encoded the JSON before base64-encoding it.
func decodeLegacyToken(token string) (any, error) {
	if pad := len(token) % 4; pad != 0 {
		token += strings.Repeat("=", 4-pad)
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("codec: legacy base64: %w", err)
	}
	unescaped, err := url.PathUnescape(string(data))
	if err != nil {
		return nil, fmt.Errorf("codec: legacy unescape: %w", err)
	}
	var raw any
	if err := json.Unmarshal([]byte(unescaped), &raw); err != nil {
		return nil, fmt.Errorf("codec: legacy json: %w", err)
	}
	return raw, nil
}

// Encode is the full share pipeline: document → compact form → token.
func Encode(d *models.Document) (string, error) {
	compact := Compact(d)
	if compact == nil {
		return "", fmt.Errorf("codec: document has no master page")
	}
	return EncodeToken(compact)
}

// Decode is the full restore pipeline: token → raw JSON → document.
// Any failure surfaces as apperr.ErrNoState so callers fall through
// to the next state source.
func Decode(token string, now time.Time) (*models.Document, error) {
	raw, err := DecodeToken(token)
	if err != nil {
		return nil, err
	}
	return Expand(raw, now)
}
