package email

import (
	"encoding/base64"
	"strings"
)

// Decode walks the MIME payload tree and returns the concatenation of all
// text/plain leaf bodies and all text/html leaf bodies, in document order.
// A payload with no child parts that carries a body directly is treated as
// plain text. Link extraction runs over the recovered HTML.
func Decode(payload *MessagePart) DecodedContent {
	body, html := decodeParts(payload)
	return DecodedContent{
		Body:  body,
		HTML:  html,
		Links: ExtractLinks(html),
	}
}

// decodeParts is a pure recursive descent over the part tree. Sibling parts
// contribute in order; no part is counted twice.
func decodeParts(payload *MessagePart) (body, html string) {
	if payload == nil {
		return "", ""
	}

	if len(payload.Parts) > 0 {
		for _, part := range payload.Parts {
			if len(part.Parts) > 0 {
				nestedBody, nestedHTML := decodeParts(part)
				body += nestedBody
				html += nestedHTML
				continue
			}
			switch part.MimeType {
			case "text/plain":
				body += decodeBase64(part.Body)
			case "text/html":
				html += decodeBase64(part.Body)
			}
		}
		return body, html
	}

	return decodeBase64(payload.Body), ""
}

// decodeBase64 decodes a Gmail body segment. Gmail uses URL-safe base64,
// usually unpadded; both variants are accepted. Malformed data yields an
// empty string so one bad part cannot blank out the rest of the message.
func decodeBase64(data string) string {
	if data == "" {
		return ""
	}
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "=")); err == nil {
		return string(decoded)
	}
	return ""
}
