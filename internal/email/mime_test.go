package email

import (
	"encoding/base64"
	"testing"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestDecode_SinglePlainTextPart(t *testing.T) {
	payload := &MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*MessagePart{
			{MimeType: "text/plain", Body: b64("Meeting Friday 3pm at Room 2")},
		},
	}

	decoded := Decode(payload)

	if decoded.Body != "Meeting Friday 3pm at Room 2" {
		t.Errorf("Expected plain body, got %q", decoded.Body)
	}
	if decoded.HTML != "" {
		t.Errorf("Expected empty HTML, got %q", decoded.HTML)
	}
	if len(decoded.Links) != 0 {
		t.Errorf("Expected no links, got %v", decoded.Links)
	}
}

func TestDecode_ConcatenatesSiblingsInOrder(t *testing.T) {
	payload := &MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*MessagePart{
			{MimeType: "text/plain", Body: b64("first ")},
			{MimeType: "text/html", Body: b64("<p>one</p>")},
			{MimeType: "text/plain", Body: b64("second")},
			{MimeType: "text/html", Body: b64("<p>two</p>")},
		},
	}

	decoded := Decode(payload)

	if decoded.Body != "first second" {
		t.Errorf("Expected concatenated plain parts in document order, got %q", decoded.Body)
	}
	if decoded.HTML != "<p>one</p><p>two</p>" {
		t.Errorf("Expected concatenated HTML parts in document order, got %q", decoded.HTML)
	}
}

func TestDecode_NestedMultipart(t *testing.T) {
	payload := &MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*MessagePart{
					{MimeType: "text/plain", Body: b64("inner plain")},
					{MimeType: "text/html", Body: b64("<b>inner html</b>")},
				},
			},
			{MimeType: "text/plain", Body: b64(" outer plain")},
		},
	}

	decoded := Decode(payload)

	if decoded.Body != "inner plain outer plain" {
		t.Errorf("Expected deep-first concatenation, got %q", decoded.Body)
	}
	if decoded.HTML != "<b>inner html</b>" {
		t.Errorf("Expected nested HTML, got %q", decoded.HTML)
	}
}

func TestDecode_MalformedBase64YieldsEmptyLeaf(t *testing.T) {
	payload := &MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*MessagePart{
			{MimeType: "text/plain", Body: "!!!not-base64!!!"},
			{MimeType: "text/plain", Body: b64("still here")},
		},
	}

	decoded := Decode(payload)

	// One malformed part must not blank out the rest of the message.
	if decoded.Body != "still here" {
		t.Errorf("Expected malformed leaf to contribute nothing, got %q", decoded.Body)
	}
}

func TestDecode_BodyWithoutPartsTreatedAsPlainText(t *testing.T) {
	payload := &MessagePart{
		MimeType: "text/html",
		Body:     b64("plain despite mime type"),
	}

	decoded := Decode(payload)

	if decoded.Body != "plain despite mime type" {
		t.Errorf("Expected direct body treated as plain text, got %q", decoded.Body)
	}
	if decoded.HTML != "" {
		t.Errorf("Expected no HTML for direct body, got %q", decoded.HTML)
	}
}

func TestDecode_UnpaddedBase64(t *testing.T) {
	raw := base64.RawURLEncoding.EncodeToString([]byte("unpadded body"))
	payload := &MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*MessagePart{
			{MimeType: "text/plain", Body: raw},
		},
	}

	decoded := Decode(payload)

	if decoded.Body != "unpadded body" {
		t.Errorf("Expected unpadded base64url to decode, got %q", decoded.Body)
	}
}

func TestDecode_NilPayload(t *testing.T) {
	decoded := Decode(nil)

	if decoded.Body != "" || decoded.HTML != "" || len(decoded.Links) != 0 {
		t.Errorf("Expected empty content for nil payload, got %+v", decoded)
	}
}

func TestDecode_LengthAccounting(t *testing.T) {
	// Concatenated output length equals the sum of decoded leaf lengths,
	// with failed leaves contributing zero.
	leaves := []string{"alpha", "beta!", "gamma and delta"}
	parts := []*MessagePart{
		{MimeType: "text/plain", Body: b64(leaves[0])},
		{MimeType: "text/plain", Body: "%%broken%%"},
		{MimeType: "text/plain", Body: b64(leaves[1])},
		{MimeType: "text/plain", Body: b64(leaves[2])},
	}
	payload := &MessagePart{MimeType: "multipart/mixed", Parts: parts}

	decoded := Decode(payload)

	want := len(leaves[0]) + len(leaves[1]) + len(leaves[2])
	if len(decoded.Body) != want {
		t.Errorf("Expected body length %d, got %d (%q)", want, len(decoded.Body), decoded.Body)
	}
}
