package recordstore

import "testing"

func TestBodyRoundTrip(t *testing.T) {
	bodies := []string{
		"",
		"plain text",
		"<p>Hello, <strong>world</strong>!</p>",
		`<img src="https://img.example/a.png?w=100&h=50" alt="a & b">`,
		"unicode: xin chào thế giới ✍️",
		"percent signs: 100% done & 50% left",
		"newlines\nand\ttabs",
	}
	for _, body := range bodies {
		if got := DecodeBodyOrRaw(EncodeBody(body)); got != body {
			t.Errorf("round trip changed body: %q -> %q", body, got)
		}
	}
}

func TestEncodeBodyIsPercentEncoded(t *testing.T) {
	encoded := EncodeBody("<p>hi</p>")
	if encoded == "<p>hi</p>" {
		t.Fatal("body was stored unencoded")
	}
	for _, c := range encoded {
		if c == '<' || c == '>' {
			t.Fatalf("encoded body still contains raw HTML: %q", encoded)
		}
	}
}

func TestDecodeBodyOrRawFallsBackOnMalformedInput(t *testing.T) {
	// Legacy records were written without encoding; "%ZZ" is not a valid
	// escape, so the raw string must come back untouched.
	raw := "50%Z discount <b>today</b>"
	if got := DecodeBodyOrRaw(raw); got != raw {
		t.Errorf("expected raw fallback, got %q", got)
	}
}
