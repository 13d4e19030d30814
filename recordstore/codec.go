package recordstore

import "net/url"

// Post bodies are percent-encoded before they are persisted and decoded
// after retrieval. The convention exists because the record store mangles
// raw HTML in document fields; every read and write path must honor it or
// the field is corrupted for all future readers.

// EncodeBody percent-encodes an HTML body for storage.
func EncodeBody(body string) string {
	return url.QueryEscape(body)
}

// DecodeBodyOrRaw percent-decodes a stored body. Malformed escapes are not
// an error: legacy records exist whose bodies were written unencoded, and
// rendering those raw beats failing the whole read.
func DecodeBodyOrRaw(stored string) string {
	decoded, err := url.QueryUnescape(stored)
	if err != nil {
		return stored
	}
	return decoded
}
