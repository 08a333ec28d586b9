package gcs

import (
	"net/url"
	"strings"
)

// ObjectFromURL extracts bucket and object name from the URL shapes product
// images are stored under:
//
//	https://firebasestorage.googleapis.com/v0/b/<bucket>/o/<escaped object>?alt=media&token=...
//	https://storage.googleapis.com/<bucket>/<object>
//	https://<bucket>.storage.googleapis.com/<object>
//	gs://<bucket>/<object>
func ObjectFromURL(raw string) (bucket, object string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", "", false
	}

	switch {
	case u.Scheme == "gs":
		bucket, object = u.Host, strings.TrimPrefix(u.Path, "/")

	case u.Host == "firebasestorage.googleapis.com":
		// The object segment is a single escaped path element, so work on the raw path.
		parts := strings.SplitN(strings.TrimPrefix(u.EscapedPath(), "/"), "/", 5)
		if len(parts) != 5 || parts[0] != "v0" || parts[1] != "b" || parts[3] != "o" {
			return "", "", false
		}
		bucket = parts[2]
		object, err = url.PathUnescape(parts[4])
		if err != nil {
			return "", "", false
		}

	case u.Host == "storage.googleapis.com":
		parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
		if len(parts) != 2 {
			return "", "", false
		}
		bucket, object = parts[0], parts[1]

	case strings.HasSuffix(u.Host, ".storage.googleapis.com"):
		bucket = strings.TrimSuffix(u.Host, ".storage.googleapis.com")
		object = strings.TrimPrefix(u.Path, "/")

	default:
		return "", "", false
	}

	if bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}
