package utils

import (
	"fmt"
	"strings"
)

// googleStorageHost is the public URL prefix the storage client writes
// into product and deal image fields.
const googleStorageHost = "https://storage.googleapis.com/"

// ExtractObjectPath turns a stored public image URL back into the bucket
// object path ("products/..." or "deals/...") so the object can be
// deleted when its record goes away.
func ExtractObjectPath(url string) (string, error) {
	rest, ok := strings.CutPrefix(url, googleStorageHost)
	if !ok {
		return "", fmt.Errorf("not a storage URL: %q", url)
	}

	// First segment is the bucket name, the rest is the object path.
	_, objectPath, ok := strings.Cut(rest, "/")
	if !ok || objectPath == "" {
		return "", fmt.Errorf("storage URL %q has no object path", url)
	}

	return objectPath, nil
}
