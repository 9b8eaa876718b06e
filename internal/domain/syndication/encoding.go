package syndication

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// iriSafe lists the printable ASCII characters, beyond the unreserved
// set, that the section 3.1 RFC 3987 conversion leaves unescaped.
const iriSafe = "/#%[]=:;$&()+,!?*"

// IRIToURI converts an Internationalized Resource Identifier to a URI
// suitable for the wire: every byte outside the allowed set is
// percent-encoded, UTF-8 bytewise. Already-escaped sequences are left
// alone ('%' is itself an allowed byte), so the transform is safe to
// apply to strings that are URIs already.
func IRIToURI(iri string) string {
	if iri == "" {
		return iri
	}
	var sb strings.Builder
	for i := 0; i < len(iri); i++ {
		b := iri[i]
		if isIRISafe(b) {
			sb.WriteByte(b)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", b)
	}
	return sb.String()
}

func isIRISafe(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == '~':
		return true
	}
	return strings.IndexByte(iriSafe, b) >= 0
}

// newEncodedWriter wraps w so that bytes written to the returned writer
// come out transcoded from UTF-8 to the named encoding. The returned
// close function flushes the transcoder and must be called once writing
// is done. UTF-8 passes through untouched. Runes the target encoding
// cannot represent surface as errors from Write, not silent
// substitutions.
func newEncodedWriter(w io.Writer, name string) (io.Writer, func() error, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return w, func() error { return nil }, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, nil, fmt.Errorf("syndication: unknown encoding %q: %w", name, err)
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw.Close, nil
}
