package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kokodio/tdd/pkg/geom"
)

// Keys have the shape
//
//	[v<layout version>:]<kind>:<sha256 of the JSON-encoded parts>
//
// where kind is "layout" for placements and "artifact" for rendered files.
// The version scope comes from [ScopedKeyer]; Redis adds its own prefix on
// top. Bumping cloud.LayoutVersion therefore orphans every older entry
// instead of serving a layout produced by a different placement order.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashSizes fingerprints a size sequence. Order matters: the same sizes in
// a different order produce a different cloud. An empty or nil sequence
// hashes to the empty-input digest.
func HashSizes(sizes []geom.Size) string {
	h := sha256.New()
	buf := make([]byte, 0, 24)
	for _, s := range sizes {
		buf = strconv.AppendInt(buf[:0], int64(s.Width), 10)
		buf = append(buf, 'x')
		buf = strconv.AppendInt(buf, int64(s.Height), 10)
		buf = append(buf, ';')
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}
