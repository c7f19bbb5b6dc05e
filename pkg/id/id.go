package id

import (
	"crypto/md5"
	"io"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// New random uuid string
func New() string {
	return foxuuid.New()
}

// Trace deterministic uuid derived from a trace and a modifier,
// used to keep journal entries idempotent per logical event
func Trace(trace, modifier string) string {
	return foxuuid.Modify(trace, modifier)
}

// UUIDFromString uuid derived from an arbitrary string
func UUIDFromString(s string) string {
	h := md5.New()
	_, _ = io.WriteString(h, s)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	id, _ := uuid.FromBytes(sum)
	return id.String()
}
