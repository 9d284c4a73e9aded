package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewReferenceCode returns a short operator-friendly reservation reference,
// e.g. "RES-5F3A9C0D12B4".
func NewReferenceCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RES-" + raw[:12]
}
