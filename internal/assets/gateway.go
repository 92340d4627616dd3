package assets

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
)

// DefaultMaxUploadSize is the upload size limit when none is configured.
const DefaultMaxUploadSize = 10 << 20 // 10 MiB

var (
	// ErrTooLarge is returned for uploads exceeding the size limit. The
	// file is rejected before any store work happens.
	ErrTooLarge = errors.New("file is too large (max 10MB)")

	// ErrDisallowedType is returned when the filename matches none of the
	// configured upload patterns.
	ErrDisallowedType = errors.New("file type not allowed")
)

// PermissionRemediation is the operator-facing notice shown when an
// upload fails with a storage permission/policy error.
const PermissionRemediation = "storage permission denied: grant public insert/read permission on the asset directory"

// Gateway stores an uploaded binary and returns a durable public URL.
type Gateway interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
}

// permissionIndicators are message fragments that identify a storage
// permission/policy failure worth the dedicated remediation notice.
var permissionIndicators = []string{
	"permission",
	"policy",
	"unauthorized",
	"access denied",
	"row-level security",
}

// IsPermissionError reports whether an upload failure looks like a
// storage permission/policy problem rather than a transient one.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrPermission) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, indicator := range permissionIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
