//go:build !linux

package source

import (
	"fmt"
	"os"
)

// readAudit is unsupported off Linux; the auditd format only occurs there.
func readAudit(_ *os.File) ([]string, error) {
	return nil, fmt.Errorf("audit source format is only supported on linux")
}
