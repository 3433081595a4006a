//go:build linux

package source

import (
	"bufio"
	"fmt"
	"os"

	"github.com/elastic/go-libaudit/v2/auparse"
)

// readAudit parses Linux auditd log lines and normalizes each into a
// single message of the form TYPE[sequence]: raw data. Lines auparse
// rejects are skipped rather than failing the whole source.
func readAudit(f *os.File) ([]string, error) {
	var messages []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		msg, err := auparse.ParseLogLine(line)
		if err != nil {
			continue
		}
		messages = append(messages, fmt.Sprintf("%s[%d]: %s", msg.RecordType, msg.Sequence, msg.RawData))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit source: %w", err)
	}
	return messages, nil
}
