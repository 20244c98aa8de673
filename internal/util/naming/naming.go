package naming

import (
	"fmt"
	"time"
)

// Naming functions for sweep resources.
// Instance names follow the <prefix>-<zone> pattern so a sweep run can be
// identified and cleaned up by name alone.

// Instance returns the instance name for a zone, e.g. "vm-us-central1-a".
func Instance(prefix, zone string) string {
	return fmt.Sprintf("%s-%s", prefix, zone)
}

// ReportFile returns the default local report file name.
func ReportFile(prefix string) string {
	return fmt.Sprintf("%s-sweep-report.json", prefix)
}

// ReportObject returns the object key for an uploaded report.
func ReportObject(prefix string, t time.Time) string {
	return fmt.Sprintf("%s/sweep-%s.json", prefix, t.UTC().Format("20060102-150405"))
}
