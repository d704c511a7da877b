// Package memstat reports the process's resident memory, for the summary
// row the CLI prints when a run finishes. On Linux it reads the resident
// page count from /proc/self/statm; elsewhere it falls back to the Go
// runtime's count of all memory it has obtained from the OS.
package memstat

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// UsageKb returns the process's resident set size in kilobytes.
func UsageKb() int64 {
	if kb, ok := statmResidentKb(); ok {
		return kb
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return int64(ms.Sys / 1024)
}

// statmResidentKb reads the second field of /proc/self/statm (resident
// pages) and converts it to kilobytes.
func statmResidentKb() (int64, bool) {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0, false
	}
	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0, false
	}
	pages, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return pages * int64(os.Getpagesize()) / 1024, true
}
