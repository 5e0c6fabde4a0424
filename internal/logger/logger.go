package logger

import (
	"fmt"
	"time"
)

// ANSI colors. Output is for interactive terminals; redirected output keeps
// the escapes, which every modern pager handles.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

func stamp() string {
	return time.Now().Format("15:04:05")
}

func line(color, level, tag, msg string) {
	fmt.Printf("%s%s%s %s%-5s%s %s[%s]%s %s\n", dim, stamp(), reset, color, level, reset, bold, tag, reset, msg)
}

// Info logs a neutral message under a component tag.
func Info(tag, msg string) {
	line(cyan, "INFO", tag, msg)
}

// Success logs a completed step.
func Success(tag, msg string) {
	line(green, "OK", tag, msg)
}

// Warn logs a recoverable problem.
func Warn(tag, msg string) {
	line(yellow, "WARN", tag, msg)
}

// Error logs a failure.
func Error(tag, msg string) {
	line(red, "ERROR", tag, msg)
}

// Banner prints the startup header with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Printf("%s%sah-flipper%s %s%s%s\n", bold, cyan, reset, dim, version, reset)
}

// Section prints a visual divider before a group of related log lines.
func Section(name string) {
	fmt.Printf("%s── %s ──%s\n", dim, name, reset)
}

// Stats prints a single key/value metric.
func Stats(key string, value interface{}) {
	fmt.Printf("%s%-24s%s %v\n", dim, key, reset, value)
}
