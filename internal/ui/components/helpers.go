// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the deepchat TUI.
package components

import (
	"strings"
	"time"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// toStr converts an integer to a string without using fmt package.
func toStr(n int) string {
	if n == 0 {
		return "0"
	}

	if n == -9223372036854775808 { // math.MinInt64
		return "-9223372036854775808"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}

// fmtNumber formats a number with thousand separators.
func fmtNumber(n int) string {
	// Handle math.MinInt64 specially since -math.MinInt64 overflows
	if n == -9223372036854775808 {
		return "-9,223,372,036,854,775,808"
	}

	if n < 0 {
		return "-" + fmtNumber(-n)
	}

	if n < 1000 {
		return toStr(n)
	}

	// Build from right to left
	s := toStr(n)
	result := ""
	count := 0

	for i := len(s) - 1; i >= 0; i-- {
		if count > 0 && count%3 == 0 {
			result = "," + result
		}
		result = string(s[i]) + result
		count++
	}

	return result
}

// fmtPercent formats a percentage with one decimal place.
func fmtPercent(p float64) string {
	negative := p < 0
	if negative {
		p = -p
	}

	// Round to tenths before splitting to avoid float truncation drift
	tenths := int(p*10 + 0.5)
	whole := tenths / 10
	frac := tenths % 10

	s := toStr(whole) + "." + toStr(frac) + "%"
	if negative {
		return "-" + s
	}
	return s
}

// =============================================================================
// TEXT LAYOUT HELPERS
// =============================================================================

// wordWrap wraps text to fit within the specified width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for lineIdx, line := range lines {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]

		for _, word := range words[1:] {
			if runeLen(currentLine)+1+runeLen(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}

		result.WriteString(currentLine)
	}

	return result.String()
}

// maxLineWidth returns the width of the longest line in runes (characters).
// This correctly handles Unicode text where len() would return byte count.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		lineWidth := runeLen(line)
		if lineWidth > maxWidth {
			maxWidth = lineWidth
		}
	}
	return maxWidth
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// runeLen returns the number of runes (characters) in a string.
func runeLen(s string) int {
	return len([]rune(s))
}

// =============================================================================
// TIME AND SIZE FORMATTING
// =============================================================================

// formatTime formats a time as "3:04 PM".
func formatTime(t time.Time) string {
	hour := t.Hour()
	minute := t.Minute()
	ampm := "AM"

	if hour >= 12 {
		ampm = "PM"
		if hour > 12 {
			hour -= 12
		}
	}
	if hour == 0 {
		hour = 12
	}

	minuteStr := toStr(minute)
	if minute < 10 {
		minuteStr = "0" + minuteStr
	}

	return toStr(hour) + ":" + minuteStr + " " + ampm
}

// formatDate formats a date as "Jan 5".
func formatDate(t time.Time) string {
	months := []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}

	month := months[t.Month()-1]
	day := t.Day()

	return month + " " + toStr(day)
}

// formatElapsed formats a duration for spinner timers: "3s", "1m12s", "1h4m".
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return toStr(int(d.Seconds())) + "s"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return toStr(mins) + "m" + toStr(secs) + "s"
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return toStr(hours) + "h" + toStr(mins) + "m"
}

// formatDurationMs formats a millisecond count for display: "850ms", "3.2s", "1m12s".
func formatDurationMs(ms int64) string {
	if ms < 1000 {
		return toStr(int(ms)) + "ms"
	}
	if ms < 60_000 {
		whole := ms / 1000
		frac := (ms % 1000) / 100
		return toStr(int(whole)) + "." + toStr(int(frac)) + "s"
	}
	mins := ms / 60_000
	secs := (ms % 60_000) / 1000
	return toStr(int(mins)) + "m" + toStr(int(secs)) + "s"
}

// formatBytes formats a byte count as a human-readable size.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return toStr(int(bytes)) + " B"
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB"}
	whole := bytes / div
	frac := (bytes % div) * 10 / div
	return toStr(int(whole)) + "." + toStr(int(frac)) + " " + units[exp]
}
