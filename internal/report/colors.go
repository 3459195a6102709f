package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbColorRe = regexp.MustCompile(`^(?i)rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*\d*\.?\d+\s*)?\)$`)
)

// NormalizeColor converts a colour value to uppercase 6-digit hex form.
// 3-digit hex shorthand is expanded, rgb()/rgba() strings are converted with
// channels clamped to [0,255] and alpha ignored, empty input yields "" and
// anything else passes through unchanged. Never errors.
func NormalizeColor(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}

	if m := hexColorRe.FindStringSubmatch(v); m != nil {
		hex := strings.ToUpper(m[1])
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		return "#" + hex
	}

	if m := rgbColorRe.FindStringSubmatch(v); m != nil {
		r := clampChannel(m[1])
		g := clampChannel(m[2])
		b := clampChannel(m[3])
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}

	// Best-effort passthrough for unknown formats.
	return v
}

// NormalizeColorOr is NormalizeColor with a caller-supplied fallback for
// empty input. The car detail view passes white for swatch rendering; list
// contexts keep the empty default.
func NormalizeColorOr(value, fallback string) string {
	if c := NormalizeColor(value); c != "" {
		return c
	}
	return fallback
}

func clampChannel(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}
