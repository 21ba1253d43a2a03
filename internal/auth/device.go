package auth

import (
	"strings"

	"github.com/mssola/useragent"
)

// DeviceLabel renders a short human-readable label for the client that
// signed in, recorded alongside the session for the settings page.
func DeviceLabel(rawUA string) string {
	if rawUA == "" {
		return ""
	}
	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	if name == "" {
		return "Unknown device"
	}
	if i := strings.IndexByte(version, '.'); i > 0 {
		version = version[:i]
	}
	label := name
	if version != "" {
		label += " " + version
	}
	if os := ua.OSInfo().Name; os != "" {
		label += " on " + os
	}
	return label
}
