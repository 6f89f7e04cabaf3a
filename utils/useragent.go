package utils

import (
	"strings"

	ua "github.com/mileusna/useragent"
)

// ParseUserAgent reduces a User-Agent header to browser, OS and device class for
// request logs.
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if userAgent == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsedUA := ua.Parse(userAgent)

	browser = "Unknown Browser"
	if parsedUA.Name != "" {
		browser = parsedUA.Name
	}

	os = "Unknown OS"
	if parsedUA.OS != "" {
		os = parsedUA.OS
	}

	device = "Desktop"
	switch {
	case parsedUA.Bot:
		device = "Bot"
	case parsedUA.Tablet:
		device = "Tablet"
	case parsedUA.Mobile:
		device = "Mobile"
	}

	return strings.TrimSpace(browser), strings.TrimSpace(os), device
}
