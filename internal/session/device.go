package session

import (
	"regexp"
	"strings"
)

// Device classes derived from the user agent.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

var (
	tabletPattern = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobilePattern = regexp.MustCompile(`Mobile|Android|iP(hone|od)|IEMobile|BlackBerry|Kindle|Silk-Accelerated|(hpw|web)OS|Opera M(obi|ini)`)
)

// ClassifyDevice buckets a user-agent string into mobile, tablet or
// desktop. The tablet test runs first so strings that also match a mobile
// pattern (iPad, non-phone Android) still classify as tablet.
func ClassifyDevice(userAgent string) string {
	lower := strings.ToLower(userAgent)
	if tabletPattern.MatchString(userAgent) ||
		(strings.Contains(lower, "android") && !strings.Contains(lower, "mobi")) {
		return DeviceTablet
	}
	if mobilePattern.MatchString(userAgent) {
		return DeviceMobile
	}
	return DeviceDesktop
}
