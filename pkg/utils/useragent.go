package utils

import (
	"fmt"

	"github.com/avct/uasurfer"
)

type UserAgentInfo struct {
	Device  string
	OS      string
	Browser string
	Locale  string
}

// ParseUserAgent classifies the caller's device, OS and browser from the
// User-Agent header and derives the locale from Accept-Language. Returns nil
// when the agent cannot be classified (bots, curl, empty header).
func ParseUserAgent(uaString string, acceptLanguage string) *UserAgentInfo {
	ua := uasurfer.Parse(uaString)

	device := ""
	switch ua.DeviceType {
	case uasurfer.DeviceComputer:
		device = "Computer"
	case uasurfer.DeviceTablet:
		device = "Tablet"
	case uasurfer.DevicePhone:
		device = "Phone"
	case uasurfer.DeviceConsole:
		device = "Console"
	case uasurfer.DeviceWearable:
		device = "Wearable"
	case uasurfer.DeviceTV:
		device = "TV"
	default:
		return nil
	}

	return &UserAgentInfo{
		Device:  device,
		OS:      fmt.Sprintf("%s %d.%d", ua.OS.Name.String(), ua.OS.Version.Major, ua.OS.Version.Minor),
		Browser: fmt.Sprintf("%s %d.%d", ua.Browser.Name.String(), ua.Browser.Version.Major, ua.Browser.Version.Minor),
		Locale:  primaryLocale(acceptLanguage),
	}
}

// primaryLocale returns the first language tag from an Accept-Language value.
func primaryLocale(acceptLanguage string) string {
	if acceptLanguage == "" {
		return ""
	}
	for i := 0; i < len(acceptLanguage); i++ {
		if acceptLanguage[i] == ',' {
			return acceptLanguage[:i]
		}
	}
	return acceptLanguage
}
