// Package useragent derives browser and platform flags from a user agent
// string by substring detection.
package useragent

import "strings"

// Info holds the detected flags.
type Info struct {
	UA string

	IE           bool
	Firefox      bool
	Chrome       bool
	Safari       bool
	IPhone       bool
	IPad         bool
	Android      bool
	IOS          bool
	WindowsPhone bool
	Mobile       bool
	Windows      bool
	Mac          bool
	Linux        bool
	Desktop      bool
}

// Parse detects the flags of ua.
func Parse(ua string) Info {
	has := func(s string) bool { return strings.Contains(ua, s) }

	i := Info{
		UA:           ua,
		IE:           has("MSIE"),
		Firefox:      has("Firefox"),
		Chrome:       has("Chrome"),
		IPhone:       has("iPhone"),
		IPad:         has("iPad"),
		Android:      has("Android"),
		WindowsPhone: has("Windows Phone"),
		Windows:      has("Windows NT"),
		Mac:          has("Macintosh"),
		Linux:        has("Linux"),
	}
	i.Safari = has("Safari") && !i.Chrome
	i.IOS = i.IPhone || i.IPad
	i.Mobile = i.IOS || i.WindowsPhone || i.Android
	i.Desktop = !i.Mobile
	return i
}

// Contains reports whether the user agent contains s.
func (i Info) Contains(s string) bool {
	return strings.Contains(i.UA, s)
}
