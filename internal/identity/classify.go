package identity

import "strings"

// Classify guesses the device class a user agent string belongs to.
// Mobile markers win over tablet markers, so an Android tablet agent that
// also says "Mobile" classifies as Mobile.
func Classify(agent string) DeviceClass {
	ua := strings.ToLower(agent)
	for _, marker := range []string{"mobile", "android", "iphone"} {
		if strings.Contains(ua, marker) {
			return Mobile
		}
	}
	for _, marker := range []string{"tablet", "ipad"} {
		if strings.Contains(ua, marker) {
			return Tablet
		}
	}
	return Desktop
}

// Mismatch describes a pool entry whose agent string looks like another
// device class.
type Mismatch struct {
	Pool     DeviceClass
	Detected DeviceClass
	Agent    string
}

// CheckAgents returns every agent whose classification disagrees with the
// pool it is configured in.
func CheckAgents(agents map[DeviceClass][]string) []Mismatch {
	var out []Mismatch
	for _, dc := range DeviceClasses {
		for _, ua := range agents[dc] {
			if got := Classify(ua); got != dc {
				out = append(out, Mismatch{Pool: dc, Detected: got, Agent: ua})
			}
		}
	}
	return out
}
