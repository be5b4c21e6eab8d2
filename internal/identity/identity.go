package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyPool     = errors.New("empty pool")
	ErrBadTemplate   = errors.New("address template must contain exactly one {x} and one {y}")
	ErrUnknownDevice = errors.New("unknown device class")
)

// DeviceClass is the kind of device an identity pretends to be.
type DeviceClass int

const (
	Desktop DeviceClass = iota
	Mobile
	Tablet
)

// DeviceClasses lists every device class in declaration order.
var DeviceClasses = []DeviceClass{Desktop, Mobile, Tablet}

func (d DeviceClass) String() string {
	switch d {
	case Desktop:
		return "desktop"
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return fmt.Sprintf("device(%d)", int(d))
	}
}

// Title returns the capitalised display name, e.g. "Desktop".
func (d DeviceClass) Title() string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseDeviceClass maps a case-insensitive name to a DeviceClass.
func ParseDeviceClass(s string) (DeviceClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desktop":
		return Desktop, nil
	case "mobile":
		return Mobile, nil
	case "tablet":
		return Tablet, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDevice, s)
}

// MarshalText encodes the class by name.
func (d DeviceClass) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts any name ParseDeviceClass does.
func (d *DeviceClass) UnmarshalText(b []byte) error {
	dc, err := ParseDeviceClass(string(b))
	if err != nil {
		return err
	}
	*d = dc
	return nil
}

// Identity is one simulated visitor profile. It is replaced wholesale on
// every rotation and never mutated.
type Identity struct {
	ID          string      `json:"id"`
	Address     string      `json:"address"`
	DeviceClass DeviceClass `json:"device_class"`
	AgentString string      `json:"agent"`
	Region      string      `json:"region"`
	Screen      string      `json:"screen,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Pools holds the configured value sets identities are drawn from.
type Pools struct {
	AddressTemplates []string
	Regions          []string
	Agents           map[DeviceClass][]string
	Screens          map[DeviceClass][]string // optional
}

// Validate reports the first problem that would make sampling impossible.
func (p Pools) Validate() error {
	if len(p.AddressTemplates) == 0 {
		return fmt.Errorf("address templates: %w", ErrEmptyPool)
	}
	for _, tmpl := range p.AddressTemplates {
		if strings.Count(tmpl, "{x}") != 1 || strings.Count(tmpl, "{y}") != 1 {
			return fmt.Errorf("%q: %w", tmpl, ErrBadTemplate)
		}
	}
	if len(p.Regions) == 0 {
		return fmt.Errorf("countries: %w", ErrEmptyPool)
	}
	for _, dc := range DeviceClasses {
		if len(p.Agents[dc]) == 0 {
			return fmt.Errorf("%s user agents: %w", dc, ErrEmptyPool)
		}
	}
	return nil
}
