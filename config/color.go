package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RGB is an opaque color. Alpha is supplied per draw call.
type RGB struct {
	R, G, B uint8
}

// ParseRGB accepts "r, g, b" (the CSS rgba() channel list) or "#rrggbb".
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return RGB{}, fmt.Errorf("color %q: want #rrggbb", s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("color %q: %w", s, err)
		}
		return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("color %q: want three channels", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("color %q: channel %d: %w", s, i, err)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// String formats the color as a channel list.
func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *RGB) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRGB(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c RGB) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}
