package config

import (
	"encoding"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is time.Duration which is represented as a string like "1h30m" in configuration files.
type Duration time.Duration

var (
	_ encoding.TextUnmarshaler = new(Duration)
	_ yaml.Unmarshaler         = new(Duration)
)

func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration: %q", text)
	}
	*d = Duration(duration)
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(value))
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
