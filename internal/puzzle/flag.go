package puzzle

import "github.com/spf13/pflag"

// The value types double as pflag.Value so cobra commands validate them
// while parsing flags instead of after.

var (
	_ pflag.Value = (*Year)(nil)
	_ pflag.Value = (*Day)(nil)
	_ pflag.Value = (*Part)(nil)
	_ pflag.Value = (*Session)(nil)
)

func (y *Year) Set(s string) error {
	v, err := ParseYear(s)
	if err != nil {
		return err
	}
	*y = v
	return nil
}

func (y *Year) Type() string { return "year" }

func (d *Day) Set(s string) error {
	v, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d *Day) Type() string { return "day" }

func (p *Part) Set(s string) error {
	v, err := ParsePart(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *Part) Type() string { return "part" }

func (s *Session) Set(v string) error {
	parsed, err := ParseSession(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *Session) Type() string { return "token" }
