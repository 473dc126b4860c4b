package monitor

import (
	"regexp"

	flag "github.com/spf13/pflag"
)

// RegexpFlag is a pflag.Value that compiles its pattern as soon as it is set
type RegexpFlag struct {
	re *regexp.Regexp
}

// Ensure RegexpFlag implements pflag.Value
var _ flag.Value = (*RegexpFlag)(nil)

// String returns the pattern source, or "" when unset
func (f *RegexpFlag) String() string {
	if f == nil || f.re == nil {
		return ""
	}
	return f.re.String()
}

// Set compiles the pattern
func (f *RegexpFlag) Set(value string) error {
	re, err := Compile(value)
	if err != nil {
		return err
	}
	f.re = re
	return nil
}

// Type names the value in usage output
func (f *RegexpFlag) Type() string {
	return "regex"
}

// Regexp returns the compiled pattern, or nil when the flag was not given
func (f *RegexpFlag) Regexp() *regexp.Regexp {
	if f == nil {
		return nil
	}
	return f.re
}

// RegexpVarP defines a regex flag with a shorthand on fs
func RegexpVarP(fs *flag.FlagSet, f *RegexpFlag, name, shorthand, usage string) {
	fs.VarP(f, name, shorthand, usage)
}
