package cli

import "suitekit/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	Processors  int
	NameFilter  string
	Tags        []string
	ExcludeTags []string
	FailFast    bool
	Verbose     bool
	Invocations bool
	OpenFaills  bool
	NoHistory   bool
	Limit       int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:  f.Processors,
		NameFilter:  f.NameFilter,
		Tags:        f.Tags,
		ExcludeTags: f.ExcludeTags,
		FailFast:    f.FailFast,
		Verbose:     f.Verbose,
		Invocations: f.Invocations,
		OpenFaills:  f.OpenFaills,
		NoHistory:   f.NoHistory,
		Limit:       f.Limit,
	}
}
