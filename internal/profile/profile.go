package profile

import "sort"

// DefaultName is used when no profile is requested.
const DefaultName = "balanced"

// Profile defines encoding parameters for a use case.
type Profile struct {
	Name    string
	Format  string // output format: jpeg or webp
	Quality int    // encoding quality 1-100
}

// Built-in profiles.
var profiles = map[string]Profile{
	"balanced": {
		Name:    "balanced",
		Format:  "jpeg",
		Quality: 80,
	},
	"high": {
		Name:    "high",
		Format:  "jpeg",
		Quality: 92,
	},
	"small": {
		Name:    "small",
		Format:  "jpeg",
		Quality: 55,
	},
	"webp": {
		Name:    "webp",
		Format:  "webp",
		Quality: 80,
	},
}

// Get returns a profile by name. Falls back to balanced if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Override returns p with a non-zero quality or non-empty format applied.
func (p Profile) Override(quality int, format string) Profile {
	if quality != 0 {
		p.Quality = quality
	}
	if format != "" {
		p.Format = format
	}
	return p
}
