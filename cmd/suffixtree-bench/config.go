package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Profile is a bench run loaded from a TOML file.
type Profile struct {
	Seed      int64      `toml:"seed"`
	Workers   int        `toml:"workers"`
	Verify    bool       `toml:"verify"`
	Workloads []Workload `toml:"workload"`
}

// Workload describes one batch of random sequences and the queries run
// against each of them.
type Workload struct {
	Name       string `toml:"name"`
	Alphabet   string `toml:"alphabet"`
	Distinct   int    `toml:"distinct"` // characters drawn from; 0 = whole alphabet
	Length     int    `toml:"length"`
	Count      int    `toml:"count"`
	Sentinel   string `toml:"sentinel"`
	Implicit   bool   `toml:"implicit"`
	Patterns   int    `toml:"patterns"`
	MinPattern int    `toml:"min-pattern"`
	MaxPattern int    `toml:"max-pattern"`
}

// defaultProfile mirrors the stress runs the tree is tested against: many
// short strings, fewer long ones, small and full alphabets.
func defaultProfile() Profile {
	return Profile{
		Seed:    1,
		Workers: 4,
		Verify:  true,
		Workloads: []Workload{
			{Name: "small strings", Alphabet: "lowercase", Distinct: 26, Length: 10, Count: 10000, Patterns: 10, MinPattern: 1, MaxPattern: 4},
			{Name: "medium strings", Alphabet: "lowercase", Distinct: 8, Length: 50, Count: 5000, Patterns: 50, MinPattern: 2, MaxPattern: 8},
			{Name: "large strings", Alphabet: "lowercase", Distinct: 26, Length: 1000, Count: 1000, Patterns: 1000, MinPattern: 3, MaxPattern: 20},
			{Name: "massive dna", Alphabet: "set:ACGT$", Distinct: 4, Length: 100000, Count: 10, Sentinel: "$", Patterns: 1000, MinPattern: 8, MaxPattern: 32},
			{Name: "printable", Alphabet: "printable", Length: 50000, Count: 10, Patterns: 1000, MinPattern: 1, MaxPattern: 3},
		},
	}
}

// LoadProfile reads a profile from path, filling unset fields from the
// defaults.
func LoadProfile(path string) (Profile, error) {
	p := Profile{Seed: 1, Workers: 4, Verify: true}
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Profile{}, errors.Wrapf(err, "loading profile %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Profile{}, errors.Errorf("unknown profile key %q in %s", undecoded[0].String(), path)
	}
	if len(p.Workloads) == 0 {
		return Profile{}, errors.Errorf("profile %s has no workloads", path)
	}
	for i := range p.Workloads {
		if err := p.Workloads[i].normalize(); err != nil {
			return Profile{}, errors.Wrapf(err, "workload %d", i)
		}
	}
	return p, nil
}

func (w *Workload) normalize() error {
	if w.Name == "" {
		w.Name = w.Alphabet
	}
	if w.Length < 1 {
		return errors.Errorf("%s: length must be positive", w.Name)
	}
	if w.Count < 1 {
		w.Count = 1
	}
	if len(w.Sentinel) > 1 {
		return errors.Errorf("%s: sentinel must be a single character", w.Name)
	}
	if w.Implicit && w.Sentinel == "" {
		return errors.Errorf("%s: implicit trees need a sentinel to answer every query", w.Name)
	}
	if w.MinPattern < 1 {
		w.MinPattern = 1
	}
	if w.MaxPattern < w.MinPattern {
		w.MaxPattern = w.MinPattern
	}
	return nil
}

// sentinel returns the sentinel byte, or 0 for none.
func (w *Workload) sentinel() byte {
	if w.Sentinel == "" {
		return 0
	}
	return w.Sentinel[0]
}
