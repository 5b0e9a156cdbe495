package quovadis

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Transition override metadata can be supplied declaratively as a TOML
// file mapping destination identities to custom specs:
//
//	[transition."main.DetailDestination"]
//	duration_ms = 350
//
//	[transition."main.DetailDestination".enter]
//	kind = "slide"
//	edge = "bottom"
//
//	[transition."main.DetailDestination".exit]
//	kind = "fade"
//
// Omitted pop pairs are derived by reversing the authored pair, so only
// one direction needs authoring.

type overridesFile struct {
	Transition map[string]specTOML `toml:"transition"`
}

type specTOML struct {
	DurationMS int64     `toml:"duration_ms"`
	Enter      *animTOML `toml:"enter"`
	Exit       *animTOML `toml:"exit"`
	PopEnter   *animTOML `toml:"pop_enter"`
	PopExit    *animTOML `toml:"pop_exit"`
}

type animTOML struct {
	Kind       string `toml:"kind"`
	Edge       string `toml:"edge"`
	DurationMS int64  `toml:"duration_ms"`
}

// LoadOverrides reads transition override metadata from a TOML file and
// registers every entry. Unknown kind or edge names are configuration
// errors.
func (r *Resolver) LoadOverrides(path string) error {
	var file overridesFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fmt.Errorf("transition overrides: %w", err)
	}
	for id, raw := range file.Transition {
		spec, err := raw.toSpec()
		if err != nil {
			return fmt.Errorf("transition overrides: %q: %w", id, err)
		}
		r.Override(id, spec)
	}
	return nil
}

func (s specTOML) toSpec() (Spec, error) {
	base := time.Duration(s.DurationMS) * time.Millisecond
	if base == 0 {
		base = stackDuration
	}

	var spec Spec
	var err error
	if spec.Enter, err = parseAnim(s.Enter, base); err != nil {
		return Spec{}, err
	}
	if spec.Exit, err = parseAnim(s.Exit, base); err != nil {
		return Spec{}, err
	}
	if spec.PopEnter, err = parseAnim(s.PopEnter, base); err != nil {
		return Spec{}, err
	}
	if spec.PopExit, err = parseAnim(s.PopExit, base); err != nil {
		return Spec{}, err
	}

	// Only one direction authored: derive the pop pair by reversal.
	if s.PopEnter == nil && s.PopExit == nil {
		spec.PopEnter = spec.Exit
		spec.PopExit = spec.Enter
	}
	return spec, nil
}

func parseAnim(raw *animTOML, base time.Duration) (Anim, error) {
	if raw == nil {
		return Anim{}, nil
	}
	kind, err := parseKind(raw.Kind)
	if err != nil {
		return Anim{}, err
	}
	edge, err := parseEdge(raw.Edge)
	if err != nil {
		return Anim{}, err
	}
	duration := base
	if raw.DurationMS != 0 {
		duration = time.Duration(raw.DurationMS) * time.Millisecond
	}
	return Anim{Kind: kind, Edge: edge, Duration: duration}, nil
}

func parseKind(raw string) (AnimKind, error) {
	switch raw {
	case "", "none":
		return AnimNone, nil
	case "slide":
		return AnimSlide, nil
	case "fade":
		return AnimFade, nil
	case "slide_fade":
		return AnimSlideFade, nil
	}
	return AnimNone, fmt.Errorf("unknown animation kind %q", raw)
}

func parseEdge(raw string) (Edge, error) {
	switch raw {
	case "", "start":
		return EdgeStart, nil
	case "end":
		return EdgeEnd, nil
	case "top":
		return EdgeTop, nil
	case "bottom":
		return EdgeBottom, nil
	}
	return EdgeStart, fmt.Errorf("unknown edge %q", raw)
}
