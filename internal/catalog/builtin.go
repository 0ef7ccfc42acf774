package catalog

import (
	"fmt"
	"sort"

	"levelgen.dev/internal/generation"
)

// Door offsets for a 1x1 module
var (
	doorL = generation.Vec2{X: -0.5}
	doorR = generation.Vec2{X: 0.5}
	doorT = generation.Vec2{Y: 0.5}
	doorB = generation.Vec2{Y: -0.5}
)

var unit = generation.Size{W: 1, H: 1}

func door(offset generation.Vec2) DoorDef { return DoorDef{Offset: offset} }

func exit(offset generation.Vec2) DoorDef { return DoorDef{Offset: offset, EntranceExit: true} }

func module(name string, doors ...DoorDef) ModuleDef {
	return ModuleDef{Name: name, Size: unit, Doors: doors}
}

// entries are terminal modules with one door on each side and the exit opposite it
func entries() []ModuleDef {
	return []ModuleDef{
		module("entry_l", door(doorL), exit(doorR)),
		module("entry_r", door(doorR), exit(doorL)),
		module("entry_t", door(doorT), exit(doorB)),
		module("entry_b", door(doorB), exit(doorT)),
	}
}

func deadEnds() []ModuleDef {
	return []ModuleDef{
		module("dead_l", door(doorL)),
		module("dead_r", door(doorR)),
		module("dead_t", door(doorT)),
		module("dead_b", door(doorB)),
	}
}

var builtins = map[string]func() *Definition{
	// Straight horizontal run; always closes for any target.
	"corridors": func() *Definition {
		return &Definition{
			Name: "corridors",
			Modules: []ModuleDef{
				module("entry_l", door(doorL), exit(doorR)),
				module("entry_r", door(doorR), exit(doorL)),
				module("corridor_h", door(doorL), door(doorR)),
			},
		}
	},
	// One four-way hub closed off by dead ends; closes at five modules.
	"cross": func() *Definition {
		mods := entries()
		mods = append(mods, module("cross", door(doorL), door(doorR), door(doorT), door(doorB)))
		mods = append(mods, deadEnds()...)
		return &Definition{Name: "cross", Modules: mods}
	},
	// General purpose set of corridors, corners, junctions and a hall.
	"basic": func() *Definition {
		mods := entries()
		mods = append(mods,
			module("corridor_h", door(doorL), door(doorR)),
			module("corridor_v", door(doorT), door(doorB)),
			module("corner_lt", door(doorL), door(doorT)),
			module("corner_lb", door(doorL), door(doorB)),
			module("corner_rt", door(doorR), door(doorT)),
			module("corner_rb", door(doorR), door(doorB)),
			module("tee_l", door(doorT), door(doorB), door(doorL)),
			module("tee_r", door(doorT), door(doorB), door(doorR)),
			module("tee_t", door(doorL), door(doorR), door(doorT)),
			module("tee_b", door(doorL), door(doorR), door(doorB)),
			module("cross", door(doorL), door(doorR), door(doorT), door(doorB)),
			ModuleDef{
				Name: "hall",
				Size: generation.Size{W: 3, H: 3},
				Doors: []DoorDef{
					door(generation.Vec2{X: -1.5}),
					door(generation.Vec2{X: 1.5}),
					door(generation.Vec2{Y: 1.5}),
					door(generation.Vec2{Y: -1.5}),
				},
			},
		)
		mods = append(mods, deadEnds()...)
		return &Definition{Name: "basic", Modules: mods}
	},
}

// Names lists the built-in catalogs
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a built-in catalog and its definition
func Builtin(name string) (*generation.Catalog, *Definition, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown built-in catalog %q", name)
	}
	def := fn()
	cat, err := Build(def)
	if err != nil {
		return nil, nil, err
	}
	return cat, def, nil
}
