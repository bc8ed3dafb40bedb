package cli

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

type flagKind uint8

const (
	flagBool flagKind = iota + 1
	flagString
	flagInt
	flagDuration
	flagEnum
)

func (k flagKind) String() string {
	switch k {
	case flagBool:
		return "bool"
	case flagString:
		return "string"
	case flagInt:
		return "int"
	case flagDuration:
		return "duration"
	case flagEnum:
		return "enum"
	}
	return ""
}

// FlagSet is a typed flag registry for a command.
type FlagSet struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

type flagDef struct {
	name      string
	shorthand rune
	usage     string
	kind      flagKind
	choices   []string // flagEnum only
	changed   bool     // set on the command line

	boolPtr     *bool
	stringPtr   *string // flagString and flagEnum
	intPtr      *int
	durationPtr *time.Duration
}

func newFlagSet() *FlagSet {
	return &FlagSet{
		byLong:  map[string]*flagDef{},
		byShort: map[rune]*flagDef{},
	}
}

// Bool registers a bool flag. A bare --name sets it to true.
func (fs *FlagSet) Bool(name string, shorthand rune, def bool, usage string) *bool {
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagBool, boolPtr: ptr})
	return ptr
}

func (fs *FlagSet) String(name string, shorthand rune, def string, usage string) *string {
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagString, stringPtr: ptr})
	return ptr
}

func (fs *FlagSet) Int(name string, shorthand rune, def int, usage string) *int {
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagInt, intPtr: ptr})
	return ptr
}

func (fs *FlagSet) Duration(name string, shorthand rune, def time.Duration, usage string) *time.Duration {
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagDuration, durationPtr: ptr})
	return ptr
}

// Enum registers a string flag restricted to choices. def need not be one of choices (ex: "" to mean "not set"). Any other value is a usage error.
func (fs *FlagSet) Enum(name string, shorthand rune, def string, choices []string, usage string) *string {
	if len(choices) == 0 {
		panic("cli: enum flag needs choices: --" + name)
	}
	ptr := &def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagEnum, choices: slices.Clone(choices), stringPtr: ptr})
	return ptr
}

// Changed reports whether the flag named name was set on the command line. It is false for unknown names.
func (fs *FlagSet) Changed(name string) bool {
	if def := fs.byLong[name]; def != nil {
		return def.changed
	}
	return false
}

func (fs *FlagSet) add(def *flagDef) {
	if def.name == "" {
		panic("cli: flag name must be non-empty")
	}
	if _, ok := fs.byLong[def.name]; ok {
		panic("cli: duplicate flag: --" + def.name)
	}
	fs.byLong[def.name] = def
	if def.shorthand != 0 {
		if _, ok := fs.byShort[def.shorthand]; ok {
			panic(fmt.Sprintf("cli: duplicate shorthand flag: -%c", def.shorthand))
		}
		fs.byShort[def.shorthand] = def
	}
}

type activeFlags struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

// activeFlags returns the persistent flags of c and its ancestors plus c's local flags. Conflicting names panic.
func (c *Command) activeFlags() activeFlags {
	a := activeFlags{byLong: map[string]*flagDef{}, byShort: map[rune]*flagDef{}}
	sets := []*FlagSet{}
	for _, cmd := range c.pathFromRoot() {
		if cmd.persistentFlags != nil {
			sets = append(sets, cmd.persistentFlags)
		}
	}
	if c.localFlags != nil {
		sets = append(sets, c.localFlags)
	}
	for _, fs := range sets {
		for _, def := range fs.byLong {
			a.add(def)
		}
	}
	return a
}

func (a activeFlags) add(def *flagDef) {
	if existing, ok := a.byLong[def.name]; ok && existing != def {
		panic("cli: flag name conflict across command path: --" + def.name)
	}
	a.byLong[def.name] = def
	if def.shorthand != 0 {
		if existing, ok := a.byShort[def.shorthand]; ok && existing != def {
			panic(fmt.Sprintf("cli: shorthand conflict across command path: -%c", def.shorthand))
		}
		a.byShort[def.shorthand] = def
	}
}

func (a activeFlags) sorted() []*flagDef {
	defs := make([]*flagDef, 0, len(a.byLong))
	for _, def := range a.byLong {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].name < defs[j].name })
	return defs
}

// parseAndSet sets the flag named by name (or shorthand, if name is ""). value is the inline "=value", if any; next is the following argv token, if any.
// It returns whether next was consumed.
func (a activeFlags) parseAndSet(token string, name string, shorthand rune, value *string, next *string) (bool, error) {
	var def *flagDef
	if name != "" {
		def = a.byLong[name]
	} else {
		def = a.byShort[shorthand]
	}
	if def == nil {
		return false, usageErrorf("unknown flag: %s", token)
	}

	consumeNext := false
	raw := ""
	switch {
	case value != nil:
		raw = *value
	case def.kind == flagBool:
		raw = "true"
		if next != nil {
			if _, err := strconv.ParseBool(*next); err == nil {
				raw, consumeNext = *next, true
			}
		}
	case next == nil || *next == "--":
		return false, usageErrorf("flag needs a value: %s", token)
	default:
		raw, consumeNext = *next, true
	}

	if err := def.set(raw); err != nil {
		return false, usageErrorf("invalid value for %s: %v", def.display(), err)
	}
	return consumeNext, nil
}

func (def *flagDef) set(raw string) error {
	switch def.kind {
	case flagBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*def.boolPtr = v
	case flagString:
		*def.stringPtr = raw
	case flagInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*def.intPtr = v
	case flagDuration:
		v, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		*def.durationPtr = v
	case flagEnum:
		if !slices.Contains(def.choices, raw) {
			return fmt.Errorf("%q is not one of %s", raw, strings.Join(def.choices, "|"))
		}
		*def.stringPtr = raw
	default:
		return fmt.Errorf("unknown flag kind")
	}
	def.changed = true
	return nil
}

func (def *flagDef) display() string {
	if def.shorthand != 0 {
		return fmt.Sprintf("-%c/--%s", def.shorthand, def.name)
	}
	return "--" + def.name
}

// placeholder is the value shown after the flag name in help ("" for bools).
func (def *flagDef) placeholder() string {
	switch def.kind {
	case flagBool:
		return ""
	case flagEnum:
		return " <" + strings.Join(def.choices, "|") + ">"
	}
	return " <" + def.kind.String() + ">"
}
