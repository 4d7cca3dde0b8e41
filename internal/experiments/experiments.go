// Package experiments exercises SlotArrayMap through report.Reporter and
// renders the traces.
package experiments

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/on-the-ground/assocarray/assoc"
	"github.com/on-the-ground/assocarray/report"
	"go.uber.org/zap"
)

// ErrUnknownExperiment is returned by Run for names missing from the catalogue.
var ErrUnknownExperiment = errors.New("unknown experiment")

// Divider separates experiment traces.
var Divider = "\n" + strings.Repeat("-", 48) + "\n"

// Env is what every experiment gets to work with.
type Env struct {
	Out      report.Emitter
	Logger   *zap.Logger
	Capacity int
}

// Experiment is a named trace-producing scenario.
type Experiment struct {
	Name string
	Run  func(Env)
}

// Catalogue lists the experiments in their default running order.
func Catalogue() []Experiment {
	return []Experiment{
		{Name: "strings", Run: StringsToStrings},
		{Name: "bigints", Run: BigIntsToBigInts},
		{Name: "growth", Run: Growth},
		{Name: "clone", Run: CloneIndependence},
		{Name: "nilkeys", Run: NilKeys},
	}
}

// Names returns the catalogue names in order.
func Names() []string {
	cat := Catalogue()
	names := make([]string, len(cat))
	for i, e := range cat {
		names[i] = e.Name
	}
	return names
}

// Run executes the named experiments, or the whole catalogue when names is empty,
// with a divider before, between and after them.
// Names are all resolved before anything runs.
func Run(env Env, names []string) error {
	selected, err := resolve(names)
	if err != nil {
		return err
	}
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}

	env.Out.Emit(Divider)
	for _, e := range selected {
		env.Logger.Debug("running experiment", zap.String("experiment", e.Name))
		e.Run(env)
		env.Out.Emit(Divider)
	}
	return nil
}

func resolve(names []string) ([]Experiment, error) {
	cat := Catalogue()
	if len(names) == 0 {
		return cat, nil
	}

	byName := assoc.NewSlotArrayMap[string, Experiment](len(cat), nil)
	for _, e := range cat {
		byName.Set(e.Name, e)
	}

	selected := make([]Experiment, 0, len(names))
	for _, name := range names {
		e, err := byName.Get(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownExperiment, name, strings.Join(Names(), ", "))
		}
		selected = append(selected, e)
	}
	return selected, nil
}

// StringsToStrings maps strings to strings.
func StringsToStrings(env Env) {
	s2s := report.New("s2s", assoc.NewSlotArrayMap[string, string](env.Capacity, nil), env.Out, env.Logger)

	s2s.Size()
	s2s.Set("a", "apple")
	s2s.Set("A", "aardvark")
	s2s.Size()
	s2s.HasKey("a")
	s2s.HasKey("A")
	_, _ = s2s.Get("a")
	_, _ = s2s.Get("A")
	s2s.Remove("a")
	s2s.Size()
	_, _ = s2s.Get("a")
	_, _ = s2s.Get("A")
	// a value, not a key: nothing is removed
	s2s.Remove("aardvark")
	s2s.Size()
	_, _ = s2s.Get("a")
	_, _ = s2s.Get("A")
	s2s.Render()
}

func bigIntEqual(a, b *big.Int) bool {
	return a.Cmp(b) == 0
}

// BigIntsToBigInts maps big integers to big integers, comparing keys by value.
func BigIntsToBigInts(env Env) {
	b2b := report.New("b2b", assoc.NewSlotArrayMap[*big.Int, *big.Int](env.Capacity, bigIntEqual), env.Out, env.Logger)

	for i := int64(0); i <= 10; i++ {
		b2b.Set(big.NewInt(i), big.NewInt(i*i))
	}
	for i := int64(0); i <= 10; i++ {
		_, _ = b2b.Get(big.NewInt(i))
	}

	for i := int64(1); i <= 10; i += 2 {
		b2b.Remove(big.NewInt(i))
	}
	for i := int64(0); i <= 10; i++ {
		_, _ = b2b.Get(big.NewInt(i))
	}

	for i := int64(0); i <= 10; i += 3 {
		b2b.Set(big.NewInt(i), big.NewInt(i+10))
	}
	for i := int64(0); i <= 10; i++ {
		_, _ = b2b.Get(big.NewInt(i))
	}
	b2b.Render()
}

// Growth inserts one more key than the initial capacity holds.
func Growth(env Env) {
	m := assoc.NewSlotArrayMap[int, string](env.Capacity, nil)
	g := report.New("grow", m, env.Out, env.Logger)

	before := m.Capacity()
	for i := 0; i <= before; i++ {
		g.Set(i, fmt.Sprintf("v%d", i))
	}
	env.Out.Emit(fmt.Sprintf("capacity %d -> %d", before, m.Capacity()))

	for i := 0; i <= before; i++ {
		if !m.HasKey(i) {
			env.Out.Emit(fmt.Sprintf("lost key %d", i))
		}
	}
	g.Size()
}

// CloneIndependence mutates a map and its clone and shows that neither sees the other.
func CloneIndependence(env Env) {
	orig := report.New("orig", assoc.NewSlotArrayMap[string, int](env.Capacity, nil), env.Out, env.Logger)
	orig.Set("one", 1)
	orig.Set("two", 2)

	copied := report.New("copy", orig.Clone(), env.Out, env.Logger)
	env.Out.Emit(fingerprints(orig.Map(), copied.Map()))

	orig.Set("one", 100)
	orig.Remove("two")
	copied.Set("three", 3)

	orig.Render()
	copied.Render()
	env.Out.Emit(fingerprints(orig.Map(), copied.Map()))
}

func fingerprints[K comparable, V any](a, b *assoc.SlotArrayMap[K, V]) string {
	fa, fb := report.Fingerprint(a), report.Fingerprint(b)
	return fmt.Sprintf("fingerprints %016x %016x equal=%t", fa, fb, fa == fb)
}

type label struct {
	text string
}

func (l *label) String() string {
	return l.text
}

// NilKeys shows that a nil key is an ordinary key, distinct from an empty slot.
func NilKeys(env Env) {
	word := &label{text: "word"}
	n := report.New("nil", assoc.NewSlotArrayMap[*label, string](env.Capacity, nil), env.Out, env.Logger)

	_, _ = n.Get(nil)
	n.Set(nil, "nothing")
	n.Set(word, "something")
	n.Size()
	_, _ = n.Get(nil)
	n.Render()
	n.Remove(nil)
	n.HasKey(nil)
	n.HasKey(word)
	n.Size()
}
