package algorithms

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknown = errors.New("algorithms: unknown algorithm")

// Info describes an algorithm for menus and headers.
type Info struct {
	Key   string
	Name  string
	Avg   string
	Worst string
	Space string
}

func (i Info) Complexity() string {
	return fmt.Sprintf("Time: Avg %s, Worst %s; Space: %s", i.Avg, i.Worst, i.Space)
}

type entry struct {
	info Info
	sort Sorter
	rank int
}

type Registry struct {
	entries map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]entry)}
	r.register(Info{Key: "bubble", Name: "Bubble Sort", Avg: "O(n^2)", Worst: "O(n^2)", Space: "O(1)"}, Bubble)
	r.register(Info{Key: "selection", Name: "Selection Sort", Avg: "O(n^2)", Worst: "O(n^2)", Space: "O(1)"}, Selection)
	r.register(Info{Key: "insertion", Name: "Insertion Sort", Avg: "O(n^2)", Worst: "O(n^2)", Space: "O(1)"}, Insertion)
	r.register(Info{Key: "merge", Name: "Merge Sort", Avg: "O(n log n)", Worst: "O(n log n)", Space: "O(n)"}, Merge)
	r.register(Info{Key: "quick", Name: "Quick Sort", Avg: "O(n log n)", Worst: "O(n^2)", Space: "O(log n)"}, Quick)
	return r
}

func (r *Registry) register(info Info, s Sorter) {
	r.entries[info.Key] = entry{info: info, sort: s, rank: len(r.entries)}
}

func (r *Registry) Get(key string) (Sorter, Info, error) {
	e, ok := r.entries[key]
	if !ok {
		return nil, Info{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknown, key, r.Names())
	}
	return e.sort, e.info, nil
}

// Names returns the registered keys in menu order.
func (r *Registry) Names() []string {
	infos := r.List()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Key
	}
	return names
}

// List returns every algorithm's Info in menu order.
func (r *Registry) List() []Info {
	es := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		es = append(es, e)
	}
	sort.Slice(es, func(i, j int) bool { return es[i].rank < es[j].rank })
	infos := make([]Info, len(es))
	for i, e := range es {
		infos[i] = e.info
	}
	return infos
}

// Lookup returns the metadata of a registered algorithm.
func (r *Registry) Lookup(key string) (Info, error) {
	_, info, err := r.Get(key)
	return info, err
}
