package step

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type Kind int

const (
	KindComparison Kind = iota
	KindSwap
	KindMilestone
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindComparison:
		return "comparison"
	case KindSwap:
		return "swap"
	case KindMilestone:
		return "milestone"
	case KindInfo:
		return "info"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "comparison":
		return KindComparison, nil
	case "swap":
		return KindSwap, nil
	case "milestone":
		return KindMilestone, nil
	case "info":
		return KindInfo, nil
	}
	return 0, fmt.Errorf("step: unknown kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// NullInt is an optional integer, following the database/sql Null* convention.
type NullInt struct {
	Int   int
	Valid bool
}

func Int(v int) NullInt { return NullInt{Int: v, Valid: true} }

func (n NullInt) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.Itoa(n.Int)
}

func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Int)
}

func (n *NullInt) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullInt{}
		return nil
	}
	if err := json.Unmarshal(b, &n.Int); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// ParseNullInt reads the String form back; the empty string is absent.
func ParseNullInt(s string) (NullInt, error) {
	if s == "" {
		return NullInt{}, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return NullInt{}, err
	}
	return Int(v), nil
}

// Step is one recorded action. Steps are values; the history hands out copies.
type Step struct {
	Seq         int       `json:"seq"`
	Kind        Kind      `json:"kind"`
	IndexA      NullInt   `json:"index_a"`
	IndexB      NullInt   `json:"index_b"`
	ValueA      NullInt   `json:"value_a"`
	ValueB      NullInt   `json:"value_b"`
	Description string    `json:"description"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func Comparison(i, j, vi, vj int) Step {
	return Step{
		Kind:        KindComparison,
		IndexA:      Int(i),
		IndexB:      Int(j),
		ValueA:      Int(vi),
		ValueB:      Int(vj),
		Description: fmt.Sprintf("Comparing %d with %d", vi, vj),
	}
}

func Swap(i, j, vi, vj int) Step {
	return Step{
		Kind:        KindSwap,
		IndexA:      Int(i),
		IndexB:      Int(j),
		ValueA:      Int(vi),
		ValueB:      Int(vj),
		Description: fmt.Sprintf("Swapped %d with %d", vi, vj),
	}
}

func Milestone(desc string) Step {
	return Step{Kind: KindMilestone, Description: desc}
}

// MilestoneAt is a milestone about a single position.
func MilestoneAt(i int, desc string) Step {
	return Step{Kind: KindMilestone, IndexA: Int(i), Description: desc}
}

func Info(desc string) Step {
	return Step{Kind: KindInfo, Description: desc}
}

// Format renders a step the way the log and the export file show it.
func Format(s Step) string {
	switch s.Kind {
	case KindComparison:
		return fmt.Sprintf("Comparing index %s (%s) with index %s (%s)", s.IndexA, s.ValueA, s.IndexB, s.ValueB)
	case KindSwap:
		return fmt.Sprintf("Swapping index %s (%s) with index %s (%s)", s.IndexA, s.ValueA, s.IndexB, s.ValueB)
	default:
		return s.Description
	}
}

func (s Step) String() string { return Format(s) }

// Observer is notified of every recorded step.
type Observer interface {
	OnStep(s Step)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Step)

func (f ObserverFunc) OnStep(s Step) { f(s) }
