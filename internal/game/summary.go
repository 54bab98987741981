package game

import (
	"fmt"
	"sort"
	"strings"
)

// Report is the structured summary of an executed round.
type Report struct {
	Outcome    int
	Groups     []Group // one per domain value, in domain order
	Winners    []string
	PointAward int
}

// Group lists the display names of everyone who picked a given value.
type Group struct {
	Value int
	Names []string
}

// Summarize groups picks by chosen value across the full domain, including
// values nobody picked, and resolves display names with a fallback label
// where none is known. It is a pure function of its inputs.
func Summarize(cfg Config, picks map[string]int, outcome int, winners []string, names NameResolver) Report {
	cfg = cfg.withDefaults()

	byValue := make(map[int][]string, cfg.DomainSize)
	for id, value := range picks {
		byValue[value] = append(byValue[value], displayName(names, id))
	}

	groups := make([]Group, 0, cfg.DomainSize)
	for value := 1; value <= cfg.DomainSize; value++ {
		group := Group{Value: value, Names: byValue[value]}
		sort.Strings(group.Names)
		groups = append(groups, group)
	}

	winnerNames := make([]string, 0, len(winners))
	for _, id := range winners {
		winnerNames = append(winnerNames, displayName(names, id))
	}
	sort.Strings(winnerNames)

	return Report{
		Outcome:    outcome,
		Groups:     groups,
		Winners:    winnerNames,
		PointAward: cfg.PointAward,
	}
}

func displayName(names NameResolver, id string) string {
	if names != nil {
		if name, ok := names.DisplayName(id); ok && name != "" {
			return name
		}
	}
	return fmt.Sprintf("Player %s", id)
}

// String renders the report for the announcement channel.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎲 The die shows **%d**!\n", r.Outcome)
	for _, group := range r.Groups {
		if len(group.Names) == 0 {
			fmt.Fprintf(&b, "%d — _nobody_\n", group.Value)
			continue
		}
		fmt.Fprintf(&b, "%d — %s\n", group.Value, strings.Join(group.Names, ", "))
	}
	if len(r.Winners) == 0 {
		b.WriteString("No matches this time.")
	} else {
		fmt.Fprintf(&b, "🏆 %s — +%d points each!", strings.Join(r.Winners, ", "), r.PointAward)
	}
	return b.String()
}
