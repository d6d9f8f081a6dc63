// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/scholarops/pubsync/internal/dedup"
)

// Decision is the operator's verdict on a pending merge. When Proceed is
// false the merge is abandoned entirely with zero mutation. AcceptPotential
// runs parallel to the partition's Potential slice; nil accepts none.
type Decision struct {
	Proceed         bool
	AcceptPotential []bool
}

// Decider supplies the operator verdict for a pending merge. The engine
// never prompts on its own; an injected Decider keeps the interactive
// flow and scripted runs (tests, automation) on the same code path.
type Decider interface {
	Decide(p dedup.Partition) (Decision, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(p dedup.Partition) (Decision, error)

func (f DeciderFunc) Decide(p dedup.Partition) (Decision, error) {
	return f(p)
}

// Scripted returns a Decider that always proceeds and gives every
// potential duplicate the same verdict.
func Scripted(acceptPotential bool) Decider {
	return DeciderFunc(func(p dedup.Partition) (Decision, error) {
		accept := make([]bool, len(p.Potential))
		for i := range accept {
			accept[i] = acceptPotential
		}
		return Decision{Proceed: true, AcceptPotential: accept}, nil
	})
}

// Interactive prompts the operator on In/Out: one yes/no question per
// potential duplicate, then a single confirmation gating the whole merge.
type Interactive struct {
	In  io.Reader
	Out io.Writer
}

func (d Interactive) Decide(p dedup.Partition) (Decision, error) {
	scanner := bufio.NewScanner(d.In)

	accept := make([]bool, len(p.Potential))
	for i, r := range p.Potential {
		fmt.Fprintf(d.Out, "\nPotential duplicate (%.0f%% similar):\n", r.Score*100)
		fmt.Fprintf(d.Out, "  NEW:      %s (%s)\n", r.Candidate.Title, r.Candidate.Year)
		if r.Best != nil {
			fmt.Fprintf(d.Out, "  EXISTING: %s (%s)\n", r.Best.Title, r.Best.Year)
		}
		fmt.Fprintf(d.Out, "Add the new record anyway? [y/N]: ")
		accept[i] = readYes(scanner, false)
	}

	adding := p.TrulyNew()
	for _, a := range accept {
		if a {
			adding++
		}
	}
	if adding == 0 {
		// Nothing to add; proceeding is a no-op either way.
		return Decision{Proceed: true, AcceptPotential: accept}, nil
	}

	fmt.Fprintf(d.Out, "\nMerge %d publication(s) into the store? [y/N]: ", adding)
	if !readYes(scanner, false) {
		return Decision{}, nil
	}
	return Decision{Proceed: true, AcceptPotential: accept}, nil
}

// readYes reads one line and interprets it as a yes/no answer. EOF or a
// blank line yields the default.
func readYes(scanner *bufio.Scanner, def bool) bool {
	if !scanner.Scan() {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	case "":
		return def
	default:
		return false
	}
}
