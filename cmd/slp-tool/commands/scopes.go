package commands

import (
	"fmt"

	"github.com/openlighting/ola-go/pkg/slp/scope"
)

// RunScopes parses one or two scope lists and prints their canonical forms.
// With two lists it also prints their set relations, which is the quickest
// way to see why an agent rejected a request with SCOPE_NOT_SUPPORTED.
func RunScopes(listA, listB string) error {
	a, err := scope.Parse(listA)
	if err != nil {
		return fmt.Errorf("list %q: %w", listA, err)
	}
	fmt.Printf("A: %s  (%d scopes)\n", a, a.Size())

	if listB == "" {
		return nil
	}

	b, err := scope.Parse(listB)
	if err != nil {
		return fmt.Errorf("list %q: %w", listB, err)
	}
	fmt.Printf("B: %s  (%d scopes)\n", b, b.Size())

	fmt.Println()
	if a.Equal(b) {
		fmt.Println("The lists are equal.")
		return nil
	}

	inter := a.Intersection(b)
	if inter.Empty() {
		fmt.Println("The lists are disjoint: requests between these scope sets will be rejected.")
	} else {
		fmt.Printf("intersection: %s\n", inter)
	}
	if d := a.Difference(b); !d.Empty() {
		fmt.Printf("only in A:    %s\n", d)
	}
	if d := b.Difference(a); !d.Empty() {
		fmt.Printf("only in B:    %s\n", d)
	}
	return nil
}
