package label_test

import (
	"fmt"

	"github.com/heomkit/heom/label"
)

// Example demonstrates enumerating the hierarchy labels for two expansion
// terms truncated at tier 2, and looking one back up by value.
func Example() {
	table, err := label.Enumerate([]int{3, 3}, 2)
	if err != nil {
		panic(err)
	}
	fmt.Println("N_ado:", table.Len())

	idx, ok := table.Index(label.Label{1, 1})
	fmt.Println("index of [1,1]:", idx, ok)
	// Output:
	// N_ado: 6
	// index of [1,1]: 4 true
}
