package source

import (
	"fmt"

	"github.com/vanderheijden86/navtree/pkg/navtree"
)

// Demo returns the sample data set and a loader that adds one extra child
// whenever "n1.n11" is opened.
func Demo() (navtree.Entries, navtree.Loader) {
	entries := navtree.Entries{
		"n1":          "desc1",
		"n1.n11":      "desc2",
		"n1.n11.n111": "desc3",
		"n1.n11.n112": "desc4",
		"n1.n11.n113": "desc5",
		"n1.n11.n114": "desc6",
		"n1.n12":      "desc7",
		"n1.n13":      "desc8",
	}
	for i := 131; i <= 143; i++ {
		entries[fmt.Sprintf("n1.n13.n%d", i)] = fmt.Sprintf("desc%d", i-122)
	}

	loader := navtree.LoaderFunc(func(code string) (navtree.Entries, error) {
		if code == "n1.n11" {
			return navtree.Entries{"n1.n11.n115": "desc6_1"}, nil
		}
		return nil, nil
	})
	return entries, loader
}
