package catalog

import (
	_ "embed"
	"sync"
)

//go:embed default_catalog.json
var defaultDocument []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := ParseJSON(defaultDocument)
	if err != nil {
		panic("catalog: embedded default catalog is invalid: " + err.Error())
	}
	return c
})

// Default returns the built-in leave policy catalog.
func Default() *Catalog {
	return defaultCatalog()
}
