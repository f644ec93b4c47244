package app

import (
	"github.com/vcrobe/valkyrja/cache"
	"github.com/vcrobe/valkyrja/cookies"
	"github.com/vcrobe/valkyrja/dom"
	"github.com/vcrobe/valkyrja/router"
)

// Memory returns a Platform held entirely in memory around doc, starting at
// hash. It serves native builds and tests.
func Memory(doc dom.Document, hash string) Platform {
	return Platform{
		Document: doc,
		Location: router.NewMemoryLocation(hash),
		Storage:  cache.NewMemoryStorage(),
		Cookies:  cookies.NewJar(),
	}
}
