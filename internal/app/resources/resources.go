// Package resources embeds the page layout partials and the stylesheet
// shared by every feature.
package resources

import (
	"embed"
	"io/fs"
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

var (
	//go:embed templates/*.gohtml
	layoutFS embed.FS

	//go:embed assets
	assetsFS embed.FS

	layoutOnce sync.Once
)

// LoadSharedTemplates registers head, nav, csrf and foot. Call it before the
// engine boots; later calls do nothing.
func LoadSharedTemplates() {
	layoutOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "layout",
			FS:       layoutFS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}

// AssetsHandler serves the embedded assets directory under prefix.
func AssetsHandler(prefix string) http.Handler {
	root, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		// The embed directive guarantees the directory.
		panic(err)
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(root)))
}
