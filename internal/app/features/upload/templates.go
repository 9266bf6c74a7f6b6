// internal/app/features/upload/templates.go
package upload

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

// FS holds the upload form and confirmation templates.
//
//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "upload",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
