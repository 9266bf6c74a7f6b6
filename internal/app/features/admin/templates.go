// internal/app/features/admin/templates.go
package admin

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

// FS holds the admin dashboard templates.
//
//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "admin",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
