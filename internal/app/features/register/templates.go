// internal/app/features/register/templates.go
package register

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

// FS holds the registration form templates.
//
//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "register",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
