package testutil

import (
	"sync"

	"github.com/dalemusser/studyhours/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var templateBoot struct {
	once sync.Once
	err  error
}

// MustBootTemplates installs a booted template engine for handlers that
// render pages. Feature templates register themselves in init, so importing
// the feature under test is enough for its pages to resolve. Only the first
// call per test binary does any work.
func MustBootTemplates(t interface{ Fatalf(string, ...any) }) {
	templateBoot.once.Do(func() {
		resources.LoadSharedTemplates()
		eng := templates.New(false)
		if templateBoot.err = eng.Boot(zap.NewNop()); templateBoot.err == nil {
			templates.UseEngine(eng, zap.NewNop())
		}
	})
	if templateBoot.err != nil {
		t.Fatalf("boot templates: %v", templateBoot.err)
	}
}
