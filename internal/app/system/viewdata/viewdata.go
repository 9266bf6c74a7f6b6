// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/studyhours/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in the page header and title.
const SiteName = "Study Hours"

// BaseVM is embedded by every page's view model. The layout partials read
// only these fields.
type BaseVM struct {
	SiteName    string
	Title       string
	CurrentPath string

	IsLoggedIn bool
	IsAdmin    bool
	LoginID    string
	UserName   string // uppercase display name

	CSRFField string
	CSRFToken string
}

// NewBaseVM fills BaseVM from the request: the session user attached by
// auth.LoadSessionUser and the token csrf.Protect issued.
func NewBaseVM(r *http.Request, title string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
		CSRFField:   "csrf_token",
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.IsAdmin = u.IsAdmin()
		vm.LoginID = u.LoginID
		vm.UserName = u.Name
	}
	return vm
}
