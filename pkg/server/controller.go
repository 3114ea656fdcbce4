package server

import "github.com/gorilla/mux"

// Controller is a routable unit: it registers its own routes on the shared
// router. Key must be unique across controllers.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}
