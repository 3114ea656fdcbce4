package server

import (
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type HTTPServer struct {
	Controllers    []Controller
	Middlewares    []mux.MiddlewareFunc
	AllowedOrigins []string
}

func NewHTTPServer(controllers []Controller, middlewares []mux.MiddlewareFunc, allowedOrigins []string) *HTTPServer {
	return &HTTPServer{
		Controllers:    controllers,
		Middlewares:    middlewares,
		AllowedOrigins: allowedOrigins,
	}
}

func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.Middlewares...)
	for _, controller := range s.Controllers {
		controller.Register(r)
	}
	return r
}

func (s *HTTPServer) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return gziphandler.GzipHandler(c.Handler(s.Router()))
}

func (s *HTTPServer) Start(socketAddress string) error {
	return http.ListenAndServe(socketAddress, s.Handler())
}
