package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mogaika/figure_viewer/status"
	"github.com/mogaika/figure_viewer/viewer"
)

type Server struct {
	session  *viewer.Session
	hub      *status.Hub
	upgrader websocket.Upgrader
}

// NewServer wires session changes into hub broadcasts
func NewServer(session *viewer.Session) *Server {
	s := &Server{
		session: session,
		hub:     status.NewHub(session),
	}
	session.SetOnChange(func(snap *viewer.Snapshot) {
		s.hub.Publish(snap)
	})
	s.hub.Publish(session.Snapshot())
	return s
}

func (s *Server) Router(webPath string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/figure", s.HandlerFigure).Methods("GET")
	r.HandleFunc("/json/canonical", s.HandlerCanonical).Methods("GET")
	r.HandleFunc("/json/settings", s.HandlerSettings).Methods("GET")
	r.HandleFunc("/json/settings", s.HandlerUpdateSettings).Methods("PUT", "POST")
	r.HandleFunc("/json/clients", s.HandlerClients).Methods("GET")
	r.HandleFunc("/action/rotate/{axis}/{degrees}", s.HandlerActionRotate).Methods("POST")
	r.HandleFunc("/action/script", s.HandlerActionScript).Methods("POST")
	r.HandleFunc("/action/key/{key}", s.HandlerActionKey).Methods("POST")
	r.HandleFunc("/action/{command}", s.HandlerAction).Methods("POST")
	r.HandleFunc("/dump/figure.glb", s.HandlerDumpGLB(false)).Methods("GET")
	r.HandleFunc("/dump/canonical.glb", s.HandlerDumpGLB(true)).Methods("GET")
	r.HandleFunc("/dump/figure.obj", s.HandlerDumpObj).Methods("GET")
	r.HandleFunc("/dump/figure.txt", s.HandlerDumpTree).Methods("GET")
	r.HandleFunc("/dump/canonical.png", s.HandlerDumpPNG).Methods("GET")
	r.HandleFunc("/ws", s.HandlerWebsocket)

	if webPath != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(webPath)))
	}
	return r
}

func (s *Server) Handler(webPath string) http.Handler {
	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.Router(webPath))
	return handlers.LoggingHandler(os.Stdout, h)
}

func StartServer(addr string, session *viewer.Session, webPath string) error {
	s := NewServer(session)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, s.Handler(webPath))
}
