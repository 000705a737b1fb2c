package web

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/figure_viewer/r3d"
	"github.com/mogaika/figure_viewer/selection"
	"github.com/mogaika/figure_viewer/webutils"
)

func (s *Server) writeResult(w http.ResponseWriter, err error) {
	if err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, s.session.Snapshot())
	}
}

func (s *Server) HandlerFigure(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, s.session.Snapshot())
}

func (s *Server) HandlerCanonical(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, s.session.Canonical())
}

func (s *Server) HandlerSettings(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, s.session.Settings())
}

// HandlerUpdateSettings accepts partial settings, missing fields keep their values
func (s *Server) HandlerUpdateSettings(w http.ResponseWriter, r *http.Request) {
	st := s.session.Settings()
	if err := webutils.ReadJson(r, &st); err != nil {
		webutils.WriteError(w, err)
		return
	}
	if err := s.session.UpdateSettings(st); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, s.session.Settings())
}

func (s *Server) HandlerClients(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, s.hub.Clients())
}

func (s *Server) HandlerAction(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["command"]
	action, err := selection.ParseAction(name)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	if action == selection.ActionRotate {
		webutils.WriteError(w, errors.New("Use /action/rotate/{axis}/{degrees}"))
		return
	}
	s.writeResult(w, s.session.Do(selection.Command{Action: action}))
}

func (s *Server) HandlerActionRotate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	axis, err := r3d.ParseAxis(vars["axis"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	degrees, err := strconv.ParseFloat(vars["degrees"], 32)
	if err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Invalid angle %q", vars["degrees"]))
		return
	}
	s.writeResult(w, s.session.Do(selection.Rotate(axis, mgl32.DegToRad(float32(degrees)))))
}

func (s *Server) HandlerActionScript(w http.ResponseWriter, r *http.Request) {
	script, err := webutils.ReadBody(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	s.writeResult(w, s.session.RunScript(script))
}

func (s *Server) HandlerActionKey(w http.ResponseWriter, r *http.Request) {
	s.writeResult(w, s.session.Key(mux.Vars(r)["key"]))
}

func (s *Server) HandlerDumpGLB(canonical bool) http.HandlerFunc {
	name := "figure.glb"
	if canonical {
		name = "canonical.glb"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		webutils.WriteGenerated(w, name, "model/gltf-binary", func(out io.Writer) error {
			return s.session.WriteGLB(out, canonical)
		})
	}
}

func (s *Server) HandlerDumpObj(w http.ResponseWriter, r *http.Request) {
	webutils.WriteGenerated(w, "figure.obj", "text/plain", s.session.WriteObj)
}

func (s *Server) HandlerDumpPNG(w http.ResponseWriter, r *http.Request) {
	webutils.WriteGenerated(w, "canonical.png", "image/png", s.session.WritePNG)
}

func (s *Server) HandlerDumpTree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	webutils.WriteResult(w, []byte(s.session.StringTree()))
}

func (s *Server) HandlerWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] Websocket upgrade failed: %v", err)
		return
	}
	s.hub.Serve(conn)
}
