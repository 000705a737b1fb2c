// Package viewer owns one live figure and everything looking at it.
//
// All access goes through Session, which applies each command batch
// (mutate, propagate, overlay and canonical rebuild) under one lock.
package viewer

import (
	"io"
	"log"
	"sync"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/figure_viewer/config"
	"github.com/mogaika/figure_viewer/figure"
	"github.com/mogaika/figure_viewer/projection"
	"github.com/mogaika/figure_viewer/r3d"
	"github.com/mogaika/figure_viewer/scriptlang"
	"github.com/mogaika/figure_viewer/selection"
	"github.com/mogaika/figure_viewer/utils"
	"github.com/mogaika/figure_viewer/utils/gltfutils"
)

type Session struct {
	lock sync.Mutex

	figure    *figure.Figure
	nav       *selection.Navigator
	camera    *r3d.OrbitController
	settings  config.Settings
	canonical *projection.Canonical
	palette   figure.Palette
	keys      map[string][]selection.Command

	onChange func(*Snapshot)
}

func loadLayout(cfg *config.Config) (*figure.Layout, error) {
	if cfg.Layout == "" {
		return figure.DefaultLayout(), nil
	}
	return figure.LoadLayout(cfg.Layout)
}

func NewSession(cfg *config.Config) (*Session, error) {
	layout, err := loadLayout(cfg)
	if err != nil {
		return nil, err
	}
	f, err := figure.Build(layout)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to build figure")
	}

	palette, err := cfg.Materials.Palette()
	if err != nil {
		return nil, err
	}

	keys := make(map[string][]selection.Command)
	for key, script := range cfg.KeyBindings() {
		cmds, err := scriptlang.ParseCommands([]byte(script))
		if err != nil {
			return nil, errors.Wrapf(err, "Key %q", key)
		}
		keys[key] = cmds
	}

	s := &Session{
		figure: f,
		nav:    selection.New(f),
		camera: r3d.NewOrbitController(cfg.Camera.Target,
			cfg.Camera.Distance, cfg.Camera.Pitch, cfg.Camera.Yaw,
			r3d.Lens{
				Fov:    cfg.Settings.Fov,
				Aspect: cfg.Camera.Aspect,
				Near:   cfg.Settings.Near,
				Far:    cfg.Settings.Far,
			}),
		palette: palette,
		keys:    keys,
	}
	s.canonical = projection.NewCanonical(f, s.camera)
	if err := s.applySettings(cfg.Settings); err != nil {
		return nil, err
	}
	return s, nil
}

// SetOnChange registers fn called with a fresh snapshot after every change.
// fn runs outside the session lock.
func (s *Session) SetOnChange(fn func(*Snapshot)) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.onChange = fn
}

func (s *Session) notify() {
	s.lock.Lock()
	fn := s.onChange
	var snap *Snapshot
	if fn != nil {
		snap = s.snapshot()
	}
	s.lock.Unlock()

	if fn != nil {
		fn(snap)
	}
}

func (s *Session) apply(cmd selection.Command) error {
	if cmd.Action == selection.ActionProject {
		s.canonical.Update(s.figure, s.camera)
		return nil
	}
	return s.nav.Apply(cmd)
}

// Do applies commands in order and stops at the first failing one.
// Commands before the failing one stay applied.
func (s *Session) Do(cmds ...selection.Command) error {
	err := func() error {
		s.lock.Lock()
		defer s.lock.Unlock()

		defer s.canonical.Update(s.figure, s.camera)
		for i, cmd := range cmds {
			if err := s.apply(cmd); err != nil {
				return errors.Wrapf(err, "Command #%d", i)
			}
		}
		return nil
	}()
	s.notify()
	return err
}

func (s *Session) Key(key string) error {
	s.lock.Lock()
	cmds, ok := s.keys[key]
	s.lock.Unlock()

	if !ok {
		return errors.Errorf("Key %q is not bound", key)
	}
	return s.Do(cmds...)
}

func (s *Session) RunScript(script []byte) error {
	cmds, err := scriptlang.ParseCommands(script)
	if err != nil {
		return errors.Wrapf(err, "Failed to parse script")
	}
	log.Printf("[viewer] Running script of %d commands", len(cmds))
	return s.Do(cmds...)
}

func (s *Session) applySettings(st config.Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}

	var planes projection.Planes
	for _, name := range st.Planes {
		p, err := projection.ParsePlane(name)
		if err != nil {
			return err
		}
		planes[p] = true
	}

	s.camera.Fov = st.Fov
	s.camera.Near = st.Near
	s.camera.Far = st.Far
	s.figure.SetPlacement(figure.PlacementFrom(st.Translate, utils.DegreeToRadiansV3(st.Rotate)))
	s.figure.RebuildAxes()
	s.canonical.Planes = planes
	s.canonical.Update(s.figure, s.camera)

	st.Planes = planes.EnabledNames()
	s.settings = st
	return nil
}

// UpdateSettings applies values from the parameter panel.
// Invalid settings leave the session untouched.
func (s *Session) UpdateSettings(st config.Settings) error {
	s.lock.Lock()
	err := s.applySettings(st)
	s.lock.Unlock()

	if err != nil {
		return errors.Wrapf(err, "Invalid settings")
	}
	log.Printf("[viewer] Settings updated: %+v", st)
	s.notify()
	return nil
}

// Settings returns a copy, callers may decode into it
func (s *Session) Settings() config.Settings {
	s.lock.Lock()
	defer s.lock.Unlock()
	st := s.settings
	st.Planes = append([]string(nil), s.settings.Planes...)
	return st
}

func (s *Session) Palette() figure.Palette {
	return s.palette
}

func (s *Session) snapshot() *Snapshot {
	return &Snapshot{
		Root:         snapshotNode(s.figure, s.figure.Root, false),
		Selected:     s.nav.Selected().Name,
		SiblingIndex: s.nav.SiblingIndex(),
		Overlay:      s.figure.Axes.Visible,
		Axes:         snapshotAxes(s.figure.Axes),
		Camera:       snapshotCamera(s.camera.Position(), s.camera),
		Settings:     s.settings,
	}
}

func (s *Session) Snapshot() *Snapshot {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.snapshot()
}

func (s *Session) Canonical() *CanonicalSnapshot {
	s.lock.Lock()
	defer s.lock.Unlock()
	return snapshotCanonical(s.canonical)
}

func (s *Session) StringTree() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.figure.StringTree()
}

func (s *Session) exportGLTF(canonical bool) (*gltf.Document, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if canonical {
		return s.canonical.Figure.ExportGLTFDefault(s.palette)
	}
	return s.figure.ExportGLTFDefault(s.palette)
}

// WriteGLB writes the live figure, or the projected one when canonical is set
func (s *Session) WriteGLB(w io.Writer, canonical bool) error {
	doc, err := s.exportGLTF(canonical)
	if err != nil {
		return errors.Wrapf(err, "Failed to export gltf")
	}
	return gltfutils.ExportBinary(w, doc)
}

func (s *Session) WriteObj(w io.Writer) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.figure.ExportObj(w)
}

func (s *Session) WritePNG(w io.Writer) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.canonical.WritePNG(w, s.palette, projection.DefaultPNGSize)
}
