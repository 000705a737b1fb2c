package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/figure_viewer/config"
	"github.com/mogaika/figure_viewer/utils"
	"github.com/mogaika/figure_viewer/viewer"
	"github.com/mogaika/figure_viewer/web"
)

func writeOutput(session *viewer.Session, path string, canonical bool) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		write = func(w io.Writer) error { return session.WriteGLB(w, canonical) }
	case ".obj":
		write = session.WriteObj
	case ".png":
		write = session.WritePNG
	default:
		return errors.Errorf("Unknown output format %q", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create output")
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}

func runScript(session *viewer.Session, scriptPath, out string, canonical, dump bool) error {
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return errors.Wrapf(err, "Failed to read script")
	}
	if err := session.RunScript(script); err != nil {
		return err
	}

	fmt.Print(session.StringTree())
	if dump {
		utils.LogDump(session.Snapshot())
	}
	if out != "" {
		if err := writeOutput(session, out, canonical); err != nil {
			return err
		}
		log.Printf("Written %s", out)
	}
	return nil
}

func main() {
	var addr, configPath, scriptPath, out, webPath string
	var canonical, dump bool
	flag.StringVar(&addr, "i", "", "Address of server, overrides config")
	flag.StringVar(&configPath, "config", "", "Path to yaml config")
	flag.StringVar(&scriptPath, "script", "", "Run command script without server and print the figure")
	flag.StringVar(&out, "out", "", "With -script: write .glb, .obj or .png (canonical view) here")
	flag.BoolVar(&canonical, "canonical", false, "With -out *.glb: export the projected figure")
	flag.BoolVar(&dump, "dump", false, "With -script: dump the final snapshot")
	flag.StringVar(&webPath, "web", "", "Directory with static files for the viewer page")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if addr != "" {
		cfg.Addr = addr
	}

	session, err := viewer.NewSession(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if scriptPath != "" {
		if err := runScript(session, scriptPath, out, canonical, dump); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := web.StartServer(cfg.Addr, session, webPath); err != nil {
		log.Fatal(err)
	}
}
