package commands

import (
	"context"
	"io"
	"os"

	"github.com/dyluth/xw3d/internal/config"
	"github.com/dyluth/xw3d/internal/printer"
	"github.com/dyluth/xw3d/internal/script"
	"github.com/dyluth/xw3d/pkg/scene"
)

// sessionFlags are shared by author and play.
type sessionFlags struct {
	script  string
	publish bool
}

// openInput returns the script file, or stdin when none is given.
func (f sessionFlags) openInput() (io.ReadCloser, error) {
	if f.script == "" {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(f.script)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"cannot open script",
			err.Error(),
			map[string]string{"Script": f.script},
			nil,
		)
	}
	return file, nil
}

// newRunner builds a runner for the session. Scripts stop at the first
// failing command; interactive sessions report it and carry on. The
// returned closer releases the scene connection, if any.
func (f sessionFlags) newRunner(ctx context.Context, cfg *config.Config, saveDir string) (*script.Runner, func(), error) {
	rn := &script.Runner{
		Out:      printer.Out,
		Emphasis: cfg.Emphasis(),
		SaveDir:  saveDir,
		Strict:   f.script != "",
	}
	if !f.publish {
		return rn, func() {}, nil
	}

	session := sessionID(cfg)
	client, err := connectScene(ctx, cfg, session)
	if err != nil {
		return nil, nil, err
	}
	rn.Publisher = client
	rn.Session = session
	printer.Info("Publishing frames to session %s\n", session)
	return rn, func() { client.Close() }, nil
}

var _ script.Publisher = (*scene.Client)(nil)
