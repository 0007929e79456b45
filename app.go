package main

import (
	"context"
	"fmt"
	"log/slog"

	"cubeview/config"
	"cubeview/engine"
	"cubeview/platform"
	"cubeview/render"
	"cubeview/systems"
	"cubeview/transport"
)

// App owns everything with a lifetime: the transport connection, the
// input source, the frame recorder and the frame loop itself.
type App struct {
	cfg *config.Config
	log *slog.Logger

	peer     config.Peer
	sender   *transport.AsyncSender
	messages *systems.MessageLog
	recorder *render.Recorder
	input    *platform.Input
	script   *engine.ScriptSource
	scripted int
	loop     *engine.FrameLoop
}

// NewApp connects to the peer and builds the frame loop. Any error here is
// fatal: the viewer does not start without its peer.
func NewApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	peer, err := config.ParsePeer(cfg.Peer)
	if err != nil {
		return nil, err
	}

	messages := systems.NewMessageLog(log)

	conn, err := transport.Dial(ctx, peer, cfg.WriteTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to peer: %w", err)
	}
	sender := transport.NewAsyncSender(conn, cfg.QueueSize, messages, log)

	app := &App{
		cfg:      cfg,
		log:      log,
		peer:     peer,
		sender:   sender,
		messages: messages,
		recorder: render.NewRecorder(render.NewCubeBatch(config.TextureColor), config.ClearColor),
	}

	var events engine.EventSource
	if cfg.Headless {
		frames, err := engine.ParseScript(cfg.Script)
		if err != nil {
			sender.Close()
			return nil, &config.ConfigurationError{Field: "script", Value: cfg.Script, Err: err}
		}
		app.script = engine.NewScriptSource(frames)
		app.scripted = len(frames)
		events = app.script
	} else {
		app.input = platform.NewInput(cfg.Width, cfg.Height)
		events = app.input
	}

	app.loop = engine.NewFrameLoop(engine.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		WASD:     cfg.WASD,
		Events:   events,
		Renderer: app.recorder,
		Sender:   sender,
		Reporter: messages,
		Logger:   log,
	})

	messages.Add("Sending position updates to " + peer.String())
	messages.Add("Use arrow keys to move, Escape to quit.")
	return app, nil
}

// RunHeadless replays the script without a window. It stops when the
// script closes the loop, or one frame after the script runs out.
func (a *App) RunHeadless(ctx context.Context) error {
	return engine.RunHeadless(ctx, a.loop, engine.HeadlessConfig{
		Hz:     a.cfg.TPS,
		Frames: uint64(a.scripted) + 1,
	})
}

// status is the HUD line describing the cube
func (a *App) status() string {
	x, y, z := a.loop.Position()
	return fmt.Sprintf("Position: (%g, %g, %g)  sent: %d  errors: %d",
		x, y, z, a.loop.Sync().Sent(), a.messages.Errors())
}

// Close flushes pending updates and releases the connection
func (a *App) Close() error {
	defer a.loop.Finish()
	x, y, z := a.loop.Position()
	a.log.Info("shutting down", "frames", a.loop.Frames(), "x", x, "y", y, "z", z,
		"sent", a.loop.Sync().Sent(), "written", a.sender.Written())
	return a.sender.Close()
}
