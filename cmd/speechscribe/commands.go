package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yasmineatrous/Speechscribe/internal/document"
	"github.com/yasmineatrous/Speechscribe/internal/server"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
	"github.com/yasmineatrous/Speechscribe/internal/watcher"
)

type ServeCmd struct {
	Addr  string `help:"Listen address, overrides server.addr."`
	Watch bool   `help:"Also process the input folder in the background."`
}

func (c *ServeCmd) Run(rt *Runtime) error {
	if c.Addr != "" {
		rt.Config.Server.Addr = c.Addr
	}
	app, err := wire(rt.Config, rt.Logger)
	if err != nil {
		return err
	}

	srv := server.New(rt.Config, server.Deps{
		Files:    app.files,
		Resolver: app.resolver,
		Notes:    app.notes,
	}, rt.Logger)

	errChan := make(chan error, 2)
	if c.Watch {
		go func() {
			if err := runWatcher(rt, app); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- err
			}
		}()
	}
	go func() {
		errChan <- srv.Run(rt.Ctx)
	}()

	rt.Logger.Info(rt.Ctx, "Speechscribe is ready on %s (press Ctrl+C to stop)", rt.Config.Server.Addr)
	return <-errChan
}

type WatchCmd struct{}

func (c *WatchCmd) Run(rt *Runtime) error {
	app, err := wire(rt.Config, rt.Logger)
	if err != nil {
		return err
	}
	if err := runWatcher(rt, app); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runWatcher(rt *Runtime, app *components) error {
	w, err := watcher.New(rt.Config.Paths.Input, app.files.Process, rt.Logger, rt.Config.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	rt.Logger.Info(rt.Ctx, "Monitoring: %s", rt.Config.Paths.Input)
	rt.Logger.Info(rt.Ctx, "Output: %s", rt.Config.Paths.Output)
	return w.Start(rt.Ctx)
}

type ResolveCmd struct {
	URL   string `arg:"" help:"Video URL."`
	Notes bool   `help:"Generate notes instead of printing the transcript."`
}

func (c *ResolveCmd) Run(rt *Runtime) error {
	app, err := wire(rt.Config, rt.Logger)
	if err != nil {
		return err
	}

	out, source := app.resolver.ResolveWithSource(rt.Ctx, c.URL)
	if !out.OK() {
		return errors.New(transcript.UserMessage(out.Failure()))
	}
	rt.Logger.Info(rt.Ctx, "Transcript source: %s", source)

	if !c.Notes {
		fmt.Println(out.Text())
		return nil
	}
	notes, err := app.notes.Generate(rt.Ctx, out.Text())
	if err != nil {
		return err
	}
	fmt.Println(notes)
	return nil
}

type TranscribeCmd struct {
	File string `arg:"" help:"Audio or video file." type:"existingfile"`
}

func (c *TranscribeCmd) Run(rt *Runtime) error {
	app, err := wire(rt.Config, rt.Logger)
	if err != nil {
		return err
	}

	out := app.files.Transcribe(rt.Ctx, c.File)
	if !out.OK() {
		return errors.New(transcript.UserMessage(out.Failure()))
	}
	fmt.Println(out.Text())
	return nil
}

type NotesCmd struct {
	File  string `arg:"" help:"Transcript text file, or - for stdin."`
	Title string `help:"Document title, overrides notes.title."`
	PDF   string `help:"Also write the notes as a PDF to this path." type:"path"`
	DOCX  string `help:"Also write the notes as a DOCX to this path." type:"path"`
}

func (c *NotesCmd) Run(rt *Runtime) error {
	text, err := readInput(c.File)
	if err != nil {
		return err
	}
	app, err := wire(rt.Config, rt.Logger)
	if err != nil {
		return err
	}

	notes, err := app.notes.Generate(rt.Ctx, text)
	if err != nil {
		return err
	}
	fmt.Println(notes)

	title := c.Title
	if title == "" {
		title = rt.Config.Notes.Title
	}
	if c.PDF != "" {
		var buf bytes.Buffer
		if err := document.RenderPDF(title, notes, &buf); err != nil {
			return err
		}
		if err := os.WriteFile(c.PDF, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		rt.Logger.Info(rt.Ctx, "Wrote %s", c.PDF)
	}
	if c.DOCX != "" {
		if err := document.RenderDOCX(title, notes, c.DOCX); err != nil {
			return err
		}
		rt.Logger.Info(rt.Ctx, "Wrote %s", c.DOCX)
	}
	return nil
}

func readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("transcript %s is empty", path)
	}
	return string(data), nil
}
