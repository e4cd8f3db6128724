package cli

import (
	"io"

	"docassist/internal/adapter/console"
	"docassist/internal/adapter/imagefile"
	"docassist/internal/adapter/jsonfile"
	"docassist/internal/adapter/memory"
	"docassist/internal/adapter/openai"
	"docassist/internal/adapter/pdf"
	"docassist/internal/adapter/tesseract"
	"docassist/internal/config"
	"docassist/internal/domain"
	"docassist/internal/usecase/chat"
	"docassist/internal/usecase/extract"
	"docassist/internal/usecase/session"
)

type Options struct {
	In        io.Reader
	Out       io.Writer
	Ephemeral bool
}

// App holds the wired services shared by every command.
type App struct {
	Config   config.Config
	Store    domain.SessionStore
	Sessions *session.Service
	Shell    *console.Shell
	Out      io.Writer
}

func NewApp(cfg config.Config, opts Options) *App {
	var store domain.SessionStore = jsonfile.NewStore(cfg.ChatDir)
	if opts.Ephemeral {
		store = memory.NewStore()
	}

	extractor := extract.NewService(
		tesseract.NewRecognizer(cfg.TessdataPrefix),
		pdf.NewRasterizer(cfg.PDFDPI),
		imagefile.NewLoader(),
	)
	sessions := session.NewService(extractor, store, cfg)

	term := console.NewTerminal(opts.In, opts.Out)
	chatSvc := chat.NewService(openai.NewClient(cfg.APIKey, cfg.BaseURL), cfg)
	loop := chat.NewLoop(chatSvc, store, term, term)
	picker := console.NewFilePicker("", opts.In, opts.Out)

	return &App{
		Config:   cfg,
		Store:    store,
		Sessions: sessions,
		Shell:    console.NewShell(cfg, term, opts.Out, sessions, loop, picker),
		Out:      opts.Out,
	}
}
