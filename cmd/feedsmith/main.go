// Command feedsmith harvests upstream feeds and republishes them as
// RSS and Atom documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/tesso57/feedsmith/internal/application/usecase"
	"github.com/tesso57/feedsmith/internal/infrastructure/config"
	"github.com/tesso57/feedsmith/internal/infrastructure/probe"
	"github.com/tesso57/feedsmith/internal/infrastructure/source"
	"github.com/tesso57/feedsmith/internal/infrastructure/store"
	"github.com/tesso57/feedsmith/internal/infrastructure/summarize"
	"github.com/tesso57/feedsmith/internal/server"
	"github.com/tesso57/feedsmith/internal/tui"
	"go.uber.org/zap"
)

type cli struct {
	Config string `help:"Path to the config file." type:"path"`

	Build    buildCmd    `cmd:"" help:"Render every channel into the output directory."`
	Fetch    fetchCmd    `cmd:"" help:"Harvest upstream sources into the article store."`
	Serve    serveCmd    `cmd:"" help:"Serve channels over HTTP."`
	Preview  previewCmd  `cmd:"" help:"Preview the items a channel would publish."`
	Sources  sourcesCmd  `cmd:"" help:"Manage upstream sources."`
	Channels channelsCmd `cmd:"" help:"List configured channels."`
}

type appContext struct {
	cfg *config.Store
	log *zap.Logger
}

func main() {
	var c cli
	k := kong.Parse(&c,
		kong.Name("feedsmith"),
		kong.Description("Syndication feed generator: harvest upstream feeds, republish them as RSS and Atom."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(c.Config)
	k.FatalIfErrorf(err)

	log, err := zap.NewProduction()
	k.FatalIfErrorf(err)
	defer func() { _ = log.Sync() }()

	k.FatalIfErrorf(k.Run(&appContext{cfg: cfg, log: log}))
}

func (a *appContext) openStore() (*store.Store, error) {
	return store.Open(a.cfg.Settings.DatabaseFile)
}

func (a *appContext) publishService(db *store.Store) usecase.PublishService {
	return usecase.NewPublishService(db, a.cfg.Settings, summarize.PlainText)
}

// harvest pulls every configured source into the store, probing
// enclosure metadata the upstream feed left blank.
func (a *appContext) harvest(ctx context.Context) error {
	s := a.cfg.Settings
	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(s.FetchTimeoutSeconds)*time.Second)
	defer cancel()

	articles, err := source.FetchAll(fetchCtx, s.Sources)
	if err != nil {
		a.log.Warn("some sources failed", zap.Error(err))
	}
	if len(articles) == 0 {
		return nil
	}

	prober := probe.New(time.Duration(s.ProbeTimeoutSeconds) * time.Second)
	for i := range articles {
		art := &articles[i]
		if art.EnclosureURL == "" || art.EnclosureLength != "" || art.EnclosureType != "" {
			continue
		}
		enc, err := prober.Enclosure(ctx, art.EnclosureURL)
		if err != nil {
			a.log.Debug("enclosure probe failed", zap.String("url", art.EnclosureURL), zap.Error(err))
		}
		art.EnclosureLength = enc.Length
		art.EnclosureType = enc.Type
	}

	db, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Upsert(articles); err != nil {
		return err
	}
	if err := db.Prune(s.MaxItemsPerSource); err != nil {
		return err
	}

	a.log.Info("harvested", zap.Int("articles", len(articles)), zap.Int("sources", len(s.Sources)))
	return nil
}

type fetchCmd struct{}

func (fetchCmd) Run(a *appContext) error {
	return a.harvest(context.Background())
}

type buildCmd struct {
	NoFetch bool `help:"Render from the store without harvesting first."`
}

func (c buildCmd) Run(a *appContext) error {
	if !c.NoFetch {
		if err := a.harvest(context.Background()); err != nil {
			return err
		}
	}

	db, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	paths, err := a.publishService(db).WriteAll(a.cfg.Settings.OutputDir)
	for _, p := range paths {
		fmt.Println(p)
	}
	return err
}

type serveCmd struct{}

func (serveCmd) Run(a *appContext) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	srv := server.New(a.publishService(db), a.log, a.cfg.Settings.Listen)
	return srv.Run(ctx)
}

type previewCmd struct {
	Name string `arg:"" help:"Channel to preview."`
}

func (c previewCmd) Run(a *appContext) error {
	ch, ok := a.cfg.Settings.ChannelByName(c.Name)
	if !ok {
		return fmt.Errorf("unknown channel %q", c.Name)
	}

	db, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	items, err := a.publishService(db).Items(ch)
	if err != nil {
		return err
	}
	return tui.Run(ch, items)
}

type sourcesCmd struct {
	List   sourcesListCmd   `cmd:"" default:"1" help:"List configured sources."`
	Add    sourcesAddCmd    `cmd:"" help:"Add a source URL."`
	Remove sourcesRemoveCmd `cmd:"" help:"Remove a source by index."`
}

type sourcesListCmd struct{}

func (sourcesListCmd) Run(a *appContext) error {
	sources, err := usecase.NewSourceService(a.cfg).List()
	if err != nil {
		return err
	}
	for i, src := range sources {
		fmt.Printf("%d\t%s\n", i, src)
	}
	return nil
}

type sourcesAddCmd struct {
	URL string `arg:"" help:"Feed URL to harvest."`
}

func (c sourcesAddCmd) Run(a *appContext) error {
	sources, err := usecase.NewSourceService(a.cfg).Add(c.URL)
	if err != nil {
		return err
	}
	fmt.Printf("%d sources configured\n", len(sources))
	return nil
}

type sourcesRemoveCmd struct {
	Index int `arg:"" help:"Index from 'sources list'."`
}

func (c sourcesRemoveCmd) Run(a *appContext) error {
	sources, err := usecase.NewSourceService(a.cfg).Remove(c.Index)
	if err != nil {
		return err
	}
	fmt.Printf("%d sources configured\n", len(sources))
	return nil
}

type channelsCmd struct{}

func (channelsCmd) Run(a *appContext) error {
	channels, err := usecase.NewChannelService(a.cfg).List()
	if err != nil {
		return err
	}
	for _, ch := range channels {
		format := ch.Format
		if format == "" {
			format = "rss"
		}
		fmt.Printf("%s\t%s\t%s\n", ch.Name, format, ch.Title)
	}
	return nil
}
