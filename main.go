package main

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Ithalolp/JW-STORE/pkg/catalog"
	"github.com/Ithalolp/JW-STORE/pkg/domain/model"
	"github.com/Ithalolp/JW-STORE/pkg/domain/service"
	"github.com/Ithalolp/JW-STORE/pkg/storage/filestore"
	"github.com/Ithalolp/JW-STORE/pkg/storage/sqlstore"
	"github.com/Ithalolp/JW-STORE/transport"
)

type config struct {
	StoreName     string `envconfig:"STORE_NAME" default:"JW STORE"`
	StorePhone    string `envconfig:"STORE_PHONE" default:"558582312325"`
	ListenAddr    string `envconfig:"LISTEN_ADDR" default:":8080"`
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"file"`
	DataDir       string `envconfig:"DATA_DIR" default:"data"`
	DatabaseDSN   string `envconfig:"DATABASE_DSN"`
}

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  "jwstore",
		Usage: "JW Store cart core and storefront API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the storefront HTTP API",
				Action: runServe,
			},
			{
				Name:   "checkout",
				Usage:  "Hand the persisted cart off to WhatsApp from the terminal",
				Action: runCheckout,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Application terminated")
	}
}

func runServe(_ *cli.Context) error {
	cfg, stores, closeStore, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeStore()

	router := transport.Router(catalog.NewStaticProvider(), stores.cart, stores.profiles, stores.checkout)
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	log.WithFields(log.Fields{"addr": cfg.ListenAddr, "driver": cfg.StorageDriver}).Info("Starting server")
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	waitForKillSignal(getKillSignalChan())
	return srv.Shutdown(context.Background())
}

func runCheckout(_ *cli.Context) error {
	_, stores, closeStore, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeStore()

	return stores.checkout.OpenCheckout()
}

type storeSet struct {
	cart     service.CartService
	profiles service.ProfileService
	checkout service.CheckoutService
}

func bootstrap() (config, storeSet, func(), error) {
	var cfg config
	if err := envconfig.Process("jwstore", &cfg); err != nil {
		return cfg, storeSet{}, nil, err
	}

	store, closeStore, err := newSnapshotStore(cfg)
	if err != nil {
		return cfg, storeSet{}, nil, err
	}

	dispatcher := logDispatcher{}
	cart := service.NewCartService(store, dispatcher, service.NewTimestampIDGenerator())
	profiles := service.NewProfileService(store)
	checkout := service.NewCheckoutService(
		cart, profiles, dispatcher, execOpener{}, logPrompt{}, cfg.StoreName, cfg.StorePhone,
	)

	return cfg, storeSet{cart: cart, profiles: profiles, checkout: checkout}, closeStore, nil
}

func newSnapshotStore(cfg config) (service.SnapshotStore, func(), error) {
	if cfg.StorageDriver == "mysql" {
		store, err := sqlstore.New(cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	store, err := filestore.New(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// logDispatcher is the presentation-facing event sink: listeners re-render
// off the log of change notifications during development.
type logDispatcher struct{}

func (logDispatcher) Dispatch(event service.Event) error {
	log.WithField("event", event.Type()).Debug("Store changed")
	return nil
}

// execOpener opens the hand-off URL with the desktop's default handler.
type execOpener struct{}

func (execOpener) Open(target string) error {
	return exec.Command("xdg-open", target).Start()
}

// logPrompt surfaces the profile-completion request when no interactive
// configuration flow is attached.
type logPrompt struct{}

func (logPrompt) PromptProfile(item model.CartLineItem) {
	log.WithFields(log.Fields{
		"productId": item.ProductID,
		"name":      item.Name,
	}).Warn("Checkout blocked: complete name and phone in the product configuration form")
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignal(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}
}
