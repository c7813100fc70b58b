package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/middleware"

	"github.com/appetiteclub/tableorder/internal/filestore"
	"github.com/appetiteclub/tableorder/internal/natsio"
	"github.com/appetiteclub/tableorder/internal/tableorder"
)

const (
	appNamespace = "TABLEORDER"
	appName      = "tableorder"
	appVersion   = "0.1.0"
)

func main() {
	config, err := aqm.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := aqm.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// Local store for the table identity and the menu snapshot
	store, err := filestore.NewStore(config, logger)
	if err != nil {
		log.Fatalf("%s(%s) cannot initialize store: %v", appName, appVersion, err)
	}

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")
	menuSubject := config.GetStringOrDef("menu.subject", "menu.snapshot")
	fetcher := natsio.NewMenuFetcher(natsURL, menuSubject, logger)

	pub, err := natsio.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	// Order service client for item submissions
	orderURL := config.GetStringOrDef("services.order.url", "http://localhost:3000")
	orderClient := aqm.NewServiceClient(orderURL)
	orderDA := tableorder.NewOrderDataAccess(orderClient)

	session := tableorder.NewSession()
	identity := tableorder.NewIdentityStore(store)
	cache := tableorder.NewMenuCache(store, fetcher, logger)
	submitter := tableorder.NewSubmitter(orderDA, pub, logger)

	handler := tableorder.NewHandler(session, identity, cache, submitter, config, logger)

	// Restore the persisted session before serving traffic
	warmHooks := aqm.LifecycleHooks{
		OnStart: tableorder.WarmSessionFunc(session, identity, cache, logger),
	}

	publisherLifecycle := aqm.LifecycleHooks{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: false, // Table clients call this from the browser
	})

	options := []aqm.Option{
		aqm.WithConfig(config),
		aqm.WithLogger(logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port", handler),
		aqm.WithLifecycle(warmHooks, publisherLifecycle),
		aqm.WithHealthChecks(appName),
	}

	ms := aqm.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
