package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetfuel/internal/bot"
	"fleetfuel/internal/handlers"
	"fleetfuel/internal/logger"
	"fleetfuel/internal/repository"
	"fleetfuel/internal/repository/db"
	"fleetfuel/internal/server"
	"fleetfuel/internal/service"
	"fleetfuel/internal/telegram"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	defaultTimezone  = "Europe/Kyiv"
	defaultSheetPath = "fleet.xlsx"
	defaultDBPath    = "fleet.db"

	modePolling = "polling"
	modeWebhook = "webhook"
)

func main() {
	// load config.yml before the logger: the log timezone comes from it
	if err := loadConfig(); err != nil {
		panic("error reading config: " + err.Error())
	}

	loc := loadLocation()
	log := logger.Get(viper.GetString("log_level"), loc)

	// open the configured store
	repos, closeStore, err := openStore(log)
	if err != nil {
		log.Fatalw("failed to open store", "err", err)
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			log.Errorw("failed to close store", "err", cerr)
		}
	}()

	// wire dependencies
	services := service.NewService(repos, loc)
	dispatcher := bot.NewDispatcher(services, nil, cast.ToInt64Slice(viper.Get("admins")), log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// connect the chat transport
	if err := startTelegram(ctx, dispatcher, apiHandler, log); err != nil {
		log.Fatalw("failed to start telegram transport", "err", err)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetDefault("log_level", logger.InfoLevel)
	viper.SetDefault("timezone", defaultTimezone)
	viper.SetDefault("telegram.mode", modePolling)
	viper.SetDefault("store.driver", repository.DriverSheet)
	_ = viper.BindEnv("telegram.token", "TELEGRAM_TOKEN")
	return viper.ReadInConfig()
}

// loadLocation resolves the configured timezone, falling back to UTC. It
// runs before the logger exists, so a bad zone is reported later.
func loadLocation() *time.Location {
	loc, err := time.LoadLocation(viper.GetString("timezone"))
	if err != nil {
		return time.UTC
	}
	return loc
}

// openStore builds the repository for the configured driver and returns a
// close function for its underlying resource.
func openStore(log *logger.Logger) (*repository.Repository, func() error, error) {
	switch driver := viper.GetString("store.driver"); driver {
	case repository.DriverSQLite:
		path := viper.GetString("store.db_path")
		if path == "" {
			path = defaultDBPath
		}
		conn, err := db.InitDB(path)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("store_opened", "driver", driver, "path", path)
		return repository.NewSQLiteRepository(conn), conn.Close, nil
	case repository.DriverSheet:
		path := viper.GetString("store.sheet_path")
		if path == "" {
			path = defaultSheetPath
		}
		wb, err := repository.OpenWorkbook(path)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("store_opened", "driver", driver, "path", path)
		return repository.NewSheetRepository(wb), wb.Close, nil
	default:
		log.Infow("unknown store.driver; using spreadsheet", "driver", driver)
		wb, err := repository.OpenWorkbook(defaultSheetPath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSheetRepository(wb), wb.Close, nil
	}
}

// startTelegram connects the bot account and wires update delivery: a long
// polling goroutine by default, or the webhook route when configured.
func startTelegram(ctx context.Context, dispatcher *bot.Dispatcher, apiHandler *handlers.Handler, log *logger.Logger) error {
	token := viper.GetString("telegram.token")
	client, err := telegram.NewClient(token)
	if err != nil {
		return err
	}
	dispatcher.SetSender(client)
	log.Infow("telegram_connected", "bot", client.Username())

	if viper.GetString("telegram.mode") == modeWebhook {
		webhook := telegram.NewWebhook(client, dispatcher, log)
		if err := webhook.Register(viper.GetString("telegram.public_url")); err != nil {
			return err
		}
		apiHandler.EnableWebhook(webhook, token)
		return nil
	}

	go telegram.NewPoller(client, dispatcher, log).Run(ctx)
	return nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the polling loop and in-flight workflows
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
