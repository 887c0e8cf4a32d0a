package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/mailslurper/settings-service/handlers"
	"github.com/mailslurper/settings-service/otel"
	"github.com/mailslurper/settings-service/settings"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const serviceName = "mailslurper-settings"

func newServeCmd(app *App, info handlers.BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the settings API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), app, info)
		},
	}
}

// servedDefaults are the settings served on /servicesettings. A numeric
// port is served as a JSON number.
func servedDefaults(app *App) *settings.ServiceSettings {
	port := settings.StringPort(app.Config.ServicePort)
	if n, err := strconv.Atoi(app.Config.ServicePort); err == nil {
		port = settings.NumericPort(n)
	}

	return &settings.ServiceSettings{
		ServiceAddress: app.Config.ServiceAddress,
		ServicePort:    port,
		Version:        app.Config.ServiceVersion,
	}
}

func newServerHandler(app *App, info handlers.BuildInfo) http.Handler {
	info.StoreType = app.StoreType.String()

	r := handlers.NewRouter(app.Service, info, servedDefaults(app))

	if app.Config.TraceProjectID != "" {
		r.Use(otelmux.Middleware(serviceName))
	}

	h := http.TimeoutHandler(r, app.Config.ServerRequestTimeout, "request timed out")
	if !app.Config.DisableCORS {
		h = handlers.UseCors(h)
	}
	h = handlers.UseLogging(h)
	h = handlers.UseCompress(h)

	return h
}

func runServer(ctx context.Context, app *App, info handlers.BuildInfo) error {
	cfg := app.Config

	log.Info("Starting server")

	if cfg.TraceProjectID != "" {
		shutdown, err := otel.InitTracer(cfg.TraceProjectID)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(ctx)
			log.Info("Flushed traces")
		}()
	}

	// Server boilerplate
	srv := &http.Server{
		Handler:      newServerHandler(app, info),
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 0, // Disabled, set cfg.ServerRequestTimeout instead
		ReadTimeout:  0, // Disabled, set cfg.ServerRequestTimeout instead
	}

	errc := make(chan error, 1)

	go func() {
		log.
			WithFields(log.Fields{
				"host":  cfg.Host,
				"port":  cfg.Port,
				"store": app.StoreType,
			}).
			Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Got interrupt. Shutting down..")

	// Create a deadline to wait for.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("Error in server shutdown: %s", err)
	}

	return nil
}
