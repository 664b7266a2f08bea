package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-analytics-gateway/analytics"
	"github.com/jrsteele09/go-analytics-gateway/internal/config"
	errs "github.com/jrsteele09/go-analytics-gateway/internal/errors"
	"github.com/jrsteele09/go-analytics-gateway/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const portScanRange = 100

func main() {
	setupLogging()
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	// The redirect URI depends on the bound port, so the port is resolved
	// before the configuration is built and routes are registered.
	listener, port, err := findAvailablePort(config.BasePort())
	if err != nil {
		return err
	}

	c, err := config.New(port)
	if err != nil {
		listener.Close()
		return err
	}
	displayAppname(c.GetAppName())

	factory := analytics.NewFactory(analytics.WithTimeout(c.GetUpstreamTimeout()))
	httpServer := &http.Server{Addr: c.GetPort(), Handler: server.New(c, factory)}

	go serve(httpServer, listener)
	log.Info().
		Int("port", port).
		Str("redirect_uri", c.GetRedirectURL()).
		Bool("client_id_configured", c.GetGoogleClientID() != "").
		Msg("Server running")

	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// findAvailablePort binds the first free port scanning upwards from base.
func findAvailablePort(base int) (net.Listener, int, error) {
	for port := base; port < base+portScanRange; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			return listener, port, nil
		}
	}
	return nil, 0, errs.Wrapf(errs.ErrConfiguration, "no available port in range %d-%d", base, base+portScanRange-1)
}

func serve(httpServer *http.Server, listener net.Listener) {
	if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.Serve")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !strings.EqualFold(os.Getenv("ENV"), "production") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
