// Command olad runs the OLA service location daemon.
//
// The daemon answers SLP service requests for its scope set, accepts service
// registrations over unicast, tracks directory agents seen on the multicast
// group, and advertises itself over mDNS as _ola._tcp. Daemon state (known
// DAs, live registrations) is saved on shutdown and restored on the next
// start.
//
// Usage:
//
//	olad [flags]
//
// Flags:
//
//	-config string   Path to a YAML config file
//	-scopes string   Scope list override, e.g. "default,east-wing"
//	-port int        SLP listen port override
//	-version         Print version and exit
//
// All settings can also come from OLA_* environment variables; see the
// config package for the full list.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/openlighting/ola-go/pkg/config"
	"github.com/openlighting/ola-go/pkg/log"
	"github.com/openlighting/ola-go/pkg/persistence"
	"github.com/openlighting/ola-go/pkg/slp/agent"
	"github.com/openlighting/ola-go/pkg/slp/transport"
	"github.com/openlighting/ola-go/pkg/universe"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	scopes := flag.String("scopes", "", "scope list override")
	port := flag.Int("port", 0, "SLP listen port override")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("olad %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "olad: %v\n", err)
		os.Exit(1)
	}
	if *scopes != "" {
		cfg.Scopes = *scopes
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "olad: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("daemon failed")
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).Level(lvl).With().
		Timestamp().
		Str("service", "olad").
		Str("version", version).
		Logger()
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	scopeSet, err := cfg.ScopeSet()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// Protocol event log
	eventLogger := log.Logger(log.NoopLogger{})
	if cfg.EventLog != "" {
		fl, err := log.NewFileLogger(cfg.EventLog)
		if err != nil {
			return fmt.Errorf("opening event log: %w", err)
		}
		defer fl.Close()
		eventLogger = fl
	}

	// Universe registry with persisted settings
	prefs := universe.NewFilePreferences(cfg.PreferencesFile())
	if err := prefs.Load(); err != nil {
		return err
	}
	universes := universe.NewStore(prefs)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "olad"
	}

	sa := agent.NewServiceAgent(agent.ServiceAgentConfig{
		Scopes:    scopeSet,
		URL:       fmt.Sprintf("%s://%s", agent.ServiceTypeServiceAgent, hostname),
		Addresses: localAddresses(),
		Logger:    eventLogger,
	})

	// Restore state from the previous run
	stateStore := persistence.NewStateStore(cfg.StateFile())
	if state, err := stateStore.Load(); err != nil {
		logger.Warn().Err(err).Msg("could not load daemon state")
	} else if state != nil {
		restored := restoreState(sa, state)
		logger.Info().
			Int("registrations", restored).
			Int("directory_agents", len(state.DirectoryAgents)).
			Time("saved_at", state.SavedAt).
			Msg("restored daemon state")
	}

	conn, err := transport.Listen(transport.Config{
		Port:             cfg.Port,
		Interface:        cfg.Interface,
		DisableMulticast: cfg.DisableMulticast,
	})
	if err != nil {
		return fmt.Errorf("opening SLP socket: %w", err)
	}
	defer conn.Close()

	logger.Info().
		Int("port", cfg.Port).
		Str("scopes", scopeSet.String()).
		Bool("multicast", !cfg.DisableMulticast).
		Msg("SLP agent listening")

	mdns := startMDNS(cfg, scopeSet, universes, hostname, logger)
	if mdns != nil {
		defer mdns.Stop()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- sa.Serve(ctx, conn) }()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return err
		}
	}

	if err := saveState(sa, stateStore); err != nil {
		logger.Warn().Err(err).Msg("could not save daemon state")
	}
	if err := universes.DeleteAll(); err != nil {
		logger.Warn().Err(err).Msg("could not save universe settings")
	}
	return nil
}

// localAddresses lists this host's unicast addresses for previous-responder
// suppression.
func localAddresses() []string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	var out []string
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok {
			out = append(out, ipNet.IP.String())
		}
	}
	return out
}
