package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	_ "pyrolysis_sim/docs"
	"pyrolysis_sim/internal/config"
	"pyrolysis_sim/internal/genai"
	"pyrolysis_sim/internal/handlers"
	"pyrolysis_sim/internal/logger"
	"pyrolysis_sim/internal/messaging"
	"pyrolysis_sim/internal/repository"
	"pyrolysis_sim/internal/repository/db"
	"pyrolysis_sim/internal/server"
	"pyrolysis_sim/internal/service"
	"pyrolysis_sim/internal/simulation"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulator with the HTTP API and websocket stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.HTTP.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringP("port", "p", "", "HTTP port (overrides http.port)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("sqlite_close_failed", "err", cerr)
		}
	}()
	repos := repository.NewRepository(conn)

	pub, err := messaging.New(messaging.Config{
		URL:            cfg.NATS.URL,
		Name:           cfg.NATS.Name,
		Subject:        cfg.NATS.Subject,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ConnectTimeout: cfg.NATS.ConnectTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("connect nats: %w", err)
	}
	defer pub.Close()

	journal := service.NewJournalWriter(repos.Journal, pub, cfg.DB.JournalBuffer, log)

	simCfg, err := engineConfig(cfg.Simulation)
	if err != nil {
		return fmt.Errorf("simulation config: %w", err)
	}
	engine, err := simulation.NewEngine(simCfg, log,
		simulation.WithLogHook(journal.RecordLog),
		simulation.WithSecurityHook(journal.RecordSecurity),
	)
	if err != nil {
		return err
	}

	media := genai.NewClient(genai.ClientConfig{
		APIKey:       cfg.GenAI.APIKey,
		BaseURL:      cfg.GenAI.BaseURL,
		ImageModel:   cfg.GenAI.ImageModel,
		VideoModel:   cfg.GenAI.VideoModel,
		Timeout:      cfg.GenAI.Timeout,
		PollInterval: cfg.GenAI.PollInterval,
		MaxPolls:     cfg.GenAI.MaxPolls,
	})
	if !media.Available() {
		log.Infow("media_generation_disabled", "reason", "genai.api_key not set")
	}

	// wire dependencies
	services := service.NewService(service.Deps{
		Repos:   repos,
		Engine:  engine,
		Journal: journal,
		Media:   media,
		Auth: service.AuthSettings{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
	})
	apiHandler := handlers.NewHandler(services, log, handlers.WithStreamInterval(cfg.HTTP.StreamInterval))
	srv := server.New(cfg.HTTP)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return services.Run(gctx)
	})
	g.Go(func() error {
		log.Infow("http_server_started", "addr", srv.Addr())
		return srv.Run(apiHandler.InitRoutes())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting_down")
		// the signal context is already cancelled here
		return srv.Shutdown(context.WithoutCancel(gctx))
	})

	err = g.Wait()
	if dropped := journal.Dropped(); dropped > 0 {
		log.Warnw("journal_items_dropped", "count", dropped)
	}
	return err
}
