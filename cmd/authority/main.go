// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main runs the reference certificate authority serving the sign,
// archive and lookup endpoints.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/absmach/certmgmt/api"
	httpapi "github.com/absmach/certmgmt/api/http"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/certmgmt/authority/memory"
	apostgres "github.com/absmach/certmgmt/authority/postgres"
	jaegerclient "github.com/absmach/certmgmt/internal/jaeger"
	"github.com/absmach/certmgmt/internal/prometheus"
	"github.com/absmach/certmgmt/internal/uuid"
	"github.com/absmach/certmgmt/tracing"
	pgclient "github.com/absmach/supermq/pkg/postgres"
	"github.com/absmach/supermq/pkg/server"
	httpserver "github.com/absmach/supermq/pkg/server/http"
	"github.com/caarlos0/env/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	svcName        = "certmgmt"
	envPrefixDB    = "AM_CERTMGMT_DB_"
	envPrefixHTTP  = "AM_CERTMGMT_HTTP_"
	defDB          = "certmgmt"
	defSvcHTTPPort = "9010"

	storeMemory   = "memory"
	storePostgres = "postgres"
)

type config struct {
	LogLevel        string        `env:"AM_CERTMGMT_LOG_LEVEL"        envDefault:"info"`
	JaegerURL       url.URL       `env:"AM_JAEGER_URL"                envDefault:""`
	InstanceID      string        `env:"AM_CERTMGMT_INSTANCE_ID"      envDefault:""`
	TraceRatio      float64       `env:"AM_JAEGER_TRACE_RATIO"        envDefault:"1.0"`
	Store           string        `env:"AM_CERTMGMT_STORE"            envDefault:"memory"`
	AdminToken      string        `env:"AM_CERTMGMT_ADMIN_TOKEN"      envDefault:""`
	Users           []string      `env:"AM_CERTMGMT_USERS"            envDefault:""        envSeparator:","`
	ValidityPeriod  time.Duration `env:"AM_CERTMGMT_VALIDITY_PERIOD"  envDefault:"8760h"`
	RequireApproval bool          `env:"AM_CERTMGMT_REQUIRE_APPROVAL" envDefault:"false"`
	AutoRegister    bool          `env:"AM_CERTMGMT_AUTO_REGISTER"    envDefault:"false"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.InstanceID == "" {
		cfg.InstanceID, err = uuid.New().ID()
		if err != nil {
			log.Fatalf("failed to generate instance ID: %s", err)
		}
	}

	tp, err := jaegerclient.NewProvider(ctx, svcName, cfg.JaegerURL, cfg.InstanceID, cfg.TraceRatio)
	if err != nil {
		logger.Info(fmt.Sprintf("Tracing export disabled: %s", err))
		tp = tracesdk.NewTracerProvider()
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error(fmt.Sprintf("Error shutting down tracer provider: %v", err))
		}
	}()
	tracer := tp.Tracer(svcName)

	repo, closeRepo, err := newRepository(cfg.Store, tracer)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create %s repository: %s", svcName, err))
		return
	}
	defer closeRepo()

	svc, err := newService(ctx, repo, tracer, logger, cfg)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create %s service: %s", svcName, err))
		return
	}

	httpServerConfig := server.Config{Port: defSvcHTTPPort}
	if err := env.ParseWithOptions(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err))
		return
	}

	handler := otelhttp.NewHandler(httpapi.MakeHandler(svc, logger, cfg.InstanceID), svcName)
	hs := httpserver.NewServer(ctx, cancel, svcName, httpServerConfig, handler, logger)

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service terminated: %s", svcName, err))
	}
}

func newRepository(store string, tracer trace.Tracer) (authority.Repository, func(), error) {
	switch store {
	case storeMemory:
		return memory.NewRepository(), func() {}, nil
	case storePostgres:
		dbConfig := pgclient.Config{Name: defDB}
		if err := env.ParseWithOptions(&dbConfig, env.Options{Prefix: envPrefixDB}); err != nil {
			return nil, nil, err
		}
		db, err := pgclient.Setup(dbConfig, *apostgres.Migration())
		if err != nil {
			return nil, nil, err
		}
		database := pgclient.NewDatabase(db, dbConfig, tracer)
		return apostgres.NewRepository(database), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", store)
	}
}

func newService(ctx context.Context, repo authority.Repository, tracer trace.Tracer, logger *slog.Logger, cfg config) (authority.Service, error) {
	svc, err := authority.NewService(repo, uuid.New(), authority.Config{
		ValidityPeriod:  cfg.ValidityPeriod,
		RequireApproval: cfg.RequireApproval,
		AutoRegister:    cfg.AutoRegister,
	})
	if err != nil {
		return nil, err
	}

	for _, user := range cfg.Users {
		name, password, ok := strings.Cut(user, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid user entry %q, expected name:password", user)
		}
		if err := svc.Register(ctx, name, password); err != nil {
			return nil, err
		}
		logger.Info(fmt.Sprintf("Registered user %s", name))
	}

	svc = api.AuthorizationMiddleware(svc, cfg.AdminToken)
	svc = api.LoggingMiddleware(svc, logger)
	counter, latency := prometheus.MakeMetrics(svcName, "api")
	svc = api.MetricsMiddleware(svc, counter, latency)
	svc = tracing.New(svc, tracer)

	return svc, nil
}

func initLogger(levelText string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return &slog.Logger{}, fmt.Errorf(`{"level":"error","message":"%s: %s","ts":"%s"}`, err, levelText, time.RFC3339Nano)
	}

	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(logHandler), nil
}
