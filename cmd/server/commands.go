/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/urfave/cli/v3"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	pcontext "github.com/wso2/identity-phonebook-service/internal/system/context"
	"github.com/wso2/identity-phonebook-service/internal/system/database/provider"
	"github.com/wso2/identity-phonebook-service/internal/system/database/scripts"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"github.com/wso2/identity-phonebook-service/internal/system/managers"
	"github.com/wso2/identity-phonebook-service/internal/system/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP server",
		Action: serve,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the phonebook tables in the configured database",
		Action: func(ctx context.Context, c *cli.Command) error {
			runtimeConfig, err := bootstrap(c)
			if err != nil {
				return err
			}
			statements, err := scripts.SchemaStatements(runtimeConfig.DataSource.Type)
			if err != nil {
				return err
			}
			dbClient, err := provider.NewDBProvider().GetDBClient()
			if err != nil {
				return err
			}
			defer provider.Close()
			return dbClient.InitDatabase(ctx, statements)
		},
	}
}

const shutdownGracePeriod = 10 * time.Second

func serve(ctx context.Context, c *cli.Command) error {

	runtimeConfig, err := bootstrap(c)
	if err != nil {
		return err
	}
	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer provider.Close()
	if err := dbClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	shutdownTracing, err := tracing.Init(ctx, runtimeConfig.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Failed to flush traces", log.Error(err))
		}
	}()

	handler := newHandler(initMultiplexer(), runtimeConfig.Auth.CORSAllowedOrigins)

	serverAddr := fmt.Sprintf("%s:%d", runtimeConfig.Addr.Host, runtimeConfig.Addr.Port)
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", serverAddr, err)
	}
	server := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down", log.Duration("grace_period", shutdownGracePeriod))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", log.Error(err))
		}
	}()

	logger.Info("Phonebook service started", log.String("address", serverAddr),
		log.Bool("cors_restricted", len(runtimeConfig.Auth.CORSAllowedOrigins) > 0))
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Phonebook service stopped")
	return nil
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register the services.", log.Error(err))
	}
	return mux
}

// newHandler wraps the routes with trace ids, OpenTelemetry server spans, CORS and
// gzip response compression.
func newHandler(routes http.Handler, allowedOrigins []string) http.Handler {
	instrumented := otelhttp.NewHandler(gzhttp.GzipHandler(routes), "phonebook")
	return pcontext.TraceMiddleware(enableCORS(instrumented, allowedOrigins))
}

// enableCORS allows the configured origins; an empty list allows any origin without credentials.
func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(allowedOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, If-None-Match, "+constants.TraceIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "ETag, Location, Content-Location, "+constants.TraceIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
