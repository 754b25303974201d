package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"

	"rems-service/internal/adapters/codestore"
	logger_adapter "rems-service/internal/adapters/logger"
	"rems-service/internal/adapters/memstore"
	"rems-service/internal/adapters/notifier"
	"rems-service/internal/adapters/rest"
	"rems-service/internal/adapters/sessionfile"
	token_adapter "rems-service/internal/adapters/token"
	"rems-service/internal/configs"
	"rems-service/internal/core/filter"
	"rems-service/internal/core/port"
	"rems-service/internal/core/usecase"
	"rems-service/pkg/fluentlogger"
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. LOGGER INITIALIZATION ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. BASE APPLICATION LOGGER WITH CONTEXT ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. DATA LAYER: SEED CATALOG + IN-MEMORY STORE ---
	seed, err := memstore.LoadSeed()
	if err != nil {
		appLogger.Error("Failed to load seed catalog", err, nil)
		return nil, fmt.Errorf("failed to load seed catalog: %w", err)
	}

	propertyStore := memstore.NewPropertyStore(seed, baseLogger)
	appLogger.Info("Property store initialized", port.Fields{"seed_size": len(seed)})

	sessionStore, err := sessionfile.NewSessionStore(appConfig.Auth.SessionFilePath)
	if err != nil {
		appLogger.Error("Failed to open session storage", err, nil)
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	codeStore := codestore.NewCodeStore()

	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSigningKey)
	if err != nil {
		appLogger.Error("Failed to create token service", err, nil)
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	listingNotifier := notifier.NewSSENotifier(baseLogger)
	appLogger.Info("All persistence and service adapters initialized.", nil)

	// --- 4. FILTER ENGINE ---
	filterEngine := filter.NewEngine(propertyStore, baseLogger)

	// --- 5. USE CASES ---
	searchPropertiesUseCase := usecase.NewSearchPropertiesUseCase(filterEngine)
	updateFiltersUseCase := usecase.NewUpdateFiltersUseCase(filterEngine)
	resetFiltersUseCase := usecase.NewResetFiltersUseCase(filterEngine)
	getFilterOptionsUseCase := usecase.NewGetFilterOptionsUseCase(filterEngine)
	addPropertyUseCase := usecase.NewAddPropertyUseCase(propertyStore, listingNotifier)
	getPropertyDetailsUseCase := usecase.NewGetPropertyDetailsUseCase(propertyStore)

	loginUseCase := usecase.NewLoginUserUseCase(sessionStore, tokenService,
		appConfig.Auth.MockLoginDelay, appConfig.Auth.TokenTTL)
	registerUseCase := usecase.NewRegisterUserUseCase(sessionStore, tokenService,
		appConfig.Auth.MockLoginDelay, appConfig.Auth.TokenTTL)
	logoutUseCase := usecase.NewLogoutUserUseCase(sessionStore)
	restoreSessionUseCase := usecase.NewRestoreSessionUseCase(sessionStore)

	requestResetCodeUseCase := usecase.NewRequestResetCodeUseCase(codeStore,
		appConfig.Auth.MockLoginDelay, appConfig.Recovery.CodeTTL)
	resendResetCodeUseCase := usecase.NewResendResetCodeUseCase(requestResetCodeUseCase, codeStore)
	verifyResetCodeUseCase := usecase.NewVerifyResetCodeUseCase(codeStore)
	resetPasswordUseCase := usecase.NewResetPasswordUseCase(codeStore, codeStore)

	// --- 6. REST API SERVER ---
	apiHandlers := rest.Handlers{
		Search:   rest.NewSearchHandlers(searchPropertiesUseCase, updateFiltersUseCase, resetFiltersUseCase, getFilterOptionsUseCase),
		Property: rest.NewPropertyHandlers(getPropertyDetailsUseCase, addPropertyUseCase),
		Auth:     rest.NewAuthHandlers(loginUseCase, registerUseCase, logoutUseCase, restoreSessionUseCase),
		Recovery: rest.NewRecoveryHandlers(requestResetCodeUseCase, resendResetCodeUseCase, verifyResetCodeUseCase, resetPasswordUseCase),
		Events:   listingNotifier,
	}
	apiServer := rest.NewServer(appConfig.Rest.PORT, appConfig.Rest.AllowedOrigins, apiHandlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	application := &App{
		config:    appConfig,
		apiServer: apiServer,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run starts all application components and manages their lifecycle.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Write to stdout in case fluent is already unreachable.
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
