package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/marcos/task-tracker-project/internal/config"
	"github.com/marcos/task-tracker-project/internal/handler"
	"github.com/marcos/task-tracker-project/internal/middleware"
	"github.com/marcos/task-tracker-project/internal/repository/jsonstore"
	"github.com/marcos/task-tracker-project/internal/service"
	"github.com/marcos/task-tracker-project/pkg/logger"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	store  *jsonstore.Store
	server *http.Server
	logger *zap.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер
	l, err := logger.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &App{
		config: cfg,
		logger: l,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Открываем документное хранилище
	store, err := jsonstore.NewStore(a.config.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	a.store = store
	a.logger.Info("Document store opened", zap.String("dir", a.config.Storage.DataDir))

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой репозиториев (работа с хранилищем)
	accountRepo := jsonstore.NewAccountRepository(a.store)
	taskRepo := jsonstore.NewTaskRepository(a.store)

	// Инициализируем слой сервисов (бизнес-логика)
	accountDirectory := service.NewAccountDirectory(accountRepo)
	taskRegistry := service.NewTaskRegistry(taskRepo, accountRepo)
	statsService := service.NewStatsService(accountRepo, taskRepo)
	authService := service.NewAuthService(
		accountDirectory,
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
	)

	// Валидатор тел запросов
	validate := validator.New()

	// Инициализируем HTTP обработчики
	authHandler := handler.NewAuthHandler(authService, validate)
	accountHandler := handler.NewAccountHandler(
		accountDirectory,
		validate,
		a.config.Bootstrap.AdminUsername,
		a.config.Bootstrap.AdminPassword,
	)
	taskHandler := handler.NewTaskHandler(taskRegistry, validate)
	statsHandler := handler.NewStatsHandler(statsService)

	// Инициализируем middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(authService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ZapLogger(a.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Публичные эндпоинты (без авторизации)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
	})

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", zap.Error(err))
		}
	})

	// Путь начальной настройки: создание администратора по умолчанию.
	// В production рекомендуется отключить после установки
	r.Post("/install", accountHandler.Install)

	// Саморегистрация доступна без токена
	r.Post("/users", accountHandler.Register)

	// Защищенные эндпоинты (требуют JWT токен в заголовке Authorization)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		// Эндпоинты аккаунтов
		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RequireAdmin).Get("/", accountHandler.List)
			r.With(middleware.RequireAdmin).Post("/admin", accountHandler.RegisterAdmin)
			r.Get("/{id}", accountHandler.Get)
			r.Put("/{id}", accountHandler.Update)
			r.With(middleware.RequireAdmin).Delete("/{id}", accountHandler.Delete)
		})

		// Эндпоинты задач
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Put("/{id}", taskHandler.UpdateDetails)
			r.Post("/{id}/assign", taskHandler.Assign)
			r.Patch("/{id}/status", taskHandler.UpdateStatus)
			r.Delete("/{id}", taskHandler.Delete)
		})

		// Эндпоинты статистики
		r.Get("/stats", statsHandler.GetStats)
	})

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", zap.String("addr", addr))
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	a.logger.Info("Application stopped gracefully")
	_ = a.logger.Sync()
	return nil
}
