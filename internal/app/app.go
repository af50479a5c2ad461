package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/aidar/task-manager-project/internal/config"
	"github.com/aidar/task-manager-project/internal/handler"
	"github.com/aidar/task-manager-project/internal/middleware"
	"github.com/aidar/task-manager-project/internal/migrations"
	"github.com/aidar/task-manager-project/internal/repository/postgres"
	"github.com/aidar/task-manager-project/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	server *http.Server
	logger *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Применяем миграции схемы
	if err := a.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool.
// Пул создается один раз на старте процесса и передается по ссылке во все
// репозитории; глобального состояния подключения нет.
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// runMigrations применяет встроенные goose миграции
func (a *App) runMigrations(ctx context.Context) error {
	db, err := sql.Open("pgx", a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	a.logger.Info("Migrations applied")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой репозиториев (работа с БД)
	userRepo := postgres.NewUserRepository(a.db)
	taskRepo := postgres.NewTaskRepository(a.db)
	statsRepo := postgres.NewStatsRepository(a.db)

	// Инициализируем слой сервисов (бизнес-логика)
	statsService := service.NewStatsService(statsRepo)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(
		userRepo,
		a.config.Session.Secret,
		a.config.Session.GetExpiration(),
		a.config.Auth.BcryptCost,
	)

	// Явный хук пересчета статистики после каждой мутации задач.
	// Снимок это производный кеш: ошибка пересчета логируется и не
	// влияет на результат мутации.
	recomputeStats := func(ctx context.Context) {
		if _, err := statsService.Recompute(ctx); err != nil {
			a.logger.Error("Failed to recompute stats", "error", err)
		}
	}
	taskService := service.NewTaskService(taskRepo, recomputeStats)

	// Инициализируем HTTP обработчики
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService, userService, statsService)
	apiHandler := handler.NewAPIHandler(taskService, statsService)

	// Инициализируем middleware проверки сессии
	pageAuth := middleware.PageAuthMiddleware(authService)
	apiAuth := middleware.APIAuthMiddleware(authService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Публичные страницы (без сессии)
	r.Get("/", authHandler.Landing)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Get("/logout", authHandler.Logout)

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Страницы задач (требуют валидную сессию в cookie)
	r.Group(func(r chi.Router) {
		r.Use(pageAuth)

		r.Get("/tasks", taskHandler.Dashboard)
		r.Post("/add-task", taskHandler.AddTask)
		r.Post("/toggle-task/{id}", taskHandler.ToggleTask)
		r.Post("/delete-task/{id}", taskHandler.DeleteTask)
		r.Post("/volunteer/{id}", taskHandler.Volunteer)
		r.Post("/remove-volunteer/{taskID}/{volunteerID}", taskHandler.RemoveVolunteer)
	})

	// JSON API (требует валидную сессию, отвечает 401 вместо редиректа)
	r.Route("/api", func(r chi.Router) {
		r.Use(apiAuth)

		r.Get("/stats", apiHandler.GetStats)
		r.Get("/tasks", apiHandler.GetTasks)
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

	a.logger.Info("HTTP server configured", "addr", addr)
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
