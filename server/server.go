package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"todo-server/db"
	httpHandler "todo-server/handlers/http"
	"todo-server/repositories"
	"todo-server/sessions"
	"todo-server/usecases"
	"todo-server/views"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app      *gin.Engine
	db       db.Database
	sessions *sessions.Manager
	weather  httpHandler.WeatherProvider
	log      *log.Logger

	// overridable in tests
	auth *usecases.AuthUseCase
	todo *usecases.TodoUseCase
}

func NewServer(database db.Database, sm *sessions.Manager, weather httpHandler.WeatherProvider, l *log.Logger) *Server {
	s := &Server{
		app:      gin.New(),
		db:       database,
		sessions: sm,
		weather:  weather,
		log:      l,
	}

	users := repositories.NewUserPgRepository(database)
	s.auth = usecases.NewAuthUseCase(users)
	s.todo = usecases.NewTodoUseCase(
		users,
		repositories.NewListPgRepository(database),
		repositories.NewItemPgRepository(database),
		usecases.NewUserLocks(),
	)
	return s
}

// AuthUseCase exposes the registration and login flows.
func (s *Server) AuthUseCase() *usecases.AuthUseCase { return s.auth }

// TodoUseCase exposes the list operations.
func (s *Server) TodoUseCase() *usecases.TodoUseCase { return s.todo }

// Handler wires the routes and returns the engine.
func (s *Server) Handler() http.Handler {
	s.app.Use(gin.Logger(), gin.Recovery())
	s.app.SetHTMLTemplate(views.Templates())

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	authHandler := httpHandler.NewAuthHandler(s.auth, s.sessions, s.log)
	todoHandler := httpHandler.NewTodoHandler(s.todo, s.log)
	weatherHandler := httpHandler.NewWeatherHandler(s.weather, s.log)

	// Login-signup routes
	s.app.GET("/login", authHandler.LoginPage)
	s.app.GET("/register", authHandler.RegisterPage)
	s.app.POST("/register", authHandler.Register)
	s.app.POST("/login", authHandler.Login)
	s.app.GET("/logout", authHandler.Logout)

	app := s.app.Group("/", httpHandler.RequireAuth(s.sessions))
	{
		app.GET("", todoHandler.Home)
		app.POST("", todoHandler.AddItem)
		app.POST("/delete", todoHandler.DeleteItem)
		app.POST("/createList", todoHandler.CreateList)
		app.GET("/lists/:listName", todoHandler.ShowList)
		app.GET("/deleteList/:listName", todoHandler.DeleteList)
		app.POST("/weather", weatherHandler.Show)
	}

	return s.app
}

// Start serves on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", "port", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
