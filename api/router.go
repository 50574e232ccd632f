package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/zenithtask/zenithtask/api/handlers"
	"github.com/zenithtask/zenithtask/api/middleware"
	"github.com/zenithtask/zenithtask/internal/auth"
	"github.com/zenithtask/zenithtask/pkg/repository"
)

// NewRouter wires the full HTTP surface. Everything under /api requires a
// bearer token except registration and login.
func NewRouter(store *repository.Store, tokens *auth.TokenManager, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(log))

	h := handlers.New(store, tokens)

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/token", h.Login)
	}

	requireAuth := middleware.RequireAuth(tokens, store)

	users := api.Group("/users", requireAuth)
	{
		users.GET("/", h.ListUsers)
		users.GET("/me", h.Me)
		users.PUT("/me", h.UpdateMe)
		users.PUT("/me/password", h.UpdatePassword)
		users.GET("/me/preferences", h.GetPreferences)
		users.PUT("/me/preferences", h.UpdatePreferences)
		users.GET("/:id", h.GetUser)
	}

	projects := api.Group("/projects", requireAuth)
	{
		projects.POST("/", h.CreateProject)
		projects.GET("/", h.ListProjects)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
	}

	tasks := api.Group("/tasks", requireAuth)
	{
		tasks.POST("/", h.CreateTask)
		tasks.GET("/", h.ListTasks)
		tasks.PUT("/reorder", h.ReorderTasks)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.POST("/:id/subtasks", h.CreateSubtask)
		tasks.GET("/:id/tags", h.ListTaskTags)
		tasks.POST("/:id/tags/:tag_id", h.AddTagToTask)
		tasks.DELETE("/:id/tags/:tag_id", h.RemoveTagFromTask)
	}

	tags := api.Group("/tags", requireAuth)
	{
		tags.POST("/", h.CreateTag)
		tags.GET("/", h.ListTags)
		tags.GET("/:id", h.GetTag)
		tags.PUT("/:id", h.UpdateTag)
		tags.DELETE("/:id", h.DeleteTag)
	}

	focus := api.Group("/focus-sessions", requireAuth)
	{
		focus.POST("/", h.CreateFocusSession)
		focus.GET("/", h.ListFocusSessions)
		focus.GET("/:id", h.GetFocusSession)
		focus.PUT("/:id", h.UpdateFocusSession)
		focus.DELETE("/:id", h.DeleteFocusSession)
	}

	energy := api.Group("/energy-logs", requireAuth)
	{
		energy.POST("/", h.CreateEnergyLog)
		energy.GET("/", h.ListEnergyLogs)
		energy.GET("/:id", h.GetEnergyLog)
		energy.PUT("/:id", h.UpdateEnergyLog)
		energy.DELETE("/:id", h.DeleteEnergyLog)
	}

	ai := api.Group("/ai", requireAuth)
	{
		ai.POST("/predict", h.Predict)
	}

	monitoring := api.Group("/monitoring", requireAuth)
	{
		monitoring.GET("/health", h.Health)
		monitoring.GET("/metrics", h.Metrics)
	}

	return r
}
