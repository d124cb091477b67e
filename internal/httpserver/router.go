package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/taskboard/internal/handlers"
	"github.com/yukikurage/taskboard/internal/middleware"
	"go.uber.org/zap"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	System   *handlers.SystemHandler
	Users    *handlers.UserHandler
	Projects *handlers.ProjectHandler
	Tasks    *handlers.TaskHandler
}

// crudHandlers is the common surface of the three resource handlers.
type crudHandlers struct {
	list, get, create, update, remove gin.HandlerFunc
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(h Handlers, allowedOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.Recovery(log))
	r.Use(cors.New(corsConfig(allowedOrigins)))

	r.GET("/", h.System.Root)
	r.GET("/health", h.System.Health)
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/readyz", h.System.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerResource(r, "/users", crudHandlers{
		list:   h.Users.ListUsers,
		get:    h.Users.GetUser,
		create: h.Users.CreateUser,
		update: h.Users.UpdateUser,
		remove: h.Users.DeleteUser,
	})
	registerResource(r, "/projects", crudHandlers{
		list:   h.Projects.ListProjects,
		get:    h.Projects.GetProject,
		create: h.Projects.CreateProject,
		update: h.Projects.UpdateProject,
		remove: h.Projects.DeleteProject,
	})
	registerResource(r, "/tasks", crudHandlers{
		list:   h.Tasks.ListTasks,
		get:    h.Tasks.GetTask,
		create: h.Tasks.CreateTask,
		update: h.Tasks.UpdateTask,
		remove: h.Tasks.DeleteTask,
	})

	return r
}

// registerResource mounts the collection routes with and without a trailing
// slash, and the item routes behind the id parser.
func registerResource(r *gin.Engine, prefix string, h crudHandlers) {
	for _, path := range []string{prefix, prefix + "/"} {
		r.GET(path, h.list)
		r.POST(path, h.create)
	}

	item := r.Group(prefix + "/:id")
	item.Use(middleware.RequireResourceID())
	{
		item.GET("", h.get)
		item.PUT("", h.update)
		item.PATCH("", h.update)
		item.DELETE("", h.remove)
	}
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}
