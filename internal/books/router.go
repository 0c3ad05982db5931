package books

import (
	"fmt"
	"net/http"
	"sync"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/penglongli/gin-metrics/ginmetrics"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/buker/go-records/docs"
	"github.com/buker/go-records/internal/store"
	"github.com/buker/go-records/internal/validate"
)

const sessionName = "go-records"

var installValidator sync.Once

// RouterConfig wires the book router.
type RouterConfig struct {
	Store store.BookStore
	// Sessions defaults to a cookie store when nil.
	Sessions sessions.Store
	// Metrics, when set, instruments every route. The endpoint is exposed by NewMetricsRouter.
	Metrics *ginmetrics.Monitor
	// SwaggerHost enables /swagger when not empty.
	SwaggerHost string
}

// NewRouter builds the gin engine serving the book API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	// binding.Validator is process-wide; every engine shares one instance.
	installValidator.Do(func() {
		binding.Validator = validate.New()
	})

	app := gin.New()
	app.Use(gin.Recovery())
	app.Use(requestLogger())
	app.Use(sentrygin.New(sentrygin.Options{
		Repanic: true,
	}))
	app.Use(gzip.Gzip(gzip.DefaultCompression))

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		sessionStore = cookie.NewStore([]byte("secret"))
	}
	app.Use(sessions.Sessions(sessionName, sessionStore))

	if cfg.Metrics != nil {
		cfg.Metrics.UseWithoutExposingEndpoint(app)
	}

	h := &Handler{Store: cfg.Store}

	app.GET("/books", h.handleGetBooks)
	app.GET("/books/", h.handleGetBooks)
	app.GET("/books/:book_id", h.handleGetBook)
	app.GET("/book/", h.handleFilterBooks)
	app.PUT("/books/book_update", h.handleUpdateBook)
	app.POST("/create-book", h.handleCreateBook)
	app.DELETE("/delete-book", h.handleDeleteBookQuery)
	app.DELETE("/books/:book_id", h.handleDeleteBookPath)
	app.GET("/session", handleSession)
	app.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Title = "go-records book API"
		docs.SwaggerInfo.Description = "In-memory book catalog"
		docs.SwaggerInfo.Version = "1.0"
		docs.SwaggerInfo.Host = cfg.SwaggerHost
		docs.SwaggerInfo.BasePath = "/"
		docs.SwaggerInfo.Schemes = []string{"http", "https"}
		app.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	return app
}

// NewSessionStore returns a redis-backed store when redisAddr is set, a cookie store otherwise.
func NewSessionStore(secret, redisAddr string) (sessions.Store, error) {
	if redisAddr == "" {
		return cookie.NewStore([]byte(secret)), nil
	}
	s, err := redis.NewStore(10, "tcp", redisAddr, "", []byte(secret))
	if err != nil {
		return nil, fmt.Errorf("redis session store: %w", err)
	}
	return s, nil
}

// NewMetricsRouter configures the global gin-metrics monitor and returns a
// separate engine exposing /metrics along with the monitor to pass to NewRouter.
func NewMetricsRouter() (*gin.Engine, *ginmetrics.Monitor) {
	metricRouter := gin.New()
	metricRouter.Use(gin.Recovery())

	// get global Monitor object
	metrics := ginmetrics.GetMonitor()
	metrics.SetMetricPath("/metrics")
	// requests slower than this many seconds are counted as slow
	metrics.SetSlowTime(10)
	// used to p95, p99
	metrics.SetDuration([]float64{0.1, 0.3, 1.2, 5, 10})
	metrics.Expose(metricRouter)

	return metricRouter, metrics
}
