package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/vibetorch/backend/go-services/handlers"
	"github.com/vibetorch/backend/go-services/internal/config"
	"github.com/vibetorch/backend/go-services/internal/github"
	"github.com/vibetorch/backend/go-services/internal/session"
	"github.com/vibetorch/backend/go-services/pkg/logger"
	"github.com/vibetorch/backend/go-services/pkg/metrics"
	"github.com/vibetorch/backend/go-services/pkg/middleware"
)

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: redis=%v rate_limit=%v", cfg.Redis.URL != "", cfg.RateLimit.Enabled)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS for the single configured frontend origin. Credentials must be
	// allowed or the browser drops the session cookie.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.Server.FrontendURL)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	// Connect to Redis early so sessions and the rate limiter share the client.
	// A failed connection is not fatal: sessions degrade to the memory tier.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, perr := redis.ParseURL(cfg.Redis.URL)
		if perr != nil {
			logger.Warnf("invalid REDIS_URL, falling back to in-memory sessions: %v", perr)
		} else {
			client := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := client.Ping(pingCtx).Err(); err != nil {
				logger.Warnf("failed to connect to Redis (%s), falling back to in-memory sessions: %v", opts.Addr, err)
			} else {
				redisClient = client
				logger.Infof("connected to Redis: %s", opts.Addr)
			}
			cancel()
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	sessions := session.NewManager(redisClient, cfg.Session.TTL)
	gh := github.NewClient(cfg)
	gate := middleware.RequireSession(cfg.Session.Secret, sessions)

	handlers.NewAuthHandler(cfg, gh, sessions).Register(&r.RouterGroup, gate)
	handlers.NewRepoHandler(gh).Register(&r.RouterGroup, gate)
	handlers.NewHealthHandler(sessions).Register(&r.RouterGroup)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting auth relay on %s (redis_sessions=%v)", addr, redisClient != nil)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
