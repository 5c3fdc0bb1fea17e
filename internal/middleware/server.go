package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"findahand_backend/internal/config"
	"findahand_backend/internal/logger"
	"findahand_backend/pkg/contextkeys"
)

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.HTTPLog(c.Request.Context(), c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Int("size_bytes", c.Writer.Size()),
		)
	}
}

// DBMiddleware exposes the database handle to handlers through the gin
// context. Tests can override it by placing their own transaction under
// the same key in the request context.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbKey := string(contextkeys.DBContextKey)
		tx, ok := c.Request.Context().Value(contextkeys.DBContextKey).(*gorm.DB)

		if ok && tx != nil {
			c.Set(dbKey, tx)
		} else {
			c.Set(dbKey, db)
		}

		c.Next()
	}
}

// CORSMiddleware allows the configured exact origins plus any origin whose
// host ends with one of the configured hosting-platform suffixes. Preview
// deploys get random subdomains, so suffix matching is required.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.CORS.Origins))
	for _, o := range cfg.CORS.Origins {
		allowed[strings.ToLower(o)] = true
	}
	suffixes := cfg.CORS.WildcardSuffixes

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			o := strings.ToLower(origin)
			if allowed[o] {
				return true
			}
			if !strings.HasPrefix(o, "https://") {
				return false
			}
			host := strings.TrimPrefix(o, "https://")
			for _, suffix := range suffixes {
				if strings.HasSuffix(host, suffix) {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
