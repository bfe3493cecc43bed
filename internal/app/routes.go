package app

import (
	"net/http"
	"time"

	"github.com/garyellow/kampus-chat-go/internal/chat"
	"github.com/garyellow/kampus-chat-go/internal/sentry"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// StatusMessage is the liveness payload of GET /.
const StatusMessage = "shodo sakusen jikkou"

func (a *Application) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(corsMiddleware())
	router.Use(loggingMiddleware(a.logger))

	router.GET("/", a.home)
	router.POST("/chat", a.handleChat)
	return router
}

func (a *Application) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": StatusMessage,
	})
}

// chatBody is the wire form of chat.Request. The pointer lets binding tell a
// missing or null message apart from an empty one, which is accepted.
type chatBody struct {
	Message *string `json:"message" binding:"required"`
}

func (a *Application) handleChat(c *gin.Context) {
	start := time.Now()

	var body chatBody
	if err := c.ShouldBindJSON(&body); err != nil {
		a.metrics.RecordChat("bad_request", time.Since(start).Seconds())
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	c.JSON(http.StatusOK, a.chat.Handle(c.Request.Context(), chat.Request{Message: *body.Message}))
}
