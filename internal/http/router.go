// README: HTTP route registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/1234620/Travel-Based-Chatbot/internal/http/handlers"
)

const banner = "NLP Multi-Agent Travel Chatbot Backend is running."

func registerRoutes(r *gin.Engine, chat *handlers.ChatHandler, search *handlers.SearchHandler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": banner})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/chat", chat.Chat)
	r.GET("/conversation/:user_id", chat.History)
	r.DELETE("/conversation/:user_id", chat.Clear)

	r.GET("/flight", search.Flight)
	r.GET("/hotel", search.Hotel)
	r.GET("/rag", search.Itinerary)
	r.GET("/rag/integrated", search.IntegratedItinerary)
}
