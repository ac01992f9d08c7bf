package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// SPAServer serves the news board page and its assets
type SPAServer struct {
	enabled bool
}

func NewSPAServer(enabled bool) *SPAServer {
	if enabled {
		log.Println("SPA Server enabled")
	}
	return &SPAServer{enabled: enabled}
}

// RegisterRoutes registers the SPA routes with the Gin router
func (s *SPAServer) RegisterRoutes(router *gin.Engine) {
	if !s.enabled {
		log.Println("SPA Server is disabled")
		return
	}

	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Printf("Failed to load embedded static assets: %v", err)
		return
	}

	router.GET("/", s.serveSPA)
	router.StaticFS("/static", http.FS(static))

	log.Println("SPA routes registered successfully")
}

func (s *SPAServer) serveSPA(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":     "AI Wire",
		"timestamp": time.Now().Unix(),
	})
}
