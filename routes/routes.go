package routes

import (
	"net/http"
	"time"

	"mixmasters/auth"
	"mixmasters/content"
	"mixmasters/media"
	"mixmasters/middleware"
	"mixmasters/ratelim"
	"mixmasters/registrations"
	"mixmasters/resources"
	"mixmasters/utils"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/*filepath", http.Dir(media.UploadDir))
}

func AddPublicRoutes(router *httprouter.Router) {
	router.GET("/api/health", ratelim.RateLimit(healthCheck))
	router.GET("/api/public/content", ratelim.RateLimit(content.GetPublicContent))
	router.GET("/api/public/main-event", ratelim.RateLimit(content.GetMainEvent))
	router.POST("/api/public/registrations", ratelim.RateLimit(registrations.Create))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
}

func AddContentRoutes(router *httprouter.Router) {
	router.GET("/api/content", middleware.Authenticate(content.GetContent))
	router.PUT("/api/content", middleware.Authenticate(content.UpdateContent))
	router.GET("/api/results", middleware.Authenticate(content.GetResults))
	router.PUT("/api/results", middleware.Authenticate(content.UpdateResults))
}

// AddResourceRoutes registers the generic CRUD surface once per allow-listed
// resource; httprouter rejects a wildcard next to the static /api/ routes, so
// the allow-list doubles as the route table and unknown resources 404 at the
// router.
func AddResourceRoutes(router *httprouter.Router) {
	for _, resource := range resources.Keys {
		router.GET("/api/"+resource, middleware.Authenticate(resources.List(resource)))
		router.POST("/api/"+resource, middleware.Authenticate(resources.Create(resource)))
		router.PUT("/api/"+resource+"/:id", middleware.Authenticate(resources.Update(resource)))
		router.DELETE("/api/"+resource+"/:id", middleware.Authenticate(resources.Delete(resource)))
	}
}

func AddRegistrationRoutes(router *httprouter.Router) {
	router.GET("/api/registrations", middleware.Authenticate(registrations.List))
	router.DELETE("/api/registrations/:id", middleware.Authenticate(registrations.Delete))
}

func AddUploadRoutes(router *httprouter.Router) {
	router.POST("/api/upload", middleware.Authenticate(media.Upload))
}

func healthCheck(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "mix_masters_backend",
		"storage": map[string]string{
			"db":         "mongodb",
			"media":      "local-filesystem",
			"uploadsDir": "/uploads",
		},
		"date": time.Now().UTC().Format(time.RFC3339),
	})
}
