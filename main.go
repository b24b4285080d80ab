package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mixmasters/content"
	"mixmasters/db"
	"mixmasters/globals"
	"mixmasters/media"
	"mixmasters/rdx"
	"mixmasters/routes"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// Security headers middleware
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

func main() {
	globals.Load()

	if globals.MongoURI == "" {
		log.Fatal("MONGO_URI is required. Set it in the environment or .env")
	}
	if err := media.EnsureDirs(); err != nil {
		log.Fatalf("Could not create upload directories: %v", err)
	}
	if err := db.Connect(globals.MongoURI, globals.MongoDBName); err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	rdx.Init()
	if err := content.EnsureContent(context.Background()); err != nil {
		log.Fatalf("Content bootstrap failed: %v", err)
	}

	router := httprouter.New()
	routes.AddPublicRoutes(router)
	routes.AddAuthRoutes(router)
	routes.AddContentRoutes(router)
	routes.AddResourceRoutes(router)
	routes.AddRegistrationRoutes(router)
	routes.AddUploadRoutes(router)
	routes.AddStaticRoutes(router)

	// CORS setup
	c := cors.New(cors.Options{
		AllowOriginFunc:  globals.OriginAllowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := securityHeaders(c.Handler(router))

	server := &http.Server{
		Addr:    ":" + globals.Port,
		Handler: handler,
	}

	// Start server in a goroutine to handle graceful shutdown
	go func() {
		log.Printf("Server started on port %s", globals.Port)
		log.Printf("MongoDB connected: %s", globals.MongoDBName)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on port %s: %v", globals.Port, err)
		}
	}()

	// Graceful shutdown listener
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	<-shutdownChan
	log.Println("Shutting down gracefully...")

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	if err := db.Disconnect(context.Background()); err != nil {
		log.Printf("MongoDB disconnect failed: %v", err)
	}
	log.Println("Server stopped")
}
