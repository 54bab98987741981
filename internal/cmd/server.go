package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
)

func setupServer(config *Config, services *Services) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	services.Gateway.RegisterRoutes(mux)

	handler := c.Handler(mux)

	addr := config.Gateway.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%s", getEnv("PORT", "8080"))
	}

	return &http.Server{
		Addr:    addr,
		Handler: handler,
	}
}
