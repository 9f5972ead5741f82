package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tapan2502/Ride-Sharing-Assingement/configs"
	"github.com/tapan2502/Ride-Sharing-Assingement/middlewares"
	"github.com/tapan2502/Ride-Sharing-Assingement/routes"
	"github.com/tapan2502/Ride-Sharing-Assingement/ws"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// Realtime hub — one instance, handed to everything that publishes
	hub := ws.NewNotificationHub()
	go hub.Run()

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware(cfg.ClientURL))

	reg := prometheus.NewRegistry()
	r.Use(middlewares.Metrics(reg))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	routes.RegisterRoutes(r, cfg, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
