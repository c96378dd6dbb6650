package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"adeybloom-backend/internal/bot"
	"adeybloom-backend/internal/cartclient"
	"adeybloom-backend/internal/config"
	"adeybloom-backend/internal/database"
	"adeybloom-backend/internal/repository"
	"adeybloom-backend/internal/routes"
)

func main() {
	cfg := config.LoadConfig()

	// Sin URI o sin conexión el cliente queda nil y todo degrada:
	// la API responde vacío/desconectado y el bot avisa al usuario.
	client := database.Connect(cfg.MongoURI)

	var repo *repository.ProductRepository
	if client != nil {
		repo = repository.NewProductRepository(client.Database(cfg.MongoDB).Collection("products"))
	} else {
		repo = repository.NewProductRepository(nil)
	}

	router := gin.Default()
	routes.RegisterRoutes(router, repo)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// El bot corre como tarea supervisada junto al servidor HTTP,
	// compartiendo solo el repositorio de solo lectura.
	botCtx, stopBot := context.WithCancel(ctx)
	defer stopBot()
	botDone := make(chan struct{})

	if cfg.BotToken == "" {
		log.Println("⚠️ TELEGRAM_BOT_TOKEN not set; Telegram bot will not start")
		close(botDone)
	} else {
		tgBot, err := bot.New(cfg.BotToken, repo, cartclient.New(cfg.BackendURL))
		if err != nil {
			log.Println("⚠️ Could not start Telegram bot:", err)
			close(botDone)
		} else {
			go func() {
				defer close(botDone)
				tgBot.Run(botCtx)
			}()
		}
	}

	go func() {
		log.Println("🚀 Server running on port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("⚠️ HTTP server error:", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	// Teardown ordenado: primero el polling del bot, luego HTTP,
	// al final la conexión a Mongo.
	stopBot()
	<-botDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("⚠️ HTTP shutdown error:", err)
	}

	database.Disconnect(client)
	log.Println("✅ Shutdown complete")
}
