package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect abre la conexión a MongoDB. Si no hay URI o la conexión falla,
// devuelve nil y el resto del sistema sigue en modo degradado.
func Connect(uri string) *mongo.Client {
	if uri == "" {
		log.Println("⚠️ No MongoDB URI found in environment; skipping DB connection")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("🔌 Connecting to MongoDB...")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Println("⚠️ Could not connect to MongoDB:", err)
		return nil
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Println("⚠️ MongoDB ping failed:", err)
		_ = client.Disconnect(context.Background())
		return nil
	}

	log.Println("✅ MongoDB connection established")
	return client
}

// Disconnect cierra la conexión si existe.
func Disconnect(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Println("🔌 Closing MongoDB connection...")
	if err := client.Disconnect(ctx); err != nil {
		log.Println("⚠️ Error while closing MongoDB connection:", err)
		return
	}
	log.Println("✅ MongoDB connection closed")
}
