package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adeybloom-backend/internal/models"
)

const defaultListLimit = 10

// ProductRepository es la capa de lectura compartida por la API HTTP y el bot.
// La colección puede ser nil (sin conexión): en ese caso las lecturas degradan
// a resultados vacíos en lugar de fallar.
type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// Connected indica si hay una colección disponible.
func (r *ProductRepository) Connected() bool {
	return r.collection != nil
}

// List devuelve productos paginados proyectados a ListItem.
// `filter` es una conjunción bson.M construida por el llamador.
func (r *ProductRepository) List(ctx context.Context, limit, skip int64, filter bson.M) ([]models.ListItem, error) {
	if r.collection == nil {
		return []models.ListItem{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}

	// Projection para listado: solo la primera imagen
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{
			"name":     1,
			"price":    1,
			"currency": 1,
			"images":   bson.M{"$slice": 1},
			"stock":    1,
			"active":   1,
		})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.ListItem, 0, limit)
	for cursor.Next(ctx) {
		var doc models.Product
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.ToListItem())
	}
	return items, cursor.Err()
}

// FindByID devuelve el detalle de un producto, o nil si no existe.
// Un id malformado cuenta como "no encontrado", nunca como error.
// El detalle no filtra por `active`.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Detail, error) {
	if r.collection == nil {
		return nil, nil
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	detail := doc.ToDetail()
	return &detail, nil
}

// Count devuelve el total de productos, para el probe de estado.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	if r.collection == nil {
		return 0, fmt.Errorf("no database connection")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{})
}
