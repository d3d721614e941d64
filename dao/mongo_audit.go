package dao

import (
	"context"
	"fmt"
	"github.com/adamnoobdev/lyxdeal-973d566a-sub000/tables"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"time"
)

type MongoAudit struct {
	collection *mongo.Collection
}

func NewMongoAudit(client *mongo.Client, dbName string) *MongoAudit {
	return &MongoAudit{collection: client.Database(dbName).Collection(tables.CollectionNameAuditLog)}
}

func (m *MongoAudit) WriteAudit(ctx context.Context, entry tables.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if _, err := m.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("InsertOne err: %s", err.Error())
	}
	return nil
}

func (m *MongoAudit) FindAudit(ctx context.Context, code string, limit int64) ([]tables.AuditLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cur, err := m.collection.Find(ctx, bson.M{"code": code}, opts)
	if err != nil {
		return nil, fmt.Errorf("Find err: %s", err.Error())
	}
	defer cur.Close(ctx)
	list := make([]tables.AuditLog, 0)
	if err = cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("cur.All err: %s", err.Error())
	}
	return list, nil
}
