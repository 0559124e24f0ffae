package tenant

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// DefaultCollection is the conventional name of the tenant collection.
const DefaultCollection = "tenants"

// MongoLookup implements Lookup against a MongoDB collection, for service
// instances that own the tenant store instead of calling a remote tenant
// service.
type MongoLookup struct {
	col *mongo.Collection
}

// tenantDoc is the persisted shape of a tenant record.
type tenantDoc struct {
	ID         string              `bson:"_id"`
	Name       string              `bson:"name"`
	Properties map[string][]string `bson:"properties,omitempty"`
}

// NewMongoLookup creates a lookup over db's tenant collection.
func NewMongoLookup(db *mongo.Database, collection string) *MongoLookup {
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoLookup{col: db.Collection(collection)}
}

// ByID fetches the tenant document, mapping mongo.ErrNoDocuments to
// ErrTenantNotFound so the Directory can classify it.
func (l *MongoLookup) ByID(ctx context.Context, id string) (Tenant, error) {
	var doc tenantDoc
	err := l.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Tenant{}, ErrTenantNotFound
		}
		return Tenant{}, err
	}
	return Tenant{
		ID:         doc.ID,
		Name:       doc.Name,
		Properties: doc.Properties,
	}, nil
}
