// Package mongostore persists todos in MongoDB.
package mongostore

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// Timeout operations after N seconds
	connectTimeout           = 5
	connectionStringTemplate = "mongodb://%s:%s@%s"
)

// ConnOptions locates the cluster. URI wins over the username/password/endpoint triple.
type ConnOptions struct {
	URI      string
	Username string
	Password string
	Endpoint string
}

// ConnectionURI returns the URI the client dials.
func (o ConnOptions) ConnectionURI() string {
	if o.URI != "" {
		return o.URI
	}
	return fmt.Sprintf(connectionStringTemplate, o.Username, o.Password, o.Endpoint)
}

// Connect dials the cluster and pings it to verify the connection string.
func Connect(ctx context.Context, o ConnOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(o.ConnectionURI()))
	if err != nil {
		log.Errorf("Failed to connect to cluster: %v", err)
		return nil, err
	}

	// Force a connection to verify our connection string
	if err := client.Ping(ctx, nil); err != nil {
		log.Errorf("Failed to ping cluster: %v", err)
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("Connected to MongoDB!")
	return client, nil
}
