// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

/*
Package mongodb provides the managed connection to the primary document store.

All durable platform data (accounts with their embedded refresh tokens, areas
of interest, community members, volunteer applications) lives in MongoDB.

Core Responsibilities:

  - Lifecycle: Connect, ping, and gracefully disconnect the driver client.
  - Pooling: Opinionated pool sizing so request bursts don't exhaust sockets.
  - Paging: A generic count-then-find helper shared by every list endpoint.

This infrastructure component keeps driver-level tuning out of the feature
packages; stores receive a ready *mongo.Database and never dial themselves.
*/
package mongodb

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Opiniated default settings for the Mongo driver.
const (
	connectTimeout  = 5 * time.Second
	pingTimeout     = 3 * time.Second
	maxPoolSize     = 25
	minPoolSize     = 2
	maxConnIdleTime = 5 * time.Minute
)

// NewClient dials MongoDB and verifies connectivity with a ping.
//
// # Parameters
//   - context: Context for the initial connect and ping.
//   - uri: A mongodb:// connection URI.
//   - logger: Structured logger for connection events.
func NewClient(context stdctx.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize).
		SetMaxConnIdleTime(maxConnIdleTime)

	connectCtx, cancel := stdctx.WithTimeout(context, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect failed: %w", err)
	}

	// Validate connectivity immediately at startup.
	if err := Ping(context, client); err != nil {
		_ = client.Disconnect(context)
		return nil, err
	}

	logger.Info("mongodb client connected",
		slog.Int("max_pool_size", maxPoolSize),
	)

	return client, nil
}

// Ping verifies that the Mongo client can reach the primary node.
func Ping(context stdctx.Context, client *mongo.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}

	return nil
}
