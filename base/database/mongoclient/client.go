package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/marketplace/base/log"
)

const (
	mgSocketTimeout  = 60 * time.Second
	mgConnectTimeout = 10 * time.Second
)

// Options mirrors the store.mongo config section.
type Options struct {
	URI            string
	AuthDBName     string
	DBName         string
	EnableSSL      bool
	PoolMultiplier float64
}

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// MustConnect returns a connected client or panics.
func MustConnect(opts Options) *Client {
	cli, err := Connect(opts)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": opts.DBName, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// Connect dials the deployment in opts.URI. Listing writes run in
// multi-document transactions, so the client always uses majority read and
// write concerns and the deployment must be a replica set.
func Connect(opts Options) (*Client, error) {
	connSetting, err := connstring.Parse(opts.URI)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"dbName": opts.DBName,
			"err":    err,
		}).Error("fail to parse connstring")
		return nil, err
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetSocketTimeout(mgSocketTimeout).
		SetConnectTimeout(mgConnectTimeout).
		SetRetryWrites(true).
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.New(writeconcern.WMajority()))

	// If AuthSource is not set in connstring, set it to AuthDBName
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              opts.AuthDBName,
		})
	}

	if poolSize := poolSizePerHost(opts.PoolMultiplier, len(connSetting.Hosts)); poolSize > 0 {
		clientOpts.SetMinPoolSize(uint64(poolSize / 4))
		clientOpts.SetMaxPoolSize(uint64(poolSize))
		log.Log().WithField("poolSize", poolSize).Info("mongo driver pool size")
	}

	if opts.EnableSSL {
		clientOpts.SetTLSConfig(&tls.Config{})
	}

	ctx, cancel := context.WithTimeout(context.Background(), mgConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"mongoHosts": connSetting.Hosts,
			"dbName":     opts.DBName,
			"err":        err,
		}).Error("fail to connect mongo db")
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Log().WithFields(log.Fields{
			"mongoHosts": connSetting.Hosts,
			"dbName":     opts.DBName,
			"err":        err,
		}).Error("fail to ping mongo primary")
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Log().WithFields(log.Fields{
		"mongoHosts": connSetting.Hosts,
		"db":         opts.DBName,
	}).Info("mongo connected")
	return &Client{
		Client: client,
		DbName: opts.DBName,
	}, nil
}

// poolSizePerHost spreads NumCPU*multiplier connections over the hosts,
// each host keeps its own pool.
func poolSizePerHost(multiplier float64, hosts int) int {
	if multiplier <= 0 || hosts == 0 {
		return 0
	}
	total := int(float64(runtime.NumCPU()) * multiplier)
	return (total + hosts - 1) / hosts
}
