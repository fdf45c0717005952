package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/escrowapi/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
	connectTimeout  = 10 * time.Second
)

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// Config holds the connection settings read from the mongo config section
type Config struct {
	URI                string
	AuthDBName         string
	DBName             string
	EnableSSL          bool
	SetSafe            bool
	PoolSizeMultiplier float64
}

// MustConnectMongoClient returns MongoDB connection client if connected successfully, or it will trigger panic
func MustConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) *Client {
	cli, err := ConnectMongoClient(Config{
		URI:                uri,
		AuthDBName:         authDBName,
		DBName:             dbName,
		EnableSSL:          ssl,
		SetSafe:            setSafe,
		PoolSizeMultiplier: poolSizeMultiplier,
	})
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient returns mongo driver client. Transactions need a replica
// set, a standalone server only serves reads and single document writes.
func ConnectMongoClient(cfg Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	logger := log.Log().WithField("dbName", cfg.DBName)

	connSetting, err := connstring.Parse(cfg.URI)
	if err != nil {
		logger.WithField("err", err).Error("fail to parse connstring")
		return nil, err
	}
	logger = logger.WithField("mongoHosts", connSetting.Hosts)

	clientOpts := options.Client().ApplyURI(cfg.URI).SetSocketTimeout(mgSocketTimeout)

	// If AuthSource is not set in connstring, set it to authDBName
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              cfg.AuthDBName,
		})
	}

	if cfg.PoolSizeMultiplier > 0 {
		// each host keeps its own pool, so split the total across hosts
		poolSize := int(float64(runtime.NumCPU()) * cfg.PoolSizeMultiplier)
		poolSize = (poolSize + len(connSetting.Hosts) - 1) / len(connSetting.Hosts)
		clientOpts.SetMinPoolSize(uint64(poolSize / 4))
		clientOpts.SetMaxPoolSize(uint64(poolSize))
		logger.WithField("poolSize", poolSize).Info("mongo driver pool size")
	}

	if cfg.EnableSSL {
		clientOpts.SetTLSConfig(&tls.Config{})
	}

	if cfg.SetSafe {
		// wait for a majority of replica set members to acknowledge writes
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}
	clientOpts.SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.WithField("err", err).Error("fail to connect mongo db")
		return nil, err
	}

	// Test if dbName is valid
	if _, err := client.Database(cfg.DBName).ListCollectionNames(ctx, bson.D{}); err != nil {
		logger.WithField("err", err).Error("fail to test mongo db")
		return nil, err
	}

	logger.Info("mongo connected")
	return &Client{
		Client: client,
		DbName: cfg.DBName,
	}, nil
}
