package database

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrTxnNotSupported is returned by RunInTransaction when the deployment
// (typically a standalone mongod) cannot run multi-document transactions.
var ErrTxnNotSupported = errors.New("transactions not supported")

// Transactor runs fn so that every write it performs commits together.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTransactor runs fn inside a MongoDB session transaction.
type MongoTransactor struct {
	client *mongo.Client
	logger *zap.Logger
}

func NewMongoTransactor(client *mongo.Client, logger *zap.Logger) *MongoTransactor {
	return &MongoTransactor{client: client, logger: logger}
}

func (t *MongoTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsTxnNotSupported(err) {
		t.logger.Debug("mongodb transactions unavailable", zap.Error(err))
		return ErrTxnNotSupported
	}
	return err
}

// IsTxnNotSupported recognises the errors a standalone server returns when a
// transaction is attempted.
func IsTxnNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	return strings.Contains(msg, "session") && strings.Contains(msg, "not supported")
}
