package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsTxnNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"generic", errors.New("boom"), false},
		{"code 20", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"code 263", mongo.CommandError{Code: 263}, true},
		{"other code", mongo.CommandError{Code: 11000, Message: "duplicate key"}, false},
		{"wrapped", fmt.Errorf("join: %w", mongo.CommandError{Code: 20}), true},
		{"message only", errors.New("transaction failed: this is not a replica set member"), true},
		{"session message", errors.New("sessions are not supported by this deployment"), true},
		{"one keyword", errors.New("transaction aborted"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTxnNotSupported(tt.err))
		})
	}
}
