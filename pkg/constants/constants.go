package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	PoolKey    ContextKey = "pool"
	TxKey      ContextKey = "tx"
	LoggerKey  ContextKey = "logger"
	OwnerIDKey ContextKey = "ownerID"
)

var Validate = validator.New()
