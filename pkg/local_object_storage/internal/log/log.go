package storagelog

import (
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	"go.uber.org/zap"
)

// headMsg is a distinctive part of all messages.
const headMsg = "local object storage operation"

// Write writes message about storage operation to logger.
func Write(logger *zap.Logger, fields ...zap.Field) {
	logger.Debug(headMsg, fields...)
}

// ObjectField returns logger's field for object ID.
func ObjectField(id oid.ID) zap.Field {
	return zap.Stringer("object", id)
}

// ContainerField returns logger's field for container ID.
func ContainerField(id string) zap.Field {
	return zap.String("container", id)
}

// KeysField returns logger's field for dkey/akey pair.
func KeysField(dkey, akey string) zap.Field {
	return zap.Strings("keys", []string{dkey, akey})
}

// OpField returns logger's field for operation type.
func OpField(op string) zap.Field {
	return zap.String("op", op)
}

// StorageTypeField returns logger's field for storage type.
func StorageTypeField(typ string) zap.Field {
	return zap.String("type", typ)
}
