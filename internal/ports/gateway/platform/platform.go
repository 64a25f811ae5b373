// Package port_platform abstracts time and identity so use cases stay
// deterministic under test.
package port_platform

import (
	"time"

	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewUUID() uuid.UUID
}
