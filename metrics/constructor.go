package metrics

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

var (
	ctorMu sync.Mutex
	ctors  = make(map[string]ClientCtor)
)

// A ClientCtor creates a metrics client using the provided config.
type ClientCtor func(config *ClientConfig) (Client, error)

// RegisterClientCtor registers a ClientCtor for the specified client type.
func RegisterClientCtor(clientType string, ctr ClientCtor) {
	ctorMu.Lock()
	defer ctorMu.Unlock()

	if _, exists := ctors[clientType]; exists {
		panic(fmt.Sprintf("metrics.ClientCtor already registered for clientType '%s'", clientType))
	}

	ctors[clientType] = ctr
}

// CreateClient creates a Client using the ClientCtor of the requested type.
// An empty type yields a no-op client, so metrics export can be left
// unconfigured.
func CreateClient(clientType string, opts ...ClientOption) (Client, error) {
	if clientType == "" {
		return NewNoopClient(), nil
	}

	ctorMu.Lock()
	ctor, ok := ctors[clientType]
	ctorMu.Unlock()
	if !ok {
		return nil, errors.Errorf("ClientCtor with type %s not found", clientType)
	}

	config := &ClientConfig{SampleRate: 1}
	for _, o := range opts {
		o(config)
	}

	return ctor(config)
}
