package domain

import (
	"sync"

	"github.com/gofrs/uuid/v5"
)

// InvocationContext carries one dispatch of one message. It is never shared between dispatches.
type InvocationContext struct {
	ID      uuid.UUID
	Message *Message
	Prefix  string
	// Label is the name or alias the command was invoked with.
	Label   string
	Command *CommandDefinition
	Args    []string
	RawArgs string

	mu       sync.Mutex
	metadata map[string]any
}

func NewInvocationContext(message *Message, prefix string) *InvocationContext {
	return &InvocationContext{
		ID:      uuid.Must(uuid.NewV4()),
		Message: message,
		Prefix:  prefix,
	}
}

// Set attaches adapter metadata to the invocation.
func (c *InvocationContext) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.metadata == nil {
		c.metadata = make(map[string]any)
	}
	c.metadata[key] = value
}

func (c *InvocationContext) Value(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.metadata[key]
	return v, ok
}

// Get is Value without the presence flag.
func (c *InvocationContext) Get(key string) any {
	v, _ := c.Value(key)
	return v
}

func (c *InvocationContext) Author() Author {
	return c.Message.Author
}

func (c *InvocationContext) Origin() Origin {
	return c.Message.Origin
}
