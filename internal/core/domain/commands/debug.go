package commands

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
)

const kb = 1024
const debugTemplate = `allocated mem: %d KB
goroutines: %d
heap: %d KB
stack: %d KB
commands: %d
compiled with %s for %s-%s
`

type DebugHandler struct {
	textSender port.TextSender
	registry   port.CommandRegistry
}

func NewDebugHandler(textSender port.TextSender, registry port.CommandRegistry) *DebugHandler {
	return &DebugHandler{textSender: textSender, registry: registry}
}

func (h *DebugHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:          "debug",
		Description:   "Shows runtime statistics.",
		Category:      CategoryOwner,
		DeveloperOnly: true,
		Handler:       h.Respond,
	}
}

func (h *DebugHandler) Respond(ctx context.Context, inv *domain.InvocationContext, _ *domain.Arguments) error {
	l := requestLogger(inv)

	data := []metrics.Sample{
		{Name: "/memory/classes/heap/objects:bytes"},
		{Name: "/memory/classes/heap/stacks:bytes"},
		{Name: "/memory/classes/total:bytes"},
	}
	metrics.Read(data)

	for _, sample := range data {
		l.Debug().Str("name", sample.Name).Msgf("%d", sample.Value.Uint64())
	}

	l.Info().Msg("handling request")

	goos, goarch := runtime.GOOS, runtime.GOARCH
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	_, err := h.textSender.SendMessageReply(ctx, inv.Message,
		fmt.Sprintf(
			debugTemplate,
			data[2].Value.Uint64()/kb,
			runtime.NumGoroutine(),
			data[0].Value.Uint64()/kb,
			data[1].Value.Uint64()/kb,
			len(h.registry.All()),
			runtime.Version(), goos, goarch,
		))

	return err
}
