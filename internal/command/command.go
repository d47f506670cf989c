package command

import "context"

// Client consumes the bot's update stream until the context is cancelled.
type Client interface {
	HandleUpdates(ctx context.Context) error
}
