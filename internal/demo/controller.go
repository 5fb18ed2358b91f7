package demo

import (
	"log/slog"

	"github.com/kyu49/euonymus/pkg/events"
)

// EventLoad is dispatched once the view is composed.
const EventLoad = "ON_LOAD"

// Controller forwards view intents to the model.
type Controller struct {
	events.Dispatcher

	model  *Model
	logger *slog.Logger
}

// NewController creates a controller for model.
func NewController(model *Model, logger *slog.Logger) *Controller {
	return &Controller{model: model, logger: logger}
}

// Submit submits the current query and clears it.
func (c *Controller) Submit() error {
	value := c.model.Query.Peek()
	c.logger.Debug("submit", "query", value)
	if err := c.model.Submit(value); err != nil {
		return err
	}
	return c.model.Query.Set("")
}

// Toggle flips a todo.
func (c *Controller) Toggle(id string) error {
	c.logger.Debug("toggle", "todo", id)
	return c.model.Toggle(id)
}

// OnLoad seeds the initial todos and announces the load.
func (c *Controller) OnLoad(seed ...string) error {
	for _, title := range seed {
		if _, err := c.model.Add(title); err != nil {
			return err
		}
	}
	return c.Dispatch(EventLoad)
}
