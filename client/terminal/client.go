package terminal

import (
	"fmt"

	"github.com/sporadisk/worklog/format"
)

// Client renders API read models for the terminal.
type Client struct {
	TimeFormat string
}

func (c *Client) Init() error {
	if c.TimeFormat == "" {
		c.TimeFormat = format.TimeHM
	}

	err := format.ValidateTimeFormat(c.TimeFormat)
	if err != nil {
		return fmt.Errorf("ValidateTimeFormat: %w", err)
	}
	return nil
}
