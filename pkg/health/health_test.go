package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllUp(t *testing.T) {
	c := NewChecker()
	c.Register("a", func(context.Context) error { return nil })
	c.Register("b", func(context.Context) error { return nil })

	report := c.Run(context.Background())
	assert.Equal(t, StatusUp, report.Status)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "a", report.Results[0].Name)
	assert.Equal(t, "b", report.Results[1].Name)
}

func TestRunReportsFailures(t *testing.T) {
	c := NewChecker()
	c.Register("slow", func(context.Context) error {
		time.Sleep(5 * time.Millisecond)
		return nil
	})
	c.Register("broken", func(context.Context) error { return errors.New("connection refused") })

	report := c.Run(context.Background())
	assert.Equal(t, StatusDown, report.Status)
	assert.Equal(t, StatusUp, report.Results[0].Status)
	assert.Equal(t, StatusDown, report.Results[1].Status)
	assert.Equal(t, "connection refused", report.Results[1].Message)
}

func TestRegisterReplaceKeepsOrder(t *testing.T) {
	c := NewChecker()
	c.Register("first", func(context.Context) error { return errors.New("old") })
	c.Register("second", func(context.Context) error { return nil })
	c.Register("first", func(context.Context) error { return nil })

	report := c.Run(context.Background())
	assert.Equal(t, StatusUp, report.Status)
	assert.Equal(t, "first", report.Results[0].Name)
}

func TestRunEmpty(t *testing.T) {
	report := NewChecker().Run(context.Background())
	assert.Equal(t, StatusUp, report.Status)
	assert.Empty(t, report.Results)
}
