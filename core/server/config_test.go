package server_test

import (
	"strings"
	"testing"

	"daysync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Replica(t *testing.T) {
	t.Run("Configured", func(t *testing.T) {
		c := server.Config{ReplicaID: " server-a "}
		assert.Equal(t, "server-a", c.Replica())
	})

	t.Run("Generated", func(t *testing.T) {
		c := server.Config{}
		a, b := c.Replica(), c.Replica()
		assert.NotEqual(t, a, b)
		assert.True(t, strings.Contains(a, "-"))
		assert.Len(t, a[strings.LastIndex(a, "-")+1:], 8)
	})
}
