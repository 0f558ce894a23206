package integrity_test

import (
	"testing"

	"daysync/core/storage"
	"daysync/core/storage/mocks"
	"daysync/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	f := newFeature(t, mocks.NewBucket())

	assert.Equal(t, "integrity", f.Name())
	assert.True(t, f.IsEnabled())
	assert.NoError(t, f.Load(fiber.New()))
}

func TestLoader_WithoutReplicas(t *testing.T) {
	f := integrity.NewFeature(nil, nil, storage.Config{}, syncCfg, nil, nil, zap.NewNop())
	assert.False(t, f.IsEnabled())
}
