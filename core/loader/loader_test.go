package loader

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	day := &stubFeature{name: "day", enabled: true}
	off := &stubFeature{name: "off"}
	catalog := &stubFeature{name: "catalog", enabled: true}

	mgr := NewManager()
	mgr.Register(day)
	mgr.Register(off)
	mgr.Register(catalog)

	names, err := mgr.LoadAll(fiber.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"day", "catalog"}, names)
	assert.False(t, off.loaded)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	mgr := NewManager()
	mgr.Register(&stubFeature{name: "day", enabled: true})
	mgr.Register(&stubFeature{name: "broken", enabled: true, err: assert.AnError})
	last := &stubFeature{name: "catalog", enabled: true}
	mgr.Register(last)

	names, err := mgr.LoadAll(fiber.New())
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "broken")
	assert.Equal(t, []string{"day"}, names)
	assert.False(t, last.loaded)
}
