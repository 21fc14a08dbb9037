package main

import (
	"testing"

	"glscene/internal/gpu"
	"glscene/internal/gpu/gputest"
	"glscene/internal/texture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type disposeCall struct {
	alive []bool
}

func (d *disposeCall) Dispose(alive gpu.Liveness) {
	d.alive = append(d.alive, alive())
}

type destroyFunc func(gpu.Liveness)

func (f destroyFunc) Dispose(alive gpu.Liveness) { f(alive) }

func TestDropHandlesReportsLostContext(t *testing.T) {
	d := &disposeCall{}
	cleanup := dropHandles(d)
	assert.Empty(t, d.alive, "nothing runs until the cleanup is called")

	cleanup()
	assert.Equal(t, []bool{false}, d.alive)
}

func TestDropHandlesNeverCallsDriver(t *testing.T) {
	dev := gputest.New()
	sky := texture.NewSkybox(dev)
	faces := make([][]byte, 6)
	for i := range faces {
		faces[i] = make([]byte, 4)
	}
	require.NoError(t, sky.SetCubeMap(1, 1, faces, 1, 1, faces))

	dropHandles(destroyFunc(sky.Destroy))()
	assert.Empty(t, dev.DeletedTextures())
	assert.False(t, sky.Valid())
}
