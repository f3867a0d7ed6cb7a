package assets

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// MaxTextureSize bounds decoded textures. Larger images are scaled down.
const MaxTextureSize = 4096

// Prepared is the CPU side of a load: the node table and every texture
// decoded. Nothing in it touches the GPU.
type Prepared struct {
	Manifest Manifest
	Nodes    []Node
	Images   map[TextureRole]*image.NRGBA
}

// Prepare reads the container and decodes every texture concurrently. It
// returns either everything or the first LoadError; progress is called with
// the number of finished steps out of total.
func Prepare(ctx context.Context, m Manifest, progress func(done, total int), logger hclog.Logger) (*Prepared, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	total := 1 + len(m.Textures)
	var finished atomic.Int32
	step := func() {
		n := finished.Add(1)
		if progress != nil {
			progress(int(n), total)
		}
	}

	out := &Prepared{Manifest: m, Images: make(map[TextureRole]*image.NRGBA, len(m.Textures))}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		nodes, err := ReadNodes(m.Model)
		if err != nil {
			return err
		}
		out.Nodes = nodes
		logger.Debug("node table read", "path", m.Model, "nodes", len(nodes), "meshes", MeshCount(nodes))
		step()
		return nil
	})
	for _, role := range TextureRoles {
		path := m.Textures[role]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := DecodeTexture(path, MaxTextureSize)
			if err != nil {
				return &LoadError{Stage: StageTexture, Path: path, Err: err}
			}
			mu.Lock()
			out.Images[role] = img
			mu.Unlock()
			logger.Trace("texture decoded", "role", role, "size", img.Bounds().Size())
			step()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Job runs Prepare in the background so the render loop can keep drawing
// the loading screen.
type Job struct {
	cancel   context.CancelFunc
	done     chan struct{}
	percent  atomic.Int32
	result   *Prepared
	err      error
	cancelMu sync.Once
}

func StartJob(ctx context.Context, m Manifest, logger hclog.Logger) *Job {
	ctx, cancel := context.WithCancel(ctx)
	j := &Job{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(j.done)
		j.result, j.err = Prepare(ctx, m, func(done, total int) {
			j.percent.Store(int32(done * 100 / total))
		}, logger)
	}()
	return j
}

// Progress is the share of preparation finished, 0 to 100.
func (j *Job) Progress() int {
	return int(j.percent.Load())
}

func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result blocks until the job finishes.
func (j *Job) Result() (*Prepared, error) {
	<-j.done
	return j.result, j.err
}

// Cancel stops a running job and waits for its workers to exit.
func (j *Job) Cancel() {
	j.cancelMu.Do(j.cancel)
	<-j.done
}

// Finish builds the room from a prepared load and uploads it. The returned
// room is either complete or nil.
func Finish(p *Prepared, shader rl.Shader, logger hclog.Logger) (*Room, error) {
	room := BuildRoom(p.Nodes, logger)
	if err := room.Upload(p, shader, logger); err != nil {
		room.Dispose()
		return nil, err
	}
	return room, nil
}

// Load runs a whole load on the calling goroutine, which must own the GL
// context.
func Load(ctx context.Context, m Manifest, shader rl.Shader, logger hclog.Logger) (*Room, error) {
	p, err := Prepare(ctx, m, nil, logger)
	if err != nil {
		return nil, err
	}
	return Finish(p, shader, logger)
}
