package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"desk-portfolio/internal/archive"
	"desk-portfolio/internal/download"
	"desk-portfolio/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

// Placement is a model ready to be uploaded: the manifest entry plus its resolved local path.
type Placement struct {
	Name        string
	Path        string
	Position    mgl32.Vec3
	Scale       mgl32.Vec3
	Rotation    mgl32.Vec3
	Interactive bool
}

// Transform returns the model's local-to-world matrix (translate, rotate XYZ, scale).
func (p Placement) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2]).
		Mul4(mgl32.HomogRotate3DX(p.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(p.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(p.Rotation[2])).
		Mul4(mgl32.Scale3D(p.Scale[0], p.Scale[1], p.Scale[2]))
}

// Result is the outcome of resolving one model.
type Result struct {
	Placement Placement
	Source    string
	Err       error
}

// FetchFunc downloads a remote asset into dir and returns the local path.
type FetchFunc func(ctx context.Context, url, dir string) (string, error)

// Loader resolves model files concurrently and hands them to the render thread.
// Workers only touch the filesystem or network; GPU upload and scene mutation happen
// in Drain, on the goroutine that owns the scene.
type Loader struct {
	base     string
	cacheDir string
	counter  *Counter
	log      *logger.Logger
	results  chan Result
	fetch    FetchFunc

	unpack    sync.Once
	bundleDir string
	bundleErr error
}

// NewLoader returns a loader rooted at base: a directory, an http(s) URL, or a .zip bundle
// (local or remote) that is extracted under cacheDir on first use.
func NewLoader(base, cacheDir string, counter *Counter, log *logger.Logger) *Loader {
	return &Loader{
		base:     base,
		cacheDir: cacheDir,
		counter:  counter,
		log:      log,
		fetch:    download.Fetch,
	}
}

// Start launches one worker per model. It must be called once.
func (l *Loader) Start(ctx context.Context, models []Model) {
	l.results = make(chan Result, len(models))
	if len(models) == 0 {
		l.counter.fire()
		return
	}
	for _, m := range models {
		go func(m Model) {
			var res Result
			if err := copier.Copy(&res.Placement, &m); err != nil {
				res.Err = fmt.Errorf("assets: %s: %w", m.Name, err)
				l.results <- res
				return
			}
			res.Source = l.Source(m.File)
			res.Placement.Path, res.Err = l.Resolve(ctx, m.File)
			l.results <- res
		}(m)
	}
}

// IsBundle reports whether base names a zip archive rather than a directory or URL prefix.
func IsBundle(base string) bool {
	return strings.EqualFold(filepath.Ext(base), ".zip")
}

// Source returns where file is loaded from: a URL for a remote base, an archive entry
// (bundle!file) for a bundle, else a local path.
func (l *Loader) Source(file string) string {
	if download.IsRemote(file) {
		return file
	}
	if IsBundle(l.base) {
		return l.base + "!" + strings.TrimPrefix(file, "/")
	}
	if download.IsRemote(l.base) {
		return strings.TrimSuffix(l.base, "/") + "/" + strings.TrimPrefix(file, "/")
	}
	return filepath.Join(l.base, filepath.FromSlash(file))
}

// Resolve returns a local path for file, fetching it into the cache when the source is remote.
func (l *Loader) Resolve(ctx context.Context, file string) (string, error) {
	src := l.Source(file)
	if download.IsRemote(src) {
		return l.fetch(ctx, src, l.cacheDir)
	}
	if IsBundle(l.base) {
		dir, err := l.bundle(ctx)
		if err != nil {
			return "", err
		}
		src = filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(file, "/")))
	}
	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	return src, nil
}

// bundle extracts the base archive once, downloading it first when it is remote.
// Every caller gets the same directory or error.
func (l *Loader) bundle(ctx context.Context) (string, error) {
	l.unpack.Do(func() {
		l.bundleDir, l.bundleErr = Unpack(ctx, l.base, l.cacheDir, l.fetch)
	})
	return l.bundleDir, l.bundleErr
}

// Unpack extracts the zip at archivePath (a path or URL) into a directory under cacheDir named
// after the archive, and returns that directory. An earlier complete extraction is reused.
func Unpack(ctx context.Context, archivePath, cacheDir string, fetch FetchFunc) (string, error) {
	name := strings.TrimSuffix(filepath.Base(filepath.FromSlash(archivePath)), filepath.Ext(archivePath))
	dest := filepath.Join(cacheDir, name)
	if archive.Unzipped(dest) {
		return dest, nil
	}
	local := archivePath
	if download.IsRemote(archivePath) {
		var err error
		if local, err = fetch(ctx, archivePath, cacheDir); err != nil {
			return "", err
		}
	}
	if _, err := archive.Unzip(local, dest); err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	return dest, nil
}

// Drain handles every result that has arrived so far without blocking. upload adds the
// model to the scene; a resolve or upload failure is logged with the asset path and the
// attempt still counts. Returns the number of results handled.
func (l *Loader) Drain(upload func(Placement) error) int {
	n := 0
	for {
		select {
		case res := <-l.results:
			n++
			err := res.Err
			if err == nil {
				err = upload(res.Placement)
			}
			if err != nil {
				l.log.Logf("asset load failed: %s: %v", res.Source, err)
			}
			l.counter.Done(err)
		default:
			return n
		}
	}
}
