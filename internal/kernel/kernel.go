package kernel

import (
	"fmt"
	"slices"
	"sync"

	"github.com/agbru/parbench/internal/datagen"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/parallel"
)

// Mode selects how a workload is executed.
type Mode string

const (
	Sequential Mode = "sequential"
	Static     Mode = "static"
	Dynamic    Mode = "dynamic"
)

// Options carries the per-run execution parameters. Threads and BlockSize
// are ignored in Sequential mode.
type Options struct {
	Threads   int
	BlockSize int
	Logger    logging.Logger
}

func (o Options) executor() (*parallel.Executor, error) {
	logger := o.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return parallel.NewExecutor(o.Threads, parallel.WithLogger(logger))
}

// Fingerprint is the comparable form of a kernel output. Exact outputs must
// match the baseline bit for bit; the others within a relative tolerance.
type Fingerprint struct {
	Values []float64
	Exact  bool
}

// Result is the output of one workload run.
type Result interface {
	// Summary is the one-line human readable value shown in reports.
	Summary() string
	Fingerprint() Fingerprint
}

// Workload is a kernel bound to a generated input of a given size.
type Workload interface {
	Run(mode Mode, opts Options) (Result, error)
}

// Kernel describes one benchmarked computation.
type Kernel interface {
	Name() string
	Description() string
	// Modes lists the parallel modes the kernel supports.
	Modes() []Mode
	DefaultSizes() []int
	// Prepare generates the input for size with gen.
	Prepare(size int, gen *datagen.Generator) (Workload, error)
}

// Registry maps kernel names to implementations.
type Registry struct {
	mu      sync.RWMutex
	kernels map[string]Kernel
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kernels: make(map[string]Kernel)}
}

// NewDefaultRegistry returns a registry holding the four built-in kernels.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(StatsKernel{})
	r.Register(MatVecKernel{})
	r.Register(PrimesKernel{})
	r.Register(BlurKernel{})
	return r
}

// Register adds k, replacing any kernel with the same name.
func (r *Registry) Register(k Kernel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kernels[k.Name()] = k
}

// Get returns the kernel registered under name.
func (r *Registry) Get(name string) (Kernel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kernels[name]
	if !ok {
		return nil, fmt.Errorf("unknown kernel: %q", name)
	}
	return k, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Select resolves a list of kernel names. "all" selects every registered
// kernel in sorted order.
func (r *Registry) Select(names []string) ([]Kernel, error) {
	if len(names) == 1 && names[0] == "all" {
		names = r.List()
	}
	out := make([]Kernel, 0, len(names))
	for _, name := range names {
		k, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func unsupported(kernel string, mode Mode) error {
	return fmt.Errorf("kernel %s does not support mode %s", kernel, mode)
}

// StatsKernel computes mean and standard deviation of a vector in [0, 100).
type StatsKernel struct{}

func (StatsKernel) Name() string        { return "stats" }
func (StatsKernel) Description() string { return "mean and standard deviation" }
func (StatsKernel) Modes() []Mode       { return []Mode{Static} }
func (StatsKernel) DefaultSizes() []int { return []int{1_000_000, 5_000_000, 10_000_000} }

func (StatsKernel) Prepare(size int, gen *datagen.Generator) (Workload, error) {
	return statsWorkload(gen.Vector(size, 100)), nil
}

type statsWorkload []float64

func (w statsWorkload) Run(mode Mode, opts Options) (Result, error) {
	switch mode {
	case Sequential:
		return StatsSequential(w), nil
	case Static:
		e, err := opts.executor()
		if err != nil {
			return nil, err
		}
		return StatsParallel(e, w)
	}
	return nil, unsupported("stats", mode)
}

// MatVecKernel multiplies an n×n matrix by a vector, both in [0, 1).
type MatVecKernel struct{}

func (MatVecKernel) Name() string        { return "matvec" }
func (MatVecKernel) Description() string { return "matrix-vector product" }
func (MatVecKernel) Modes() []Mode       { return []Mode{Static} }
func (MatVecKernel) DefaultSizes() []int { return []int{1000, 2000, 3000} }

func (MatVecKernel) Prepare(size int, gen *datagen.Generator) (Workload, error) {
	m, err := NewMatrix(size, size, gen.Matrix(size, size))
	if err != nil {
		return nil, err
	}
	return matvecWorkload{m: m, v: gen.Vector(size, 1)}, nil
}

type matvecWorkload struct {
	m Matrix
	v []float64
}

func (w matvecWorkload) Run(mode Mode, opts Options) (Result, error) {
	var (
		out []float64
		err error
	)
	switch mode {
	case Sequential:
		out, err = MulVecSequential(w.m, w.v)
	case Static:
		e, eerr := opts.executor()
		if eerr != nil {
			return nil, eerr
		}
		out, err = MulVecParallel(e, w.m, w.v)
	default:
		return nil, unsupported("matvec", mode)
	}
	if err != nil {
		return nil, err
	}
	return Vector(out), nil
}

// PrimesKernel counts primes in [1, n].
type PrimesKernel struct{}

func (PrimesKernel) Name() string        { return "primes" }
func (PrimesKernel) Description() string { return "prime counting by trial division" }
func (PrimesKernel) Modes() []Mode       { return []Mode{Static, Dynamic} }
func (PrimesKernel) DefaultSizes() []int { return []int{100_000, 500_000, 1_000_000} }

func (PrimesKernel) Prepare(size int, _ *datagen.Generator) (Workload, error) {
	return primesWorkload(size), nil
}

type primesWorkload int

func (w primesWorkload) Run(mode Mode, opts Options) (Result, error) {
	if mode == Sequential {
		n, err := CountPrimesSequential(int(w))
		if err != nil {
			return nil, err
		}
		return PrimeCount(n), nil
	}
	e, err := opts.executor()
	if err != nil {
		return nil, err
	}
	var n int
	switch mode {
	case Static:
		n, err = CountPrimesStatic(e, int(w))
	case Dynamic:
		block := opts.BlockSize
		if block == 0 {
			block = DefaultBlockSize
		}
		n, err = CountPrimesDynamic(e, int(w), block)
	default:
		return nil, unsupported("primes", mode)
	}
	if err != nil {
		return nil, err
	}
	return PrimeCount(n), nil
}

// BlurKernel applies a 3×3 box blur to a size×size image.
type BlurKernel struct{}

func (BlurKernel) Name() string        { return "blur" }
func (BlurKernel) Description() string { return "3x3 box blur" }
func (BlurKernel) Modes() []Mode       { return []Mode{Static} }
func (BlurKernel) DefaultSizes() []int { return []int{1000, 2000, 3000} }

func (BlurKernel) Prepare(size int, gen *datagen.Generator) (Workload, error) {
	im, err := NewImage(size, size, gen.Pixels(size*size))
	if err != nil {
		return nil, err
	}
	return blurWorkload{im}, nil
}

type blurWorkload struct{ im Image }

func (w blurWorkload) Run(mode Mode, opts Options) (Result, error) {
	switch mode {
	case Sequential:
		return BlurSequential(w.im), nil
	case Static:
		e, err := opts.executor()
		if err != nil {
			return nil, err
		}
		return BlurParallel(e, w.im)
	}
	return nil, unsupported("blur", mode)
}
