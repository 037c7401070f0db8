package gc

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/shadowgc/gc/internal/slotpool"
)

const defaultBlockCapacity = 256

// Config configures a Collector. The zero value is valid: New() is
// equivalent to NewWithConfig(Config{}).
type Config struct {
	// BlockCapacity is the slot count of each handle block. It must be
	// settable down to very small values (1-4) so growth/realloc paths
	// can be exercised in tests; non-positive values fall back to
	// defaultBlockCapacity.
	BlockCapacity int

	// CollectThreshold is the number of Alloc calls permitted before the
	// collector forces a mark-sweep pass; ToLocal allocates only a slot and
	// does not count towards it. "Collect before
	// every allocation" must remain a legal choice; that is the default
	// (and the value used for any non-positive setting).
	CollectThreshold int

	// Logger receives verbose instrumentation: one entry per allocation,
	// mark/sweep pass, and scope enter/exit. A nil Logger (the default)
	// disables this instrumentation entirely.
	Logger *zap.Logger
}

// Stats summarises a Collector's lifetime activity.
type Stats struct {
	Allocs      int
	Collections int
	Live        int
	Blocks      int
}

// Collector owns a heap of managed objects and the handle-block pool that
// roots them. A Collector, and everything derived from it, belongs to
// exactly one goroutine: there is no internal synchronization.
type Collector struct {
	pool    *slotpool.Pool
	allHead *header
	scopes  []*Scope

	nextScopeID uint64

	cfg         Config
	allocsSince int
	collections int
	liveCount   int
	totalAllocs int
}

// New constructs a Collector with an empty pool and default configuration.
func New() *Collector {
	return NewWithConfig(Config{})
}

// NewWithConfig constructs a Collector with the given configuration.
func NewWithConfig(cfg Config) *Collector {
	if cfg.BlockCapacity <= 0 {
		cfg.BlockCapacity = defaultBlockCapacity
	}
	if cfg.CollectThreshold <= 0 {
		cfg.CollectThreshold = 1
	}
	return &Collector{
		pool: slotpool.New(cfg.BlockCapacity),
		cfg:  cfg,
	}
}

// Verbose sets (or clears, passing nil) the logger used for verbose
// instrumentation after construction.
func (c *Collector) Verbose(logger *zap.Logger) {
	c.cfg.Logger = logger
}

// Run enters the outermost scope, runs body with it, and exits the scope
// whether body returns an error or not.
func (c *Collector) Run(body func(root *Scope) error) error {
	root := c.enterScope(nil)
	err := body(root)
	if exitErr := c.exitScope(root); exitErr != nil {
		return exitErr
	}
	return err
}

// Stats reports the collector's current counters.
func (c *Collector) Stats() Stats {
	return Stats{
		Allocs:      c.totalAllocs,
		Collections: c.collections,
		Live:        c.liveCount,
		Blocks:      c.pool.BlockCount(),
	}
}

// CollectAll forces a mark-sweep pass immediately, regardless of the
// configured threshold.
func (c *Collector) CollectAll() {
	c.collectAll()
}

func (c *Collector) maybeCollect() {
	if c.allocsSince+1 < c.cfg.CollectThreshold {
		c.allocsSince++
		return
	}
	c.allocsSince = 0
	c.collectAll()
}

func (c *Collector) pushSlot(ptr unsafe.Pointer) (idx int, err error) {
	defer func() {
		if r := recover(); r != nil {
			idx, err = 0, wrapOOM(r)
		}
	}()
	return c.pool.PushSlot(ptr), nil
}

// collectAll runs one mark-sweep pass: every header's mark bit is cleared,
// every live slot in the pool is marked (and its trace routine recursively
// marks whatever it reaches), then the all-allocations chain is swept,
// destroying and unlinking anything left unmarked. Traversal order within
// mark and sweep is unspecified; each live object is marked exactly once
// per pass and each unreachable object is destroyed exactly once.
func (c *Collector) collectAll() {
	c.logCollectStart()

	for h := c.allHead; h != nil; h = h.next {
		h.marked = false
	}

	v := markVisitor{}
	c.pool.ForEachLive(func(_ int, ptr unsafe.Pointer) {
		if ptr == nil {
			return
		}
		v.Visit(Ref{h: (*header)(ptr)})
	})

	c.sweep()
	c.collections++
	c.logCollectEnd()
}

func (c *Collector) sweep() {
	var prev *header
	live := 0

	for h := c.allHead; h != nil; {
		next := h.next
		if h.marked {
			prev = h
			live++
		} else {
			if h.destroy != nil {
				h.destroy()
			}
			if prev == nil {
				c.allHead = next
			} else {
				prev.next = next
			}
		}
		h = next
	}

	c.liveCount = live
}
