package gc

import "go.uber.org/zap"

// Verbose instrumentation: one log entry per allocation, mark/sweep pass,
// and scope enter/exit (spec section 6, "Configuration"). Disabled by
// default; a nil Logger makes every call here a no-op, so the hot paths
// above never need to branch on whether logging is enabled.

func (c *Collector) logAlloc(h *header) {
	if c.cfg.Logger == nil {
		return
	}
	c.cfg.Logger.Debug("gc: alloc",
		zap.Uintptr("size", uintptr(h.size)),
		zap.Int("live", c.liveCount),
	)
}

func (c *Collector) logCollectStart() {
	if c.cfg.Logger == nil {
		return
	}
	c.cfg.Logger.Debug("gc: collect start",
		zap.Int("live_before", c.liveCount),
		zap.Int("blocks", c.pool.BlockCount()),
	)
}

func (c *Collector) logCollectEnd() {
	if c.cfg.Logger == nil {
		return
	}
	c.cfg.Logger.Debug("gc: collect end",
		zap.Int("live_after", c.liveCount),
		zap.Int("pass", c.collections),
	)
}

func (c *Collector) logScopeEnter(s *Scope) {
	if c.cfg.Logger == nil {
		return
	}
	c.cfg.Logger.Debug("gc: scope enter",
		zap.Uint64("scope_id", s.id),
		zap.Int("entry_mark", s.entryMark),
	)
}

func (c *Collector) logScopeExit(s *Scope) {
	if c.cfg.Logger == nil {
		return
	}
	c.cfg.Logger.Debug("gc: scope exit",
		zap.Uint64("scope_id", s.id),
		zap.Int("entry_mark", s.entryMark),
	)
}
