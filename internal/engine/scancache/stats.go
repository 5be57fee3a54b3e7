package scancache

import "sync/atomic"

// AccessStatistics counts compatible reads and how many of them were hits.
type AccessStatistics struct {
	Reads uint64 `json:"reads"`
	Hits  uint64 `json:"hits"`
}

type accessCounter struct {
	reads atomic.Uint64
	hits  atomic.Uint64
}

func (c *accessCounter) record(hit bool) {
	c.reads.Add(1)
	if hit {
		c.hits.Add(1)
	}
}

func (c *accessCounter) snapshot() AccessStatistics {
	return AccessStatistics{Reads: c.reads.Load(), Hits: c.hits.Load()}
}
