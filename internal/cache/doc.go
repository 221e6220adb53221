// Package cache provides a generic, thread-safe LRU map.
//
//	c := cache.New[string, int](64)
//	c.Put("key", 42)
//	v, ok := c.Get("key")
//
// canvas uses it to keep resolved font shorthands, so that repeated
// SetFont calls with the same string skip parsing and face lookup.
package cache
