// Package cache implements the content-addressed build cache.
package cache

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Cache maps build signatures to previously produced artifacts and
// enforces the retention and size bounds.
//
// A single mutex serializes Lookup, Store, and Clear: a store racing an
// in-flight lookup for the same signature would otherwise observe the
// metadata and the artifact directory in different states. Cross-process
// mutation is still last-writer-wins on the metadata document; the
// store's advisory lock only keeps individual writes whole.
type Cache struct {
	settings domain.CacheSettings
	store    ports.MetadataStore
	hasher   ports.Hasher
	files    ports.ArtifactStore
	log      ports.Logger
	tracer   ports.Tracer

	mu  sync.Mutex
	now func() time.Time
}

// New creates a Cache rooted at settings.Dir.
func New(
	settings domain.CacheSettings,
	store ports.MetadataStore,
	hasher ports.Hasher,
	files ports.ArtifactStore,
	log ports.Logger,
	tracer ports.Tracer,
) *Cache {
	return &Cache{
		settings: settings,
		store:    store,
		hasher:   hasher,
		files:    files,
		log:      log,
		tracer:   tracer,
		now:      time.Now,
	}
}

// Lookup returns the path to a reusable artifact for the given script
// and invocation, or false on a miss. Lookup never fails: every error
// on the way degrades to a miss, because serving no cache is always
// safe and blocking the build never is.
//
// Expired entries are reported as misses but left in place; eviction
// reclaims them later. That keeps the hot read path free of writes.
func (c *Cache) Lookup(ctx context.Context, scriptPath, invocation string) (string, bool) {
	_, span := c.tracer.Start(ctx, "cache.lookup")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settings.Enabled {
		return "", false
	}

	signature, err := c.hasher.BuildSignature(scriptPath, invocation)
	if err != nil {
		// Unreadable script: unconditional miss, never a silent hit.
		c.log.Warn("cache lookup skipped: cannot hash script")
		span.RecordError(err)
		return "", false
	}
	span.SetAttribute("signature", signature)

	entry, err := c.store.Get(signature)
	if err != nil {
		c.log.Error(zerr.Wrap(err, "cache metadata read failed"))
		span.RecordError(err)
		return "", false
	}
	if entry == nil {
		return "", false
	}

	if entry.Expired(c.now(), c.settings.Retention()) {
		span.SetAttribute("expired", true)
		return "", false
	}

	artifact := filepath.Join(c.settings.Dir, entry.CacheID)
	if !c.files.Exists(artifact) {
		// The directory vanished out-of-band; drop the stale record so
		// the store and the disk agree again.
		c.log.Warn("cache entry lost its artifact, purging stale metadata")
		if err := c.store.Delete(signature); err != nil {
			c.log.Error(zerr.Wrap(err, "failed to purge stale cache entry"))
		}
		return "", false
	}

	if entry.ArtifactHash != "" {
		digest, err := c.hasher.ArtifactDigest(artifact)
		if err != nil || digest != entry.ArtifactHash {
			c.log.Warn("cache entry failed integrity check, purging")
			c.removeEntry(signature, artifact)
			return "", false
		}
	}

	span.SetAttribute("hit", true)
	return artifact, true
}

// Store copies a freshly produced build output into the cache and
// records its entry. The original output is left untouched; the caller
// still owes it to the user. The entry is only written once the copy
// has fully succeeded, so a failed copy cannot orphan metadata.
func (c *Cache) Store(ctx context.Context, scriptPath, invocation, outputPath string) error {
	ctx, span := c.tracer.Start(ctx, "cache.store")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settings.Enabled {
		return nil
	}

	if !c.files.Exists(outputPath) {
		err := zerr.With(domain.ErrOutputMissing, "path", outputPath)
		span.RecordError(err)
		return err
	}

	signature, err := c.hasher.BuildSignature(scriptPath, invocation)
	if err != nil {
		span.RecordError(err)
		return err
	}

	cacheID := fmt.Sprintf("build_%s_%d", signature[:16], c.now().Unix())
	artifact := filepath.Join(c.settings.Dir, cacheID)

	sizeMB, err := c.files.Stash(outputPath, artifact)
	if err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to copy build into cache")
	}

	digest, err := c.hasher.ArtifactDigest(artifact)
	if err != nil {
		// The entry still works without its integrity check.
		c.log.Warn("could not digest cached artifact")
		digest = ""
	}

	entry := domain.CacheEntry{
		CacheID:      cacheID,
		StoredAt:     c.now(),
		SourcePath:   scriptPath,
		Invocation:   invocation,
		SizeMB:       sizeMB,
		ArtifactHash: digest,
	}

	if err := c.store.Put(signature, entry); err != nil {
		// Roll the copy back rather than leave an unreachable artifact.
		if rmErr := c.files.Remove(artifact); rmErr != nil {
			c.log.Error(zerr.Wrap(rmErr, "failed to remove orphaned artifact"))
		}
		span.RecordError(err)
		return zerr.Wrap(err, "failed to record cache entry")
	}

	c.evict(ctx)
	return nil
}

// evict removes oldest entries until total size fits within the slack
// bound. Errors are logged and swallowed; eviction is housekeeping, not
// a caller concern.
func (c *Cache) evict(ctx context.Context) {
	entries, err := c.store.All()
	if err != nil {
		c.log.Error(zerr.Wrap(err, "eviction skipped: cannot read metadata"))
		return
	}

	var total float64
	for _, e := range entries {
		total += e.SizeMB
	}
	if total <= c.settings.MaxSizeMB {
		return
	}

	type aged struct {
		signature string
		entry     domain.CacheEntry
	}
	sorted := make([]aged, 0, len(entries))
	for sig, e := range entries {
		sorted = append(sorted, aged{signature: sig, entry: e})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].entry.StoredAt.Before(sorted[j].entry.StoredAt)
	})

	target := c.settings.MaxSizeMB * domain.EvictionSlack
	var victims []aged
	for _, a := range sorted {
		if total <= target {
			break
		}
		victims = append(victims, a)
		total -= a.entry.SizeMB
	}

	// Metadata deletions stay ordered; directory removal can fan out.
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, v := range victims {
		dir := filepath.Join(c.settings.Dir, v.entry.CacheID)
		g.Go(func() error {
			// A directory that is already gone still counts as evicted.
			return c.files.Remove(dir)
		})
	}
	if err := g.Wait(); err != nil {
		c.log.Error(zerr.Wrap(err, "failed to remove evicted artifact"))
	}

	for _, v := range victims {
		if err := c.store.Delete(v.signature); err != nil {
			c.log.Error(zerr.Wrap(err, "failed to delete evicted entry"))
		}
	}

	if len(victims) > 0 {
		c.log.Info(fmt.Sprintf("cache eviction removed %d entries", len(victims)))
	}
}

// Clear wipes every entry and its artifact directory.
func (c *Cache) Clear(ctx context.Context) error {
	_, span := c.tracer.Start(ctx, "cache.clear")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.store.All()
	if err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "cannot read metadata for clear")
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, e := range entries {
		dir := filepath.Join(c.settings.Dir, e.CacheID)
		g.Go(func() error {
			return c.files.Remove(dir)
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to remove cached artifacts")
	}

	if err := c.store.Reset(); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to reset cache metadata")
	}

	c.log.Info("build cache cleared")
	return nil
}

// Stats returns a point-in-time summary of the cache.
func (c *Cache) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := domain.CacheStats{
		MaxSizeMB:     c.settings.MaxSizeMB,
		RetentionDays: c.settings.RetentionDays,
		Dir:           c.settings.Dir,
	}

	entries, err := c.store.All()
	if err != nil {
		c.log.Error(zerr.Wrap(err, "stats: cannot read metadata"))
		return stats
	}

	var total float64
	for _, e := range entries {
		total += e.SizeMB
	}
	stats.Entries = len(entries)
	stats.TotalSizeMB = math.Round(total*100) / 100
	return stats
}

// removeEntry drops both halves of an entry. Callers must hold c.mu.
func (c *Cache) removeEntry(signature, artifact string) {
	if err := c.files.Remove(artifact); err != nil {
		c.log.Error(zerr.Wrap(err, "failed to remove artifact"))
	}
	if err := c.store.Delete(signature); err != nil {
		c.log.Error(zerr.Wrap(err, "failed to delete cache entry"))
	}
}
