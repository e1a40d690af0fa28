package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const inboxReadmeName = "README.md"

// Settle thresholds for newly created files, so half-written drops are not
// picked up mid-copy.
const (
	settleStability = 500 * time.Millisecond
	settlePoll      = 100 * time.Millisecond
	settleTimeout   = 10 * time.Second
)

// InboxDispatcher discovers eligible inbox files and hands them to the
// processor strictly one at a time. The single pending-work chain is what
// makes the slug resolver's read-then-write uniqueness check safe.
type InboxDispatcher struct {
	cfg       *Config
	processor *InboxProcessor
	logger    *zap.Logger
}

func NewInboxDispatcher(cfg *Config, processor *InboxProcessor, logger *zap.Logger) *InboxDispatcher {
	return &InboxDispatcher{cfg: cfg, processor: processor, logger: logger}
}

// RunOnce enumerates the current inbox contents, processes them sequentially,
// and returns. Per-item failures never stop the run.
func (d *InboxDispatcher) RunOnce(ctx context.Context) error {
	if err := d.ensureInbox(); err != nil {
		return err
	}

	pending, err := d.pendingFiles()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		d.logger.Info("no files to process", zap.String("inbox", d.cfg.InboxDir))
		return nil
	}

	d.logger.Info("processing inbox", zap.String("inbox", d.cfg.InboxDir), zap.Int("count", len(pending)))
	for _, path := range pending {
		// An interrupt takes effect between items; a started pipeline
		// always runs to completion.
		if ctx.Err() != nil {
			break
		}
		d.processor.ProcessFile(context.WithoutCancel(ctx), path)
	}
	d.logger.Info("done")
	return nil
}

// Watch processes anything already in the inbox, then subscribes to creation
// events and feeds them into the same sequential pipeline until ctx is
// canceled.
func (d *InboxDispatcher) Watch(ctx context.Context) error {
	if err := d.ensureInbox(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(d.cfg.InboxDir); err != nil {
		return fmt.Errorf("watching %s: %w", d.cfg.InboxDir, err)
	}

	queue := make(chan string, 64)
	workerDone := make(chan struct{})

	// Single worker: per-file pipelines never overlap, new arrivals wait
	// their turn.
	go func() {
		defer close(workerDone)
		for path := range queue {
			if ctx.Err() != nil {
				continue
			}
			if !d.eligible(path) {
				continue
			}
			d.processor.ProcessFile(context.WithoutCancel(ctx), path)
		}
	}()

	pending, err := d.pendingFiles()
	if err != nil {
		close(queue)
		<-workerDone
		return err
	}
	if len(pending) > 0 {
		d.logger.Info("found existing files", zap.Int("count", len(pending)))
		for _, path := range pending {
			queue <- path
		}
	}

	d.logger.Info("watching for new files", zap.String("inbox", d.cfg.InboxDir))

	for {
		select {
		case <-ctx.Done():
			close(queue)
			<-workerDone
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				close(queue)
				<-workerDone
				return nil
			}
			if !event.Op.Has(fsnotify.Create) {
				continue
			}
			if base := filepath.Base(event.Name); strings.HasPrefix(base, ".") || base == inboxReadmeName {
				continue
			}
			if !d.waitForWriteSettle(ctx, event.Name) {
				continue
			}
			select {
			case queue <- event.Name:
			case <-ctx.Done():
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				continue
			}
			d.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (d *InboxDispatcher) ensureInbox() error {
	if _, err := os.Stat(d.cfg.InboxDir); os.IsNotExist(err) {
		if err := os.MkdirAll(d.cfg.InboxDir, 0755); err != nil {
			return fmt.Errorf("creating inbox directory: %w", err)
		}
		d.logger.Info("created inbox directory", zap.String("inbox", d.cfg.InboxDir))
	}
	return nil
}

// pendingFiles returns every processable file currently in the inbox.
func (d *InboxDispatcher) pendingFiles() ([]string, error) {
	entries, err := os.ReadDir(d.cfg.InboxDir)
	if err != nil {
		return nil, fmt.Errorf("reading inbox: %w", err)
	}

	var pending []string
	for _, entry := range entries {
		path := filepath.Join(d.cfg.InboxDir, entry.Name())
		if d.eligible(path) {
			pending = append(pending, path)
		}
	}
	return pending, nil
}

// eligible applies the acceptance filter: no hidden entries, no directories,
// no inbox README, text-like extensions only, and no binary content. Skipped
// files are logged, never archived; they were never accepted into the
// pipeline.
func (d *InboxDispatcher) eligible(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || name == inboxReadmeName {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !d.cfg.ExtensionAllowed(ext) {
		d.logger.Warn("skipping file: unsupported extension",
			zap.String("file", name),
			zap.String("extension", ext),
		)
		return false
	}

	if isBinaryFile(path) {
		d.logger.Warn("skipping file: detected binary content", zap.String("file", name))
		return false
	}

	return true
}

// waitForWriteSettle polls the file size until it holds still for the
// stability window, so a file still being copied in is not picked up early.
// Returns false if the file vanishes or never settles.
func (d *InboxDispatcher) waitForWriteSettle(ctx context.Context, path string) bool {
	deadline := time.Now().Add(settleTimeout)

	lastSize := int64(-1)
	stableSince := time.Now()

	for time.Now().Before(deadline) {
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		if info.Size() != lastSize {
			lastSize = info.Size()
			stableSince = time.Now()
		} else if time.Since(stableSince) >= settleStability {
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(settlePoll):
		}
	}

	d.logger.Warn("file never settled, skipping", zap.String("file", filepath.Base(path)))
	return false
}

// isBinaryFile is a best-effort heuristic: a NUL byte in the first 1KB means
// binary. Read errors count as binary, keeping unreadable files out of the
// pipeline.
func isBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, 1024)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}
