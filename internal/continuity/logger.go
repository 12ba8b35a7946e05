package continuity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/agent-harness/harness/internal/config"
	"github.com/agent-harness/harness/internal/constants"
)

// SamplingMode controls which event classes reach the progress log
type SamplingMode string

const (
	SamplingMilestones SamplingMode = "milestones"
	SamplingAll        SamplingMode = "all"
	SamplingNone       SamplingMode = "none"
)

const (
	defaultBatchIntervalSecs = 60
	defaultMaxLogSizeKB      = 100
	defaultRetainedLogs      = 3
)

type settings struct {
	progressFile      string
	sampling          SamplingMode
	batchIntervalSecs int
	maxLogSizeKB      int
	retainedLogs      int
}

type entry struct {
	timestamp time.Time
	feature   string
	action    string
	evidence  []string
	nextState string
}

// Logger appends continuity events to the repository progress log.
// Milestones flush immediately; progress events batch until the
// configured interval elapses. Rotation and retention are delegated to
// lumberjack. Safe for concurrent use.
type Logger struct {
	mu        sync.Mutex
	settings  settings
	writer    *lumberjack.Logger
	pending   []entry
	lastFlush time.Time

	// now is swappable so batching behavior stays testable
	now func() time.Time
}

// NewLogger builds a logger for the repository root, honoring the
// [continuity] configuration when present.
func NewLogger(root string, cfg *config.Config) *Logger {
	resolved := resolveSettings(root, cfg)
	logger := &Logger{
		settings: resolved,
		writer: &lumberjack.Logger{
			Filename:   resolved.progressFile,
			MaxSize:    kbToMBCeil(resolved.maxLogSizeKB),
			MaxBackups: resolved.retainedLogs,
		},
		now: time.Now,
	}
	logger.lastFlush = logger.now()
	return logger
}

func resolveSettings(root string, cfg *config.Config) settings {
	resolved := settings{
		progressFile:      constants.ProgressFile,
		sampling:          SamplingMilestones,
		batchIntervalSecs: defaultBatchIntervalSecs,
		maxLogSizeKB:      defaultMaxLogSizeKB,
		retainedLogs:      defaultRetainedLogs,
	}
	if cfg != nil && cfg.Continuity != nil {
		continuity := cfg.Continuity
		if continuity.ProgressFile != "" {
			resolved.progressFile = continuity.ProgressFile
		}
		switch SamplingMode(continuity.LogSampling) {
		case SamplingAll:
			resolved.sampling = SamplingAll
		case SamplingNone:
			resolved.sampling = SamplingNone
		}
		if continuity.BatchIntervalSecs > 0 {
			resolved.batchIntervalSecs = continuity.BatchIntervalSecs
		}
		if continuity.MaxLogSizeKB > 0 {
			resolved.maxLogSizeKB = continuity.MaxLogSizeKB
		}
		if continuity.RetainedLogs > 0 {
			resolved.retainedLogs = continuity.RetainedLogs
		}
	}
	if !filepath.IsAbs(resolved.progressFile) {
		resolved.progressFile = filepath.Join(root, resolved.progressFile)
	}
	return resolved
}

func kbToMBCeil(kb int) int {
	mb := (kb + 1023) / 1024
	if mb < 1 {
		mb = 1
	}
	return mb
}

// RecordMilestone logs a milestone event. Milestones are written in
// every sampling mode and flushed immediately.
func (l *Logger) RecordMilestone(feature, action string, evidence []string, nextState string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.push(feature, action, evidence, nextState)
	return l.flushLocked()
}

// RecordProgress logs a fine-grained progress event. Progress events
// are written only in "all" sampling and flush on the batch interval.
func (l *Logger) RecordProgress(feature, action string, evidence []string, nextState string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.settings.sampling != SamplingAll {
		return nil
	}
	l.push(feature, action, evidence, nextState)
	if l.now().Sub(l.lastFlush) >= time.Duration(l.settings.batchIntervalSecs)*time.Second {
		return l.flushLocked()
	}
	return nil
}

// Flush writes all pending entries
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flushLocked()
}

// Close flushes pending entries and releases the underlying log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	flushErr := l.flushLocked()
	closeErr := l.writer.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (l *Logger) push(feature, action string, evidence []string, nextState string) {
	l.pending = append(l.pending, entry{
		timestamp: l.now().UTC(),
		feature:   feature,
		action:    action,
		evidence:  append([]string(nil), evidence...),
		nextState: nextState,
	})
}

func (l *Logger) flushLocked() error {
	if len(l.pending) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.settings.progressFile), 0o755); err != nil {
		return err
	}

	var lines strings.Builder
	for _, e := range l.pending {
		evidence := "-"
		if len(e.evidence) > 0 {
			evidence = strings.Join(e.evidence, ", ")
		}
		fmt.Fprintf(&lines, "- timestamp: %s | feature: %s | action: %s | evidence: %s | next_state: %s\n",
			e.timestamp.Format(time.RFC3339), e.feature, e.action, evidence, e.nextState)
	}
	if _, err := l.writer.Write([]byte(lines.String())); err != nil {
		return err
	}

	l.pending = l.pending[:0]
	l.lastFlush = l.now()
	return nil
}
