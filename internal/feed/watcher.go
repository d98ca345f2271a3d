// Package feed tails an external called-number feed file and applies
// each number to a game session. Venues that announce numbers through
// other software can append to the file and the companion follows along.
package feed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/jdelacruz/bingo-companion/internal/game"
	"github.com/jdelacruz/bingo-companion/internal/storage/repository"
)

// NumberCaller applies a called number to a session. Implemented by
// game.Service.
type NumberCaller interface {
	CallNumber(ctx context.Context, sessionID string, n int) (*game.SessionAnalysis, error)
}

// Watcher tails the feed file and forwards parsed numbers to the caller.
type Watcher struct {
	path      string
	sessionID string
	caller    NumberCaller
	limiter   *rate.Limiter

	stopChan chan struct{}
}

// NewWatcher creates a watcher for the feed file at path. Calls are
// applied to sessionID at most rps per second.
func NewWatcher(path, sessionID string, caller NumberCaller, rps int) *Watcher {
	if rps <= 0 {
		rps = 5
	}
	return &Watcher{
		path:      path,
		sessionID: sessionID,
		caller:    caller,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		stopChan:  make(chan struct{}),
	}
}

// Run tails the feed file until the context is cancelled or Stop is
// called. Numbers already in the file when Run starts are skipped so a
// restart does not replay the whole game.
func (w *Watcher) Run(ctx context.Context) (err error) {
	file, err := os.Open(w.path)
	if err != nil {
		return fmt.Errorf("failed to open feed file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek feed file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("failed to watch feed file: %w", err)
	}

	reader := bufio.NewReader(file)

	// Backup polling in case file events are delayed
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	log.Printf("Feed watcher started on %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopChan:
			return nil
		case event := <-watcher.Events:
			if event.Op&fsnotify.Write == fsnotify.Write {
				if err := w.processNewLines(ctx, reader); err != nil {
					log.Printf("Feed watcher error: %v", err)
				}
			}
		case werr := <-watcher.Errors:
			log.Printf("Feed watcher error: %v", werr)
		case <-ticker.C:
			if err := w.processNewLines(ctx, reader); err != nil {
				log.Printf("Feed watcher error: %v", err)
			}
		}
	}
}

// Stop terminates the watcher. Safe to call even if Run already exited.
func (w *Watcher) Stop() {
	select {
	case <-w.stopChan:
	default:
		close(w.stopChan)
	}
}

// processNewLines reads lines appended since the last read and applies
// each parsed number.
func (w *Watcher) processNewLines(ctx context.Context, reader *bufio.Reader) error {
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Partial trailing line, wait for the rest
				return nil
			}
			return err
		}

		n, ok := ParseLine(line)
		if !ok {
			continue
		}

		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}

		if err := w.apply(ctx, n); err != nil {
			log.Printf("Feed watcher: number %d rejected: %v", n, err)
		}
	}
}

// apply forwards one number to the caller. Duplicates are normal when
// the feed replays an announcement, so they are not treated as errors.
func (w *Watcher) apply(ctx context.Context, n int) error {
	_, err := w.caller.CallNumber(ctx, w.sessionID, n)
	if errors.Is(err, repository.ErrAlreadyCalled) {
		return nil
	}
	return err
}

// ParseLine extracts a called number from one feed line. Blank lines
// and comments starting with # are skipped. The line may be a bare
// number ("42") or letter-prefixed ("B-7", "O 72").
func ParseLine(line string) (int, bool) {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") {
		return 0, false
	}

	// Strip a column-letter prefix if present
	if len(s) >= 2 {
		switch s[0] {
		case 'B', 'I', 'N', 'G', 'O', 'b', 'i', 'n', 'g', 'o':
			rest := strings.TrimLeft(s[1:], "- ")
			if rest != s[1:] || isDigits(rest) {
				s = rest
			}
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
