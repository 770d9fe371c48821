package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/internal/core/services"
	"github.com/youfyi/kitctl/pkg/ui"
)

// assetWatchCmd uploads files dropped into a directory. Editors fire
// several events per save, so uploads are debounced per path.
var assetWatchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and upload new or changed files as assets",
	Long: `Watch a directory and upload every created or modified file to the
active workspace. Hidden files and subdirectories are ignored.

Example:
  kitctl asset watch ./inbox`,
	Args: cobra.ExactArgs(1),
	RunE: runAssetWatch,
}

func runAssetWatch(cmd *cobra.Command, args []string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond

	fmt.Println(ui.FormatInfo(fmt.Sprintf("Watching %s (Ctrl+C to stop)", dir)))

	queue := newUploadQueue(debounce, uploadWatched)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			queue.notify(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Println(ui.FormatWarning("watch error: " + err.Error()))
		}
	}
}

// uploadQueue debounces file events per path and hands settled paths to a
// single worker goroutine. The session has no locking of its own, so only
// that one goroutine may run uploads; debounce timers never call the upload
// function directly.
type uploadQueue struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	delay  time.Duration
	paths  chan string
}

func newUploadQueue(delay time.Duration, upload func(string)) *uploadQueue {
	q := &uploadQueue{
		timers: make(map[string]*time.Timer),
		delay:  delay,
		paths:  make(chan string, 64),
	}
	go func() {
		for path := range q.paths {
			upload(path)
		}
	}()
	return q
}

// notify records a file event, resetting the path's debounce timer
func (q *uploadQueue) notify(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if t, exists := q.timers[path]; exists {
		t.Stop()
	}
	q.timers[path] = time.AfterFunc(q.delay, func() {
		q.mu.Lock()
		delete(q.timers, path)
		q.mu.Unlock()
		q.paths <- path
	})
}

// uploadWatched uploads a single settled file, skipping directories and
// files that vanished between the event and the debounce firing
func uploadWatched(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Println(ui.FormatWarning("skipped " + path + ": " + err.Error()))
		return
	}
	defer f.Close()

	asset, err := assetService.Upload(getContext(), services.UploadAssetRequest{
		Filename: filepath.Base(path),
		Reader:   f,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to upload " + filepath.Base(path) + ": " + err.Error()))
		return
	}
	fmt.Println(ui.FormatSuccess("Uploaded " + asset.Name))
}
