package cmd

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestUploadQueueSerializesUploads(t *testing.T) {
	const files = 8

	var active int32
	var count int32
	done := make(chan struct{})

	q := newUploadQueue(time.Millisecond, func(path string) {
		if n := atomic.AddInt32(&active, 1); n > 1 {
			t.Errorf("Uploads must not overlap, saw %d in flight", n)
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		if atomic.AddInt32(&count, 1) == files {
			close(done)
		}
	})

	// All debounce timers fire at roughly the same instant
	for i := 0; i < files; i++ {
		q.notify(fmt.Sprintf("f%d.txt", i))
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Expected %d uploads, got %d", files, atomic.LoadInt32(&count))
	}
}

func TestUploadQueueCoalescesEventsPerPath(t *testing.T) {
	var count int32
	uploaded := make(chan string, 4)

	q := newUploadQueue(20*time.Millisecond, func(path string) {
		atomic.AddInt32(&count, 1)
		uploaded <- path
	})

	// Several events for one path before the debounce elapses
	q.notify("notes.md")
	q.notify("notes.md")
	q.notify("notes.md")

	select {
	case path := <-uploaded:
		if path != "notes.md" {
			t.Errorf("Unexpected path %q", path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Upload never fired")
	}

	// Give a second timer a chance to misfire
	time.Sleep(50 * time.Millisecond)
	if n := atomic.LoadInt32(&count); n != 1 {
		t.Errorf("Expected 1 coalesced upload, got %d", n)
	}
}
