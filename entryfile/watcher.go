package entryfile

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Receiver gets the re-parsed file after every save.
type Receiver interface {
	Receive(f *File) error
}

// Watcher re-reads an entry file whenever it is written and hands the result
// to a receiver. Parse and receiver errors are reported and the watch keeps
// going: a half-edited file is the normal case, not a reason to stop.
type Watcher struct {
	filePath string
	lastRead time.Time
	mu       sync.Mutex
	receiver Receiver
}

func NewWatcher(filePath string) (*Watcher, error) {
	if filePath == "" {
		return nil, fmt.Errorf("no file path given")
	}
	return &Watcher{filePath: filePath}, nil
}

// Subscribe blocks, feeding the receiver on every write to the file. The
// file is parsed once up front so the receiver sees the current state
// immediately.
func (w *Watcher) Subscribe(receiver Receiver) error {
	w.receiver = receiver

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer watcher.Close()

	w.reactToFileWrite(w.filePath)

	go w.watchResponder(watcher)

	if err := watcher.Add(w.filePath); err != nil {
		return fmt.Errorf("watcher.Add: %w", err)
	}

	// Block the subscribing goroutine forever.
	<-make(chan struct{})
	return nil
}

func (w *Watcher) watchResponder(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				log.Println("watcher.Events is not okay.")
				return
			}
			if event.Has(fsnotify.Write) {
				w.reactToFileWrite(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				log.Println("watcher.Errors is not okay.")
				return
			}
			log.Println("watcher.Errors: ", err)
		}
	}
}

func (w *Watcher) reactToFileWrite(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	timeElapsed := time.Since(w.lastRead)
	if timeElapsed < time.Second { // react at most once per second
		return
	}
	w.lastRead = time.Now()

	f, err := Load(path)
	if err != nil {
		log.Printf("reading %s: %s", path, err.Error())
		return
	}

	if err := w.receiver.Receive(f); err != nil {
		log.Printf("receiver: %s", err.Error())
	}
}
