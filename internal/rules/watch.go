package rules

import (
	"os"

	"github.com/fsnotify/fsnotify"
)

// Watcher notifies a callback with the raw contents of a user rule file
// each time it changes on disk. It is an external-collaborator concern
// (spec §9, "a line-buffered variant... is an external wrapper"-style
// addendum for long-running watch modes); Sanitize itself never watches
// anything and recompiling the CompiledRuleSet from the new bytes is left
// to the caller.
type Watcher struct {
	fsw *fsnotify.Watcher
}

// WatchUserRules starts watching path and invokes onChange with the file's
// current contents whenever fsnotify reports a write or create event, and
// invokes it with a non-nil error if the file cannot be read. The caller
// owns turning those bytes back into an active CompiledRuleSet via
// rules.Load, rules.Merge/Compose, and compile.Compile.
func WatchUserRules(path string, onChange func(doc []byte, err error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				data, readErr := os.ReadFile(path)
				onChange(data, readErr)
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				onChange(nil, err)
			}
		}
	}()

	return &Watcher{fsw: fsw}, nil
}

// Stop stops watching and releases the underlying OS resources.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}
