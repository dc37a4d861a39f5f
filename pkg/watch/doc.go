// Package watch re-runs work when a file changes.
//
// FileWatcher wraps github.com/fsnotify/fsnotify with debouncing:
//
//	fw, err := watch.NewFileWatcher(watch.Config{Path: "homework.txt"}, logger)
//	if err != nil {
//	    return err
//	}
//	defer fw.Close()
//
//	err = fw.Watch(ctx, func(ctx context.Context) error {
//	    return rerun(ctx)
//	})
package watch
