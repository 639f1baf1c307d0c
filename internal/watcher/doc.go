// Package watcher re-analyzes a text file every time it changes.
//
// The Watcher subscribes to fsnotify events on the file's directory, so
// editors that save through a temp file and rename still trigger an update.
// Bursts of events are debounced into one analysis. Each analysis is handed
// to the OnReport callback and, when a store is configured, saved to the
// history database with the file path as its source.
//
// Example usage:
//
//	st, err := store.New("~/.textstat/textstat.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer st.Close()
//
//	w, err := watcher.New("notes.txt", st)
//	if err != nil {
//		log.Fatal(err)
//	}
//	w.OnReport(func(ev watcher.Event) {
//		fmt.Print(output.RenderReport(ev.Path, ev.Report))
//	})
//
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
package watcher
