// Package journal tails a directory of newline-delimited JSON journal files,
// follows rotation to newer files and publishes typed events to subscribers.
//
// The newest *.log file (by name) is the live journal. A Reader drains it line
// by line, waits a poll interval once it reaches the end, and restarts on the
// newest file whenever a new journal is created in the directory. Partial
// lines are held back until their newline is written.
//
//	r, err := journal.New(dir, journal.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	r.Bus().OnFsdJump(func(ev journal.FsdJump) error {
//		log.Infof("jumped to %s", ev.StarSystem)
//		return nil
//	})
//	if err := r.Start(ctx); err != nil {
//		return err
//	}
package journal
