// Package logging provides structured logging for symposium.
//
// It wraps Go's log/slog with a JSON handler and adds persistent context:
// the dinner run ID, the seat a message concerns, and the phase of the run.
// The monitor logs every seat transition at DEBUG, so a debug-level log of a
// run reads like a transcript of who got hungry, who waited, and who ate.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "DEBUG")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	seatLog := logger.WithRun(runID).WithSeat(3)
//	seatLog.Debug("waiting to eat")
//
// # Thread Safety
//
// A [Logger] and all child loggers created from it may be used from any
// number of goroutines.
package logging
