package service

import (
	"log"
	"time"
)

// timeOp logs the duration of an operation when the returned func runs.
// Pass a pointer to the operation's error to include it in the line.
func timeOp(runID, op string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("run_id=%s op=%s dur=%dms err=%v", runID, op, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("run_id=%s op=%s dur=%dms", runID, op, dur.Milliseconds())
	}
}
