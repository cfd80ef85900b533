package job

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const sweepTick = 10 * time.Minute

// UploadSweeper removes scratch files left behind in the upload directory.
// Handlers delete their own file after each request, so anything old enough
// to trip maxAge is an orphan from a crashed or interrupted request.
type UploadSweeper struct {
	tracer trace.Tracer
	dir    string
	maxAge time.Duration
}

func NewUploadSweeper(tracer trace.Tracer, dir string, maxAge time.Duration) *UploadSweeper {
	return &UploadSweeper{
		tracer: tracer,
		dir:    dir,
		maxAge: maxAge,
	}
}

func (j *UploadSweeper) Start(ctx context.Context) {
	if j == nil || j.dir == "" {
		<-ctx.Done()
		return
	}

	log.Println("Upload sweeper starting...")
	ticker := time.NewTicker(sweepTick)
	defer ticker.Stop()

	j.runSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Upload sweeper stopped")
			return
		case <-ticker.C:
			j.runSweep(ctx)
		}
	}
}

func (j *UploadSweeper) runSweep(ctx context.Context) {
	if j.tracer != nil {
		_, span := j.tracer.Start(ctx, "upload-sweeper.sweep")
		defer span.End()
	}
	removed, err := j.Sweep()
	if err != nil {
		log.Printf("upload sweep error: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("upload sweep removed %d stale file(s)", removed)
	}
}

// Sweep deletes regular files in the upload dir older than maxAge and
// returns how many it removed.
func (j *UploadSweeper) Sweep() (int, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("upload sweep could not remove %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}
