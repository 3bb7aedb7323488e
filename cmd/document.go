package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"storelisting/core/jsonx"
	"storelisting/core/reconcile"
	"storelisting/core/storage"

	"go.uber.org/zap"
)

// errFailedRun marks a reconciliation failure whose summary was already printed.
var errFailedRun = errors.New("reconciliation failed")

// readDocument loads a desired-state document from a file ("-" for stdin) or
// from an archived snapshot object.
func readDocument(ctx context.Context, stdin io.Reader, file, object string, archive func() (*storage.Archive, error)) ([]byte, error) {
	switch {
	case file != "" && object != "":
		return nil, fmt.Errorf("--file and --object are mutually exclusive")
	case object != "":
		a, err := archive()
		if err != nil {
			return nil, err
		}
		return a.Load(ctx, object)
	case file == "-":
		return io.ReadAll(stdin)
	case file != "":
		return os.ReadFile(file)
	default:
		return nil, fmt.Errorf("one of --file or --object is required")
	}
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := jsonx.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// archiveSnapshot stores snapshot under a timestamped key and returns the key.
func archiveSnapshot(ctx context.Context, a *storage.Archive, backend, appID string, snapshot any) (string, error) {
	data, err := jsonx.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", err
	}
	key := storage.SnapshotKey(backend, appID, time.Now())
	if err := a.Save(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

// reportRun prints the summary and turns a failed run into errFailedRun so
// the summary is not repeated in the error log.
func reportRun(w io.Writer, l *zap.Logger, summary *reconcile.Summary, err error) error {
	if summary != nil {
		if werr := writeJSON(w, summary); werr != nil {
			return werr
		}
	}
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return errFailedRun
	}
	return nil
}
