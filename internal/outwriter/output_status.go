package outwriter

import (
	"fmt"
	"io"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/schema"
)

// WriteStoreStatus outputs prediction store health, dispatching based on the
// output format configured.
func WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatusText(status, w)
		}, "Wrote status")
	}
}

// writeStatusText generates the human-readable status report.
func writeStatusText(status schema.StoreStatus, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Backend: %s\n", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Connected: %t\n", status.Connected); err != nil {
		return err
	}
	unlabeled := status.Predictions - status.Labeled
	if _, err := fmt.Fprintf(writer, "Predictions: %d (%d labeled, %d awaiting feedback)\n",
		status.Predictions, status.Labeled, unlabeled); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Models: %d\n", status.Models); err != nil {
		return err
	}
	if status.Oldest != nil && status.Newest != nil {
		if _, err := fmt.Fprintf(writer, "Prediction window: %s to %s\n",
			status.Oldest.Format(modelTimeFormat), status.Newest.Format(modelTimeFormat)); err != nil {
			return err
		}
	}
	return nil
}
