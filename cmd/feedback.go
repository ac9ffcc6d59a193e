package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/beastmode/notable/core"
	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/internal/log"
	"github.com/beastmode/notable/schema"
)

// feedbackCmd generates synthetic feedback for unlabeled predictions.
var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Generate synthetic feedback for unlabeled predictions.",
	Long: `Attach synthetic feedback to predictions that have no real feedback yet.

Synthetic outcomes track the predicted quality with bounded noise, with
an occasional strong disagreement to keep retraining honest. Every
synthetic record is marked so exports and retraining can separate it
from real user feedback.

Examples:
  # Label up to 50 unlabeled predictions
  notable feedback

  # Label a specific number of predictions with a fixed seed
  notable feedback --feedback-target 100 --feedback-seed 42`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runFeedback(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run feedback generation", err)
		}
	},
}

// runFeedback synthesizes outcomes for unlabeled predictions in the store.
func runFeedback(ctx context.Context, cfg *contract.Config) error {
	store := storeManager.GetPredictionStore()
	if store == nil {
		return fmt.Errorf("feedback generation requires a prediction store backend")
	}

	unlabeled, err := store.ListUnlabeled(ctx, cfg.FeedbackTarget)
	if err != nil {
		return err
	}
	if len(unlabeled) == 0 {
		fmt.Println("No unlabeled predictions found. Run 'notable predict' first.")
		return nil
	}

	seed := cfg.FeedbackSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	labeled := 0
	for _, rec := range unlabeled {
		outcome := core.SynthesizeOutcome(rec.PredictedValue, rng)
		source := core.SynthesizeSource(rec.PredictedValue, rng)
		metadata := map[string]any{
			"synthetic": true,
			"pattern":   schema.QualityBucket(rec.PredictedValue),
		}
		if err := store.RecordOutcome(ctx, rec.ID, outcome, source, metadata); err != nil {
			return err
		}
		log.Debugf("labeled prediction %s with %.2f from %s", rec.ID, outcome, source)
		labeled++
	}

	fmt.Printf("Generated synthetic feedback for %d predictions.\n", labeled)
	return nil
}
