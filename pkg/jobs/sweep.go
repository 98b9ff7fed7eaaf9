package jobs

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lenskeep/lenskeep/pkg/backend"
	"github.com/lenskeep/lenskeep/pkg/config"
)

func init() {
	Register("invitation-sweep", sweep{})
}

// sweep transitions pending invitations past their expiry to expired.
type sweep struct{}

var _ Runner = sweep{}

// Spec implements Runner.
func (sweep) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	return cfg.Jobs.InvitationSweep
}

// Func implements Runner.
func (sweep) Func(ctx context.Context) func() {
	return func() {
		logger := log.FromContext(ctx).WithPrefix("jobs.sweep")
		be := backend.FromContext(ctx)
		swept, err := be.SweepExpiredInvitations(ctx)
		if err != nil {
			logger.Error("sweep failed", "err", err)
			return
		}
		if len(swept) > 0 {
			logger.Info("invitations expired", "count", len(swept))
		}
	}
}
