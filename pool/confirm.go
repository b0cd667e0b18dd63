package pool

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/farmpool/poold/events"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/registry"
	"github.com/farmpool/poold/singleton"
)

func (p *Pool) enqueue(ctx context.Context, partial pendingPartial) error {
	select {
	case p.pending <- partial:
		confirmationQueue.Inc()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// confirmLoop takes admitted partials in order, waits until each is old enough
// to be safe from reorgs and checks it in its own goroutine.
func (p *Pool) confirmLoop(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("confirm")
	ctx = logging.NewContext(ctx, logger)
	for {
		var partial pendingPartial
		select {
		case <-ctx.Done():
			logger.Info("stopping confirmation loop", zap.Int("pending", len(p.pending)))
			return
		case partial = <-p.pending:
			confirmationQueue.Dec()
		}

		wait := partial.receivedAt.Add(p.cfg.PartialConfirmationDelay).Sub(p.clock())
		if err := sleep(ctx, wait); err != nil {
			logger.Info("stopping confirmation loop", zap.Int("pending", len(p.pending)+1))
			return
		}

		p.checks.Add(1)
		go func() {
			defer p.checks.Done()
			p.confirm(ctx, &partial)
		}()
	}
}

// confirm credits the partial if it is still valid. Problems are logged and
// never reported to the farmer.
func (p *Pool) confirm(ctx context.Context, partial *pendingPartial) {
	launcherID := partial.partial.Payload.LauncherID
	logger := logging.FromContext(ctx).With(zap.Stringer("launcher_id", launcherID))
	defer func() {
		if r := recover(); r != nil {
			sharesDropped.WithLabelValues("panic").Inc()
			logger.Error("panic while confirming partial", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	reason, err := p.checkAndCredit(logging.NewContext(ctx, logger), partial)
	switch {
	case err != nil:
		sharesDropped.WithLabelValues("error").Inc()
		logger.Error("failed to confirm partial", zap.Error(err))
	case reason != "":
		sharesDropped.WithLabelValues(reason).Inc()
	}
}

// checkAndCredit returns the reason the partial was not credited, if any.
func (p *Pool) checkAndCredit(ctx context.Context, partial *pendingPartial) (string, error) {
	logger := logging.FromContext(ctx)
	payload := &partial.partial.Payload

	anchor, err := p.node.GetTimingAnchor(ctx, payload.SPHash, payload.EndOfSubSlot)
	if err != nil {
		return "", err
	}
	if anchor == nil || anchor.Reverted {
		logger.Info("partial signage point reverted", zap.Stringer("sp_hash", payload.SPHash))
		return "reverted", nil
	}

	posHash := payload.ProofOfSpace.Hash()
	if seen, _ := p.recent.ContainsOrAdd(posHash, struct{}{}); seen {
		logger.Info("double submission of proof", zap.Stringer("proof_hash", posHash))
		return "double_submission", nil
	}

	state, err := p.resolver.Resolve(ctx, payload.LauncherID)
	switch {
	case errors.Is(err, singleton.ErrNotFound):
		logger.Info("invalid singleton", zap.Error(err))
		return "invalid_singleton", nil
	case err != nil:
		return "", err
	case !state.IsMember:
		logger.Info("singleton is not assigned to this pool")
		return "not_member", nil
	}

	unlock := p.registry.Lock(payload.LauncherID)
	record, err := p.registry.Get(ctx, payload.LauncherID)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		unlock()
		return "unknown_farmer", nil
	case err != nil:
		unlock()
		return "", err
	case !record.IsPoolMember:
		unlock()
		return "not_member", nil
	}
	err = p.registry.AddPartial(ctx, payload.LauncherID, partial.receivedAt, partial.points)
	unlock()
	if err != nil {
		return "", err
	}

	p.events.Share(ctx, &events.ShareMsg{
		LauncherID: payload.LauncherID.String(),
		Difficulty: partial.points,
		Timestamp:  uint64(p.clock().Unix()),
		UserID:     partial.puid,
	})
	sharesCredited.Inc()
	pointsCredited.Add(float64(partial.points))
	logger.Info("credited partial",
		zap.Uint64("points", partial.points),
		zap.Uint64("total_points", record.Points+partial.points),
		zap.Uint64("puid", partial.puid),
	)
	return "", nil
}
